package repository

import (
	"context"

	"github.com/oussama604/catalogue/internal/domain/model"
)

// 商品画像の永続化だけを約束。更新APIは無い（画像は作成後不変）。
type ProductImageRepository interface {
	Create(ctx context.Context, img model.ProductImage) (model.ProductImage, error)
	// ListMetaByProductID はバイナリ本体を除いたメタ情報をid昇順で返す。
	ListMetaByProductID(ctx context.Context, productID int64) ([]model.ProductImage, error)
	FindByID(ctx context.Context, id int64) (model.ProductImage, error)
}
