package repository

import (
	"context"
	"errors"

	"github.com/oussama604/catalogue/internal/domain/model"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// 部分更新。nilのフィールドは既存値のまま（createの「空=NULL」とは違う）。
type ProductPatch struct {
	Name        *string
	Slug        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int64
	IsAvailable *bool
	Etat        *string
	CategoryID  *int64
}

// 商品の永続化（保存・取得・更新・削除）だけを約束。
type ProductRepository interface {
	ListWithCategory(ctx context.Context) ([]model.Product, error)
	FindBySlug(ctx context.Context, slug string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	// UpdateFields はnilでないフィールドだけを上書きし、updated_atは常に現在時刻にする。
	// 該当行が無くてもエラーにしない。
	UpdateFields(ctx context.Context, id int64, patch ProductPatch) error
	// SetMainImage はmain_image_idとimage_urlをまとめて更新する。
	SetMainImage(ctx context.Context, id int64, imageID int64, imageURL string) error
	Delete(ctx context.Context, id int64) error
}
