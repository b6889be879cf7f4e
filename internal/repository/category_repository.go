package repository

import (
	"context"

	"github.com/oussama604/catalogue/internal/domain/model"
)

// カテゴリの取得だけを約束。書き込みはこのシステムの範囲外。
type CategoryRepository interface {
	ListOrderedByName(ctx context.Context) ([]model.Category, error)
}
