package repository

import (
	"context"
	"errors"
	"time"

	"github.com/oussama604/catalogue/internal/domain/model"
	repo "github.com/oussama604/catalogue/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 全商品をカテゴリ付きで、作成日時の降順で返す。
// カテゴリ未設定の商品はCategoryがnilのまま返る。
func (r *ProductGormRepository) ListWithCategory(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Order("created_at desc").Order("id desc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// slug完全一致で1件取得（入力の正規化はしない）
func (r *ProductGormRepository) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ?", slug).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 部分更新。nilでない列だけ上書きし、updated_atは常に刷新する。
// 該当行が無くても成功扱い（存在チェックはしない）。
func (r *ProductGormRepository) UpdateFields(ctx context.Context, id int64, patch repo.ProductPatch) error {
	fields := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Slug != nil {
		fields["slug"] = *patch.Slug
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Price != nil {
		fields["price"] = *patch.Price
	}
	if patch.Stock != nil {
		fields["stock"] = *patch.Stock
	}
	if patch.IsAvailable != nil {
		fields["is_available"] = *patch.IsAvailable
	}
	if patch.Etat != nil {
		fields["etat"] = *patch.Etat
	}
	if patch.CategoryID != nil {
		fields["category_id"] = *patch.CategoryID
	}

	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// main_image_idとimage_urlをまとめて更新
func (r *ProductGormRepository) SetMainImage(ctx context.Context, id int64, imageID int64, imageURL string) error {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"main_image_id": imageID,
			"image_url":     imageURL,
		}).Error
}

// 商品削除。該当行が無くてもエラーにしない（冪等）。
// 画像行はFKカスケードで一緒に消える。
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}
