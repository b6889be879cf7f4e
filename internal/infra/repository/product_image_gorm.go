package repository

import (
	"context"
	"errors"

	"github.com/oussama604/catalogue/internal/domain/model"
	repo "github.com/oussama604/catalogue/internal/repository"

	"gorm.io/gorm"
)

type ProductImageGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductImageGormRepository(db *gorm.DB) *ProductImageGormRepository {
	return &ProductImageGormRepository{db: db}
}

// 画像行の作成（バイナリ込み）
func (r *ProductImageGormRepository) Create(ctx context.Context, img model.ProductImage) (model.ProductImage, error) {
	if err := r.db.WithContext(ctx).Create(&img).Error; err != nil {
		return model.ProductImage{}, err
	}
	return img, nil
}

// メタ情報のみ（dataは読まない）をid昇順で返す
func (r *ProductImageGormRepository) ListMetaByProductID(ctx context.Context, productID int64) ([]model.ProductImage, error) {
	var images []model.ProductImage
	err := r.db.WithContext(ctx).
		Select("id", "product_id", "mime_type", "size_bytes").
		Where("product_id = ?", productID).
		Order("id asc").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// IDで1件取得（バイナリ込み）
func (r *ProductImageGormRepository) FindByID(ctx context.Context, id int64) (model.ProductImage, error) {
	var img model.ProductImage
	err := r.db.WithContext(ctx).First(&img, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductImage{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductImage{}, err
	}
	return img, nil
}
