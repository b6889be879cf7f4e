package usecase

import (
	"context"
	"net/http"

	"github.com/oussama604/catalogue/internal/domain/model"
	repo "github.com/oussama604/catalogue/internal/repository"
)

// 公開APIのエラーコード（読み取り系は詳細を漏らさない）
const (
	MsgDatabaseError = "database_error"
	MsgNotFound      = "not_found"
)

type CatalogUsecase struct {
	categoryRepo repo.CategoryRepository
	productRepo  repo.ProductRepository
	imageRepo    repo.ProductImageRepository
}

// DI
func NewCatalogUsecase(
	categoryRepo repo.CategoryRepository,
	productRepo repo.ProductRepository,
	imageRepo repo.ProductImageRepository,
) *CatalogUsecase {
	return &CatalogUsecase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		imageRepo:    imageRepo,
	}
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := u.categoryRepo.ListOrderedByName(ctx)
	if err != nil {
		return nil, NewHTTPErrorWithCause(http.StatusInternalServerError, MsgDatabaseError, err)
	}
	return categories, nil
}

func (u *CatalogUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := u.productRepo.ListWithCategory(ctx)
	if err != nil {
		return nil, NewHTTPErrorWithCause(http.StatusInternalServerError, MsgDatabaseError, err)
	}
	return products, nil
}

// 商品詳細。Imagesはメタ情報のみ（id昇順）。
type ProductDetail struct {
	Product model.Product
	Images  []model.ProductImage
}

func (u *CatalogUsecase) GetProductBySlug(ctx context.Context, slug string) (ProductDetail, error) {
	p, err := u.productRepo.FindBySlug(ctx, slug)
	if err == repo.ErrNotFound {
		return ProductDetail{}, NewHTTPError(http.StatusNotFound, MsgNotFound)
	}
	if err != nil {
		return ProductDetail{}, NewHTTPErrorWithCause(http.StatusInternalServerError, MsgDatabaseError, err)
	}

	// 画像メタは本体レコードに対して補助的なので、失敗しても空リストで返す
	images, err := u.imageRepo.ListMetaByProductID(ctx, p.ID)
	if err != nil {
		images = []model.ProductImage{}
	}

	return ProductDetail{Product: p, Images: images}, nil
}

func (u *CatalogUsecase) GetImage(ctx context.Context, id int64) (model.ProductImage, error) {
	img, err := u.imageRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.ProductImage{}, NewHTTPError(http.StatusNotFound, MsgNotFound)
	}
	if err != nil {
		return model.ProductImage{}, NewHTTPErrorWithCause(http.StatusInternalServerError, MsgDatabaseError, err)
	}
	return img, nil
}
