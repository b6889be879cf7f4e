package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/oussama604/catalogue/internal/domain/model"
	"github.com/oussama604/catalogue/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		//詳細はサーバーログのみ。クライアントにはMessageだけ返す。
		if he.Status >= http.StatusInternalServerError {
			c.Logger().Error(he.Error())
		}
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	c.Logger().Error(err.Error())
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// 公開側の読み取りを約束
type CatalogProvider interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (usecase.ProductDetail, error)
	GetImage(ctx context.Context, id int64) (model.ProductImage, error)
}

// 公開カタログAPI
type CatalogHandler struct {
	uc CatalogProvider
}

// DI
func NewCatalogHandler(uc CatalogProvider) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/categories", h.listCategories)
	e.GET("/products", h.listProducts)
	e.GET("/products-all", h.listProductsCached)
	e.GET("/products/:slug", h.productBySlug)
	e.GET("/images/:id", h.imageByID)
}

// 商品のレスポンス形。カテゴリのname/slugをフラットに持つ（カテゴリ無しはnull）。
type ProductView struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Stock        *int64           `json:"stock"`
	ImageURL     *string          `json:"image_url"`
	IsAvailable  bool             `json:"is_available"`
	Etat         *string          `json:"etat"`
	CategoryID   *int64           `json:"category_id"`
	MainImageID  *int64           `json:"main_image_id"`
	CategoryName *string          `json:"category_name"`
	CategorySlug *string          `json:"category_slug"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type ImageView struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
}

type ProductDetailView struct {
	ProductView
	Images []ImageView `json:"images"`
}

func toProductView(p model.Product) ProductView {
	v := ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		IsAvailable: p.IsAvailable,
		Etat:        p.Etat,
		CategoryID:  p.CategoryID,
		MainImageID: p.MainImageID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Category != nil {
		v.CategoryName = &p.Category.Name
		v.CategorySlug = &p.Category.Slug
	}
	return v
}

func toImageViews(images []model.ProductImage) []ImageView {
	views := make([]ImageView, len(images))
	for i, img := range images {
		views[i] = ImageView{
			ID:        img.ID,
			URL:       "/images/" + strconv.FormatInt(img.ID, 10),
			MimeType:  img.MimeType,
			SizeBytes: img.SizeBytes,
		}
	}
	return views
}

func (h *CatalogHandler) listCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHandler) listProducts(c echo.Context) error {
	return h.serveProducts(c)
}

// /productsと同じ行を返すが、下流キャッシュ向けのヘッダを付ける
func (h *CatalogHandler) listProductsCached(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "public, max-age=300, stale-while-revalidate=60")
	return h.serveProducts(c)
}

func (h *CatalogHandler) serveProducts(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = toProductView(p)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *CatalogHandler) productBySlug(c echo.Context) error {
	detail, err := h.uc.GetProductBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, ProductDetailView{
		ProductView: toProductView(detail.Product),
		Images:      toImageViews(detail.Images),
	})
}

// 画像バイナリ。作成後不変なので長めの公開キャッシュを許可する。
// このルートだけエラーもplain textで返す。
func (h *CatalogHandler) imageByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.String(http.StatusNotFound, "image not found")
	}

	img, err := h.uc.GetImage(c.Request().Context(), id)
	if err != nil {
		if he, ok := usecase.AsHTTPError(err); ok && he.Status == http.StatusNotFound {
			return c.String(http.StatusNotFound, "image not found")
		}
		c.Logger().Error(err.Error())
		return c.String(http.StatusInternalServerError, "internal error")
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=3600")
	return c.Blob(http.StatusOK, img.MimeType, img.Data)
}
