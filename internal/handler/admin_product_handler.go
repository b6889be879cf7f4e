package handler

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/oussama604/catalogue/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	// 1ファイルあたりの上限
	maxFileBytes = 5 << 20
	// フィールド別の件数上限
	maxSingleFiles = 1
	maxManyFiles   = 20
)

// 管理側の書き込みを約束
type ProductAdmin interface {
	Create(ctx context.Context, in usecase.CreateProductInput, files []usecase.UploadedFile) (int64, error)
	Update(ctx context.Context, id int64, in usecase.UpdateProductInput, files []usecase.UploadedFile) error
	Delete(ctx context.Context, id int64) error
}

// /admin/products の管理API。認証は付けない（運用側で保護する前提）。
type AdminProductHandler struct {
	uc ProductAdmin
}

// DI
func NewAdminProductHandler(uc ProductAdmin) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo) {
	admin := e.Group("/admin")

	admin.POST("/products", h.create)
	admin.PUT("/products/:id", h.update)
	admin.DELETE("/products/:id", h.delete)
}

type CreateProductResponse struct {
	OK bool  `json:"ok"`
	ID int64 `json:"id"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

func (h *AdminProductHandler) create(c echo.Context) error {
	//サイズ・件数チェックはトランザクションを開く前に済ませる
	files, err := collectFiles(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	in, err := parseCreateInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	id, err := h.uc.Create(c.Request().Context(), in, files)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, CreateProductResponse{OK: true, ID: id})
}

func (h *AdminProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	files, err := collectFiles(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	in, err := parseUpdateInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	if err := h.uc.Update(c.Request().Context(), id, in, files); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, OKResponse{OK: true})
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, OKResponse{OK: true})
}

// "image"（最大1）と"images"（最大20）を受信順にまとめて読み込む。
// 上限超過はここで弾き、usecaseには届かない。
func collectFiles(c echo.Context) ([]usecase.UploadedFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		//multipart以外（ファイル無しのフォーム）は許容する
		return nil, nil
	}

	single := form.File["image"]
	many := form.File["images"]
	if len(single) > maxSingleFiles {
		return nil, fmt.Errorf("too many files for field image (max %d)", maxSingleFiles)
	}
	if len(many) > maxManyFiles {
		return nil, fmt.Errorf("too many files for field images (max %d)", maxManyFiles)
	}

	headers := make([]*multipart.FileHeader, 0, len(single)+len(many))
	headers = append(headers, single...)
	headers = append(headers, many...)

	files := make([]usecase.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > maxFileBytes {
			return nil, fmt.Errorf("file %s exceeds the 5MiB limit", fh.Filename)
		}

		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("cannot read file %s", fh.Filename)
		}
		data, err := io.ReadAll(io.LimitReader(f, maxFileBytes+1))
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("cannot read file %s", fh.Filename)
		}
		if len(data) > maxFileBytes {
			return nil, fmt.Errorf("file %s exceeds the 5MiB limit", fh.Filename)
		}

		mime := fh.Header.Get("Content-Type")
		if mime == "" {
			mime = "application/octet-stream"
		}

		files = append(files, usecase.UploadedFile{
			MimeType: mime,
			Size:     int64(len(data)),
			Data:     data,
		})
	}
	return files, nil
}

// フォーム値の有無を区別して取り出す（""と未指定を分けるため）
func formLookup(c echo.Context, name string) (string, bool) {
	if form, err := c.MultipartForm(); err == nil {
		vs, ok := form.Value[name]
		if !ok || len(vs) == 0 {
			return "", false
		}
		return vs[0], true
	}
	if err := c.Request().ParseForm(); err != nil {
		return "", false
	}
	vs, ok := c.Request().PostForm[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// 空文字は未指定と同じ扱い
func optString(c echo.Context, name string) *string {
	v, ok := formLookup(c, name)
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func optDecimal(c echo.Context, name string) (*decimal.Decimal, error) {
	s := optString(c, name)
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &d, nil
}

func optInt64(c echo.Context, name string) (*int64, error) {
	s := optString(c, name)
	if s == nil {
		return nil, nil
	}
	n, err := strconv.ParseInt(*s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &n, nil
}

// is_availableの正規化。受理する真の表現は "true" と "on"（チェックボックス）だけで、
// それ以外の値は全てfalse扱い。
func parseAvailability(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "on":
		return true
	}
	return false
}

// createでは未指定の真偽値はfalse、他のoptional項目はnil（=NULL）。
// クライアントがslugを送ってきても読まない。
func parseCreateInput(c echo.Context) (usecase.CreateProductInput, error) {
	name, _ := formLookup(c, "name")

	price, err := optDecimal(c, "price")
	if err != nil {
		return usecase.CreateProductInput{}, err
	}
	stock, err := optInt64(c, "stock")
	if err != nil {
		return usecase.CreateProductInput{}, err
	}
	categoryID, err := optInt64(c, "category_id")
	if err != nil {
		return usecase.CreateProductInput{}, err
	}

	avail, _ := formLookup(c, "is_available")

	return usecase.CreateProductInput{
		Name:        name,
		Description: optString(c, "description"),
		Price:       price,
		Stock:       stock,
		IsAvailable: parseAvailability(avail),
		Etat:        optString(c, "etat"),
		CategoryID:  categoryID,
	}, nil
}

// updateでは未指定のフィールドは全てnil（=変更なし）。
// is_availableも未指定なら触らない（明示的なfalseとは別物）。
func parseUpdateInput(c echo.Context) (usecase.UpdateProductInput, error) {
	price, err := optDecimal(c, "price")
	if err != nil {
		return usecase.UpdateProductInput{}, err
	}
	stock, err := optInt64(c, "stock")
	if err != nil {
		return usecase.UpdateProductInput{}, err
	}
	categoryID, err := optInt64(c, "category_id")
	if err != nil {
		return usecase.UpdateProductInput{}, err
	}

	var isAvailable *bool
	if v, ok := formLookup(c, "is_available"); ok && strings.TrimSpace(v) != "" {
		b := parseAvailability(v)
		isAvailable = &b
	}

	return usecase.UpdateProductInput{
		Name:        optString(c, "name"),
		Description: optString(c, "description"),
		Price:       price,
		Stock:       stock,
		IsAvailable: isAvailable,
		Etat:        optString(c, "etat"),
		CategoryID:  categoryID,
	}, nil
}
