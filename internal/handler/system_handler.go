package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const helpText = `catalogue API

GET  /health                  liveness
GET  /db-ping                 database connectivity
GET  /categories              list categories
GET  /products                list products
GET  /products-all            list products (cacheable)
GET  /products/:slug          product detail with images
GET  /images/:id              raw image bytes

POST   /admin/products        create product (multipart)
PUT    /admin/products/:id    update product (multipart)
DELETE /admin/products/:id    delete product
`

type HealthResponse struct {
	OK bool `json:"ok"`
}

type DBPingResponse struct {
	OK int `json:"ok"`
}

// 稼働確認と導線だけの雑多なルート
type SystemHandler struct {
	db *gorm.DB
}

// DI
func NewSystemHandler(db *gorm.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

func (h *SystemHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.root)
	e.GET("/health", h.health)
	e.GET("/db-ping", h.dbPing)
}

func (h *SystemHandler) root(c echo.Context) error {
	return c.String(http.StatusOK, helpText)
}

func (h *SystemHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{OK: true})
}

func (h *SystemHandler) dbPing(c echo.Context) error {
	var one int
	if err := h.db.WithContext(c.Request().Context()).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, DBPingResponse{OK: 1})
}
