package server

import (
	"net/http"

	"github.com/oussama604/catalogue/internal/handler"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// New はechoを組み立てて全ルートを登録する。
func New(
	publicDir string,
	sysH *handler.SystemHandler,
	catalogH *handler.CatalogHandler,
	adminH *handler.AdminProductHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	//画像21枚×5MiB+フォーム分。1ファイル5MiBの個別チェックはhandler側。
	e.Use(middleware.BodyLimit("110M"))

	RegisterRoutes(e, sysH, catalogH, adminH)

	//管理コンソールの静的ページ
	e.Static("/admin", publicDir)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
