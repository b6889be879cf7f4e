package server

import (
	"github.com/oussama604/catalogue/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	sysH *handler.SystemHandler,
	catalogH *handler.CatalogHandler,
	adminH *handler.AdminProductHandler,
) {
	sysH.RegisterRoutes(e)
	catalogH.RegisterRoutes(e)
	adminH.RegisterRoutes(e)
}
