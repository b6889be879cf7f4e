package main

import (
	"log"

	"github.com/oussama604/catalogue/internal/config"
	"github.com/oussama604/catalogue/internal/domain/model"
	"github.com/oussama604/catalogue/internal/handler"
	"github.com/oussama604/catalogue/internal/infra/db"
	infraRepo "github.com/oussama604/catalogue/internal/infra/repository"
	"github.com/oussama604/catalogue/internal/server"
	"github.com/oussama604/catalogue/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment as-is")
	}

	cfg := config.Load()

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	imageRepo := infraRepo.NewProductImageGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(categoryRepo, productRepo, imageRepo)
	adminUC := usecase.NewAdminProductUsecase(txm, productRepo)

	//Handler生成
	sysH := handler.NewSystemHandler(gormDB)
	catalogH := handler.NewCatalogHandler(catalogUC)
	adminH := handler.NewAdminProductHandler(adminUC)

	//Server起動
	e := server.New(cfg.PublicDir, sysH, catalogH, adminH)
	if err := server.Start(e, ":"+cfg.Port); err != nil {
		panic(err)
	}
}
