package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/oussama604/catalogue/internal/domain/model"
	repo "github.com/oussama604/catalogue/internal/repository"
	"github.com/oussama604/catalogue/internal/slug"

	"github.com/shopspring/decimal"
)

// アップロード済みファイル。Handler層でサイズ/件数チェック済みの状態で渡る。
type UploadedFile struct {
	MimeType string
	Size     int64
	Data     []byte
}

// create入力。Optionalなフィールドは未指定/空ならnil（=NULLで保存）。
// IsAvailableはHandler側で真偽値に正規化済み。
type CreateProductInput struct {
	Name        string
	Description *string
	Price       *decimal.Decimal
	Stock       *int64
	IsAvailable bool
	Etat        *string
	CategoryID  *int64
}

// update入力。nilのフィールドは既存値を変更しない。
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int64
	IsAvailable *bool
	Etat        *string
	CategoryID  *int64
}

type AdminProductUsecase struct {
	txm         repo.TransactionManager
	productRepo repo.ProductRepository
}

// DI
func NewAdminProductUsecase(txm repo.TransactionManager, productRepo repo.ProductRepository) *AdminProductUsecase {
	return &AdminProductUsecase{txm: txm, productRepo: productRepo}
}

func imageURL(imageID int64) string {
	return fmt.Sprintf("/images/%d", imageID)
}

// 商品作成。商品行の挿入、画像行の挿入、メイン画像の設定までを1トランザクションで行う。
// 途中で失敗したら全てrollbackされる（商品行も画像行も残らない）。
func (u *AdminProductUsecase) Create(ctx context.Context, in CreateProductInput, files []UploadedFile) (int64, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "name required")
	}

	var createdID int64
	err := u.txm.WithinTx(ctx, func(r repo.TxRepos) error {
		now := time.Now()
		created, err := r.Products().Create(ctx, model.Product{
			Name:        name,
			Slug:        slug.Normalize(name),
			Description: in.Description,
			Price:       in.Price,
			Stock:       in.Stock,
			IsAvailable: in.IsAvailable,
			Etat:        in.Etat,
			CategoryID:  in.CategoryID,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}
		createdID = created.ID

		mainImageID, err := insertImages(ctx, r, created.ID, files)
		if err != nil {
			return err
		}
		if mainImageID != 0 {
			if err := r.Products().SetMainImage(ctx, created.ID, mainImageID, imageURL(mainImageID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return 0, err
		}
		//書き込み系は失敗理由をそのまま返す
		return 0, NewHTTPErrorWithCause(http.StatusBadRequest, err.Error(), err)
	}

	return createdID, nil
}

// 商品更新。指定されたフィールドだけを上書きし、updated_atは常に刷新する。
// nameが指定されたときだけslugを作り直す。新しい画像があれば挿入し、
// その1枚目でメイン画像を差し替える（既存画像は残るが参照されなくなる）。
func (u *AdminProductUsecase) Update(ctx context.Context, id int64, in UpdateProductInput, files []UploadedFile) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	patch := repo.ProductPatch{
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		IsAvailable: in.IsAvailable,
		Etat:        in.Etat,
		CategoryID:  in.CategoryID,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return NewHTTPError(http.StatusBadRequest, "name must not be empty")
		}
		s := slug.Normalize(name)
		patch.Name = &name
		patch.Slug = &s
	}

	err := u.txm.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Products().UpdateFields(ctx, id, patch); err != nil {
			return err
		}

		mainImageID, err := insertImages(ctx, r, id, files)
		if err != nil {
			return err
		}
		if mainImageID != 0 {
			if err := r.Products().SetMainImage(ctx, id, mainImageID, imageURL(mainImageID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return err
		}
		return NewHTTPErrorWithCause(http.StatusBadRequest, err.Error(), err)
	}

	return nil
}

// 商品削除。トランザクションは張らず、行が無くても成功扱い（冪等）。
// 画像行はFKカスケードで消える。
func (u *AdminProductUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := u.productRepo.Delete(ctx, id); err != nil {
		return NewHTTPErrorWithCause(http.StatusBadRequest, err.Error(), err)
	}
	return nil
}

// 画像を受信順に挿入し、1枚目のidを返す。1枚も無ければ0。
func insertImages(ctx context.Context, r repo.TxRepos, productID int64, files []UploadedFile) (int64, error) {
	var firstID int64
	for _, f := range files {
		img, err := r.ProductImages().Create(ctx, model.ProductImage{
			ProductID: productID,
			MimeType:  f.MimeType,
			Data:      f.Data,
			SizeBytes: f.Size,
		})
		if err != nil {
			return 0, err
		}
		if firstID == 0 {
			firstID = img.ID
		}
	}
	return firstID, nil
}
