package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品。slugは常にnameから生成される（クライアント指定のslugは無視）。
// MainImageIDは同じ商品のProductImageを指す。設定時にImageURLも "/images/<id>" になる。
type Product struct {
	ID          int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string           `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string           `gorm:"type:varchar(255);not null;index" json:"slug"`
	Description *string          `gorm:"type:text" json:"description"`
	Price       *decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Stock       *int64           `json:"stock"`
	ImageURL    *string          `gorm:"type:varchar(255)" json:"image_url"`
	IsAvailable bool             `gorm:"not null;default:true" json:"is_available"`
	Etat        *string          `gorm:"type:varchar(50)" json:"etat"`
	CategoryID  *int64           `gorm:"index" json:"category_id"`
	Category    *Category        `gorm:"foreignKey:CategoryID" json:"-"`
	MainImageID *int64           `json:"main_image_id"`
	Images      []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
