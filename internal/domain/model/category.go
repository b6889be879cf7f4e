package model

// カテゴリ。このシステムからは読み取り専用（書き込みAPIなし）。
type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
	Slug string `gorm:"type:varchar(255);not null;index" json:"slug"`
}

func (Category) TableName() string {
	return "categories"
}
