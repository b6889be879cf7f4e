package model

// 商品画像。商品のcreate/update時のアップロードでのみ作られ、以後更新されない。
// バイナリ本体はbytea列に保存する。商品削除時はFKカスケードで一緒に消える。
type ProductImage struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64  `gorm:"not null;index" json:"product_id"`
	MimeType  string `gorm:"type:varchar(100);not null" json:"mime_type"`
	Data      []byte `gorm:"type:bytea;not null" json:"-"`
	SizeBytes int64  `gorm:"not null" json:"size_bytes"`
}

func (ProductImage) TableName() string {
	return "product_images"
}
