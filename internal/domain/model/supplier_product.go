package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 仕入先カタログの商品。
// 在庫数は持たない（仕入先側の在庫は管理対象外）。
type SupplierProduct struct {
	ID          string              `gorm:"type:uuid;primaryKey" json:"id"`
	SupplierID  string              `gorm:"type:uuid;not null;index" json:"supplier_id"`
	ProductName string              `gorm:"type:varchar(255);not null" json:"product_name"`
	Description string              `gorm:"type:text" json:"description"`
	Price       decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"price"`
	CreatedAt   time.Time           `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (SupplierProduct) TableName() string {
	return "supplier_products"
}
