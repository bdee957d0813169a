package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 在庫アイテム。
// statusはDBに持たず、出力時にstockから導出する。
type InventoryItem struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	//SKUは全アイテムで一意
	SKU string `gorm:"type:varchar(100);not null;uniqueIndex" json:"sku"`

	CategoryID *string `gorm:"type:uuid;index" json:"category_id"`
	SupplierID *string `gorm:"type:uuid;index" json:"supplier_id"`

	Stock int64           `gorm:"not null;default:0" json:"stock"`
	Price decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"categories,omitempty"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"suppliers,omitempty"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}
