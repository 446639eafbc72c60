package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")
var ErrDuplicateSKU = errors.New("sku already exists")

// Product is a catalog item referenced by shipment manifest lines.
type Product struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	SKU          string    `json:"sku" bson:"sku"`
	Name         string    `json:"name" bson:"name"`
	Category     string    `json:"category,omitempty" bson:"category,omitempty"`
	Stock        int       `json:"stock" bson:"stock"`
	UnitPrice    float64   `json:"unit_price" bson:"unit_price"`
	ReorderLevel int       `json:"reorder_level" bson:"reorder_level"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
