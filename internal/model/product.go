package model

import "github.com/shopspring/decimal"

// Product is a catalog item. Size and Color may be empty.
type Product struct {
	ProductID     int             `json:"productId" yaml:"productId" db:"product_id"`
	Name          string          `json:"name" yaml:"name" db:"name"`
	ProductNumber string          `json:"productNumber" yaml:"productNumber" db:"product_number"`
	Color         string          `json:"color" yaml:"color" db:"color"`
	StandardCost  decimal.Decimal `json:"standardCost" yaml:"standardCost" db:"standard_cost"`
	ListPrice     decimal.Decimal `json:"listPrice" yaml:"listPrice" db:"list_price"`
	Size          string          `json:"size" yaml:"size" db:"size"`
}

// SalesOrderDetail is one line of a sales order.
type SalesOrderDetail struct {
	SalesOrderID       int             `json:"salesOrderId" db:"sales_order_id"`
	SalesOrderDetailID int             `json:"salesOrderDetailId" db:"sales_order_detail_id"`
	OrderQty           int             `json:"orderQty" db:"order_qty"`
	ProductID          int             `json:"productId" db:"product_id"`
	UnitPrice          decimal.Decimal `json:"unitPrice" db:"unit_price"`
	UnitPriceDiscount  decimal.Decimal `json:"unitPriceDiscount" db:"unit_price_discount"`
	LineTotal          decimal.Decimal `json:"lineTotal" db:"line_total"`
}

// ExtendedPrice is OrderQty * UnitPrice, before discount.
func (s SalesOrderDetail) ExtendedPrice() decimal.Decimal {
	return decimal.NewFromInt(int64(s.OrderQty)).Mul(s.UnitPrice)
}
