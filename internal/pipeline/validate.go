package pipeline

import (
	"fmt"

	"go-sales-stats/internal/model"
)

// ValidateProducts drops products that break the catalog rules.
func ValidateProducts(products []model.Product, tracker *Tracker) []model.Product {
	return validate(products, validateProduct, tracker)
}

// ValidateSales drops sales order details that break the order rules.
func ValidateSales(sales []model.SalesOrderDetail, tracker *Tracker) []model.SalesOrderDetail {
	return validate(sales, validateSale, tracker)
}

func validate[T any](records []T, check func(T) error, tracker *Tracker) []T {
	valid := make([]T, 0, len(records))
	for _, rec := range records {
		if err := check(rec); err != nil {
			tracker.Reject(stageValidation, err)
			continue
		}
		valid = append(valid, rec)
	}
	return valid
}

func validateProduct(p model.Product) error {
	if p.ProductID <= 0 {
		return fmt.Errorf("product %q: missing required field: ProductID", p.Name)
	}
	if p.Name == "" {
		return fmt.Errorf("product %d: missing required field: Name", p.ProductID)
	}
	if p.ListPrice.IsNegative() {
		return fmt.Errorf("product %d: ListPrice below minimum: got %s, want ≥ 0", p.ProductID, p.ListPrice)
	}
	if p.StandardCost.IsNegative() {
		return fmt.Errorf("product %d: StandardCost below minimum: got %s, want ≥ 0", p.ProductID, p.StandardCost)
	}
	return nil
}

func validateSale(s model.SalesOrderDetail) error {
	if s.SalesOrderID <= 0 || s.SalesOrderDetailID <= 0 {
		return fmt.Errorf("sales order detail %d/%d: missing required id", s.SalesOrderID, s.SalesOrderDetailID)
	}
	if s.ProductID <= 0 {
		return fmt.Errorf("sales order detail %d/%d: missing required field: ProductID", s.SalesOrderID, s.SalesOrderDetailID)
	}
	if s.OrderQty <= 0 {
		return fmt.Errorf("sales order detail %d/%d: OrderQty below minimum: got %d, want ≥ 1",
			s.SalesOrderID, s.SalesOrderDetailID, s.OrderQty)
	}
	if s.UnitPrice.IsNegative() {
		return fmt.Errorf("sales order detail %d/%d: UnitPrice below minimum: got %s, want ≥ 0",
			s.SalesOrderID, s.SalesOrderDetailID, s.UnitPrice)
	}
	return nil
}
