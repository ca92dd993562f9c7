package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is empty or not whitelisted.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// InventoryItemSortFields contains allowed sort fields for inventory items
var InventoryItemSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"code":          true,
	"name":          true,
	"category":      true,
	"current_stock": true,
	"min_stock":     true,
	"cost_per_unit": true,
}

// StockMovementSortFields contains allowed sort fields for stock movements
var StockMovementSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"movement_date": true,
	"movement_type": true,
	"quantity":      true,
}

// ProcurementSortFields contains allowed sort fields for procurements
var ProcurementSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"status":       true,
	"total_amount": true,
	"paid_amount":  true,
	"order_date":   true,
}

// PlanSortFields contains allowed sort fields for procurement plans
var PlanSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"status":       true,
	"period_start": true,
	"period_end":   true,
	"total_budget": true,
}

// ProductionSortFields contains allowed sort fields for production batches
var ProductionSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"batch_number":    true,
	"status":          true,
	"production_date": true,
	"planned_portions": true,
}

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"code":           true,
	"name":           true,
	"category":       true,
	"status":         true,
	"overall_rating": true,
}

// DepartmentSortFields contains allowed sort fields for departments
var DepartmentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"status":     true,
	"sort_order": true,
}

// EmployeeSortFields contains allowed sort fields for employees
var EmployeeSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"employee_number": true,
	"full_name":       true,
	"status":          true,
	"hired_at":        true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"status":        true,
	"last_login_at": true,
}

// SppgSortFields contains allowed sort fields for organizations
var SppgSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"status":     true,
}

// ReportSortFields contains allowed sort fields for monitoring reports
var ReportSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"title":        true,
	"period":       true,
	"period_start": true,
}

// NotificationSortFields contains allowed sort fields for notifications
var NotificationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"channel":    true,
	"status":     true,
}
