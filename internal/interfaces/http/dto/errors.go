package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain error codes come from the domain layer
// and are passed through the envelope unchanged.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps known error codes to HTTP status codes. Tenant
// mismatches surface as NOT_FOUND so the status never leaks whether the
// resource exists in another organization.
var errorCodeHTTPStatus = map[string]int{
	// Resource lookups
	"NOT_FOUND":        http.StatusNotFound,
	"ITEM_NOT_FOUND":   http.StatusNotFound,
	"TENANT_NOT_FOUND": http.StatusNotFound,

	// Authentication and account state
	"UNAUTHORIZED":          http.StatusUnauthorized,
	"INVALID_CREDENTIALS":   http.StatusUnauthorized,
	"INVALID_TOKEN":         http.StatusUnauthorized,
	"FORBIDDEN":             http.StatusForbidden,
	"ACCOUNT_LOCKED":        http.StatusForbidden,
	"ORGANIZATION_INACTIVE": http.StatusForbidden,

	// Conflicts with existing state, stale status transitions included
	"ALREADY_EXISTS":            http.StatusConflict,
	"DEPARTMENT_HAS_EMPLOYEES":  http.StatusConflict,
	"DEPARTMENT_HAS_CHILDREN":   http.StatusConflict,
	"DEPARTMENT_HAS_POSITIONS":  http.StatusConflict,
	"PLAN_IN_USE":               http.StatusConflict,
	"RECEIPT_LOCKED":            http.StatusConflict,
	"INVALID_STATE":             http.StatusConflict,
	"INVALID_STATUS":            http.StatusConflict,
	"INVALID_STATUS_TRANSITION": http.StatusConflict,
	"INVALID_DELIVERY_STATUS":   http.StatusConflict,

	// Business rule violations are rejected as bad requests
	"CYCLE_DETECTED":            http.StatusBadRequest,
	"INSUFFICIENT_STOCK":        http.StatusBadRequest,
	"ITEM_INACTIVE":             http.StatusBadRequest,
	"BUDGET_EXCEEDED":           http.StatusBadRequest,
	"PLAN_NOT_APPROVED":         http.StatusBadRequest,
	"PLAN_NOT_EDITABLE":         http.StatusBadRequest,
	"ORDER_NOT_EDITABLE":        http.StatusBadRequest,
	"QC_REQUIRED":               http.StatusBadRequest,
	"EMPTY_RECEIPT":             http.StatusBadRequest,
	"QUANTITY_EXCEEDED":         http.StatusBadRequest,
	"PAYMENT_EXCEEDS_TOTAL":     http.StatusBadRequest,
	"REJECTION_REASON_REQUIRED": http.StatusBadRequest,
	"SUPPLIER_UNAVAILABLE":      http.StatusBadRequest,
	"DUPLICATE_ITEM":            http.StatusBadRequest,
	"DUPLICATE_INGREDIENT":      http.StatusBadRequest,

	// Corrupted data is a server fault
	"HIERARCHY_CORRUPT": http.StatusInternalServerError,
	"LEDGER_MISMATCH":   http.StatusInternalServerError,
	"INTERNAL_ERROR":    http.StatusInternalServerError,
}

// GetHTTPStatus resolves the HTTP status for an error code. Unknown
// ALREADY_* codes fall back to conflict, everything else unknown to bad
// request.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "ALREADY_") {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}
