package inventory

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sppg/backend/internal/domain/inventory"
	"github.com/sppg/backend/internal/domain/shared"
	csvimport "github.com/sppg/backend/internal/infrastructure/import"
)

// ImportResult summarizes a bulk item import
type ImportResult struct {
	TotalRows int                  `json:"total_rows"`
	Imported  int                  `json:"imported"`
	Skipped   int                  `json:"skipped"`
	ErrorRows int                  `json:"error_rows"`
	Errors    []csvimport.RowError `json:"errors,omitempty"`
}

const importMaxErrors = 100

// ImportService bulk-creates inventory items from CSV uploads. Rows failing
// validation are reported back; valid rows are created, and rows whose code
// already exists for the tenant are skipped rather than overwritten.
type ImportService struct {
	itemRepo inventory.InventoryItemRepository
}

// NewImportService creates an ImportService
func NewImportService(itemRepo inventory.InventoryItemRepository) *ImportService {
	return &ImportService{itemRepo: itemRepo}
}

func itemImportRules() []csvimport.FieldRule {
	return []csvimport.FieldRule{
		csvimport.Field("code").Required().String().Length(1, 50).Build(),
		csvimport.Field("name").Required().String().Length(1, 200).Build(),
		csvimport.Field("category").Required().Custom(func(value string) error {
			if !inventory.ItemCategory(strings.ToUpper(value)).IsValid() {
				return errors.New("unknown item category")
			}
			return nil
		}).Build(),
		csvimport.Field("unit").Required().String().Length(1, 20).Build(),
		csvimport.Field("min_stock").Decimal().MinValue(decimal.Zero).Build(),
	}
}

// ImportItems parses the CSV and creates an item per valid row
func (s *ImportService) ImportItems(ctx context.Context, tenantID uuid.UUID, reader io.Reader) (*ImportResult, error) {
	parser, err := csvimport.NewCSVParser(reader)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", err.Error())
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, shared.NewDomainError("INVALID_FILE", err.Error())
	}
	if missing := parser.ValidateHeaders([]string{"code", "name", "category", "unit"}); len(missing) > 0 {
		return nil, shared.NewDomainError("MISSING_COLUMNS",
			"Missing required columns: "+strings.Join(missing, ", "))
	}

	validator := csvimport.NewFieldValidator(itemImportRules(), importMaxErrors)
	result := &ImportResult{}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := parser.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, shared.NewDomainError("INVALID_FILE", err.Error())
		}
		if row.IsEmpty() {
			continue
		}
		result.TotalRows++

		if !validator.ValidateRow(row) {
			result.ErrorRows++
			continue
		}

		code := strings.ToUpper(strings.TrimSpace(row.Get("code")))
		exists, err := s.itemRepo.ExistsByCode(ctx, tenantID, code)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Skipped++
			continue
		}

		item, err := inventory.NewInventoryItem(
			tenantID,
			code,
			row.Get("name"),
			inventory.ItemCategory(strings.ToUpper(row.Get("category"))),
			row.Get("unit"),
		)
		if err != nil {
			result.ErrorRows++
			result.Errors = append(result.Errors,
				csvimport.NewRowError(row.LineNumber, "", "INVALID_ROW", err.Error()))
			continue
		}
		if raw := row.Get("min_stock"); raw != "" {
			if minStock, err := decimal.NewFromString(raw); err == nil {
				if err := item.SetMinStock(minStock); err != nil {
					result.ErrorRows++
					result.Errors = append(result.Errors,
						csvimport.NewRowError(row.LineNumber, "min_stock", "INVALID_ROW", err.Error()))
					continue
				}
			}
		}

		if err := s.itemRepo.Save(ctx, item); err != nil {
			return nil, err
		}
		result.Imported++
	}

	result.Errors = append(result.Errors, validator.Errors().Errors()...)
	return result, nil
}
