package persistence

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
)

// translateError maps GORM errors to domain errors
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key value") {
		return shared.ErrAlreadyExists
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(err.Error(), "violates foreign key constraint") {
		return shared.NewDomainError("CONFLICT", "Resource is referenced by other records")
	}
	return err
}

// applyFilter applies pagination and ordering to a query. The sort field is
// checked against an allow-list before reaching the SQL string.
func applyFilter(query *gorm.DB, filter shared.Filter, allowedSortFields map[string]bool, defaultSort string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowedSortFields, defaultSort)
	dir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", field, dir))

	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}
