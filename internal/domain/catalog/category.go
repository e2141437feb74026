package catalog

import (
	"regexp"
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

var categoryNamePattern = regexp.MustCompile(`^[a-zA-Z0-9 \-_]+$`)

// Category groups products for browsing
type Category struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(1000)" json:"description"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := validateCategoryDescription(description); err != nil {
		return nil, err
	}
	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}

// Update changes the category's fields; empty name keeps the current one
func (c *Category) Update(name, description string, updateDescription bool) error {
	name = strings.TrimSpace(name)
	if name != "" {
		if err := validateCategoryName(name); err != nil {
			return err
		}
		c.Name = name
	}
	if updateDescription {
		if err := validateCategoryDescription(description); err != nil {
			return err
		}
		c.Description = description
	}
	c.Touch()
	return nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Category name is required")
	}
	if len(name) > 100 {
		return shared.NewDomainError("VALIDATION_ERROR", "Category name must be at most 100 characters")
	}
	if !categoryNamePattern.MatchString(name) {
		return shared.NewDomainError("VALIDATION_ERROR", "Category name can only contain letters, numbers, spaces, hyphens and underscores")
	}
	return nil
}

func validateCategoryDescription(description string) error {
	if len(description) > 1000 {
		return shared.NewDomainError("VALIDATION_ERROR", "Category description must be at most 1000 characters")
	}
	return nil
}
