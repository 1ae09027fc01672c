package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TemplateCategory classifies a service template. The category is fixed at
// template creation and decides whether services created from the template
// carry a domain name.
type TemplateCategory string

// Template categories.
const (
	CategoryGeneral TemplateCategory = "general"
	CategoryHosting TemplateCategory = "hosting"
	CategoryDomain  TemplateCategory = "domain"
	CategoryEmail   TemplateCategory = "email"
)

// validCategories is the set of recognized category values.
var validCategories = map[TemplateCategory]bool{
	CategoryGeneral: true,
	CategoryHosting: true,
	CategoryDomain:  true,
	CategoryEmail:   true,
}

// Valid reports whether the category is a recognized value.
func (c TemplateCategory) Valid() bool {
	return validCategories[c]
}

// RequiresDomain reports whether services created from a template of this
// category must carry a non-empty domain name.
func (c TemplateCategory) RequiresDomain() bool {
	switch c {
	case CategoryHosting, CategoryDomain, CategoryEmail:
		return true
	}
	return false
}

// DeriveCategory infers a category from a template name. A name containing
// "domain", "hosting", or "email" (case-insensitive) maps to the matching
// category; anything else is general. Used when a template is created
// without an explicit category.
func DeriveCategory(name string) TemplateCategory {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "domain"):
		return CategoryDomain
	case strings.Contains(lower, "hosting"):
		return CategoryHosting
	case strings.Contains(lower, "email"):
		return CategoryEmail
	}
	return CategoryGeneral
}

// ServiceTemplate is an admin-managed service offering. Services copy the
// template's name and prices at creation time; editing or deleting a
// template never touches existing services.
type ServiceTemplate struct {
	ID           int64
	Name         string
	Description  string // optional
	MonthlyPrice decimal.Decimal
	YearlyPrice  decimal.Decimal
	Category     TemplateCategory
}

// Validate checks that the template is well-formed: a non-empty name and
// strictly positive prices.
func (t ServiceTemplate) Validate() error {
	if t.Name == "" {
		return ErrValidation
	}
	if !t.MonthlyPrice.IsPositive() || !t.YearlyPrice.IsPositive() {
		return ErrValidation
	}
	if t.Category != "" && !t.Category.Valid() {
		return ErrValidation
	}
	return nil
}
