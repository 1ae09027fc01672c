package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/opsledger/svcledger/pkg/types"
)

// AddTemplate creates a service template and returns its id. When category
// is empty it is derived from the name, preserving the historical
// name-based rule. Non-positive prices fail with ErrValidation.
func (r *Repository) AddTemplate(name, description string, monthly, yearly decimal.Decimal, category types.TemplateCategory) (int64, error) {
	name = strings.TrimSpace(name)
	if category == "" {
		category = types.DeriveCategory(name)
	}

	tpl := types.ServiceTemplate{
		Name:         name,
		Description:  description,
		MonthlyPrice: monthly,
		YearlyPrice:  yearly,
		Category:     category,
	}
	if err := tpl.Validate(); err != nil {
		return 0, fmt.Errorf("%w: template needs a name and positive prices", types.ErrValidation)
	}

	id, err := r.store.ExecInsert(
		"INSERT INTO service_templates (name, description, monthly_price, yearly_price, category) VALUES (?, ?, ?, ?, ?)",
		name, description, monthly.String(), yearly.String(), string(category),
	)
	if err != nil {
		return 0, fmt.Errorf("adding template: %w", err)
	}
	if err := r.store.Persist(); err != nil {
		return 0, fmt.Errorf("persisting template: %w", err)
	}

	r.log.Info().Int64("template_id", id).Str("name", name).Str("category", string(category)).Msg("template added")
	return id, nil
}

// TemplateByID looks up a template by id.
// Returns ErrNotFound when the id does not exist.
func (r *Repository) TemplateByID(id int64) (types.ServiceTemplate, error) {
	row, err := r.store.QueryRow(
		"SELECT id, name, COALESCE(description, ''), monthly_price, yearly_price, category FROM service_templates WHERE id = ?", id,
	)
	if err != nil {
		return types.ServiceTemplate{}, err
	}
	return scanTemplate(row)
}

// UpdateTemplatePrice changes a template's monthly price. Existing services
// keep their copied prices. Returns ErrNotFound when the template does not
// exist and ErrValidation when the price is not positive.
func (r *Repository) UpdateTemplatePrice(id int64, monthly decimal.Decimal) error {
	if !monthly.IsPositive() {
		return fmt.Errorf("%w: price must be positive", types.ErrValidation)
	}
	if _, err := r.TemplateByID(id); err != nil {
		return err
	}

	if err := r.store.Exec(
		"UPDATE service_templates SET monthly_price = ? WHERE id = ?",
		monthly.String(), id,
	); err != nil {
		return fmt.Errorf("updating template price: %w", err)
	}
	if err := r.store.Persist(); err != nil {
		return fmt.Errorf("persisting template price: %w", err)
	}

	r.log.Info().Int64("template_id", id).Str("monthly_price", monthly.String()).Msg("template price updated")
	return nil
}

// DeleteTemplate removes a template. Services created from it are untouched:
// they own copies of the name and prices. Returns ErrNotFound when the
// template does not exist.
func (r *Repository) DeleteTemplate(id int64) error {
	if _, err := r.TemplateByID(id); err != nil {
		return err
	}

	if err := r.store.Exec("DELETE FROM service_templates WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	if err := r.store.Persist(); err != nil {
		return fmt.Errorf("persisting template deletion: %w", err)
	}

	r.log.Info().Int64("template_id", id).Msg("template deleted")
	return nil
}

// ListTemplates returns all templates in insertion order.
func (r *Repository) ListTemplates() ([]types.ServiceTemplate, error) {
	rows, err := r.store.Query(
		"SELECT id, name, COALESCE(description, ''), monthly_price, yearly_price, category FROM service_templates ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []types.ServiceTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// scanTemplate hydrates one service_templates row.
func scanTemplate(s scanner) (types.ServiceTemplate, error) {
	var t types.ServiceTemplate
	var monthly, yearly, category string
	if err := s.Scan(&t.ID, &t.Name, &t.Description, &monthly, &yearly, &category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.ServiceTemplate{}, fmt.Errorf("%w: template", types.ErrNotFound)
		}
		return types.ServiceTemplate{}, fmt.Errorf("%w: scanning template: %v", types.ErrStorage, err)
	}

	var err error
	if t.MonthlyPrice, err = parsePrice(monthly); err != nil {
		return types.ServiceTemplate{}, err
	}
	if t.YearlyPrice, err = parsePrice(yearly); err != nil {
		return types.ServiceTemplate{}, err
	}
	t.Category = types.TemplateCategory(category)
	return t, nil
}
