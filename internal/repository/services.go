package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/opsledger/svcledger/pkg/types"
)

// AddService subscribes a customer to a service created from a template.
// The template's name, prices, and category are copied at creation time;
// later template edits or deletion never touch the service. Templates whose
// category requires a domain reject a blank one with ErrValidation; for any
// other category the domain is stored empty regardless of input.
func (r *Repository) AddService(customerID, templateID int64, renewalDate time.Time, domain string) (int64, error) {
	if renewalDate.IsZero() {
		return 0, fmt.Errorf("%w: renewal date is required", types.ErrValidation)
	}
	if _, err := r.CustomerByID(customerID); err != nil {
		return 0, err
	}
	tpl, err := r.TemplateByID(templateID)
	if err != nil {
		return 0, err
	}

	domain = strings.TrimSpace(domain)
	if tpl.Category.RequiresDomain() {
		if domain == "" {
			return 0, fmt.Errorf("%w: a domain is required for %s services", types.ErrValidation, tpl.Category)
		}
	} else {
		domain = ""
	}

	id, err := r.store.ExecInsert(
		"INSERT INTO customer_services (customer_id, service_name, monthly_price, yearly_price, renewal_date, payment_status, domain) VALUES (?, ?, ?, ?, ?, ?, ?)",
		customerID, tpl.Name, tpl.MonthlyPrice.String(), tpl.YearlyPrice.String(),
		renewalDate.Format(types.DateLayout), string(types.ServiceActive), domain,
	)
	if err != nil {
		return 0, fmt.Errorf("adding service: %w", err)
	}
	if err := r.store.Persist(); err != nil {
		return 0, fmt.Errorf("persisting service: %w", err)
	}

	r.log.Info().
		Int64("service_id", id).
		Int64("customer_id", customerID).
		Str("service_name", tpl.Name).
		Msg("service added")
	return id, nil
}

// ServiceByID looks up a customer service by id.
// Returns ErrNotFound when the id does not exist.
func (r *Repository) ServiceByID(id int64) (types.CustomerService, error) {
	row, err := r.store.QueryRow(
		"SELECT id, customer_id, service_name, monthly_price, yearly_price, renewal_date, payment_status, domain FROM customer_services WHERE id = ?", id,
	)
	if err != nil {
		return types.CustomerService{}, err
	}
	return scanService(row)
}

// ListCustomerServices returns one customer's services in insertion order.
func (r *Repository) ListCustomerServices(customerID int64) ([]types.CustomerService, error) {
	return r.listServices(
		"SELECT id, customer_id, service_name, monthly_price, yearly_price, renewal_date, payment_status, domain FROM customer_services WHERE customer_id = ? ORDER BY id",
		customerID,
	)
}

// ListAllServices returns every customer service in insertion order.
func (r *Repository) ListAllServices() ([]types.CustomerService, error) {
	return r.listServices(
		"SELECT id, customer_id, service_name, monthly_price, yearly_price, renewal_date, payment_status, domain FROM customer_services ORDER BY id",
	)
}

// CountServices returns how many services a customer has.
func (r *Repository) CountServices(customerID int64) (int, error) {
	row, err := r.store.QueryRow(
		"SELECT COUNT(*) FROM customer_services WHERE customer_id = ?", customerID,
	)
	if err != nil {
		return 0, err
	}
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting services: %v", types.ErrStorage, err)
	}
	return count, nil
}

func (r *Repository) listServices(query string, args ...any) ([]types.CustomerService, error) {
	rows, err := r.store.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []types.CustomerService
	for rows.Next() {
		sv, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, sv)
	}
	return services, rows.Err()
}

// scanService hydrates one customer_services row.
func scanService(s scanner) (types.CustomerService, error) {
	var sv types.CustomerService
	var monthly, yearly, renewal, status string
	if err := s.Scan(&sv.ID, &sv.CustomerID, &sv.ServiceName, &monthly, &yearly, &renewal, &status, &sv.Domain); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.CustomerService{}, fmt.Errorf("%w: service", types.ErrNotFound)
		}
		return types.CustomerService{}, fmt.Errorf("%w: scanning service: %v", types.ErrStorage, err)
	}

	var err error
	if sv.MonthlyPrice, err = parsePrice(monthly); err != nil {
		return types.CustomerService{}, err
	}
	if sv.YearlyPrice, err = parsePrice(yearly); err != nil {
		return types.CustomerService{}, err
	}
	if sv.RenewalDate, err = parseDate(renewal); err != nil {
		return types.CustomerService{}, err
	}
	sv.Status = types.ServiceStatus(status)
	return sv, nil
}
