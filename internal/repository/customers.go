package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/opsledger/svcledger/pkg/types"
)

// AddCustomer creates a customer and returns its engine-assigned id.
// A duplicate email fails with ErrConstraint; blank fields with
// ErrValidation.
func (r *Repository) AddCustomer(name, email, password string) (int64, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return 0, fmt.Errorf("%w: name, email, and password are required", types.ErrValidation)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	id, err := r.store.ExecInsert(
		"INSERT INTO customers (name, email, password, created_at) VALUES (?, ?, ?, ?)",
		name, email, password, now,
	)
	if err != nil {
		return 0, fmt.Errorf("adding customer: %w", err)
	}
	if err := r.store.Persist(); err != nil {
		return 0, fmt.Errorf("persisting customer: %w", err)
	}

	r.log.Info().Int64("customer_id", id).Str("email", email).Msg("customer added")
	return id, nil
}

// CustomerByEmail looks up a customer by unique email.
// Returns ErrNotFound when no customer has that email.
func (r *Repository) CustomerByEmail(email string) (types.Customer, error) {
	row, err := r.store.QueryRow(
		"SELECT id, name, email, password, created_at FROM customers WHERE email = ?", email,
	)
	if err != nil {
		return types.Customer{}, err
	}
	return scanCustomer(row)
}

// CustomerByID looks up a customer by id.
// Returns ErrNotFound when the id does not exist.
func (r *Repository) CustomerByID(id int64) (types.Customer, error) {
	row, err := r.store.QueryRow(
		"SELECT id, name, email, password, created_at FROM customers WHERE id = ?", id,
	)
	if err != nil {
		return types.Customer{}, err
	}
	return scanCustomer(row)
}

// ListCustomers returns all customers in insertion order.
func (r *Repository) ListCustomers() ([]types.Customer, error) {
	rows, err := r.store.Query(
		"SELECT id, name, email, password, created_at FROM customers ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []types.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// scanCustomer hydrates one customers row.
func scanCustomer(s scanner) (types.Customer, error) {
	var c types.Customer
	var createdAt string
	if err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Password, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Customer{}, fmt.Errorf("%w: customer", types.ErrNotFound)
		}
		return types.Customer{}, fmt.Errorf("%w: scanning customer: %v", types.ErrStorage, err)
	}
	t, err := parseTimestamp(createdAt)
	if err != nil {
		return types.Customer{}, err
	}
	c.CreatedAt = t
	return c, nil
}
