package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/opsledger/svcledger/internal/sqlite"
	"github.com/opsledger/svcledger/pkg/types"
)

// RecordPayment inserts a processing payment and marks its service as
// processing, as a single transaction. Both writes land or neither does;
// the snapshot is persisted only after the commit. Returns the payment id.
// The caller (the renewal engine) has already validated the service and
// matched the owning customer.
func (r *Repository) RecordPayment(p types.Payment) (int64, error) {
	var paymentID int64
	err := r.store.WithTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(
			"INSERT INTO payments (customer_id, service_id, amount, payment_type, status, reference, payment_date) VALUES (?, ?, ?, ?, ?, ?, ?)",
			p.CustomerID, p.ServiceID, p.Amount.String(), string(p.Type),
			string(types.PaymentProcessing), p.Reference,
			p.PaymentDate.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting payment: %w", sqlite.Classify(err))
		}
		paymentID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("%w: reading payment id: %v", types.ErrStorage, err)
		}

		res, err = tx.Exec(
			"UPDATE customer_services SET payment_status = ? WHERE id = ?",
			string(types.ServiceProcessing), p.ServiceID,
		)
		if err != nil {
			return fmt.Errorf("marking service processing: %w", sqlite.Classify(err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: checking service update: %v", types.ErrStorage, err)
		}
		if n == 0 {
			return fmt.Errorf("%w: service %d", types.ErrNotFound, p.ServiceID)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := r.store.Persist(); err != nil {
		return 0, fmt.Errorf("persisting payment: %w", err)
	}

	r.log.Info().
		Int64("payment_id", paymentID).
		Int64("service_id", p.ServiceID).
		Str("amount", p.Amount.String()).
		Str("type", string(p.Type)).
		Msg("payment recorded")
	return paymentID, nil
}

// ApplyRenewal advances a service's renewal date, sets it back to active,
// and completes its payment, as a single transaction. If any write misses
// its row, nothing is committed.
func (r *Repository) ApplyRenewal(paymentID, serviceID int64, newDate time.Time) error {
	err := r.store.WithTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(
			"UPDATE customer_services SET renewal_date = ?, payment_status = ? WHERE id = ?",
			newDate.Format(types.DateLayout), string(types.ServiceActive), serviceID,
		)
		if err != nil {
			return fmt.Errorf("advancing renewal date: %w", sqlite.Classify(err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: checking service update: %v", types.ErrStorage, err)
		}
		if n == 0 {
			return fmt.Errorf("%w: service %d", types.ErrNotFound, serviceID)
		}

		res, err = tx.Exec(
			"UPDATE payments SET status = ? WHERE id = ? AND status = ?",
			string(types.PaymentCompleted), paymentID, string(types.PaymentProcessing),
		)
		if err != nil {
			return fmt.Errorf("completing payment: %w", sqlite.Classify(err))
		}
		n, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: checking payment update: %v", types.ErrStorage, err)
		}
		if n == 0 {
			// Either the payment is gone or it was already completed; the
			// engine distinguishes the two before calling, so a miss here
			// means the transition has already happened.
			return fmt.Errorf("%w: payment %d", types.ErrPaymentCompleted, paymentID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := r.store.Persist(); err != nil {
		return fmt.Errorf("persisting renewal: %w", err)
	}

	r.log.Info().
		Int64("payment_id", paymentID).
		Int64("service_id", serviceID).
		Str("renewal_date", newDate.Format(types.DateLayout)).
		Msg("renewal applied")
	return nil
}

// PaymentByID looks up a payment by id.
// Returns ErrNotFound when the id does not exist.
func (r *Repository) PaymentByID(id int64) (types.Payment, error) {
	row, err := r.store.QueryRow(
		"SELECT id, customer_id, service_id, amount, payment_type, status, reference, payment_date FROM payments WHERE id = ?", id,
	)
	if err != nil {
		return types.Payment{}, err
	}
	return scanPayment(row)
}

// ListAllPayments returns every payment, newest first.
func (r *Repository) ListAllPayments() ([]types.Payment, error) {
	rows, err := r.store.Query(
		"SELECT id, customer_id, service_id, amount, payment_type, status, reference, payment_date FROM payments ORDER BY payment_date DESC, id DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []types.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// scanPayment hydrates one payments row.
func scanPayment(s scanner) (types.Payment, error) {
	var p types.Payment
	var amount, ptype, status, paidAt string
	if err := s.Scan(&p.ID, &p.CustomerID, &p.ServiceID, &amount, &ptype, &status, &p.Reference, &paidAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Payment{}, fmt.Errorf("%w: payment", types.ErrNotFound)
		}
		return types.Payment{}, fmt.Errorf("%w: scanning payment: %v", types.ErrStorage, err)
	}

	var err error
	if p.Amount, err = parsePrice(amount); err != nil {
		return types.Payment{}, err
	}
	if p.PaymentDate, err = parseTimestamp(paidAt); err != nil {
		return types.Payment{}, err
	}
	p.Type = types.PaymentType(ptype)
	p.Status = types.PaymentState(status)
	return p, nil
}
