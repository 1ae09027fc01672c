// Package renewal implements the reconciliation engine: the state machine
// that records renewal payments, completes them, and advances service
// renewal dates, plus the upcoming-renewals projection.
//
// Per service the cycle is Active -> PaymentRecorded -> Renewed, where
// Renewed is Active for the next cycle. RecordPayment is the only entry
// into PaymentRecorded; CompleteRenewal is the only exit.
// See docs/ARCHITECTURE.md § Renewal Engine.
package renewal

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/opsledger/svcledger/internal/repository"
	"github.com/opsledger/svcledger/pkg/types"
)

// Engine drives the renewal-payment state machine. External payment
// authorization is delegated to the injected Authorizer; the engine only
// persists the outcome.
type Engine struct {
	repo       *repository.Repository
	authorizer types.Authorizer
	log        zerolog.Logger
}

// New creates an Engine over the repository and authorizer.
func New(repo *repository.Repository, authorizer types.Authorizer, log zerolog.Logger) *Engine {
	return &Engine{repo: repo, authorizer: authorizer, log: log}
}

// RecordPayment authorizes and records a renewal payment for a service.
// The amount is the service's own copied price for the cadence. On success
// the payment is stored as processing and the service is marked processing,
// atomically. Returns the new payment id.
func (e *Engine) RecordPayment(customerID, serviceID int64, pt types.PaymentType) (int64, error) {
	if !pt.Valid() {
		return 0, fmt.Errorf("%w: unknown payment type %q", types.ErrValidation, pt)
	}

	service, err := e.repo.ServiceByID(serviceID)
	if err != nil {
		return 0, err
	}
	if service.CustomerID != customerID {
		// Payments must reference the service's owning customer.
		return 0, fmt.Errorf("%w: service %d does not belong to customer %d",
			types.ErrValidation, serviceID, customerID)
	}

	amount := service.PriceFor(pt)
	reference, err := e.authorizer.Authorize(service, amount, pt)
	if err != nil {
		return 0, fmt.Errorf("authorizing payment: %w", err)
	}

	paymentID, err := e.repo.RecordPayment(types.Payment{
		CustomerID:  customerID,
		ServiceID:   serviceID,
		Amount:      amount,
		Type:        pt,
		Reference:   reference,
		PaymentDate: time.Now().UTC(),
	})
	if err != nil {
		return 0, err
	}

	e.log.Info().
		Int64("payment_id", paymentID).
		Int64("service_id", serviceID).
		Str("reference", reference).
		Msg("renewal payment recorded")
	return paymentID, nil
}

// CompleteRenewal finishes a recorded payment: the service's renewal date
// advances by one calendar month or year from its current renewal date (not
// from today, so a late payment keeps the regular cadence), the service
// returns to active, and the payment becomes completed. All three writes
// commit together or not at all.
//
// A payment that is already completed fails with ErrPaymentCompleted; the
// processing-to-completed transition happens exactly once.
func (e *Engine) CompleteRenewal(paymentID int64) error {
	payment, err := e.repo.PaymentByID(paymentID)
	if err != nil {
		return err
	}
	if payment.Status == types.PaymentCompleted {
		return fmt.Errorf("%w: payment %d", types.ErrPaymentCompleted, paymentID)
	}

	service, err := e.repo.ServiceByID(payment.ServiceID)
	if err != nil {
		return err
	}

	newDate := NextRenewalDate(service.RenewalDate, payment.Type)
	if err := e.repo.ApplyRenewal(paymentID, service.ID, newDate); err != nil {
		return err
	}

	e.log.Info().
		Int64("payment_id", paymentID).
		Int64("service_id", service.ID).
		Str("renewal_date", newDate.Format(types.DateLayout)).
		Msg("renewal completed")
	return nil
}

// NextRenewalDate returns the renewal date after one paid cycle, anchored
// on the current renewal date.
func NextRenewalDate(current time.Time, pt types.PaymentType) time.Time {
	if pt == types.PaymentYearly {
		return current.AddDate(1, 0, 0)
	}
	return current.AddDate(0, 1, 0)
}
