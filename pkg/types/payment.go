package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType is the renewal cadence a payment covers.
type PaymentType string

// Payment types.
const (
	PaymentMonthly PaymentType = "monthly"
	PaymentYearly  PaymentType = "yearly"
)

// Valid reports whether the payment type is recognized.
func (pt PaymentType) Valid() bool {
	return pt == PaymentMonthly || pt == PaymentYearly
}

// PaymentState is the settlement status of a payment record.
type PaymentState string

// Payment states. The only valid transition is processing to completed,
// performed exactly once by the renewal engine.
const (
	PaymentProcessing PaymentState = "processing"
	PaymentCompleted  PaymentState = "completed"
)

// Payment records one externally authorized renewal payment. Rows are
// immutable except for the single processing-to-completed status transition.
type Payment struct {
	ID          int64
	CustomerID  int64 // must match the service's owning customer
	ServiceID   int64
	Amount      decimal.Decimal
	Type        PaymentType
	Status      PaymentState
	Reference   string // external authorization reference from the Authorizer
	PaymentDate time.Time
}
