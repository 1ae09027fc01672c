package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceStatus is the payment state of a customer service.
type ServiceStatus string

// Service statuses. A service is active until a payment is recorded for it,
// processing while that payment awaits completion, and active again once the
// renewal is completed and the date advanced.
const (
	ServiceActive     ServiceStatus = "active"
	ServiceProcessing ServiceStatus = "processing"
)

// CustomerService is a service subscribed by a customer. Name, prices, and
// category are copied from a template at creation time, not referenced live;
// the renewal date advances only through the renewal engine.
type CustomerService struct {
	ID           int64
	CustomerID   int64
	ServiceName  string
	MonthlyPrice decimal.Decimal
	YearlyPrice  decimal.Decimal
	RenewalDate  time.Time // calendar date, stored date-only
	Status       ServiceStatus
	Domain       string // non-empty only when the template category requires it
}

// PriceFor returns the service price for the given payment cadence.
func (s CustomerService) PriceFor(pt PaymentType) decimal.Decimal {
	if pt == PaymentYearly {
		return s.YearlyPrice
	}
	return s.MonthlyPrice
}
