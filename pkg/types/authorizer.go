package types

import "github.com/shopspring/decimal"

// Authorizer is the external payment-authorization capability the renewal
// engine depends on but does not implement. The collaborator runs its
// checkout protocol and returns an opaque authorization reference; the core
// only persists the outcome.
type Authorizer interface {
	// Authorize requests external authorization of a payment for the given
	// service and amount. Returns the provider's reference for the
	// authorized payment, or an error when authorization fails.
	Authorize(service CustomerService, amount decimal.Decimal, pt PaymentType) (string, error)
}
