package renewal

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/opsledger/svcledger/pkg/types"
)

// Compile-time interface check.
var _ types.Authorizer = DemoAuthorizer{}

// DemoAuthorizer stands in for an external payment provider. It approves
// every payment and issues a UUID v7 reference, so recorded payments carry
// a provider-shaped reference without any network call.
type DemoAuthorizer struct{}

// Authorize approves the payment and returns a generated reference.
func (DemoAuthorizer) Authorize(_ types.CustomerService, _ decimal.Decimal, _ types.PaymentType) (string, error) {
	return generateReference(), nil
}

// generateReference returns a UUID v7 string, falling back to v4 if v7
// generation fails.
func generateReference() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
