package repository

import (
	"errors"

	"github.com/opsledger/svcledger/pkg/types"
)

// Fixed administrator credentials. The admin is not a customers row; the
// pair short-circuits authentication regardless of table contents.
const (
	AdminEmail    = "admin@demo.com"
	adminPassword = "admin123"
	adminName     = "Admin"
)

// Authenticate resolves a credential pair to an identity. The fixed admin
// pair wins first; otherwise the customer with that email must match the
// password exactly. No match is the zero identity, not an error.
//
// Comparison is plaintext equality, kept for fidelity with the stored
// credential format. Do not extend this scheme without hashing.
func (r *Repository) Authenticate(email, password string) (types.Identity, error) {
	if email == AdminEmail && password == adminPassword {
		return types.Identity{Role: types.RoleAdmin, Name: adminName, Email: AdminEmail}, nil
	}

	customer, err := r.CustomerByEmail(email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return types.Identity{}, nil
		}
		return types.Identity{}, err
	}
	if customer.Password != password {
		return types.Identity{}, nil
	}

	return types.Identity{
		Role:       types.RoleCustomer,
		CustomerID: customer.ID,
		Name:       customer.Name,
		Email:      customer.Email,
	}, nil
}
