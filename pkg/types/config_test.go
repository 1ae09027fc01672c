package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Backend: BackendSQLite}.Validate())
	assert.ErrorIs(t, Config{}.Validate(), ErrBackendEmpty)
	assert.ErrorIs(t, Config{Backend: "postgres"}.Validate(), ErrBackendUnknown)
}

func TestIdentity(t *testing.T) {
	assert.False(t, Identity{}.LoggedIn())
	assert.False(t, Identity{}.IsAdmin())

	admin := Identity{Role: RoleAdmin, Name: "Admin"}
	assert.True(t, admin.LoggedIn())
	assert.True(t, admin.IsAdmin())

	customer := Identity{Role: RoleCustomer, CustomerID: 7}
	assert.True(t, customer.LoggedIn())
	assert.False(t, customer.IsAdmin())
}
