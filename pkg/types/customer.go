package types

import "time"

// Customer is an account holder. Customers are created through signup or an
// admin action and are never hard-deleted; services and payments reference
// them by id.
type Customer struct {
	ID        int64     // engine-assigned, monotonic
	Name      string    // required, non-empty
	Email     string    // unique across customers
	Password  string    // opaque string, compared by exact equality
	CreatedAt time.Time // set by the store on insert
}
