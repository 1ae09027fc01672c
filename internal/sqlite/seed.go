// First-run demo seeding: one customer, three templates, one service with a
// renewal one calendar month out. Runs only when no snapshot exists.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/opsledger/svcledger/pkg/types"
)

// demoTemplate describes a service template seeded on first startup.
type demoTemplate struct {
	name        string
	description string
	monthly     string
	yearly      string
	category    types.TemplateCategory
}

// demoTemplates are the offerings available in a fresh store.
var demoTemplates = []demoTemplate{
	{"Web Hosting", "Premium web hosting", "9.99", "99.99", types.CategoryHosting},
	{"Domain Registration", "Domain registration", "12.99", "129.99", types.CategoryDomain},
	{"Business Email", "Email hosting", "5.99", "59.99", types.CategoryEmail},
}

// seedDemoData inserts the demo customer, templates, and one hosting
// service for the demo customer, all in a single transaction.
func seedDemoData(db *sql.DB) error {
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning seed transaction: %v", types.ErrStorage, err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO customers (name, email, password, created_at) VALUES (?, ?, ?, ?)",
		"John Doe", "john@demo.com", "password123", now,
	)
	if err != nil {
		return fmt.Errorf("%w: seeding demo customer: %v", types.ErrStorage, err)
	}
	customerID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: reading demo customer id: %v", types.ErrStorage, err)
	}

	for _, t := range demoTemplates {
		_, err := tx.Exec(
			"INSERT INTO service_templates (name, description, monthly_price, yearly_price, category) VALUES (?, ?, ?, ?, ?)",
			t.name, t.description, t.monthly, t.yearly, string(t.category),
		)
		if err != nil {
			return fmt.Errorf("%w: seeding template %s: %v", types.ErrStorage, t.name, err)
		}
	}

	// Demo service copies the Web Hosting template, renewing next month.
	renewal := time.Now().AddDate(0, 1, 0).Format(types.DateLayout)
	_, err = tx.Exec(
		"INSERT INTO customer_services (customer_id, service_name, monthly_price, yearly_price, renewal_date, payment_status, domain) VALUES (?, ?, ?, ?, ?, ?, ?)",
		customerID, "Web Hosting", "9.99", "99.99", renewal, string(types.ServiceActive), "johndoe.example",
	)
	if err != nil {
		return fmt.Errorf("%w: seeding demo service: %v", types.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing seed transaction: %v", types.ErrStorage, err)
	}
	return nil
}
