package sqlite

// Schema DDL. Integer primary keys are AUTOINCREMENT so ids stay monotonic
// and are never reused, matching the engine-assigned id contract. The
// domain and category columns are intentionally absent here; they arrive
// through the additive migrations in migrate.go on every startup.
const (
	createCustomers = `CREATE TABLE customers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    password TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createServiceTemplates = `CREATE TABLE service_templates (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    description TEXT,
    monthly_price TEXT NOT NULL,
    yearly_price TEXT NOT NULL
);`

	createCustomerServices = `CREATE TABLE customer_services (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_id INTEGER NOT NULL,
    service_name TEXT NOT NULL,
    monthly_price TEXT NOT NULL,
    yearly_price TEXT NOT NULL,
    renewal_date TEXT NOT NULL,
    payment_status TEXT NOT NULL DEFAULT 'active',
    FOREIGN KEY (customer_id) REFERENCES customers(id)
);`

	createPayments = `CREATE TABLE payments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_id INTEGER NOT NULL,
    service_id INTEGER NOT NULL,
    amount TEXT NOT NULL,
    payment_type TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'processing',
    reference TEXT NOT NULL DEFAULT '',
    payment_date TEXT NOT NULL,
    FOREIGN KEY (customer_id) REFERENCES customers(id),
    FOREIGN KEY (service_id) REFERENCES customer_services(id)
);`
)

// Index DDL for common lookups.
const (
	idxServicesCustomer = `CREATE INDEX idx_services_customer ON customer_services(customer_id);`
	idxPaymentsService  = `CREATE INDEX idx_payments_service ON payments(service_id);`
	idxPaymentsDate     = `CREATE INDEX idx_payments_date ON payments(payment_date);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order:
// referenced tables before the tables that reference them.
var schemaDDL = []string{
	createCustomers,
	createServiceTemplates,
	createCustomerServices,
	createPayments,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxServicesCustomer,
	idxPaymentsService,
	idxPaymentsDate,
}
