// Snapshot persistence: the durable form of the store is one JSON blob in
// DataDir, fully replaced on every persist via the temp-file, fsync, rename
// pattern so the durable copy is never half-written.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opsledger/svcledger/pkg/types"
)

const (
	// snapshotName is the durable slot inside DataDir.
	snapshotName = "svcledger.json"

	// snapshotVersion is the current snapshot schema version. Version 1 is
	// the legacy format without a schema_version field; it is still
	// accepted on load.
	snapshotVersion = 2
)

// Snapshot row records. JSON field names mirror the SQLite columns.
type customerRecord struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	CreatedAt string `json:"created_at"`
}

type templateRecord struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	MonthlyPrice string `json:"monthly_price"`
	YearlyPrice  string `json:"yearly_price"`
	Category     string `json:"category,omitempty"` // absent in legacy snapshots
}

type serviceRecord struct {
	ID            int64  `json:"id"`
	CustomerID    int64  `json:"customer_id"`
	ServiceName   string `json:"service_name"`
	MonthlyPrice  string `json:"monthly_price"`
	YearlyPrice   string `json:"yearly_price"`
	RenewalDate   string `json:"renewal_date"`
	PaymentStatus string `json:"payment_status"`
	Domain        string `json:"domain,omitempty"`
}

type paymentRecord struct {
	ID          int64  `json:"id"`
	CustomerID  int64  `json:"customer_id"`
	ServiceID   int64  `json:"service_id"`
	Amount      string `json:"amount"`
	PaymentType string `json:"payment_type"`
	Status      string `json:"status"`
	Reference   string `json:"reference,omitempty"` // absent in legacy snapshots
	PaymentDate string `json:"payment_date"`
}

// snapshot is the serialized form of the entire store.
type snapshot struct {
	SchemaVersion int              `json:"schema_version,omitempty"`
	Sequences     map[string]int64 `json:"sequences,omitempty"`
	Customers     []customerRecord `json:"customers"`
	Templates     []templateRecord `json:"templates"`
	Services      []serviceRecord  `json:"services"`
	Payments      []paymentRecord  `json:"payments"`
}

// snapshotPath returns the durable slot path for the current config.
func (s *Store) snapshotPath() string {
	return filepath.Join(s.config.DataDir, snapshotName)
}

// loadSnapshot reconstructs the in-memory store from the durable blob.
// Returns found=false when no snapshot exists, which is not an error.
// Caller holds s.mu and has already applied schema and migrations.
func (s *Store) loadSnapshot() (bool, error) {
	data, err := os.ReadFile(s.snapshotPath())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: reading snapshot: %v", types.ErrStorage, err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return false, fmt.Errorf("%w: corrupt snapshot: %v", types.ErrStorage, err)
	}

	version := snap.SchemaVersion
	if version == 0 {
		// Legacy unversioned format; rows carry no category or reference
		// fields and both are backfilled below.
		version = 1
	}
	if version > snapshotVersion {
		return false, fmt.Errorf("%w: snapshot version %d is newer than supported version %d",
			types.ErrStorage, version, snapshotVersion)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("%w: beginning load transaction: %v", types.ErrStorage, err)
	}
	defer tx.Rollback()

	for _, c := range snap.Customers {
		_, err := tx.Exec(
			"INSERT INTO customers (id, name, email, password, created_at) VALUES (?, ?, ?, ?, ?)",
			c.ID, c.Name, c.Email, c.Password, c.CreatedAt,
		)
		if err != nil {
			return false, fmt.Errorf("%w: loading customer %d: %v", types.ErrStorage, c.ID, err)
		}
	}

	for _, t := range snap.Templates {
		category := t.Category
		if category == "" {
			// Legacy template rows predate the category column; derive it
			// from the name exactly as template creation would.
			category = string(types.DeriveCategory(t.Name))
		}
		_, err := tx.Exec(
			"INSERT INTO service_templates (id, name, description, monthly_price, yearly_price, category) VALUES (?, ?, ?, ?, ?, ?)",
			t.ID, t.Name, t.Description, t.MonthlyPrice, t.YearlyPrice, category,
		)
		if err != nil {
			return false, fmt.Errorf("%w: loading template %d: %v", types.ErrStorage, t.ID, err)
		}
	}

	for _, sv := range snap.Services {
		status := sv.PaymentStatus
		if status == "" {
			status = string(types.ServiceActive)
		}
		_, err := tx.Exec(
			"INSERT INTO customer_services (id, customer_id, service_name, monthly_price, yearly_price, renewal_date, payment_status, domain) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			sv.ID, sv.CustomerID, sv.ServiceName, sv.MonthlyPrice, sv.YearlyPrice, sv.RenewalDate, status, sv.Domain,
		)
		if err != nil {
			return false, fmt.Errorf("%w: loading service %d: %v", types.ErrStorage, sv.ID, err)
		}
	}

	for _, p := range snap.Payments {
		status := p.Status
		if status == "" {
			status = string(types.PaymentProcessing)
		}
		_, err := tx.Exec(
			"INSERT INTO payments (id, customer_id, service_id, amount, payment_type, status, reference, payment_date) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			p.ID, p.CustomerID, p.ServiceID, p.Amount, p.PaymentType, status, p.Reference, p.PaymentDate,
		)
		if err != nil {
			return false, fmt.Errorf("%w: loading payment %d: %v", types.ErrStorage, p.ID, err)
		}
	}

	// Restore AUTOINCREMENT sequences so ids stay monotonic even when the
	// max-id row was deleted before the snapshot was taken. Legacy
	// snapshots have no sequences; SQLite then derives them from the
	// inserted max rowids, which is close enough for the legacy path.
	for name, seq := range snap.Sequences {
		if _, err := tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", name); err != nil {
			return false, fmt.Errorf("%w: resetting sequence %s: %v", types.ErrStorage, name, err)
		}
		if _, err := tx.Exec("INSERT INTO sqlite_sequence (name, seq) VALUES (?, ?)", name, seq); err != nil {
			return false, fmt.Errorf("%w: restoring sequence %s: %v", types.ErrStorage, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("%w: committing load transaction: %v", types.ErrStorage, err)
	}
	return true, nil
}

// persistSnapshotLocked serializes every table to the snapshot file.
// Caller holds s.mu.
func (s *Store) persistSnapshotLocked() error {
	snap := snapshot{
		SchemaVersion: snapshotVersion,
		Customers:     []customerRecord{},
		Templates:     []templateRecord{},
		Services:      []serviceRecord{},
		Payments:      []paymentRecord{},
	}

	rows, err := s.db.Query("SELECT id, name, email, password, created_at FROM customers ORDER BY id")
	if err != nil {
		return fmt.Errorf("%w: dumping customers: %v", types.ErrStorage, err)
	}
	for rows.Next() {
		var c customerRecord
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Password, &c.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("%w: scanning customer: %v", types.ErrStorage, err)
		}
		snap.Customers = append(snap.Customers, c)
	}
	rows.Close()

	rows, err = s.db.Query("SELECT id, name, COALESCE(description, ''), monthly_price, yearly_price, category FROM service_templates ORDER BY id")
	if err != nil {
		return fmt.Errorf("%w: dumping templates: %v", types.ErrStorage, err)
	}
	for rows.Next() {
		var t templateRecord
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.MonthlyPrice, &t.YearlyPrice, &t.Category); err != nil {
			rows.Close()
			return fmt.Errorf("%w: scanning template: %v", types.ErrStorage, err)
		}
		snap.Templates = append(snap.Templates, t)
	}
	rows.Close()

	rows, err = s.db.Query("SELECT id, customer_id, service_name, monthly_price, yearly_price, renewal_date, payment_status, domain FROM customer_services ORDER BY id")
	if err != nil {
		return fmt.Errorf("%w: dumping services: %v", types.ErrStorage, err)
	}
	for rows.Next() {
		var sv serviceRecord
		if err := rows.Scan(&sv.ID, &sv.CustomerID, &sv.ServiceName, &sv.MonthlyPrice, &sv.YearlyPrice, &sv.RenewalDate, &sv.PaymentStatus, &sv.Domain); err != nil {
			rows.Close()
			return fmt.Errorf("%w: scanning service: %v", types.ErrStorage, err)
		}
		snap.Services = append(snap.Services, sv)
	}
	rows.Close()

	rows, err = s.db.Query("SELECT id, customer_id, service_id, amount, payment_type, status, reference, payment_date FROM payments ORDER BY id")
	if err != nil {
		return fmt.Errorf("%w: dumping payments: %v", types.ErrStorage, err)
	}
	for rows.Next() {
		var p paymentRecord
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.ServiceID, &p.Amount, &p.PaymentType, &p.Status, &p.Reference, &p.PaymentDate); err != nil {
			rows.Close()
			return fmt.Errorf("%w: scanning payment: %v", types.ErrStorage, err)
		}
		snap.Payments = append(snap.Payments, p)
	}
	rows.Close()

	seqs, err := readSequences(s.db)
	if err != nil {
		return err
	}
	snap.Sequences = seqs

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%w: marshaling snapshot: %v", types.ErrStorage, err)
	}
	if err := writeFileAtomic(s.snapshotPath(), data); err != nil {
		return fmt.Errorf("%w: writing snapshot: %v", types.ErrStorage, err)
	}
	return nil
}

// readSequences returns the AUTOINCREMENT counters for all tables.
func readSequences(db *sql.DB) (map[string]int64, error) {
	rows, err := db.Query("SELECT name, seq FROM sqlite_sequence")
	if err != nil {
		// sqlite_sequence does not exist until the first AUTOINCREMENT
		// insert; an empty store has no sequences yet.
		return nil, nil
	}
	defer rows.Close()

	seqs := make(map[string]int64)
	for rows.Next() {
		var name string
		var seq int64
		if err := rows.Scan(&name, &seq); err != nil {
			return nil, fmt.Errorf("%w: scanning sequence: %v", types.ErrStorage, err)
		}
		seqs[name] = seq
	}
	return seqs, nil
}

// writeFileAtomic writes data to path using the temp-file, fsync, rename
// pattern. An interrupted write leaves the previous snapshot intact.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
