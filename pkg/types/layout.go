package types

// DateLayout is the storage form of calendar dates such as renewal dates.
// Timestamps (created_at, payment_date) use RFC 3339.
const DateLayout = "2006-01-02"
