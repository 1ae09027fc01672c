package renewal

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsledger/svcledger/internal/repository"
	"github.com/opsledger/svcledger/internal/sqlite"
	"github.com/opsledger/svcledger/pkg/types"
)

// setupEngine builds an Engine over a fresh seeded store.
func setupEngine(t *testing.T) (*Engine, *repository.Repository) {
	t.Helper()
	store := sqlite.NewStore(zerolog.Nop())
	require.NoError(t, store.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}))
	t.Cleanup(func() { store.Detach() })
	repo := repository.New(store, zerolog.Nop())
	return New(repo, DemoAuthorizer{}, zerolog.Nop()), repo
}

// addServiceAt creates a service for the demo customer from the Domain
// Registration template, renewing on the given date.
func addServiceAt(t *testing.T, repo *repository.Repository, renewal time.Time) int64 {
	t.Helper()
	id, err := repo.AddService(1, 2, renewal, "example.org")
	require.NoError(t, err)
	return id
}

func TestRecordPayment(t *testing.T) {
	engine, repo := setupEngine(t)

	paymentID, err := engine.RecordPayment(1, 1, types.PaymentMonthly)
	require.NoError(t, err)

	p, err := repo.PaymentByID(paymentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.CustomerID)
	assert.Equal(t, int64(1), p.ServiceID)
	assert.Equal(t, types.PaymentProcessing, p.Status)
	assert.NotEmpty(t, p.Reference)
	assert.True(t, p.Amount.Equal(decimal.RequireFromString("9.99")),
		"amount comes from the service's copied monthly price")

	sv, err := repo.ServiceByID(1)
	require.NoError(t, err)
	assert.Equal(t, types.ServiceProcessing, sv.Status)
}

func TestRecordPaymentYearlyAmount(t *testing.T) {
	engine, repo := setupEngine(t)

	paymentID, err := engine.RecordPayment(1, 1, types.PaymentYearly)
	require.NoError(t, err)

	p, err := repo.PaymentByID(paymentID)
	require.NoError(t, err)
	assert.True(t, p.Amount.Equal(decimal.RequireFromString("99.99")))
}

func TestRecordPaymentRejections(t *testing.T) {
	engine, _ := setupEngine(t)

	_, err := engine.RecordPayment(1, 1, "weekly")
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = engine.RecordPayment(1, 999, types.PaymentMonthly)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// Service 1 belongs to customer 1, not 2.
	_, err = engine.RecordPayment(2, 1, types.PaymentMonthly)
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestCompleteRenewalAdvancesFromCurrentDate(t *testing.T) {
	engine, repo := setupEngine(t)

	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("monthly", func(t *testing.T) {
		serviceID := addServiceAt(t, repo, start)
		paymentID, err := engine.RecordPayment(1, serviceID, types.PaymentMonthly)
		require.NoError(t, err)
		require.NoError(t, engine.CompleteRenewal(paymentID))

		sv, err := repo.ServiceByID(serviceID)
		require.NoError(t, err)
		assert.Equal(t, "2024-02-15", sv.RenewalDate.Format(types.DateLayout))
		assert.Equal(t, types.ServiceActive, sv.Status)

		p, err := repo.PaymentByID(paymentID)
		require.NoError(t, err)
		assert.Equal(t, types.PaymentCompleted, p.Status)
	})

	t.Run("yearly", func(t *testing.T) {
		serviceID := addServiceAt(t, repo, start)
		paymentID, err := engine.RecordPayment(1, serviceID, types.PaymentYearly)
		require.NoError(t, err)
		require.NoError(t, engine.CompleteRenewal(paymentID))

		sv, err := repo.ServiceByID(serviceID)
		require.NoError(t, err)
		assert.Equal(t, "2025-01-15", sv.RenewalDate.Format(types.DateLayout))
	})
}

func TestCompleteRenewalAnchorsOnRenewalDateNotToday(t *testing.T) {
	engine, repo := setupEngine(t)

	// An overdue service advances from its stored date, keeping the cadence.
	past := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	serviceID := addServiceAt(t, repo, past)

	paymentID, err := engine.RecordPayment(1, serviceID, types.PaymentMonthly)
	require.NoError(t, err)
	require.NoError(t, engine.CompleteRenewal(paymentID))

	sv, err := repo.ServiceByID(serviceID)
	require.NoError(t, err)
	assert.Equal(t, "2020-07-01", sv.RenewalDate.Format(types.DateLayout))
}

func TestCompleteRenewalExactlyOnce(t *testing.T) {
	engine, repo := setupEngine(t)

	serviceID := addServiceAt(t, repo, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	paymentID, err := engine.RecordPayment(1, serviceID, types.PaymentMonthly)
	require.NoError(t, err)

	require.NoError(t, engine.CompleteRenewal(paymentID))
	err = engine.CompleteRenewal(paymentID)
	assert.ErrorIs(t, err, types.ErrPaymentCompleted)

	// The date advanced once, not twice.
	sv, err := repo.ServiceByID(serviceID)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-15", sv.RenewalDate.Format(types.DateLayout))
}

func TestCompleteRenewalUnknownPayment(t *testing.T) {
	engine, _ := setupEngine(t)
	assert.ErrorIs(t, engine.CompleteRenewal(999), types.ErrNotFound)
}

func TestNextRenewalDate(t *testing.T) {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), NextRenewalDate(base, types.PaymentMonthly))
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), NextRenewalDate(base, types.PaymentYearly))

	// Month-end normalization follows the calendar.
	jan31 := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), NextRenewalDate(jan31, types.PaymentMonthly))
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2024, 6, 10, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"same day", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), 0},
		{"tomorrow late evening", time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), 1},
		{"next week", time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC), 7},
		{"overdue", time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC), -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(now, tt.date))
		})
	}
}

func TestUpcomingWindowAndOrder(t *testing.T) {
	engine, repo := setupEngine(t)
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	// Replace the seeded service's date so only our fixtures matter.
	overdue := addServiceAt(t, repo, now.AddDate(0, 0, -3))
	soon := addServiceAt(t, repo, now.AddDate(0, 0, 5))
	far := addServiceAt(t, repo, now.AddDate(0, 0, 45))
	require.NoError(t, repo.Store().Exec(
		"UPDATE customer_services SET renewal_date = ? WHERE id = 1",
		now.AddDate(0, 0, 60).Format(types.DateLayout),
	))

	upcoming, err := engine.Upcoming(now)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, overdue, upcoming[0].Service.ID)
	assert.Equal(t, -3, upcoming[0].DaysUntil)
	assert.Equal(t, soon, upcoming[1].Service.ID)
	assert.Equal(t, 5, upcoming[1].DaysUntil)

	for _, u := range upcoming {
		assert.NotEqual(t, far, u.Service.ID, "outside the 30-day window")
	}
}

func TestUpcomingIncludesWindowBoundary(t *testing.T) {
	engine, repo := setupEngine(t)
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	atBoundary := addServiceAt(t, repo, now.AddDate(0, 0, 30))
	require.NoError(t, repo.Store().Exec(
		"UPDATE customer_services SET renewal_date = ? WHERE id = 1",
		now.AddDate(0, 0, 31).Format(types.DateLayout),
	))

	upcoming, err := engine.Upcoming(now)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, atBoundary, upcoming[0].Service.ID)
	assert.Equal(t, 30, upcoming[0].DaysUntil)
}

func TestUpcomingForCustomer(t *testing.T) {
	engine, repo := setupEngine(t)
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	otherID, err := repo.AddCustomer("Jane Roe", "jane@example.com", "pw")
	require.NoError(t, err)
	_, err = repo.AddService(otherID, 2, now.AddDate(0, 0, 3), "jane.example")
	require.NoError(t, err)
	mine := addServiceAt(t, repo, now.AddDate(0, 0, 10))

	upcoming, err := engine.UpcomingForCustomer(otherID, now)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, otherID, upcoming[0].Service.CustomerID)

	for _, u := range upcoming {
		assert.NotEqual(t, mine, u.Service.ID)
	}
}

func TestReminderBody(t *testing.T) {
	customer := types.Customer{Name: "John Doe"}

	body := ReminderBody(customer, nil)
	assert.Contains(t, body, "Dear John Doe,")
	assert.Contains(t, body, "no services nearing renewal")

	body = ReminderBody(customer, []UpcomingRenewal{
		{
			Service: types.CustomerService{
				ServiceName: "Web Hosting",
				RenewalDate: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			},
			DaysUntil: 5,
		},
	})
	assert.Contains(t, body, "Web Hosting renews on 2024-06-15")
	assert.Contains(t, body, "Please renew soon.")
}

func TestDemoAuthorizerReferencesAreUnique(t *testing.T) {
	var auth DemoAuthorizer
	a, err := auth.Authorize(types.CustomerService{}, decimal.Zero, types.PaymentMonthly)
	require.NoError(t, err)
	b, err := auth.Authorize(types.CustomerService{}, decimal.Zero, types.PaymentMonthly)
	require.NoError(t, err)
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

type failingAuthorizer struct{}

func (failingAuthorizer) Authorize(types.CustomerService, decimal.Decimal, types.PaymentType) (string, error) {
	return "", errors.New("declined")
}

func TestRecordPaymentAuthorizerFailure(t *testing.T) {
	_, repo := setupEngine(t)
	engine := New(repo, failingAuthorizer{}, zerolog.Nop())

	_, err := engine.RecordPayment(1, 1, types.PaymentMonthly)
	require.Error(t, err)

	// Nothing was recorded and the service stayed active.
	payments, err := repo.ListAllPayments()
	require.NoError(t, err)
	assert.Empty(t, payments)

	sv, err := repo.ServiceByID(1)
	require.NoError(t, err)
	assert.Equal(t, types.ServiceActive, sv.Status)
}
