package renewal

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/opsledger/svcledger/pkg/types"
)

// upcomingWindowDays is how far ahead a renewal counts as upcoming.
const upcomingWindowDays = 30

// UpcomingRenewal pairs a service with the number of calendar days until
// its renewal. DaysUntil is negative for overdue services.
type UpcomingRenewal struct {
	Service   types.CustomerService
	DaysUntil int
}

// DaysUntil returns the whole calendar days from now until date. Both sides
// are normalized to midnight first, so the count does not shift with the
// time of day.
func DaysUntil(now, date time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	return int(day.Sub(today) / (24 * time.Hour))
}

// Upcoming returns every service renewing within the window, overdue
// services included, most urgent first. Ties keep scan order.
func (e *Engine) Upcoming(now time.Time) ([]UpcomingRenewal, error) {
	services, err := e.repo.ListAllServices()
	if err != nil {
		return nil, err
	}

	var upcoming []UpcomingRenewal
	for _, sv := range services {
		days := DaysUntil(now, sv.RenewalDate)
		if days <= upcomingWindowDays {
			upcoming = append(upcoming, UpcomingRenewal{Service: sv, DaysUntil: days})
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DaysUntil < upcoming[j].DaysUntil
	})
	return upcoming, nil
}

// UpcomingForCustomer filters the projection to one customer's services.
func (e *Engine) UpcomingForCustomer(customerID int64, now time.Time) ([]UpcomingRenewal, error) {
	all, err := e.Upcoming(now)
	if err != nil {
		return nil, err
	}
	var mine []UpcomingRenewal
	for _, u := range all {
		if u.Service.CustomerID == customerID {
			mine = append(mine, u)
		}
	}
	return mine, nil
}

// ReminderBody composes the plain-text body of a renewal reminder for a
// customer's near-renewal services. Delivery is the collaborator's concern;
// the core only supplies the data.
func ReminderBody(customer types.Customer, upcoming []UpcomingRenewal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", customer.Name)
	if len(upcoming) == 0 {
		b.WriteString("You have no services nearing renewal.\n")
		return b.String()
	}
	b.WriteString("The following services are near renewal:\n")
	for _, u := range upcoming {
		fmt.Fprintf(&b, "  %s renews on %s\n", u.Service.ServiceName, u.Service.RenewalDate.Format(types.DateLayout))
	}
	b.WriteString("\nPlease renew soon.\n")
	return b.String()
}
