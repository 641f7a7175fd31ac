package roster

import (
	"fmt"

	"github.com/mmynk/dropin/internal/models"
)

// Filter selects which participants the payments list shows.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterPaid   Filter = "paid"
	FilterUnpaid Filter = "unpaid"
)

// ParseFilter accepts "", "all", "paid" or "unpaid". Empty means all.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterPaid, FilterUnpaid:
		return Filter(s), nil
	default:
		return FilterAll, fmt.Errorf("unknown filter %q", s)
	}
}

// Apply returns the participants matching f, in roster order.
func Apply(r Roster, f Filter) []models.Participant {
	out := make([]models.Participant, 0, len(r.Participants))
	for _, p := range r.Participants {
		switch {
		case f == FilterPaid && !p.PaymentMethod.Paid():
			continue
		case f == FilterUnpaid && p.PaymentMethod.Paid():
			continue
		}
		out = append(out, p)
	}
	return out
}

// PaidCount returns how many participants have paid, for the "N / M paid" header.
func PaidCount(r Roster) int {
	n := 0
	for _, p := range r.Participants {
		if p.PaymentMethod.Paid() {
			n++
		}
	}
	return n
}
