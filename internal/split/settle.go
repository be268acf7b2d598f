package split

import (
	"errors"
	"math"
)

// ErrNoPurchaserSelected is returned when settlement is requested without a
// registered purchaser. It is a validation failure the shell surfaces with a
// corrective message, not a system fault.
var ErrNoPurchaserSelected = errors.New("no purchaser selected")

// Share is one person's side of the settlement: the amount they owe the
// purchaser in cents, and the items that amount came from.
type Share struct {
	Person     string   `json:"person"`
	AmountOwed int      `json:"amount_owed"` // Amount in cents
	Items      []string `json:"items"`
}

// Settle computes what every person other than the purchaser owes. Each
// claimed item's price is split evenly across its assignees; shares
// accumulate unrounded and are rounded to whole cents only when the report
// is built. Items nobody claimed contribute nothing. People with no claimed
// items do not appear in the report, and neither does the purchaser.
func (l *Ledger) Settle(purchaser string) ([]Share, error) {
	if purchaser == "" || !l.hasPerson(purchaser) {
		return nil, ErrNoPurchaserSelected
	}

	totals := make(map[string]float64)
	owedItems := make(map[string][]string)

	for _, item := range l.items {
		assignees := l.assignments[item.ID]
		if len(assignees) == 0 {
			continue
		}
		share := float64(item.Price) / float64(len(assignees))
		for person := range assignees {
			totals[person] += share
			owedItems[person] = append(owedItems[person], item.Name)
		}
	}

	shares := make([]Share, 0, len(totals))
	for _, person := range l.people {
		if person == purchaser {
			continue
		}
		total, ok := totals[person]
		if !ok {
			continue
		}
		shares = append(shares, Share{
			Person:     person,
			AmountOwed: int(math.Round(total)),
			Items:      owedItems[person],
		})
	}

	return shares, nil
}
