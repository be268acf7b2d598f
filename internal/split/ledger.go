package split

import "fmt"

// Ledger holds the state of one splitting session: the parsed items in
// receipt order, the people in the order they were added, and which people
// share each item. An item nobody claimed has no assignment entry at all;
// absence is the canonical "unassigned" representation, an empty set is
// never stored.
type Ledger struct {
	items       []LineItem
	people      []string
	assignments map[string]map[string]struct{} // item ID -> assignee set
}

// NewLedger creates an empty Ledger
func NewLedger() *Ledger {
	return &Ledger{
		assignments: make(map[string]map[string]struct{}),
	}
}

// SeedItems replaces the item sequence with a fresh parse result.
func (l *Ledger) SeedItems(items []LineItem) {
	l.items = append([]LineItem(nil), items...)
}

// Items returns the items in receipt order
func (l *Ledger) Items() []LineItem {
	return append([]LineItem(nil), l.items...)
}

// People returns the people in the order they were added
func (l *Ledger) People() []string {
	return append([]string(nil), l.people...)
}

// AddPerson registers a person. Re-adding an existing name is a no-op, not an
// error.
func (l *Ledger) AddPerson(name string) {
	if l.hasPerson(name) {
		return
	}
	l.people = append(l.people, name)
}

// RemovePerson unregisters a person and scrubs them from every assignee set,
// dropping sets that become empty.
func (l *Ledger) RemovePerson(name string) {
	for i, p := range l.people {
		if p == name {
			l.people = append(l.people[:i], l.people[i+1:]...)
			break
		}
	}
	for itemID, assignees := range l.assignments {
		delete(assignees, name)
		if len(assignees) == 0 {
			delete(l.assignments, itemID)
		}
	}
}

// SetAssignment adds or removes a person from an item's assignee set. The
// item and person must both be registered; the shell only ever toggles rows
// it was handed, so anything else is a caller bug surfaced as an error.
func (l *Ledger) SetAssignment(itemID, person string, assigned bool) error {
	if !l.hasItem(itemID) {
		return fmt.Errorf("unknown item: %s", itemID)
	}
	if !l.hasPerson(person) {
		return fmt.Errorf("unknown person: %s", person)
	}

	if assigned {
		if l.assignments[itemID] == nil {
			l.assignments[itemID] = make(map[string]struct{})
		}
		l.assignments[itemID][person] = struct{}{}
		return nil
	}

	if assignees, ok := l.assignments[itemID]; ok {
		delete(assignees, person)
		if len(assignees) == 0 {
			delete(l.assignments, itemID)
		}
	}
	return nil
}

// IsAssigned reports whether a person currently shares an item
func (l *Ledger) IsAssigned(itemID, person string) bool {
	_, ok := l.assignments[itemID][person]
	return ok
}

// Assignees returns an item's assignees in the people display order.
func (l *Ledger) Assignees(itemID string) []string {
	set := l.assignments[itemID]
	assignees := make([]string, 0, len(set))
	for _, person := range l.people {
		if _, ok := set[person]; ok {
			assignees = append(assignees, person)
		}
	}
	return assignees
}

// Clear empties items, people and all assignments. Invoked before a new
// parse is seeded.
func (l *Ledger) Clear() {
	l.items = nil
	l.people = nil
	l.assignments = make(map[string]map[string]struct{})
}

func (l *Ledger) hasPerson(name string) bool {
	for _, p := range l.people {
		if p == name {
			return true
		}
	}
	return false
}

func (l *Ledger) hasItem(itemID string) bool {
	for _, item := range l.items {
		if item.ID == itemID {
			return true
		}
	}
	return false
}
