package store

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Makepad-fr/todo/internal/model"
)

// Order compares two items for sorting.
type Order func(a, b model.Item) int

// ByID orders by id.
func ByID(a, b model.Item) int { return cmp.Compare(a.ID, b.ID) }

// ByDate orders by the raw date text, then id. Dates are free text, so this
// is only chronological for layouts that sort lexically.
func ByDate(a, b model.Item) int {
	return cmp.Or(cmp.Compare(a.Date, b.Date), ByID(a, b))
}

// ByPriority puts the highest priority first, then orders by id.
func ByPriority(a, b model.Item) int {
	return cmp.Or(cmp.Compare(b.Priority, a.Priority), ByID(a, b))
}

// OrderNamed looks up an ordering by its flag name. The empty name means
// store order and returns nil.
func OrderNamed(name string) (Order, error) {
	switch name {
	case "":
		return nil, nil
	case "id":
		return ByID, nil
	case "date":
		return ByDate, nil
	case "priority":
		return ByPriority, nil
	}
	return nil, fmt.Errorf("unknown sort order %q (want id, date or priority)", name)
}

// Sorted returns a sorted copy of items. A nil order keeps the input order.
func Sorted(items []model.Item, order Order) []model.Item {
	out := slices.Clone(items)
	if order != nil {
		slices.SortStableFunc(out, order)
	}
	return out
}
