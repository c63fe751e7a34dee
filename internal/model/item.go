package model

import (
	"fmt"
	"math"
	"strings"
)

// DefaultPriority is the priority a new item gets when none is supplied.
const DefaultPriority = 0.5

// ShortIDLen is how many leading id characters the short form shows.
const ShortIDLen = 6

// Status is the lifecycle state of an item. The zero value is Open.
type Status int

const (
	Open Status = iota
	Resolved
)

// ParseStatus maps the on-disk literal to a Status.
// Anything other than "open" or "resolved" maps to Open and ok is false.
func ParseStatus(s string) (st Status, ok bool) {
	switch s {
	case "open":
		return Open, true
	case "resolved":
		return Resolved, true
	}
	return Open, false
}

func (s Status) String() string {
	if s == Resolved {
		return "resolved"
	}
	return "open"
}

// Item is the domain model for a todo entry.
// ID doubles as the base name of the record file.
type Item struct {
	ID          string
	Title       string
	Tags        string
	Date        string
	Priority    float64
	Status      Status
	Description string
}

// New returns an item carrying the creation defaults.
func New(id, date string, priority float64) Item {
	return Item{
		ID:       id,
		Date:     date,
		Priority: priority,
		Status:   Open,
	}
}

func (it Item) Resolved() bool { return it.Status == Resolved }

// ShortID returns the first ShortIDLen characters of the id.
func (it Item) ShortID() string { return Shorten(it.ID, ShortIDLen) }

// Validate reports header fields that would not survive a round trip
// through the record format.
func (it Item) Validate() error {
	for name, v := range map[string]string{
		"id":    it.ID,
		"title": it.Title,
		"tags":  it.Tags,
		"date":  it.Date,
	} {
		if strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("%s must be a single line", name)
		}
	}
	if it.ID == "" {
		return fmt.Errorf("id is empty")
	}
	if strings.ContainsAny(it.ID, `/\`) {
		return fmt.Errorf("id %q contains a path separator", it.ID)
	}
	if math.IsNaN(it.Priority) || math.IsInf(it.Priority, 0) {
		return fmt.Errorf("priority must be a finite number")
	}
	return nil
}

// Shorten cuts id to at most n characters.
func Shorten(id string, n int) string {
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// DistinctShortIDs shortens every id to the smallest length (at least
// ShortIDLen) at which all of them are still pairwise distinct.
// Order is preserved.
func DistinctShortIDs(ids []string) []string {
	longest := 0
	for _, id := range ids {
		longest = max(longest, len(id))
	}
	n := ShortIDLen
	for ; n < longest; n++ {
		seen := make(map[string]struct{}, len(ids))
		clash := false
		for _, id := range ids {
			s := Shorten(id, n)
			if _, dup := seen[s]; dup {
				clash = true
				break
			}
			seen[s] = struct{}{}
		}
		if !clash {
			break
		}
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = Shorten(id, n)
	}
	return out
}
