// Package resolve turns a user-supplied id prefix into exactly one item,
// or explains why it cannot.
//
// Ambiguity is always an error outcome carrying the candidates. Nothing here
// picks one for the caller or asks the user to choose.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/todo/internal/model"
	"github.com/Makepad-fr/todo/internal/store"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrAmbiguous = errors.New("ambiguous id")
)

type Kind int

const (
	None Kind = iota
	One
	Ambiguous
)

func (k Kind) String() string {
	switch k {
	case One:
		return "one"
	case Ambiguous:
		return "ambiguous"
	}
	return "none"
}

// Result is the outcome of Resolve.
type Result struct {
	Kind   Kind
	Prefix string
	// Item is set when Kind is One.
	Item model.Item
	// IDs lists the matches in store order when Kind is Ambiguous.
	IDs []string
}

// Resolve matches prefix against the ids in s.
func Resolve(s *store.Store, prefix string) Result {
	matches := s.WithPrefix(prefix)
	switch len(matches) {
	case 0:
		return Result{Kind: None, Prefix: prefix}
	case 1:
		return Result{Kind: One, Prefix: prefix, Item: matches[0]}
	}
	ids := make([]string, len(matches))
	for i, it := range matches {
		ids[i] = it.ID
	}
	return Result{Kind: Ambiguous, Prefix: prefix, IDs: ids}
}

// Err converts a non-One result into an error: ErrNotFound, or an
// *AmbiguousError wrapping ErrAmbiguous.
func (r Result) Err() error {
	switch r.Kind {
	case None:
		return fmt.Errorf("item with id %s does not exist: %w", r.Prefix, ErrNotFound)
	case Ambiguous:
		return &AmbiguousError{Prefix: r.Prefix, IDs: r.IDs}
	}
	return nil
}

// AmbiguousError reports every id a prefix matched.
type AmbiguousError struct {
	Prefix string
	IDs    []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("id %s is ambiguous, it matches %d items: %s",
		e.Prefix, len(e.IDs), strings.Join(model.DistinctShortIDs(e.IDs), ", "))
}

func (e *AmbiguousError) Unwrap() error { return ErrAmbiguous }

// Unique resolves prefix and returns the single match or the Err of the result.
func Unique(s *store.Store, prefix string) (model.Item, error) {
	r := Resolve(s, prefix)
	if r.Kind != One {
		return model.Item{}, r.Err()
	}
	return r.Item, nil
}
