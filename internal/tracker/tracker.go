// Package tracker implements the todo operations on top of a record
// directory. Every call loads a fresh snapshot, operates on it and persists
// the one record it changed.
package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Makepad-fr/todo/internal/logging"
	"github.com/Makepad-fr/todo/internal/model"
	"github.com/Makepad-fr/todo/internal/resolve"
	"github.com/Makepad-fr/todo/internal/store"
	"github.com/Makepad-fr/todo/internal/store/recordstore"
)

var (
	ErrAlreadyResolved = errors.New("already resolved")
	ErrAlreadyOpen     = errors.New("already open")
	ErrInvalidArgument = errors.New("invalid argument")
)

// idAttempts bounds how often Create redraws an id that is already on disk.
const idAttempts = 5

const defaultDateFormat = "2006-01-02 15:04"

type Tracker struct {
	dir             *recordstore.Dir
	log             *slog.Logger
	now             func() time.Time
	newID           func() string
	defaultPriority float64
	dateFormat      string
}

type Option func(*Tracker)

func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

func WithClock(now func() time.Time) Option { return func(t *Tracker) { t.now = now } }

func WithIDFunc(f func() string) Option { return func(t *Tracker) { t.newID = f } }

func WithDefaultPriority(p float64) Option {
	return func(t *Tracker) { t.defaultPriority = p }
}

func WithDateFormat(layout string) Option {
	return func(t *Tracker) {
		if layout != "" {
			t.dateFormat = layout
		}
	}
}

func New(dir *recordstore.Dir, opts ...Option) *Tracker {
	t := &Tracker{
		dir:             dir,
		log:             logging.Discard(),
		now:             time.Now,
		newID:           uuid.NewString,
		defaultPriority: model.DefaultPriority,
		dateFormat:      defaultDateFormat,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Dir exposes the record directory the tracker writes to.
func (t *Tracker) Dir() *recordstore.Dir { return t.dir }

// Load returns the current snapshot of every record.
func (t *Tracker) Load() (*store.Store, error) {
	return t.dir.Load(t.log)
}

// Create persists a new open item built from the defaults and p.
func (t *Tracker) Create(p model.Patch) (model.Item, error) {
	p = trimHeaders(p)
	id, err := t.freshID()
	if err != nil {
		return model.Item{}, err
	}
	it := p.Apply(model.New(id, t.now().Format(t.dateFormat), t.defaultPriority))
	if err := it.Validate(); err != nil {
		return model.Item{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if err := t.dir.Write(it); err != nil {
		return model.Item{}, err
	}
	t.log.Debug("created item", "id", it.ID)
	return it, nil
}

func (t *Tracker) freshID() (string, error) {
	for range idAttempts {
		id := t.newID()
		if !t.dir.Exists(id) {
			return id, nil
		}
		t.log.Debug("id already taken, drawing again", "id", id)
	}
	return "", fmt.Errorf("could not find a free id after %d attempts", idAttempts)
}

// ListOptions selects what List returns.
type ListOptions struct {
	ShowResolved bool
	// Prefix keeps only items whose id starts with it.
	Prefix string
	// Order sorts the result; nil keeps store order.
	Order store.Order
}

func (t *Tracker) List(opts ListOptions) ([]model.Item, error) {
	s, err := t.Load()
	if err != nil {
		return nil, err
	}
	items := s.Filter(func(it model.Item) bool {
		if it.Resolved() && !opts.ShowResolved {
			return false
		}
		return strings.HasPrefix(it.ID, opts.Prefix)
	})
	return store.Sorted(items, opts.Order), nil
}

// Get resolves prefix to a single item.
func (t *Tracker) Get(prefix string) (model.Item, error) {
	return t.lookup(prefix)
}

// Resolve marks the item resolved. Resolving a resolved item changes
// nothing and returns ErrAlreadyResolved.
func (t *Tracker) Resolve(prefix string) (model.Item, error) {
	return t.setStatus(prefix, model.Resolved, ErrAlreadyResolved)
}

// Reopen is the inverse of Resolve.
func (t *Tracker) Reopen(prefix string) (model.Item, error) {
	return t.setStatus(prefix, model.Open, ErrAlreadyOpen)
}

func (t *Tracker) setStatus(prefix string, st model.Status, already error) (model.Item, error) {
	it, err := t.lookup(prefix)
	if err != nil {
		return model.Item{}, err
	}
	if it.Status == st {
		return it, fmt.Errorf("item %s: %w", it.ShortID(), already)
	}
	it.Status = st
	if err := t.dir.Write(it); err != nil {
		return model.Item{}, err
	}
	t.log.Debug("status changed", "id", it.ID, "status", st)
	return it, nil
}

// Edit applies p to the item. Fields p leaves unset keep their stored
// value; when nothing changes the record is not rewritten.
func (t *Tracker) Edit(prefix string, p model.Patch) (model.Item, error) {
	it, err := t.lookup(prefix)
	if err != nil {
		return model.Item{}, err
	}
	updated := trimHeaders(p).Apply(it)
	if updated == it {
		return it, nil
	}
	if err := updated.Validate(); err != nil {
		return model.Item{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if err := t.dir.Write(updated); err != nil {
		return model.Item{}, err
	}
	t.log.Debug("edited item", "id", updated.ID)
	return updated, nil
}

// Delete removes the item's record and returns what it held.
func (t *Tracker) Delete(prefix string) (model.Item, error) {
	it, err := t.lookup(prefix)
	if err != nil {
		return model.Item{}, err
	}
	if err := t.dir.Remove(it.ID); err != nil {
		return model.Item{}, err
	}
	t.log.Debug("deleted item", "id", it.ID)
	return it, nil
}

func (t *Tracker) lookup(prefix string) (model.Item, error) {
	if prefix == "" {
		return model.Item{}, fmt.Errorf("%w: empty id", ErrInvalidArgument)
	}
	s, err := t.Load()
	if err != nil {
		return model.Item{}, err
	}
	return resolve.Unique(s, prefix)
}

func trimHeaders(p model.Patch) model.Patch {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	p.Title = trim(p.Title)
	p.Tags = trim(p.Tags)
	p.Date = trim(p.Date)
	return p
}
