// Package ordering keeps the members of an ordered collection at dense,
// zero-based positions.
//
// A collection is any parent row whose children carry an integer position
// (setlist songs, song versions). The store enforces uniqueness of
// (collection, position) on every single write, so every sweep here is
// ordered so that no intermediate write collides with a row that has not
// moved yet.
package ordering

import (
	"context"
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// AppendAtEnd requests insertion after the current last member.
const AppendAtEnd = -1

// reorderOffset keeps temporary positions clear of every real position.
const reorderOffset = 1000

var (
	ErrInvalidPosition = errors.New("position must be -1 (end) or >= 0")
	ErrNotPermutation  = errors.New("order must list every current member exactly once")
	ErrDuplicate       = errors.New("member is already in the collection")
)

// Entry is one member of a collection at a position.
type Entry struct {
	ID       string
	MemberID string
	Position int
}

// Store is the row-level capability the manager needs. Entries must return
// the collection's rows sorted by ascending position.
type Store interface {
	Entries(ctx context.Context, collectionID string) ([]Entry, error)
	SetPosition(ctx context.Context, entryID string, position int) error
	Delete(ctx context.Context, collectionID, memberID string) error
}

// Inserter creates the new member row at position.
type Inserter func(ctx context.Context, position int) (Entry, error)

// Locker serializes mutations of one collection. Lock returns a release
// function or an error when the lock could not be taken.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// SweepError reports a multi-row update that stopped partway. Writes
// before the failing row are not rolled back.
type SweepError struct {
	Collection string
	Op         string
	Phase      int
	Done       int
	Total      int
	Err        error
}

func (e *SweepError) Error() string {
	return fmt.Sprintf("%s %s incomplete: phase %d stopped after %d/%d rows: %v",
		e.Collection, e.Op, e.Phase, e.Done, e.Total, e.Err)
}

func (e *SweepError) Unwrap() error { return e.Err }

type Option func(*Manager)

// WithLocker runs every mutation under locker, keyed by namespace and
// collection id.
func WithLocker(locker Locker) Option {
	return func(m *Manager) { m.locker = locker }
}

// Manager executes position-preserving mutations against a Store.
type Manager struct {
	store     Store
	namespace string
	locker    Locker
}

func NewManager(store Store, namespace string, opts ...Option) *Manager {
	m := &Manager{store: store, namespace: namespace}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) lock(ctx context.Context, collectionID string) (func(), error) {
	if m.locker == nil {
		return func() {}, nil
	}
	return m.locker.Lock(ctx, m.namespace+":"+collectionID)
}

// Append inserts a member at requested (or at the end for AppendAtEnd).
// Members at or after the insert position move up by one first. A position
// past the end is treated as the end. memberID may be empty when the member
// id is assigned by the insert itself.
func (m *Manager) Append(ctx context.Context, collectionID, memberID string, requested int, insert Inserter) (Entry, error) {
	if requested < AppendAtEnd {
		return Entry{}, ErrInvalidPosition
	}

	unlock, err := m.lock(ctx, collectionID)
	if err != nil {
		return Entry{}, err
	}
	defer unlock()

	entries, err := m.store.Entries(ctx, collectionID)
	if err != nil {
		return Entry{}, errors.Wrap(err, "read positions")
	}
	if memberID != "" {
		for _, e := range entries {
			if e.MemberID == memberID {
				return Entry{}, ErrDuplicate
			}
		}
	}

	insertAt := requested
	if requested == AppendAtEnd || requested > len(entries) {
		insertAt = nextPosition(entries)
	}

	// Highest first: the slot above each row is already free when it moves.
	var toShift []Entry
	for _, e := range entries {
		if e.Position >= insertAt {
			toShift = append(toShift, e)
		}
	}
	sort.Slice(toShift, func(i, j int) bool { return toShift[i].Position > toShift[j].Position })
	for i, e := range toShift {
		if err := m.store.SetPosition(ctx, e.ID, e.Position+1); err != nil {
			return Entry{}, &SweepError{Collection: m.namespace, Op: "append", Phase: 1, Done: i, Total: len(toShift), Err: err}
		}
	}

	created, err := insert(ctx, insertAt)
	if err != nil {
		if len(toShift) == 0 {
			return Entry{}, errors.Wrap(err, "insert member")
		}
		return Entry{}, &SweepError{Collection: m.namespace, Op: "append", Phase: 2, Done: 0, Total: 1, Err: err}
	}
	return created, nil
}

// Remove deletes memberID and closes the gap it leaves. When the member is
// not present the delete is still issued and no positions change. The
// returned bool reports whether the member was found.
func (m *Manager) Remove(ctx context.Context, collectionID, memberID string) (bool, error) {
	unlock, err := m.lock(ctx, collectionID)
	if err != nil {
		return false, err
	}
	defer unlock()

	entries, err := m.store.Entries(ctx, collectionID)
	if err != nil {
		return false, errors.Wrap(err, "read positions")
	}

	removed := -1
	for _, e := range entries {
		if e.MemberID == memberID {
			removed = e.Position
			break
		}
	}

	if err := m.store.Delete(ctx, collectionID, memberID); err != nil {
		return false, errors.Wrap(err, "delete member")
	}
	if removed < 0 {
		return false, nil
	}

	// Lowest first: each row moves into the slot just vacated below it.
	var toShift []Entry
	for _, e := range entries {
		if e.Position > removed {
			toShift = append(toShift, e)
		}
	}
	sort.Slice(toShift, func(i, j int) bool { return toShift[i].Position < toShift[j].Position })
	for i, e := range toShift {
		if err := m.store.SetPosition(ctx, e.ID, e.Position-1); err != nil {
			return true, &SweepError{Collection: m.namespace, Op: "remove", Phase: 1, Done: i, Total: len(toShift), Err: err}
		}
	}
	return true, nil
}

// Reorder assigns position i to ordered[i]. ordered must be a permutation
// of the current members.
//
// Rows first move to distinct negative temporary positions, then to their
// final ones; a single pass would collide with rows that have not moved yet.
func (m *Manager) Reorder(ctx context.Context, collectionID string, ordered []string) error {
	unlock, err := m.lock(ctx, collectionID)
	if err != nil {
		return err
	}
	defer unlock()

	entries, err := m.store.Entries(ctx, collectionID)
	if err != nil {
		return errors.Wrap(err, "read positions")
	}

	byMember, err := matchPermutation(entries, ordered)
	if err != nil {
		return err
	}

	target := make([]Entry, len(ordered))
	for i, memberID := range ordered {
		target[i] = byMember[memberID]
	}
	return m.twoPhase(ctx, "reorder", target)
}

// twoPhase moves target[i] to position i through distinct negative
// temporary positions below every current one.
func (m *Manager) twoPhase(ctx context.Context, op string, target []Entry) error {
	offset := reorderOffset
	if len(target) > 0 {
		if high := maxPosition(target); high > 0 {
			offset += high
		}
		if low := minPosition(target); low < 0 {
			offset -= low
		}
	}

	for i, e := range target {
		if err := m.store.SetPosition(ctx, e.ID, -(offset + i)); err != nil {
			return &SweepError{Collection: m.namespace, Op: op, Phase: 1, Done: i, Total: len(target), Err: err}
		}
	}
	for i, e := range target {
		if err := m.store.SetPosition(ctx, e.ID, i); err != nil {
			return &SweepError{Collection: m.namespace, Op: op, Phase: 2, Done: i, Total: len(target), Err: err}
		}
	}
	return nil
}

// Compact renumbers the collection to 0..n-1 keeping the current relative
// order. Used after rows were removed by a cascade outside the manager.
func (m *Manager) Compact(ctx context.Context, collectionID string) error {
	unlock, err := m.lock(ctx, collectionID)
	if err != nil {
		return err
	}
	defer unlock()

	entries, err := m.store.Entries(ctx, collectionID)
	if err != nil {
		return errors.Wrap(err, "read positions")
	}
	sorted := append([]Entry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	// Leftover temporary positions from an interrupted reorder can collide
	// with a single ascending pass.
	if len(sorted) > 0 && sorted[0].Position < 0 {
		return m.twoPhase(ctx, "compact", sorted)
	}

	done := 0
	for i, e := range sorted {
		if e.Position == i {
			continue
		}
		if err := m.store.SetPosition(ctx, e.ID, i); err != nil {
			return &SweepError{Collection: m.namespace, Op: "compact", Phase: 1, Done: done, Total: len(sorted), Err: err}
		}
		done++
	}
	return nil
}

func matchPermutation(entries []Entry, ordered []string) (map[string]Entry, error) {
	if len(ordered) != len(entries) {
		return nil, ErrNotPermutation
	}
	byMember := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byMember[e.MemberID] = e
	}
	seen := make(map[string]struct{}, len(ordered))
	for _, id := range ordered {
		if _, ok := byMember[id]; !ok {
			return nil, ErrNotPermutation
		}
		if _, dup := seen[id]; dup {
			return nil, ErrNotPermutation
		}
		seen[id] = struct{}{}
	}
	return byMember, nil
}

func maxPosition(entries []Entry) int {
	max := entries[0].Position
	for _, e := range entries[1:] {
		if e.Position > max {
			max = e.Position
		}
	}
	return max
}

func minPosition(entries []Entry) int {
	min := entries[0].Position
	for _, e := range entries[1:] {
		if e.Position < min {
			min = e.Position
		}
	}
	return min
}

func nextPosition(entries []Entry) int {
	if len(entries) == 0 {
		return 0
	}
	return maxPosition(entries) + 1
}
