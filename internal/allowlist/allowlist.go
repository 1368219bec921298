// Package allowlist holds the fixed set of instances this service is
// permitted to manage. The list is built once at startup and never mutated,
// so it is safe to share across concurrent requests.
package allowlist

import (
	"errors"
	"fmt"
)

var ErrNotAllowed = errors.New("instance is not in the allowed list")

// Entry describes one managed instance. Simulated entries are demo
// placeholders that are never sent to the provider and always report a
// fabricated "stopped" state.
type Entry struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Country   string `yaml:"country"`
	Simulated bool   `yaml:"simulated"`
}

// DefaultEntry is returned by Lookup for unknown IDs. Unreachable once
// Validate has passed, kept as a defensive fallback.
var DefaultEntry = Entry{Name: "Unknown", Country: "us"}

// List is the immutable, ordered allow-list.
type List struct {
	entries []Entry
	index   map[string]int
}

// New builds a List from config entries, preserving declaration order.
// Duplicate or empty IDs are a configuration error.
func New(entries []Entry) (*List, error) {
	if len(entries) == 0 {
		return nil, errors.New("allow-list is empty")
	}

	index := make(map[string]int, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("allow-list entry %d has an empty id", i)
		}
		if _, dup := index[e.ID]; dup {
			return nil, fmt.Errorf("duplicate allow-list entry %q", e.ID)
		}
		index[e.ID] = i
	}

	return &List{entries: entries, index: index}, nil
}

// Validate confirms the ID is allow-listed.
func (l *List) Validate(id string) error {
	if _, ok := l.index[id]; !ok {
		return fmt.Errorf("instance %s: %w", id, ErrNotAllowed)
	}
	return nil
}

// Lookup returns the entry for an ID, or DefaultEntry when absent.
func (l *List) Lookup(id string) Entry {
	if i, ok := l.index[id]; ok {
		return l.entries[i]
	}
	return DefaultEntry
}

// Entries returns the full list in declaration order.
func (l *List) Entries() []Entry {
	return l.entries
}

// RealIDs returns the IDs that exist at the provider, in declaration order.
// Simulated entries are excluded.
func (l *List) RealIDs() []string {
	var ids []string
	for _, e := range l.entries {
		if !e.Simulated {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Rank gives the declaration-order position of an ID for response sorting.
// Unknown IDs rank after every known one.
func (l *List) Rank(id string) int {
	if i, ok := l.index[id]; ok {
		return i
	}
	return len(l.entries)
}
