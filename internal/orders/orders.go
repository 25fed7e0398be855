// Package orders provides read-only lookup tables for order status and FAQ
// answers, loaded from JSON files at startup.
package orders

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Lookup maps order identifiers to status text. Absent identifiers resolve
// to a fixed not-found message, never an error.
type Lookup struct {
	statuses map[string]string
}

// NewLookup wraps an in-memory status table.
func NewLookup(statuses map[string]string) *Lookup {
	if statuses == nil {
		statuses = map[string]string{}
	}
	return &Lookup{statuses: statuses}
}

// LoadLookup reads the order status table from a JSON file. A missing file
// yields an empty table: the bot degrades to not-found answers instead of
// refusing to start.
func LoadLookup(path string) (*Lookup, error) {
	statuses, err := loadTable(path)
	if err != nil {
		return nil, err
	}
	return NewLookup(statuses), nil
}

// Status returns the status text for an order, or the not-found message.
func (l *Lookup) Status(orderID string) string {
	if status, ok := l.statuses[orderID]; ok {
		return status
	}
	return fmt.Sprintf("Заказ с номером %s не найден. Пожалуйста, проверьте правильность номера заказа.", orderID)
}

// FAQ maps topic keys to canned answers.
type FAQ struct {
	entries map[string]string
	keys    []string // sorted, for deterministic matching
}

// NewFAQ wraps an in-memory FAQ table.
func NewFAQ(entries map[string]string) *FAQ {
	if entries == nil {
		entries = map[string]string{}
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &FAQ{entries: entries, keys: keys}
}

// LoadFAQ reads the FAQ table from a JSON file; a missing file yields an
// empty table.
func LoadFAQ(path string) (*FAQ, error) {
	entries, err := loadTable(path)
	if err != nil {
		return nil, err
	}
	return NewFAQ(entries), nil
}

// Match returns the answer for the first topic key that appears in the turn
// text, case-insensitively. Keys are scanned in sorted order so matching is
// reproducible.
func (f *FAQ) Match(turn string) (string, bool) {
	turnLower := strings.ToLower(turn)
	for _, key := range f.keys {
		if strings.Contains(turnLower, strings.ToLower(key)) {
			return f.entries[key], true
		}
	}
	return "", false
}

// Answer returns the canned answer for a topic and whether it exists.
func (f *FAQ) Answer(topic string) (string, bool) {
	answer, ok := f.entries[topic]
	return answer, ok
}

// Len reports the number of FAQ entries.
func (f *FAQ) Len() int {
	return len(f.entries)
}

func loadTable(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var table map[string]string
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return table, nil
}
