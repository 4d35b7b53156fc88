// ABOUTME: Rule configuration store mapping DM follow-up labels to completion criteria
// ABOUTME: Backed by BadgerDB with one JSON record per label under the rule: prefix

package ruleconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/engine"
	"github.com/harperreed/outreach/models"
)

const keyPrefix = "rule:"

// Rule is one stored label -> criterion entry.
type Rule struct {
	Label     string    `json:"label"`
	Criterion string    `json:"criterion"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Known reports whether the engine understands the criterion. Unknown values
// are kept as-is and fall back to requiring another DM.
func (r Rule) Known() bool { return models.IsKnownCriterion(r.Criterion) }

// Store is safe for concurrent use.
type Store struct {
	db  *badger.DB
	mu  sync.RWMutex
	now func() time.Time
}

// Open opens (or creates) a store in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	return open(opts)
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule store: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func key(label string) []byte {
	return []byte(keyPrefix + label)
}

// Get returns the configured criterion for label, or "" if none is set.
func (s *Store) Get(label string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rule Rule
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(label))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rule)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read rule %q: %w", label, err)
	}
	return rule.Criterion, nil
}

// Set stores criterion for label, replacing any previous value.
func (s *Store) Set(label, criterion string) (*Rule, error) {
	label = strings.TrimSpace(label)
	criterion = strings.TrimSpace(criterion)
	if label == "" {
		return nil, apperr.Validation("rule label is required")
	}
	if criterion == "" {
		return nil, apperr.Validation("criterion is required")
	}

	rule := &Rule{Label: label, Criterion: criterion, UpdatedAt: s.now().UTC()}
	data, err := json.Marshal(rule)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rule: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(label), data)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write rule %q: %w", label, err)
	}
	return rule, nil
}

// Delete removes the entry for label so it reverts to the default criterion.
// Deleting an absent label is not an error.
func (s *Store) Delete(label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(label))
	})
	if err != nil {
		return fmt.Errorf("failed to delete rule %q: %w", label, err)
	}
	return nil
}

// All returns every stored rule sorted by label.
func (s *Store) All() ([]Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rules []Rule
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rule Rule
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rule)
			}); err != nil {
				return fmt.Errorf("corrupt rule %q: %w", it.Item().Key(), err)
			}
			rules = append(rules, rule)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}

	sort.Slice(rules, func(i, j int) bool { return rules[i].Label < rules[j].Label })
	return rules, nil
}

// Effective lists every DM follow-up label with the criterion the engine
// will apply, filling defaults for unset labels.
func (s *Store) Effective() ([]Rule, error) {
	stored, err := s.All()
	if err != nil {
		return nil, err
	}
	byLabel := make(map[string]Rule, len(stored))
	for _, r := range stored {
		byLabel[r.Label] = r
	}

	out := make([]Rule, 0, len(engine.DMLabels()))
	for _, label := range engine.DMLabels() {
		if r, ok := byLabel[label]; ok {
			out = append(out, r)
			continue
		}
		out = append(out, Rule{Label: label, Criterion: models.CriterionAnyOutreach})
	}
	return out, nil
}

// Snapshot copies the current configuration into an immutable map for one
// engine run.
func (s *Store) Snapshot() (engine.StaticCriteria, error) {
	rules, err := s.All()
	if err != nil {
		return nil, err
	}
	snap := make(engine.StaticCriteria, len(rules))
	for _, r := range rules {
		snap[r.Label] = r.Criterion
	}
	return snap, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
