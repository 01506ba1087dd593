package works

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"kh-portfolio/internal/storage"
	"kh-portfolio/internal/utils"
)

// StorageKey is the single key holding the works snapshot.
const StorageKey = "kraig_hamrick_portfolio_works"

// Store owns the works list and mirrors it into storage after every change.
// The in-memory list is authoritative: a failed write is logged and the
// change is kept.
type Store struct {
	mu    sync.RWMutex
	items []Work
	seed  []Work
	st    storage.Storage
	log   *slog.Logger
}

func NewStore(st storage.Storage, seed []Work, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		items: make([]Work, 0),
		seed:  clone(seed),
		st:    st,
		log:   log,
	}
}

// Load resets the list to the seed and overwrites whatever storage held.
// Edits from an earlier run are discarded.
func (s *Store) Load(ctx context.Context) []Work {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = clone(s.seed)
	s.persistLocked(ctx)
	s.log.Info("works load: ok", slog.Int("count", len(s.items)))
	return clone(s.items)
}

func (s *Store) Add(ctx context.Context, d Draft) Work {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := d.withID(NextID(s.items))
	s.items = append(s.items, item)
	s.persistLocked(ctx)
	return item
}

// Update replaces the work with the same id. It reports false when no such
// work exists; the snapshot is written either way.
func (s *Store) Update(ctx context.Context, w Work) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.items {
		if s.items[i].ID == w.ID {
			s.items[i] = w
			found = true
		}
	}
	s.persistLocked(ctx)
	return found
}

// Remove drops the work with the given id. Removing an unknown id leaves
// the list as is and still rewrites the same snapshot.
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Work, 0, len(s.items))
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	removed := len(kept) != len(s.items)
	s.items = kept
	s.persistLocked(ctx)
	return removed
}

func (s *Store) List() []Work {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.items)
}

func (s *Store) Get(id string) (Work, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Work{}, false
}

// Find looks a work up by id, then by the slug of its title.
func (s *Store) Find(ref string) (Work, bool) {
	if item, ok := s.Get(ref); ok {
		return item, true
	}
	slug := utils.Slugify(ref)
	if slug == "" {
		return Work{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.Slug() == slug {
			return item, true
		}
	}
	return Work{}, false
}

func (s *Store) ListByCategory(category string) []Work {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Work, 0)
	for _, item := range s.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

func (s *Store) ListSortedByYear(desc bool) []Work {
	return SortByYear(s.List(), desc)
}

// Filter combines the category and sort read views.
func (s *Store) Filter(filter ListFilter) []Work {
	var items []Work
	if c := strings.TrimSpace(filter.Category); c != "" {
		items = s.ListByCategory(c)
	} else {
		items = s.List()
	}
	switch filter.Sort {
	case SortYearAsc:
		return SortByYear(items, false)
	case SortYearDesc:
		return SortByYear(items, true)
	}
	return items
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := Stats{Total: len(s.items), ByCategory: make(map[string]int, len(Categories))}
	for _, c := range Categories {
		stats.ByCategory[c] = 0
	}
	for _, item := range s.items {
		stats.ByCategory[item.Category]++
	}
	return stats
}

// Snapshot returns the JSON form of the list exactly as it is persisted.
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.Marshal(s.items)
}

func (s *Store) persistLocked(ctx context.Context) {
	payload, err := json.Marshal(s.items)
	if err != nil {
		s.log.Error("works persist: encode error", slog.String("error", err.Error()))
		return
	}
	if err := s.st.SetItem(ctx, StorageKey, string(payload)); err != nil {
		s.log.Error("works persist: storage error",
			slog.String("key", StorageKey),
			slog.Int("bytes", len(payload)),
			slog.String("error", err.Error()),
		)
	}
}

// NextID returns one past the largest numeric id. Ids that do not parse as
// integers are ignored and an empty list starts at "1".
func NextID(items []Work) string {
	highest := 0
	for _, item := range items {
		n, err := strconv.Atoi(strings.TrimSpace(item.ID))
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1)
}

// SortByYear returns a stably sorted copy; works from the same year keep
// their relative order.
func SortByYear(items []Work, desc bool) []Work {
	out := clone(items)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].Year > out[j].Year
		}
		return out[i].Year < out[j].Year
	})
	return out
}

func clone(items []Work) []Work {
	out := make([]Work, len(items))
	copy(out, items)
	return out
}

// ReadPersisted decodes the snapshot currently held by st. ok is false when
// nothing has been written yet.
func ReadPersisted(ctx context.Context, st storage.Storage) ([]Work, bool, error) {
	raw, ok, err := st.GetItem(ctx, StorageKey)
	if err != nil || !ok {
		return nil, ok, err
	}
	var items []Work
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, true, fmt.Errorf("decode %s: %w", StorageKey, err)
	}
	return items, true, nil
}
