package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hrgrifes/atelier-backend/internal/content"
	"github.com/hrgrifes/atelier-backend/internal/records"
	pkgerrors "github.com/hrgrifes/atelier-backend/pkg/errors"
	"github.com/hrgrifes/atelier-backend/pkg/logger"
)

type recordStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Upsert(ctx context.Context, key, doc string) error
	Delete(ctx context.Context, key string) error
}

// Service holds the visitor cart: an ordered list of item snapshots.
//
// Entries are copies taken at add time, so later catalog edits never rewrite
// what a visitor already picked. The same item may appear more than once, and
// removal is positional for exactly that reason. Unlike content, cart writes
// persist immediately; there is no debounce to lose a pick behind.
//
// In-memory state stays authoritative when a persist fails: the visitor keeps
// the cart, the failure is logged and surfaced.
type Service struct {
	repo recordStore
	logg *logger.Logger

	mu    sync.Mutex
	items []content.Item
	open  bool
}

// NewService restores the persisted cart. A missing or unreadable record
// starts empty rather than failing the boot.
func NewService(ctx context.Context, repo recordStore, logg *logger.Logger) *Service {
	s := &Service{repo: repo, logg: logg}

	doc, found, err := repo.Get(ctx, records.KeySiteCart)
	if err != nil {
		if logg != nil {
			logg.Error(ctx, "reading persisted cart, starting empty", err)
		}
		return s
	}
	if !found {
		return s
	}
	var items []content.Item
	if err := json.Unmarshal([]byte(doc), &items); err != nil {
		if logg != nil {
			logg.Error(ctx, "parsing persisted cart, starting empty", err)
		}
		return s
	}
	s.items = items
	return s
}

// Items returns a deep copy of the cart in pick order.
func (s *Service) Items(ctx context.Context) []content.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// Count returns the number of entries.
func (s *Service) Count(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// IsOpen reports whether the cart drawer was left open.
func (s *Service) IsOpen(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// SetOpen records the drawer state.
func (s *Service) SetOpen(ctx context.Context, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = open
}

// Add appends a snapshot of the item and opens the drawer.
func (s *Service) Add(ctx context.Context, item content.Item) error {
	s.mu.Lock()
	s.items = append(s.items, item.Clone())
	s.open = true
	snapshot := cloneItems(s.items)
	s.mu.Unlock()

	return s.persist(ctx, snapshot)
}

// Remove drops the entry at the given position. Positions shift down after a
// removal, matching what the visitor sees in the drawer.
func (s *Service) Remove(ctx context.Context, index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.items) {
		size := len(s.items)
		s.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeNotFound, "no cart entry at that position").
			WithDetails(map[string]any{"index": index, "size": size})
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	snapshot := cloneItems(s.items)
	s.mu.Unlock()

	return s.persist(ctx, snapshot)
}

// Clear empties the cart and removes the persisted record.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	if err := s.repo.Delete(ctx, records.KeySiteCart); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "clearing persisted cart", err)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear persisted cart")
	}
	return nil
}

func (s *Service) persist(ctx context.Context, items []content.Item) error {
	doc, err := json.Marshal(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.repo.Upsert(ctx, records.KeySiteCart, string(doc)); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "persisting cart", err)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}
	return nil
}

func cloneItems(items []content.Item) []content.Item {
	if items == nil {
		return nil
	}
	out := make([]content.Item, len(items))
	for idx, item := range items {
		out[idx] = item.Clone()
	}
	return out
}
