package content

import "sync"

// Store is the authoritative in-memory holder of the site document. All reads
// return deep-copied snapshots; all writes run under the lock and notify
// subscribers synchronously with the post-mutation snapshot.
//
// The store itself is policy-free: authorization lives in Service, and
// persistence is driven by a Scheduler subscribed to changes.
type Store struct {
	mu      sync.RWMutex
	content Content
	subs    []func(Content)
}

// NewStore seeds the store with the initial document.
func NewStore(initial Content) *Store {
	return &Store{content: initial.Clone()}
}

// Subscribe registers a change listener. Listeners run synchronously in
// mutation order, outside the store lock.
func (s *Store) Subscribe(fn func(Content)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content.Clone()
}

// mutate applies fn under the lock and notifies subscribers when fn reports a
// change. fn receives the live document and must not retain references.
func (s *Store) mutate(fn func(c *Content) bool) bool {
	s.mu.Lock()
	changed := fn(&s.content)
	var snapshot Content
	var subs []func(Content)
	if changed {
		snapshot = s.content.Clone()
		subs = append(subs, s.subs...)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snapshot)
	}
	return changed
}

// UpdateField replaces one text field within a section. Returns false when the
// section name is unknown.
func (s *Store) UpdateField(section, key, value string) bool {
	return s.mutate(func(c *Content) bool {
		sec, ok := c.Section(section)
		if !ok {
			return false
		}
		if sec.Fields == nil {
			sec.Fields = map[string]string{}
		}
		sec.Fields[key] = value
		return true
	})
}

// UpdateItemField replaces one field of the item with the given id. Returns
// false when the section has no such item; order and every other item are
// untouched either way.
func (s *Store) UpdateItemField(section, itemID, field, value string) bool {
	return s.mutate(func(c *Content) bool {
		sec, ok := c.Section(section)
		if !ok {
			return false
		}
		for idx := range sec.Items {
			if sec.Items[idx].ID == itemID {
				sec.Items[idx].SetField(field, value)
				return true
			}
		}
		return false
	})
}

// ReorderItems replaces the section's item sequence wholesale with the given
// list. The list is stored verbatim; set-equality with the prior items is the
// caller's concern.
func (s *Store) ReorderItems(section string, items []Item) bool {
	return s.mutate(func(c *Content) bool {
		sec, ok := c.Section(section)
		if !ok {
			return false
		}
		replacement := make([]Item, len(items))
		for idx, item := range items {
			replacement[idx] = item.Clone()
		}
		sec.Items = replacement
		return true
	})
}

// AppendItem adds the item to the end of the section's sequence.
func (s *Store) AppendItem(section string, item Item) bool {
	return s.mutate(func(c *Content) bool {
		sec, ok := c.Section(section)
		if !ok {
			return false
		}
		sec.Items = append(sec.Items, item.Clone())
		return true
	})
}

// ContainsItem reports whether any section holds an item with the id.
func (s *Store) ContainsItem(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, name := range SectionNames {
		sec, _ := s.content.Section(name)
		for idx := range sec.Items {
			if sec.Items[idx].ID == id {
				return true
			}
		}
	}
	return false
}

// Replace swaps the whole document (import, reset).
func (s *Store) Replace(next Content) {
	s.mutate(func(c *Content) bool {
		*c = next.Clone()
		return true
	})
}
