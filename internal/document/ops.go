package document

// Put returns a store with d stored under id, overwriting any existing
// entry.
func (s Store) Put(id string, d Document) Store {
	if existing, ok := s[id]; ok && existing.Equal(d) {
		return s
	}
	next := s.Clone()
	next[id] = d
	return next
}

// Insert returns a store with a new document under id. For stateless
// plugins the state is dropped.
func (s Store) Insert(id, plugin string, stateful bool, state any) Store {
	d := Document{Plugin: plugin}
	if stateful {
		d.State = state
	}
	return s.Put(id, d)
}

// Change returns a store where the document under id carries state. The
// document keeps its plugin type and every other document is preserved.
// The second result is false when id is not present; the store is then
// returned unchanged.
func (s Store) Change(id string, state any) (Store, bool) {
	existing, ok := s[id]
	if !ok {
		return s, false
	}
	existing.State = state
	return s.Put(id, existing), true
}

// Remove returns a store without id. Removing an absent id is a no-op.
func (s Store) Remove(id string) Store {
	if _, ok := s[id]; !ok {
		return s
	}
	next := make(Store, len(s))
	for k, d := range s {
		if k != id {
			next[k] = d
		}
	}
	return next
}

// Restore writes d back under id, or removes id when d is nil. It is the
// primitive history uses to revert and re-apply edits.
func (s Store) Restore(id string, d *Document) Store {
	if d == nil {
		return s.Remove(id)
	}
	return s.Put(id, *d)
}
