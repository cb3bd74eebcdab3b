package hierarchy

import (
	"fmt"
	"slices"
)

// Append inserts a new, expanded node for item. A parent receiving the node
// is expanded and its children re-sorted. Append fails without touching the
// store when the key is already present or the parent is unknown.
func (s *Store[K, T]) Append(item T) error {
	key := s.opts.Key(item)
	if _, ok := s.index[key]; ok {
		return fmt.Errorf("append %v: %w", key, ErrDuplicateKey)
	}
	if !s.opts.IsRoot(item) {
		parentKey := s.opts.ParentKey(item)
		if _, ok := s.index[parentKey]; !ok {
			s.log.Printf("hierarchy: ignore isolated record %v (parent %v)", key, parentKey)
			return fmt.Errorf("append %v: parent %v: %w", key, parentKey, ErrOrphan)
		}
	}
	h := s.alloc(key, item)
	s.expanded.Add(uint32(h))
	s.link(h, true)
	return nil
}

// Replace swaps the record stored under item's key and re-sorts the sibling
// list that holds it.
func (s *Store[K, T]) Replace(item T) error {
	key := s.opts.Key(item)
	h, ok := s.lookup(key)
	if !ok {
		return fmt.Errorf("replace %v: %w", key, ErrNotFound)
	}
	s.slots[h].item = item
	s.sortHandles(*s.siblings(h))
	return nil
}

// Remove detaches the node stored under key together with its whole subtree.
// Every removed node leaves the index; nothing stays reachable only by key.
func (s *Store[K, T]) Remove(key K) error {
	h, ok := s.lookup(key)
	if !ok {
		return fmt.Errorf("remove %v: %w", key, ErrNotFound)
	}
	s.detach(h)

	stack := []Handle{h}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, s.slots[top].children...)
		s.release(top)
	}
	return nil
}

// MoveTo re-parents the node stored under key below newParentKey and
// re-sorts the new parent's children. Roots cannot be moved, and a node
// cannot move below itself or its descendants.
//
// The store tracks parents by handle, so the move is structurally sound even
// if the record's own parent field is stale. Keeping that field in sync is
// the caller's job; Replace can store the updated record afterwards.
func (s *Store[K, T]) MoveTo(key, newParentKey K) error {
	h, ok := s.lookup(key)
	if !ok {
		return fmt.Errorf("move %v: %w", key, ErrNotFound)
	}
	np, ok := s.lookup(newParentKey)
	if !ok {
		return fmt.Errorf("move %v to %v: %w", key, newParentKey, ErrNotFound)
	}
	if s.slots[h].parent == noHandle {
		return fmt.Errorf("move %v: %w", key, ErrNoParent)
	}
	for p := np; p != noHandle; p = s.slots[p].parent {
		if p == h {
			return fmt.Errorf("move %v to %v: %w", key, newParentKey, ErrCycle)
		}
	}

	s.detach(h)
	parent := &s.slots[np]
	parent.children = append(parent.children, h)
	s.slots[h].parent = np
	s.sortHandles(parent.children)
	return nil
}

// detach unlinks h from its sibling list, keeping the slot itself alive.
func (s *Store[K, T]) detach(h Handle) {
	list := s.siblings(h)
	if pos := slices.Index(*list, h); pos >= 0 {
		*list = slices.Delete(*list, pos, pos+1)
	}
	s.slots[h].parent = noHandle
}
