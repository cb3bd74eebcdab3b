package hierarchy

import (
	"fmt"
)

// HierarchyList flattens the forest in pre-order, descending only into
// expanded nodes. It returns a fresh slice on every call.
func (s *Store[K, T]) HierarchyList() []Row[K, T] {
	rows := make([]Row[K, T], 0, len(s.roots))
	var walk func(hs []Handle, depth int)
	walk = func(hs []Handle, depth int) {
		for _, h := range hs {
			sl := &s.slots[h]
			expand := s.expanded.Contains(uint32(h))
			rows = append(rows, Row[K, T]{
				Key:         sl.key,
				Item:        sl.item,
				Expand:      expand,
				Depth:       depth,
				HasChildren: len(sl.children) > 0,
			})
			if expand {
				walk(sl.children, depth+1)
			}
		}
	}
	walk(s.roots, 0)
	return rows
}

// Nodes returns a snapshot of the whole forest, collapsed nodes included.
func (s *Store[K, T]) Nodes() []*Node[T] {
	return s.snapshot(s.roots)
}

func (s *Store[K, T]) snapshot(hs []Handle) []*Node[T] {
	out := make([]*Node[T], 0, len(hs))
	for _, h := range hs {
		sl := &s.slots[h]
		n := &Node[T]{Item: sl.item, Expand: s.expanded.Contains(uint32(h))}
		if len(sl.children) > 0 {
			n.Children = s.snapshot(sl.children)
		}
		out = append(out, n)
	}
	return out
}

// ExtractDirectories returns an expanded copy of the tree holding only
// directory nodes, with the subtree rooted at exclude left out. It backs
// "move to folder" pickers, where a directory must not be moved into itself.
func (s *Store[K, T]) ExtractDirectories(exclude K) []*Node[T] {
	if s.opts.IsDirectory == nil {
		return []*Node[T]{}
	}
	var filter func(nodes []*Node[T]) []*Node[T]
	filter = func(nodes []*Node[T]) []*Node[T] {
		out := []*Node[T]{}
		for _, n := range nodes {
			if s.opts.Key(n.Item) == exclude || !s.opts.IsDirectory(n) {
				continue
			}
			out = append(out, &Node[T]{
				Item:     n.Item,
				Expand:   true,
				Children: filter(n.Children),
			})
		}
		return out
	}
	return filter(s.Nodes())
}

// PruneEmptyDirectories removes directory nodes left without children,
// working from the leaves up so a directory emptied by the pass goes too.
// It returns the number of removed nodes.
func (s *Store[K, T]) PruneEmptyDirectories() int {
	if s.opts.IsDirectory == nil {
		return 0
	}
	removed := 0
	var prune func(hs []Handle) []Handle
	prune = func(hs []Handle) []Handle {
		kept := hs[:0]
		for _, h := range hs {
			sl := &s.slots[h]
			if len(sl.children) > 0 {
				sl.children = prune(sl.children)
			}
			if len(sl.children) == 0 && s.opts.IsDirectory(&Node[T]{Item: sl.item, Expand: s.expanded.Contains(uint32(h))}) {
				s.release(h)
				removed++
				continue
			}
			kept = append(kept, h)
		}
		return kept
	}
	s.roots = prune(s.roots)
	return removed
}

// SetExpand sets the expansion flag of one node.
func (s *Store[K, T]) SetExpand(key K, expand bool) error {
	h, ok := s.lookup(key)
	if !ok {
		return fmt.Errorf("expand %v: %w", key, ErrNotFound)
	}
	s.setExpanded(h, expand)
	return nil
}

// Toggle flips the expansion flag of one node and returns the new value.
func (s *Store[K, T]) Toggle(key K) (bool, error) {
	h, ok := s.lookup(key)
	if !ok {
		return false, fmt.Errorf("toggle %v: %w", key, ErrNotFound)
	}
	expand := !s.expanded.Contains(uint32(h))
	s.setExpanded(h, expand)
	return expand, nil
}

// IsExpanded reports the expansion flag of one node.
func (s *Store[K, T]) IsExpanded(key K) bool {
	h, ok := s.lookup(key)
	return ok && s.expanded.Contains(uint32(h))
}

// ExpandAll expands every node that has children.
func (s *Store[K, T]) ExpandAll() {
	for _, h := range s.index {
		if len(s.slots[h].children) > 0 {
			s.expanded.Add(uint32(h))
		}
	}
}

// CollapseAll collapses every node.
func (s *Store[K, T]) CollapseAll() {
	s.expanded.Clear()
}

// Get returns the record stored under key.
func (s *Store[K, T]) Get(key K) (T, bool) {
	h, ok := s.lookup(key)
	if !ok {
		var zero T
		return zero, false
	}
	return s.slots[h].item, true
}

// Has reports whether key is indexed.
func (s *Store[K, T]) Has(key K) bool {
	_, ok := s.index[key]
	return ok
}

// Len returns the number of indexed nodes.
func (s *Store[K, T]) Len() int {
	return len(s.index)
}

// Roots returns the keys of the top-level nodes in display order.
func (s *Store[K, T]) Roots() []K {
	return s.keys(s.roots)
}

// Children returns the keys of key's children in display order.
func (s *Store[K, T]) Children(key K) []K {
	h, ok := s.lookup(key)
	if !ok {
		return nil
	}
	return s.keys(s.slots[h].children)
}

// Parent returns the key of the node holding key. Roots have no parent.
func (s *Store[K, T]) Parent(key K) (K, bool) {
	var zero K
	h, ok := s.lookup(key)
	if !ok {
		return zero, false
	}
	p := s.slots[h].parent
	if p == noHandle {
		return zero, false
	}
	return s.slots[p].key, true
}

// Path returns the keys from the root down to key, key included.
func (s *Store[K, T]) Path(key K) []K {
	h, ok := s.lookup(key)
	if !ok {
		return nil
	}
	var path []K
	for ; h != noHandle; h = s.slots[h].parent {
		path = append(path, s.slots[h].key)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Text renders the display text of the record stored under key.
func (s *Store[K, T]) Text(key K) string {
	item, ok := s.Get(key)
	if !ok {
		return ""
	}
	if s.opts.Text != nil {
		return s.opts.Text(item)
	}
	return fmt.Sprint(key)
}

func (s *Store[K, T]) keys(hs []Handle) []K {
	out := make([]K, len(hs))
	for i, h := range hs {
		out[i] = s.slots[h].key
	}
	return out
}
