package hierarchy

import (
	"errors"
	"fmt"
	"log"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring"
)

var (
	ErrNotFound       = errors.New("node not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrOrphan         = errors.New("parent not found")
	ErrNoParent       = errors.New("node has no parent")
	ErrCycle          = errors.New("target is the node itself or one of its descendants")
	ErrInvalidOptions = errors.New("invalid hierarchy options")
)

// Handle addresses one slot of the store's node table. Handles stay valid
// until the node is removed or the next SetData.
type Handle uint32

const noHandle Handle = math.MaxUint32

// Options configures a Store. Key, ParentKey and IsRoot are required: the
// root of a record cannot be inferred when parent keys may be absent or
// shared by unrelated records.
type Options[K comparable, T any] struct {
	Key       func(T) K
	ParentKey func(T) K
	// Text renders the display text of a record. Defaults to the key.
	Text   func(T) string
	IsRoot func(T) bool
	// IsDirectory is used by ExtractDirectories and PruneEmptyDirectories.
	IsDirectory func(*Node[T]) bool
	// Compare orders siblings. Nil keeps insertion order.
	Compare func(a, b T) int
	// ExpandDepth is the number of levels left expanded by SetData. Zero means 1.
	ExpandDepth int
	Logger      *log.Logger
}

// Node is a detached snapshot of one position in the tree.
type Node[T any] struct {
	Item     T
	Expand   bool
	Children []*Node[T]
}

// Row is one entry of the visible-rows projection.
type Row[K comparable, T any] struct {
	Key         K
	Item        T
	Expand      bool
	Depth       int
	HasChildren bool
}

type slot[K comparable, T any] struct {
	key      K
	item     T
	parent   Handle
	children []Handle
	live     bool
}

// Store keeps a forest over a mutable set of flat records. Nodes live in a
// flat slot table; parent and child links are handles into that table, and
// the expansion state is a bitmap of handles.
//
// A Store is not safe for concurrent use. Wrap it in Synced when several
// goroutines share it.
type Store[K comparable, T any] struct {
	opts     Options[K, T]
	log      *log.Logger
	slots    []slot[K, T]
	index    map[K]Handle
	roots    []Handle
	expanded *roaring.Bitmap
}

// New validates opts and returns an empty store.
func New[K comparable, T any](opts Options[K, T]) (*Store[K, T], error) {
	switch {
	case opts.Key == nil:
		return nil, fmt.Errorf("%w: Key accessor is required", ErrInvalidOptions)
	case opts.ParentKey == nil:
		return nil, fmt.Errorf("%w: ParentKey accessor is required", ErrInvalidOptions)
	case opts.IsRoot == nil:
		return nil, fmt.Errorf("%w: IsRoot predicate is required", ErrInvalidOptions)
	case opts.ExpandDepth < 0:
		return nil, fmt.Errorf("%w: ExpandDepth %d is negative", ErrInvalidOptions, opts.ExpandDepth)
	}
	if opts.ExpandDepth == 0 {
		opts.ExpandDepth = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Store[K, T]{
		opts:     opts,
		log:      logger,
		index:    make(map[K]Handle),
		expanded: roaring.New(),
	}, nil
}

// SetData discards the current tree and rebuilds it from records.
//
// Children may appear before their parents in records. Records whose parent
// cannot be resolved, and everything below them, are logged and left out of
// the store. A parent that receives a child is expanded; afterwards, if
// ExpandDepth is greater than 1, nodes are expanded down to that depth and
// collapsed below it.
func (s *Store[K, T]) SetData(records []T) {
	s.slots = make([]slot[K, T], 0, len(records))
	s.index = make(map[K]Handle, len(records))
	s.roots = nil
	s.expanded.Clear()

	handles := make([]Handle, 0, len(records))
	for _, item := range records {
		key := s.opts.Key(item)
		if _, dup := s.index[key]; dup {
			s.log.Printf("hierarchy: ignore duplicate key %v", key)
			continue
		}
		handles = append(handles, s.alloc(key, item))
	}

	for _, h := range handles {
		s.link(h, false)
	}
	s.dropUnreachable()

	if s.opts.ExpandDepth > 1 {
		s.expandToDepth(s.roots, 0)
	}
}

func (s *Store[K, T]) alloc(key K, item T) Handle {
	h := Handle(len(s.slots))
	s.slots = append(s.slots, slot[K, T]{key: key, item: item, parent: noHandle, live: true})
	s.index[key] = h
	return h
}

// link attaches h to Roots or to its parent. Roots are re-sorted on every
// insert; a child list only when sortSiblings is set.
func (s *Store[K, T]) link(h Handle, sortSiblings bool) bool {
	item := s.slots[h].item
	if s.opts.IsRoot(item) {
		s.roots = append(s.roots, h)
		s.sortHandles(s.roots)
		return true
	}
	ph, ok := s.index[s.opts.ParentKey(item)]
	if !ok || ph == h {
		return false
	}
	parent := &s.slots[ph]
	parent.children = append(parent.children, h)
	s.slots[h].parent = ph
	s.expanded.Add(uint32(ph))
	if sortSiblings {
		s.sortHandles(parent.children)
	}
	return true
}

// dropUnreachable evicts every slot that cannot be reached from Roots:
// orphans, their descendants and parent cycles.
func (s *Store[K, T]) dropUnreachable() {
	reachable := roaring.New()
	var mark func(hs []Handle)
	mark = func(hs []Handle) {
		for _, h := range hs {
			reachable.Add(uint32(h))
			mark(s.slots[h].children)
		}
	}
	mark(s.roots)

	for i := range s.slots {
		h := Handle(i)
		if !s.slots[i].live || reachable.Contains(uint32(h)) {
			continue
		}
		s.log.Printf("hierarchy: ignore isolated record %v", s.slots[i].key)
		s.release(h)
	}
}

// release removes a single slot from the index. Links are left to the caller.
func (s *Store[K, T]) release(h Handle) {
	sl := &s.slots[h]
	if !sl.live {
		return
	}
	delete(s.index, sl.key)
	s.expanded.Remove(uint32(h))
	sl.live = false
	sl.children = nil
	sl.parent = noHandle
	var zero T
	sl.item = zero
}

func (s *Store[K, T]) expandToDepth(hs []Handle, depth int) {
	for _, h := range hs {
		s.setExpanded(h, depth < s.opts.ExpandDepth)
		s.expandToDepth(s.slots[h].children, depth+1)
	}
}

func (s *Store[K, T]) setExpanded(h Handle, expand bool) {
	if expand {
		s.expanded.Add(uint32(h))
	} else {
		s.expanded.Remove(uint32(h))
	}
}

func (s *Store[K, T]) sortHandles(hs []Handle) {
	if s.opts.Compare == nil || len(hs) < 2 {
		return
	}
	slices.SortStableFunc(hs, func(a, b Handle) int {
		return s.opts.Compare(s.slots[a].item, s.slots[b].item)
	})
}

// siblings returns the list that holds h: its parent's children or Roots.
func (s *Store[K, T]) siblings(h Handle) *[]Handle {
	if p := s.slots[h].parent; p != noHandle {
		return &s.slots[p].children
	}
	return &s.roots
}

func (s *Store[K, T]) lookup(key K) (Handle, bool) {
	h, ok := s.index[key]
	return h, ok
}
