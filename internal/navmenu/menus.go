// Package navmenu arranges navigation menu entries into a tree and drops
// folders that end up with nothing to navigate to.
package navmenu

import (
	"cmp"
	"log"

	"github.com/agentic-research/uniface/internal/hierarchy"
)

// Kind tells folders apart from navigable entries.
type Kind int

const (
	Link Kind = iota
	Directory
)

// MenuItem is one navigation entry.
type MenuItem struct {
	Key       string
	ParentKey string
	Text      string
	Href      string
	Icon      string
	Kind      Kind
	Order     int
}

// Menus is a hierarchy store specialised for MenuItem.
type Menus struct {
	*hierarchy.Store[string, MenuItem]
}

// New returns an empty menu tree. Entries without a parent key are roots;
// siblings are ordered by Order, then by Text.
func New(logger *log.Logger) *Menus {
	store, err := hierarchy.New(hierarchy.Options[string, MenuItem]{
		Key:       func(m MenuItem) string { return m.Key },
		ParentKey: func(m MenuItem) string { return m.ParentKey },
		Text:      func(m MenuItem) string { return m.Text },
		IsRoot:    func(m MenuItem) bool { return m.ParentKey == "" },
		IsDirectory: func(n *hierarchy.Node[MenuItem]) bool {
			return n.Item.Kind == Directory
		},
		Compare: func(a, b MenuItem) int {
			if c := cmp.Compare(a.Order, b.Order); c != 0 {
				return c
			}
			return cmp.Compare(a.Text, b.Text)
		},
		Logger: logger,
	})
	if err != nil {
		// the accessors above are static; New cannot reject them
		panic(err)
	}
	return &Menus{Store: store}
}

// Load replaces the menu with items and removes empty directories, which
// typically appear after permission filtering dropped every link below them.
func (m *Menus) Load(items []MenuItem) {
	m.SetData(items)
	m.RemoveEmptyDirectory()
}

// RemoveEmptyDirectory removes every directory that has no children left.
func (m *Menus) RemoveEmptyDirectory() int {
	return m.PruneEmptyDirectories()
}

// Visible returns the entries currently shown, in display order.
func (m *Menus) Visible() []hierarchy.Row[string, MenuItem] {
	return m.HierarchyList()
}

// Filter keeps the items accepted by allow. Typical use is permission
// filtering ahead of Load.
func Filter(items []MenuItem, allow func(MenuItem) bool) []MenuItem {
	out := make([]MenuItem, 0, len(items))
	for _, it := range items {
		if it.Kind == Directory || allow(it) {
			out = append(out, it)
		}
	}
	return out
}
