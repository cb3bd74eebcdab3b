package navmenu

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleMenu() []MenuItem {
	return []MenuItem{
		{Key: "admin", Text: "Admin", Kind: Directory, Order: 2},
		{Key: "users", ParentKey: "admin", Text: "Users", Href: "/admin/users", Order: 1},
		{Key: "audit", ParentKey: "admin", Text: "Audit", Href: "/admin/audit", Order: 0},
		{Key: "reports", Text: "Reports", Kind: Directory, Order: 1},
		{Key: "yearly", ParentKey: "reports", Text: "Yearly", Kind: Directory},
		{Key: "home", Text: "Home", Href: "/", Order: 0},
	}
}

func visibleKeys(m *Menus) []string {
	var keys []string
	for _, r := range m.Visible() {
		keys = append(keys, r.Key)
	}
	return keys
}

func TestMenus_LoadRemovesEmptyDirectories(t *testing.T) {
	m := New(log.New(&bytes.Buffer{}, "", 0))
	m.Load(sampleMenu())

	assert.Equal(t, []string{"home", "admin", "users", "audit"}, visibleKeys(m))
	assert.False(t, m.Has("reports"))
	assert.False(t, m.Has("yearly"))
}

func TestMenus_FilterThenLoad(t *testing.T) {
	m := New(log.New(&bytes.Buffer{}, "", 0))
	m.Load(Filter(sampleMenu(), func(it MenuItem) bool {
		return !strings.HasPrefix(it.Href, "/admin")
	}))

	assert.Equal(t, []string{"home"}, visibleKeys(m))
	assert.Equal(t, 1, m.Len())
}

func TestMenus_RemoveEmptyDirectoryCount(t *testing.T) {
	m := New(log.New(&bytes.Buffer{}, "", 0))
	m.SetData(sampleMenu())
	assert.Equal(t, 2, m.RemoveEmptyDirectory())
	assert.Equal(t, 0, m.RemoveEmptyDirectory())
}
