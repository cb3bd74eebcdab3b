package hierarchy

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynced_ConcurrentAppends(t *testing.T) {
	s, _ := newStore(t, nil)
	s.SetData([]entry{{ID: 1}})
	w := NewSynced(s)

	var wg sync.WaitGroup
	for i := 2; i < 52; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			assert.NoError(t, w.Append(entry{ID: id, Parent: 1}))
			_ = w.HierarchyList()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 51, w.Len())
	assert.Len(t, w.HierarchyList(), 51)
}

func TestSynced_Swap(t *testing.T) {
	first, _ := newStore(t, nil)
	first.SetData([]entry{{ID: 1, Name: "first"}})
	second, _ := newStore(t, nil)
	second.SetData([]entry{{ID: 1, Name: "second"}, {ID: 2}})

	w := NewSynced(first)
	prev := w.Swap(second)
	assert.Same(t, first, prev)

	got, ok := w.Get(1)
	require.True(t, ok)
	assert.Equal(t, "second", got.Name)
	assert.Equal(t, 2, w.Len())
}
