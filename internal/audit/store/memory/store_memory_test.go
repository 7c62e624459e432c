package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remedia/internal/audit"
)

func TestAppendAndList(t *testing.T) {
	store := NewStore()

	require.NoError(t, store.Append(context.Background(), audit.Record{ID: "rec-1", ThreatID: "t-1"}))
	require.NoError(t, store.Append(context.Background(), audit.Record{ID: "rec-2", ThreatID: "t-2"}))
	require.NoError(t, store.Append(context.Background(), audit.Record{ID: "rec-3", ThreatID: "t-1"}))

	all := store.List()
	require.Len(t, all, 3)
	assert.Equal(t, "rec-1", all[0].ID)
	assert.Equal(t, "rec-3", all[2].ID)

	byThreat := store.ListByThreat("t-1")
	require.Len(t, byThreat, 2)
	assert.Equal(t, "rec-1", byThreat[0].ID)
	assert.Equal(t, "rec-3", byThreat[1].ID)

	assert.Equal(t, 3, store.Len())
	store.Clear()
	assert.Equal(t, 0, store.Len())
}

func TestListReturnsCopy(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Append(context.Background(), audit.Record{ID: "rec-1"}))

	got := store.List()
	got[0].ID = "mutated"

	assert.Equal(t, "rec-1", store.List()[0].ID)
}

func TestConcurrentAppends(t *testing.T) {
	store := NewStore()

	const writers = 32
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, store.Append(context.Background(), audit.Record{
				ID: fmt.Sprintf("rec-%d", i),
			}))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, writers, store.Len())
}
