package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"figmcp/internal/figma"
)

func TestNodes_SecondCallHitsCache(t *testing.T) {
	c := New()
	var calls int
	fetch := func(ctx context.Context) ([]figma.NodeSummary, error) {
		calls++
		return []figma.NodeSummary{{ID: "1:1", Name: "Button", Type: figma.TypeComponent}}, nil
	}

	first, err := c.Nodes(context.Background(), "ABC", fetch)
	require.NoError(t, err)
	second, err := c.Nodes(context.Background(), "ABC", fetch)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.NodeLists)
}

func TestNodes_KeysAreIndependent(t *testing.T) {
	c := New()
	var calls int
	fetch := func(ctx context.Context) ([]figma.NodeSummary, error) {
		calls++
		return nil, nil
	}

	_, err := c.Nodes(context.Background(), "A", fetch)
	require.NoError(t, err)
	_, err = c.Nodes(context.Background(), "B", fetch)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestNodes_ErrorsAreNotCached(t *testing.T) {
	c := New()
	var calls int
	boom := errors.New("rate limited")
	fetch := func(ctx context.Context) ([]figma.NodeSummary, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return []figma.NodeSummary{{ID: "1:1"}}, nil
	}

	_, err := c.Nodes(context.Background(), "ABC", fetch)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Stats().NodeLists)

	list, err := c.Nodes(context.Background(), "ABC", fetch)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 2, calls)
}

func TestNodes_ReturnedSliceIsACopy(t *testing.T) {
	c := New()
	fetch := func(ctx context.Context) ([]figma.NodeSummary, error) {
		return []figma.NodeSummary{{ID: "1:1", Name: "Original"}}, nil
	}

	list, err := c.Nodes(context.Background(), "ABC", fetch)
	require.NoError(t, err)
	list[0].Name = "Mutated"

	again, err := c.Nodes(context.Background(), "ABC", fetch)
	require.NoError(t, err)
	assert.Equal(t, "Original", again[0].Name)
}

func TestNodes_ConcurrentMissesShareOneFetch(t *testing.T) {
	c := New()
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) ([]figma.NodeSummary, error) {
		calls.Add(1)
		<-release
		return []figma.NodeSummary{{ID: "1:1"}}, nil
	}

	const n = 16
	var started, done sync.WaitGroup
	started.Add(n)
	done.Add(n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			defer done.Done()
			started.Done()
			_, err := c.Nodes(context.Background(), "ABC", fetch)
			errs <- err
		}()
	}
	started.Wait()
	close(release)
	done.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestNodeDetail(t *testing.T) {
	c := New()
	var calls int
	fetch := func(ctx context.Context) (figma.NodesResponse, error) {
		calls++
		return figma.NodesResponse{"nodes": map[string]any{"4:5": map[string]any{"document": map[string]any{"id": "4:5"}}}}, nil
	}

	_, err := c.NodeDetail(context.Background(), "ABC", "4:5", fetch)
	require.NoError(t, err)
	_, err = c.NodeDetail(context.Background(), "ABC", "4:5", fetch)
	require.NoError(t, err)
	_, err = c.NodeDetail(context.Background(), "ABC", "4:6", fetch)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, c.Stats().Details)
	assert.Equal(t, "ABC:4:5", DetailKey("ABC", "4:5"))
}

func TestFiles_LoadedOnce(t *testing.T) {
	c := New()
	var calls int
	fetch := func(ctx context.Context) ([]figma.FileMeta, error) {
		calls++
		return []figma.FileMeta{{Key: "A", Name: "Alpha"}}, nil
	}

	for i := 0; i < 3; i++ {
		files, err := c.Files(context.Background(), fetch)
		require.NoError(t, err)
		assert.Len(t, files, 1)
	}
	assert.Equal(t, 1, calls)
	assert.True(t, c.Stats().FilesLoaded)
}

func TestFiles_FailureIsRetried(t *testing.T) {
	c := New()
	var calls int
	fetch := func(ctx context.Context) ([]figma.FileMeta, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("offline")
		}
		return []figma.FileMeta{{Key: "A"}}, nil
	}

	_, err := c.Files(context.Background(), fetch)
	require.Error(t, err)
	assert.False(t, c.Stats().FilesLoaded)

	files, err := c.Files(context.Background(), fetch)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestAddFile(t *testing.T) {
	c := New()
	fetch := func(ctx context.Context) ([]figma.FileMeta, error) {
		return []figma.FileMeta{{Key: "A", Name: "Alpha"}}, nil
	}

	t.Run("before load is merged after fetched files", func(t *testing.T) {
		c.AddFile(figma.FileMeta{Key: "B", Name: "Beta"})
		files, err := c.Files(context.Background(), fetch)
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "A", files[0].Key)
		assert.Equal(t, "B", files[1].Key)
	})

	t.Run("existing key is replaced in place", func(t *testing.T) {
		c.AddFile(figma.FileMeta{Key: "A", Name: "Alpha v2"})
		files, err := c.Files(context.Background(), fetch)
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "Alpha v2", files[0].Name)
	})

	t.Run("new key is appended", func(t *testing.T) {
		c.AddFile(figma.FileMeta{Key: "C"})
		files, err := c.Files(context.Background(), fetch)
		require.NoError(t, err)
		require.Len(t, files, 3)
		assert.Equal(t, "C", files[2].Key)
	})
}

func TestCancelledCallerStopsWaiting(t *testing.T) {
	c := New()
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Nodes(ctx, "ABC", func(ctx context.Context) ([]figma.NodeSummary, error) {
		<-release
		return nil, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
