// Package cache memoizes Figma API results for the lifetime of the process.
//
// Three independent mappings are kept: one shared file list, per-file node
// summary lists and per-node detail blobs. Entries are never invalidated,
// refreshed or evicted. Failed fetches are not stored, so the next identical
// call goes back to the network.
package cache

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"figmcp/internal/figma"
)

// FilesFetcher loads the file list on a miss.
type FilesFetcher func(ctx context.Context) ([]figma.FileMeta, error)

// NodesFetcher loads a file's node summaries on a miss.
type NodesFetcher func(ctx context.Context) ([]figma.NodeSummary, error)

// DetailFetcher loads one node's detail blob on a miss.
type DetailFetcher func(ctx context.Context) (figma.NodesResponse, error)

// Stats is a point-in-time snapshot of cache usage.
type Stats struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	FilesLoaded bool  `json:"filesLoaded"`
	Files       int   `json:"files"`
	NodeLists   int   `json:"nodeLists"`
	Details     int   `json:"details"`
}

// Cache is safe for concurrent use. Concurrent misses on the same key share
// one fetch.
type Cache struct {
	mu          sync.RWMutex
	files       []figma.FileMeta
	filesLoaded bool
	nodes       map[string][]figma.NodeSummary
	details     map[string]figma.NodesResponse

	group  singleflight.Group
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		nodes:   make(map[string][]figma.NodeSummary),
		details: make(map[string]figma.NodesResponse),
	}
}

// DetailKey is the composite key of a node detail entry.
func DetailKey(fileKey, nodeID string) string {
	return fileKey + ":" + nodeID
}

// Files returns the shared file list, calling fetch once when it has not been
// loaded yet. Files registered through AddFile before the first load are kept
// after the fetched ones.
func (c *Cache) Files(ctx context.Context, fetch FilesFetcher) ([]figma.FileMeta, error) {
	c.mu.RLock()
	if c.filesLoaded {
		files := slices.Clone(c.files)
		c.mu.RUnlock()
		c.hits.Add(1)
		return files, nil
	}
	c.mu.RUnlock()
	c.misses.Add(1)

	v, err := c.do(ctx, "files", func(ctx context.Context) (any, error) {
		c.mu.RLock()
		if c.filesLoaded {
			files := slices.Clone(c.files)
			c.mu.RUnlock()
			return files, nil
		}
		c.mu.RUnlock()

		fetched, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.filesLoaded {
			merged := slices.Clone(fetched)
			for _, f := range c.files {
				if indexOf(merged, f.Key) < 0 {
					merged = append(merged, f)
				}
			}
			c.files = merged
			c.filesLoaded = true
		}
		return slices.Clone(c.files), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]figma.FileMeta), nil
}

// AddFile inserts f into the shared list, replacing an entry with the same key.
func (c *Cache) AddFile(f figma.FileMeta) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := indexOf(c.files, f.Key); i >= 0 {
		c.files[i] = f
		return
	}
	c.files = append(c.files, f)
}

// Nodes returns the node summary list of fileKey. The list is stored as a
// whole once fetch succeeds.
func (c *Cache) Nodes(ctx context.Context, fileKey string, fetch NodesFetcher) ([]figma.NodeSummary, error) {
	c.mu.RLock()
	list, ok := c.nodes[fileKey]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return slices.Clone(list), nil
	}
	c.misses.Add(1)

	v, err := c.do(ctx, "nodes\x00"+fileKey, func(ctx context.Context) (any, error) {
		c.mu.RLock()
		list, ok := c.nodes[fileKey]
		c.mu.RUnlock()
		if ok {
			return list, nil
		}

		fetched, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if fetched == nil {
			fetched = []figma.NodeSummary{}
		}

		c.mu.Lock()
		c.nodes[fileKey] = fetched
		c.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]figma.NodeSummary)), nil
}

// NodeDetail returns the raw detail blob of one node. The blob is shared; callers
// must not modify it.
func (c *Cache) NodeDetail(ctx context.Context, fileKey, nodeID string, fetch DetailFetcher) (figma.NodesResponse, error) {
	key := DetailKey(fileKey, nodeID)

	c.mu.RLock()
	detail, ok := c.details[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return detail, nil
	}
	c.misses.Add(1)

	v, err := c.do(ctx, "detail\x00"+key, func(ctx context.Context) (any, error) {
		c.mu.RLock()
		detail, ok := c.details[key]
		c.mu.RUnlock()
		if ok {
			return detail, nil
		}

		fetched, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.details[key] = fetched
		c.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(figma.NodesResponse), nil
}

// Stats returns current counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		FilesLoaded: c.filesLoaded,
		Files:       len(c.files),
		NodeLists:   len(c.nodes),
		Details:     len(c.details),
	}
}

// do runs fn through the singleflight group. The shared fetch runs detached
// from any single caller's cancellation; each caller stops waiting when its
// own ctx is done.
func (c *Cache) do(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	ch := c.group.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func indexOf(files []figma.FileMeta, key string) int {
	return slices.IndexFunc(files, func(f figma.FileMeta) bool { return f.Key == key })
}
