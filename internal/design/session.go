package design

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ohler55/ojg/jp"

	"figmcp/internal/cache"
	"figmcp/internal/errors"
	"figmcp/internal/figma"
	"figmcp/internal/slogutil"
)

// componentScanDepth is the GET /files depth that covers pages, their direct
// children and one more level for variants.
const componentScanDepth = 3

// Options configures a Session. Zero values fall back to the defaults; see
// withDefaults for how bounds are filled.
type Options struct {
	DefaultFileKey string
	Traversal      Bounds
	ScanLimit      int
	Search         Bounds
	Logger         *slog.Logger

	// Cache may be shared between sessions; a fresh one is created when nil.
	Cache *cache.Cache
}

// Session is the explicitly owned state of one server: API client, cache and
// active-file pointer. It is safe for concurrent use.
type Session struct {
	api       figma.API
	cache     *cache.Cache
	resolver  *Resolver
	traversal Bounds
	scanLimit int
	search    Bounds
	logger    *slog.Logger
}

// NewSession creates a session on top of api.
func NewSession(api figma.API, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	c := opts.Cache
	if c == nil {
		c = cache.New()
	}

	s := &Session{
		api:       api,
		cache:     c,
		traversal: withDefaults(opts.Traversal, DefaultTraversalBounds),
		scanLimit: opts.ScanLimit,
		search:    withDefaults(opts.Search, DefaultSearchBounds),
		logger:    logger,
	}
	if s.scanLimit <= 0 {
		s.scanLimit = DefaultScanLimit
	}
	s.resolver = NewResolver(api, c, opts.DefaultFileKey, logger)
	return s
}

// withDefaults fills unset bounds from d. A zero Bounds is unset as a whole;
// otherwise MaxNodes <= 0 and MaxDepth < 0 are unset, and MaxDepth 0 means
// the root alone.
func withDefaults(b, d Bounds) Bounds {
	if b == (Bounds{}) {
		return d
	}
	if b.MaxNodes <= 0 {
		b.MaxNodes = d.MaxNodes
	}
	if b.MaxDepth < 0 {
		b.MaxDepth = d.MaxDepth
	}
	return b
}

// Active returns the raw active-file pointer.
func (s *Session) Active() string {
	return s.resolver.Active()
}

// ActiveFile resolves the active file. ok is false when no file is known.
func (s *Session) ActiveFile(ctx context.Context) (figma.FileMeta, bool, error) {
	f, _, ok, err := s.resolver.Resolve(ctx)
	return f, ok, err
}

// SetActive verifies key remotely and makes it the active file.
func (s *Session) SetActive(ctx context.Context, key string) (figma.FileMeta, error) {
	return s.resolver.SetActive(ctx, key)
}

// Files lists the known files.
func (s *Session) Files(ctx context.Context) ([]figma.FileMeta, error) {
	return s.resolver.Files(ctx)
}

// CacheStats reports cache counters.
func (s *Session) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// FileNodes returns the bounded traversal of a file. The result is cached per
// file for the lifetime of the session.
func (s *Session) FileNodes(ctx context.Context, fileKey string) ([]figma.NodeSummary, error) {
	if fileKey == "" {
		return nil, errors.NewInvalidParameterError("fileKey", "must not be empty")
	}

	return s.cache.Nodes(ctx, fileKey, func(ctx context.Context) ([]figma.NodeSummary, error) {
		f, err := s.api.GetFile(ctx, fileKey)
		if err != nil {
			return nil, fileError(ctx, "get file", fileKey, err)
		}
		nodes := Traverse(f.Document, FullTraversalTypes, s.traversal)
		s.logger.Debug("Traversed file",
			"fileKey", fileKey,
			"nodes", len(nodes),
			"maxNodes", s.traversal.MaxNodes,
			"maxDepth", s.traversal.MaxDepth,
		)
		return nodes, nil
	})
}

// ComponentList is the result of ListComponents.
type ComponentList struct {
	FileKey    string              `json:"fileKey"`
	Components []figma.NodeSummary `json:"components"`
}

// ListComponents runs the shallow scan over fileKey, or over the active file
// when fileKey is empty. limit <= 0 uses the configured scan limit.
func (s *Session) ListComponents(ctx context.Context, fileKey string, limit int) (ComponentList, error) {
	key, err := s.fileKeyOrActive(ctx, fileKey)
	if err != nil {
		return ComponentList{}, err
	}
	if limit <= 0 {
		limit = s.scanLimit
	}

	f, err := s.api.GetFile(ctx, key, figma.WithDepth(componentScanDepth))
	if err != nil {
		return ComponentList{}, fileError(ctx, "get file", key, err)
	}
	return ComponentList{
		FileKey:    key,
		Components: ShallowScan(f.Document, ShallowScanTypes, limit),
	}, nil
}

// SearchResult is the result of FindByName.
type SearchResult struct {
	FileKey string              `json:"fileKey"`
	Query   string              `json:"query"`
	Matches []figma.NodeSummary `json:"matches"`
}

// FindByName searches fileKey, or the active file when fileKey is empty.
func (s *Session) FindByName(ctx context.Context, query, fileKey string) (SearchResult, error) {
	key, err := s.fileKeyOrActive(ctx, fileKey)
	if err != nil {
		return SearchResult{}, err
	}

	f, err := s.api.GetFile(ctx, key)
	if err != nil {
		return SearchResult{}, fileError(ctx, "get file", key, err)
	}
	return SearchResult{
		FileKey: key,
		Query:   query,
		Matches: FindByName(f.Document, query, s.search),
	}, nil
}

// ResolveNode turns any accepted address shape into a NodeRef. A bare node id
// is resolved against the active file.
func (s *Session) ResolveNode(ctx context.Context, address string) (NodeRef, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return NodeRef{}, err
	}

	var activeKey string
	if _, bare := addr.(BareID); bare {
		f, _, ok, err := s.resolver.Resolve(ctx)
		if err != nil {
			return NodeRef{}, err
		}
		if ok {
			activeKey = f.Key
		}
	}
	return ResolveAddress(addr, activeKey)
}

// ResolveFile turns a file address into a key. An empty address means the
// active file.
func (s *Session) ResolveFile(ctx context.Context, address string) (string, error) {
	key, err := ParseFileAddress(address)
	if err != nil {
		return "", err
	}
	return s.fileKeyOrActive(ctx, key)
}

// NodeDetail returns the raw GET /files/:key/nodes payload for ref. It is
// cached per node; a payload without the node's document is reported as not
// found and not cached.
func (s *Session) NodeDetail(ctx context.Context, ref NodeRef) (figma.NodesResponse, error) {
	return s.cache.NodeDetail(ctx, ref.FileKey, ref.NodeID, func(ctx context.Context) (figma.NodesResponse, error) {
		resp, err := s.api.GetNodes(ctx, ref.FileKey, []string{ref.NodeID})
		if err != nil {
			return nil, fileError(ctx, "get nodes", ref.FileKey, err)
		}
		if _, ok := documentOf(resp, ref.NodeID); !ok {
			return nil, errors.NewNodeNotFoundError(ref.FileKey, ref.NodeID, nil)
		}
		return resp, nil
	})
}

// NodeSummary resolves ref to its summary form through the detail cache.
func (s *Session) NodeSummary(ctx context.Context, ref NodeRef) (figma.NodeSummary, error) {
	resp, err := s.NodeDetail(ctx, ref)
	if err != nil {
		return figma.NodeSummary{}, err
	}
	doc, ok := documentOf(resp, ref.NodeID)
	if !ok {
		return figma.NodeSummary{}, errors.NewNodeNotFoundError(ref.FileKey, ref.NodeID, nil)
	}

	n := &figma.Node{
		ID:          stringField(doc, "id"),
		Name:        stringField(doc, "name"),
		Type:        stringField(doc, "type"),
		Description: stringField(doc, "description"),
	}
	if n.ID == "" {
		n.ID = ref.NodeID
	}
	return Summarize(n), nil
}

// ExportImage renders ref and returns the image URL.
func (s *Session) ExportImage(ctx context.Context, ref NodeRef, format figma.ImageFormat, scale int) (string, error) {
	if scale < figma.MinImageScale || scale > figma.MaxImageScale {
		return "", errors.NewInvalidParameterError("scale",
			fmt.Sprintf("must be between %d and %d", figma.MinImageScale, figma.MaxImageScale))
	}

	images, err := s.api.GetImages(ctx, ref.FileKey, []string{ref.NodeID}, format, scale)
	if err != nil {
		return "", fileError(ctx, "export image", ref.FileKey, err)
	}
	url := images[ref.NodeID]
	if url == "" {
		return "", errors.NewNodeNotFoundError(ref.FileKey, ref.NodeID, nil).
			WithHints("the node exists but could not be rendered, or the id is wrong")
	}

	s.logger.Info("Exported image",
		"fileKey", ref.FileKey,
		"nodeId", ref.NodeID,
		"format", string(format),
		"scale", scale,
	)
	return url, nil
}

func (s *Session) fileKeyOrActive(ctx context.Context, fileKey string) (string, error) {
	if fileKey != "" {
		return fileKey, nil
	}
	f, _, ok, err := s.resolver.Resolve(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New(errors.NoActiveFile, "no active file", nil).
			WithHints("pass fileKey explicitly", "or call set_active_file first")
	}
	return f.Key, nil
}

// documentOf extracts nodes.<id>.document from a nodes payload.
func documentOf(resp figma.NodesResponse, nodeID string) (map[string]any, bool) {
	got := jp.C("nodes").C(nodeID).C("document").Get(map[string]any(resp))
	if len(got) == 0 {
		return nil, false
	}
	doc, ok := got[0].(map[string]any)
	return doc, ok
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
