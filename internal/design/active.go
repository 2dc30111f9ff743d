package design

import (
	"context"
	stderrors "errors"
	"log/slog"
	"sync"

	"figmcp/internal/cache"
	"figmcp/internal/errors"
	"figmcp/internal/figma"
)

// ResolutionSource indicates how the active file was determined.
type ResolutionSource string

const (
	// ResolvedFromPointer indicates the pointer matched a known file.
	ResolvedFromPointer ResolutionSource = "pointer"

	// ResolvedFromFirst indicates the pointer was empty or unknown and the
	// first listed file was used.
	ResolvedFromFirst ResolutionSource = "first"

	// ResolvedNone indicates the file list is empty.
	ResolvedNone ResolutionSource = ""
)

// errNoFiles marks a listing where every fallback failed. It is kept out of
// the cache so the next call retries.
var errNoFiles = stderrors.New("no files reachable")

// Resolver tracks the active file.
type Resolver struct {
	api        figma.API
	cache      *cache.Cache
	defaultKey string
	logger     *slog.Logger

	mu     sync.RWMutex
	active string
}

// NewResolver creates a resolver whose pointer starts at defaultKey.
func NewResolver(api figma.API, c *cache.Cache, defaultKey string, logger *slog.Logger) *Resolver {
	return &Resolver{
		api:        api,
		cache:      c,
		defaultKey: defaultKey,
		logger:     logger,
		active:     defaultKey,
	}
}

// Active returns the raw pointer, which may name a file that is not listed.
func (r *Resolver) Active() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Files returns the known files. A listing that failed every fallback yields
// an empty list and no error; the only errors are context errors.
func (r *Resolver) Files(ctx context.Context) ([]figma.FileMeta, error) {
	files, err := r.cache.Files(ctx, r.fetchFiles)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return []figma.FileMeta{}, nil
	}
	return files, nil
}

// Resolve returns the active file: the pointed-to file when it is listed,
// otherwise the first listed file. ok is false only when no file is known.
func (r *Resolver) Resolve(ctx context.Context) (figma.FileMeta, ResolutionSource, bool, error) {
	files, err := r.Files(ctx)
	if err != nil {
		return figma.FileMeta{}, ResolvedNone, false, err
	}
	if len(files) == 0 {
		return figma.FileMeta{}, ResolvedNone, false, nil
	}

	active := r.Active()
	for _, f := range files {
		if f.Key == active {
			return f, ResolvedFromPointer, true, nil
		}
	}
	return files[0], ResolvedFromFirst, true, nil
}

// SetActive checks that key exists remotely and only then moves the pointer.
// On failure the previous pointer is kept.
func (r *Resolver) SetActive(ctx context.Context, key string) (figma.FileMeta, error) {
	if key == "" {
		return figma.FileMeta{}, errors.NewInvalidParameterError("fileKey", "must not be empty")
	}

	f, err := r.api.GetFile(ctx, key, figma.WithDepth(1))
	if err != nil {
		r.logger.Warn("Set active file rejected",
			"fileKey", key,
			"error", err.Error(),
		)
		return figma.FileMeta{}, fileError(ctx, "get file", key, err)
	}

	meta := f.Meta(key)
	r.cache.AddFile(meta)

	r.mu.Lock()
	prev := r.active
	r.active = key
	r.mu.Unlock()

	r.logger.Info("Active file changed",
		"from", prev,
		"to", key,
		"name", meta.Name,
	)
	return meta, nil
}

// fetchFiles is the cache miss path of the file list. When the listing call
// fails it tries the pointed-to key, then the configured default, and
// synthesises a one-element list from the first one that can be fetched.
func (r *Resolver) fetchFiles(ctx context.Context) ([]figma.FileMeta, error) {
	files, err := r.api.ListFiles(ctx)
	if err == nil {
		return files, nil
	}
	r.logger.Warn("File listing failed, falling back to direct access",
		"error", err.Error(),
	)

	for _, key := range r.fallbackKeys() {
		f, ferr := r.api.GetFile(ctx, key, figma.WithDepth(1))
		if ferr != nil {
			r.logger.Warn("Direct file access failed",
				"fileKey", key,
				"error", ferr.Error(),
			)
			continue
		}
		return []figma.FileMeta{f.Meta(key)}, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return nil, errNoFiles
}

func (r *Resolver) fallbackKeys() []string {
	var keys []string
	if active := r.Active(); active != "" {
		keys = append(keys, active)
	}
	if r.defaultKey != "" && (len(keys) == 0 || keys[0] != r.defaultKey) {
		keys = append(keys, r.defaultKey)
	}
	return keys
}

// forbiddenHints accompany a 403: the token is wrong or cannot see the file.
var forbiddenHints = []string{
	"check that FIGMA_API_KEY is a valid personal access token",
	"check that the token's account has access to the file",
}

// fileError maps a failed file fetch to a coded error. A cancelled caller
// gets its context error back unchanged.
func fileError(ctx context.Context, op, key string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if figma.IsNotFound(err) {
		return errors.NewFileNotFoundError(key, err)
	}
	remote := errors.NewRemoteError(op, err).WithDetails(map[string]string{"fileKey": key})
	if figma.IsForbidden(err) {
		remote = remote.WithHints(forbiddenHints...)
	}
	return remote
}
