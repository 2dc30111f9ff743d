package design

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"figmcp/internal/figma"
)

// fakeAPI is an in-memory figma.API that counts calls.
type fakeAPI struct {
	mu sync.Mutex

	files    map[string]*figma.File
	fileErrs map[string]error
	listErr  error
	listing []figma.FileMeta
	images  map[string]string

	listCalls   int
	getCalls    map[string]int
	nodesCalls  int
	imagesCalls int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		files:    make(map[string]*figma.File),
		getCalls: make(map[string]int),
		images:   make(map[string]string),
	}
}

func (f *fakeAPI) addFile(key, name string, doc *figma.Node) {
	f.files[key] = &figma.File{Name: name, Document: doc}
}

func (f *fakeAPI) ListFiles(ctx context.Context) ([]figma.FileMeta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listing, nil
}

func (f *fakeAPI) GetFile(ctx context.Context, key string, opts ...figma.FileOption) (*figma.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls[key]++
	if err := f.fileErrs[key]; err != nil {
		return nil, err
	}
	file, ok := f.files[key]
	if !ok {
		return nil, &figma.StatusError{StatusCode: http.StatusNotFound, Path: "/files/" + key}
	}
	return file, nil
}

func (f *fakeAPI) GetNodes(ctx context.Context, key string, ids []string) (figma.NodesResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nodesCalls++
	file, ok := f.files[key]
	if !ok {
		return nil, &figma.StatusError{StatusCode: http.StatusNotFound, Path: "/files/" + key + "/nodes"}
	}

	nodes := map[string]any{}
	for _, id := range ids {
		n := findNode(file.Document, id)
		if n == nil {
			nodes[id] = nil
			continue
		}
		nodes[id] = map[string]any{
			"document": map[string]any{
				"id":          n.ID,
				"name":        n.Name,
				"type":        n.Type,
				"description": n.Description,
			},
		}
	}
	return figma.NodesResponse{"name": file.Name, "nodes": nodes}, nil
}

func (f *fakeAPI) GetImages(ctx context.Context, key string, ids []string, format figma.ImageFormat, scale int) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imagesCalls++
	if _, ok := f.files[key]; !ok {
		return nil, errors.New("GET /images: 404 Not Found")
	}
	out := map[string]string{}
	for _, id := range ids {
		out[id] = f.images[id]
	}
	return out, nil
}

func (f *fakeAPI) gets(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls[key]
}

func findNode(n *figma.Node, id string) *figma.Node {
	if n == nil {
		return nil
	}
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if got := findNode(c, id); got != nil {
			return got
		}
	}
	return nil
}

func node(id, name, typ string, children ...*figma.Node) *figma.Node {
	return &figma.Node{ID: id, Name: name, Type: typ, Children: children}
}

// sampleDocument is a small design system file:
//
//	Document
//	└── Page 1 (CANVAS)
//	    ├── Header (FRAME)
//	    │   ├── Title (TEXT)
//	    │   └── Logo (INSTANCE)
//	    ├── Button (COMPONENT_SET)
//	    │   ├── Primary (COMPONENT)
//	    │   └── Secondary (COMPONENT)
//	    └── Divider (RECTANGLE)
func sampleDocument() *figma.Node {
	return node("0:0", "Document", figma.TypeDocument,
		node("0:1", "Page 1", figma.TypeCanvas,
			node("1:1", "Header", figma.TypeFrame,
				node("1:2", "Title", "TEXT"),
				node("1:3", "Logo", figma.TypeInstance),
			),
			node("2:1", "Button", figma.TypeComponentSet,
				node("2:2", "Primary", figma.TypeComponent),
				node("2:3", "Secondary", figma.TypeComponent),
			),
			node("3:1", "Divider", "RECTANGLE"),
		),
	)
}
