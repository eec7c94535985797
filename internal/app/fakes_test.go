package app

import (
	"context"
	"sync"

	"github.com/mesh-intelligence/recipebox/internal/remote"
	"github.com/mesh-intelligence/recipebox/internal/tabs"
	"github.com/mesh-intelligence/recipebox/pkg/types"
)

type fakeReader struct {
	catalog   *remote.Catalog
	fetchErr  error
	search    []types.Recipe
	searchErr error
	queries   []string
	newID     string
	createErr error
}

func (f *fakeReader) FetchRecipes(context.Context) (*remote.Catalog, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if f.catalog == nil {
		return &remote.Catalog{Recipes: []types.Recipe{}}, nil
	}
	return f.catalog, nil
}

func (f *fakeReader) SearchRecipes(_ context.Context, q string) ([]types.Recipe, error) {
	f.queries = append(f.queries, q)
	return f.search, f.searchErr
}

func (f *fakeReader) CreateRecipe(context.Context) (string, error) {
	return f.newID, f.createErr
}

type fakePusher struct {
	mu  sync.Mutex
	ops []remote.Operation
}

func (p *fakePusher) Push(op remote.Operation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ops = append(p.ops, op)
}

func (p *fakePusher) paths() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.ops))
	for _, op := range p.ops {
		out = append(out, op.Path)
	}
	return out
}

func (p *fakePusher) last() remote.Operation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ops[len(p.ops)-1]
}

func (p *fakePusher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ops = nil
}

type recorder struct {
	BaseListener
	ready       [][]types.Recipe
	fetchFailed []error
	lists       [][]types.ShoppingItem
	suggestions [][]string
	tabStates   []tabs.Snapshot
	notices     []string
}

func (r *recorder) RecipesReady(recipes []types.Recipe)            { r.ready = append(r.ready, recipes) }
func (r *recorder) RecipesFetchFailed(err error)                   { r.fetchFailed = append(r.fetchFailed, err) }
func (r *recorder) ShoppingListChanged(items []types.ShoppingItem) { r.lists = append(r.lists, items) }
func (r *recorder) SuggestionsChanged(visible []string)            { r.suggestions = append(r.suggestions, visible) }
func (r *recorder) TabStateChanged(snap tabs.Snapshot)             { r.tabStates = append(r.tabStates, snap) }
func (r *recorder) Notice(msg string)                              { r.notices = append(r.notices, msg) }
