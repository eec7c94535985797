// Package app is the composition root of the recipe client. It receives
// user intents, applies them to the in-memory state, mirrors mutations to
// the backend and reports the results to a Listener.
package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/recipebox/internal/pipeline"
	"github.com/mesh-intelligence/recipebox/internal/remote"
	"github.com/mesh-intelligence/recipebox/internal/shopping"
	"github.com/mesh-intelligence/recipebox/internal/state"
	"github.com/mesh-intelligence/recipebox/internal/suggest"
	"github.com/mesh-intelligence/recipebox/internal/tabs"
	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// NoticeAlreadyInList is reported when a manual add names an item that is
// already listed.
const NoticeAlreadyInList = "Already in list"

// Reader is the blocking side of the backend.
type Reader interface {
	FetchRecipes(ctx context.Context) (*remote.Catalog, error)
	SearchRecipes(ctx context.Context, q string) ([]types.Recipe, error)
	CreateRecipe(ctx context.Context) (string, error)
}

// Pusher mirrors a mutation to the backend without waiting for it.
type Pusher interface {
	Push(op remote.Operation)
}

// Listener receives the events the App emits. Calls are made after the
// state change they describe, never while App locks are held.
type Listener interface {
	RecipesReady(recipes []types.Recipe)
	RecipesFetchFailed(err error)
	ShoppingListChanged(items []types.ShoppingItem)
	SuggestionsChanged(visible []string)
	TabStateChanged(snap tabs.Snapshot)
	Notice(msg string)
}

// BaseListener ignores every event. Embed it to handle only some.
type BaseListener struct{}

func (BaseListener) RecipesReady([]types.Recipe)              {}
func (BaseListener) RecipesFetchFailed(error)                 {}
func (BaseListener) ShoppingListChanged([]types.ShoppingItem) {}
func (BaseListener) SuggestionsChanged([]string)              {}
func (BaseListener) TabStateChanged(tabs.Snapshot)            {}
func (BaseListener) Notice(string)                            {}

// Option configures the App.
type Option func(*App)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(a *App) {
		if log != nil {
			a.log = log
		}
	}
}

// WithListener sets the event listener. The default is BaseListener.
func WithListener(l Listener) Option {
	return func(a *App) {
		if l != nil {
			a.listener = l
		}
	}
}

// App holds the session state of one client.
type App struct {
	cfg      types.Config
	reader   Reader
	pusher   Pusher
	listener Listener
	log      *zap.Logger

	store    *state.Store
	tabs     *tabs.Workspace
	pipeline *pipeline.Pipeline

	// mu guards the shopping view below.
	mu          sync.Mutex
	items       []types.ShoppingItem
	listText    string
	selected    string
	sortMode    bool
	suggestMode bool
}

// New creates an App reading through reader and pushing through pusher.
func New(cfg types.Config, reader Reader, pusher Pusher, opts ...Option) *App {
	a := &App{
		cfg:      cfg,
		reader:   reader,
		pusher:   pusher,
		listener: BaseListener{},
		log:      zap.NewNop(),
		store:    state.New(),
		tabs:     tabs.New(),
		pipeline: pipeline.New(cfg.SkipWords, cfg.Transforms),
		items:    []types.ShoppingItem{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Store exposes the recipe cache and suggestion set.
func (a *App) Store() *state.Store {
	return a.store
}

// Tabs exposes the tab workspace.
func (a *App) Tabs() *tabs.Workspace {
	return a.tabs
}

// Init loads the collection and the stored shopping state. On failure
// RecipesFetchFailed is emitted and the error returned; nothing is cached.
func (a *App) Init(ctx context.Context) error {
	cat, err := a.reader.FetchRecipes(ctx)
	if err != nil {
		a.log.Error("fetch recipes", zap.Error(err))
		a.listener.RecipesFetchFailed(err)
		return err
	}
	a.store.SetRecipes(cat.Recipes)
	a.listener.RecipesReady(a.store.Recipes())

	a.mu.Lock()
	a.items = shopping.AddItems(nil, shopping.ParseList(cat.ShoppingList), shopping.Tail)
	a.selected = ""
	items := cloneItems(a.items)
	a.mu.Unlock()

	a.store.SetSuggestions(shopping.ParseList(cat.Suggestions))
	a.store.AddSuggestions(shopping.Texts(items)...)

	a.listener.ShoppingListChanged(items)
	a.emitSuggestions()
	return nil
}

// VisibleSuggestions returns the recall list: suggestions not already in
// the shopping list, sorted.
func (a *App) VisibleSuggestions() []string {
	a.mu.Lock()
	current := shopping.Texts(a.items)
	a.mu.Unlock()
	return suggest.Visible(a.store.Suggestions(), current, a.cfg.SuggestionSeed())
}

func (a *App) emitSuggestions() {
	a.mu.Lock()
	on := a.suggestMode
	a.mu.Unlock()
	if on {
		a.listener.SuggestionsChanged(a.VisibleSuggestions())
	}
}

func (a *App) emitTabs() {
	a.listener.TabStateChanged(a.tabs.Snapshot())
}

func cloneItems(items []types.ShoppingItem) []types.ShoppingItem {
	return append([]types.ShoppingItem{}, items...)
}
