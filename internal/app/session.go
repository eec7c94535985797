package app

import (
	"github.com/mesh-intelligence/recipebox/internal/tabs"
)

// Session is the part of the client state kept across runs: the tab
// workspace, the view modes and the accumulated shopping text. Recipes
// and the shopping list are reloaded from the backend.
type Session struct {
	Tabs         tabs.Snapshot `json:"tabs"`
	SortMode     bool          `json:"sort_mode"`
	SuggestMode  bool          `json:"suggest_mode"`
	ShoppingText string        `json:"shopping_text,omitempty"`
}

// Snapshot captures the session.
func (a *App) Snapshot() Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Session{
		Tabs:         a.tabs.Snapshot(),
		SortMode:     a.sortMode,
		SuggestMode:  a.suggestMode,
		ShoppingText: a.listText,
	}
}

// Restore applies a saved session. Tabs whose recipe is no longer cached
// are dropped. The selection is not restored.
func (a *App) Restore(s Session) {
	a.tabs.Restore(s.Tabs)
	a.tabs.Retain(func(id string) bool {
		_, ok := a.store.RecipeByID(id)
		return ok
	})

	a.mu.Lock()
	a.sortMode = s.SortMode
	a.suggestMode = s.SuggestMode
	a.listText = s.ShoppingText
	a.clearSelectionLocked()
	a.mu.Unlock()

	a.emitTabs()
}
