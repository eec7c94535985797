// Package state holds the in-memory recipe cache and the shopping
// suggestion set for one session.
//
// A Store is created by the composition root and handed to every component
// that needs it; there is no package-level instance.
package state

import (
	"sort"
	"sync"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// Store owns the recipe cache and the suggestion set. All methods are safe
// for concurrent use.
type Store struct {
	mu          sync.RWMutex
	order       []string // recipe ids in insertion order
	recipes     map[string]*types.Recipe
	suggestions map[string]struct{}
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		recipes:     make(map[string]*types.Recipe),
		suggestions: make(map[string]struct{}),
	}
}

// SetRecipes replaces the entire cache with list. Prior contents are
// discarded, not merged. When list repeats an id the first occurrence wins.
func (s *Store) SetRecipes(list []types.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = make([]string, 0, len(list))
	s.recipes = make(map[string]*types.Recipe, len(list))
	for _, r := range list {
		if _, ok := s.recipes[r.ID]; ok {
			continue
		}
		rc := r
		s.recipes[r.ID] = &rc
		s.order = append(s.order, r.ID)
	}
}

// AddRecipe inserts a new recipe at the end of the cache.
// Returns ErrDuplicateID if the id is already present; the existing recipe
// is left untouched.
func (s *Store) AddRecipe(r types.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[r.ID]; ok {
		return types.ErrDuplicateID
	}
	rc := r
	s.recipes[r.ID] = &rc
	s.order = append(s.order, r.ID)
	return nil
}

// RecipeByID returns a copy of the recipe with the given id. The boolean is
// false when the id is not cached.
func (s *Store) RecipeByID(id string) (types.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		return types.Recipe{}, false
	}
	return *r, true
}

// Recipes returns the cached recipes in insertion order.
func (s *Store) Recipes() []types.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Recipe, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.recipes[id])
	}
	return out
}

// Len returns the number of cached recipes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// SetRecipeSection sets one section of a cached recipe.
// Returns ErrLookupFailure if the id is absent and ErrInvalidSection if the
// section is not one of the enumerated sections.
func (s *Store) SetRecipeSection(id string, section types.Section, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok {
		return types.ErrLookupFailure
	}
	return r.SetSection(section, value)
}

// AddSuggestions inserts each normalized item into the suggestion set.
// Empty items are ignored. Idempotent.
func (s *Store) AddSuggestions(items ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addSuggestionsLocked(items)
}

// SetSuggestions replaces the suggestion set with items.
func (s *Store) SetSuggestions(items []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.suggestions = make(map[string]struct{}, len(items))
	s.addSuggestionsLocked(items)
}

func (s *Store) addSuggestionsLocked(items []string) {
	for _, item := range items {
		n := types.Normalize(item)
		if n == "" {
			continue
		}
		s.suggestions[n] = struct{}{}
	}
}

// DeleteSuggestion removes item from the suggestion set, ignoring case, and
// returns the remaining set sorted ascending. Deleting an absent item is a
// no-op.
func (s *Store) DeleteSuggestion(item string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.suggestions, types.Normalize(item))
	return s.sortedSuggestionsLocked()
}

// Suggestions returns the suggestion set sorted ascending.
func (s *Store) Suggestions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedSuggestionsLocked()
}

// HasSuggestion reports whether item is in the suggestion set, ignoring case.
func (s *Store) HasSuggestion(item string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.suggestions[types.Normalize(item)]
	return ok
}

func (s *Store) sortedSuggestionsLocked() []string {
	out := make([]string, 0, len(s.suggestions))
	for item := range s.suggestions {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
