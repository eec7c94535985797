// Package remote talks to the recipe backend: reads that the caller waits
// for, and fire-and-forget pushes that mirror local mutations.
package remote

import (
	"strings"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// Backend paths.
const (
	PathRecipes                   = "recipes"
	PathRecipeCreate              = "recipe-create"
	PathRecipeUpdate              = "recipe-update"
	PathRecipeAccess              = "recipe-access"
	PathShoppingListUpdate        = "shopping-list-update"
	PathShoppingSuggestionsUpdate = "shopping-suggestions-update"
)

// Envelope is a decoded backend response. Only the fields relevant to the
// request are set. A non-empty Error marks the request failed whatever the
// HTTP status was.
type Envelope struct {
	Recipes             []types.Recipe `json:"recipes,omitempty"`
	ID                  string         `json:"id,omitempty"`
	Token               string         `json:"token,omitempty"`
	Message             string         `json:"message,omitempty"`
	Error               string         `json:"error,omitempty"`
	ShoppingList        string         `json:"shoppingList,omitempty"`
	ShoppingSuggestions string         `json:"shoppingSuggestions,omitempty"`
}

// Operation is the body of a write request.
type Operation struct {
	Path    string  `json:"path"`
	ID      string  `json:"id,omitempty"`
	Value   *string `json:"value,omitempty"`
	Section string  `json:"section,omitempty"`
}

// RecipeUpdate mirrors an edit of one recipe section.
func RecipeUpdate(id string, section types.Section, value string) Operation {
	return Operation{Path: PathRecipeUpdate, ID: id, Value: &value, Section: string(section)}
}

// RecipeAccess records that a recipe was viewed.
func RecipeAccess(id string) Operation {
	return Operation{Path: PathRecipeAccess, ID: id}
}

// ShoppingListUpdate replaces the stored shopping list with texts,
// serialized comma-joined. Texts must not contain commas; items are cut
// before the first comma when they enter the list.
func ShoppingListUpdate(texts []string) Operation {
	v := strings.Join(texts, ",")
	return Operation{Path: PathShoppingListUpdate, Value: &v}
}

// SuggestionsUpdate replaces the stored suggestion set with texts,
// serialized comma-joined.
func SuggestionsUpdate(texts []string) Operation {
	v := strings.Join(texts, ",")
	return Operation{Path: PathShoppingSuggestionsUpdate, Value: &v}
}

// ValueString returns the operation value, or "" when it has none.
func (o Operation) ValueString() string {
	if o.Value == nil {
		return ""
	}
	return *o.Value
}
