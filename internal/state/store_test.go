package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

func sampleRecipes() []types.Recipe {
	return []types.Recipe{
		{ID: "r1", Title: "Pancakes", Ingredients: "2 cups flour\n1 egg"},
		{ID: "r2", Title: "Omelette", Ingredients: "3 eggs\nsalt"},
		{ID: "r3", Title: "Toast"},
	}
}

func TestSetRecipesReplacesCache(t *testing.T) {
	s := New()
	s.SetRecipes(sampleRecipes())
	require.Equal(t, 3, s.Len())

	s.SetRecipes([]types.Recipe{{ID: "r9", Title: "Soup"}})
	assert.Equal(t, 1, s.Len())
	_, ok := s.RecipeByID("r1")
	assert.False(t, ok, "old entries must not survive a replace")

	got := s.Recipes()
	require.Len(t, got, 1)
	assert.Equal(t, "Soup", got[0].Title)
}

func TestSetRecipesKeepsFirstOfRepeatedID(t *testing.T) {
	s := New()
	s.SetRecipes([]types.Recipe{{ID: "a", Title: "first"}, {ID: "a", Title: "second"}})
	r, ok := s.RecipeByID("a")
	require.True(t, ok)
	assert.Equal(t, "first", r.Title)
	assert.Equal(t, 1, s.Len())
}

func TestRecipesInsertionOrder(t *testing.T) {
	s := New()
	s.SetRecipes(sampleRecipes())
	require.NoError(t, s.AddRecipe(types.NewRecipe("r0")))

	var ids []string
	for _, r := range s.Recipes() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"r1", "r2", "r3", "r0"}, ids)
}

func TestAddRecipeDuplicateID(t *testing.T) {
	s := New()
	s.SetRecipes(sampleRecipes())

	err := s.AddRecipe(types.Recipe{ID: "r1", Title: "Impostor"})
	assert.ErrorIs(t, err, types.ErrDuplicateID)

	r, ok := s.RecipeByID("r1")
	require.True(t, ok)
	assert.Equal(t, "Pancakes", r.Title, "duplicate add must not overwrite")
}

func TestRecipeByIDReturnsCopy(t *testing.T) {
	s := New()
	s.SetRecipes(sampleRecipes())

	r, ok := s.RecipeByID("r1")
	require.True(t, ok)
	r.Title = "mutated"

	again, _ := s.RecipeByID("r1")
	assert.Equal(t, "Pancakes", again.Title)

	_, ok = s.RecipeByID("missing")
	assert.False(t, ok)
}

func TestSetRecipeSection(t *testing.T) {
	s := New()
	s.SetRecipes(sampleRecipes())

	tests := []struct {
		name    string
		id      string
		section types.Section
		value   string
		wantErr error
	}{
		{"title", "r1", types.SectionTitle, "Fluffy Pancakes", nil},
		{"related", "r2", types.SectionRelated, "r1, r3", nil},
		{"missing id", "nope", types.SectionTitle, "x", types.ErrLookupFailure},
		{"invalid section", "r1", types.Section("servings"), "4", types.ErrInvalidSection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.SetRecipeSection(tt.id, tt.section, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			r, _ := s.RecipeByID(tt.id)
			got, err := r.Section(tt.section)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestSuggestions(t *testing.T) {
	s := New()
	s.AddSuggestions("Carrots", " apples ", "", "apples")
	assert.Equal(t, []string{"apples", "carrots"}, s.Suggestions())
	assert.True(t, s.HasSuggestion("APPLES"))

	s.AddSuggestions("apples")
	assert.Len(t, s.Suggestions(), 2, "adding an existing suggestion is a no-op")

	s.SetSuggestions([]string{"milk", ""})
	assert.Equal(t, []string{"milk"}, s.Suggestions())
}

func TestDeleteSuggestion(t *testing.T) {
	s := New()
	s.AddSuggestions("apples", "carrots")

	remaining := s.DeleteSuggestion("Carrots")
	assert.Equal(t, []string{"apples"}, remaining)

	remaining = s.DeleteSuggestion("berries")
	assert.Equal(t, []string{"apples"}, remaining, "absent item is a no-op")
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := New()
	s.SetRecipes(sampleRecipes())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.SetRecipeSection("r1", types.SectionNotes, "note")
			s.AddSuggestions("milk")
		}()
		go func() {
			defer wg.Done()
			_ = s.Recipes()
			_ = s.Suggestions()
		}()
	}
	wg.Wait()

	r, _ := s.RecipeByID("r1")
	assert.Equal(t, "note", r.Notes)
}
