package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/mesh-intelligence/recipebox/internal/remote"
	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// fakeBackend is an in-memory recipe backend speaking the wire protocol.
type fakeBackend struct {
	mu          sync.Mutex
	recipes     []types.Recipe
	list        string
	suggestions string
	nextID      int
	posts       []remote.Operation
	auths       []string
	pages       map[string]string
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{
		recipes: []types.Recipe{
			{ID: "r1", Title: "Soup", Ingredients: "1 cup sugar\nsalt\n2 eggs, beaten", Related: "r2"},
			{ID: "r2", Title: "Bread", Ingredients: "500g flour\nwater"},
		},
		pages: map[string]string{},
	}
	ts := httptest.NewServer(fb)
	t.Cleanup(ts.Close)
	return fb, ts
}

func (fb *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	if page, ok := fb.pages[r.URL.Path]; ok {
		_, _ = w.Write([]byte(page))
		return
	}
	fb.auths = append(fb.auths, r.Header.Get("Authorization"))

	var env remote.Envelope
	if r.Method == http.MethodPost {
		var op remote.Operation
		if err := json.NewDecoder(r.Body).Decode(&op); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fb.posts = append(fb.posts, op)
		env = fb.applyLocked(op)
	} else {
		env = fb.readLocked(r.URL.Query().Get("path"), r.URL.Query().Get("q"))
	}
	_ = json.NewEncoder(w).Encode(env)
}

func (fb *fakeBackend) readLocked(path, q string) remote.Envelope {
	switch path {
	case remote.PathRecipes:
		out := []types.Recipe{}
		for _, rec := range fb.recipes {
			if q == "" || strings.Contains(strings.ToLower(rec.Title), q) {
				out = append(out, rec)
			}
		}
		return remote.Envelope{Recipes: out, Token: "tok", ShoppingList: fb.list, ShoppingSuggestions: fb.suggestions}
	case remote.PathRecipeCreate:
		fb.nextID++
		id := "new-" + strconv.Itoa(fb.nextID)
		fb.recipes = append(fb.recipes, types.Recipe{ID: id, Title: types.DefaultRecipeTitle})
		return remote.Envelope{ID: id}
	default:
		return remote.Envelope{Error: "unknown path " + path}
	}
}

func (fb *fakeBackend) applyLocked(op remote.Operation) remote.Envelope {
	switch op.Path {
	case remote.PathRecipeUpdate:
		for i := range fb.recipes {
			if fb.recipes[i].ID == op.ID {
				if err := fb.recipes[i].SetSection(types.Section(op.Section), op.ValueString()); err != nil {
					return remote.Envelope{Error: err.Error()}
				}
				return remote.Envelope{Message: "updated"}
			}
		}
		return remote.Envelope{Error: "no recipe " + op.ID}
	case remote.PathRecipeAccess:
		return remote.Envelope{Message: "ok"}
	case remote.PathShoppingListUpdate:
		fb.list = op.ValueString()
		return remote.Envelope{Message: "ok"}
	case remote.PathShoppingSuggestionsUpdate:
		fb.suggestions = op.ValueString()
		return remote.Envelope{Message: "ok"}
	}
	return remote.Envelope{Error: "unknown path " + op.Path}
}

func (fb *fakeBackend) recipe(id string) types.Recipe {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	for _, r := range fb.recipes {
		if r.ID == id {
			return r
		}
	}
	return types.Recipe{}
}

func (fb *fakeBackend) postsFor(path string) []remote.Operation {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	var out []remote.Operation
	for _, op := range fb.posts {
		if op.Path == path {
			out = append(out, op)
		}
	}
	return out
}

func (fb *fakeBackend) state() (list, suggestions string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.list, fb.suggestions
}
