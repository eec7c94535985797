package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/recipebox/internal/remote"
	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// Recipes returns the cached recipes in backend order.
func (a *App) Recipes() []types.Recipe {
	return a.store.Recipes()
}

// Recipe returns the cached recipe with the given id.
func (a *App) Recipe(id string) (types.Recipe, error) {
	r, ok := a.store.RecipeByID(id)
	if !ok {
		return types.Recipe{}, a.lookupFailure(id)
	}
	return r, nil
}

// ActiveRecipe returns the recipe shown in the active tab.
func (a *App) ActiveRecipe() (types.Recipe, error) {
	id := a.tabs.ActiveID()
	if id == "" {
		return types.Recipe{}, types.ErrTabNotOpen
	}
	return a.Recipe(id)
}

// OpenRecipe opens id as a click on its sidebar entry does: the tab is
// created or activated and the view is recorded with the backend.
func (a *App) OpenRecipe(id string) error {
	if _, err := a.Recipe(id); err != nil {
		return err
	}
	a.tabs.ActivateFromSidebar(id)
	a.pusher.Push(remote.RecipeAccess(id))
	a.emitTabs()
	return nil
}

// OpenRelated opens id from a related-recipe link of another recipe.
func (a *App) OpenRelated(id string) error {
	if _, err := a.Recipe(id); err != nil {
		return err
	}
	a.tabs.ActivateFromRelatedLink(id)
	a.pusher.Push(remote.RecipeAccess(id))
	a.emitTabs()
	return nil
}

// ActivateTab switches to an open tab from the tab strip. No view is
// recorded.
func (a *App) ActivateTab(id string) error {
	if err := a.tabs.Activate(id); err != nil {
		return fmt.Errorf("activate %s: %w", id, err)
	}
	a.emitTabs()
	return nil
}

// CloseTab closes the tab for id. When it was active, the first remaining
// tab is opened through the sidebar path.
func (a *App) CloseTab(id string) error {
	if !a.tabs.IsOpen(id) {
		return fmt.Errorf("close %s: %w", id, types.ErrTabNotOpen)
	}
	active, changed := a.tabs.Close(id)
	if changed && active != "" {
		if err := a.OpenRecipe(active); err == nil {
			return nil
		}
	}
	a.emitTabs()
	return nil
}

// CreateRecipe asks the backend for a new recipe, caches it under the
// default title and opens it.
func (a *App) CreateRecipe(ctx context.Context) (string, error) {
	id, err := a.reader.CreateRecipe(ctx)
	if err != nil {
		a.log.Error("create recipe", zap.Error(err))
		return "", err
	}
	if err := a.store.AddRecipe(types.NewRecipe(id)); err != nil {
		a.log.Error("create recipe", zap.String("id", id), zap.Error(err))
		return "", fmt.Errorf("create recipe %s: %w", id, err)
	}
	a.listener.RecipesReady(a.store.Recipes())
	if err := a.OpenRecipe(id); err != nil {
		return "", err
	}
	return id, nil
}

// Search replaces the recipe cache with the backend's matches for q. A
// query that is blank after normalization does nothing. Open tabs are kept.
func (a *App) Search(ctx context.Context, q string) error {
	q = types.Normalize(q)
	if q == "" {
		return nil
	}
	recipes, err := a.reader.SearchRecipes(ctx, q)
	if err != nil {
		a.log.Error("search recipes", zap.String("query", q), zap.Error(err))
		a.listener.RecipesFetchFailed(err)
		return err
	}
	a.store.SetRecipes(recipes)
	a.listener.RecipesReady(a.store.Recipes())
	return nil
}

// EditField sets one section of the active recipe and mirrors the edit.
func (a *App) EditField(section types.Section, value string) error {
	id := a.tabs.ActiveID()
	if id == "" {
		return fmt.Errorf("edit %s: %w", section, types.ErrTabNotOpen)
	}
	if err := a.store.SetRecipeSection(id, section, value); err != nil {
		if errors.Is(err, types.ErrLookupFailure) {
			a.log.Warn("lookup failure", zap.String("id", id), zap.String("section", string(section)))
		}
		return fmt.Errorf("edit %s of %s: %w", section, id, err)
	}
	a.pusher.Push(remote.RecipeUpdate(id, section, value))
	if section == types.SectionTitle {
		a.listener.RecipesReady(a.store.Recipes())
	}
	return nil
}

// RelatedRecipes resolves the related ids of recipe id. Ids that are not
// cached are logged and skipped.
func (a *App) RelatedRecipes(id string) ([]types.Recipe, error) {
	r, err := a.Recipe(id)
	if err != nil {
		return nil, err
	}
	related := make([]types.Recipe, 0)
	for _, rid := range r.RelatedIDs() {
		rr, ok := a.store.RecipeByID(rid)
		if !ok {
			a.log.Warn("lookup failure", zap.String("id", rid), zap.String("related_to", id))
			continue
		}
		related = append(related, rr)
	}
	return related, nil
}

func (a *App) lookupFailure(id string) error {
	a.log.Warn("lookup failure", zap.String("id", id))
	return fmt.Errorf("recipe %s: %w", id, types.ErrLookupFailure)
}
