package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/recipebox/internal/remote"
	"github.com/mesh-intelligence/recipebox/internal/shopping"
	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// ShoppingItems returns the live shopping list in order.
func (a *App) ShoppingItems() []types.ShoppingItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return cloneItems(a.items)
}

// ShoppingText returns the consolidated text accumulated by
// RegenerateShoppingList.
func (a *App) ShoppingText() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listText
}

// Selected returns the id of the item selected for editing, or "".
func (a *App) Selected() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selected
}

// SortMode reports whether reordering is enabled.
func (a *App) SortMode() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sortMode
}

// SuggestMode reports whether the recall list is shown.
func (a *App) SuggestMode() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.suggestMode
}

// AddShoppingItems adds texts at pos, keeping their order. Blank texts are
// skipped; each text already listed, or repeated within texts, is reported
// as a notice. The list is mirrored once if anything was added.
func (a *App) AddShoppingItems(texts []string, pos shopping.Position) []types.ShoppingItem {
	a.mu.Lock()
	seen := make(map[string]bool, len(a.items)+len(texts))
	for _, it := range a.items {
		seen[types.Normalize(it.Text)] = true
	}
	dups := 0
	for _, t := range texts {
		n := shopping.ItemText(t)
		if n == "" {
			continue
		}
		if seen[n] {
			dups++
		}
		seen[n] = true
	}
	before := len(a.items)
	a.items = shopping.AddItems(a.items, texts, pos)
	changed := len(a.items) != before
	a.mu.Unlock()

	for range dups {
		a.listener.Notice(NoticeAlreadyInList)
	}
	if changed {
		a.listChanged()
	}
	return a.ShoppingItems()
}

// SubmitShoppingItem handles manual entry. With an item selected its text
// is replaced in place; otherwise text is added at the head of the list.
// A duplicate is reported as a notice and returned as ErrDuplicateItem.
func (a *App) SubmitShoppingItem(text string) error {
	a.mu.Lock()
	var (
		next []types.ShoppingItem
		err  error
	)
	if a.selected != "" {
		next, err = shopping.EditItem(a.items, a.selected, text)
	} else {
		next, err = shopping.AddSingleItem(a.items, text, true)
	}
	if err == nil {
		a.items = next
		a.selected = ""
	}
	a.mu.Unlock()

	if err != nil {
		return a.itemError(err)
	}
	a.listChanged()
	return nil
}

// SelectShoppingItem selects id for editing. Selecting the selected item
// again clears the selection. Only one item is selected at a time.
func (a *App) SelectShoppingItem(id string) error {
	a.mu.Lock()
	idx := shopping.IndexOf(a.items, id)
	if idx < 0 {
		a.mu.Unlock()
		return fmt.Errorf("select %s: %w", id, types.ErrItemNotFound)
	}
	if a.selected == id {
		a.selected = ""
	} else {
		a.selected = id
	}
	for i := range a.items {
		a.items[i].Checked = a.items[i].ID == a.selected
	}
	items := cloneItems(a.items)
	a.mu.Unlock()

	a.listener.ShoppingListChanged(items)
	return nil
}

// DeleteShoppingItem removes the item with the given id.
func (a *App) DeleteShoppingItem(id string) error {
	a.mu.Lock()
	next, err := shopping.RemoveItem(a.items, id)
	if err == nil {
		a.items = next
		if a.selected == id {
			a.selected = ""
		}
	}
	a.mu.Unlock()

	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	a.listChanged()
	return nil
}

// MoveShoppingItem moves an item to index. Only allowed in sort mode.
func (a *App) MoveShoppingItem(id string, index int) error {
	a.mu.Lock()
	if !a.sortMode {
		a.mu.Unlock()
		return types.ErrSortModeOff
	}
	next, err := shopping.MoveItem(a.items, id, index)
	if err == nil {
		a.items = next
	}
	a.mu.Unlock()

	if err != nil {
		return fmt.Errorf("move %s: %w", id, err)
	}
	a.listChanged()
	return nil
}

// ToggleSortMode flips sort mode and clears the selection. It returns the
// new mode.
func (a *App) ToggleSortMode() bool {
	a.mu.Lock()
	a.sortMode = !a.sortMode
	on := a.sortMode
	a.clearSelectionLocked()
	items := cloneItems(a.items)
	a.mu.Unlock()

	a.listener.ShoppingListChanged(items)
	return on
}

// ToggleSuggestMode flips suggest mode and clears the selection. It returns
// the new mode.
func (a *App) ToggleSuggestMode() bool {
	a.mu.Lock()
	a.suggestMode = !a.suggestMode
	on := a.suggestMode
	a.clearSelectionLocked()
	items := cloneItems(a.items)
	a.mu.Unlock()

	a.listener.ShoppingListChanged(items)
	a.emitSuggestions()
	return on
}

// AddSuggestionToList moves a suggestion to the head of the shopping list.
func (a *App) AddSuggestionToList(text string) error {
	a.mu.Lock()
	next, err := shopping.AddSingleItem(a.items, text, true)
	if err == nil {
		a.items = next
	}
	a.mu.Unlock()

	if err != nil {
		return a.itemError(err)
	}
	a.listChanged()
	return nil
}

// DeleteSuggestion removes text from the suggestion set and mirrors the
// remaining set.
func (a *App) DeleteSuggestion(text string) {
	remaining := a.store.DeleteSuggestion(text)
	a.pusher.Push(remote.SuggestionsUpdate(remaining))
	a.emitSuggestions()
}

// RegenerateShoppingList consolidates the ingredients of the open recipes,
// in tab order, and appends the result to the accumulated text. fresh
// discards the accumulated text first. The surviving lines are also added
// to the live list. It returns the new text.
func (a *App) RegenerateShoppingList(fresh bool) string {
	var sources []shopping.Source
	for _, id := range a.tabs.OpenIDs() {
		r, ok := a.store.RecipeByID(id)
		if !ok {
			a.log.Warn("lookup failure", zap.String("id", id))
			continue
		}
		sources = append(sources, shopping.SourceFromRecipe(r))
	}
	blocks := shopping.Consolidate(sources, a.pipeline)

	a.mu.Lock()
	existing := a.listText
	if fresh {
		existing = ""
	}
	a.listText = shopping.Append(existing, shopping.Format(blocks))
	text := a.listText
	before := len(a.items)
	a.items = shopping.AddItems(a.items, shopping.Lines(blocks), shopping.Tail)
	changed := len(a.items) != before
	a.mu.Unlock()

	if changed {
		a.listChanged()
	}
	return text
}

// listChanged records every item as a suggestion, mirrors the list and
// notifies the listener.
func (a *App) listChanged() {
	a.mu.Lock()
	texts := shopping.Texts(a.items)
	items := cloneItems(a.items)
	a.mu.Unlock()

	a.store.AddSuggestions(texts...)
	a.pusher.Push(remote.ShoppingListUpdate(texts))
	a.listener.ShoppingListChanged(items)
	a.emitSuggestions()
}

func (a *App) itemError(err error) error {
	if errors.Is(err, types.ErrDuplicateItem) {
		a.listener.Notice(NoticeAlreadyInList)
	}
	return err
}

func (a *App) clearSelectionLocked() {
	a.selected = ""
	for i := range a.items {
		a.items[i].Checked = false
	}
}
