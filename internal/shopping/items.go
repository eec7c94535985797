package shopping

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// Position selects where new items go.
type Position int

const (
	// Tail appends after the current last item.
	Tail Position = iota
	// Head inserts before the current first item.
	Head
)

// NewItem creates an item with a fresh id and its text in ItemText form.
func NewItem(text string) types.ShoppingItem {
	return types.ShoppingItem{ID: newID(), Text: ItemText(text)}
}

// ItemText is the stored form of an item: normalized and cut before the
// first comma. The backend keeps the list comma-joined, so a comma inside
// an item would split it in two on the next fetch.
func ItemText(s string) string {
	s = types.Normalize(s)
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

// newID generates a UUID v7 for item ids.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// AddItems converts texts with ItemText, drops blank entries and entries
// already in current (ignoring case) or repeated within texts, and inserts
// the rest at pos, keeping their supplied order. current is not modified.
func AddItems(current []types.ShoppingItem, texts []string, pos Position) []types.ShoppingItem {
	present := make(map[string]bool, len(current)+len(texts))
	for _, it := range current {
		present[types.Normalize(it.Text)] = true
	}

	added := make([]types.ShoppingItem, 0, len(texts))
	for _, t := range texts {
		n := ItemText(t)
		if n == "" || present[n] {
			continue
		}
		present[n] = true
		added = append(added, types.ShoppingItem{ID: newID(), Text: n})
	}

	out := make([]types.ShoppingItem, 0, len(current)+len(added))
	if pos == Head {
		out = append(out, added...)
		out = append(out, current...)
		return out
	}
	out = append(out, current...)
	out = append(out, added...)
	return out
}

// AddSingleItem adds one manually entered item at the head (prepend) or
// tail. Returns ErrEmptyItem for blank text and ErrDuplicateItem when the
// normalized text is already listed; current is returned unchanged then.
func AddSingleItem(current []types.ShoppingItem, text string, prepend bool) ([]types.ShoppingItem, error) {
	n := ItemText(text)
	if n == "" {
		return current, types.ErrEmptyItem
	}
	if Contains(current, n) {
		return current, types.ErrDuplicateItem
	}
	pos := Tail
	if prepend {
		pos = Head
	}
	return AddItems(current, []string{n}, pos), nil
}

// EditItem replaces the text of the item with the given id, keeping its
// position and id. Editing to the text of another item returns
// ErrDuplicateItem; editing to its own text in a different case is allowed.
func EditItem(current []types.ShoppingItem, id, text string) ([]types.ShoppingItem, error) {
	n := ItemText(text)
	if n == "" {
		return current, types.ErrEmptyItem
	}
	idx := IndexOf(current, id)
	if idx < 0 {
		return current, types.ErrItemNotFound
	}
	for i, it := range current {
		if i != idx && types.Normalize(it.Text) == n {
			return current, types.ErrDuplicateItem
		}
	}
	out := clone(current)
	out[idx].Text = n
	out[idx].Checked = false
	return out, nil
}

// RemoveItem deletes the item with the given id.
func RemoveItem(current []types.ShoppingItem, id string) ([]types.ShoppingItem, error) {
	idx := IndexOf(current, id)
	if idx < 0 {
		return current, types.ErrItemNotFound
	}
	out := make([]types.ShoppingItem, 0, len(current)-1)
	out = append(out, current[:idx]...)
	out = append(out, current[idx+1:]...)
	return out, nil
}

// MoveItem moves the item with the given id to index, clamped to the list
// bounds. Used by sort mode reordering.
func MoveItem(current []types.ShoppingItem, id string, index int) ([]types.ShoppingItem, error) {
	idx := IndexOf(current, id)
	if idx < 0 {
		return current, types.ErrItemNotFound
	}
	item := current[idx]
	rest := make([]types.ShoppingItem, 0, len(current)-1)
	rest = append(rest, current[:idx]...)
	rest = append(rest, current[idx+1:]...)

	if index < 0 {
		index = 0
	}
	if index > len(rest) {
		index = len(rest)
	}
	out := make([]types.ShoppingItem, 0, len(current))
	out = append(out, rest[:index]...)
	out = append(out, item)
	out = append(out, rest[index:]...)
	return out, nil
}

// IndexOf returns the position of the item with the given id, or -1.
func IndexOf(items []types.ShoppingItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the item whose text matches text in ItemText form.
func Find(items []types.ShoppingItem, text string) (types.ShoppingItem, bool) {
	n := ItemText(text)
	for _, it := range items {
		if types.Normalize(it.Text) == n {
			return it, true
		}
	}
	return types.ShoppingItem{}, false
}

// Contains reports whether an item with the given text is listed.
func Contains(items []types.ShoppingItem, text string) bool {
	_, ok := Find(items, text)
	return ok
}

// Texts returns the item texts in list order.
func Texts(items []types.ShoppingItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Text)
	}
	return out
}

// JoinList serializes item texts in the backend's comma-joined form.
func JoinList(texts []string) string {
	return strings.Join(texts, ",")
}

// ParseList splits a comma-joined list, trimming entries and dropping
// blanks. An empty string yields no entries.
func ParseList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func clone(items []types.ShoppingItem) []types.ShoppingItem {
	out := make([]types.ShoppingItem, len(items))
	copy(out, items)
	return out
}
