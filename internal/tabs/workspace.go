// Package tabs tracks which recipes are open as tabs and which one is
// active.
//
// The workspace is a two-state machine. Empty has no tabs and hides the
// detail view. Open(active, ids) has at least one tab, exactly one of which
// is active. Opening appends a tab (or activates an existing one); closing
// the active tab activates the first remaining tab, or returns to Empty.
package tabs

import (
	"sync"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// State is the workspace state.
type State int

const (
	// StateEmpty has no open tabs.
	StateEmpty State = iota
	// StateOpen has at least one open tab and one active tab.
	StateOpen
)

// String returns a human-readable state.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Entry is one tab in tab order.
type Entry struct {
	RecipeID string `json:"recipe_id"`
	IsActive bool   `json:"is_active"`
}

// Snapshot is a copy of the workspace for rendering and persistence.
// SidebarActiveID is the recipe marked active in the sidebar list.
type Snapshot struct {
	OpenIDs         []string `json:"open_ids"`
	ActiveID        string   `json:"active_id"`
	SidebarActiveID string   `json:"sidebar_active_id"`
}

// Entries returns the snapshot as tab entries in tab order.
func (s Snapshot) Entries() []Entry {
	out := make([]Entry, 0, len(s.OpenIDs))
	for _, id := range s.OpenIDs {
		out = append(out, Entry{RecipeID: id, IsActive: id == s.ActiveID})
	}
	return out
}

// Workspace is the tab state machine. Safe for concurrent use.
type Workspace struct {
	mu      sync.RWMutex
	open    []string
	active  string
	sidebar string
}

// New creates a workspace in the Empty state.
func New() *Workspace {
	return &Workspace{}
}

// State returns the current state.
func (w *Workspace) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if len(w.open) == 0 {
		return StateEmpty
	}
	return StateOpen
}

// Open activates the tab for id, appending a new tab at the end of tab
// order when id is not open yet. The sidebar marker follows the active tab.
func (w *Workspace) Open(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.openLocked(id)
}

func (w *Workspace) openLocked(id string) {
	if w.indexLocked(id) < 0 {
		w.open = append(w.open, id)
	}
	w.active = id
	w.sidebar = id
}

// ActivateFromSidebar opens id after a click on its sidebar entry.
func (w *Workspace) ActivateFromSidebar(id string) {
	w.Open(id)
}

// ActivateFromRelatedLink opens id after a click on a related-recipe link.
// The sidebar entry for id is marked active even though the click came from
// outside the sidebar.
func (w *Workspace) ActivateFromRelatedLink(id string) {
	w.Open(id)
}

// Activate switches to an already open tab, as a click on the tab strip
// does. Returns ErrTabNotOpen when id has no tab.
func (w *Workspace) Activate(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.indexLocked(id) < 0 {
		return types.ErrTabNotOpen
	}
	w.active = id
	w.sidebar = id
	return nil
}

// Close removes the tab for id. When the closed tab was active the first
// remaining tab becomes active; with no tabs left the workspace is Empty.
// It returns the active id after the close and whether the active tab
// changed. Closing an id that is not open does nothing.
func (w *Workspace) Close(id string) (active string, changed bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := w.indexLocked(id)
	if idx < 0 {
		return w.active, false
	}
	w.open = append(w.open[:idx:idx], w.open[idx+1:]...)

	if w.active != id {
		return w.active, false
	}
	if len(w.open) == 0 {
		w.active = ""
		w.sidebar = ""
		return "", true
	}
	w.active = w.open[0]
	w.sidebar = w.active
	return w.active, true
}

// ActiveID returns the active recipe id, or "" when Empty.
func (w *Workspace) ActiveID() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active
}

// IsOpen reports whether id has a tab.
func (w *Workspace) IsOpen(id string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.indexLocked(id) >= 0
}

// OpenIDs returns the open recipe ids in tab order.
func (w *Workspace) OpenIDs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]string(nil), w.open...)
}

// Snapshot returns a copy of the workspace.
func (w *Workspace) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return Snapshot{
		OpenIDs:         append([]string{}, w.open...),
		ActiveID:        w.active,
		SidebarActiveID: w.sidebar,
	}
}

// Restore replaces the workspace with snap. Repeated and blank ids are
// dropped. An active id that is not open is replaced by the first open tab,
// so a restored workspace always satisfies the tab invariants.
func (w *Workspace) Restore(snap Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.open = w.open[:0]
	seen := make(map[string]bool, len(snap.OpenIDs))
	for _, id := range snap.OpenIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		w.open = append(w.open, id)
	}

	switch {
	case len(w.open) == 0:
		w.active = ""
	case seen[snap.ActiveID]:
		w.active = snap.ActiveID
	default:
		w.active = w.open[0]
	}
	w.sidebar = snap.SidebarActiveID
	if w.sidebar == "" || !seen[w.sidebar] {
		w.sidebar = w.active
	}
}

// Retain closes every tab whose id fails keep, applying the same
// activation rule as Close. It returns the ids that were closed.
func (w *Workspace) Retain(keep func(id string) bool) []string {
	var closed []string
	for _, id := range w.OpenIDs() {
		if !keep(id) {
			w.Close(id)
			closed = append(closed, id)
		}
	}
	return closed
}

func (w *Workspace) indexLocked(id string) int {
	for i, open := range w.open {
		if open == id {
			return i
		}
	}
	return -1
}
