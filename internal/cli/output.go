package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// printRecipes lists id and title. The active recipe is marked with "*"
// and other open recipes with "+".
func printRecipes(w io.Writer, recipes []types.Recipe, active string, open func(string) bool) {
	if len(recipes) == 0 {
		fmt.Fprintln(w, "no recipes")
		return
	}
	for _, r := range recipes {
		mark := " "
		switch {
		case r.ID == active:
			mark = "*"
		case open(r.ID):
			mark = "+"
		}
		fmt.Fprintf(w, "%s %-12s %s\n", mark, r.ID, r.Title)
	}
}

func printRecipe(w io.Writer, r types.Recipe) {
	fmt.Fprintf(w, "%s (%s)\n", r.Title, r.ID)
	for _, sec := range types.Sections[1:] {
		v, _ := r.Section(sec)
		if v == "" {
			continue
		}
		fmt.Fprintf(w, "\n[%s]\n%s\n", sec, v)
	}
}

func printItems(w io.Writer, items []types.ShoppingItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "shopping list is empty")
		return
	}
	for i, it := range items {
		fmt.Fprintf(w, "%3d. %s\n", i+1, it.Text)
	}
}

// parsePosition converts a 1-based list position to an index into a list
// of n items.
func parsePosition(arg string, n int) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil || pos < 1 || pos > n {
		return 0, usageError("position %q is not between 1 and %d", arg, n)
	}
	return pos - 1, nil
}
