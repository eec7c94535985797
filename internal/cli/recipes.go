package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

func newRecipesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "recipes",
		Aliases: []string{"ls"},
		Short:   "List the recipe collection",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				return listRecipes(cmd, s, s.app.Recipes())
			})
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the collection on the backend",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				if err := s.app.Search(cmd.Context(), strings.Join(args, " ")); err != nil {
					return err
				}
				return listRecipes(cmd, s, s.app.Recipes())
			})
		},
	}
}

func listRecipes(cmd *cobra.Command, s *session, recipes []types.Recipe) error {
	if flags.jsonMode {
		return printJSON(stdout(cmd), recipes)
	}
	printRecipes(stdout(cmd), recipes, s.app.Tabs().ActiveID(), s.app.Tabs().IsOpen)
	return nil
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a recipe and open it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				id, err := s.app.CreateRecipe(cmd.Context())
				if err != nil {
					return err
				}
				if flags.jsonMode {
					return printJSON(stdout(cmd), map[string]string{"id": id})
				}
				fmt.Fprintf(stdout(cmd), "created %s\n", id)
				return nil
			})
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Display a recipe (default: the active tab)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				r, err := targetRecipe(s, args)
				if err != nil {
					return err
				}
				if flags.jsonMode {
					return printJSON(stdout(cmd), r)
				}
				printRecipe(stdout(cmd), r)
				return nil
			})
		},
	}
}

func targetRecipe(s *session, args []string) (types.Recipe, error) {
	if len(args) == 0 {
		return s.app.ActiveRecipe()
	}
	return s.app.Recipe(args[0])
}

func newOpenCmd() *cobra.Command {
	var related bool
	cmd := &cobra.Command{
		Use:   "open <id>",
		Short: "Open a recipe in a tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				open := s.app.OpenRecipe
				if related {
					open = s.app.OpenRelated
				}
				if err := open(args[0]); err != nil {
					return err
				}
				return printTabs(cmd, s)
			})
		},
	}
	cmd.Flags().BoolVar(&related, "related", false, "open from a related-recipe link")
	return cmd
}

func newCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <id>",
		Short: "Close a recipe tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				if err := s.app.CloseTab(args[0]); err != nil {
					return err
				}
				return printTabs(cmd, s)
			})
		},
	}
}

func newTabsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tabs [id]",
		Short: "List open tabs, or switch to the tab for id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				if len(args) == 1 {
					if err := s.app.ActivateTab(args[0]); err != nil {
						return err
					}
				}
				return printTabs(cmd, s)
			})
		},
	}
}

func printTabs(cmd *cobra.Command, s *session) error {
	snap := s.app.Tabs().Snapshot()
	if flags.jsonMode {
		return printJSON(stdout(cmd), snap)
	}
	w := stdout(cmd)
	if len(snap.OpenIDs) == 0 {
		fmt.Fprintln(w, "no open tabs")
		return nil
	}
	for _, e := range snap.Entries() {
		mark := " "
		if e.IsActive {
			mark = "*"
		}
		title := "?"
		if r, ok := s.app.Store().RecipeByID(e.RecipeID); ok {
			title = r.Title
		}
		fmt.Fprintf(w, "%s %-12s %s\n", mark, e.RecipeID, title)
	}
	return nil
}

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <section> <value|->",
		Short: "Edit a section of the active recipe (\"-\" reads the value from stdin)",
		Long: "Edit a section of the active recipe. Sections: " + sectionNames() + ".\n" +
			"A value of \"-\" reads the new value from standard input.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := types.ParseSection(args[0])
			if err != nil {
				return fmt.Errorf("%w %q (want one of %s)", err, args[0], sectionNames())
			}
			value := strings.Join(args[1:], " ")
			if value == "-" {
				value, err = readValue(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}
			return withSession(cmd, func(s *session) error {
				return s.app.EditField(section, value)
			})
		},
	}
}

func readValue(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read value: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func sectionNames() string {
	names := make([]string, 0, len(types.Sections))
	for _, s := range types.Sections {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

func newRelatedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "related [id]",
		Short: "List the recipes related to a recipe (default: the active tab)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				r, err := targetRecipe(s, args)
				if err != nil {
					return err
				}
				related, err := s.app.RelatedRecipes(r.ID)
				if err != nil {
					return err
				}
				return listRecipes(cmd, s, related)
			})
		},
	}
}
