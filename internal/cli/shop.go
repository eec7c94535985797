package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipebox/internal/export"
	"github.com/mesh-intelligence/recipebox/internal/shopping"
	"github.com/mesh-intelligence/recipebox/pkg/types"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Show and change the shopping list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				return printShopping(cmd, s)
			})
		},
	}
	cmd.AddCommand(
		newShopListCmd(),
		newShopAddCmd(),
		newShopRmCmd(),
		newShopEditCmd(),
		newShopMoveCmd(),
		newShopSortCmd(),
		newShopGenerateCmd(),
		newShopExportCmd(),
	)
	return cmd
}

func printShopping(cmd *cobra.Command, s *session) error {
	items := s.app.ShoppingItems()
	if flags.jsonMode {
		return printJSON(stdout(cmd), map[string]any{
			"items":     items,
			"sort_mode": s.app.SortMode(),
		})
	}
	printItems(stdout(cmd), items)
	if s.app.SortMode() {
		fmt.Fprintln(stdout(cmd), "(sort mode)")
	}
	return nil
}

func newShopListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the shopping list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				return printShopping(cmd, s)
			})
		},
	}
}

func newShopAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <item>...",
		Short: "Add items to the top of the list",
		Long: "Add the arguments, in the order given, at the top of the list. Items\n" +
			"already listed are reported and skipped.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				if len(args) == 1 {
					if err := s.app.SubmitShoppingItem(args[0]); err != nil {
						return err
					}
				} else {
					s.app.AddShoppingItems(args, shopping.Head)
				}
				return printShopping(cmd, s)
			})
		},
	}
}

func newShopRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <position>",
		Short: "Remove an item by its list position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				items := s.app.ShoppingItems()
				idx, err := parsePosition(args[0], len(items))
				if err != nil {
					return err
				}
				if err := s.app.DeleteShoppingItem(items[idx].ID); err != nil {
					return err
				}
				return printShopping(cmd, s)
			})
		},
	}
}

func newShopEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <position> <text>",
		Short: "Replace the text of an item in place",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				items := s.app.ShoppingItems()
				idx, err := parsePosition(args[0], len(items))
				if err != nil {
					return err
				}
				if err := s.app.SelectShoppingItem(items[idx].ID); err != nil {
					return err
				}
				if err := s.app.SubmitShoppingItem(strings.Join(args[1:], " ")); err != nil {
					return err
				}
				return printShopping(cmd, s)
			})
		},
	}
}

func newShopMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <position> <new-position>",
		Short: "Move an item (sort mode only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				items := s.app.ShoppingItems()
				from, err := parsePosition(args[0], len(items))
				if err != nil {
					return err
				}
				to, err := parsePosition(args[1], len(items))
				if err != nil {
					return err
				}
				if err := s.app.MoveShoppingItem(items[from].ID, to); err != nil {
					if errors.Is(err, types.ErrSortModeOff) {
						return fmt.Errorf("%w (run \"recipebox shop sort\" first)", err)
					}
					return err
				}
				return printShopping(cmd, s)
			})
		},
	}
}

func newShopSortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Toggle sort mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				fmt.Fprintf(stdout(cmd), "sort mode %s\n", onOff(s.app.ToggleSortMode()))
				return nil
			})
		},
	}
}

func newShopGenerateCmd() *cobra.Command {
	var fresh bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the list from the ingredients of the open recipes",
		Long: "Consolidate the ingredients of the open tabs, in tab order, into the\n" +
			"shopping text and add the surviving lines to the list. Each run appends\n" +
			"to the text built so far unless --fresh is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				text := s.app.RegenerateShoppingList(fresh)
				if flags.jsonMode {
					return printJSON(stdout(cmd), map[string]any{
						"text":  text,
						"items": s.app.ShoppingItems(),
					})
				}
				fmt.Fprint(stdout(cmd), text)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&fresh, "fresh", false, "discard previously generated text first")
	return cmd
}

func newShopExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.txt|file.xlsx>",
		Short: "Write the shopping list to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := export.FormatFor(args[0]); err != nil {
				return err
			}
			return withSession(cmd, func(s *session) error {
				if err := export.Write(args[0], s.app.ShoppingItems()); err != nil {
					return err
				}
				fmt.Fprintf(stdout(cmd), "exported %d items to %s\n", len(s.app.ShoppingItems()), args[0])
				return nil
			})
		},
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
