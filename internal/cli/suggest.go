package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSuggestCmd() *cobra.Command {
	list := func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *session) error {
			return printSuggestions(cmd, s)
		})
	}
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Show and manage previously used items",
		Args:  cobra.NoArgs,
		RunE:  list,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print suggestions not already on the list",
			Args:  cobra.NoArgs,
			RunE:  list,
		},
		&cobra.Command{
			Use:   "add <item>",
			Short: "Move a suggestion to the top of the shopping list",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(cmd, func(s *session) error {
					if err := s.app.AddSuggestionToList(args[0]); err != nil {
						return err
					}
					return printSuggestions(cmd, s)
				})
			},
		},
		&cobra.Command{
			Use:   "rm <item>",
			Short: "Forget a suggestion",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(cmd, func(s *session) error {
					s.app.DeleteSuggestion(args[0])
					return printSuggestions(cmd, s)
				})
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Toggle suggest mode",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(cmd, func(s *session) error {
					fmt.Fprintf(stdout(cmd), "suggest mode %s\n", onOff(s.app.ToggleSuggestMode()))
					return nil
				})
			},
		},
	)
	return cmd
}

func printSuggestions(cmd *cobra.Command, s *session) error {
	visible := s.app.VisibleSuggestions()
	if flags.jsonMode {
		return printJSON(stdout(cmd), visible)
	}
	if len(visible) == 0 {
		fmt.Fprintln(stdout(cmd), "no suggestions")
		return nil
	}
	for _, v := range visible {
		fmt.Fprintln(stdout(cmd), v)
	}
	return nil
}
