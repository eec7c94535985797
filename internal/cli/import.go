package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipebox/internal/importer"
	"github.com/mesh-intelligence/recipebox/pkg/types"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <url|file>",
		Short: "Create a recipe from a recipe web page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				im, err := importer.Load(cmd.Context(), args[0], s.settings.httpTimeout())
				if err != nil {
					return err
				}
				id, err := s.app.CreateRecipe(cmd.Context())
				if err != nil {
					return err
				}

				fields := []struct {
					section types.Section
					value   string
				}{
					{types.SectionTitle, im.Title},
					{types.SectionIngredients, im.IngredientText()},
					{types.SectionMethod, im.Method},
				}
				for _, f := range fields {
					if f.value == "" {
						continue
					}
					if err := s.app.EditField(f.section, f.value); err != nil {
						return err
					}
				}
				fmt.Fprintf(stdout(cmd), "imported %s as %s (%d ingredients)\n", im.Title, id, len(im.Ingredients))
				return nil
			})
		},
	}
}
