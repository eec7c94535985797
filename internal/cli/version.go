package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const modulePath = "github.com/mesh-intelligence/recipebox"

// Version is the release version, set at build time with
// -ldflags "-X github.com/mesh-intelligence/recipebox/internal/cli.Version=...".
var Version = "0.1.0-dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the recipebox version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(stdout(cmd), "recipebox v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
