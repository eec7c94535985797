// Package cli implements the recipebox command-line interface. Each
// command is one user gesture: it loads the session, applies the gesture
// to the core and saves the session again.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/recipebox/internal/export"
	"github.com/mesh-intelligence/recipebox/internal/importer"
	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	jsonMode  bool
}

var flags rootFlags

// NewRootCmd creates the top-level "recipebox" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags = rootFlags{}
	root := &cobra.Command{
		Use:   "recipebox",
		Short: "Browse recipes and build shopping lists",
		Long: "recipebox keeps a personal recipe collection close at hand: open recipes\n" +
			"as tabs, edit them, and turn their ingredients into a shopping list.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: per-user config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: per-user data dir)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newRecipesCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newCreateCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newOpenCmd())
	root.AddCommand(newCloseCmd())
	root.AddCommand(newTabsCmd())
	root.AddCommand(newEditCmd())
	root.AddCommand(newRelatedCmd())
	root.AddCommand(newShopCmd())
	root.AddCommand(newSuggestCmd())
	root.AddCommand(newImportCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "recipebox:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to a process exit code. Mistakes the user can fix
// by changing the command are user errors; everything else is a system
// error.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	userErrors := []error{
		types.ErrLookupFailure,
		types.ErrInvalidSection,
		types.ErrDuplicateItem,
		types.ErrEmptyItem,
		types.ErrItemNotFound,
		types.ErrSortModeOff,
		types.ErrTabNotOpen,
		types.ErrBackendURLEmpty,
		types.ErrBackendURLInvalid,
		types.ErrTransformKeyEmpty,
		errUsage,
		importer.ErrNoIngredients,
		export.ErrUnsupportedFormat,
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}

// errUsage marks malformed arguments.
var errUsage = errors.New("usage")

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

func stdout(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
