package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/audree-labs/layergen/internal/entity"
	"github.com/audree-labs/layergen/internal/platform"
	"github.com/audree-labs/layergen/internal/registration"
	"github.com/audree-labs/layergen/internal/ui"
)

var registerDryRun bool

func init() {
	registerCmd.Flags().BoolVar(&registerDryRun, "dry-run", false, "Print the change as a unified diff without writing it")
	rootCmd.AddCommand(registerCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register <entity>",
	Short: "Register an entity's services in the dependency configurator",
	Long: `Add the repository and business bindings for an existing entity to the
dependency configurator without generating any files. Running it again for the
same entity changes nothing.

Examples:
  layergen register Product
  layergen register Product --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	out := ui.New(cmd.OutOrStdout())

	spec, err := entity.New(args[0])
	if err != nil {
		return err
	}

	fsys := platform.NewFS(registerDryRun)
	root, l, err := loadProject(fsys, projectRoot)
	if err != nil {
		return err
	}

	path := filepath.Join(root, l.Registration.File)
	before, err := afero.ReadFile(fsys, path)
	if err != nil && !isMissing(err) {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	patcher := registration.NewPatcher(l.Registration, logger.With("entity", spec.Name()))
	res, err := patcher.PatchFile(fsys, path, spec)
	if err != nil {
		return err
	}

	if registerDryRun && res.Status == registration.Applied {
		diff, err := registration.Diff(relPath(root, path), string(before), res.Text)
		if err != nil {
			return fmt.Errorf("rendering diff: %w", err)
		}
		out.Diff(diff)
		return res.Err()
	}

	renderPatch(out, spec.Name(), root, path, res, true)
	return res.Err()
}
