package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/audree-labs/layergen/internal/layout"
	"github.com/audree-labs/layergen/internal/platform"
	"github.com/audree-labs/layergen/internal/ui"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing project file")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a project layout file",
	Long: `Write .layergen/project.yaml with the default layout into the project root.
Edit the file to change project names, namespaces, the registration file,
its anchor methods or the binding lifetime.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.New(cmd.OutOrStdout())
		fsys := afero.NewOsFs()

		root, err := platform.ResolveRoot(fsys, projectRoot)
		if err != nil {
			return err
		}

		path := layout.ProjectConfigPath(root)
		written, err := layout.Init(fsys, root, initForce)
		if err != nil {
			return fmt.Errorf("initializing project: %w", err)
		}
		if !written {
			return fmt.Errorf("project already initialized: %s exists (use --force to overwrite)", path)
		}

		out.Success("Created %s", relPath(root, path))
		return nil
	},
}
