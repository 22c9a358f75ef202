package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/audree-labs/layergen/internal/catalog"
	"github.com/audree-labs/layergen/internal/entity"
	"github.com/audree-labs/layergen/internal/generate"
	"github.com/audree-labs/layergen/internal/layout"
	"github.com/audree-labs/layergen/internal/manifest"
	"github.com/audree-labs/layergen/internal/platform"
	"github.com/audree-labs/layergen/internal/prompt"
	"github.com/audree-labs/layergen/internal/registration"
	"github.com/audree-labs/layergen/internal/ui"
)

var (
	generateOps    string
	generateAll    bool
	generateSpec   string
	generateDryRun bool
	generateYes    bool
)

func init() {
	generateCmd.Flags().StringVar(&generateOps, "ops", "", "Comma-separated operations to include: "+strings.Join(catalog.Names(), ","))
	generateCmd.Flags().BoolVar(&generateAll, "all", false, "Include every operation")
	generateCmd.Flags().StringVar(&generateSpec, "spec", "", "Generate every entity listed in a batch spec file")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Show what would be written without touching disk")
	generateCmd.Flags().BoolVarP(&generateYes, "yes", "y", false, "Skip the confirmation prompt")
	generateCmd.MarkFlagsMutuallyExclusive("ops", "all")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [entity]",
	Short: "Generate the layers for an entity",
	Long: `Generate the controller, business contract and implementation, repository
contract and implementation, and model for an entity, then register the
business and repository services in the dependency configurator.

Without an entity name or --spec, the command asks for the entity name, the
solution path and each operation interactively.

Existing files are overwritten. Registration is skipped when the entity is
already registered.

Examples:
  layergen generate Product --ops GetAll,GetById,Create
  layergen generate Invoice --all --yes
  layergen generate --spec entities.yaml --dry-run
  layergen generate`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	out := ui.New(cmd.OutOrStdout())
	p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())

	root := projectRoot
	var specs []entity.Spec

	switch {
	case generateSpec != "":
		if len(args) > 0 {
			return errors.New("--spec cannot be combined with an entity name")
		}
		if opsSelected(cmd) {
			return errors.New("--ops and --all cannot be combined with --spec; operations come from the file")
		}
		loaded, err := specsFromFile(generateSpec)
		if err != nil {
			return err
		}
		specs = loaded
	case len(args) == 1:
		spec, err := specFromFlags(args[0], generateOps, generateAll)
		if err != nil {
			return err
		}
		specs = []entity.Spec{spec}
	default:
		var answers *prompt.Answers
		if opsSelected(cmd) {
			set, err := opsFromFlags(generateOps, generateAll)
			if err != nil {
				return err
			}
			answers, err = p.CollectWithOperations(set)
			if err != nil {
				return err
			}
		} else {
			var err error
			if answers, err = p.Collect(); err != nil {
				return err
			}
		}
		if root == "" {
			root = answers.Root
		}
		specs = []entity.Spec{answers.Spec}
	}

	fsys := platform.NewFS(generateDryRun)
	root, l, err := loadProject(fsys, root)
	if err != nil {
		return err
	}

	out.Line("")
	printPlan(out, root, l, specs)
	if generateDryRun {
		out.Info("Dry run: nothing will be written to disk")
	} else if !generateYes {
		ok, err := p.Confirm("\nProceed? [y/N] ")
		if err != nil {
			return err
		}
		if !ok {
			out.Line("Cancelled.")
			return nil
		}
	}

	regPath := filepath.Join(root, l.Registration.File)
	var before []byte
	if generateDryRun {
		before, err = afero.ReadFile(fsys, regPath)
		if err != nil && !isMissing(err) {
			return fmt.Errorf("reading %s: %w", regPath, err)
		}
	}

	g := generate.New(generate.Options{Root: root, Layout: l, FS: fsys, Logger: logger})
	reports, err := g.RunAll(specs)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range reports {
		out.Line("")
		renderReport(out, root, r)
		if r.Err() != nil {
			failed++
		}
	}

	if generateDryRun {
		after, _ := afero.ReadFile(fsys, regPath)
		diff, err := registration.Diff(relPath(root, regPath), string(before), string(after))
		if err != nil {
			return fmt.Errorf("rendering diff: %w", err)
		}
		if diff != "" {
			out.Line("")
			out.Diff(diff)
		}
	}

	if failed > 0 {
		out.Line("")
		out.Error("%d of %d entities finished with errors", failed, len(reports))
	}
	return nil
}

// specFromFlags builds a spec from an entity name and the --ops/--all flags.
func specFromFlags(name, ops string, all bool) (entity.Spec, error) {
	set, err := opsFromFlags(ops, all)
	if err != nil {
		return entity.Spec{}, err
	}
	return entity.NewWithSet(name, set)
}

func opsFromFlags(ops string, all bool) (catalog.Set, error) {
	if all {
		return catalog.FullSet(), nil
	}
	parsed, err := catalog.ParseList(ops)
	if err != nil {
		return 0, err
	}
	return catalog.NewSet(parsed...), nil
}

// opsSelected reports whether --ops or --all was given on the command line.
func opsSelected(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("ops") || cmd.Flags().Changed("all")
}

// specsFromFile loads a batch spec and checks it against the running version.
func specsFromFile(path string) ([]entity.Spec, error) {
	m, err := manifest.LoadFile(afero.NewOsFs(), path)
	if err != nil {
		return nil, err
	}
	if err := m.CheckVersion(buildVersion); err != nil {
		return nil, err
	}
	return m.Specs()
}

func printPlan(out *ui.Printer, root string, l layout.Layout, specs []entity.Spec) {
	out.Title("Project: %s", root)
	for _, spec := range specs {
		ops := spec.Operations().String()
		if ops == "" {
			ops = "none"
		}
		out.Line("  %s (operations: %s)", spec.Name(), ops)
		for _, path := range []string{
			l.ControllerPath(spec.Name()),
			l.BusinessContractPath(spec.Name()),
			l.BusinessImplPath(spec.Name()),
			l.RepositoryContractPath(spec.Name()),
			l.RepositoryImplPath(spec.Name()),
			l.ModelPath(spec.Name()),
		} {
			out.Line("    %s", path)
		}
	}
	out.Line("  registers in %s", l.Registration.File)
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// isMissing reports whether err means a file does not exist.
func isMissing(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
