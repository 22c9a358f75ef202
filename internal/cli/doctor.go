package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/audree-labs/layergen/internal/layout"
	"github.com/audree-labs/layergen/internal/platform"
	"github.com/audree-labs/layergen/internal/registration"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that a solution is ready for generation",
	Long: `Run diagnostic checks against the project root: the project layout file,
the target project directories, write access, the registration file and both
of its anchor methods.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := &doctor{w: cmd.OutOrStdout(), fs: afero.NewOsFs()}
		d.run(projectRoot)
		if d.failed > 0 {
			return fmt.Errorf("%d check(s) failed", d.failed)
		}
		return nil
	},
}

type doctor struct {
	w      io.Writer
	fs     afero.Fs
	failed int
}

func (d *doctor) ok(format string, args ...any) {
	fmt.Fprintf(d.w, "  [ OK ] "+format+"\n", args...)
}

func (d *doctor) info(format string, args ...any) {
	fmt.Fprintf(d.w, "  [INFO] "+format+"\n", args...)
}

func (d *doctor) warn(format string, args ...any) {
	fmt.Fprintf(d.w, "  [WARN] "+format+"\n", args...)
}

func (d *doctor) fail(format string, args ...any) {
	d.failed++
	fmt.Fprintf(d.w, "  [FAIL] "+format+"\n", args...)
}

func (d *doctor) run(root string) {
	fmt.Fprintln(d.w, "Project check:")
	abs, err := platform.ResolveRoot(d.fs, root)
	if err != nil {
		d.fail("%v", err)
		return
	}
	d.ok("project root %s", abs)

	cfgPath := layout.ProjectConfigPath(abs)
	if exists, _ := afero.Exists(d.fs, cfgPath); exists {
		d.ok("%s found", relPath(abs, cfgPath))
	} else {
		d.info("%s not found, using the default layout", relPath(abs, cfgPath))
	}

	l, err := layout.Load(d.fs, abs)
	if err != nil {
		d.fail("%v", err)
		return
	}

	if err := platform.CheckWritable(d.fs, abs); err != nil {
		d.fail("%v", err)
	} else {
		d.ok("project root is writable")
	}

	fmt.Fprintln(d.w, "Layout check:")
	for _, dir := range l.Directories() {
		if exists, _ := afero.DirExists(d.fs, filepath.Join(abs, dir)); exists {
			d.ok("%s", dir)
		} else {
			d.warn("%s missing (created on first generate)", dir)
		}
	}

	fmt.Fprintln(d.w, "Registration check:")
	regPath := filepath.Join(abs, l.Registration.File)
	data, err := afero.ReadFile(d.fs, regPath)
	if err != nil {
		if isMissing(err) {
			d.warn("%s not found; services will not be registered", l.Registration.File)
			return
		}
		d.fail("reading %s: %v", l.Registration.File, err)
		return
	}
	d.ok("%s", l.Registration.File)

	issues := registration.NewPatcher(l.Registration, logger).Inspect(string(data))
	bad := make(map[string]string, len(issues))
	for _, issue := range issues {
		bad[issue.Anchor] = issue.Reason
	}
	for _, anchor := range []string{l.Registration.RepositoryAnchor, l.Registration.BusinessAnchor} {
		if reason, found := bad[anchor]; found {
			d.fail("%s: %s", anchor, reason)
			continue
		}
		d.ok("%s", anchor)
	}
}
