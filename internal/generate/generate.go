// Package generate runs one scaffolding pass for an entity: compose the six
// artifacts, write them, then register the entity's bindings.
package generate

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/audree-labs/layergen/internal/entity"
	"github.com/audree-labs/layergen/internal/layout"
	"github.com/audree-labs/layergen/internal/registration"
	"github.com/audree-labs/layergen/internal/scaffold"
)

// Options configures a Generator.
type Options struct {
	Root   string // project root; artifact paths are relative to it
	Layout layout.Layout
	FS     afero.Fs
	Logger *slog.Logger
}

// Generator runs generation passes against one project.
type Generator struct {
	root     string
	layout   layout.Layout
	fs       afero.Fs
	logger   *slog.Logger
	composer *scaffold.Composer
}

// New creates a Generator. A nil FS writes to the OS filesystem and a nil
// logger discards log output.
func New(opts Options) *Generator {
	fsys := opts.FS
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{
		root:     opts.Root,
		layout:   opts.Layout,
		fs:       fsys,
		logger:   logger,
		composer: scaffold.NewComposer(opts.Layout),
	}
}

// Report is the outcome of one run. Nothing is rolled back, so a report may
// mix written artifacts with failures.
type Report struct {
	RunID     string
	Entity    entity.Spec
	Artifacts []scaffold.WriteResult
	// RegistrationPath is the full path of the registration file.
	RegistrationPath string
	Patch            registration.Result
	// PatchErr is set when the registration file could not be read or written.
	PatchErr error
}

// RegistrationMissing reports whether the registration file did not exist.
func (r *Report) RegistrationMissing() bool {
	return errors.Is(r.PatchErr, registration.ErrRegistrationFileMissing)
}

// Written returns the artifacts that were written successfully.
func (r *Report) Written() []scaffold.WriteResult {
	var out []scaffold.WriteResult
	for _, a := range r.Artifacts {
		if a.Err == nil {
			out = append(out, a)
		}
	}
	return out
}

// Warnings lists non-fatal conditions worth showing the user.
func (r *Report) Warnings() []string {
	var warnings []string
	if r.RegistrationMissing() {
		warnings = append(warnings, fmt.Sprintf("registration file not found: %s", r.RegistrationPath))
	}
	if r.Patch.Status == registration.AlreadyPresent {
		warnings = append(warnings, fmt.Sprintf("dependencies for %s are already registered", r.Entity.Name()))
	}
	return warnings
}

// Err joins every failure of the run: one per failed artifact, one per
// anchor that could not be patched, and any registration file I/O error.
// A missing registration file is a warning, not a failure.
func (r *Report) Err() error {
	var errs []error
	for _, a := range r.Artifacts {
		if a.Err != nil {
			errs = append(errs, a.Err)
		}
	}
	if r.PatchErr != nil && !r.RegistrationMissing() {
		errs = append(errs, r.PatchErr)
	}
	if err := r.Patch.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Run composes, writes and registers spec. The returned error is non-nil
// only when spec is invalid or composition fails, in which case nothing is
// written; every other failure is collected in the report.
func (g *Generator) Run(spec entity.Spec) (*Report, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:            uuid.NewString(),
		Entity:           spec,
		RegistrationPath: filepath.Join(g.root, g.layout.Registration.File),
	}
	logger := g.logger.With("run_id", report.RunID, "entity", spec.Name())
	logger.Info("generation started", "operations", spec.Operations().String())

	artifacts, err := g.composer.Compose(spec)
	if err != nil {
		return nil, fmt.Errorf("composing %s: %w", spec.Name(), err)
	}

	report.Artifacts = scaffold.NewMaterializer(g.fs, g.root, logger).Write(artifacts)

	patcher := registration.NewPatcher(g.layout.Registration, logger)
	report.Patch, report.PatchErr = patcher.PatchFile(g.fs, report.RegistrationPath, spec)
	if report.RegistrationMissing() {
		logger.Warn("registration file missing", "path", report.RegistrationPath)
	}

	if err := report.Err(); err != nil {
		logger.Error("generation finished with errors", "error", err)
	} else {
		logger.Info("generation finished", "written", len(report.Written()), "patch", report.Patch.Status.String())
	}
	return report, nil
}

// RunAll validates every spec before running any of them, then runs each in
// order. A failing entity does not stop the rest.
func (g *Generator) RunAll(specs []entity.Spec) ([]*Report, error) {
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
	}

	reports := make([]*Report, 0, len(specs))
	for _, spec := range specs {
		report, err := g.Run(spec)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
