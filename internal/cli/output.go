package cli

import (
	"path/filepath"

	"github.com/audree-labs/layergen/internal/generate"
	"github.com/audree-labs/layergen/internal/registration"
	"github.com/audree-labs/layergen/internal/ui"
)

// renderReport prints the progress lines of one generation run.
func renderReport(out *ui.Printer, root string, r *generate.Report) {
	name := r.Entity.Name()
	regFile := filepath.Base(r.RegistrationPath)

	out.Title("%s", name)
	for _, w := range r.Artifacts {
		if w.CreatedDir != "" {
			out.Line("Created directory: %s", relPath(root, w.CreatedDir))
		}
		if w.Err != nil {
			out.Error("%v", w.Err)
			continue
		}
		out.Success("Generated: %s", relPath(root, w.Path))
	}

	switch {
	case r.RegistrationMissing():
		out.Warn("Warning: %s not found at %s", regFile, relPath(root, r.RegistrationPath))
	case r.PatchErr != nil:
		out.Error("%v", r.PatchErr)
	}

	renderPatch(out, name, root, r.RegistrationPath, r.Patch, r.PatchErr == nil)

	if err := r.Err(); err != nil {
		out.Error("%s finished with errors (run %s)", name, r.RunID)
		return
	}
	out.Success("All files generated successfully for entity: %s", name)
}

// renderPatch prints the outcome of a registration patch. written is false
// when the patched text could not be saved.
func renderPatch(out *ui.Printer, name, root, path string, res registration.Result, written bool) {
	regFile := filepath.Base(path)
	switch res.Status {
	case registration.Applied:
		if written {
			out.Success("Updated: %s", relPath(root, path))
		}
	case registration.AlreadyPresent:
		out.Warn("Dependencies for %s already exist in %s", name, regFile)
	}
	for _, m := range res.Missing {
		out.Warn("Warning: Could not find method %s in %s (%s)", m.Anchor, regFile, m.Reason)
	}
}
