//go:build integration

package integration_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/audree-labs/layergen/internal/catalog"
	"github.com/audree-labs/layergen/internal/entity"
	"github.com/audree-labs/layergen/internal/generate"
	"github.com/audree-labs/layergen/internal/layout"
	"github.com/audree-labs/layergen/internal/manifest"
	"github.com/audree-labs/layergen/internal/platform"
	"github.com/audree-labs/layergen/internal/registration"
)

// TestFullFlowGenerateAndRegister tests the complete flow:
// init project -> generate an entity -> verify files -> re-run -> verify idempotency.
func TestFullFlowGenerateAndRegister(t *testing.T) {
	env := setupTestEnv(t)
	fs := afero.NewOsFs()

	// Step 1: Initialize the project layout.
	written, err := layout.Init(fs, env.ProjectDir, false)
	if err != nil || !written {
		t.Fatalf("layout.Init: written=%v err=%v", written, err)
	}
	assertFileExists(t, layout.ProjectConfigPath(env.ProjectDir))

	l, err := layout.Load(fs, env.ProjectDir)
	if err != nil {
		t.Fatalf("layout.Load: %v", err)
	}

	// Step 2: Generate Product with GetAll and Create.
	spec, err := entity.New("Product", catalog.Create, catalog.GetAll)
	if err != nil {
		t.Fatalf("entity.New: %v", err)
	}
	g := generate.New(generate.Options{Root: env.ProjectDir, Layout: l, FS: fs})

	report, err := g.Run(spec)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := report.Err(); err != nil {
		t.Fatalf("report: %v", err)
	}

	// Step 3: Verify the six artifacts.
	controller := filepath.Join(env.ProjectDir, "Audree.DMS.API", "Controllers", "ProductController.cs")
	for _, path := range []string{
		controller,
		filepath.Join(env.ProjectDir, "Audree.DMS.API.Business", "Contracts", "IProductBusiness.cs"),
		filepath.Join(env.ProjectDir, "Audree.DMS.API.Business", "Implementations", "ProductBusiness.cs"),
		filepath.Join(env.ProjectDir, "Audree.DMS.API.Repository", "Contracts", "IProductRepository.cs"),
		filepath.Join(env.ProjectDir, "Audree.DMS.API.Repository", "Implementations", "ProductRepository.cs"),
		filepath.Join(env.ProjectDir, "Audree.DMS.API.Model", "Product.cs"),
	} {
		assertFileExists(t, path)
	}

	text := readFile(t, controller)
	if strings.Index(text, "GetAll(") > strings.Index(text, "Create(") {
		t.Errorf("expected GetAll handler before Create handler")
	}
	assertFileContains(t, filepath.Join(env.ProjectDir, "Audree.DMS.API.Repository", "Implementations", "ProductRepository.cs"),
		"throw new NotImplementedException();")

	// Step 4: Verify registration appended after existing bindings.
	regPath := filepath.Join(env.ProjectDir, l.Registration.File)
	reg := readFile(t, regPath)
	userIdx := strings.Index(reg, "IUserRepository")
	productIdx := strings.Index(reg, "services.AddTransient<IProductRepository, ProductRepository>();")
	if productIdx < 0 || productIdx < userIdx {
		t.Errorf("expected Product repository binding after User binding:\n%s", reg)
	}
	assertFileContains(t, regPath, "services.AddTransient<IProductBusiness, ProductBusiness>();")

	// Step 5: Re-run; registration must not change.
	again, err := g.Run(spec)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if again.Patch.Status != registration.AlreadyPresent {
		t.Errorf("second run patch status = %s, want already present", again.Patch.Status)
	}
	if got := readFile(t, regPath); got != reg {
		t.Errorf("registration file changed on re-run:\n%s", got)
	}
}

// TestBatchSpecDryRun loads a batch spec and runs it through the dry-run
// overlay; nothing may reach disk.
func TestBatchSpecDryRun(t *testing.T) {
	env := setupTestEnv(t)
	specPath := filepath.Join(env.HomeDir, "entities.yaml")
	writeFile(t, specPath, `requires: ">= 0.0.1"
entities:
  - name: Invoice
    operations: all
  - name: Vendor
    operations: [GetById]
`)

	m, err := manifest.LoadFile(afero.NewOsFs(), specPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if err := m.CheckVersion("1.0.0"); err != nil {
		t.Fatalf("CheckVersion: %v", err)
	}
	if err := m.CheckVersion("0.0.0"); !errors.Is(err, manifest.ErrVersionConstraint) {
		t.Errorf("CheckVersion(0.0.0) = %v, want ErrVersionConstraint", err)
	}
	specs, err := m.Specs()
	if err != nil {
		t.Fatalf("Specs: %v", err)
	}

	fs := platform.NewFS(true)
	g := generate.New(generate.Options{Root: env.ProjectDir, Layout: layout.Default(), FS: fs})
	reports, err := g.RunAll(specs)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}

	invoice := filepath.Join(env.ProjectDir, "Audree.DMS.API.Model", "Invoice.cs")
	if ok, _ := afero.Exists(fs, invoice); !ok {
		t.Errorf("expected %s in the overlay", invoice)
	}
	assertFileNotExists(t, invoice)

	if got := readFile(t, filepath.Join(env.ProjectDir, layout.Default().Registration.File)); got != configurator {
		t.Errorf("dry run modified the registration file:\n%s", got)
	}
}
