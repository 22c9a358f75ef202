//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const configurator = `using Microsoft.Extensions.DependencyInjection;

namespace Audree.DMS.API.DependencyConfigurations
{
    public static class DependencyConfigurator
    {
        public static void InjectRepositoryDependencies(this IServiceCollection services)
        {
            services.AddTransient<IUserRepository, UserRepository>();
        }

        public static void InjectBusinessDependencies(this IServiceCollection services)
        {
            services.AddTransient<IUserBusiness, UserBusiness>();
        }
    }
}
`

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME, so user settings stay sandboxed
	ProjectDir string // a mock solution root
}

// setupTestEnv creates a sandboxed home and a solution skeleton with the
// API project and its dependency configurator.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)

	writeFile(t, filepath.Join(env.ProjectDir, "Audree.DMS.API", "DependencyConfigurations", "DependencyConfigurator.cs"), configurator)
	for _, dir := range []string{"Audree.DMS.API.Business", "Audree.DMS.API.Repository", "Audree.DMS.API.Model"} {
		if err := os.MkdirAll(filepath.Join(env.ProjectDir, dir), 0755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}

	return env
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readFile returns the file content or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
