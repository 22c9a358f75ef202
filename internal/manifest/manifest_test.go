package manifest

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/audree-labs/layergen/internal/catalog"
)

func testPath(name string) string {
	return filepath.Join("testdata", name)
}

func TestLoadFileValid(t *testing.T) {
	m, err := LoadFile(afero.NewOsFs(), testPath("valid.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ">= 0.1.0", m.Requires)
	require.Len(t, m.Entities, 3)

	specs, err := m.Specs()
	require.NoError(t, err)
	require.Len(t, specs, 3)

	assert.Equal(t, "Product", specs[0].Name())
	assert.Equal(t, []catalog.Operation{catalog.GetAll, catalog.GetByID, catalog.Create}, specs[0].Operations().Operations())
	assert.Equal(t, catalog.FullSet(), specs[1].Operations())
	assert.Zero(t, specs[2].Operations().Len())
}

func TestLoadFileInvalid(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"invalid-operation.yaml", "line 3: entities[0] (Product).operations[1]: "},
		{"invalid-name.yaml", "line 2: entities[0] (Product Line).name: "},
		{"invalid-extra-field.yaml", "line 2: entities[0] (Product): "},
		{"invalid-empty.yaml", "line 1: entities: "},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := LoadFile(afero.NewOsFs(), testPath(tt.file))
			require.ErrorIs(t, err, ErrInvalidManifest)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(afero.NewMemMapFs(), "/nope.yaml")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidManifest)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("entities: [name: {"))
	assert.ErrorIs(t, err, ErrInvalidManifest)
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	_, err := Parse(nil)
	assert.ErrorIs(t, err, ErrInvalidManifest)
}

func TestSpecsRejectsDuplicates(t *testing.T) {
	m, err := LoadFile(afero.NewOsFs(), testPath("duplicate.yaml"))
	require.NoError(t, err)

	_, err = m.Specs()
	require.ErrorIs(t, err, ErrInvalidManifest)
	assert.Contains(t, err.Error(), "Product")
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		name     string
		requires string
		version  string
		wantErr  error
	}{
		{"no constraint", "", "0.1.0", nil},
		{"satisfied", ">= 1.2.0", "1.3.0", nil},
		{"v prefix", "^1.0.0", "v1.4.2", nil},
		{"too old", ">= 2.0.0", "1.9.9", ErrVersionConstraint},
		{"dev build", ">= 2.0.0", "dev", nil},
		{"bad constraint", "not-a-range", "1.0.0", ErrInvalidManifest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Manifest{Requires: tt.requires}).CheckVersion(tt.version)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateReportsIssues(t *testing.T) {
	issues, err := Validate([]byte("entities:\n  - operations: all\n"))
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, "required", issues[0].Keyword)
	assert.Equal(t, "entities[0]", issues[0].Location)
	assert.Empty(t, issues[0].Entity)
	assert.Equal(t, 2, issues[0].Line)
}

func TestValidateAcceptsOperationsKeyword(t *testing.T) {
	issues, err := Validate([]byte("entities:\n  - name: Product\n    operations: all\n"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidateOperationsReportsMatchingBranch(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		location string
		line     int
	}{
		{
			name:     "keyword in upper case",
			doc:      "entities:\n  - name: Product\n    operations: ALL\n",
			location: "entities[0] (Product).operations",
			line:     3,
		},
		{
			name:     "unknown name in list",
			doc:      "entities:\n  - name: Order\n  - name: Product\n    operations:\n      - GetAll\n      - Delete\n",
			location: "entities[1] (Product).operations[1]",
			line:     6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, err := Validate([]byte(tt.doc))
			require.NoError(t, err)

			require.Len(t, issues, 1, "%v", issues)
			assert.Equal(t, "enum", issues[0].Keyword)
			assert.Equal(t, tt.location, issues[0].Location)
			assert.Equal(t, "Product", issues[0].Entity)
			assert.Equal(t, tt.line, issues[0].Line)
		})
	}
}

func TestValidateEmptyDocument(t *testing.T) {
	issues, err := Validate(nil)
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, "type", issues[0].Keyword)
	assert.Empty(t, issues[0].Location)
	assert.Zero(t, issues[0].Line)
}

func TestIssueString(t *testing.T) {
	assert.Equal(t, "missing entities", Issue{Message: "missing entities"}.String())
	assert.Equal(t, "line 4: entities[1] (Order).name: bad",
		Issue{Line: 4, Location: "entities[1] (Order).name", Message: "bad"}.String())
}

func TestOperationsKeywordIsLowerCaseOnly(t *testing.T) {
	var m Manifest
	err := yaml.Unmarshal([]byte("entities:\n  - name: Product\n    operations: ALL\n"), &m)
	require.Error(t, err)

	require.NoError(t, yaml.Unmarshal([]byte("entities:\n  - name: Product\n    operations: all\n"), &m))
	assert.True(t, m.Entities[0].Operations.All)

	_, err = Parse([]byte("entities:\n  - name: Product\n    operations: All\n"))
	assert.ErrorIs(t, err, ErrInvalidManifest)
}
