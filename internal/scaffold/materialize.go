package scaffold

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
)

// WriteResult is the outcome of writing one artifact.
type WriteResult struct {
	Artifact   Artifact
	Path       string // full path under the project root
	CreatedDir string // parent directory created for this artifact, if any
	Err        error
}

// Materializer writes artifacts under a project root.
type Materializer struct {
	fs     afero.Fs
	root   string
	logger *slog.Logger
}

// NewMaterializer creates a Materializer writing through fsys. A nil logger
// discards log output.
func NewMaterializer(fsys afero.Fs, root string, logger *slog.Logger) *Materializer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Materializer{fs: fsys, root: root, logger: logger}
}

// Write creates each artifact's parent directory and writes its content,
// replacing any existing file. A failed artifact does not stop the others.
func (m *Materializer) Write(artifacts []Artifact) []WriteResult {
	results := make([]WriteResult, 0, len(artifacts))
	for _, a := range artifacts {
		results = append(results, m.writeOne(a))
	}
	return results
}

func (m *Materializer) writeOne(a Artifact) WriteResult {
	path := filepath.Join(m.root, a.RelativePath)
	res := WriteResult{Artifact: a, Path: path}

	dir := filepath.Dir(path)
	exists, err := afero.DirExists(m.fs, dir)
	if err != nil {
		res.Err = fmt.Errorf("checking directory %s: %w", dir, err)
		return res
	}
	if !exists {
		if err := m.fs.MkdirAll(dir, 0755); err != nil {
			res.Err = fmt.Errorf("creating directory %s: %w", dir, err)
			m.logger.Error("create directory failed", "path", dir, "error", err)
			return res
		}
		res.CreatedDir = dir
		m.logger.Debug("created directory", "path", dir)
	}

	if err := afero.WriteFile(m.fs, path, []byte(a.Content), 0644); err != nil {
		res.Err = fmt.Errorf("writing %s: %w", path, err)
		m.logger.Error("write artifact failed", "kind", a.Kind.String(), "path", path, "error", err)
		return res
	}

	m.logger.Debug("wrote artifact", "kind", a.Kind.String(), "path", path, "bytes", len(a.Content))
	return res
}
