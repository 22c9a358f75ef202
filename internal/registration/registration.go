package registration

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/spf13/afero"

	"github.com/audree-labs/layergen/internal/entity"
	"github.com/audree-labs/layergen/internal/layout"
)

var (
	// ErrAnchorNotFound is reported for each anchor method that could not be patched.
	ErrAnchorNotFound = errors.New("registration anchor not found")
	// ErrRegistrationFileMissing is returned by PatchFile when the file does not exist.
	ErrRegistrationFileMissing = errors.New("registration file not found")
)

// Status is the overall outcome of a patch. The zero value means no patch
// was attempted.
type Status int

const (
	// Applied means at least one anchor received its binding line.
	Applied Status = iota + 1
	// AlreadyPresent means the entity is already registered; nothing changed.
	AlreadyPresent
	// AnchorNotFound means no anchor could be patched.
	AnchorNotFound
)

func (s Status) String() string {
	switch s {
	case 0:
		return "not attempted"
	case Applied:
		return "applied"
	case AlreadyPresent:
		return "already present"
	case AnchorNotFound:
		return "anchor not found"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Edit is one binding line destined for one anchor method.
type Edit struct {
	Anchor string
	Line   string
}

// AnchorIssue names an anchor that was left untouched and why.
type AnchorIssue struct {
	Anchor string
	Reason string
}

// Result is the outcome of Patch. Text is the full file content after the
// patch, equal to the input unless Status is Applied.
type Result struct {
	Status  Status
	Text    string
	Applied []Edit
	Missing []AnchorIssue
}

// Err joins one ErrAnchorNotFound per missing anchor, or returns nil.
func (r Result) Err() error {
	var errs []error
	for _, m := range r.Missing {
		errs = append(errs, fmt.Errorf("%w: %s (%s)", ErrAnchorNotFound, m.Anchor, m.Reason))
	}
	return errors.Join(errs...)
}

// Patcher inserts repository and business bindings into a dependency
// registration file. It edits raw text and only understands anchors shaped as
//
//	public static void <Anchor>(this IServiceCollection services)
//	{
//	    ...
//	}
//
// The anchor body ends at the first closing brace, so a body that already
// contains a nested block is reported instead of patched.
type Patcher struct {
	reg    layout.Registration
	logger *slog.Logger
}

// NewPatcher creates a Patcher for the anchors and lifetime in reg. A nil
// logger discards log output.
func NewPatcher(reg layout.Registration, logger *slog.Logger) *Patcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Patcher{reg: reg, logger: logger}
}

// Edits returns the two edits for spec: repository binding first, then business.
func (p *Patcher) Edits(spec entity.Spec) []Edit {
	return []Edit{
		{Anchor: p.reg.RepositoryAnchor, Line: p.binding(spec.RepositoryContract(), spec.RepositoryImpl())},
		{Anchor: p.reg.BusinessAnchor, Line: p.binding(spec.BusinessContract(), spec.BusinessImpl())},
	}
}

func (p *Patcher) binding(contract, impl string) string {
	return fmt.Sprintf("services.Add%s<%s, %s>();", p.reg.Lifetime, contract, impl)
}

// Inspect reports the anchors in text that Patch could not use.
func (p *Patcher) Inspect(text string) []AnchorIssue {
	var issues []AnchorIssue
	for _, anchor := range []string{p.reg.RepositoryAnchor, p.reg.BusinessAnchor} {
		if _, reason := locate(text, anchor); reason != "" {
			issues = append(issues, AnchorIssue{Anchor: anchor, Reason: reason})
		}
	}
	return issues
}

// Registered reports whether text already mentions the repository or
// business contract of spec as a whole identifier.
func Registered(spec entity.Spec, text string) bool {
	re := regexp.MustCompile(`\b(?:` + regexp.QuoteMeta(spec.RepositoryContract()) + `|` + regexp.QuoteMeta(spec.BusinessContract()) + `)\b`)
	return re.MatchString(text)
}

// Patch inserts the bindings for spec into text. It never fails: anchors
// that cannot be patched are listed in Result.Missing.
func (p *Patcher) Patch(spec entity.Spec, text string) Result {
	if Registered(spec, text) {
		p.logger.Info("dependencies already registered", "entity", spec.Name())
		return Result{Status: AlreadyPresent, Text: text}
	}

	res := Result{Text: text}
	nl := lineEnding(text)

	for _, edit := range p.Edits(spec) {
		updated, reason := insertBinding(res.Text, edit, nl)
		if reason != "" {
			p.logger.Warn("anchor not patched", "anchor", edit.Anchor, "reason", reason)
			res.Missing = append(res.Missing, AnchorIssue{Anchor: edit.Anchor, Reason: reason})
			continue
		}
		res.Text = updated
		res.Applied = append(res.Applied, edit)
	}

	if len(res.Applied) == 0 {
		res.Status = AnchorNotFound
		res.Text = text
		return res
	}
	res.Status = Applied
	return res
}

// PatchFile reads the registration file at path, patches it, and writes it
// back when the patch applied. The returned Result is valid even when the
// write fails.
func (p *Patcher) PatchFile(fsys afero.Fs, path string, spec entity.Spec) (Result, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrRegistrationFileMissing, path)
		}
		return Result{}, fmt.Errorf("reading %s: %w", path, err)
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Result{}, fmt.Errorf("reading %s: %w", path, err)
	}

	res := p.Patch(spec, string(data))
	if res.Status != Applied {
		return res, nil
	}

	if err := afero.WriteFile(fsys, path, []byte(res.Text), info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("writing %s: %w", path, err)
	}
	p.logger.Info("registration file updated", "path", path, "anchors", len(res.Applied))
	return res, nil
}
