package gltf

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Severity ranks an Issue.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Stage is how far validation got. Each stage requires the previous one to
// pass without errors.
type Stage int

const (
	StageUnvalidated Stage = iota
	StageAssetChecked
	StageExtensionsChecked
	StageStructurallyValidated
	StageContentValidated
)

var stageNames = [...]string{"unvalidated", "asset checked", "extensions checked", "structurally validated", "content validated"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// ValidationMode selects how deep Validate goes.
type ValidationMode int

const (
	// ValidateStructure checks the asset, extensions and every reference.
	ValidateStructure ValidationMode = iota
	// ValidateContent also reads buffer data: accessor ranges, bounds,
	// sparse and vertex indices.
	ValidateContent
	// ValidateNone skips validation on read.
	ValidateNone
)

// Issue is one validation finding. Kind is one of the Err sentinel values
// of this package, so errors.Is works on an Issue and on Report.Err.
type Issue struct {
	Kind       error
	Severity   Severity
	Collection Collection
	Index      int
	Path       string
	Message    string
}

// Location renders where the issue was found, e.g. "nodes[3].children".
func (i Issue) Location() string {
	var b strings.Builder
	b.WriteString(string(i.Collection))
	if i.Index >= 0 && i.Collection != CollectionDocument && i.Collection != CollectionAsset {
		fmt.Fprintf(&b, "[%d]", i.Index)
	}
	if i.Path != "" {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(i.Path)
	}
	return b.String()
}

func (i Issue) Error() string {
	loc := i.Location()
	if loc == "" {
		return fmt.Sprintf("%v: %s", i.Kind, i.Message)
	}
	return fmt.Sprintf("%s: %v: %s", loc, i.Kind, i.Message)
}

func (i Issue) Unwrap() error { return i.Kind }

// Report collects the issues of one Validate run.
type Report struct {
	Stage  Stage
	Issues []Issue
}

// Errors returns the error-severity issues.
func (r *Report) Errors() []Issue { return r.filter(SeverityError) }

// Warnings returns the warning-severity issues.
func (r *Report) Warnings() []Issue { return r.filter(SeverityWarning) }

// HasErrors reports whether any error-severity issue was found.
func (r *Report) HasErrors() bool { return len(r.Errors()) > 0 }

// Err combines the error-severity issues, or returns nil.
func (r *Report) Err() error {
	var err error
	for _, issue := range r.Errors() {
		err = multierr.Append(err, issue)
	}
	return err
}

func (r *Report) filter(s Severity) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == s {
			out = append(out, issue)
		}
	}
	return out
}

// Validate checks the document and returns what it found. reg decides which
// extensions are supported; nil means DefaultRegistry. Validate never
// panics on document content.
func (d *Document) Validate(reg *Registry, mode ValidationMode) *Report {
	if reg == nil {
		reg = DefaultRegistry
	}
	v := &validator{doc: d, reg: reg, report: &Report{}}
	if mode == ValidateNone {
		return v.report
	}

	if !v.checkAsset() {
		return v.report
	}
	v.report.Stage = StageAssetChecked

	if !v.checkExtensions() {
		return v.report
	}
	v.report.Stage = StageExtensionsChecked

	v.checkStructure()
	if v.errors > 0 {
		return v.report
	}
	v.report.Stage = StageStructurallyValidated

	if mode != ValidateContent {
		return v.report
	}
	v.checkContent()
	if v.errors == 0 {
		v.report.Stage = StageContentValidated
	}
	return v.report
}

type validator struct {
	doc    *Document
	reg    *Registry
	report *Report
	errors int
}

func (v *validator) add(sev Severity, kind error, c Collection, index int, path, format string, args ...any) {
	v.report.Issues = append(v.report.Issues, Issue{
		Kind:       kind,
		Severity:   sev,
		Collection: c,
		Index:      index,
		Path:       path,
		Message:    fmt.Sprintf(format, args...),
	})
	if sev == SeverityError {
		v.errors++
	}
}

func (v *validator) errorf(kind error, c Collection, index int, path, format string, args ...any) {
	v.add(SeverityError, kind, c, index, path, format, args...)
}

func (v *validator) warnf(kind error, c Collection, index int, path, format string, args ...any) {
	v.add(SeverityWarning, kind, c, index, path, format, args...)
}

// ref checks that index addresses one of n items. Absent references (-1)
// pass when optional.
func (v *validator) ref(c Collection, index int, path string, target Collection, ref, n int, optional bool) bool {
	if ref == -1 && optional {
		return true
	}
	if ref < 0 || ref >= n {
		v.errorf(ErrInvalidReference, c, index, path, "%s index %d out of range [0:%d]", target, ref, n)
		return false
	}
	return true
}

func (v *validator) checkAsset() bool {
	a := v.doc.Asset
	major, minor, ok := parseVersion(a.Version)
	if !ok {
		v.errorf(ErrInvalidAsset, CollectionAsset, -1, "version", "missing or malformed version %q", a.Version)
		return false
	}
	if major != 2 {
		v.errorf(ErrInvalidAsset, CollectionAsset, -1, "version", "unsupported version %q", a.Version)
		return false
	}
	if a.MinVersion != "" {
		minMajor, minMinor, ok := parseVersion(a.MinVersion)
		if !ok || minMajor != 2 || minMinor > 0 {
			v.errorf(ErrInvalidAsset, CollectionAsset, -1, "minVersion", "unsupported minVersion %q", a.MinVersion)
			return false
		}
	}
	if minor > 0 {
		v.warnf(ErrInvalidAsset, CollectionAsset, -1, "version", "newer minor version %q read as 2.0", a.Version)
	}
	return true
}

func parseVersion(s string) (major, minor int, ok bool) {
	if _, err := fmt.Sscanf(s, "%d.%d", &major, &minor); err != nil {
		return 0, 0, false
	}
	if fmt.Sprintf("%d.%d", major, minor) != s {
		return 0, 0, false
	}
	return major, minor, true
}
