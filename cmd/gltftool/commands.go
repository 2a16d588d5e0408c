package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-gltf/internal/config"
	"github.com/Faultbox/midgard-gltf/pkg/gltf"
)

func load(cfg *config.Config, log *zap.Logger, path string) (*gltf.Document, error) {
	settings, err := cfg.ReadSettings(nil, log)
	if err != nil {
		return nil, err
	}
	return gltf.Load(path, settings)
}

func save(cfg *config.Config, log *zap.Logger, d *gltf.Document, path string) error {
	settings, err := cfg.WriteSettings(log)
	if err != nil {
		return err
	}
	return d.Save(path, settings)
}

func cmdInfo(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	cfg, log, err := setup(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return usageError(fs, "<file>")
	}

	d, err := load(cfg, log, fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "File:       %s\n", fs.Arg(0))
	fmt.Fprintf(stdout, "Version:    %s\n", d.Asset.Version)
	if d.Asset.Generator != "" {
		fmt.Fprintf(stdout, "Generator:  %s\n", d.Asset.Generator)
	}
	if d.Asset.Copyright != "" {
		fmt.Fprintf(stdout, "Copyright:  %s\n", d.Asset.Copyright)
	}
	if s := d.DefaultScene(); s != nil {
		fmt.Fprintf(stdout, "Scene:      %d %q\n", s.LogicalIndex(), s.Name)
	}
	if len(d.ExtensionsUsed) > 0 {
		fmt.Fprintf(stdout, "Extensions: %s\n", strings.Join(d.ExtensionsUsed, ", "))
	}
	if len(d.ExtensionsRequired) > 0 {
		fmt.Fprintf(stdout, "Required:   %s\n", strings.Join(d.ExtensionsRequired, ", "))
	}

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Collections:")
	counts := []struct {
		name  string
		count int
	}{
		{"accessors", len(d.Accessors())},
		{"animations", len(d.Animations())},
		{"buffers", len(d.Buffers())},
		{"bufferViews", len(d.BufferViews())},
		{"cameras", len(d.Cameras())},
		{"images", len(d.Images())},
		{"materials", len(d.Materials())},
		{"meshes", len(d.Meshes())},
		{"nodes", len(d.Nodes())},
		{"samplers", len(d.Samplers())},
		{"scenes", len(d.Scenes())},
		{"skins", len(d.Skins())},
		{"textures", len(d.Textures())},
	}
	for _, c := range counts {
		if c.count > 0 {
			fmt.Fprintf(stdout, "  %-12s %d\n", c.name, c.count)
		}
	}

	if len(d.Buffers()) > 0 {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Buffers:")
		for _, b := range d.Buffers() {
			fmt.Fprintf(stdout, "  [%d] %-16s %d bytes\n", b.LogicalIndex(), b.Name, b.ByteLength())
		}
	}
	return nil
}

func cmdValidate(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	warnings := fs.Bool("w", true, "Also list warnings")
	cfg, log, err := setup(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return usageError(fs, "<file>")
	}

	mode, err := cfg.Validation.ValidationMode()
	if err != nil {
		return err
	}
	unchecked := *cfg
	unchecked.Validation.Mode = "none"
	d, err := load(&unchecked, log, fs.Arg(0))
	if err != nil {
		return err
	}

	report := d.Validate(cfg.Validation.Registry(), mode)
	for _, issue := range report.Issues {
		if issue.Severity == gltf.SeverityWarning && !*warnings {
			continue
		}
		fmt.Fprintf(stdout, "%-7s %s\n", issue.Severity, issue.Error())
	}
	fmt.Fprintf(stdout, "%s: %s, %d errors, %d warnings\n",
		fs.Arg(0), report.Stage, len(report.Errors()), len(report.Warnings()))
	if report.HasErrors() {
		return errIssues
	}
	return nil
}

func cmdConvert(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	cfg, log, err := setup(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return usageError(fs, "<input> <output>")
	}

	d, err := load(cfg, log, fs.Arg(0))
	if err != nil {
		return err
	}
	if err := save(cfg, log, d, fs.Arg(1)); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Converted: %s -> %s\n", fs.Arg(0), fs.Arg(1))
	return nil
}

func cmdMerge(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	cfg, log, err := setup(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return usageError(fs, "<input> <output>")
	}

	d, err := load(cfg, log, fs.Arg(0))
	if err != nil {
		return err
	}
	before := len(d.Buffers())
	if err := d.MergeBuffers(); err != nil {
		return err
	}
	if err := save(cfg, log, d, fs.Arg(1)); err != nil {
		return err
	}
	size := 0
	for _, b := range d.Buffers() {
		size += b.ByteLength()
	}
	fmt.Fprintf(stdout, "Merged %d buffers into %d (%d bytes): %s\n", before, len(d.Buffers()), size, fs.Arg(1))
	return nil
}

func cmdDump(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	limit := fs.Int("n", 0, "Limit output to N elements (0 = all)")
	cfg, log, err := setup(fs, args)
	if err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return usageError(fs, "<file> <accessor>")
	}
	index, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("accessor index %q: %w", fs.Arg(1), err)
	}

	d, err := load(cfg, log, fs.Arg(0))
	if err != nil {
		return err
	}
	if index < 0 || index >= len(d.Accessors()) {
		return fmt.Errorf("accessor %d out of range [0:%d]", index, len(d.Accessors()))
	}
	a := d.Accessors()[index]
	values, err := a.Components()
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Accessor %d %q: %d x %s %s", index, a.Name, a.Count, a.Dimensions, a.Encoding)
	if a.Normalized {
		fmt.Fprint(stdout, " normalized")
	}
	if a.Sparse != nil {
		fmt.Fprintf(stdout, " sparse(%d)", a.Sparse.Count)
	}
	fmt.Fprintln(stdout)

	n := values.Len()
	if *limit > 0 {
		n = min(n, *limit)
	}
	comps := values.Dimensions().Components()
	parts := make([]string, comps)
	for i := range n {
		for c := range comps {
			parts[c] = strconv.FormatFloat(values.Value(i, c), 'g', -1, 64)
		}
		fmt.Fprintf(stdout, "%6d: %s\n", i, strings.Join(parts, " "))
	}
	if n < values.Len() {
		fmt.Fprintf(stdout, "(%d of %d elements, use -n 0 for all)\n", n, values.Len())
	}
	return nil
}
