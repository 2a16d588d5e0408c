package config

import "flag"

// Flags holds command-line overrides. Empty strings and false leave the
// loaded value alone.
type Flags struct {
	ConfigPath string
	Debug      bool
	LogFile    string
	Validation string
	BufferMode string
	Merge      bool
	Indent     bool
}

// RegisterFlags defines the shared gltftool flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log", "", "Also log to this file")
	fs.StringVar(&f.Validation, "validate", "", "Validation mode: structure, content or none")
	fs.StringVar(&f.BufferMode, "mode", "", "Output buffer mode: embedded, external or binary")
	fs.BoolVar(&f.Merge, "merge", false, "Merge buffers before writing")
	fs.BoolVar(&f.Indent, "indent", false, "Indent JSON output")
	return f
}

func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Validation != "" {
		cfg.Validation.Mode = f.Validation
	}
	if f.BufferMode != "" {
		cfg.Write.BufferMode = f.BufferMode
	}
	if f.Merge {
		cfg.Write.MergeBuffers = true
	}
	if f.Indent {
		cfg.Write.Indent = true
	}
}
