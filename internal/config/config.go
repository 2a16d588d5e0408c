// Package config loads gltftool settings and turns them into glTF codec
// settings.
package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-gltf/internal/logger"
	"github.com/Faultbox/midgard-gltf/pkg/gltf"
)

// Config holds all gltftool settings.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Read       ReadConfig       `yaml:"read"`
	Write      WriteConfig      `yaml:"write"`
	Validation ValidationConfig `yaml:"validation"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	LogFile string `yaml:"log_file"`
}

// ReadConfig controls how input files are loaded.
type ReadConfig struct {
	// External allows buffers and images referenced by relative uri to be
	// read from the input file's directory.
	External bool `yaml:"external"`
}

// WriteConfig controls how output files are written.
type WriteConfig struct {
	BufferMode   string `yaml:"buffer_mode"` // embedded, external or binary
	MergeBuffers bool   `yaml:"merge_buffers"`
	Indent       bool   `yaml:"indent"`
}

// ValidationConfig controls validation on read and write.
type ValidationConfig struct {
	Mode string `yaml:"mode"` // structure, content or none
	// Extensions are treated as supported in addition to the built-in ones.
	Extensions []string `yaml:"extensions"`
}

// Default returns a Config with the default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Read: ReadConfig{
			External: true,
		},
		Write: WriteConfig{
			BufferMode:   gltf.BufferBinary.String(),
			MergeBuffers: true,
		},
		Validation: ValidationConfig{
			Mode: "structure",
		},
	}
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if _, ok := gltf.ParseBufferMode(c.Write.BufferMode); !ok {
		return fmt.Errorf("write.buffer_mode: unknown mode %q", c.Write.BufferMode)
	}
	if _, err := c.Validation.ValidationMode(); err != nil {
		return err
	}
	return nil
}

// ValidationMode parses Mode.
func (v ValidationConfig) ValidationMode() (gltf.ValidationMode, error) {
	switch v.Mode {
	case "", "structure":
		return gltf.ValidateStructure, nil
	case "content":
		return gltf.ValidateContent, nil
	case "none":
		return gltf.ValidateNone, nil
	}
	return 0, fmt.Errorf("validation.mode: unknown mode %q", v.Mode)
}

// Registry returns the default extension registry extended with
// Extensions, or the default registry itself when there are none.
func (v ValidationConfig) Registry() *gltf.Registry {
	if len(v.Extensions) == 0 {
		return gltf.DefaultRegistry
	}
	reg := gltf.DefaultRegistry.Clone()
	for _, name := range v.Extensions {
		reg.RegisterSupported(name)
	}
	return reg
}

// LoggerOptions converts the logging section for package logger.
func (c *Config) LoggerOptions() logger.Options {
	opts := logger.Options{
		Level:   c.Logging.Level,
		Format:  c.Logging.Format,
		Console: true,
	}
	if c.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(c.Logging.LogFile)
	}
	return opts
}

// ReadSettings builds codec read settings. resolver may be nil; it is
// dropped when external reads are disabled.
func (c *Config) ReadSettings(resolver gltf.FileResolver, log *zap.Logger) (*gltf.ReadSettings, error) {
	mode, err := c.Validation.ValidationMode()
	if err != nil {
		return nil, err
	}
	if !c.Read.External {
		resolver = func(uri string) ([]byte, error) {
			return nil, fmt.Errorf("%w: external reads are disabled (%s)", gltf.ErrMissingResolver, uri)
		}
	}
	return &gltf.ReadSettings{
		Resolver:   resolver,
		Registry:   c.Validation.Registry(),
		Validation: mode,
		Logger:     log,
	}, nil
}

// WriteSettings builds codec write settings.
func (c *Config) WriteSettings(log *zap.Logger) (*gltf.WriteSettings, error) {
	mode, err := c.Validation.ValidationMode()
	if err != nil {
		return nil, err
	}
	bufferMode, ok := gltf.ParseBufferMode(c.Write.BufferMode)
	if !ok {
		return nil, fmt.Errorf("write.buffer_mode: unknown mode %q", c.Write.BufferMode)
	}
	return &gltf.WriteSettings{
		BufferMode:   bufferMode,
		MergeBuffers: c.Write.MergeBuffers,
		Indent:       c.Write.Indent,
		Registry:     c.Validation.Registry(),
		Validation:   mode,
		Logger:       log,
	}, nil
}
