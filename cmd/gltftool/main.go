// gltftool is a CLI utility for inspecting, validating and converting glTF
// 2.0 files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-gltf/internal/config"
	"github.com/Faultbox/midgard-gltf/internal/logger"
)

// errIssues reports that validation found errors; they are already printed.
var errIssues = errors.New("validation failed")

type command func(args []string, stdout io.Writer) error

var commands = map[string]command{
	"info":     cmdInfo,
	"validate": cmdValidate,
	"convert":  cmdConvert,
	"merge":    cmdMerge,
	"dump":     cmdDump,
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	name, args := os.Args[1], os.Args[2:]
	switch name {
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", name)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	err := cmd(args, os.Stdout)
	logger.Sync()
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	case errors.Is(err, errIssues):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `gltftool - glTF 2.0 file utility

Usage:
  gltftool <command> [options]

Commands:
  info <file>                  Show document summary
  validate <file>              Validate and list issues
  convert <input> <output>     Rewrite in another layout (.glb, embedded or external .gltf)
  merge <input> <output>       Merge all buffers into one and write
  dump <file> <accessor>       Print accessor values

Common options:
  -config <path>     Config file (default ./gltftool.yaml)
  -debug             Debug logging
  -log <path>        Also log to a rotating file
  -validate <mode>   structure, content or none
  -mode <mode>       Output buffers: embedded, external or binary
  -merge             Merge buffers before writing
  -indent            Indent JSON output

Examples:
  gltftool info scene.glb
  gltftool validate -validate content scene.gltf
  gltftool convert scene.gltf scene.glb
  gltftool convert -mode external -indent scene.glb out/scene.gltf
  gltftool dump -n 10 scene.glb 0`)
}

// setup parses the shared flags, loads the config and installs the logger.
func setup(fs *flag.FlagSet, args []string) (*config.Config, *zap.Logger, error) {
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(cfg.LoggerOptions()); err != nil {
		return nil, nil, err
	}
	return cfg, logger.Log, nil
}

// usageError reports missing positional arguments.
func usageError(fs *flag.FlagSet, usage string) error {
	return fmt.Errorf("usage: gltftool %s %s", fs.Name(), usage)
}
