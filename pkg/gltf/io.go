package gltf

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DirResolver resolves relative uris against dir. Percent-encoded uris are
// decoded; uris that escape dir are rejected.
func DirResolver(dir string) FileResolver {
	return func(uri string) ([]byte, error) {
		path, err := localPath(dir, uri)
		if err != nil {
			return nil, err
		}
		return os.ReadFile(path)
	}
}

// DirWriter writes resources into dir, creating subdirectories as needed.
func DirWriter(dir string) FileWriter {
	return func(uri string, data []byte) error {
		path, err := localPath(dir, uri)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		return os.WriteFile(path, data, 0o644)
	}
}

func localPath(dir, uri string) (string, error) {
	rel, err := url.PathUnescape(uri)
	if err != nil {
		return "", fmt.Errorf("gltf: bad uri %q: %w", uri, err)
	}
	rel = filepath.FromSlash(rel)
	if filepath.IsAbs(rel) || strings.Contains(uri, "://") || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("gltf: uri %q is not a local relative path", uri)
	}
	return filepath.Join(dir, rel), nil
}

// Load reads a .gltf or .glb file. External resources are resolved next to
// the file unless settings supplies a Resolver.
func Load(path string, settings *ReadSettings) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gltf: read %s: %w", path, err)
	}
	s := ReadSettings{}
	if settings != nil {
		s = *settings
	}
	if s.Resolver == nil {
		s.Resolver = DirResolver(filepath.Dir(path))
	}
	d, err := Decode(data, &s)
	if err != nil {
		return nil, fmt.Errorf("gltf: load %s: %w", path, err)
	}
	s.logger().Debug("loaded glTF file", zap.String("path", path), zap.Int("bytes", len(data)))
	return d, nil
}

// Save writes the document to path. A .glb extension selects BufferBinary;
// any other extension uses settings.BufferMode, with BufferBinary falling
// back to BufferEmbedded. External resources are written next to the file
// and named after it unless settings says otherwise.
func (d *Document) Save(path string, settings *WriteSettings) error {
	s := WriteSettings{}
	if settings != nil {
		s = *settings
	}
	ext := filepath.Ext(path)
	switch {
	case strings.EqualFold(ext, ".glb"):
		s.BufferMode = BufferBinary
	case s.BufferMode == BufferBinary:
		s.BufferMode = BufferEmbedded
	}
	if s.Writer == nil {
		s.Writer = DirWriter(filepath.Dir(path))
	}
	if s.BaseName == "" {
		s.BaseName = strings.TrimSuffix(filepath.Base(path), ext)
	}

	data, err := d.Encode(&s)
	if err != nil {
		return fmt.Errorf("gltf: save %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("gltf: save %s: %w", path, err)
	}
	s.logger().Debug("saved glTF file", zap.String("path", path), zap.Stringer("mode", s.BufferMode), zap.Int("bytes", len(data)))
	return nil
}
