package io

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupportedFormat is returned for file extensions no codec handles.
var ErrUnsupportedFormat = errors.New("unsupported scene format")

// Format identifies an on-disk scene encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatGLTF
	FormatGLB
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatGLTF:
		return "gltf"
	case FormatGLB:
		return "glb"
	}
	return "unknown"
}

// IsGLTF reports whether f is one of the glTF encodings.
func (f Format) IsGLTF() bool {
	return f == FormatGLTF || f == FormatGLB
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".gltf":
		return FormatGLTF, nil
	case ".glb":
		return FormatGLB, nil
	}
	return FormatJSON, errors.Wrapf(ErrUnsupportedFormat, "%s", path)
}
