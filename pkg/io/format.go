package io

import (
	"path/filepath"
	"strings"

	ferrors "github.com/matzehuels/familytower/pkg/errors"
)

// Format is a snapshot encoding.
type Format string

// Supported snapshot formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", ferrors.New(ferrors.ErrCodeInvalidFormat, "unsupported snapshot file %q (want .json, .yaml or .yml)", path)
}
