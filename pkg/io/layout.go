package io

import (
	"encoding/json"
	"fmt"
	"io"

	ferrors "github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/layout"
)

// WriteLayout encodes a layout result as indented JSON.
func WriteLayout(w io.Writer, res *layout.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// ReadLayout decodes a layout result written by [WriteLayout].
func ReadLayout(r io.Reader) (*layout.Result, error) {
	var res layout.Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidFormat, err, "decode layout")
	}
	return &res, nil
}
