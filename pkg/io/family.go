package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	ferrors "github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
)

// namespace scopes the name-based UUIDs assigned to records without ids.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/familytower"))

// ReadFamily decodes a snapshot from r, fills missing ids and marriage
// types, and returns it. ReadFamily does not close r.
func ReadFamily(r io.Reader, format Format) (family.Family, error) {
	var f family.Family
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&f); err != nil {
			return family.Family{}, ferrors.Wrap(ferrors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
			return family.Family{}, ferrors.Wrap(ferrors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	default:
		return family.Family{}, ferrors.New(ferrors.ErrCodeInvalidFormat, "unknown snapshot format %q", format)
	}
	Normalize(&f)
	return f, nil
}

// ImportFamily reads the snapshot file at path.
func ImportFamily(path string) (family.Family, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return family.Family{}, err
	}
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return family.Family{}, ferrors.Wrap(ferrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return family.Family{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	f, err := ReadFamily(file, format)
	if err != nil {
		return family.Family{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// WriteFamily encodes f to w.
func WriteFamily(w io.Writer, f family.Family, format Format) error {
	if f.People == nil {
		f.People = []family.Person{}
	}
	if f.Marriages == nil {
		f.Marriages = []family.Marriage{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	}
	return ferrors.New(ferrors.ErrCodeInvalidFormat, "unknown snapshot format %q", format)
}

// ExportFamily writes f to path in the format implied by its extension.
func ExportFamily(f family.Family, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteFamily(file, f, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Normalize assigns name-based UUIDs to people and marriages without ids
// and infers missing marriage types. It is idempotent.
func Normalize(f *family.Family) {
	for i := range f.People {
		p := &f.People[i]
		if p.ID == "" {
			p.ID = recordID("person", i, p.Name, p.DOB, p.DOD)
		}
	}
	for i := range f.Marriages {
		m := &f.Marriages[i]
		if m.Type == "" {
			if m.HusbandID != "" || len(m.Wives) > 0 {
				m.Type = family.Polygamous
			} else {
				m.Type = family.Monogamous
			}
		}
		if m.ID == "" {
			m.ID = recordID("marriage", i, m.Parties()...)
		}
	}
}

func recordID(kind string, index int, fields ...string) string {
	name := kind + "|" + strconv.Itoa(index) + "|" + strings.Join(fields, "|")
	return uuid.NewSHA1(namespace, []byte(name)).String()
}
