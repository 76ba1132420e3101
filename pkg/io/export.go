package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/manucepeda/materias-electrica/pkg/curriculum"
	"github.com/manucepeda/materias-electrica/pkg/errors"
)

// WriteJSON encodes subjects as an indented JSON catalog.
// The output can be read back with [ReadJSON].
func WriteJSON(subjects []curriculum.Subject, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(encode(subjects)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes subjects as a YAML catalog.
func WriteYAML(subjects []curriculum.Subject, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(encode(subjects)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes subjects to a JSON file at path.
func ExportJSON(subjects []curriculum.Subject, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteJSON(subjects, w) })
}

// Export writes subjects to path, choosing the encoder by extension.
func Export(subjects []curriculum.Subject, path string) error {
	if err := errors.ValidateCatalogPath(path); err != nil {
		return err
	}
	if isYAML(path) {
		return exportFile(path, func(w io.Writer) error { return WriteYAML(subjects, w) })
	}
	return ExportJSON(subjects, path)
}

func exportFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return write(f)
}
