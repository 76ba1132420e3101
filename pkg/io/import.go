package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/manucepeda/materias-electrica/pkg/errors"
)

// ReadJSON decodes a JSON catalog from r.
//
// Malformed JSON, or a top-level value that is neither a list nor an object
// wrapping one, is an error. Problems with individual entries are not: the
// entry is dropped or adjusted and reported in [Document.Warnings].
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var data any
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode json")
	}
	return decode(data)
}

// ReadYAML decodes a YAML catalog from r. See [ReadJSON].
func ReadYAML(r io.Reader) (*Document, error) {
	var data any
	if err := yaml.NewDecoder(r).Decode(&data); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode yaml")
	}
	return decode(data)
}

// ImportJSON reads the JSON catalog at path.
func ImportJSON(path string) (*Document, error) {
	return importFile(path, ReadJSON)
}

// Import reads the catalog at path, choosing the decoder by extension
// (.json, .yaml or .yml).
func Import(path string) (*Document, error) {
	if err := errors.ValidateCatalogPath(path); err != nil {
		return nil, err
	}
	if isYAML(path) {
		return importFile(path, ReadYAML)
	}
	return importFile(path, ReadJSON)
}

func importFile(path string, read func(io.Reader) (*Document, error)) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "catalog %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	doc, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
