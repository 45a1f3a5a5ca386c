package test

import (
	"embed"
	"io/fs"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed cases
var casesFS embed.FS

type TestCase struct {
	// Description is a simple description for the test case.
	Description string
	// Documents is a list of all wire documents to decode in this test case.
	Documents []Document
}

type Document struct {
	// Input is the extended JSON to decode.
	Input string
	// Output is the expected extended JSON after decoding and encoding the input.
	// It defaults to the input.
	Output string
	// Fields maps dotted paths to the expected kind of the value at that path.
	Fields map[string]string
	// Error is the expected error type name when the input is malformed.
	Error string
}

// Expected returns the expected encoding of the document.
func (d Document) Expected() string {
	if d.Output == "" {
		return d.Input
	}
	return d.Output
}

// TestCasePaths returns a list of all test case file paths.
func TestCasePaths() (paths []string, _ error) {
	return paths, fs.WalkDir(casesFS, "cases", func(path string, d fs.DirEntry, err error) error {
		if filepath.Ext(path) == ".yaml" {
			paths = append(paths, path)
		}
		return err
	})
}

// LoadTestCase loads and parses a test case file.
func LoadTestCase(path string) (*TestCase, error) {
	data, err := fs.ReadFile(casesFS, path)
	if err != nil {
		return nil, err
	}
	var testCase TestCase
	if err := yaml.Unmarshal(data, &testCase); err != nil {
		return nil, err
	}
	return &testCase, nil
}
