package main

import (
	"io"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vtree/internal/errors"
)

var yamlLine = regexp.MustCompile(`^yaml: line (\d+):`)

// readDocument decodes a YAML or JSON document from path, or from stdin
// when path is "-".
func readDocument(path string, stdin io.Reader) (any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.New("E030").
			WithDetail("Cannot read " + path).
			Wrap(err)
	}
	return decodeDocument(path, data)
}

// decodeDocument decodes data as YAML, which also accepts JSON.
func decodeDocument(name string, data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		e := errors.New("E030").
			WithDetail("Failed to decode " + name + ": " + err.Error()).
			WithSuggestion("Check that the document is valid YAML or JSON")
		if m := yamlLine.FindStringSubmatch(err.Error()); m != nil && name != "-" {
			line, _ := strconv.Atoi(m[1])
			e.WithLocation(name, line, 0)
		}
		return nil, e
	}
	return v, nil
}
