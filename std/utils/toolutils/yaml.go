package toolutils

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// ReadYaml decodes a YAML file into dest. Unknown fields are rejected.
func ReadYaml(dest any, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("unable to open description file: %w", err)
	}
	defer f.Close()

	return DecodeYaml(dest, f)
}

// DecodeYaml decodes a single YAML document from r into dest.
func DecodeYaml(dest any, r io.Reader) error {
	dec := yaml.NewDecoder(r, yaml.Strict())
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("unable to parse description: %w", err)
	}
	return nil
}

// WriteYaml encodes v as a YAML document to w.
func WriteYaml(w io.Writer, v any) error {
	return yaml.NewEncoder(w, yaml.IndentSequence(true)).Encode(v)
}
