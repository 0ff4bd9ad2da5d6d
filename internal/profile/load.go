package profile

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"permutegen/internal/errors"
)

// Load reads a YAML profile file and overlays it on the defaults.
// Fields absent from the file keep their default values; unknown fields
// are rejected.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapProfileError(path, "read", err)
	}

	p := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(p); err != nil {
		// An empty profile file selects the defaults
		if err == io.EOF {
			return p, nil
		}
		return nil, errors.WrapProfileError(path, "parse", err).
			WithSuggestion("Check the profile against the documented fields")
	}

	return p, nil
}

// LoadOrDefault loads the profile at path, or returns the defaults when no
// path is given
func LoadOrDefault(path string) (*Profile, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
