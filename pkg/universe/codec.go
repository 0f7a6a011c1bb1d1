package universe

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/depsolve/pkg/errors"
)

// Format is a serialization format for requests.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported file extension %q (want .toml, .yaml, .yml or .json)", filepath.Ext(path))
}

// Decode reads a request in the given format.
func Decode(r io.Reader, f Format) (*Request, error) {
	var req Request
	var err error
	switch f {
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&req)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&req)
		if err == io.EOF {
			err = nil
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&req)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s request", f)
	}
	return &req, nil
}

// Encode writes req in the given format.
func Encode(w io.Writer, f Format, req *Request) error {
	switch f {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(req)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(req); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(req)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
}

// Load reads the request stored at path.
func Load(path string) (*Request, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "request file %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Decode(file, f)
}

// Save writes req to path, choosing the format from the extension.
func Save(path string, req *Request) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(file, f, req); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
