package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/floorlay/floorlay/pkg/errors"
)

// =============================================================================
// Project Serialization API
// =============================================================================

// The wire format is the Project structure serialized as plain structured
// data: nested records and arrays of primitives. There is no binary or
// versioned envelope; field presence must match the model invariants, which
// ReadProject enforces before a snapshot can reach history.

// MarshalProject converts a project to indented JSON bytes.
func MarshalProject(p *Project) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeProjectTo(p, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteProjectFile writes a project to a JSON file.
// The file is created with 0644 permissions.
func WriteProjectFile(p *Project, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeProjectTo(p, f)
}

// WriteProject writes a project as JSON to an io.Writer.
// Use MarshalProject for in-memory serialization or WriteProjectFile for files.
func WriteProject(p *Project, w io.Writer) error {
	return writeProjectTo(p, w)
}

// ReadProjectFile reads a JSON file and returns the decoded, validated project.
func ReadProjectFile(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readProjectFrom(f)
}

// ReadProject decodes a JSON project from an io.Reader.
// Structurally invalid snapshots are rejected with a descriptive failure.
func ReadProject(r io.Reader) (*Project, error) {
	return readProjectFrom(r)
}

// UnmarshalProject deserializes JSON bytes to a validated project.
func UnmarshalProject(data []byte) (*Project, error) {
	return readProjectFrom(bytes.NewReader(data))
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeProjectTo(p *Project, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readProjectFrom(r io.Reader) (*Project, error) {
	var p Project
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode project")
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	if p.Items == nil {
		p.Items = []FurnitureItem{}
	}
	return &p, nil
}

// UnmarshalJSON enforces the placed/unplaced invariant at the wire boundary:
// a position record must carry both coordinates or be omitted entirely.
func (p *Point) UnmarshalJSON(data []byte) error {
	var raw struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.X == nil || raw.Y == nil {
		return errors.New(errors.ErrCodeInvalidSnapshot, "position must carry both x and y")
	}
	p.X, p.Y = *raw.X, *raw.Y
	return nil
}
