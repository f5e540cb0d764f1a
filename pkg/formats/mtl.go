// Package formats provides parsers for Wavefront OBJ and MTL text formats.
// MTL (material library) parser for named reflectance records.
package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ungerik/go3d/float64/vec3"
)

// Material is one named entry of an MTL library. Components missing
// from the source keep the defaults: black colors and exponent 1.
type Material struct {
	Name     string
	Ambient  vec3.T
	Diffuse  vec3.T
	Specular vec3.T
	Exponent float64
}

// MTL is a parsed material library. Materials holds first-seen file
// order, which is also the canonical emission order downstream.
type MTL struct {
	Materials []Material

	index map[string]int
}

// Lookup resolves a material name to its position in Materials.
func (m *MTL) Lookup(name string) (int, bool) {
	if m == nil {
		return 0, false
	}
	i, ok := m.index[name]
	return i, ok
}

// ParseMTL parses an MTL material library from raw bytes.
func ParseMTL(data []byte) (*MTL, error) {
	lib := &MTL{index: make(map[string]int)}
	cur := -1

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: %w: \"newmtl\" expects a material name", lineNum, ErrMalformedInput)
			}
			name := fields[1]
			if _, exists := lib.index[name]; exists {
				return nil, fmt.Errorf("line %d: %w: material %q already defined", lineNum, ErrMalformedInput, name)
			}
			lib.Materials = append(lib.Materials, Material{Name: name, Exponent: 1})
			cur = len(lib.Materials) - 1
			lib.index[name] = cur

		case "Ka", "Kd", "Ks", "Ns":
			if cur < 0 {
				return nil, fmt.Errorf("line %d: %w: %q before any newmtl", lineNum, ErrMalformedInput, fields[0])
			}

			mat := &lib.Materials[cur]
			var err error
			switch fields[0] {
			case "Ka":
				mat.Ambient, err = parseVec3(fields)
			case "Kd":
				mat.Diffuse, err = parseVec3(fields)
			case "Ks":
				mat.Specular, err = parseVec3(fields)
			case "Ns":
				mat.Exponent, err = parseFloat(fields)
			}
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning MTL data: %w", err)
	}

	return lib, nil
}

// ParseMTLFile parses an MTL material library from disk.
func ParseMTLFile(path string) (*MTL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading MTL file: %w", err)
	}
	return ParseMTL(data)
}
