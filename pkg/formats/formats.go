// Package formats provides parsers for Wavefront OBJ and MTL text formats.
package formats

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

// Errors shared by the OBJ and MTL parsers.
var (
	// ErrMalformedInput reports a structurally invalid line: too few
	// numeric fields, a face corner that does not split into
	// vertex/texcoord/normal, or material data before any newmtl.
	ErrMalformedInput = errors.New("malformed input")

	// ErrIndexOutOfRange reports a face corner referencing an entry
	// outside the vertex, texture coordinate, or normal tables.
	ErrIndexOutOfRange = errors.New("face index out of range")
)

// parseVec3 reads three floats following the keyword field. Extra
// fields (such as a w coordinate) are ignored.
func parseVec3(fields []string) (vec3.T, error) {
	if len(fields) < 4 {
		return vec3.T{}, fmt.Errorf("%w: %q expects 3 numeric fields, got %d", ErrMalformedInput, fields[0], len(fields)-1)
	}

	var v vec3.T
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return vec3.T{}, fmt.Errorf("%w: %q is not a number", ErrMalformedInput, fields[i+1])
		}
		v[i] = f
	}
	return v, nil
}

// parseVec2 reads two floats following the keyword field.
func parseVec2(fields []string) (vec2.T, error) {
	if len(fields) < 3 {
		return vec2.T{}, fmt.Errorf("%w: %q expects 2 numeric fields, got %d", ErrMalformedInput, fields[0], len(fields)-1)
	}

	var v vec2.T
	for i := 0; i < 2; i++ {
		f, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return vec2.T{}, fmt.Errorf("%w: %q is not a number", ErrMalformedInput, fields[i+1])
		}
		v[i] = f
	}
	return v, nil
}

// parseFloat reads a single float following the keyword field.
func parseFloat(fields []string) (float64, error) {
	if len(fields) < 2 {
		return 0, fmt.Errorf("%w: %q expects 1 numeric field, got %d", ErrMalformedInput, fields[0], len(fields)-1)
	}

	f, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedInput, fields[1])
	}
	return f, nil
}
