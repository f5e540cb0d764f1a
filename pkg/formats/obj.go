// Package formats provides parsers for Wavefront OBJ and MTL text formats.
// OBJ (geometry) parser producing raw, untransformed tables.
package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ungerik/go3d/float64/vec2"
	"github.com/ungerik/go3d/float64/vec3"
)

// Corner is one face corner resolved to 0-based table indices.
type Corner struct {
	Vert int
	Tex  int
	Norm int
}

// Triangle is one triangulated face tagged with the index of the
// material active when its face line appeared, or -1 when no usemtl
// preceded it.
type Triangle struct {
	Corners  [3]Corner
	Material int
}

// OBJ holds the parsed geometry tables in file order. Values are raw:
// centering, scaling, V-flip, and normal normalization happen in a
// later pass, so parsing twice yields identical tables.
type OBJ struct {
	Vertices  []vec3.T
	TexCoords []vec2.T
	Normals   []vec3.T
	Triangles []Triangle
}

// ParseOBJ parses OBJ geometry from raw bytes. usemtl directives are
// resolved against lib; a name the library does not contain fails the
// parse. Quad faces A,B,C,D are split into triangles (A,B,C) and
// (A,D,C) on ingestion.
func ParseOBJ(data []byte, lib *MTL) (*OBJ, error) {
	obj := &OBJ{}
	curMat := -1

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			obj.Vertices = append(obj.Vertices, v)

		case "vt":
			vt, err := parseVec2(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			obj.TexCoords = append(obj.TexCoords, vt)

		case "vn":
			vn, err := parseVec3(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			obj.Normals = append(obj.Normals, vn)

		case "usemtl":
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: %w: \"usemtl\" expects a material name", lineNum, ErrMalformedInput)
			}
			idx, ok := lib.Lookup(fields[1])
			if !ok {
				return nil, fmt.Errorf("line %d: %w: unknown material %q", lineNum, ErrMalformedInput, fields[1])
			}
			curMat = idx

		case "f":
			tris, err := parseFace(fields, obj, curMat)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			obj.Triangles = append(obj.Triangles, tris...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning OBJ data: %w", err)
	}

	return obj, nil
}

// ParseOBJFile parses an OBJ geometry file from disk.
func ParseOBJFile(path string, lib *MTL) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data, lib)
}

// parseFace converts one face line into one or two triangles.
func parseFace(fields []string, obj *OBJ, material int) ([]Triangle, error) {
	slots := fields[1:]
	if len(slots) < 3 || len(slots) > 4 {
		return nil, fmt.Errorf("%w: \"f\" expects 3 or 4 corners, got %d", ErrMalformedInput, len(slots))
	}

	var corners [4]Corner
	for i, slot := range slots {
		c, err := parseCorner(slot, obj)
		if err != nil {
			return nil, err
		}
		corners[i] = c
	}

	tris := []Triangle{{
		Corners:  [3]Corner{corners[0], corners[1], corners[2]},
		Material: material,
	}}
	if len(slots) == 4 {
		tris = append(tris, Triangle{
			Corners:  [3]Corner{corners[0], corners[3], corners[2]},
			Material: material,
		})
	}
	return tris, nil
}

// parseCorner splits a vertex/texcoord/normal slot, converts its
// 1-based indices to 0-based, and bounds-checks them against the
// tables parsed so far.
func parseCorner(slot string, obj *OBJ) (Corner, error) {
	parts := strings.Split(slot, "/")
	if len(parts) != 3 {
		return Corner{}, fmt.Errorf("%w: corner %q must be vertex/texcoord/normal", ErrMalformedInput, slot)
	}

	var idx [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Corner{}, fmt.Errorf("%w: corner index %q is not an integer", ErrMalformedInput, part)
		}
		idx[i] = n - 1
	}

	c := Corner{Vert: idx[0], Tex: idx[1], Norm: idx[2]}
	switch {
	case c.Vert < 0 || c.Vert >= len(obj.Vertices):
		return Corner{}, fmt.Errorf("%w: vertex %d of %d", ErrIndexOutOfRange, idx[0]+1, len(obj.Vertices))
	case c.Tex < 0 || c.Tex >= len(obj.TexCoords):
		return Corner{}, fmt.Errorf("%w: texture coordinate %d of %d", ErrIndexOutOfRange, idx[1]+1, len(obj.TexCoords))
	case c.Norm < 0 || c.Norm >= len(obj.Normals):
		return Corner{}, fmt.Errorf("%w: normal %d of %d", ErrIndexOutOfRange, idx[2]+1, len(obj.Normals))
	}
	return c, nil
}
