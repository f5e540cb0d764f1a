// Package convert drives the OBJ/MTL to C header conversion pipeline.
package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/mtl2gl/internal/logger"
	"github.com/Faultbox/mtl2gl/pkg/formats"
	"github.com/ungerik/go3d/float64/vec3"
	"go.uber.org/zap"
)

// Errors reported by the conversion pipeline.
var (
	// ErrEmptyMesh reports a mesh without vertices when the automatic
	// center or scale computation needs them.
	ErrEmptyMesh = errors.New("mesh has no vertices")

	// ErrDegenerateMesh reports a mesh whose bounding box has zero
	// extent on every axis when the automatic scale needs it.
	ErrDegenerateMesh = errors.New("mesh has zero extent")

	// ErrInvalidConfig reports unusable caller options: missing input
	// paths, a negative scale factor, or a malformed center string.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Options select the inputs and transform overrides for one run.
// The zero value of the override fields means automatic.
type Options struct {
	// ObjPath and MtlPath locate the input files. Both are required.
	ObjPath string
	MtlPath string

	// OutDir overrides the output directory. When empty each header is
	// written next to its input file.
	OutDir string

	// Center is the explicit centering point. nil computes the vertex
	// centroid instead.
	Center *vec3.T

	// Scale is the explicit uniform scale factor. nil computes
	// 1 / longest bounding-box side instead. Negative values are
	// rejected.
	Scale *float64
}

func (o *Options) validate() error {
	if o.ObjPath == "" {
		return fmt.Errorf("%w: missing OBJ input path", ErrInvalidConfig)
	}
	if o.MtlPath == "" {
		return fmt.Errorf("%w: missing MTL input path", ErrInvalidConfig)
	}
	if o.Scale != nil && *o.Scale < 0 {
		return fmt.Errorf("%w: negative scale factor %v", ErrInvalidConfig, *o.Scale)
	}
	return nil
}

// ParseCenter parses an explicit center point given as "x/y/z".
func ParseCenter(s string) (*vec3.T, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: center %q must be three numbers separated by /", ErrInvalidConfig, s)
	}

	var c vec3.T
	for i, part := range parts {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: center component %q is not a number", ErrInvalidConfig, part)
		}
		c[i] = f
	}
	return &c, nil
}

// Result reports the outputs and statistics of one run.
type Result struct {
	ObjHeaderPath string
	MtlHeaderPath string

	Center vec3.T
	Scale  float64

	Vertices  int
	Triangles int
	Normals   int
	TexCoords int
	Materials int
}

// Run converts the OBJ/MTL pair named in opts into two generated C
// headers. Both headers are rendered in memory before anything touches
// disk, then committed together; a failed run leaves neither behind.
func Run(opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	objOut, objName := deriveOutput(opts.ObjPath, opts.OutDir, "OBJ")
	mtlOut, mtlName := deriveOutput(opts.MtlPath, opts.OutDir, "MTL")

	logger.Info("converting",
		zap.String("objFile", opts.ObjPath),
		zap.String("mtlFile", opts.MtlPath),
		zap.String("objHeader", objOut),
		zap.String("mtlHeader", mtlOut))

	lib, err := formats.ParseMTLFile(opts.MtlPath)
	if err != nil {
		return nil, err
	}
	obj, err := formats.ParseOBJFile(opts.ObjPath, lib)
	if err != nil {
		return nil, err
	}

	tf, err := resolveTransform(opts, obj.Vertices)
	if err != nil {
		return nil, err
	}
	logger.Info("transform resolved",
		zap.Float64("centerX", tf.center[0]),
		zap.Float64("centerY", tf.center[1]),
		zap.Float64("centerZ", tf.center[2]),
		zap.Float64("scale", tf.scale))

	normalizeMesh(obj, tf)
	buckets := groupTriangles(obj, lib)

	objHeader := renderGeometryHeader(objName, opts, obj, buckets)
	mtlHeader := renderMaterialHeader(mtlName, opts, buckets)

	if err := commitOutputs(objOut, objHeader, mtlOut, mtlHeader); err != nil {
		return nil, err
	}

	res := &Result{
		ObjHeaderPath: objOut,
		MtlHeaderPath: mtlOut,
		Center:        tf.center,
		Scale:         tf.scale,
		Vertices:      len(obj.Vertices),
		Triangles:     len(obj.Triangles),
		Normals:       len(obj.Normals),
		TexCoords:     len(obj.TexCoords),
		Materials:     len(buckets),
	}
	logger.Info("conversion complete",
		zap.Int("vertices", res.Vertices),
		zap.Int("faces", res.Triangles),
		zap.Int("normals", res.Normals),
		zap.Int("textureCoords", res.TexCoords),
		zap.Int("materials", res.Materials))
	return res, nil
}

// deriveOutput keeps the original tool's naming scheme: the header
// lands next to its input (or in outDir) as <base><suffix>.h, and the
// C identifiers inside are prefixed <base><suffix> with no
// sanitization.
func deriveOutput(inPath, outDir, suffix string) (path, name string) {
	dir := filepath.Dir(inPath)
	if outDir != "" {
		dir = outDir
	}
	base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	name = base + suffix
	return filepath.Join(dir, name+".h"), name
}

// commitOutputs writes both rendered headers, geometry first. On any
// failure the header already in place is removed again so the pair
// stays all-or-nothing.
func commitOutputs(objPath string, objHeader []byte, mtlPath string, mtlHeader []byte) error {
	if err := writeHeader(objPath, objHeader); err != nil {
		return err
	}
	if err := writeHeader(mtlPath, mtlHeader); err != nil {
		os.Remove(objPath)
		return err
	}
	return nil
}

// writeHeader writes data to a temp file in the destination directory
// and renames it into place, so readers never observe a partial
// header.
func writeHeader(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", filepath.Base(path), err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
