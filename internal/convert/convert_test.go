package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/mtl2gl/internal/logger"
	"github.com/Faultbox/mtl2gl/pkg/formats"
	"github.com/ungerik/go3d/float64/vec3"
)

func TestMain(m *testing.M) {
	// Run logs through the global logger; keep it quiet here.
	if err := logger.InitWithFileConfig("error", logger.FileConfig{}, false); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// createTestInputs writes an OBJ/MTL pair named model.obj / model.mtl
// into a fresh temp directory.
func createTestInputs(t *testing.T, obj, mtl string) (objPath, mtlPath string) {
	dir := t.TempDir()
	objPath = filepath.Join(dir, "model.obj")
	mtlPath = filepath.Join(dir, "model.mtl")
	if err := os.WriteFile(objPath, []byte(obj), 0644); err != nil {
		t.Fatalf("failed to write OBJ input: %v", err)
	}
	if err := os.WriteFile(mtlPath, []byte(mtl), 0644); err != nil {
		t.Fatalf("failed to write MTL input: %v", err)
	}
	return objPath, mtlPath
}

func TestRun_GoldenHeaders(t *testing.T) {
	objSrc := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
vn 0 0 0
f 1/1/1 2/2/1 3/3/1
usemtl red
f 1/1/2 2/2/2 3/3/2 4/4/2
`
	mtlSrc := `newmtl red
Ka 0.25 0.5 0.75
Kd 1 0 0
Ks 0.1 0.1 0.1
Ns 96.078431
`
	objPath, mtlPath := createTestInputs(t, objSrc, mtlSrc)

	center := vec3.T{0, 0, 0}
	scale := 1.0
	res, err := Run(Options{ObjPath: objPath, MtlPath: mtlPath, Center: &center, Scale: &scale})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Vertices != 4 || res.Triangles != 3 || res.Normals != 2 || res.TexCoords != 4 || res.Materials != 2 {
		t.Errorf("unexpected statistics: %+v", res)
	}
	if filepath.Base(res.ObjHeaderPath) != "modelOBJ.h" || filepath.Base(res.MtlHeaderPath) != "modelMTL.h" {
		t.Errorf("unexpected output names: %s, %s", res.ObjHeaderPath, res.MtlHeaderPath)
	}

	gotObj, err := os.ReadFile(res.ObjHeaderPath)
	if err != nil {
		t.Fatalf("failed to read geometry header: %v", err)
	}
	wantObj := fmt.Sprintf(`// Created with mtl2gl

/*
source files: %s, %s
vertices: 4
faces: 3
normals: 2
texture coords: 4
*/


unsigned int modelOBJNumVerts = 9;

float modelOBJVerts [] = {
0.000,0.000,0.000,
1.000,0.000,0.000,
1.000,1.000,0.000,
0.000,0.000,0.000,
1.000,0.000,0.000,
1.000,1.000,0.000,
0.000,0.000,0.000,
0.000,1.000,0.000,
1.000,1.000,0.000,
};

float modelOBJNormals [] = {
0.000,0.000,1.000,
0.000,0.000,1.000,
0.000,0.000,1.000,
1.000,0.000,0.000,
1.000,0.000,0.000,
1.000,0.000,0.000,
1.000,0.000,0.000,
1.000,0.000,0.000,
1.000,0.000,0.000,
};

float modelOBJTexCoords [] = {
0.000,1.000,
1.000,1.000,
1.000,0.000,
0.000,1.000,
1.000,1.000,
1.000,0.000,
0.000,1.000,
0.000,0.000,
1.000,0.000,
};

`, objPath, mtlPath)
	if string(gotObj) != wantObj {
		t.Errorf("geometry header mismatch:\n got:\n%s\nwant:\n%s", gotObj, wantObj)
	}

	gotMtl, err := os.ReadFile(res.MtlHeaderPath)
	if err != nil {
		t.Fatalf("failed to read material header: %v", err)
	}
	wantMtl := fmt.Sprintf(`// Created with mtl2gl

/*
source files: %s, %s
materials: 2

Name: %s
Ka: 0.000, 0.000, 0.000
Kd: 0.000, 0.000, 0.000
Ks: 0.000, 0.000, 0.000
Ns: 1.000

Name: red
Ka: 0.250, 0.500, 0.750
Kd: 1.000, 0.000, 0.000
Ks: 0.100, 0.100, 0.100
Ns: 96.078

*/


int modelMTLNumMaterials = 2;

int modelMTLFirst [2] = {
0,
3,
};

int modelMTLCount [2] = {
3,
6,
};

float modelMTLAmbient [2][3] = {
0.000,0.000,0.000,
0.250,0.500,0.750,
};

float modelMTLDiffuse [2][3] = {
0.000,0.000,0.000,
1.000,0.000,0.000,
};

float modelMTLSpecular [2][3] = {
0.000,0.000,0.000,
0.100,0.100,0.100,
};

float modelMTLExponent [2] = {
1.000,
96.078,
};

`, objPath, mtlPath, "")
	if string(gotMtl) != wantMtl {
		t.Errorf("material header mismatch:\n got:\n%s\nwant:\n%s", gotMtl, wantMtl)
	}
}

func TestRun_AutomaticTransform(t *testing.T) {
	objSrc := `v 0 0 0
v 2 0 0
vt 0 0
vn 0 0 1
usemtl plain
f 1/1/1 2/1/1 1/1/1
`
	objPath, mtlPath := createTestInputs(t, objSrc, "newmtl plain\n")

	res, err := Run(Options{ObjPath: objPath, MtlPath: mtlPath})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Center != (vec3.T{1, 0, 0}) {
		t.Errorf("expected centroid (1,0,0), got %v", res.Center)
	}
	if res.Scale != 0.5 {
		t.Errorf("expected scale 0.5, got %v", res.Scale)
	}

	header, err := os.ReadFile(res.ObjHeaderPath)
	if err != nil {
		t.Fatalf("failed to read geometry header: %v", err)
	}
	wantRows := "-0.500,0.000,0.000,\n0.500,0.000,0.000,\n-0.500,0.000,0.000,\n"
	if !strings.Contains(string(header), wantRows) {
		t.Errorf("expected centered and scaled rows %q in:\n%s", wantRows, header)
	}
}

func TestRun_ExplicitTransformReproducesInput(t *testing.T) {
	objSrc := `v 1.234 5.678 9.1
v -1 0.5 2
v 0 0 1
vt 0.5 0.5
vn 0 1 0
usemtl plain
f 1/1/1 2/1/1 3/1/1
`
	objPath, mtlPath := createTestInputs(t, objSrc, "newmtl plain\n")

	center, err := ParseCenter("0/0/0")
	if err != nil {
		t.Fatalf("ParseCenter failed: %v", err)
	}
	scale := 1.0
	res, err := Run(Options{ObjPath: objPath, MtlPath: mtlPath, Center: center, Scale: &scale})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Center != (vec3.T{0, 0, 0}) || res.Scale != 1 {
		t.Errorf("expected identity transform back, got %v / %v", res.Center, res.Scale)
	}

	header, err := os.ReadFile(res.ObjHeaderPath)
	if err != nil {
		t.Fatalf("failed to read geometry header: %v", err)
	}
	wantRows := "1.234,5.678,9.100,\n-1.000,0.500,2.000,\n0.000,0.000,1.000,\n"
	if !strings.Contains(string(header), wantRows) {
		t.Errorf("expected input coordinates back, missing %q in:\n%s", wantRows, header)
	}
}

func TestRun_EmptyMesh(t *testing.T) {
	objPath, mtlPath := createTestInputs(t, "vn 0 0 1\n", "newmtl plain\n")

	_, err := Run(Options{ObjPath: objPath, MtlPath: mtlPath})
	if err == nil {
		t.Fatal("expected error for mesh without vertices")
	}
	if !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("expected ErrEmptyMesh, got %v", err)
	}

	dir := filepath.Dir(objPath)
	for _, name := range []string{"modelOBJ.h", "modelMTL.h"} {
		if _, statErr := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(statErr) {
			t.Errorf("expected no output %s after failed run", name)
		}
	}
}

func TestRun_InvalidOptions(t *testing.T) {
	negative := -2.0
	tests := []struct {
		name string
		opts Options
	}{
		{"missing obj path", Options{MtlPath: "model.mtl"}},
		{"missing mtl path", Options{ObjPath: "model.obj"}},
		{"negative scale", Options{ObjPath: "model.obj", MtlPath: "model.mtl", Scale: &negative}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(tt.opts)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestRun_ParseFailureLeavesNoOutputs(t *testing.T) {
	objSrc := `v 0 0 0
usemtl ghost
`
	objPath, mtlPath := createTestInputs(t, objSrc, "newmtl plain\n")

	_, err := Run(Options{ObjPath: objPath, MtlPath: mtlPath})
	if err == nil {
		t.Fatal("expected error for unknown material")
	}
	if !errors.Is(err, formats.ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput, got %v", err)
	}

	dir := filepath.Dir(objPath)
	for _, name := range []string{"modelOBJ.h", "modelMTL.h"} {
		if _, statErr := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(statErr) {
			t.Errorf("expected no output %s after failed run", name)
		}
	}
}

func TestRun_OutDirOverride(t *testing.T) {
	objSrc := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vn 0 0 1
usemtl plain
f 1/1/1 2/1/1 3/1/1
`
	objPath, mtlPath := createTestInputs(t, objSrc, "newmtl plain\n")
	outDir := filepath.Join(t.TempDir(), "generated")

	res, err := Run(Options{ObjPath: objPath, MtlPath: mtlPath, OutDir: outDir})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.ObjHeaderPath != filepath.Join(outDir, "modelOBJ.h") {
		t.Errorf("unexpected geometry header path: %s", res.ObjHeaderPath)
	}
	if res.MtlHeaderPath != filepath.Join(outDir, "modelMTL.h") {
		t.Errorf("unexpected material header path: %s", res.MtlHeaderPath)
	}
	for _, p := range []string{res.ObjHeaderPath, res.MtlHeaderPath} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected output at %s: %v", p, err)
		}
	}
}

func TestRun_WriteFailureRollsBack(t *testing.T) {
	objSrc := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vn 0 0 1
usemtl plain
f 1/1/1 2/1/1 3/1/1
`
	objDir := t.TempDir()
	mtlDir := t.TempDir()
	objPath := filepath.Join(objDir, "model.obj")
	mtlPath := filepath.Join(mtlDir, "model.mtl")
	if err := os.WriteFile(objPath, []byte(objSrc), 0644); err != nil {
		t.Fatalf("failed to write OBJ input: %v", err)
	}
	if err := os.WriteFile(mtlPath, []byte("newmtl plain\n"), 0644); err != nil {
		t.Fatalf("failed to write MTL input: %v", err)
	}

	// Block the material header's destination so its rename fails
	// after the geometry header is already in place.
	if err := os.Mkdir(filepath.Join(mtlDir, "modelMTL.h"), 0755); err != nil {
		t.Fatalf("failed to block output path: %v", err)
	}

	_, err := Run(Options{ObjPath: objPath, MtlPath: mtlPath})
	if err == nil {
		t.Fatal("expected write failure")
	}

	if _, statErr := os.Stat(filepath.Join(objDir, "modelOBJ.h")); !os.IsNotExist(statErr) {
		t.Error("geometry header left behind after failed run")
	}
	for _, dir := range []string{objDir, mtlDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("failed to read %s: %v", dir, err)
		}
		for _, e := range entries {
			if strings.Contains(e.Name(), ".tmp-") {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
	}
}

func TestParseCenter(t *testing.T) {
	c, err := ParseCenter("1/2.5/-3")
	if err != nil {
		t.Fatalf("ParseCenter failed: %v", err)
	}
	if *c != (vec3.T{1, 2.5, -3}) {
		t.Errorf("unexpected center: %v", *c)
	}
}

func TestParseCenter_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"too few components", "1/2"},
		{"too many components", "1/2/3/4"},
		{"not a number", "1/x/3"},
		{"empty component", "1//3"},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCenter(tt.in)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestDeriveOutput(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		outDir   string
		suffix   string
		wantPath string
		wantName string
	}{
		{"beside input", "models/cube.obj", "", "OBJ", "models/cubeOBJ.h", "cubeOBJ"},
		{"outdir override", "models/cube.obj", "build", "OBJ", "build/cubeOBJ.h", "cubeOBJ"},
		{"bare file name", "cube.obj", "", "OBJ", "cubeOBJ.h", "cubeOBJ"},
		{"no extension", "data/mesh", "", "MTL", "data/meshMTL.h", "meshMTL"},
		{"dotted base kept verbatim", "a/my.model.obj", "", "OBJ", "a/my.modelOBJ.h", "my.modelOBJ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, name := deriveOutput(tt.in, tt.outDir, tt.suffix)
			if path != filepath.FromSlash(tt.wantPath) {
				t.Errorf("expected path %q, got %q", tt.wantPath, path)
			}
			if name != tt.wantName {
				t.Errorf("expected name %q, got %q", tt.wantName, name)
			}
		})
	}
}
