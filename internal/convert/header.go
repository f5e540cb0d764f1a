package convert

import (
	"bytes"
	"fmt"

	"github.com/Faultbox/mtl2gl/pkg/formats"
	"github.com/ungerik/go3d/float64/vec3"
)

// generator names this tool in the banner of both headers.
const generator = "mtl2gl"

// renderGeometryHeader serializes the statistics comment, the NumVerts
// constant, and the flat Verts/Normals/TexCoords arrays in bucket
// order. The Normals and TexCoords sections are omitted entirely when
// the mesh has none. Float values are rounded to 3 decimals here and
// nowhere earlier.
func renderGeometryHeader(name string, opts Options, obj *formats.OBJ, buckets []Bucket) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// Created with %s\n\n", generator)
	buf.WriteString("/*\n")
	fmt.Fprintf(&buf, "source files: %s, %s\n", opts.ObjPath, opts.MtlPath)
	fmt.Fprintf(&buf, "vertices: %d\n", len(obj.Vertices))
	fmt.Fprintf(&buf, "faces: %d\n", len(obj.Triangles))
	fmt.Fprintf(&buf, "normals: %d\n", len(obj.Normals))
	fmt.Fprintf(&buf, "texture coords: %d\n", len(obj.TexCoords))
	buf.WriteString("*/\n")
	buf.WriteString("\n\n")

	fmt.Fprintf(&buf, "unsigned int %sNumVerts = %d;\n\n", name, 3*len(obj.Triangles))

	fmt.Fprintf(&buf, "float %sVerts [] = {\n", name)
	forEachCorner(buckets, func(c formats.Corner) {
		v := obj.Vertices[c.Vert]
		fmt.Fprintf(&buf, "%.3f,%.3f,%.3f,\n", v[0], v[1], v[2])
	})
	buf.WriteString("};\n\n")

	if len(obj.Normals) > 0 {
		fmt.Fprintf(&buf, "float %sNormals [] = {\n", name)
		forEachCorner(buckets, func(c formats.Corner) {
			n := obj.Normals[c.Norm]
			fmt.Fprintf(&buf, "%.3f,%.3f,%.3f,\n", n[0], n[1], n[2])
		})
		buf.WriteString("};\n\n")
	}

	if len(obj.TexCoords) > 0 {
		fmt.Fprintf(&buf, "float %sTexCoords [] = {\n", name)
		forEachCorner(buckets, func(c formats.Corner) {
			t := obj.TexCoords[c.Tex]
			fmt.Fprintf(&buf, "%.3f,%.3f,\n", t[0], t[1])
		})
		buf.WriteString("};\n\n")
	}

	return buf.Bytes()
}

// forEachCorner visits every triangle corner in emission order:
// buckets in canonical order, triangles in original order, corners
// A then B then C.
func forEachCorner(buckets []Bucket, visit func(formats.Corner)) {
	for _, b := range buckets {
		for _, tri := range b.Triangles {
			for _, c := range tri.Corners {
				visit(c)
			}
		}
	}
}

// renderMaterialHeader serializes the material comment block, the
// NumMaterials constant, the First/Count draw-range tables, and the
// component arrays, all in bucket order.
func renderMaterialHeader(name string, opts Options, buckets []Bucket) []byte {
	ranges := drawRanges(buckets)

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// Created with %s\n\n", generator)
	buf.WriteString("/*\n")
	fmt.Fprintf(&buf, "source files: %s, %s\n", opts.ObjPath, opts.MtlPath)
	fmt.Fprintf(&buf, "materials: %d\n\n", len(buckets))
	for _, b := range buckets {
		m := b.Material
		fmt.Fprintf(&buf, "Name: %s\n", m.Name)
		fmt.Fprintf(&buf, "Ka: %.3f, %.3f, %.3f\n", m.Ambient[0], m.Ambient[1], m.Ambient[2])
		fmt.Fprintf(&buf, "Kd: %.3f, %.3f, %.3f\n", m.Diffuse[0], m.Diffuse[1], m.Diffuse[2])
		fmt.Fprintf(&buf, "Ks: %.3f, %.3f, %.3f\n", m.Specular[0], m.Specular[1], m.Specular[2])
		fmt.Fprintf(&buf, "Ns: %.3f\n\n", m.Exponent)
	}
	buf.WriteString("*/\n")
	buf.WriteString("\n\n")

	fmt.Fprintf(&buf, "int %sNumMaterials = %d;\n\n", name, len(buckets))

	fmt.Fprintf(&buf, "int %sFirst [%d] = {\n", name, len(buckets))
	for _, r := range ranges {
		fmt.Fprintf(&buf, "%d,\n", r.First)
	}
	buf.WriteString("};\n\n")

	fmt.Fprintf(&buf, "int %sCount [%d] = {\n", name, len(buckets))
	for _, r := range ranges {
		fmt.Fprintf(&buf, "%d,\n", r.Count)
	}
	buf.WriteString("};\n\n")

	writeColorArray(&buf, name, "Ambient", buckets, func(m formats.Material) vec3.T { return m.Ambient })
	writeColorArray(&buf, name, "Diffuse", buckets, func(m formats.Material) vec3.T { return m.Diffuse })
	writeColorArray(&buf, name, "Specular", buckets, func(m formats.Material) vec3.T { return m.Specular })

	fmt.Fprintf(&buf, "float %sExponent [%d] = {\n", name, len(buckets))
	for _, b := range buckets {
		fmt.Fprintf(&buf, "%.3f,\n", b.Material.Exponent)
	}
	buf.WriteString("};\n\n")

	return buf.Bytes()
}

// writeColorArray writes one [n][3] component array in bucket order.
func writeColorArray(buf *bytes.Buffer, name, component string, buckets []Bucket, color func(formats.Material) vec3.T) {
	fmt.Fprintf(buf, "float %s%s [%d][3] = {\n", name, component, len(buckets))
	for _, b := range buckets {
		c := color(b.Material)
		fmt.Fprintf(buf, "%.3f,%.3f,%.3f,\n", c[0], c[1], c[2])
	}
	buf.WriteString("};\n\n")
}
