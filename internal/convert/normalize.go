package convert

import (
	"github.com/Faultbox/mtl2gl/pkg/formats"
	"github.com/ungerik/go3d/float64/vec3"
)

// normalizeMesh applies the resolved transform to the parsed tables in
// place. Vertices are translated to the center and then uniformly
// scaled, texture V coordinates are mirrored, and normals are brought
// to unit length. A normal of length exactly zero becomes the +X unit
// vector instead of dividing by zero.
//
// Everything stays full-precision float64 here; rounding to 3 decimals
// happens once, in the header renderers.
func normalizeMesh(obj *formats.OBJ, tf transform) {
	for i := range obj.Vertices {
		v := vec3.Sub(&obj.Vertices[i], &tf.center)
		obj.Vertices[i] = v.Scaled(tf.scale)
	}

	for i := range obj.TexCoords {
		obj.TexCoords[i][1] = 1 - obj.TexCoords[i][1]
	}

	for i := range obj.Normals {
		if obj.Normals[i].Length() == 0 {
			obj.Normals[i] = vec3.UnitX
		} else {
			obj.Normals[i].Normalize()
		}
	}
}
