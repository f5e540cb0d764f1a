package convert

import (
	"github.com/Faultbox/mtl2gl/pkg/formats"
)

// Bucket pairs one material with its triangles in emission order.
type Bucket struct {
	Material  formats.Material
	Triangles []formats.Triangle
}

// DrawRange is the first/count pair a renderer slices out of the flat
// arrays to draw one bucket.
type DrawRange struct {
	First int
	Count int
}

// groupTriangles partitions the triangle list into per-material
// buckets in canonical order: an anonymous bucket first when any face
// preceded the first usemtl, then the library materials in file order.
// Triangles keep their original relative order inside each bucket, and
// materials without faces keep an empty bucket so the draw-range
// tables stay parallel to the material list.
func groupTriangles(obj *formats.OBJ, lib *formats.MTL) []Bucket {
	anon := false
	for _, tri := range obj.Triangles {
		if tri.Material < 0 {
			anon = true
			break
		}
	}

	offset := 0
	if anon {
		offset = 1
	}

	buckets := make([]Bucket, offset+len(lib.Materials))
	if anon {
		// Nameless placeholder carrying the material defaults.
		buckets[0].Material = formats.Material{Exponent: 1}
	}
	for i, mat := range lib.Materials {
		buckets[offset+i].Material = mat
	}

	for _, tri := range obj.Triangles {
		idx := tri.Material + offset
		buckets[idx].Triangles = append(buckets[idx].Triangles, tri)
	}

	return buckets
}

// drawRanges lays the buckets out as prefix-summed first/count pairs,
// three flat-array entries per triangle.
func drawRanges(buckets []Bucket) []DrawRange {
	ranges := make([]DrawRange, len(buckets))
	first := 0
	for i, b := range buckets {
		count := 3 * len(b.Triangles)
		ranges[i] = DrawRange{First: first, Count: count}
		first += count
	}
	return ranges
}
