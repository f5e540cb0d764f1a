package convert

import (
	"github.com/ungerik/go3d/float64/vec3"
)

// transform is the resolved centering point and scale factor for one
// run.
type transform struct {
	center vec3.T
	scale  float64
}

// resolveTransform fills in whatever opts left automatic from a single
// pass over the raw vertex table: the centroid as center, and
// 1 / longest bounding-box side as scale. Explicit values are never
// recomputed.
func resolveTransform(opts Options, verts []vec3.T) (transform, error) {
	if opts.Center != nil && opts.Scale != nil {
		return transform{center: *opts.Center, scale: *opts.Scale}, nil
	}

	if len(verts) == 0 {
		return transform{}, ErrEmptyMesh
	}

	sum := vec3.Zero
	min := verts[0]
	max := verts[0]
	for i := range verts {
		sum = vec3.Add(&sum, &verts[i])
		min = vec3.Min(&min, &verts[i])
		max = vec3.Max(&max, &verts[i])
	}

	var tf transform
	if opts.Center != nil {
		tf.center = *opts.Center
	} else {
		tf.center = sum.Scaled(1 / float64(len(verts)))
	}

	if opts.Scale != nil {
		tf.scale = *opts.Scale
	} else {
		extent := vec3.Sub(&max, &min)
		longest := extent[0]
		if extent[1] > longest {
			longest = extent[1]
		}
		if extent[2] > longest {
			longest = extent[2]
		}
		if longest == 0 {
			return transform{}, ErrDegenerateMesh
		}
		tf.scale = 1 / longest
	}

	return tf, nil
}
