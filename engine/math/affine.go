package math

/**
 * @brief Creates and returns an identity affine transform.
 */
func NewAffineIdentity() Affine {
	a := Affine{}
	a.Data[0] = 1.0
	a.Data[5] = 1.0
	a.Data[10] = 1.0
	return a
}

/**
 * @brief Creates an affine transform from its 12 explicit elements, given row by row.
 */
func NewAffine(mxx, mxy, mxz, tx, myx, myy, myz, ty, mzx, mzy, mzz, tz float32) Affine {
	return Affine{Data: [12]float32{
		mxx, mxy, mxz, tx,
		myx, myy, myz, ty,
		mzx, mzy, mzz, tz,
	}}
}

/**
 * @brief Creates an affine transform from a flat row-major 4x4 matrix.
 * Only the first three rows are read; the implicit bottom row [0, 0, 0, 1]
 * is assumed.
 *
 * @param values The matrix elements. Must contain exactly 16 values.
 * @return The affine transform and true, or false if values does not hold 16 elements.
 */
func NewAffineFromRowMajor(values []float64) (Affine, bool) {
	if len(values) != 16 {
		return Affine{}, false
	}
	a := Affine{}
	for i := 0; i < 12; i++ {
		a.Data[i] = float32(values[i])
	}
	return a, true
}

// NewAffineMirrorY returns the transform that scales the Y axis by -1.
func NewAffineMirrorY() Affine {
	return NewAffine(
		1, 0, 0, 0,
		0, -1, 0, 0,
		0, 0, 1, 0)
}

func (a Affine) Translation() Vec3 {
	return Vec3{a.Data[3], a.Data[7], a.Data[11]}
}

/**
 * @brief Returns a composed with other. The result applies other first and
 * then a, i.e. result(p) == a(other(p)).
 */
func (a Affine) Mul(other Affine) Affine {
	out := Affine{}
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			sum := float32(0)
			for i := 0; i < 3; i++ {
				sum += a.Data[row*4+i] * other.Data[i*4+col]
			}
			if col == 3 {
				sum += a.Data[row*4+3]
			}
			out.Data[row*4+col] = sum
		}
	}
	return out
}

/**
 * @brief Transforms p as a point (implicit w of 1).
 */
func (a Affine) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		a.Data[0]*p.X + a.Data[1]*p.Y + a.Data[2]*p.Z + a.Data[3],
		a.Data[4]*p.X + a.Data[5]*p.Y + a.Data[6]*p.Z + a.Data[7],
		a.Data[8]*p.X + a.Data[9]*p.Y + a.Data[10]*p.Z + a.Data[11],
	}
}

func (a Affine) IsIdentity() bool {
	id := NewAffineIdentity()
	for i := range a.Data {
		if kabs(a.Data[i]-id.Data[i]) > K_FLOAT_EPSILON {
			return false
		}
	}
	return true
}

/**
 * @brief Converts the affine transform to a Mat4 laid out for Vec3.Transform,
 * with the translation in elements 12, 13 and 14.
 */
func (a Affine) ToMat4() Mat4 {
	out := NewMat4Identity()
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			out.Data[col*4+row] = a.Data[row*4+col]
		}
	}
	return out
}

// ComposeAffines folds a transform list into one affine. The first entry is
// the outermost transform, so the last entry is applied to points first.
func ComposeAffines(transforms []Affine) Affine {
	out := NewAffineIdentity()
	for _, t := range transforms {
		out = out.Mul(t)
	}
	return out
}
