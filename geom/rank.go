// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geom

import "gonum.org/v1/gonum/mat"

const rankTolerance = 1e-10

// Dependent reports whether pts are affinely dependent, that is whether the
// differences pts[i]-pts[0] span fewer than len(pts)-1 dimensions.
func Dependent(pts [][]float64) bool {
	if len(pts) < 2 {
		return false
	}
	rows, cols := len(pts)-1, len(pts[0])
	if rows > cols {
		return true
	}

	m := mat.NewDense(rows, cols, nil)
	for i := 1; i < len(pts); i++ {
		for j := 0; j < cols; j++ {
			m.Set(i-1, j, pts[i][j]-pts[0][j])
		}
	}

	var svd mat.SVD
	if !svd.Factorize(m, mat.SVDNone) {
		return true
	}
	return svd.Rank(rankTolerance) < rows
}
