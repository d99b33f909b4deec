// Copyright 2024 The Frame3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package numtest provides tolerance-based numeric comparisons for
// _test.go files across the repository, mirroring the call shape of the
// teacher's chk.Scalar/chk.Vector (label, tolerance, actual, expected)
// but built on testify/require instead of chk's global verbose/test
// state, which this repo has no use for.
package numtest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// Scalar asserts |actual-expected| <= tol.
func Scalar(t *testing.T, label string, tol, actual, expected float64) {
	t.Helper()
	require.LessOrEqualf(t, math.Abs(actual-expected), tol, "%s: got %v want %v (tol %v)", label, actual, expected, tol)
}

// Vector asserts |actual[i]-expected[i]| <= tol for every i.
func Vector(t *testing.T, label string, tol float64, actual, expected []float64) {
	t.Helper()
	require.Equalf(t, len(expected), len(actual), "%s: length mismatch", label)
	for i := range expected {
		require.LessOrEqualf(t, math.Abs(actual[i]-expected[i]), tol, "%s[%d]: got %v want %v (tol %v)", label, i, actual[i], expected[i], tol)
	}
}

// Symmetric asserts a square matrix a is symmetric to within tol.
func Symmetric(t *testing.T, label string, tol float64, a [][]float64) {
	t.Helper()
	n := len(a)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			require.LessOrEqualf(t, math.Abs(a[i][j]-a[j][i]), tol, "%s: asymmetric at (%d,%d)", label, i, j)
		}
	}
}

// InfNorm returns the infinity norm (max absolute component) of v.
func InfNorm(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if math.Abs(x) > m {
			m = math.Abs(x)
		}
	}
	return m
}
