// Copyright 2024 The Frame3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package modal extracts natural frequencies and mode shapes from the
// assembled stiffness and mass matrices, per SPEC_FULL.md §4.M. The
// generalized eigenproblem K phi = omega^2 M phi is reduced to standard
// form through a Cholesky factor of K, not M: the assembler zeroes the row,
// column, and diagonal of M at every restrained DOF (spec.md §4.A), so M is
// always singular and only K is guaranteed positive definite after the
// penalty treatment. The reduced problem's eigenvalues are 1/(omega^2+Shift)
// rather than omega^2 directly; M's zero rows surface as (numerically) zero
// reduced eigenvalues, corresponding to omega^2 = infinity, and are filtered
// out before the lowest Count modes are selected. Diagonalization uses the
// pack's only symmetric eigensolver
// (github.com/katalvlaran/lvlath/matrix/ops.Eigen); mode shapes are mapped
// back through the same Cholesky factor.
package modal

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/katalvlaran/lvlath/matrix"
	"github.com/katalvlaran/lvlath/matrix/ops"
	"gonum.org/v1/gonum/mat"
)

// Status reports how the extraction went.
type Status string

const (
	StatusConverged  Status = "converged"
	StatusFailed     Status = "failed"
	StatusNonPhysical Status = "non_physical"
)

// eigenTol and eigenMaxIter bound the Jacobi sweep of ops.Eigen.
const eigenTol = 1e-12
const eigenMaxIter = 200

// Options configures the modal solve.
type Options struct {
	// Shift adds Shift*M to K before reduction, per spec.md §4.M's
	// shift-invert framing. Used to condition the spectrum near
	// rigid-body/zero-energy modes; does not otherwise change which
	// modes are reported, since all modes are recovered densely and the
	// lowest Count are then selected.
	Shift float64
}

// Mode is one extracted natural mode.
type Mode struct {
	OmegaSquared float64 // rad^2/s^2, eigenvalue of K phi = omega^2 M phi (1/nu - Shift)
	Omega        float64 // rad/s
	FrequencyHz  float64
	Period       float64 // s, 0 if Omega==0
	Shape        []float64 // mass-normalized eigenvector, phi^T M phi = 1
}

// Result is the full modal extraction output.
type Result struct {
	Status  Status
	Message string
	Modes   []Mode
}

// Solve extracts the lowest count modes of the generalized eigenproblem
// K phi = omega^2 M phi.
func Solve(K, M *mat.SymDense, count int, opts Options) (*Result, error) {
	n := K.SymmetricDim()
	if M.SymmetricDim() != n {
		return nil, chk.Err("modal: K and M dimension mismatch: %d vs %d", n, M.SymmetricDim())
	}
	if count <= 0 || count > n {
		return nil, chk.Err("modal: count must be in [1,%d], got %d", n, count)
	}

	Kshifted := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			Kshifted.SetSym(i, j, K.At(i, j)+opts.Shift*M.At(i, j))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(Kshifted); !ok {
		return &Result{Status: StatusFailed, Message: "stiffness matrix is not positive definite"}, nil
	}
	var Ltri mat.TriDense
	chol.LTo(&Ltri)

	Linv := invertLowerTriangular(&Ltri, n)

	// Mhat = Linv * M * Linv^T. Its eigenpairs (nu, x) relate to the
	// original problem by nu = 1/(omega^2+Shift); restrained DOFs leave M
	// (and Mhat) singular, surfacing as nu == 0.
	var tmp, Mhat mat.Dense
	tmp.Mul(Linv, M)
	LinvT := Linv.T()
	Mhat.Mul(&tmp, LinvT)

	lv, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, chk.Err("modal: %v", err)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := 0.5 * (Mhat.At(i, j) + Mhat.At(j, i))
			if err := lv.Set(i, j, v); err != nil {
				return nil, chk.Err("modal: %v", err)
			}
		}
	}

	nus, Q, err := ops.Eigen(lv, eigenTol, eigenMaxIter)
	if err != nil {
		return &Result{Status: StatusFailed, Message: err.Error()}, nil
	}

	type indexed struct {
		idx int
		val float64
	}
	order := make([]indexed, n)
	for i := 0; i < n; i++ {
		order[i] = indexed{i, nus[i]}
	}
	// descending nu == ascending omega^2: the fundamental mode has the
	// largest nu.
	sort.Slice(order, func(a, b int) bool { return order[a].val > order[b].val })

	if len(order) == 0 || order[0].val <= 0 {
		return &Result{Status: StatusFailed, Message: "no positive-mass modes found"}, nil
	}
	// nuCutoff separates genuine modes from the (numerically) zero
	// eigenvalues contributed by restrained DOFs' zeroed M rows.
	nuCutoff := order[0].val * 1e-6

	modes := make([]Mode, 0, count)
	for _, e := range order {
		if len(modes) == count {
			break
		}
		if e.val <= nuCutoff {
			continue
		}
		lambda := 1.0/e.val - opts.Shift
		if lambda < -1e-6 {
			return &Result{Status: StatusNonPhysical, Message: "negative squared frequency recovered"}, nil
		}
		if lambda < 0 {
			lambda = 0
		}

		psi := make([]float64, n)
		for i := 0; i < n; i++ {
			v, _ := Q.At(i, e.idx)
			psi[i] = v
		}
		phi := linvTApply(Linv, psi, n)

		mMphi := quadForm(M, phi)
		if mMphi <= 0 || math.IsNaN(mMphi) {
			return &Result{Status: StatusFailed, Message: "degenerate mode shape"}, nil
		}
		scale := 1.0 / math.Sqrt(mMphi)
		for i := range phi {
			phi[i] *= scale
		}
		signByLargestComponent(phi)

		omega := math.Sqrt(lambda)
		mode := Mode{OmegaSquared: lambda, Omega: omega, Shape: phi}
		if omega > 0 {
			mode.FrequencyHz = omega / (2 * math.Pi)
			mode.Period = 2 * math.Pi / omega
		}
		modes = append(modes, mode)
	}

	if len(modes) < count {
		return &Result{Status: StatusFailed, Message: "fewer independent modes available than requested"}, nil
	}

	return &Result{Status: StatusConverged, Modes: modes}, nil
}

// Participation returns the modal participation factor of each mode for
// an excitation influence vector r (e.g. a unit translation direction
// expanded to every DOF), per spec.md §4.M.
func Participation(modes []Mode, M *mat.SymDense, r []float64) []float64 {
	out := make([]float64, len(modes))
	for i, mode := range modes {
		out[i] = quadFormVec(M, mode.Shape, r)
	}
	return out
}

// EffectiveMass returns the effective modal mass of each mode, L_i^2
// where L_i is the participation factor, per spec.md §4.M.
func EffectiveMass(participation []float64) []float64 {
	out := make([]float64, len(participation))
	for i, l := range participation {
		out[i] = l * l
	}
	return out
}

// MassRatios returns, for each mode, its effective mass divided by the
// total mass represented by r^T M r, and the cumulative ratio across all
// modes supplied (assumed sorted ascending by frequency).
func MassRatios(effMass []float64, M *mat.SymDense, r []float64) (ratios []float64, cumulative []float64) {
	total := quadFormVec(M, r, r)
	ratios = make([]float64, len(effMass))
	cumulative = make([]float64, len(effMass))
	sum := 0.0
	for i, em := range effMass {
		ratio := 0.0
		if total > 0 {
			ratio = em / total
		}
		ratios[i] = ratio
		sum += ratio
		cumulative[i] = sum
	}
	return
}

func invertLowerTriangular(L *mat.TriDense, n int) *mat.Dense {
	inv := mat.NewDense(n, n, nil)
	e := make([]float64, n)
	col := make([]float64, n)
	for c := 0; c < n; c++ {
		for i := range e {
			e[i] = 0
		}
		e[c] = 1
		forwardSubstitute(L, e, col, n)
		for r := 0; r < n; r++ {
			inv.Set(r, c, col[r])
		}
	}
	return inv
}

// forwardSubstitute solves L x = b for lower-triangular L.
func forwardSubstitute(L *mat.TriDense, b []float64, x []float64, n int) {
	for i := 0; i < n; i++ {
		sum := b[i]
		for j := 0; j < i; j++ {
			sum -= L.At(i, j) * x[j]
		}
		x[i] = sum / L.At(i, i)
	}
}

// linvTApply computes Linv^T * psi.
func linvTApply(Linv *mat.Dense, psi []float64, n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += Linv.At(j, i) * psi[j]
		}
		out[i] = sum
	}
	return out
}

func quadForm(M *mat.SymDense, v []float64) float64 {
	return quadFormVec(M, v, v)
}

func quadFormVec(M *mat.SymDense, a, b []float64) float64 {
	n := len(a)
	sum := 0.0
	for i := 0; i < n; i++ {
		rowSum := 0.0
		for j := 0; j < n; j++ {
			rowSum += M.At(i, j) * b[j]
		}
		sum += a[i] * rowSum
	}
	return sum
}

func signByLargestComponent(v []float64) {
	maxIdx, maxAbs := 0, 0.0
	for i, x := range v {
		if math.Abs(x) > maxAbs {
			maxAbs = math.Abs(x)
			maxIdx = i
		}
	}
	if v[maxIdx] < 0 {
		for i := range v {
			v[i] = -v[i]
		}
	}
}
