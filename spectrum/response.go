// Copyright 2024 The Frame3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package spectrum combines modal responses under a response spectrum,
// per SPEC_FULL.md §4.R.
package spectrum

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/frame3d/modal"
)

// Method selects the modal combination rule.
type Method string

const (
	SRSS Method = "srss"
	CQC  Method = "cqc"
)

// Result is the combined modal response for one excitation direction.
type Result struct {
	Method    Method
	PerDOF    []float64
	PerMode   []float64
}

// Interpolate linearly interpolates ordinate at period t, clamped to the
// first/last table values outside the given range.
func Interpolate(periods, ordinates []float64, t float64) float64 {
	n := len(periods)
	if n == 0 {
		return 0
	}
	if n == 1 || t <= periods[0] {
		return ordinates[0]
	}
	if t >= periods[n-1] {
		return ordinates[n-1]
	}
	i := sort.SearchFloat64s(periods, t)
	if periods[i] == t {
		return ordinates[i]
	}
	lo, hi := i-1, i
	frac := (t - periods[lo]) / (periods[hi] - periods[lo])
	return ordinates[lo] + frac*(ordinates[hi]-ordinates[lo])
}

// Combine computes the per-DOF response of each mode (participation
// factor times mode shape times spectral ordinate), then combines modes
// by the requested method.
func Combine(res *modal.Result, r []float64, zeta float64, periods, ordinates []float64, method Method) (*Result, error) {
	if res.Status != modal.StatusConverged {
		return nil, chk.Err("spectrum: modal result is not converged (%s)", res.Status)
	}
	if len(res.Modes) == 0 {
		return nil, chk.Err("spectrum: no modes supplied")
	}
	n := len(res.Modes[0].Shape)

	participation := make([]float64, len(res.Modes))
	perModePeak := make([][]float64, len(res.Modes))
	for i, mode := range res.Modes {
		l := modalParticipationScalar(mode.Shape, r)
		participation[i] = l
		sa := Interpolate(periods, ordinates, mode.Period)
		peak := make([]float64, n)
		for d := 0; d < n; d++ {
			peak[d] = l * mode.Shape[d] * sa
		}
		perModePeak[i] = peak
	}

	switch method {
	case SRSS:
		return combineSRSS(perModePeak, n), nil
	case CQC:
		return combineCQC(res.Modes, perModePeak, zeta, n), nil
	default:
		return nil, chk.Err("spectrum: unknown combination method %q", method)
	}
}

func modalParticipationScalar(shape, r []float64) float64 {
	sum := 0.0
	for i := range shape {
		sum += shape[i] * r[i]
	}
	return sum
}

func combineSRSS(perMode [][]float64, n int) *Result {
	perDOF := make([]float64, n)
	for _, peak := range perMode {
		for d := 0; d < n; d++ {
			perDOF[d] += peak[d] * peak[d]
		}
	}
	for d := range perDOF {
		perDOF[d] = math.Sqrt(perDOF[d])
	}
	return &Result{Method: SRSS, PerDOF: perDOF, PerMode: sumAbs(perMode, n)}
}

// combineCQC applies the Der Kiureghian cross-correlation coefficient
// between every mode pair i,j, with rho_ii = 1. The unwrapped quadratic
// form r_k = sum_ij rho_ij peak_i[k] peak_j[k] can in principle go
// negative for near-degenerate modes with opposing sign peaks; per
// spec.md §9 that is clamped to zero with a one-line log rather than
// propagated as NaN through the square root.
func combineCQC(modes []modal.Mode, perMode [][]float64, zeta float64, n int) *Result {
	nm := len(modes)
	rho := make([][]float64, nm)
	for i := range rho {
		rho[i] = make([]float64, nm)
		for j := range rho[i] {
			rho[i][j] = cqcRho(modes[i].Omega, modes[j].Omega, zeta)
		}
	}

	perDOF := make([]float64, n)
	for d := 0; d < n; d++ {
		sum := 0.0
		for i := 0; i < nm; i++ {
			for j := 0; j < nm; j++ {
				sum += rho[i][j] * perMode[i][d] * perMode[j][d]
			}
		}
		if sum < 0 {
			io.Pf("spectrum: CQC unwrapped sum negative at dof %d (%.3e), clamped to zero\n", d, sum)
			sum = 0
		}
		perDOF[d] = math.Sqrt(sum)
	}
	return &Result{Method: CQC, PerDOF: perDOF, PerMode: sumAbs(perMode, n)}
}

// cqcRho is the Der Kiureghian (1981) cross-correlation coefficient for
// constant modal damping ratio zeta.
func cqcRho(wi, wj, zeta float64) float64 {
	if wi == 0 && wj == 0 {
		return 1
	}
	beta := wj / wi
	num := 8 * zeta * zeta * (1 + beta) * math.Pow(beta, 1.5)
	den := (1-beta*beta)*(1-beta*beta) + 4*zeta*zeta*beta*(1+beta)*(1+beta)
	if den == 0 {
		return 1
	}
	return num / den
}

func sumAbs(perMode [][]float64, n int) []float64 {
	out := make([]float64, len(perMode))
	for i, peak := range perMode {
		s := 0.0
		for _, v := range peak {
			s += math.Abs(v)
		}
		out[i] = s
	}
	return out
}
