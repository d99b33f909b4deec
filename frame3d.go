// Copyright 2024 The Frame3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame3d is the orchestration facade over geom, element, inp,
// assembler, linsolve, modal and spectrum: Analyze runs a linear static
// solve, Modes extracts natural frequencies, and RespondToSpectrum
// combines modal responses under a response spectrum.
package frame3d

import (
	"github.com/cpmech/frame3d/assembler"
	"github.com/cpmech/frame3d/inp"
	"github.com/cpmech/frame3d/linsolve"
	"github.com/cpmech/frame3d/modal"
	"github.com/cpmech/frame3d/spectrum"
)

// Analyze assembles the model under the given load combination and
// solves the resulting linear static problem.
func Analyze(model inp.Model, combo inp.LoadCombination) (*linsolve.StaticResult, error) {
	sys, err := assembler.Assemble(model, combo)
	if err != nil {
		return nil, err
	}
	return linsolve.Solve(sys)
}

// Modes assembles the model (mass comes only from elements whose
// material carries density) and extracts its lowest count natural
// modes.
func Modes(model inp.Model, count int, opts modal.Options) (*modal.Result, error) {
	sys, err := assembler.Assemble(model, inp.LoadCombination{})
	if err != nil {
		return nil, err
	}
	return modal.Solve(sys.K, sys.M, count, opts)
}

// RespondToSpectrum extracts count modes of the model and combines their
// response to the given acceleration response spectrum along excitation
// direction r, at damping ratio zeta, using method.
func RespondToSpectrum(model inp.Model, count int, opts modal.Options, r []float64, zeta float64, periods, ordinates []float64, method spectrum.Method) (*spectrum.Result, error) {
	modes, err := Modes(model, count, opts)
	if err != nil {
		return nil, err
	}
	return spectrum.Combine(modes, r, zeta, periods, ordinates, method)
}
