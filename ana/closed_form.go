// Copyright 2024 The Frame3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ana holds closed-form reference solutions used to validate the
// finite element kernel against textbook results, in the teacher's
// struct-plus-Init-plus-Calc style (see ana/colpresfluid.go).
package ana

import "math"

// CantileverAxial is the closed-form tip response of a cantilever under
// an end axial load P: u = PL/(EA).
type CantileverAxial struct {
	E, A, L, P float64
}

// Init sets the member properties.
func (o *CantileverAxial) Init(E, A, L, P float64) {
	o.E, o.A, o.L, o.P = E, A, L, P
}

// Calc returns the axial tip displacement and the (constant) axial
// force carried by the member.
func (o CantileverAxial) Calc() (u, n float64) {
	u = o.P * o.L / (o.E * o.A)
	n = o.P
	return
}

// CantileverTransverse is the closed-form tip response of a cantilever
// under an end transverse load P, bending about the axis with second
// moment of area I.
type CantileverTransverse struct {
	E, I, L, P float64
}

// Init sets the member properties.
func (o *CantileverTransverse) Init(E, I, L, P float64) {
	o.E, o.I, o.L, o.P = E, I, L, P
}

// Calc returns the tip transverse deflection, tip rotation, and the
// fixed-end moment magnitude.
func (o CantileverTransverse) Calc() (deflection, rotation, fixedEndMoment float64) {
	deflection = o.P * o.L * o.L * o.L / (3 * o.E * o.I)
	rotation = o.P * o.L * o.L / (2 * o.E * o.I)
	fixedEndMoment = o.P * o.L
	return
}

// SimplySupportedUDL is the closed-form midspan response of a simply
// supported beam under a uniformly distributed load w.
type SimplySupportedUDL struct {
	E, I, L, W float64 // W is load per unit length
}

// Init sets the member properties.
func (o *SimplySupportedUDL) Init(E, I, L, W float64) {
	o.E, o.I, o.L, o.W = E, I, L, W
}

// Calc returns the midspan deflection and the peak bending moment.
func (o SimplySupportedUDL) Calc() (midspanDeflection, peakMoment float64) {
	midspanDeflection = 5 * o.W * math.Pow(o.L, 4) / (384 * o.E * o.I)
	peakMoment = o.W * o.L * o.L / 8
	return
}

// CantileverFirstMode is the closed-form first transverse natural
// frequency of a uniform cantilever column (Euler-Bernoulli).
type CantileverFirstMode struct {
	E, I, A, Rho, L float64
}

// Init sets the member properties.
func (o *CantileverFirstMode) Init(E, I, A, Rho, L float64) {
	o.E, o.I, o.A, o.Rho, o.L = E, I, A, Rho, L
}

// betaCantilever1 is the first root of cos(beta L)cosh(beta L) = -1 for
// a fixed-free uniform beam.
const betaCantilever1 = 1.875104

// Calc returns the first natural circular frequency and frequency in Hz.
func (o CantileverFirstMode) Calc() (omega, hz float64) {
	omega = (betaCantilever1 * betaCantilever1 / (o.L * o.L)) * math.Sqrt(o.E*o.I/(o.Rho*o.A))
	hz = omega / (2 * math.Pi)
	return
}
