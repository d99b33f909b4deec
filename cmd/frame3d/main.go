// Copyright 2024 The Frame3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command frame3d runs a linear static analysis on a JSON model file and
// prints nodal displacements and the infinity-norm residual.
package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/frame3d"
	"github.com/cpmech/frame3d/inp"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	flag.Parse()
	if len(flag.Args()) < 1 {
		chk.Panic("please provide a model JSON file. Ex.: frame3d model.json [combination]\n")
	}
	fnamepath := flag.Arg(0)

	combination := "base"
	if len(flag.Args()) > 1 {
		combination = flag.Arg(1)
	}

	io.PfWhite("\nframe3d -- 3D frame static analysis\n\n")

	model, err := inp.ReadModel(fnamepath)
	if err != nil {
		chk.Panic("reading model: %v\n", err)
	}

	combo, ok := model.FindCombination(combination)
	if !ok {
		chk.Panic("load combination %q not found\n", combination)
	}

	res, err := frame3d.Analyze(model, combo)
	if err != nil {
		chk.Panic("analysis failed: %v\n", err)
	}
	if res.Status != "converged" {
		io.PfRed("analysis did not converge: %s (%s)\n", res.Status, res.Message)
		return
	}

	io.Pf("displacements:\n")
	for i := 0; i < len(res.U); i += 6 {
		io.Pf("  dof %3d: ux=%12.6e uy=%12.6e uz=%12.6e rx=%12.6e ry=%12.6e rz=%12.6e\n",
			i/6, res.U[i], res.U[i+1], res.U[i+2], res.U[i+3], res.U[i+4], res.U[i+5])
	}
	io.Pf("\nresidual (inf-norm): %12.6e\n", res.ResidualInf)
}
