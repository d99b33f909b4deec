// Copyright 2024 The Frame3D Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package assembler maps element contributions into the global stiffness
// and mass matrices, applies boundary conditions, and builds the load
// vector, per SPEC_FULL.md §4.A.
package assembler

import "sort"

// DOFMap assigns contiguous global equation numbers to node DOFs: node
// ids are sorted ascending, and node with assembler index i owns global
// DOFs [6i, 6i+6).
type DOFMap struct {
	order   []int64
	indexOf map[int64]int
}

// NewDOFMap builds a DOFMap over the given node ids.
func NewDOFMap(nodeIDs []int64) *DOFMap {
	order := make([]int64, len(nodeIDs))
	copy(order, nodeIDs)
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	indexOf := make(map[int64]int, len(order))
	for i, id := range order {
		indexOf[id] = i
	}
	return &DOFMap{order: order, indexOf: indexOf}
}

// NumNodes returns the number of nodes in the map.
func (d *DOFMap) NumNodes() int { return len(d.order) }

// NumDOF returns the total number of global DOFs, N = 6*|nodes|.
func (d *DOFMap) NumDOF() int { return 6 * len(d.order) }

// Index returns the assembler (sorted) index of a node id.
func (d *DOFMap) Index(nodeID int64) (int, bool) {
	i, ok := d.indexOf[nodeID]
	return i, ok
}

// GlobalDOF returns the global DOF number for node id, local DOF k (0..5).
func (d *DOFMap) GlobalDOF(nodeID int64, k int) (int, bool) {
	i, ok := d.indexOf[nodeID]
	if !ok {
		return 0, false
	}
	return 6*i + k, true
}

// ElementDOFs returns the 12 global DOF indices of an element, in the
// mandatory local ordering (6 for the start node, 6 for the end node).
func (d *DOFMap) ElementDOFs(startNodeID, endNodeID int64) ([12]int, bool) {
	var dofs [12]int
	for k := 0; k < 6; k++ {
		g, ok := d.GlobalDOF(startNodeID, k)
		if !ok {
			return dofs, false
		}
		dofs[k] = g
	}
	for k := 0; k < 6; k++ {
		g, ok := d.GlobalDOF(endNodeID, k)
		if !ok {
			return dofs, false
		}
		dofs[6+k] = g
	}
	return dofs, true
}
