package linsolve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cpmech/frame3d/assembler"
	"github.com/cpmech/frame3d/inp"
)

func cantileverAxial() (inp.Model, inp.LoadCombination) {
	return inp.Model{
		Nodes: []inp.Node{
			{ID: 1, X: 0, Y: 0, Z: 0},
			{ID: 2, X: 1, Y: 0, Z: 0},
		},
		Elements: []inp.Element{
			{ID: 1, StartNodeID: 1, EndNodeID: 2, MaterialID: 1, SectionID: 1},
		},
		Materials: []inp.Material{{ID: 1, E: 2e11, Nu: 0.3, Rho: 0}},
		Sections:  []inp.Section{{ID: 1, A: 1e-2, Iy: 1e-6, Iz: 1e-6, J: 2e-6}},
		BCs:       []inp.BoundaryCondition{{NodeID: 1, RestraintBits: 0x3F}},
		PointLoads: []inp.PointLoad{
			{NodeID: 2, Case: "dead", Fx: 1000},
		},
	}, inp.LoadCombination{Label: "base", Factors: map[inp.LoadCase]float64{"dead": 1.0}}
}

func cantileverTransverse() (inp.Model, inp.LoadCombination) {
	return inp.Model{
		Nodes: []inp.Node{
			{ID: 1, X: 0, Y: 0, Z: 0},
			{ID: 2, X: 2, Y: 0, Z: 0},
		},
		Elements: []inp.Element{
			{ID: 1, StartNodeID: 1, EndNodeID: 2, MaterialID: 1, SectionID: 1},
		},
		Materials: []inp.Material{{ID: 1, E: 2e11, Nu: 0.3, Rho: 0}},
		Sections:  []inp.Section{{ID: 1, A: 1e-2, Iy: 1e-6, Iz: 1e-6, J: 2e-6}},
		BCs:       []inp.BoundaryCondition{{NodeID: 1, RestraintBits: 0x3F}},
		PointLoads: []inp.PointLoad{
			{NodeID: 2, Case: "dead", Fy: 1000},
		},
	}, inp.LoadCombination{Label: "base", Factors: map[inp.LoadCase]float64{"dead": 1.0}}
}

func TestSolveCantileverAxialTipDisplacement(t *testing.T) {
	m, combo := cantileverAxial()
	sys, err := assembler.Assemble(m, combo)
	require.NoError(t, err)

	res, err := Solve(sys)
	require.NoError(t, err)
	require.Equal(t, StatusConverged, res.Status)

	// u_x(n2) = FL/(EA) = 1000*1/(2e11*1e-2) = 5e-7
	dof, ok := sys.DOFMap.GlobalDOF(2, 0)
	require.True(t, ok)
	require.InDelta(t, 5e-7, res.U[dof], 1e-12)

	// reaction at node 1: fx = -1000
	rdof, _ := sys.DOFMap.GlobalDOF(1, 0)
	require.InDelta(t, -1000.0, res.Reactions[rdof], 1e-6)
}

func TestSolveCantileverTransverseTip(t *testing.T) {
	m, combo := cantileverTransverse()
	sys, err := assembler.Assemble(m, combo)
	require.NoError(t, err)

	res, err := Solve(sys)
	require.NoError(t, err)
	require.Equal(t, StatusConverged, res.Status)

	L := 2.0
	E := 2e11
	Iz := 1e-6
	P := 1000.0
	wantUy := P * L * L * L / (3 * E * Iz)
	wantRz := P * L * L / (2 * E * Iz)

	uyDof, _ := sys.DOFMap.GlobalDOF(2, 1)
	rzDof, _ := sys.DOFMap.GlobalDOF(2, 5)
	require.InDelta(t, wantUy, res.U[uyDof], wantUy*1e-6)
	require.InDelta(t, wantRz, res.U[rzDof], wantRz*1e-6)

	mzDof, _ := sys.DOFMap.GlobalDOF(1, 5)
	require.InDelta(t, -P*L, res.Reactions[mzDof], 1e-6)
}

func TestSolveResidualIsSmall(t *testing.T) {
	m, combo := cantileverAxial()
	sys, err := assembler.Assemble(m, combo)
	require.NoError(t, err)

	res, err := Solve(sys)
	require.NoError(t, err)
	require.Less(t, res.ResidualInf, 1e-3)
	require.GreaterOrEqual(t, res.Residual2, res.ResidualInf)
}

func TestSolveElementForcesMatchAxialLoad(t *testing.T) {
	m, combo := cantileverAxial()
	sys, err := assembler.Assemble(m, combo)
	require.NoError(t, err)

	res, err := Solve(sys)
	require.NoError(t, err)
	require.Len(t, res.PerElement, 1)
	require.InDelta(t, 1000.0, res.PerElement[0].MaxN, 1e-6)
}

func TestSolveSingularWhenUnrestrained(t *testing.T) {
	m, combo := cantileverAxial()
	m.BCs = nil
	sys, err := assembler.Assemble(m, combo)
	require.NoError(t, err)

	res, err := Solve(sys)
	require.NoError(t, err)
	require.Equal(t, StatusSingular, res.Status)
}

func TestMaxAbsPicksLargerMagnitude(t *testing.T) {
	require.Equal(t, 5.0, maxAbs(-5, 3))
	require.Equal(t, 5.0, maxAbs(3, -5))
}

func TestVecNormInf(t *testing.T) {
	require.Equal(t, 4.0, vecNormInf([]float64{1, -4, 2}))
	require.Equal(t, 0.0, math.Abs(vecNormInf(nil)))
}
