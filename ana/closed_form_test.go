package ana

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCantileverAxialCalc(t *testing.T) {
	var c CantileverAxial
	c.Init(2e11, 1e-2, 1.0, 1000.0)
	u, n := c.Calc()
	require.InDelta(t, 5e-7, u, 1e-12)
	require.Equal(t, 1000.0, n)
}

func TestCantileverTransverseCalc(t *testing.T) {
	var c CantileverTransverse
	c.Init(2e11, 1e-6, 2.0, 1000.0)
	deflection, rotation, mfix := c.Calc()
	require.InDelta(t, 1000.0*8.0/(3*2e11*1e-6), deflection, 1e-12)
	require.InDelta(t, 1000.0*4.0/(2*2e11*1e-6), rotation, 1e-12)
	require.Equal(t, 2000.0, mfix)
}

func TestSimplySupportedUDLCalc(t *testing.T) {
	var b SimplySupportedUDL
	b.Init(2e11, 1e-6, 4.0, -1000.0)
	defl, moment := b.Calc()
	require.InDelta(t, 5*(-1000.0)*256.0/(384*2e11*1e-6), defl, 1e-9)
	require.InDelta(t, -1000.0*16.0/8.0, moment, 1e-9)
}

func TestCantileverFirstModeCalc(t *testing.T) {
	var m CantileverFirstMode
	m.Init(2e11, 8.333e-8, 1e-3, 7850, 3.0)
	omega, hz := m.Calc()
	require.Greater(t, omega, 0.0)
	require.InDelta(t, omega/(2*3.141592653589793), hz, 1e-9)
}
