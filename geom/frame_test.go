package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLength(t *testing.T) {
	l, err := Length(Vec3{0, 0, 0}, Vec3{3, 4, 0})
	require.NoError(t, err)
	require.InDelta(t, 5.0, l, 1e-12)
}

func TestLengthCoincident(t *testing.T) {
	_, err := Length(Vec3{1, 1, 1}, Vec3{1, 1, 1})
	require.Error(t, err)
}

func TestLocalBasisHorizontal(t *testing.T) {
	b, l, err := LocalBasis(Vec3{0, 0, 0}, Vec3{1, 0, 0}, 0)
	require.NoError(t, err)
	require.InDelta(t, 1.0, l, 1e-12)
	require.InDelta(t, 1.0, b.Lx.X, 1e-12)
	require.InDelta(t, 0.0, b.Lx.Y, 1e-12)
	require.InDelta(t, 0.0, b.Lx.Z, 1e-12)

	// basis stays orthonormal
	require.InDelta(t, 0.0, b.Lx.Dot(b.Ly), 1e-12)
	require.InDelta(t, 0.0, b.Lx.Dot(b.Lz), 1e-12)
	require.InDelta(t, 0.0, b.Ly.Dot(b.Lz), 1e-12)
	require.InDelta(t, 1.0, b.Ly.Norm(), 1e-12)
	require.InDelta(t, 1.0, b.Lz.Norm(), 1e-12)
}

func TestLocalBasisNearVertical(t *testing.T) {
	// element running straight up: |lx . z| = 1 > 0.99, reference switches to y
	b, _, err := LocalBasis(Vec3{0, 0, 0}, Vec3{0, 0, 5}, 0)
	require.NoError(t, err)
	require.InDelta(t, 0.0, b.Lx.Dot(b.Ly), 1e-12)
	require.InDelta(t, 0.0, b.Lx.Dot(b.Lz), 1e-12)
}

func TestLocalBasisRollRotatesAboutLocalX(t *testing.T) {
	b0, _, err := LocalBasis(Vec3{0, 0, 0}, Vec3{1, 0, 0}, 0)
	require.NoError(t, err)
	b1, _, err := LocalBasis(Vec3{0, 0, 0}, Vec3{1, 0, 0}, math.Pi/2)
	require.NoError(t, err)

	// local x is unaffected by roll
	require.InDelta(t, b0.Lx.X, b1.Lx.X, 1e-12)
	require.InDelta(t, b0.Lx.Y, b1.Lx.Y, 1e-12)
	require.InDelta(t, b0.Lx.Z, b1.Lx.Z, 1e-12)

	// 90 degree roll swaps y and z (up to sign)
	require.InDelta(t, b0.Lz.X, b1.Ly.X, 1e-9)
	require.InDelta(t, b0.Lz.Y, b1.Ly.Y, 1e-9)
	require.InDelta(t, b0.Lz.Z, b1.Ly.Z, 1e-9)
}
