/*
 * plot_test.go, part of gochemkit.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chemplot

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	chem "github.com/rmera/gochemkit"
)

func helix(t *testing.T, n int) *chem.Molecule {
	t.Helper()
	names := make([]string, n)
	for i := range names {
		names[i] = "ALA"
	}
	phi, psi := chem.RepeatPhiPsi(n, chem.HelixPhiPsi)
	mol, err := chem.BuildBackbone(names, phi, psi, "A", 1)
	require.NoError(t, err)
	return mol
}

func TestRamaPoints(t *testing.T) {
	mol := helix(t, 10)
	points, err := RamaPoints(mol, mol.Coords[0], "")
	require.NoError(t, err)
	//the first and last residues have no phi or psi.
	require.Len(t, points, 8)
	alpha := 0
	for _, p := range points {
		assert.InDelta(t, chem.HelixPhiPsi[0], p.Phi, 1e-6)
		assert.InDelta(t, chem.HelixPhiPsi[1], p.Psi, 1e-6)
		assert.NotEqual(t, Beta, p.SS)
		if p.SS == Alpha {
			alpha++
		}
	}
	//residues 2 to 9 are inside the helix
	assert.Equal(t, 8, alpha)
	assert.Equal(t, 2, points[0].MolID)
	assert.Equal(t, "ALA", points[0].MolName)

	_, err = RamaPoints(mol, mol.Coords[0], "B")
	assert.Error(t, err)
}

func TestRamaPointsSkip(t *testing.T) {
	names := []string{"ALA", "GLY", "ALA", "PRO", "ALA", "GLY", "ALA"}
	phi, psi := chem.RepeatPhiPsi(len(names), chem.HelixPhiPsi)
	mol, err := chem.BuildBackbone(names, phi, psi, "A", 1)
	require.NoError(t, err)
	all, err := RamaPoints(mol, mol.Coords[0], "")
	require.NoError(t, err)
	require.Len(t, all, 5)
	points, err := RamaPoints(mol, mol.Coords[0], "", "GLY", "PRO")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 3, points[0].MolID)
	assert.Equal(t, 5, points[1].MolID)
	_, err = RamaPoints(mol, mol.Coords[0], "", "ALA", "GLY", "PRO")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRamaPlot(t *testing.T) {
	mol := helix(t, 10)
	points, err := RamaPoints(mol, mol.Coords[0], "A")
	require.NoError(t, err)
	p, err := RamaPlot(points, []int{0}, "Helix")
	require.NoError(t, err)
	assert.Equal(t, "Helix", p.Title.Text)
	assert.Equal(t, 3*vg.Millimeter, p.Title.Padding)

	var buf bytes.Buffer
	require.NoError(t, WriteTo(&buf, p, 4*vg.Inch, "png"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	name := filepath.Join(t.TempDir(), "rama.svg")
	require.NoError(t, Save(p, 4*vg.Inch, name))
	assert.FileExists(t, name)

	_, err = RamaPlot(nil, nil, "empty")
	assert.ErrorIs(t, err, ErrNoData)
	_, err = RamaPlot(points, []int{len(points)}, "bad tag")
	assert.Error(t, err)
	assert.Error(t, WriteTo(&buf, p, vg.Inch, "bmp"))
}

func TestColors(t *testing.T) {
	seen := make(map[[3]uint8]bool)
	for k := 0; k < 3; k++ {
		c := colors(k, 3)
		assert.Equal(t, uint8(255), c.A)
		seen[[3]uint8{c.R, c.G, c.B}] = true
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, "alpha", Alpha.String())
	assert.Equal(t, "coil", SS(7).String())
}
