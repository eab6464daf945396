/*
 * graph_test.go, part of gochemkit.
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

package chemgraph

import (
	"testing"

	chem "github.com/rmera/gochemkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smiles(t *testing.T, s string) *chem.Molecule {
	t.Helper()
	mol, err := chem.ParseSMILES(s)
	require.NoError(t, err, s)
	return mol
}

func TestRings(t *testing.T) {
	mol := smiles(t, "Oc1ccccc1")
	g := New(mol, true)
	assert.Equal(t, [][]int{{1, 2, 3, 4, 5, 6}}, g.Rings(0))
	assert.Equal(t, 1, g.CycleRank())

	naph := New(smiles(t, "C1=CC=C2C=CC=CC2=C1"), false)
	assert.Equal(t, [][]int{{0, 1, 2, 3, 8, 9}, {3, 4, 5, 6, 7, 8}}, naph.Rings(0))
	assert.Equal(t, 2, naph.CycleRank())
	assert.Empty(t, naph.Rings(5))

	assert.Empty(t, New(smiles(t, "CCCCO"), false).Rings(0))
}

func TestComponents(t *testing.T) {
	g := New(smiles(t, "CCO.O.[Na+]"), false)
	assert.Equal(t, [][]int{{0, 1, 2}, {3}, {4}}, g.Components())
}

func TestHydrogensLeftOut(t *testing.T) {
	mol := smiles(t, "CO")
	chem.AddHydrogens(mol, false)
	require.Equal(t, 6, mol.Len())
	assert.Len(t, New(mol, false).Components(), 1)
	heavy := New(mol, true)
	assert.Equal(t, 2, heavy.Nodes().Len())
	assert.Equal(t, 1, heavy.Edges().Len())
	assert.Equal(t, "O", heavy.Atom(1).Symbol)
}

func TestPerceiveAromaticity(t *testing.T) {
	cases := []struct {
		smiles string
		rings  int
	}{
		{"C1=CC=CC=C1", 1},
		{"C1=CC=C2C=CC=CC2=C1", 2},
		{"C1=CNC=C1", 1},
		{"O=C1NC=CC=C1", 1},
		{"C1=COC=C1", 1},
		{"C1=CCC=C1", 0},
		{"C1CCCCC1", 0},
		{"C1=CC=CC=CC=C1", 0},
		{"c1ccncc1", 1},
	}
	for _, c := range cases {
		mol := smiles(t, c.smiles)
		assert.Equal(t, c.rings, PerceiveAromaticity(mol), c.smiles)
	}
	benzene := smiles(t, "C1=CC=CC=C1")
	PerceiveAromaticity(benzene)
	for _, at := range benzene.Atoms {
		assert.True(t, at.Aromatic)
	}
	for _, b := range benzene.Bonds() {
		assert.True(t, b.Aromatic)
		assert.NotEqual(t, 1.5, b.Order)
	}
	toluene := smiles(t, "CC1=CC=CC=C1")
	PerceiveAromaticity(toluene)
	assert.False(t, toluene.Atoms[0].Aromatic)
	assert.False(t, chem.Bonded(toluene.Atoms[0], toluene.Atoms[1]).Aromatic)
}
