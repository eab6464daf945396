/*
 * toolkit_test.go, part of gochemkit.
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

package toolkit

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/gochemkit"
	v3 "github.com/rmera/gochemkit/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func atomIndex(mol *chem.Molecule, resnum int, name string) int {
	for i, at := range mol.Atoms {
		if at.MolID == resnum && at.Name == name {
			return i
		}
	}
	return -1
}

//growChain appends the atoms in names to residue resnum as an extended chain
//starting from its N, CA and CB atoms.
func growChain(t *testing.T, mol *chem.Molecule, resnum int, names, symbols []string) {
	t.Helper()
	prev := []int{atomIndex(mol, resnum, "N"), atomIndex(mol, resnum, "CA"), atomIndex(mol, resnum, "CB")}
	ref := mol.Atom(prev[1])
	for k, name := range names {
		var c [3]*v3.Matrix
		for j := range c {
			c[j] = mol.Coord(prev[len(prev)-3+j], 0)
		}
		p := chem.Place(c[0], c[1], c[2], 1.52, 109.5, 180)
		at := &chem.Atom{Name: name, Symbol: symbols[k], MolName: ref.MolName, MolID: resnum, Chain: ref.Chain, Occupancy: 1}
		mol.AppendAtom(at, [][3]float64{{p.At(0, 0), p.At(0, 1), p.At(0, 2)}})
		prev = append(prev, mol.Len()-1)
	}
	mol.ResetIDs()
}

//peptideFile writes a GLY-LYS-GLY tripeptide with a complete lysine to a PDB file.
func peptideFile(t *testing.T) string {
	t.Helper()
	names := []string{"GLY", "LYS", "GLY"}
	phi, psi := chem.RepeatPhiPsi(len(names), chem.StrandPhiPsi)
	mol, err := chem.BuildBackbone(names, phi, psi, "A", 1)
	require.NoError(t, err)
	growChain(t, mol, 2, []string{"CG", "CD", "CE", "NZ"}, []string{"C", "C", "C", "N"})
	mol.Title = "GKG"
	path := filepath.Join(t.TempDir(), "gkg.pdb")
	require.NoError(t, chem.PDBFileWrite(path, mol))
	return path
}

func TestNew(t *testing.T) {
	for _, name := range []string{"ob", "rdk", "RDK"} {
		tk, err := New(name)
		require.NoError(t, err, name)
		assert.True(t, Supported(tk.Backend()))
	}
	_, err := New("cdk")
	assert.ErrorIs(t, err, ErrNoSupportedToolkit)
	assert.Equal(t, "there is no supported toolkit", ErrNoSupportedToolkit.Error())
	assert.Equal(t, []string{"ob", "rdk"}, Backends())
	assert.True(t, Supported(" RDK"))
	assert.False(t, Supported("cdk"))
	ob, _ := New(OB)
	rdk, _ := New(RDK)
	assert.Equal(t, chem.Neutral, ob.Protonation())
	assert.Equal(t, chem.Physiological, rdk.Protonation())
}

func TestFormat(t *testing.T) {
	cases := map[string]string{"a.sdf": "sdf", "a.mol": "sdf", "b.SMI": "smi", "c.pdb.gz": "pdb", "d.cif.zst": "cif", "e.xyz": "xyz"}
	for path, want := range cases {
		f, err := Format(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, f, path)
	}
	_, err := Format("a.txt")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	tk, _ := New(OB)
	_, err = tk.ReadString("mol2", "")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestProteinHydrogens(t *testing.T) {
	path := peptideFile(t)
	for _, backend := range Backends() {
		tk, err := New(backend)
		require.NoError(t, err)
		mols, err := tk.ReadAll("", path)
		require.NoError(t, err)
		require.Len(t, mols, 1)
		prot := mols[0]
		prot.SetProtein(true)
		assert.True(t, prot.Protein())
		assert.Equal(t, "GKG", prot.Title())
		heavy := prot.NumAtoms()
		sizes := chem.ResidueSizes(prot.Chem())
		require.Len(t, prot.Residues(), 3)

		full, polar := 20, 7
		if tk.Backend() == RDK {
			full, polar = 21, 8
		}
		assert.Equal(t, full, prot.AddH(false), backend)
		assert.Equal(t, 0, prot.AddH(false), backend)
		assert.Equal(t, heavy+full, prot.NumAtoms())
		assert.Len(t, prot.Residues(), 3)
		assert.Equal(t, full, prot.RemoveH())
		assert.Equal(t, heavy, prot.NumAtoms())
		assert.Equal(t, sizes, chem.ResidueSizes(prot.Chem()))

		assert.Equal(t, polar, prot.AddH(true), backend)
		assert.Equal(t, 0, prot.AddH(true), backend)
		prot.RemoveH()
		assert.Equal(t, sizes, chem.ResidueSizes(prot.Chem()))

		charge := 0
		for _, at := range prot.Atoms() {
			charge += at.FormalCharge
		}
		if tk.Backend() == RDK {
			assert.Equal(t, 1, charge)
		} else {
			assert.Equal(t, 0, charge)
		}
	}
}

func TestHelixResidues(t *testing.T) {
	names := make([]string, 29)
	for i := range names {
		names[i] = "ALA"
	}
	phi, psi := chem.RepeatPhiPsi(len(names), chem.HelixPhiPsi)
	mol, err := chem.BuildBackbone(names, phi, psi, "A", 1)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "helix.pdb")
	require.NoError(t, chem.PDBFileWrite(path, mol))
	for _, backend := range Backends() {
		tk, err := New(backend)
		require.NoError(t, err)
		mols, err := tk.ReadAll("", path)
		require.NoError(t, err)
		require.Len(t, mols, 1)
		prot := mols[0]
		prot.SetProtein(true)
		res := prot.ResDict()
		require.Equal(t, 29, res.Len(), backend)
		alpha, ok := res.Column("isalpha")
		require.True(t, ok)
		beta, ok := res.Column("isbeta")
		require.True(t, ok)
		na, nb := 0, 0
		for i := range alpha.Bool {
			assert.False(t, alpha.Bool[i] && beta.Bool[i])
			if alpha.Bool[i] {
				na++
			}
			if beta.Bool[i] {
				nb++
			}
		}
		assert.Equal(t, 27, na, backend)
		assert.Equal(t, 0, nb, backend)
		assert.False(t, alpha.Bool[0])
		assert.False(t, alpha.Bool[28])
	}
}

func TestAtomDictCache(t *testing.T) {
	tk, _ := New(OB)
	mol, err := tk.ReadString("smi", "c1ccccc1O phenol")
	require.NoError(t, err)
	assert.Equal(t, "phenol", mol.Title())
	d := mol.AtomDict()
	assert.Equal(t, 7, d.Len())
	assert.Same(t, d, mol.AtomDict())
	assert.Equal(t, 1, mol.AddH(true))
	d2 := mol.AtomDict()
	assert.NotSame(t, d, d2)
	assert.Equal(t, 8, d2.Len())
	assert.Equal(t, 0, mol.ResDict().Len())
	mol.SetProtein(true)
	assert.NotSame(t, d2, mol.AtomDict())
}

func TestKekuleAromaticity(t *testing.T) {
	tk, _ := New(RDK)
	mol, err := tk.ReadString("smi", "C1=CC=CC=C1")
	require.NoError(t, err)
	types, ok := mol.AtomDict().Column("atomtype")
	require.True(t, ok)
	assert.Equal(t, []string{"C.ar", "C.ar", "C.ar", "C.ar", "C.ar", "C.ar"}, types.Str)
	assert.Equal(t, 6, mol.AddH(false))
}

func TestSDFFiles(t *testing.T) {
	tk, _ := New(OB)
	phenol, err := tk.ReadString("smi", "c1ccccc1O")
	require.NoError(t, err)
	acid, err := tk.ReadString("smi", "CC(=O)[O-] acetate")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "ligands.sdf.gz")
	require.NoError(t, WriteFile("", path, phenol, acid))

	mols, err := tk.ReadAll("", path)
	require.NoError(t, err)
	require.Len(t, mols, 2)
	assert.Equal(t, 7, mols[0].NumAtoms())
	assert.True(t, mols[0].Atoms()[0].Aromatic)
	assert.Equal(t, "acetate", mols[1].Title())
	assert.Equal(t, -1, mols[1].Atoms()[3].FormalCharge)
	assert.Equal(t, 3, mols[1].AddH(false))

	R, err := tk.ReadFile("sdf", path)
	require.NoError(t, err)
	_, err = R.Next()
	require.NoError(t, err)
	_, err = R.Next()
	require.NoError(t, err)
	_, err = R.Next()
	assert.Equal(t, io.EOF, err)
	assert.NoError(t, R.Close())

	assert.Error(t, WriteFile("xyz", filepath.Join(t.TempDir(), "two.xyz"), phenol, acid))
}

func TestReadErrors(t *testing.T) {
	tk, _ := New(OB)
	_, err := tk.ReadAll("", filepath.Join(t.TempDir(), "missing.sdf"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.sdf")
	require.NoError(t, os.WriteFile(bad, []byte("title\n\n\n  x  y\n"), 0o644))
	mols, err := tk.ReadAll("", bad)
	assert.Error(t, err)
	assert.Nil(t, mols)

	_, err = tk.ReadString("smi", "")
	assert.ErrorIs(t, err, ErrNoMolecule)
	_, err = tk.ReadString("smi", "C1CC")
	assert.Error(t, err)
}

func TestXYZ(t *testing.T) {
	tk, _ := New(OB)
	mol, err := tk.ReadString("xyz", "3\nwater\nO 0 0 0\nH 0.96 0 0\nH -0.24 0.93 0\n")
	require.NoError(t, err)
	assert.Equal(t, "water", mol.Title())
	assert.Len(t, mol.Chem().Bonds(), 2)
	assert.Equal(t, 0, mol.AddH(false))
	out, err := mol.Write("smi")
	require.NoError(t, err)
	assert.Equal(t, "O\twater\n", out)
}

func TestWriteFormats(t *testing.T) {
	tk, _ := New(RDK)
	mols, err := tk.ReadAll("", peptideFile(t))
	require.NoError(t, err)
	prot := mols[0]
	for _, f := range []string{"pdb", "cif", "xyz", "sdf", "smi"} {
		s, err := prot.Write(f)
		require.NoError(t, err, f)
		assert.NotEmpty(t, s, f)
	}
	s, err := prot.Write("pdb")
	require.NoError(t, err)
	again, err := tk.ReadString("pdb", s)
	require.NoError(t, err)
	assert.Equal(t, prot.NumAtoms(), again.NumAtoms())
	_, err = prot.Write("mol2")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
