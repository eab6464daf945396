/*
 * harness_test.go, part of gochemkit.
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

package golden

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	chem "github.com/rmera/gochemkit"
	"github.com/rmera/gochemkit/features"
	"github.com/rmera/gochemkit/internal/logging"
	"github.com/rmera/gochemkit/toolkit"
)

var ligandSMILES = []string{"c1ccccc1O phenol", "CC(=O)[O-] acetate", "CCN ethylamine"}

//fixture writes a ligand SDF file and a helical peptide PDB file to a temporary directory.
func fixture(t *testing.T) Case {
	t.Helper()
	dir := t.TempDir()
	tk, err := toolkit.New(toolkit.OB)
	require.NoError(t, err)
	mols := make([]*toolkit.Molecule, len(ligandSMILES))
	for i, s := range ligandSMILES {
		mols[i], err = tk.ReadString("smi", s)
		require.NoError(t, err)
	}
	c := Case{Name: "ligands", Ligands: filepath.Join(dir, "ligands.sdf"), Protein: filepath.Join(dir, "helix.pdb")}
	require.NoError(t, toolkit.WriteFile("", c.Ligands, mols...))

	names := strings.Fields("ALA SER ALA LYS ALA GLU ALA ALA")
	phi, psi := chem.RepeatPhiPsi(len(names), chem.HelixPhiPsi)
	pep, err := chem.BuildBackbone(names, phi, psi, "A", 1)
	require.NoError(t, err)
	require.NoError(t, chem.PDBFileWrite(c.Protein, pep))
	return c
}

func TestRecordAndRun(t *testing.T) {
	c := fixture(t)
	snaps := t.TempDir()
	for _, backend := range toolkit.Backends() {
		tk, err := toolkit.New(backend)
		require.NoError(t, err)
		h := NewHarness(tk, snaps)
		assert.Equal(t, filepath.Join(snaps, backend, "ligands.csv"), h.SnapshotPath("ligands"))

		err = h.Run(c)
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))

		require.NoError(t, h.Record(c))
		assert.FileExists(t, h.SnapshotPath("ligands"))
		assert.FileExists(t, h.SnapshotPath("ligands_protein"))
		assert.NoError(t, h.Run(c))
	}
}

func TestLigandTable(t *testing.T) {
	c := fixture(t)
	tk, _ := toolkit.New(toolkit.OB)
	h := NewHarness(tk, t.TempDir())
	tab, mols, err := h.LigandTable(c.Ligands)
	require.NoError(t, err)
	require.Len(t, mols, 3)
	//7 + 4 + 3 heavy atoms; the polar hydrogens are not in the table.
	assert.Equal(t, 14, tab.Len())
	assert.Equal(t, 8, mols[0].NumAtoms())
	idx, ok := tab.Column(features.MolIdx)
	require.True(t, ok)
	want := []float64{0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2}
	assert.Equal(t, want, idx.Num)
	numhs, _ := tab.Column("numhs")
	assert.Equal(t, float64(1), numhs.Num[6])
	assert.Equal(t, float64(2), numhs.Num[13])

	prot, pmol, err := h.ProteinTable(c.Protein)
	require.NoError(t, err)
	assert.True(t, pmol.Protein())
	//8 residues with a CB, and the OXT.
	assert.Equal(t, 8*5+1, prot.Len())
	alpha, _ := prot.Column("isalpha")
	n := 0
	for _, a := range alpha.Bool {
		if a {
			n++
		}
	}
	assert.Greater(t, n, 0)
}

func TestRunMismatch(t *testing.T) {
	c := fixture(t)
	c.Protein = ""
	tk, _ := toolkit.New(toolkit.RDK)
	core, logs := observer.New(zapcore.DebugLevel)
	h := NewHarness(tk, t.TempDir(), WithLogger(logging.NewFromCore(core)))
	require.NoError(t, h.Record(c))

	path := h.SnapshotPath(c.Name)
	gold, err := features.ReadFile(path)
	require.NoError(t, err)
	at, ok := gold.Column("atomtype")
	require.True(t, ok)
	live := at.Str[8]
	at.Str[8] = "C.1"
	require.NoError(t, features.WriteFile(path, gold))

	err = h.Run(c)
	var cerr *ColumnError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "atomtype", cerr.Column)
	assert.Equal(t, 8, cerr.Row)
	assert.Equal(t, live, cerr.Live)
	assert.Equal(t, "C.1", cerr.Golden)

	rows := logs.FilterMessage("differing row").All()
	require.Len(t, rows, 1)
	ctx := rows[0].ContextMap()
	assert.Equal(t, "rdk", ctx["backend"])
	assert.Equal(t, int64(8), ctx["row"])
	assert.Equal(t, "C.1", ctx["golden"])
	assert.Contains(t, ctx["smiles"], "O-")
	assert.Equal(t, 1, logs.FilterMessage("column is not equal").Len())
}

func TestRunExcludedColumns(t *testing.T) {
	c := fixture(t)
	c.Protein = ""
	tk, _ := toolkit.New(toolkit.OB)
	h := NewHarness(tk, t.TempDir(), WithParquet())
	require.NoError(t, h.Record(c))
	assert.True(t, strings.HasSuffix(h.SnapshotPath(c.Name), filepath.Join("ob", "ligands.parquet")))

	path := h.SnapshotPath(c.Name)
	gold, err := features.ReadFile(path)
	require.NoError(t, err)
	x, _ := gold.Column("coords_x")
	x.Num[0] += 10
	require.NoError(t, features.WriteFile(path, gold))
	assert.NoError(t, h.Run(c))

	strict := NewHarness(tk, filepath.Dir(filepath.Dir(path)), WithParquet(), WithOptions(Options{Tolerance: 1e-6}))
	err = strict.Run(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"coords_x"`)
}
