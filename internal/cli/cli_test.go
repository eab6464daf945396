/*
 * cli_test.go, part of gochemkit.
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

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/rmera/gochemkit"
	"github.com/rmera/gochemkit/golden"
	"github.com/rmera/gochemkit/toolkit"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func smilesFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mols.smi")
	require.NoError(t, os.WriteFile(path, []byte("CCO ethanol\nc1ccccc1 benzene\n"), 0o644))
	return path
}

func helixFile(t *testing.T) string {
	t.Helper()
	names := strings.Fields("ALA ALA ALA ALA ALA ALA ALA ALA ALA ALA")
	phi, psi := chem.RepeatPhiPsi(len(names), chem.HelixPhiPsi)
	mol, err := chem.BuildBackbone(names, phi, psi, "A", 1)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "helix.pdb")
	require.NoError(t, chem.PDBFileWrite(path, mol))
	return path
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "gochemkit", cmd.Use)
	for _, name := range []string{"count", "convert", "features", "golden", "ss", "rama"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
	backend := cmd.PersistentFlags().Lookup("backend")
	require.NotNil(t, backend)
	assert.Equal(t, "b", backend.Shorthand)
}

func TestCount(t *testing.T) {
	path := smilesFile(t)
	out, err := run(t, "count", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\t2 molecules\t9 atoms\t2 residues\n", out)

	out, err = run(t, "count", "--hydrogens", "all", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\t2 molecules\t21 atoms\t2 residues\n", out)

	_, err = run(t, "count", "--hydrogens", "some", path)
	assert.Error(t, err)
	_, err = run(t, "count", filepath.Join(t.TempDir(), "missing.sdf"))
	assert.Error(t, err)
}

func TestUnknownBackend(t *testing.T) {
	_, err := run(t, "--backend", "cdk", "count", smilesFile(t))
	assert.ErrorIs(t, err, toolkit.ErrNoSupportedToolkit)
	path := smilesFile(t)
	out, err := run(t, "--backend", "RDK", "count", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\t2 molecules\t9 atoms\t2 residues\n", out)
}

func TestConvert(t *testing.T) {
	in := smilesFile(t)
	out := filepath.Join(t.TempDir(), "mols.sdf.gz")
	_, err := run(t, "convert", "--hydrogens", "polar", in, out)
	require.NoError(t, err)
	res, err := run(t, "count", out)
	require.NoError(t, err)
	assert.Equal(t, out+"\t2 molecules\t10 atoms\t2 residues\n", res)

	_, err = run(t, "convert", in, filepath.Join(t.TempDir(), "mols.xyz"))
	assert.Error(t, err)
}

func TestFeatures(t *testing.T) {
	out, err := run(t, "-b", "rdk", "features", smilesFile(t))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1+9)
	assert.True(t, strings.HasPrefix(lines[0], "id,coords_x,coords_y,coords_z,"))
	assert.True(t, strings.HasSuffix(lines[0], ",mol_idx"))
	assert.True(t, strings.HasSuffix(lines[9], ",1"))

	pq := filepath.Join(t.TempDir(), "helix.parquet")
	_, err = run(t, "features", "--residues", "-o", pq, helixFile(t))
	require.NoError(t, err)
	assert.FileExists(t, pq)
}

func TestGolden(t *testing.T) {
	dir := t.TempDir()
	tk, err := toolkit.New(toolkit.OB)
	require.NoError(t, err)
	var mols []*toolkit.Molecule
	for _, s := range []string{"c1ccccc1O phenol", "CC(=O)O acid"} {
		m, err := tk.ReadString("smi", s)
		require.NoError(t, err)
		mols = append(mols, m)
	}
	ligands := filepath.Join(dir, "ligands.sdf")
	require.NoError(t, toolkit.WriteFile("", ligands, mols...))
	snaps := filepath.Join(dir, "snapshots")

	_, err = run(t, "golden", "-l", ligands, "--dir", snaps)
	assert.Error(t, err)

	out, err := run(t, "golden", "-l", ligands, "-p", helixFile(t), "--dir", snaps, "--record")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(snaps, "ob", "ligands.csv"))
	assert.FileExists(t, filepath.Join(snaps, "ob", "ligands_protein.csv"))

	out, err = run(t, "golden", "-l", ligands, "--dir", snaps)
	require.NoError(t, err)
	assert.Contains(t, out, "matches")

	_, err = run(t, "-b", "rdk", "golden", "-l", ligands, "--dir", snaps)
	assert.Error(t, err)

	_, err = run(t, "golden", "--dir", snaps)
	assert.Error(t, err)
}

func TestGoldenMismatch(t *testing.T) {
	dir := t.TempDir()
	ligands := filepath.Join(dir, "a.smi")
	require.NoError(t, os.WriteFile(ligands, []byte("CCN amine\n"), 0o644))
	snaps := filepath.Join(dir, "snapshots")
	_, err := run(t, "golden", "-l", ligands, "--dir", snaps, "--name", "amine", "--record")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(ligands, []byte("CCO alcohol\n"), 0o644))
	_, err = run(t, "golden", "-l", ligands, "--dir", snaps, "--name", "amine")
	assert.ErrorIs(t, err, golden.ErrNotEqual)
}

func TestSS(t *testing.T) {
	out, err := run(t, "ss", helixFile(t))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "A\t1\tALA\tC", lines[0])
	assert.Equal(t, "A\t2\tALA\tH", lines[1])
	assert.Equal(t, "A\t10\tALA\tC", lines[9])
	_, err = run(t, "ss", "--frame", "2", helixFile(t))
	assert.Error(t, err)
}

func TestRama(t *testing.T) {
	plot := filepath.Join(t.TempDir(), "rama.svg")
	_, err := run(t, "rama", "-o", plot, "--tag", "1,3", helixFile(t))
	require.NoError(t, err)
	assert.FileExists(t, plot)
	_, err = run(t, "rama", "-o", plot, "--chains", "Z", helixFile(t))
	assert.Error(t, err)
	_, err = run(t, "rama", "-o", plot, "--skip", "ALA", helixFile(t))
	assert.Error(t, err)
}
