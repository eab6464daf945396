/*
 * features_test.go, part of gochemkit.
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

package features

import (
	"bytes"
	"math"
	"path/filepath"
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

func column(t *testing.T, tab *Table, name string) *Column {
	t.Helper()
	c, ok := tab.Column(name)
	require.True(t, ok, name)
	return c
}

func TestAtomTablePhenol(t *testing.T) {
	tab := AtomTable(smiles(t, "c1ccccc1O"), false)
	require.Equal(t, 7, tab.Len())
	assert.Equal(t, "id", tab.Names()[0])
	types := column(t, tab, "atomtype").Str
	assert.Equal(t, []string{"C.ar", "C.ar", "C.ar", "C.ar", "C.ar", "C.ar", "O.3"}, types)
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 0, 1}, column(t, tab, "numhs").Num)
	assert.Equal(t, []float64{2, 2, 2, 2, 2, 2, 3}, column(t, tab, "hybridization").Num)
	assert.Equal(t, []float64{6, 6, 6, 6, 6, 6, 8}, column(t, tab, "atomicnum").Num)
	assert.Equal(t, 5.0, column(t, tab, "neighbors_0").Num[6])
	assert.Equal(t, -1.0, column(t, tab, "neighbors_1").Num[6])
	assert.Equal(t, []float64{0, 4, 6, -1}, []float64{
		column(t, tab, "neighbors_0").Num[5], column(t, tab, "neighbors_1").Num[5],
		column(t, tab, "neighbors_2").Num[5], column(t, tab, "neighbors_3").Num[5]})
	assert.True(t, column(t, tab, "isdonor").Bool[6])
	assert.True(t, column(t, tab, "isacceptor").Bool[6])
	assert.True(t, column(t, tab, "ishydrophobe").Bool[0])
	assert.False(t, column(t, tab, "ishydrophobe").Bool[5])
	assert.True(t, column(t, tab, "isaromatic").Bool[0])
	assert.False(t, column(t, tab, "isaromatic").Bool[6])
	for _, name := range []string{"isbackbone", "isalpha", "isbeta", "ismetal", "isminus", "isplus"} {
		assert.NotContains(t, column(t, tab, name).Bool, true, name)
	}
}

func TestAtomTypes(t *testing.T) {
	cases := []struct {
		smiles string
		types  []string
	}{
		{"CC(=O)O", []string{"C.3", "C.2", "O.co2", "O.co2"}},
		{"CC(=O)N", []string{"C.3", "C.2", "O.2", "N.am"}},
		{"C[NH3+]", []string{"C.3", "N.4"}},
		{"CC#N", []string{"C.3", "C.1", "N.1"}},
		{"CN=C", []string{"C.3", "N.2", "C.2"}},
		{"Nc1ccccc1", []string{"N.pl3", "C.ar", "C.ar", "C.ar", "C.ar", "C.ar", "C.ar"}},
		{"CN(C)C", []string{"C.3", "N.3", "C.3", "C.3"}},
		{"CS(=O)(=O)C", []string{"C.3", "S.O2", "O.2", "O.2", "C.3"}},
		{"CS(=O)C", []string{"C.3", "S.O", "O.2", "C.3"}},
		{"CSC", []string{"C.3", "S.3", "C.3"}},
		{"c1ccncc1", []string{"C.ar", "C.ar", "C.ar", "N.ar", "C.ar", "C.ar"}},
		{"[Na+].[Cl-]", []string{"Na", "Cl"}},
	}
	for _, c := range cases {
		tab := AtomTable(smiles(t, c.smiles), false)
		assert.Equal(t, c.types, column(t, tab, "atomtype").Str, c.smiles)
	}
}

func TestChargeFlags(t *testing.T) {
	tab := AtomTable(smiles(t, "CC(=O)[O-]"), false)
	assert.Equal(t, []bool{false, false, true, true}, column(t, tab, "isminus").Bool)
	assert.Equal(t, []float64{0, 0, 0, -1}, column(t, tab, "formalcharge").Num)

	tab = AtomTable(smiles(t, "CC(=O)O"), false)
	assert.NotContains(t, column(t, tab, "isminus").Bool, true)

	tab = AtomTable(smiles(t, "C[NH3+]"), false)
	assert.Equal(t, []bool{false, true}, column(t, tab, "isplus").Bool)
	assert.Equal(t, []bool{false, true}, column(t, tab, "isdonor").Bool)
	assert.Equal(t, []bool{false, false}, column(t, tab, "isacceptor").Bool)

	tab = AtomTable(smiles(t, "c1ccncc1"), false)
	assert.True(t, column(t, tab, "isacceptor").Bool[3])

	tab = AtomTable(smiles(t, "[Na+].[Cl-]"), false)
	assert.Equal(t, []bool{true, false}, column(t, tab, "ismetal").Bool)
	assert.Equal(t, []bool{false, true}, column(t, tab, "ishalogen").Bool)
	assert.Equal(t, []float64{0, 0}, column(t, tab, "hybridization").Num)
}

func TestDonorHydrogens(t *testing.T) {
	mol := smiles(t, "CO")
	chem.AddHydrogens(mol, false)
	tab := AtomTable(mol, false)
	require.Equal(t, 6, tab.Len())
	donorh := column(t, tab, "isdonorh").Bool
	n := 0
	for i, v := range donorh {
		if v {
			n++
			assert.Equal(t, "H", mol.Atoms[i].Symbol)
		}
	}
	assert.Equal(t, 1, n)
	assert.Equal(t, []float64{0, 0, 0, 0}, column(t, tab, "hybridization").Num[2:])
}

func helix(t *testing.T, n int) *chem.Molecule {
	t.Helper()
	names := make([]string, n)
	for i := range names {
		names[i] = "ALA"
	}
	phi, psi := chem.RepeatPhiPsi(n, chem.HelixPhiPsi)
	mol, err := chem.BuildBackbone(names, phi, psi, "A", 1)
	require.NoError(t, err)
	require.NoError(t, chem.AssignResidueBonds(mol, 0, chem.Neutral))
	return mol
}

func TestProteinTables(t *testing.T) {
	mol := helix(t, 10)
	tab := AtomTable(mol, true)
	require.Equal(t, mol.Len(), tab.Len())
	assert.NotContains(t, column(t, tab, "isbeta").Bool, true)
	isalpha := column(t, tab, "isalpha").Bool
	backbone := column(t, tab, "isbackbone").Bool
	for i, at := range mol.Atoms {
		assert.Equal(t, at.Name != "CB", backbone[i], at.Name)
		assert.Equal(t, at.MolID != 1 && at.MolID != 10, isalpha[i], "atom %d", i)
	}
	assert.Equal(t, 9.0, column(t, tab, "resid").Num[mol.Len()-1])
	assert.Equal(t, 10.0, column(t, tab, "resnum").Num[mol.Len()-1])
	assert.Equal(t, "ALA", column(t, tab, "resname").Str[0])

	nonprot := AtomTable(mol, false)
	assert.NotContains(t, column(t, nonprot, "isalpha").Bool, true)
	assert.NotContains(t, column(t, nonprot, "isbackbone").Bool, true)

	res := ResidueTable(mol)
	require.Equal(t, 10, res.Len())
	assert.Equal(t, []string{"id", "resnum", "resname", "chain", "N_x", "N_y", "N_z", "CA_x", "CA_y", "CA_z",
		"C_x", "C_y", "C_z", "O_x", "O_y", "O_z", "isalpha", "isbeta"}, res.Names())
	assert.Equal(t, []bool{false, true, true, true, true, true, true, true, true, false}, column(t, res, "isalpha").Bool)
	assert.Equal(t, "A", column(t, res, "chain").Str[3])
	assert.Equal(t, 0.0, column(t, res, "N_x").Num[0])
}

func TestStackAndFilter(t *testing.T) {
	var tables []*Table
	for _, s := range []string{"CO", "CCO", "O"} {
		mol := smiles(t, s)
		chem.AddHydrogens(mol, true)
		tables = append(tables, AtomTable(mol, false))
	}
	all, err := Stack(tables, nil)
	require.NoError(t, err)
	assert.Equal(t, 3+4+3, all.Len())
	heavy, err := Stack(tables, NotHydrogen)
	require.NoError(t, err)
	require.Equal(t, 6, heavy.Len())
	assert.Equal(t, []float64{0, 0, 1, 1, 1, 2}, column(t, heavy, MolIdx).Num)
	assert.Equal(t, MolIdx, heavy.Names()[len(heavy.Names())-1])
	assert.Equal(t, []float64{0, 1, 0, 1, 2, 0}, column(t, heavy, "id").Num)

	oxygens := heavy.Filter(func(i int) bool { return column(t, heavy, "atomicnum").Num[i] == 8 })
	assert.Equal(t, 3, oxygens.Len())
	assert.Equal(t, []float64{0, 1, 2}, column(t, oxygens, MolIdx).Num)

	bad := NewTable()
	require.NoError(t, bad.Add(NumericColumn("id", []float64{1})))
	_, err = Stack([]*Table{tables[0], bad}, nil)
	assert.ErrorIs(t, err, ErrColumnMismatch)
}

func TestAddColumn(t *testing.T) {
	tab := NewTable()
	require.NoError(t, tab.Add(NumericColumn("a", []float64{1, 2})))
	assert.ErrorIs(t, tab.Add(CategoricalColumn("b", []string{"x"})), ErrColumnLength)
	require.NoError(t, tab.Add(CategoricalColumn("a", []string{"x", "y"})))
	assert.Equal(t, []string{"a"}, tab.Names())
	assert.Equal(t, Categorical, column(t, tab, "a").Kind)
}

func sampleTable(t *testing.T) *Table {
	tab := NewTable()
	require.NoError(t, tab.Add(NumericColumn("x", []float64{1, 2.5, -0.125})))
	require.NoError(t, tab.Add(&Column{Name: "y", Kind: Numeric, Num: []float64{0, 3, 0}, Null: []bool{true, false, true}}))
	require.NoError(t, tab.Add(CategoricalColumn("name", []string{"C.ar", "", "O.3"})))
	require.NoError(t, tab.Add(BooleanColumn("flag", []bool{true, false, true})))
	return tab
}

func checkSample(t *testing.T, tab *Table) {
	require.Equal(t, 3, tab.Len())
	assert.Equal(t, []string{"x", "y", "name", "flag"}, tab.Names())
	x := column(t, tab, "x")
	assert.Equal(t, Numeric, x.Kind)
	assert.Equal(t, []float64{1, 2.5, -0.125}, x.Num)
	y := column(t, tab, "y")
	assert.True(t, y.IsNull(0))
	assert.False(t, y.IsNull(1))
	assert.Equal(t, 3.0, y.Num[1])
	assert.Equal(t, "", y.Format(0))
	assert.Equal(t, []string{"C.ar", "", "O.3"}, column(t, tab, "name").Str)
	flag := column(t, tab, "flag")
	assert.Equal(t, Boolean, flag.Kind)
	assert.Equal(t, []bool{true, false, true}, flag.Bool)
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTable(t)))
	assert.Equal(t, "x,y,name,flag\n1,,C.ar,True\n2.5,3,,False\n-0.125,,O.3,True\n", buf.String())
	tab, err := ReadCSV(&buf)
	require.NoError(t, err)
	checkSample(t, tab)

	_, err = ReadCSV(bytes.NewBufferString(""))
	assert.Error(t, err)
}

func TestParquet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteParquet(&buf, sampleTable(t)))
	tab, err := ReadParquet(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	checkSample(t, tab)
	assert.Equal(t, Categorical, column(t, tab, "name").Kind)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.csv", "b.csv.gz", "sub/c.parquet"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, sampleTable(t)), name)
		tab, err := ReadFile(path)
		require.NoError(t, err, name)
		checkSample(t, tab)
	}
	_, err := ReadFile(filepath.Join(dir, "a.txt"))
	assert.ErrorIs(t, err, ErrUnknownTableFormat)
	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestColumnFloat(t *testing.T) {
	c := CategoricalColumn("s", []string{"1.5", "x"})
	v, ok := c.Float(0)
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)
	_, ok = c.Float(1)
	assert.False(t, ok)
	n := NumericColumn("n", []float64{math.Inf(1)})
	assert.Equal(t, "+Inf", n.Format(0))
}
