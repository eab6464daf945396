/*
 * residues.go, part of gochemkit.
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
	chem "github.com/rmera/gochemkit"
)

//ResidueTable returns one row per residue of mol with a complete backbone, in order,
//with the coordinates (first frame) of the N, CA, C and O atoms and the secondary
//structure flags.
func ResidueTable(mol *chem.Molecule) *Table {
	var dict []*chem.BackboneResidue
	if len(mol.Coords) > 0 {
		dict = chem.SecondaryStructure(mol, mol.Coords[0])
	}
	n := len(dict)
	id := make([]float64, n)
	resnum := make([]float64, n)
	resname := make([]string, n)
	chain := make([]string, n)
	alpha := make([]bool, n)
	beta := make([]bool, n)
	names := []string{"N", "CA", "C", "O"}
	var xyz [4][3][]float64
	for a := range xyz {
		for k := range xyz[a] {
			xyz[a][k] = make([]float64, n)
		}
	}
	for i, r := range dict {
		id[i] = float64(i)
		resnum[i] = float64(r.MolID)
		resname[i] = r.Name
		chain[i] = r.Chain
		alpha[i] = r.Alpha
		beta[i] = r.Beta
		for a, idx := range []int{r.N, r.CA, r.C, r.O} {
			c := mol.Coords[0].RawRowView(idx)
			for k := 0; k < 3; k++ {
				xyz[a][k][i] = c[k]
			}
		}
	}
	t := NewTable()
	t.mustAdd(NumericColumn("id", id))
	t.mustAdd(NumericColumn("resnum", resnum))
	t.mustAdd(CategoricalColumn("resname", resname))
	t.mustAdd(CategoricalColumn("chain", chain))
	for a, name := range names {
		for k, axis := range []string{"x", "y", "z"} {
			t.mustAdd(NumericColumn(name+"_"+axis, xyz[a][k]))
		}
	}
	t.mustAdd(BooleanColumn("isalpha", alpha))
	t.mustAdd(BooleanColumn("isbeta", beta))
	return t
}
