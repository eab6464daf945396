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

package chem

//Residue is a group of atoms sharing chain, residue number, insertion code and residue name.
type Residue struct {
	Chain  string
	MolID  int
	Char16 byte
	Name   string
	Atoms  []int //indexes of the atoms of the residue, in the order they appear in the molecule.
}

//Len returns the number of atoms in the residue.
func (R *Residue) Len() int {
	return len(R.Atoms)
}

//AtomByName returns the index of the first atom in the residue with the given name,
//or -1 if there is no such atom.
func (R *Residue) AtomByName(mol Atomer, name string) int {
	for _, i := range R.Atoms {
		if mol.Atom(i).Name == name {
			return i
		}
	}
	return -1
}

type reskey struct {
	chain  string
	molid  int
	char16 byte
	name   string
}

//Residues returns the residues in mol, in the order in which each residue is
//first seen. Atoms that appear after other residues (for instance, hydrogens
//appended at the end of a molecule) still belong to their own residue.
func Residues(mol Atomer) []*Residue {
	ret := make([]*Residue, 0, 10)
	seen := make(map[reskey]*Residue)
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		k := reskey{at.Chain, at.MolID, at.Char16, at.MolName}
		r, ok := seen[k]
		if !ok {
			r = &Residue{Chain: at.Chain, MolID: at.MolID, Char16: at.Char16, Name: at.MolName}
			seen[k] = r
			ret = append(ret, r)
		}
		r.Atoms = append(r.Atoms, i)
	}
	return ret
}

//ResidueSizes returns the number of atoms in each residue of mol, in the order given by Residues.
func ResidueSizes(mol Atomer) []int {
	res := Residues(mol)
	ret := make([]int, len(res))
	for i, v := range res {
		ret[i] = v.Len()
	}
	return ret
}
