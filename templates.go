/*
 * templates.go, part of gochemkit.
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

import (
	"fmt"

	v3 "github.com/rmera/gochemkit/v3"
)

//Protonation is the policy used to assign formal charges to titratable groups
//in residues.
type Protonation int

const (
	//Neutral leaves every titratable group uncharged.
	Neutral Protonation = iota
	//Physiological charges Lys, Arg, Asp, Glu and the termini.
	Physiological
)

func (p Protonation) String() string {
	if p == Physiological {
		return "physiological"
	}
	return "neutral"
}

const (
	peptideBondMax   = 2.0
	disulfideBondMax = 2.5
	hydrogenBondMax  = 1.3 //covalent X-H, not H-bond
)

type tbond struct {
	a, b  string
	order float64
}

var backboneTemplate = []tbond{
	{"N", "CA", 1},
	{"CA", "C", 1},
	{"C", "O", 2},
	{"C", "OXT", 1},
	{"CA", "CB", 1},
}

//Heavy-atom side chain bonds of the standard amino acids, with Kekule orders for the aromatic rings.
var residueTemplates = map[string][]tbond{
	"ALA": {},
	"GLY": {},
	"ARG": {{"CB", "CG", 1}, {"CG", "CD", 1}, {"CD", "NE", 1}, {"NE", "CZ", 1}, {"CZ", "NH1", 1}, {"CZ", "NH2", 2}},
	"ASN": {{"CB", "CG", 1}, {"CG", "OD1", 2}, {"CG", "ND2", 1}},
	"ASP": {{"CB", "CG", 1}, {"CG", "OD1", 2}, {"CG", "OD2", 1}},
	"CYS": {{"CB", "SG", 1}},
	"GLN": {{"CB", "CG", 1}, {"CG", "CD", 1}, {"CD", "OE1", 2}, {"CD", "NE2", 1}},
	"GLU": {{"CB", "CG", 1}, {"CG", "CD", 1}, {"CD", "OE1", 2}, {"CD", "OE2", 1}},
	"HIS": {{"CB", "CG", 1}, {"CG", "ND1", 1}, {"CG", "CD2", 2}, {"ND1", "CE1", 1}, {"CE1", "NE2", 2}, {"NE2", "CD2", 1}},
	"ILE": {{"CB", "CG1", 1}, {"CB", "CG2", 1}, {"CG1", "CD1", 1}},
	"LEU": {{"CB", "CG", 1}, {"CG", "CD1", 1}, {"CG", "CD2", 1}},
	"LYS": {{"CB", "CG", 1}, {"CG", "CD", 1}, {"CD", "CE", 1}, {"CE", "NZ", 1}},
	"MET": {{"CB", "CG", 1}, {"CG", "SD", 1}, {"SD", "CE", 1}},
	"PHE": {{"CB", "CG", 1}, {"CG", "CD1", 2}, {"CD1", "CE1", 1}, {"CE1", "CZ", 2}, {"CZ", "CE2", 1}, {"CE2", "CD2", 2}, {"CD2", "CG", 1}},
	"PRO": {{"CB", "CG", 1}, {"CG", "CD", 1}, {"CD", "N", 1}},
	"SER": {{"CB", "OG", 1}},
	"THR": {{"CB", "OG1", 1}, {"CB", "CG2", 1}},
	"TRP": {{"CB", "CG", 1}, {"CG", "CD1", 2}, {"CD1", "NE1", 1}, {"NE1", "CE2", 1}, {"CE2", "CD2", 1}, {"CD2", "CG", 1},
		{"CE2", "CZ2", 2}, {"CZ2", "CH2", 1}, {"CH2", "CZ3", 2}, {"CZ3", "CE3", 1}, {"CE3", "CD2", 2}},
	"TYR": {{"CB", "CG", 1}, {"CG", "CD1", 2}, {"CD1", "CE1", 1}, {"CE1", "CZ", 2}, {"CZ", "CE2", 1}, {"CE2", "CD2", 2}, {"CD2", "CG", 1}, {"CZ", "OH", 1}},
	"VAL": {{"CB", "CG1", 1}, {"CB", "CG2", 1}},
}

var aromaticTemplates = map[string][]string{
	"HIS": {"CG", "ND1", "CD2", "CE1", "NE2"},
	"PHE": {"CG", "CD1", "CD2", "CE1", "CE2", "CZ"},
	"TYR": {"CG", "CD1", "CD2", "CE1", "CE2", "CZ"},
	"TRP": {"CG", "CD1", "NE1", "CE2", "CD2", "CE3", "CZ3", "CH2", "CZ2"},
}

//Side chain charges under the physiological policy.
var physiologicalCharges = map[string]map[string]int{
	"LYS": {"NZ": 1},
	"ARG": {"NH2": 1},
	"ASP": {"OD2": -1},
	"GLU": {"OE2": -1},
}

var templateAliases = map[string]string{
	"HID": "HIS",
	"HIE": "HIS",
	"HIP": "HIS",
	"CYX": "CYS",
	"ASH": "ASP",
	"GLH": "GLU",
	"LYN": "LYS",
}

func templateName(resname string) string {
	if a, ok := templateAliases[resname]; ok {
		return a
	}
	return resname
}

//AssignResidueBonds assigns bonds, bond orders, aromatic flags and formal charges to a
//molecule containing residues (i.e. read from a PDB file). Standard amino acids use
//templates, peptide and disulfide bonds are assigned by distance, and the remaining
//residues get bonds by distance with undetermined (single) orders.
//Explicit hydrogens are bonded to the closest heavy atom of their residue.
//Formal charges already present in the molecule are not changed.
func AssignResidueBonds(mol *Molecule, frame int, prot Protonation) error {
	if frame >= len(mol.Coords) {
		return newCError(fmt.Sprintf("Frame %d out of range", frame), "AssignResidueBonds")
	}
	coords := mol.Coords[frame]
	mol.FillIndexes()
	res := Residues(mol)
	bind := func(i, j int, order float64) *Bond {
		a, b := mol.Atom(i), mol.Atom(j)
		if bo := Bonded(a, b); bo != nil {
			return bo
		}
		bo := Bind(mol.Topology, a, b, order)
		bo.Dist = coords.Distance(i, coords, j)
		return bo
	}
	aminoacids := make([]bool, len(res))
	for k, r := range res {
		tname := templateName(r.Name)
		tmpl, ok := residueTemplates[tname]
		if !ok {
			heavy := make([]int, 0, len(r.Atoms))
			for _, i := range r.Atoms {
				if !mol.Atom(i).IsH() {
					heavy = append(heavy, i)
				}
			}
			if len(heavy) > 1 {
				if err := AssignBonds(coords, mol.Topology, heavy); err != nil {
					return errDecorate(err, "AssignResidueBonds")
				}
			}
			continue
		}
		aminoacids[k] = true
		names := make(map[string]int, len(r.Atoms))
		for _, i := range r.Atoms {
			if _, ok := names[mol.Atom(i).Name]; !ok && !mol.Atom(i).IsH() {
				names[mol.Atom(i).Name] = i
			}
		}
		for _, set := range [][]tbond{backboneTemplate, tmpl} {
			for _, tb := range set {
				i, ok1 := names[tb.a]
				j, ok2 := names[tb.b]
				if ok1 && ok2 {
					bind(i, j, tb.order)
				}
			}
		}
		arom := aromaticTemplates[tname]
		for _, name := range arom {
			if i, ok := names[name]; ok {
				mol.Atom(i).Aromatic = true
			}
		}
		for _, i := range r.Atoms {
			at := mol.Atom(i)
			if !at.Aromatic {
				continue
			}
			for _, b := range at.Bonds {
				if b.Cross(at).Aromatic && b.Cross(at).SameResidue(at) {
					b.Aromatic = true
				}
			}
		}
	}
	//peptide bonds
	for k := 0; k < len(res)-1; k++ {
		r1, r2 := res[k], res[k+1]
		if !aminoacids[k] || !aminoacids[k+1] || r1.Chain != r2.Chain {
			continue
		}
		c := r1.AtomByName(mol, "C")
		n := r2.AtomByName(mol, "N")
		if c >= 0 && n >= 0 && coords.Distance(c, coords, n) < peptideBondMax {
			bind(c, n, 1)
		}
	}
	//disulfide bridges
	sg := make([]int, 0)
	for k, r := range res {
		if aminoacids[k] && templateName(r.Name) == "CYS" {
			if i := r.AtomByName(mol, "SG"); i >= 0 {
				sg = append(sg, i)
			}
		}
	}
	for k, i := range sg {
		for _, j := range sg[k+1:] {
			if coords.Distance(i, coords, j) < disulfideBondMax {
				bind(i, j, 1)
			}
		}
	}
	bindExplicitHs(mol, coords, res)
	if prot == Physiological {
		applyPhysiologicalCharges(mol, res, aminoacids)
	}
	return nil
}

//bindExplicitHs bonds each hydrogen without bonds to the closest heavy atom
//of its residue, or of the whole molecule if there is none close enough in the residue.
func bindExplicitHs(mol *Molecule, coords *v3.Matrix, res []*Residue) {
	closest := func(h int, cands []int) int {
		best, bestd := -1, hydrogenBondMax
		for _, i := range cands {
			if mol.Atom(i).IsH() {
				continue
			}
			if d := coords.Distance(h, coords, i); d < bestd {
				best, bestd = i, d
			}
		}
		return best
	}
	var all []int
	for _, r := range res {
		for _, h := range r.Atoms {
			at := mol.Atom(h)
			if !at.IsH() || len(at.Bonds) > 0 {
				continue
			}
			p := closest(h, r.Atoms)
			if p < 0 {
				if all == nil {
					all = make([]int, mol.Len())
					for i := range all {
						all[i] = i
					}
				}
				p = closest(h, all)
			}
			if p >= 0 {
				b := Bind(mol.Topology, mol.Atom(p), at, 1)
				b.Dist = coords.Distance(h, coords, p)
			}
		}
	}
}

func applyPhysiologicalCharges(mol *Molecule, res []*Residue, aminoacids []bool) {
	set := func(i, q int) {
		if i >= 0 && mol.Atom(i).FormalCharge == 0 {
			mol.Atom(i).FormalCharge = q
		}
	}
	for k, r := range res {
		if !aminoacids[k] {
			continue
		}
		for name, q := range physiologicalCharges[templateName(r.Name)] {
			set(r.AtomByName(mol, name), q)
		}
		set(r.AtomByName(mol, "OXT"), -1)
		n := r.AtomByName(mol, "N")
		if n < 0 {
			continue
		}
		nat := mol.Atom(n)
		terminal := true
		for _, b := range nat.Bonds {
			if o := b.Cross(nat); o.Name == "C" && !o.SameResidue(nat) {
				terminal = false
			}
		}
		if terminal {
			set(n, 1)
		}
	}
}
