/*
 * secondary.go, part of gochemkit.
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
	v3 "github.com/rmera/gochemkit/v3"
)

//Thresholds for the secondary structure assignment.
const (
	hbondNO     = 3.5 //N-O distance for a backbone hydrogen bond.
	betaCACA    = 4.5 //CA-CA distance between paired strands.
	minSSRun    = 3
	alphaResGap = 3
	betaResGap  = 4
)

//BackboneResidue is a residue with a complete backbone. N, CA, C and O
//are the indexes of the corresponding atoms.
type BackboneResidue struct {
	Chain  string
	MolID  int
	Char16 byte
	Name   string
	N      int
	CA     int
	C      int
	O      int
	Alpha  bool
	Beta   bool
}

//BackboneResidues returns the residues of mol that have N, CA, C and O atoms,
//in the order given by Residues.
func BackboneResidues(mol Atomer) []*BackboneResidue {
	res := Residues(mol)
	ret := make([]*BackboneResidue, 0, len(res))
	for _, r := range res {
		b := &BackboneResidue{Chain: r.Chain, MolID: r.MolID, Char16: r.Char16, Name: r.Name}
		b.N = r.AtomByName(mol, "N")
		b.CA = r.AtomByName(mol, "CA")
		b.C = r.AtomByName(mol, "C")
		b.O = r.AtomByName(mol, "O")
		if b.N < 0 || b.CA < 0 || b.C < 0 || b.O < 0 {
			continue
		}
		ret = append(ret, b)
	}
	return ret
}

//SecondaryStructure returns the backbone residues of mol with their Alpha and Beta
//fields set, using the geometry in coords. Each residue gets its phi from the previous residue
//and its psi from the next one, and a residue missing either neighbour (a chain terminus or a gap)
//is neither alpha nor beta. Candidates also need backbone hydrogen bonds (or, for strands,
//close CA atoms) with residues apart in the sequence. Alpha and Beta are never both true.
func SecondaryStructure(mol Atomer, coords *v3.Matrix) []*BackboneResidue {
	dict := BackboneResidues(mol)
	if len(dict) < 3 {
		return dict
	}
	alpha := make([]bool, len(dict))
	beta := make([]bool, len(dict))
	for i := 1; i < len(dict)-1; i++ {
		p, r, n := dict[i-1], dict[i], dict[i+1]
		if !sequential(p, r) || !sequential(r, n) {
			continue
		}
		phi := DihedralDeg(coords.VecView(p.C), coords.VecView(r.N), coords.VecView(r.CA), coords.VecView(r.C))
		psi := DihedralDeg(coords.VecView(r.N), coords.VecView(r.CA), coords.VecView(r.C), coords.VecView(n.N))
		alpha[i] = phi > -145 && phi < -35 && psi > -70 && psi < 50
		beta[i] = (phi >= -180 && phi < -40 && psi > 90 && psi <= 180) || (phi >= -180 && phi < -70 && psi <= -165)
	}
	dropShortRuns(alpha, minSSRun)
	dropShortRuns(beta, minSSRun)

	//Alpha helices have to form H-Bonds
	keep := make([]bool, len(dict))
	for i := range dict {
		if !alpha[i] {
			continue
		}
		for j := range dict {
			if !alpha[j] || abs(dict[i].MolID-dict[j].MolID) < alphaResGap {
				continue
			}
			if coords.Distance(dict[i].N, coords, dict[j].O) < hbondNO {
				keep[i], keep[j] = true, true
			}
		}
	}
	for i := range alpha {
		alpha[i] = alpha[i] && keep[i]
	}

	//Strands need a partner strand
	keep = make([]bool, len(dict))
	for i := range dict {
		if !beta[i] {
			continue
		}
		for j := range dict {
			if !beta[j] || abs(dict[i].MolID-dict[j].MolID) < betaResGap {
				continue
			}
			if coords.Distance(dict[i].N, coords, dict[j].O) < hbondNO ||
				coords.Distance(dict[i].CA, coords, dict[j].CA) < betaCACA {
				keep[i], keep[j] = true, true
			}
		}
	}
	for i, v := range dict {
		v.Alpha = alpha[i]
		v.Beta = beta[i] && keep[i] && !v.Alpha
	}
	return dict
}

//sequential is true if r follows f in the same chain.
func sequential(f, r *BackboneResidue) bool {
	return r.MolID-f.MolID == 1 && r.Chain == f.Chain
}

//dropShortRuns unsets every run of consecutive true values shorter than min.
func dropShortRuns(mask []bool, min int) {
	start := -1
	for i := 0; i <= len(mask); i++ {
		if i < len(mask) && mask[i] {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start < min {
			for j := start; j < i; j++ {
				mask[j] = false
			}
		}
		start = -1
	}
}

//AtomSS returns, for each atom of mol, whether it belongs to an alpha or to a beta residue
//according to dict, as returned by SecondaryStructure.
func AtomSS(mol Atomer, dict []*BackboneResidue) (alpha, beta []bool) {
	alpha = make([]bool, mol.Len())
	beta = make([]bool, mol.Len())
	type key struct {
		chain  string
		molid  int
		char16 byte
		name   string
	}
	flags := make(map[key]*BackboneResidue, len(dict))
	for _, v := range dict {
		flags[key{v.Chain, v.MolID, v.Char16, v.Name}] = v
	}
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if r, ok := flags[key{at.Chain, at.MolID, at.Char16, at.MolName}]; ok {
			alpha[i] = r.Alpha
			beta[i] = r.Beta
		}
	}
	return alpha, beta
}
