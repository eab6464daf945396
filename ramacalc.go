/*
 * ramacalc.go, part of gochemkit.
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
	"strings"

	v3 "github.com/rmera/gochemkit/v3"
)

//RamaSet contains the indexes of the atoms needed to obtain
//the phi and psi dihedrals of one residue.
type RamaSet struct {
	Cprev   int
	N       int
	Ca      int
	C       int
	Npost   int
	MolID   int
	MolName string
	Chain   string
}

// RamaCalc Obtains the values for the phi and psi dihedrals indicated in []Ramaset, for the
// structure M. The angles are in *degrees*.  It returns a slice of 2-element slices, one for the phi the next for the psi
// dihedral, a and an error or nil.
func RamaCalc(M *v3.Matrix, dihedrals []RamaSet) ([][]float64, error) {
	if M == nil || dihedrals == nil {
		return nil, newCError(string(ErrNilData), "RamaCalc")
	}
	r, _ := M.Dims()
	Rama := make([][]float64, 0, len(dihedrals))
	for _, j := range dihedrals {
		if j.Npost >= r || j.Cprev >= r {
			return nil, newCError("Data out of range", "RamaCalc")
		}
		Cprev := M.VecView(j.Cprev)
		N := M.VecView(j.N)
		Ca := M.VecView(j.Ca)
		C := M.VecView(j.C)
		Npost := M.VecView(j.Npost)
		phi := DihedralDeg(Cprev, N, Ca, C)
		psi := DihedralDeg(N, Ca, C, Npost)
		Rama = append(Rama, []float64{phi, psi})
	}
	return Rama, nil
}

// RamaResidueFilter filters the set of dihedral angles of a ramachandran plot by residue.(ex. only GLY, everything but GLY)
// The 3 letter code of the residues to be filtered in or out is in filterdata, whether they are filter in
// or out depends on shouldBePresent. It returns the filtered data and a slice containing the indexes in
// the new data of the residues in the old data, when they are included, or -1 when they are not included.
func RamaResidueFilter(dihedrals []RamaSet, filterdata []string, shouldBePresent bool) ([]RamaSet, []int) {
	RetList := make([]RamaSet, 0, 0)
	Index := make([]int, len(dihedrals))
	var added int
	for key, val := range dihedrals {
		isPresent := isInString(filterdata, val.MolName)
		if isPresent == shouldBePresent {
			RetList = append(RetList, val)
			Index[key] = added
			added++
		} else {
			Index[key] = -1
		}
	}
	return RetList, Index
}

// RamaList takes a molecule and returns a slice of RamaSet, which contains the
// indexes for each dihedral to be included in a Ramachandran plot.
// It only obtain dihedral lists for residues belonging to a chain included in chains.
// If chains is an empty string, all chains are included. Only residues with a complete
// backbone and with complete neighbours in the same chain are considered.
func RamaList(M Atomer, chains string) ([]RamaSet, error) {
	if M == nil {
		return nil, newCError("Nil data given", "RamaList")
	}
	dict := BackboneResidues(M)
	ret := make([]RamaSet, 0, len(dict))
	for i := 1; i < len(dict)-1; i++ {
		prev, cur, post := dict[i-1], dict[i], dict[i+1]
		if chains != "" && !strings.Contains(chains, cur.Chain) {
			continue
		}
		if prev.Chain != cur.Chain || post.Chain != cur.Chain {
			continue
		}
		if prev.MolID != cur.MolID-1 || post.MolID != cur.MolID+1 {
			continue
		}
		ret = append(ret, RamaSet{Cprev: prev.C, N: cur.N, Ca: cur.CA, C: cur.C, Npost: post.N, MolID: cur.MolID, MolName: cur.Name, Chain: cur.Chain})
	}
	if len(ret) == 0 {
		return nil, newCError(fmt.Sprintf("No residues with complete backbone found in chains '%s'", chains), "RamaList")
	}
	return ret, nil
}
