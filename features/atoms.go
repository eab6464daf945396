/*
 * atoms.go, part of gochemkit.
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
	"sort"
	"strconv"

	chem "github.com/rmera/gochemkit"
)

//NeighborSlots is the number of neighbors_N columns in atom tables.
const NeighborSlots = 4

var backboneNames = map[string]bool{"N": true, "CA": true, "C": true, "O": true, "OXT": true, "H": true, "HA": true}

//AtomTable returns the feature table of the atoms of mol, one row per atom in order, using
//the first frame for coordinates. The indexes of the atoms in mol are filled. If protein is
//true, the backbone and secondary structure columns are computed, otherwise they are all false.
func AtomTable(mol *chem.Molecule, protein bool) *Table {
	mol.FillIndexes()
	n := mol.Len()
	var alpha, beta []bool
	if protein && len(mol.Coords) > 0 {
		alpha, beta = chem.AtomSS(mol, chem.SecondaryStructure(mol, mol.Coords[0]))
	} else {
		alpha, beta = make([]bool, n), make([]bool, n)
	}
	resid := make([]float64, n)
	for i, r := range chem.Residues(mol) {
		for _, a := range r.Atoms {
			resid[a] = float64(i)
		}
	}
	id := make([]float64, n)
	coords := [3][]float64{make([]float64, n), make([]float64, n), make([]float64, n)}
	radius := make([]float64, n)
	charge := make([]float64, n)
	atomicnum := make([]float64, n)
	atomtype := make([]string, n)
	hyb := make([]float64, n)
	var neighbors [NeighborSlots][]float64
	for k := range neighbors {
		neighbors[k] = make([]float64, n)
	}
	numhs := make([]float64, n)
	formal := make([]float64, n)
	resnum := make([]float64, n)
	resname := make([]string, n)
	flags := make(map[string][]bool)
	flagNames := []string{"isbackbone", "isacceptor", "isdonor", "isdonorh", "ismetal", "ishydrophobe",
		"isaromatic", "isminus", "isplus", "ishalogen"}
	for _, f := range flagNames {
		flags[f] = make([]bool, n)
	}
	for i, at := range mol.Atoms {
		id[i] = float64(i)
		if len(mol.Coords) > 0 {
			c := mol.Coords[0].RawRowView(i)
			for k := 0; k < 3; k++ {
				coords[k][i] = c[k]
			}
		}
		radius[i] = at.Vdw
		charge[i] = at.Charge
		atomicnum[i] = float64(chem.AtomicNumber(at.Symbol))
		atomtype[i] = AtomType(at)
		hyb[i] = float64(hybridization(at))
		nb := heavyNeighbors(at)
		for k := 0; k < NeighborSlots; k++ {
			neighbors[k][i] = -1
			if k < len(nb) {
				neighbors[k][i] = float64(nb[k])
			}
		}
		numhs[i] = float64(chem.TotalHs(at))
		formal[i] = float64(at.FormalCharge)
		resnum[i] = float64(at.MolID)
		resname[i] = at.MolName
		flags["isbackbone"][i] = protein && chem.IsAminoAcid(at.MolName) && backboneNames[at.Name]
		flags["isacceptor"][i] = IsAcceptor(at)
		flags["isdonor"][i] = IsDonor(at)
		flags["isdonorh"][i] = IsDonorH(at)
		flags["ismetal"][i] = chem.IsMetal(at.Symbol)
		flags["ishydrophobe"][i] = IsHydrophobe(at)
		flags["isaromatic"][i] = at.Aromatic
		flags["isminus"][i] = IsMinus(at)
		flags["isplus"][i] = IsPlus(at)
		flags["ishalogen"][i] = chem.IsHalogen(at.Symbol)
	}
	t := NewTable()
	t.mustAdd(NumericColumn("id", id))
	t.mustAdd(NumericColumn("coords_x", coords[0]))
	t.mustAdd(NumericColumn("coords_y", coords[1]))
	t.mustAdd(NumericColumn("coords_z", coords[2]))
	t.mustAdd(NumericColumn("radius", radius))
	t.mustAdd(NumericColumn("charge", charge))
	t.mustAdd(NumericColumn("atomicnum", atomicnum))
	t.mustAdd(CategoricalColumn("atomtype", atomtype))
	t.mustAdd(NumericColumn("hybridization", hyb))
	for k := range neighbors {
		t.mustAdd(NumericColumn("neighbors_"+strconv.Itoa(k), neighbors[k]))
	}
	t.mustAdd(NumericColumn("numhs", numhs))
	t.mustAdd(NumericColumn("formalcharge", formal))
	t.mustAdd(NumericColumn("resid", resid))
	t.mustAdd(NumericColumn("resnum", resnum))
	t.mustAdd(CategoricalColumn("resname", resname))
	for _, f := range flagNames {
		t.mustAdd(BooleanColumn(f, flags[f]))
	}
	t.mustAdd(BooleanColumn("isalpha", alpha))
	t.mustAdd(BooleanColumn("isbeta", beta))
	return t
}

func heavyNeighbors(at *chem.Atom) []int {
	var ret []int
	for _, o := range at.Neighbors() {
		if !o.IsH() {
			ret = append(ret, o.Index())
		}
	}
	sort.Ints(ret)
	return ret
}

//hybridization is 0 for hydrogens and for ions, which are not bonded.
func hybridization(at *chem.Atom) int {
	if at.IsH() || (len(at.Bonds) == 0 && (at.FormalCharge != 0 || chem.IsMetal(at.Symbol))) {
		return 0
	}
	return chem.Hybridization(at)
}

func hasDouble(at *chem.Atom, symbol string) int {
	n := 0
	for _, b := range at.Bonds {
		if b.Order == 2 && (symbol == "" || b.Cross(at).Symbol == symbol) {
			n++
		}
	}
	return n
}

//terminalOs returns the number of oxygens bonded to at that have no other heavy neighbor.
func terminalOs(at *chem.Atom) int {
	n := 0
	for _, o := range at.Neighbors() {
		if o.Symbol == "O" && o.HeavyDegree() == 1 {
			n++
		}
	}
	return n
}

//isAmideN returns true if at is a nitrogen bonded to a carbon with a double bonded O or S.
func isAmideN(at *chem.Atom) bool {
	for _, o := range at.Neighbors() {
		if o.Symbol == "C" && (hasDouble(o, "O") > 0 || hasDouble(o, "S") > 0) {
			return true
		}
	}
	return false
}

//conjugated returns true if at is bonded to an sp2 or aromatic heavy atom.
func conjugated(at *chem.Atom) bool {
	for _, o := range at.Neighbors() {
		if !o.IsH() && (o.Aromatic || chem.Hybridization(o) < 3) {
			return true
		}
	}
	return false
}

//AtomType returns the Sybyl-like type of at (C.3, C.ar, N.am, O.co2...). Elements
//without specific rules are typed by their symbol.
func AtomType(at *chem.Atom) string {
	hyb := chem.Hybridization(at)
	switch at.Symbol {
	case "H":
		return "H"
	case "C":
		switch {
		case at.Aromatic:
			return "C.ar"
		case hyb == 1:
			return "C.1"
		case hyb == 2:
			return "C.2"
		}
		return "C.3"
	case "N":
		switch {
		case at.Aromatic:
			return "N.ar"
		case at.FormalCharge > 0 && hyb == 3:
			return "N.4"
		case hyb == 1:
			return "N.1"
		case hasDouble(at, "") > 0:
			return "N.2"
		case isAmideN(at):
			return "N.am"
		case conjugated(at):
			return "N.pl3"
		}
		return "N.3"
	case "O":
		nb := at.Neighbors()
		if at.HeavyDegree() == 1 {
			for _, o := range nb {
				if o.IsH() {
					continue
				}
				if (o.Symbol == "C" || o.Symbol == "P") && terminalOs(o) >= 2 && hasDouble(o, "O") >= 1 {
					return "O.co2"
				}
			}
		}
		if hasDouble(at, "") > 0 {
			return "O.2"
		}
		return "O.3"
	case "S":
		switch terminalDoubleOs(at) {
		case 0:
		case 1:
			return "S.O"
		default:
			return "S.O2"
		}
		if hasDouble(at, "") > 0 {
			return "S.2"
		}
		return "S.3"
	case "P":
		return "P.3"
	}
	return at.Symbol
}

func terminalDoubleOs(at *chem.Atom) int {
	n := 0
	for _, b := range at.Bonds {
		o := b.Cross(at)
		if b.Order == 2 && o.Symbol == "O" && o.HeavyDegree() == 1 {
			n++
		}
	}
	return n
}

//IsDonor returns true for nitrogens and oxygens that carry hydrogens.
func IsDonor(at *chem.Atom) bool {
	return (at.Symbol == "N" || at.Symbol == "O") && chem.TotalHs(at) > 0
}

//IsDonorH returns true for hydrogens bonded to a donor.
func IsDonorH(at *chem.Atom) bool {
	if !at.IsH() {
		return false
	}
	for _, o := range at.Neighbors() {
		if IsDonor(o) {
			return true
		}
	}
	return false
}

//IsAcceptor returns true for oxygens that are not positively charged, and
//for nitrogens with a free lone pair (no hydrogens, not amide, not planar, not cationic).
func IsAcceptor(at *chem.Atom) bool {
	switch at.Symbol {
	case "O":
		return at.FormalCharge <= 0
	case "N":
		if at.FormalCharge > 0 || chem.TotalHs(at) > 0 {
			return false
		}
		switch AtomType(at) {
		case "N.am", "N.pl3", "N.4":
			return false
		case "N.ar":
			return at.HeavyDegree() == 2
		}
		return true
	}
	return false
}

//IsHydrophobe returns true for carbon, sulfur, chlorine, bromine and iodine atoms
//not bonded to nitrogen or oxygen.
func IsHydrophobe(at *chem.Atom) bool {
	switch at.Symbol {
	case "C", "S", "Cl", "Br", "I":
	default:
		return false
	}
	if at.FormalCharge != 0 {
		return false
	}
	for _, o := range at.Neighbors() {
		if o.Symbol == "N" || o.Symbol == "O" {
			return false
		}
	}
	return true
}

//IsMinus returns true for negatively charged atoms and for the other oxygens
//of a carboxylate-like group where one oxygen is charged.
func IsMinus(at *chem.Atom) bool {
	if at.FormalCharge < 0 {
		return true
	}
	return AtomType(at) == "O.co2" && chem.TotalHs(at) == 0 && anyCharged(at, -1)
}

//anyCharged returns true if an atom bonded to a neighbor of at
//has a formal charge with the sign of sign.
func anyCharged(at *chem.Atom, sign int) bool {
	for _, c := range at.Neighbors() {
		for _, o := range c.Neighbors() {
			if o.FormalCharge*sign > 0 {
				return true
			}
		}
	}
	return false
}

//IsPlus returns true for positively charged atoms and quaternary nitrogens.
func IsPlus(at *chem.Atom) bool {
	return at.FormalCharge > 0 || AtomType(at) == "N.4"
}
