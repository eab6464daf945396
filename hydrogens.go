/*
 * hydrogens.go, part of gochem.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 *
 * Gochem is developed at the laboratory for instruction in Swedish, Department of Chemistry,
 * University of Helsinki, Finland.
 *
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package chem

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

//X-H bond lengths, in A
var hBondLength = map[string]float64{
	"C":  1.09,
	"N":  1.01,
	"O":  0.96,
	"S":  1.34,
	"P":  1.42,
	"Se": 1.47,
	"B":  1.19,
	"Si": 1.48,
}

const tetrahedral = 109.4712

//ImplicitHs returns the number of hydrogens that at should carry and that are
//not present as explicit atoms bonded to it. If the atom has a fixed hydrogen count
//that count is used, otherwise the count comes from the valence of the element (corrected
//by the formal charge) minus the orders of the bonds to heavy atoms. Aromatic bonds without
//a Kekule order (order 1.5) are summed and the total is rounded down.
func ImplicitHs(at *Atom) int {
	if at.IsH() {
		return 0
	}
	var target int
	if at.FixedHs {
		target = at.HCount
	} else {
		v := Valence(at.Symbol, at.FormalCharge)
		if v == 0 {
			return 0
		}
		target = v - int(math.Floor(BondOrderSum(at)+1e-6))
	}
	n := target - at.ExplicitHs()
	if n < 0 {
		return 0
	}
	return n
}

//TotalHs returns the number of hydrogens, explicit or implicit, attached to at.
func TotalHs(at *Atom) int {
	return at.ExplicitHs() + ImplicitHs(at)
}

//Hybridization returns a guess of the hybridization of at: 1 for sp, 2 for sp2, 3 for sp3.
//Atoms with no bonds are reported as sp3.
func Hybridization(at *Atom) int {
	if MaxBondOrder(at) >= 3 {
		return 1
	}
	doubles := 0
	for _, b := range at.Bonds {
		if b.Aromatic || b.Order == 1.5 {
			return 2
		}
		if b.Order == 2 {
			doubles++
		}
	}
	switch {
	case doubles >= 2:
		return 1
	case doubles == 1 || at.Aromatic:
		return 2
	}
	return 3
}

//AddHydrogens adds explicit hydrogens to mol until no atom has implicit hydrogens.
//If polarOnly is true, only atoms other than carbon get hydrogens. The new atoms are appended
//at the end of the molecule, belong to the residue of their parent atom and are placed
//in every frame according to the hybridization of the parent. It returns the number
//of atoms added.
func AddHydrogens(mol *Molecule, polarOnly bool) int {
	mol.FillIndexes()
	n := mol.Len()
	maxid := 0
	for _, at := range mol.Atoms {
		if at.ID > maxid {
			maxid = at.ID
		}
	}
	added := 0
	for i := 0; i < n; i++ {
		at := mol.Atom(i)
		if at.IsH() || (polarOnly && at.Symbol == "C") {
			continue
		}
		k := ImplicitHs(at)
		for h := 0; h < k; h++ {
			pos := make([][3]float64, len(mol.Coords))
			for f := range mol.Coords {
				pos[f] = hydrogenPosition(mol, f, at, Hybridization(at)+1)
			}
			maxid++
			hat := &Atom{Name: hydrogenName(at.Name, h, k), ID: maxid, Symbol: "H", MolName: at.MolName, MolName1: at.MolName1,
				MolID: at.MolID, Chain: at.Chain, Char16: at.Char16, Het: at.Het, Occupancy: 1, Mass: symbolMass["H"], Vdw: symbolVdwrad["H"]}
			mol.AppendAtom(hat, pos)
			b := Bind(mol.Topology, at, hat, 1)
			b.Dist = hBondLength[at.Symbol]
			added++
		}
	}
	return added
}

//RemoveHydrogens deletes all the hydrogen atoms in mol, and returns the number
//of atoms removed. The hydrogen counts of heavy atoms are not changed, so removed hydrogens
//become implicit.
func RemoveHydrogens(mol *Molecule) int {
	hs := make([]int, 0, mol.Len()/2)
	for i, at := range mol.Atoms {
		if at.IsH() {
			hs = append(hs, i)
		}
	}
	mol.DelAtoms(hs)
	return len(hs)
}

func hydrogenName(parent string, h, total int) string {
	name := "H"
	if len(parent) > 1 {
		name += parent[1:]
	}
	if total > 1 {
		name += strconv.Itoa(h + 1)
	}
	if len(name) > 4 {
		name = name[:4]
	}
	return name
}

//unit returns v normalized, and false if v is (almost) a zero vector.
func unit(v r3.Vec) (r3.Vec, bool) {
	if r3.Norm(v) < 1e-4 {
		return v, false
	}
	return r3.Unit(v), true
}

//perpendicular returns a unit vector perpendicular to the unit vector u.
func perpendicular(u r3.Vec) r3.Vec {
	axis := r3.Vec{X: 1}
	if math.Abs(u.X) > 0.9 {
		axis = r3.Vec{Y: 1}
	}
	p, _ := unit(r3.Cross(u, axis))
	return p
}

func (M *Molecule) pos(frame, i int) r3.Vec {
	r := M.Coords[frame].RawRowView(i)
	return r3.Vec{X: r[0], Y: r[1], Z: r[2]}
}

//hydrogenPosition returns a position for a new hydrogen on at, in frame frame, considering
//the atoms already bonded to it. coordination is the total number of substituents expected
//for the atom (2 for sp, 3 for sp2, 4 for sp3). Neighbors sitting on top of at (as in
//molecules read without coordinates) are ignored.
func hydrogenPosition(mol *Molecule, frame int, at *Atom, coordination int) [3]float64 {
	center := mol.pos(frame, at.index)
	units := make([]r3.Vec, 0, len(at.Bonds))
	var ref *r3.Vec
	for _, n := range at.Neighbors() {
		u, ok := unit(r3.Sub(mol.pos(frame, n.index), center))
		if !ok {
			continue
		}
		units = append(units, u)
		if ref == nil {
			for _, nn := range n.Neighbors() {
				if nn == at {
					continue
				}
				r := mol.pos(frame, nn.index)
				ref = &r
				break
			}
		}
	}
	var d r3.Vec
	switch len(units) {
	case 0:
		d = r3.Vec{Z: 1}
	case 1:
		u := units[0]
		var p r3.Vec
		ok := false
		if ref != nil {
			r := r3.Sub(*ref, center)
			p, ok = unit(r3.Sub(r, r3.Scale(r3.Dot(r, u), u)))
		}
		if !ok {
			p = perpendicular(u)
		}
		theta := tetrahedral
		switch coordination {
		case 2:
			theta = 180
		case 3:
			theta = 120
		}
		t := Deg2Rad(theta)
		d = r3.Add(r3.Scale(math.Cos(t), u), r3.Scale(math.Sin(t), p))
	case 2:
		b, ok := unit(r3.Scale(-1, r3.Add(units[0], units[1])))
		if !ok {
			b = perpendicular(units[0])
		}
		d = b
		if coordination >= 4 {
			nrm, ok := unit(r3.Cross(units[0], units[1]))
			if !ok {
				nrm = perpendicular(b)
			}
			//one of the two tetrahedral positions left
			t := Deg2Rad(tetrahedral / 2)
			d = r3.Add(r3.Scale(math.Cos(t), b), r3.Scale(math.Sin(t), nrm))
		}
	default:
		var sum r3.Vec
		for _, u := range units {
			sum = r3.Add(sum, u)
		}
		var ok bool
		d, ok = unit(r3.Scale(-1, sum))
		if !ok {
			d = perpendicular(units[0])
		}
	}
	l, ok := hBondLength[at.Symbol]
	if !ok {
		l = 1.0
	}
	h := r3.Add(center, r3.Scale(l, d))
	return [3]float64{h.X, h.Y, h.Z}
}
