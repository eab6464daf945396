/*
 * atomicdata.go, part of gochem.
 *
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 * goChem is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package chem

import (
	"fmt"
	"sort"

	v3 "github.com/rmera/gochemkit/v3"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

//Bond represents a chemical bond
type Bond struct {
	Index    int
	At1      *Atom
	At2      *Atom
	Dist     float64
	Order    float64 //Order 0 means undetermined, 1.5 is used for aromatic bonds without a Kekule order
	Aromatic bool
}

//Cross returns the atom bonded to the origin atom
//bond in the receiver.
func (B *Bond) Cross(origin *Atom) *Atom {
	if origin == B.At1 {
		return B.At2
	}
	if origin == B.At2 {
		return B.At1
	}
	panic(ErrBondNotPresent) //I think this got to be a programming error, so a panic is warranted.
}

//Contains returns true if the atom at is one of the two atoms of the bond.
func (B *Bond) Contains(at *Atom) bool {
	return B.At1 == at || B.At2 == at
}

//Bind creates a new bond of the given order between at1 and at2, and adds
//it to both atoms. The index of the bond is taken from top.
func Bind(top *Topology, at1, at2 *Atom, order float64) *Bond {
	b := &Bond{Index: top.nextBondIndex(), At1: at1, At2: at2, Order: order}
	at1.Bonds = append(at1.Bonds, b)
	at2.Bonds = append(at2.Bonds, b)
	return b
}

//Bonded returns the bond between at1 and at2, or nil if they are not bonded
func Bonded(at1, at2 *Atom) *Bond {
	for _, b := range at1.Bonds {
		if b.Contains(at2) {
			return b
		}
	}
	return nil
}

//return a new *Bond slice with the bond b removed
func takefromslice(bonds []*Bond, b *Bond) []*Bond {
	newb := make([]*Bond, 0, len(bonds))
	for _, v := range bonds {
		if v != b {
			newb = append(newb, v)
		}
	}
	return newb
}

//RemoveBond removes the bond b from both of its atoms.
func RemoveBond(b *Bond) error {
	lenb1 := len(b.At1.Bonds)
	lenb2 := len(b.At2.Bonds)
	b.At1.Bonds = takefromslice(b.At1.Bonds, b)
	b.At2.Bonds = takefromslice(b.At2.Bonds, b)
	msg := ""
	if len(b.At1.Bonds) == lenb1 {
		msg = fmt.Sprintf(" from atom Index:%d", b.At1.Index())
	}
	if len(b.At2.Bonds) == lenb2 {
		if msg != "" {
			msg = msg + " and"
		}
		msg = msg + fmt.Sprintf(" from atom Index:%d", b.At2.Index())
	}
	if msg != "" {
		return newCError(fmt.Sprintf("Failed to remove bond Index:%d%s", b.Index, msg), "RemoveBond")
	}
	return nil
}

//AssignBonds assigns bonds to a molecule based on a simple distance
//criterium, similar to that described in DOI:10.1186/1758-2946-3-33
//Only the atoms with indexes in sel are considered (all of them if sel is nil).
//Bonds are created with order 1.
func AssignBonds(coord *v3.Matrix, mol *Topology, sel []int) error {
	// might get slow for
	//large systems. It's really not thought
	//for proteins or macromolecules.
	mol.FillIndexes()
	if sel == nil {
		sel = make([]int, mol.Len())
		for i := range sel {
			sel[i] = i
		}
	}
	for ii, i := range sel {
		at1 := mol.Atom(i)
		cov1 := symbolCovrad[at1.Symbol]
		if cov1 == 0 {
			return newCError(fmt.Sprintf("Couldn't find the covalent radii  for %s %d", at1.Symbol, i), "AssignBonds")
		}
		for _, j := range sel[ii+1:] {
			at2 := mol.Atom(j)
			cov2 := symbolCovrad[at2.Symbol]
			if cov2 == 0 {
				return newCError(fmt.Sprintf("Couldn't find the covalent radii  for %s %d", at2.Symbol, j), "AssignBonds")
			}
			if Bonded(at1, at2) != nil {
				continue
			}
			d := coord.Distance(i, coord, j)
			if d < cov1+cov2+bondtol && d > tooclose {
				b := Bind(mol, at1, at2, 1)
				b.Dist = d
			}
		}
	}

	//Now we check that no atom has too many bonds.
	for _, i := range sel {
		at := mol.Atom(i)
		max := symbolMaxBonds[at.Symbol]
		if max == 0 { //means there is not a specified number of bonds for this atom.
			continue
		}
		sort.SliceStable(at.Bonds, func(i, j int) bool { return at.Bonds[i].Dist < at.Bonds[j].Dist })
		//remove bonds until len(at.Bonds) is not
		//greater than max.
		for len(at.Bonds) > max {
			err := RemoveBond(at.Bonds[len(at.Bonds)-1]) //we remove the longest bond
			if err != nil {
				return errDecorate(err, "AssignBonds")
			}
		}
	}
	return nil
}

//BondOrderSum returns the sum of the orders of the bonds of at to
//non-hydrogen atoms. Bonds of undetermined order count as single.
func BondOrderSum(at *Atom) float64 {
	var sum float64
	for _, b := range at.Bonds {
		if b.Cross(at).IsH() {
			continue
		}
		o := b.Order
		if o == 0 {
			o = 1
		}
		sum += o
	}
	return sum
}

//MaxBondOrder returns the highest order among the bonds of at.
func MaxBondOrder(at *Atom) float64 {
	var max float64
	for _, b := range at.Bonds {
		if b.Order > max {
			max = b.Order
		}
	}
	return max
}
