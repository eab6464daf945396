/*
 * aromatic.go, part of gochemkit.
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

package chemgraph

import (
	chem "github.com/rmera/gochemkit"
)

//PerceiveAromaticity flags as aromatic the atoms and ring bonds of every 5- or
//6-membered ring of mol with 4n+2 pi electrons, where every ring atom is sp2 or has a
//lone pair in conjugation. Atoms and bonds already flagged are kept. Bond orders are
//not changed. It returns the number of aromatic rings found.
func PerceiveAromaticity(mol chem.AtomIndexesFiller) int {
	g := New(mol, true)
	rings := g.Rings(6)
	n := 0
	for _, ring := range rings {
		if len(ring) < 5 {
			continue
		}
		electrons := 0
		ok := true
		for _, i := range ring {
			e, conj := piElectrons(mol.Atom(i))
			if !conj {
				ok = false
				break
			}
			electrons += e
		}
		if !ok || electrons%4 != 2 {
			continue
		}
		for k, i := range ring {
			at := mol.Atom(i)
			at.Aromatic = true
			next := mol.Atom(ring[(k+1)%len(ring)])
			if b := chem.Bonded(at, next); b != nil {
				b.Aromatic = true
			}
		}
		n++
	}
	return n
}

//piElectrons returns the number of electrons that at contributes to the pi
//system of a ring, and false if the atom cannot be part of one.
func piElectrons(at *chem.Atom) (int, bool) {
	lonepair := at.Symbol == "O" || at.Symbol == "S" || at.Symbol == "Se"
	if at.Aromatic {
		switch {
		case at.Symbol == "C" || at.Symbol == "B":
			return 1 - at.FormalCharge, at.FormalCharge >= -1 && at.FormalCharge <= 1
		case at.Symbol == "N" || at.Symbol == "P":
			if at.FormalCharge == 0 && (at.HeavyDegree() == 3 || chem.TotalHs(at) > 0) {
				return 2, true
			}
			return 1, true
		case lonepair:
			return 2, true
		}
		return 0, false
	}
	var double *chem.Bond
	for _, b := range at.Bonds {
		switch {
		case b.Order >= 3:
			return 0, false
		case b.Order == 2 && double == nil:
			double = b
		case b.Order == 2:
			return 0, false
		}
	}
	if double != nil {
		o := double.Cross(at)
		if o.Symbol == "O" || o.Symbol == "S" {
			return 0, true //exocyclic carbonyl
		}
		return 1, true
	}
	switch {
	case at.Symbol == "C" && at.FormalCharge == -1:
		return 2, true
	case at.Symbol == "C" && at.FormalCharge == 1:
		return 0, true
	case (at.Symbol == "N" || at.Symbol == "P") && at.FormalCharge == 0:
		return 2, true
	case lonepair && at.FormalCharge == 0:
		return 2, true
	}
	return 0, false
}
