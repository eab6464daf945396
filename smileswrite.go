/*
 * smileswrite.go, part of gochemkit.
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
	"math"
	"strconv"
	"strings"
)

type smilesWriter struct {
	mol      Atomer
	visited  []bool
	children [][]*Atom
	opens    [][]*Bond //ring bonds opened at each atom
	closes   [][]*Bond //ring bonds closed at each atom
	used     map[*Bond]bool
	digits   map[*Bond]int
	free     []bool
	b        strings.Builder
}

//smilesNode returns true if at is written as an atom in SMILES. Hydrogens are
//written as atoms only when they are not bonded to a heavy atom.
func smilesNode(at *Atom) bool {
	if !at.IsH() {
		return true
	}
	for _, b := range at.Bonds {
		if !b.Cross(at).IsH() {
			return false
		}
	}
	return true
}

//SMILES returns a (non-canonical) SMILES string for mol. Hydrogens bonded to
//heavy atoms are not written as atoms but included in the hydrogen counts.
//The indexes of the atoms in mol must be filled (see FillIndexes).
func SMILES(mol Atomer) string {
	n := mol.Len()
	w := &smilesWriter{
		mol:      mol,
		visited:  make([]bool, n),
		children: make([][]*Atom, n),
		opens:    make([][]*Bond, n),
		closes:   make([][]*Bond, n),
		used:     make(map[*Bond]bool),
		digits:   make(map[*Bond]int),
	}
	first := true
	for i := 0; i < n; i++ {
		at := mol.Atom(i)
		if w.visited[i] || !smilesNode(at) {
			continue
		}
		w.tree(at)
		if !first {
			w.b.WriteByte('.')
		}
		first = false
		w.write(at)
	}
	return w.b.String()
}

//tree builds the depth-first spanning tree from at, and finds the ring closures.
func (w *smilesWriter) tree(at *Atom) {
	w.visited[at.index] = true
	for _, b := range at.Bonds {
		o := b.Cross(at)
		if w.used[b] || !smilesNode(o) {
			continue
		}
		w.used[b] = true
		if w.visited[o.index] {
			w.opens[o.index] = append(w.opens[o.index], b)
			w.closes[at.index] = append(w.closes[at.index], b)
			continue
		}
		w.children[at.index] = append(w.children[at.index], o)
		w.tree(o)
	}
}

func (w *smilesWriter) digit() int {
	for i, busy := range w.free {
		if !busy {
			w.free[i] = true
			return i + 1
		}
	}
	w.free = append(w.free, true)
	return len(w.free)
}

func ringLabel(d int) string {
	if d > 9 {
		return "%" + strconv.Itoa(d)
	}
	return strconv.Itoa(d)
}

func (w *smilesWriter) write(at *Atom) {
	w.b.WriteString(smilesAtom(at))
	for _, b := range w.closes[at.index] {
		d := w.digits[b]
		w.b.WriteString(ringLabel(d))
		w.free[d-1] = false
	}
	for _, b := range w.opens[at.index] {
		d := w.digit()
		w.digits[b] = d
		w.b.WriteString(smilesBond(b))
		w.b.WriteString(ringLabel(d))
	}
	ch := w.children[at.index]
	for i, c := range ch {
		b := Bonded(at, c)
		if i < len(ch)-1 {
			w.b.WriteByte('(')
		}
		w.b.WriteString(smilesBond(b))
		w.write(c)
		if i < len(ch)-1 {
			w.b.WriteByte(')')
		}
	}
}

func smilesBond(b *Bond) string {
	switch {
	case b.Order == 1.5:
		return ""
	case b.Order == 2:
		return "="
	case b.Order == 3:
		return "#"
	case b.Order == 4:
		return "$"
	case b.At1.Aromatic && b.At2.Aromatic:
		return "-"
	}
	return ""
}

//smilesAtom returns the SMILES token for at, using brackets only when needed.
func smilesAtom(at *Atom) string {
	sym := at.Symbol
	if at.Aromatic && smilesAromatic[strings.ToLower(sym)] {
		sym = strings.ToLower(sym)
	}
	if at.IsH() {
		return "[" + chargeToken("H", at.FormalCharge) + "]"
	}
	hs := TotalHs(at)
	def := Valence(at.Symbol, 0) - int(math.Floor(BondOrderSum(at)+1e-6))
	if def < 0 {
		def = 0
	}
	if smilesOrganic[at.Symbol] && at.FormalCharge == 0 && hs == def {
		return sym
	}
	if hs > 0 {
		sym += "H"
		if hs > 1 {
			sym += strconv.Itoa(hs)
		}
	}
	return "[" + chargeToken(sym, at.FormalCharge) + "]"
}

func chargeToken(s string, q int) string {
	switch {
	case q == 1:
		return s + "+"
	case q == -1:
		return s + "-"
	case q > 1:
		return s + "+" + strconv.Itoa(q)
	case q < -1:
		return s + "-" + strconv.Itoa(-q)
	}
	return s
}
