/*
 * smiles.go, part of gochemkit.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	v3 "github.com/rmera/gochemkit/v3"
)

//organic subset atoms, which can be written without brackets.
var smilesOrganic = map[string]bool{"B": true, "C": true, "N": true, "O": true, "P": true, "S": true, "F": true, "Cl": true, "Br": true, "I": true}

//elements that can be aromatic in SMILES.
var smilesAromatic = map[string]bool{"b": true, "c": true, "n": true, "o": true, "p": true, "s": true, "se": true, "as": true}

type ringOpening struct {
	at    *Atom
	order float64
}

type smilesParser struct {
	s       string
	pos     int
	top     *Topology
	prev    *Atom
	branch  []*Atom
	rings   map[int]ringOpening
	order   float64 //order of the pending bond, 0 if none
	arombnd bool    //the pending bond is explicitly aromatic
}

//ParseSMILES builds a molecule from a SMILES string. Only the connectivity, charges, hydrogen
//counts and aromaticity are read: stereochemistry, isotopes and atom classes are ignored.
//The molecule has a single frame with all the coordinates set to zero.
//Hydrogens are implicit, except for those written as separate atoms.
func ParseSMILES(smiles string) (*Molecule, error) {
	p := &smilesParser{s: strings.TrimSpace(smiles), top: NewTopology(0, 1), rings: make(map[int]ringOpening)}
	if err := p.parse(); err != nil {
		return nil, errDecorate(err, "ParseSMILES")
	}
	p.top.ResetIDs()
	p.top.FillMasses()
	p.top.FillVdw()
	charge := 0
	for _, at := range p.top.Atoms {
		charge += at.FormalCharge
	}
	p.top.SetCharge(charge)
	mol, err := NewMolecule([]*v3.Matrix{v3.Zeros(p.top.Len())}, p.top, nil)
	if err != nil {
		return nil, errDecorate(err, "ParseSMILES")
	}
	mol.Title = smiles
	return mol, nil
}

func (p *smilesParser) errorf(format string, args ...interface{}) error {
	return newCError(fmt.Sprintf("SMILES %q, position %d: %s", p.s, p.pos, fmt.Sprintf(format, args...)), "smilesParser")
}

func (p *smilesParser) parse() error {
	if p.s == "" {
		return p.errorf("empty SMILES")
	}
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		switch {
		case c == '(':
			if p.prev == nil {
				return p.errorf("branch without a previous atom")
			}
			p.branch = append(p.branch, p.prev)
			p.pos++
		case c == ')':
			if len(p.branch) == 0 {
				return p.errorf("unbalanced parenthesis")
			}
			p.prev = p.branch[len(p.branch)-1]
			p.branch = p.branch[:len(p.branch)-1]
			p.pos++
		case c == '.':
			p.prev = nil
			p.pos++
		case strings.IndexByte("-=#$:/\\", c) >= 0:
			p.order, p.arombnd = smilesBondOrder(c), c == ':'
			p.pos++
		case c == '%' || unicode.IsDigit(rune(c)):
			if err := p.ring(); err != nil {
				return err
			}
		case c == '[':
			at, err := p.bracketAtom()
			if err != nil {
				return err
			}
			p.addAtom(at)
		default:
			at, err := p.organicAtom()
			if err != nil {
				return err
			}
			p.addAtom(at)
		}
	}
	if len(p.branch) > 0 {
		return p.errorf("unclosed branch")
	}
	if len(p.rings) > 0 {
		for k := range p.rings {
			return p.errorf("unclosed ring %d", k)
		}
	}
	return nil
}

func smilesBondOrder(c byte) float64 {
	switch c {
	case '=':
		return 2
	case '#':
		return 3
	case '$':
		return 4
	case ':':
		return 1.5
	}
	return 1
}

//bond joins a and b with the pending bond, or with the default one.
func (p *smilesParser) bond(a, b *Atom, order float64, explicitArom bool) {
	arom := explicitArom
	if order == 0 {
		order = 1
		if a.Aromatic && b.Aromatic {
			order = 1.5
			arom = true
		}
	}
	bo := Bind(p.top, a, b, order)
	bo.Aromatic = arom
}

func (p *smilesParser) addAtom(at *Atom) {
	at.index = p.top.Len()
	p.top.Atoms = append(p.top.Atoms, at)
	if p.prev != nil {
		p.bond(p.prev, at, p.order, p.arombnd)
	}
	p.order, p.arombnd = 0, false
	p.prev = at
}

func (p *smilesParser) ring() error {
	var n int
	if p.s[p.pos] == '%' {
		if p.pos+3 > len(p.s) {
			return p.errorf("incomplete ring number")
		}
		var err error
		n, err = strconv.Atoi(p.s[p.pos+1 : p.pos+3])
		if err != nil {
			return p.errorf("bad ring number")
		}
		p.pos += 3
	} else {
		n = int(p.s[p.pos] - '0')
		p.pos++
	}
	if p.prev == nil {
		return p.errorf("ring bond without an atom")
	}
	open, ok := p.rings[n]
	if !ok {
		p.rings[n] = ringOpening{at: p.prev, order: p.order}
		p.order, p.arombnd = 0, false
		return nil
	}
	delete(p.rings, n)
	if open.at == p.prev {
		return p.errorf("ring %d closes on its own atom", n)
	}
	order := p.order
	if order == 0 {
		order = open.order
	}
	p.bond(open.at, p.prev, order, order == 1.5)
	p.order, p.arombnd = 0, false
	return nil
}

func newSMILESAtom(symbol string, aromatic bool) *Atom {
	return &Atom{Name: symbol, Symbol: symbol, Aromatic: aromatic, MolName: "UNL", MolID: 1, Het: true, Occupancy: 1}
}

func (p *smilesParser) organicAtom() (*Atom, error) {
	s := p.s[p.pos:]
	if strings.HasPrefix(s, "Cl") || strings.HasPrefix(s, "Br") {
		p.pos += 2
		return newSMILESAtom(s[:2], false), nil
	}
	c := s[:1]
	if smilesOrganic[c] {
		p.pos++
		return newSMILESAtom(c, false), nil
	}
	if smilesAromatic[c] {
		p.pos++
		return newSMILESAtom(strings.ToUpper(c), true), nil
	}
	return nil, p.errorf("unexpected character %q", c)
}

func (p *smilesParser) bracketAtom() (*Atom, error) {
	end := strings.IndexByte(p.s[p.pos:], ']')
	if end < 0 {
		return nil, p.errorf("unclosed bracket")
	}
	s := p.s[p.pos+1 : p.pos+end]
	p.pos += end + 1
	i := 0
	for i < len(s) && unicode.IsDigit(rune(s[i])) {
		i++ //isotope
	}
	if i >= len(s) {
		return nil, p.errorf("no element in bracket atom")
	}
	var at *Atom
	switch {
	case i+2 <= len(s) && smilesAromatic[s[i:i+2]]:
		at = newSMILESAtom(normalizeSymbol(s[i:i+2]), true)
		i += 2
	case unicode.IsLower(rune(s[i])):
		if !smilesAromatic[s[i:i+1]] {
			return nil, p.errorf("unknown aromatic element %q", s[i:i+1])
		}
		at = newSMILESAtom(strings.ToUpper(s[i:i+1]), true)
		i++
	default:
		sym := s[i : i+1]
		if i+2 <= len(s) && unicode.IsLower(rune(s[i+1])) && AtomicNumber(s[i:i+2]) > 0 {
			sym = s[i : i+2]
		}
		if AtomicNumber(sym) == 0 {
			return nil, p.errorf("unknown element %q", sym)
		}
		at = newSMILESAtom(sym, false)
		i += len(sym)
	}
	for i < len(s) && s[i] == '@' {
		i++
	}
	at.FixedHs = true
	if i < len(s) && s[i] == 'H' {
		i++
		at.HCount = 1
		if i < len(s) && unicode.IsDigit(rune(s[i])) {
			at.HCount = int(s[i] - '0')
			i++
		}
	}
	for i < len(s) && (s[i] == '+' || s[i] == '-') {
		sign := 1
		if s[i] == '-' {
			sign = -1
		}
		i++
		if i < len(s) && unicode.IsDigit(rune(s[i])) {
			at.FormalCharge += sign * int(s[i]-'0')
			i++
		} else {
			at.FormalCharge += sign
		}
	}
	if i < len(s) && s[i] == ':' {
		i = len(s) //atom class
	}
	if i != len(s) {
		return nil, p.errorf("unexpected %q in bracket atom", s[i:])
	}
	return at, nil
}

//SMILESReader reads molecules from a file with one SMILES per line, optionally
//followed by a title. Empty lines are skipped.
type SMILESReader struct {
	r    *bufio.Scanner
	line int
}

//NewSMILESReader returns a reader for the SMILES lines in r.
func NewSMILESReader(r io.Reader) *SMILESReader {
	return &SMILESReader{r: bufio.NewScanner(r)}
}

//Next returns the next molecule, or io.EOF if there are no more.
func (S *SMILESReader) Next() (*Molecule, error) {
	for S.r.Scan() {
		S.line++
		f := strings.Fields(S.r.Text())
		if len(f) == 0 {
			continue
		}
		mol, err := ParseSMILES(f[0])
		if err != nil {
			return nil, wrapCError(err, fmt.Sprintf("Line %d", S.line), "SMILESReader.Next")
		}
		if len(f) > 1 {
			mol.Title = strings.Join(f[1:], " ")
		}
		return mol, nil
	}
	if err := S.r.Err(); err != nil {
		return nil, wrapCError(err, "Couldn't read SMILES", "SMILESReader.Next")
	}
	return nil, io.EOF
}
