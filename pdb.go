/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*
 * pdb.go, part of gochemkit.
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

	v3 "github.com/rmera/gochemkit/v3"
)

//PDBFileRead reads a PDB file (possibly compressed, see Open) and returns a Molecule with
//one frame per model in the file. Only the CONECT records are used to create bonds.
func PDBFileRead(pdbname string) (*Molecule, error) {
	f, err := Open(pdbname)
	if err != nil {
		return nil, errDecorate(err, "PDBFileRead")
	}
	defer f.Close()
	mol, err := PDBRead(f)
	if err != nil {
		return nil, errDecorate(err, "PDBFileRead")
	}
	if mol.Title == "" {
		_, base := CompressionExt(pdbname)
		mol.Title = strings.TrimSuffix(base, ".pdb")
	}
	return mol, nil
}

//PDBRead reads a PDB from an io.Reader. Returns a Molecule. If there is one frame in the PDB
//the coordinates array will be of lenght 1. Alternative locations other than the first one
//are skipped. The insertion code of each atom is stored in its Char16 field.
func PDBRead(pdb io.Reader) (*Molecule, error) {
	r := bufio.NewReader(pdb)
	ats := make([]*Atom, 0, 100)
	coords := [][]float64{make([]float64, 0, 300)}
	bfactors := [][]float64{make([]float64, 0, 100)}
	byID := make(map[int]*Atom)
	conect := make([][]int, 0)
	firstmodel := true
	title := ""
	contlines := 0
	for {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, wrapCError(err, "Error reading PDB", "PDBRead")
		}
		if line == "" && err == io.EOF {
			break
		}
		contlines++
		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			line = padLine(line, 80)
			alt := line[16]
			if alt != ' ' && alt != 'A' && alt != '1' {
				continue
			}
			c, bfac, err := readPDBCoords(line)
			if err != nil {
				return nil, wrapCError(err, fmt.Sprintf("Malformed coordinates in line %d", contlines), "PDBRead")
			}
			last := len(coords) - 1
			coords[last] = append(coords[last], c[:]...)
			bfactors[last] = append(bfactors[last], bfac)
			if !firstmodel {
				continue
			}
			at, err := readPDBAtom(line, len(ats)+1)
			if err != nil {
				return nil, wrapCError(err, fmt.Sprintf("Malformed atom in line %d", contlines), "PDBRead")
			}
			ats = append(ats, at)
			byID[at.ID] = at
		case strings.HasPrefix(line, "MODEL"):
			//the first model is already there
			if len(coords[len(coords)-1]) > 0 {
				firstmodel = false
				coords = append(coords, make([]float64, 0, len(ats)*3))
				bfactors = append(bfactors, make([]float64, 0, len(ats)))
			}
		case strings.HasPrefix(line, "CONECT"):
			conect = append(conect, readConect(padLine(line, 31)))
		case strings.HasPrefix(line, "TITLE") || strings.HasPrefix(line, "COMPND"):
			if title == "" && len(line) > 10 {
				title = strings.TrimSpace(line[10:])
			}
		case strings.HasPrefix(line, "END") && !strings.HasPrefix(line, "ENDMDL"):
			err = io.EOF
		}
		if err == io.EOF {
			break
		}
	}
	//A trailing MODEL record without atoms
	if n := len(coords); n > 1 && len(coords[n-1]) == 0 {
		coords = coords[:n-1]
		bfactors = bfactors[:n-1]
	}
	if len(ats) == 0 {
		return nil, newCError("No atoms found in PDB", "PDBRead")
	}
	top := NewTopology(0, 1, ats)
	top.FillMasses()
	top.FillVdw()
	for _, c := range conect {
		a, ok := byID[c[0]]
		if !ok {
			continue
		}
		for _, id := range c[1:] {
			b, ok := byID[id]
			if !ok || Bonded(a, b) != nil || a == b {
				continue
			}
			Bind(top, a, b, 1)
		}
	}
	mcoords := make([]*v3.Matrix, len(coords))
	for i, c := range coords {
		var err error
		if len(c) != len(ats)*3 {
			return nil, newCError(fmt.Sprintf("Frame %d has %d atoms, expected %d", i, len(c)/3, len(ats)), "PDBRead")
		}
		mcoords[i], err = v3.NewMatrix(c)
		if err != nil {
			return nil, errDecorate(err, "PDBRead")
		}
	}
	mol, err := NewMolecule(mcoords, top, bfactors)
	if err != nil {
		return nil, errDecorate(err, "PDBRead")
	}
	for _, b := range mol.Bonds() {
		b.Dist = mcoords[0].Distance(b.At1.index, mcoords[0], b.At2.index)
	}
	mol.Title = title
	return mol, nil
}

func padLine(line string, n int) string {
	if len(line) >= n {
		return line
	}
	return line + strings.Repeat(" ", n-len(line))
}

func readPDBCoords(line string) ([3]float64, float64, error) {
	var c [3]float64
	var err error
	for i := 0; i < 3; i++ {
		c[i], err = strconv.ParseFloat(strings.TrimSpace(line[30+8*i:38+8*i]), 64)
		if err != nil {
			return c, 0, err
		}
	}
	bfac, err := strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64)
	if err != nil {
		bfac = 0 //b-factors are often missing
	}
	return c, bfac, nil
}

//readPDBAtom parses a valid ATOM or HETATM line of a PDB file, except for the coordinates
//and b-factor. count is used as ID if the serial number can't be read.
func readPDBAtom(line string, count int) (*Atom, error) {
	var err error
	at := new(Atom)
	at.Het = strings.HasPrefix(line, "HETATM")
	at.ID, err = strconv.Atoi(strings.TrimSpace(line[6:11]))
	if err != nil {
		at.ID = count //hybrid-36 or overflown serials
	}
	at.Name = strings.TrimSpace(line[12:16])
	at.MolName = strings.TrimSpace(line[17:20])
	at.MolName1 = three2OneLetter[at.MolName]
	at.Chain = strings.TrimSpace(line[21:22])
	at.MolID, err = strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return nil, wrapCError(err, "Couldn't read residue number", "readPDBAtom")
	}
	at.Char16 = line[26]
	at.Occupancy, err = strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64)
	if err != nil {
		at.Occupancy = 1
	}
	at.Symbol = normalizeSymbol(line[76:78])
	if at.Symbol == "" {
		at.Symbol, err = symbolFromName(at.Name)
		if err != nil {
			return nil, errDecorate(err, "readPDBAtom")
		}
	}
	at.FormalCharge = readPDBCharge(line[78:80])
	return at, nil
}

//readPDBCharge parses charges in the "2+"/"1-" PDB format, returns 0 if not possible.
func readPDBCharge(s string) int {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return 0
	}
	sign := 1
	switch s[len(s)-1] {
	case '-':
		sign = -1
		s = s[:len(s)-1]
	case '+':
		s = s[:len(s)-1]
	}
	if s == "" {
		return sign
	}
	q, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return sign * q
}

func pdbCharge(q int) string {
	switch {
	case q > 0:
		return fmt.Sprintf("%d+", q)
	case q < 0:
		return fmt.Sprintf("%d-", -q)
	}
	return "  "
}

func readConect(line string) []int {
	ret := make([]int, 0, 5)
	for i := 6; i+5 <= len(line); i += 5 {
		n, err := strconv.Atoi(strings.TrimSpace(line[i : i+5]))
		if err != nil {
			if strings.TrimSpace(line[i:i+5]) == "" && i > 6 {
				break
			}
			continue
		}
		ret = append(ret, n)
	}
	if len(ret) == 0 {
		ret = append(ret, -1)
	}
	return ret
}

//PDBFileWrite writes all the frames of mol to the PDB file pdbname, compressing it if the
//extension requires it (see Create).
func PDBFileWrite(pdbname string, mol *Molecule) error {
	out, err := Create(pdbname)
	if err != nil {
		return errDecorate(err, "PDBFileWrite")
	}
	err = PDBWrite(out, mol)
	if err2 := out.Close(); err == nil && err2 != nil {
		err = wrapCError(err2, "Couldn't close file", "PDBFileWrite")
	}
	return errDecorate(err, "PDBFileWrite")
}

//PDBStringWrite returns a string with the PDB representation of mol.
func PDBStringWrite(mol *Molecule) (string, error) {
	var b strings.Builder
	if err := PDBWrite(&b, mol); err != nil {
		return "", errDecorate(err, "PDBStringWrite")
	}
	return b.String(), nil
}

//PDBWrite writes all the frames of mol in PDB format to out. If there is more than one frame,
//each is written as a model. CONECT records are written for the bonds involving HETATM atoms.
func PDBWrite(out io.Writer, mol *Molecule) error {
	if err := mol.Corrupted(); err != nil {
		return errDecorate(err, "PDBWrite")
	}
	w := bufio.NewWriter(out)
	if mol.Title != "" {
		fmt.Fprintf(w, "COMPND    %s\n", mol.Title)
	}
	fmt.Fprint(w, "REMARK     WRITTEN WITH GOCHEMKIT :-)\n")
	models := len(mol.Coords) > 1
	for j, c := range mol.Coords {
		if models {
			fmt.Fprintf(w, "MODEL     %4d\n", j+1)
		}
		if err := pdbFrameWrite(w, c, mol, mol.Bfactors[j]); err != nil {
			return errDecorate(err, "PDBWrite")
		}
		if models {
			fmt.Fprint(w, "ENDMDL\n")
		}
	}
	for _, at := range mol.Atoms {
		partners := make([]int, 0, len(at.Bonds))
		for _, b := range at.Bonds {
			o := b.Cross(at)
			if at.Het || o.Het {
				partners = append(partners, o.ID)
			}
		}
		for len(partners) > 0 {
			n := len(partners)
			if n > 4 {
				n = 4
			}
			fmt.Fprintf(w, "CONECT%5d", at.ID%100000)
			for _, p := range partners[:n] {
				fmt.Fprintf(w, "%5d", p%100000)
			}
			fmt.Fprint(w, "\n")
			partners = partners[n:]
		}
	}
	fmt.Fprint(w, "END\n")
	if err := w.Flush(); err != nil {
		return wrapCError(err, "Couldn't write PDB", "PDBWrite")
	}
	return nil
}

//pdbFrameWrite writes the atoms of one frame, with TER records between chains.
func pdbFrameWrite(w io.Writer, coords *v3.Matrix, mol Atomer, bfact []float64) error {
	if coords.NVecs() != mol.Len() {
		return newCError(fmt.Sprintf("Atoms (%d) and coordinates (%d) don't match", mol.Len(), coords.NVecs()), "pdbFrameWrite")
	}
	if mol.Len() == 0 {
		return nil
	}
	chainprev := mol.Atom(0).Chain
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if at.Chain != chainprev {
			fmt.Fprint(w, "TER\n")
			chainprev = at.Chain
		}
		first := "ATOM"
		if at.Het {
			first = "HETATM"
		}
		name := at.Name
		if len(name) > 4 {
			name = name[:4]
		}
		if len(name) < 4 && len(at.Symbol) < 2 {
			name = " " + name
		}
		chain := at.Chain
		if chain == "" {
			chain = " "
		}
		c := coords.RawRowView(i)
		b := 0.0
		if i < len(bfact) {
			b = bfact[i]
		}
		ins := at.Char16
		if ins == 0 {
			ins = ' '
		}
		_, err := fmt.Fprintf(w, "%-6s%5d %-4s %3s %1s%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s%2s\n", first, at.ID%100000, name, at.MolName, chain[:1],
			at.MolID%10000, ins, c[0], c[1], c[2], at.Occupancy, b, strings.ToUpper(at.Symbol), pdbCharge(at.FormalCharge))
		if err != nil {
			return wrapCError(err, "Couldn't write PDB line", "pdbFrameWrite")
		}
	}
	return nil
}
