/*
 * sdf.go, part of gochemkit.
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
	"sort"
	"strconv"
	"strings"

	v3 "github.com/rmera/gochemkit/v3"
)

//SDFReader reads molecules, one at the time, from an SD file (MDL molfile V2000 records
//separated by $$$$ lines).
type SDFReader struct {
	r     *bufio.Reader
	line  int
	count int
}

//NewSDFReader returns a reader for the SD data in r.
func NewSDFReader(r io.Reader) *SDFReader {
	return &SDFReader{r: bufio.NewReader(r)}
}

func (S *SDFReader) readLine() (string, error) {
	line, err := S.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	S.line++
	return strings.TrimRight(line, "\r\n"), err
}

//Next returns the next molecule in the file. It returns io.EOF when there
//are no more molecules.
func (S *SDFReader) Next() (*Molecule, error) {
	title, err := S.readLine()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, wrapCError(err, "Couldn't read SDF", "SDFReader.Next")
	}
	if strings.TrimSpace(title) == "" {
		if _, perr := S.r.Peek(1); perr == io.EOF {
			return nil, io.EOF //trailing blank lines
		}
	}
	if _, err = S.readLine(); err != nil {
		return nil, S.fail("header", err)
	}
	if _, err = S.readLine(); err != nil {
		return nil, S.fail("header", err)
	}
	counts, err := S.readLine()
	if err != nil {
		return nil, S.fail("counts line", err)
	}
	if strings.Contains(counts, "V3000") {
		return nil, newCError(fmt.Sprintf("Record %d: V3000 molfiles are not supported", S.count+1), "SDFReader.Next")
	}
	counts = padLine(counts, 6)
	natoms, err1 := strconv.Atoi(strings.TrimSpace(counts[0:3]))
	nbonds, err2 := strconv.Atoi(strings.TrimSpace(counts[3:6]))
	if err1 != nil || err2 != nil {
		return nil, S.fail("counts line", fmt.Errorf("malformed counts line %q", counts))
	}
	ats := make([]*Atom, natoms)
	coords := make([]float64, 0, natoms*3)
	for i := 0; i < natoms; i++ {
		line, err := S.readLine()
		if err != nil {
			return nil, S.fail("atom block", err)
		}
		at, c, err := readMolAtom(line)
		if err != nil {
			return nil, S.fail("atom block", err)
		}
		at.ID = i + 1
		ats[i] = at
		coords = append(coords, c[:]...)
	}
	top := NewTopology(0, 1, ats)
	for i := 0; i < nbonds; i++ {
		line, err := S.readLine()
		if err != nil {
			return nil, S.fail("bond block", err)
		}
		line = padLine(line, 9)
		a1, err1 := strconv.Atoi(strings.TrimSpace(line[0:3]))
		a2, err2 := strconv.Atoi(strings.TrimSpace(line[3:6]))
		t, err3 := strconv.Atoi(strings.TrimSpace(line[6:9]))
		if err1 != nil || err2 != nil || err3 != nil || a1 < 1 || a2 < 1 || a1 > natoms || a2 > natoms {
			return nil, S.fail("bond block", fmt.Errorf("malformed bond line %q", line))
		}
		order := float64(t)
		if t == 4 {
			order = 1.5
		} else if t < 1 || t > 3 {
			order = 1
		}
		b := Bind(top, ats[a1-1], ats[a2-1], order)
		if t == 4 {
			b.Aromatic = true
			ats[a1-1].Aromatic = true
			ats[a2-1].Aromatic = true
		}
	}
	data := make(map[string]string)
	chgseen := false
	inprops := true
	var key string
	var value []string
	for {
		line, err := S.readLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, S.fail("properties", err)
		}
		if strings.HasPrefix(line, "$$$$") {
			break
		}
		if inprops {
			switch {
			case strings.HasPrefix(line, "M  END"):
				inprops = false
			case strings.HasPrefix(line, "M  CHG"):
				if !chgseen {
					//M  CHG supersedes the charges in the atom block
					for _, at := range ats {
						at.FormalCharge = 0
					}
					chgseen = true
				}
				f := strings.Fields(line)
				for j := 3; j+1 < len(f); j += 2 {
					i, err1 := strconv.Atoi(f[j])
					q, err2 := strconv.Atoi(f[j+1])
					if err1 == nil && err2 == nil && i >= 1 && i <= natoms {
						ats[i-1].FormalCharge = q
					}
				}
			}
			continue
		}
		if strings.HasPrefix(line, ">") {
			if key != "" {
				data[key] = strings.Join(value, "\n")
			}
			key, value = "", nil
			if s, e := strings.Index(line, "<"), strings.LastIndex(line, ">"); s >= 0 && e > s {
				key = line[s+1 : e]
			}
			continue
		}
		if key != "" && line != "" {
			value = append(value, line)
		}
	}
	if key != "" {
		data[key] = strings.Join(value, "\n")
	}
	top.FillMasses()
	top.FillVdw()
	mcoords := v3.Zeros(natoms)
	if natoms > 0 {
		mcoords, err = v3.NewMatrix(coords)
		if err != nil {
			return nil, errDecorate(err, "SDFReader.Next")
		}
	}
	mol, err := NewMolecule([]*v3.Matrix{mcoords}, top, nil)
	if err != nil {
		return nil, errDecorate(err, "SDFReader.Next")
	}
	for _, b := range mol.Bonds() {
		b.Dist = mcoords.Distance(b.At1.index, mcoords, b.At2.index)
	}
	mol.Title = strings.TrimSpace(title)
	mol.Data = data
	S.count++
	return mol, nil
}

func (S *SDFReader) fail(section string, err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return wrapCError(err, fmt.Sprintf("Record %d, line %d: error in %s", S.count+1, S.line, section), "SDFReader.Next")
}

//molfile charge codes
var molChargeCodes = map[int]int{1: 3, 2: 2, 3: 1, 5: -1, 6: -2, 7: -3}

//readMolAtom parses an atom line of a V2000 molfile.
func readMolAtom(line string) (*Atom, [3]float64, error) {
	var c [3]float64
	var err error
	at := &Atom{MolName: "UNL", MolID: 1, Het: true, Occupancy: 1}
	if len(line) >= 34 {
		for i := 0; i < 3; i++ {
			c[i], err = strconv.ParseFloat(strings.TrimSpace(line[i*10:i*10+10]), 64)
			if err != nil {
				return nil, c, err
			}
		}
		at.Symbol = normalizeSymbol(line[31:34])
		if len(line) >= 39 {
			code, err := strconv.Atoi(strings.TrimSpace(line[36:39]))
			if err == nil {
				at.FormalCharge = molChargeCodes[code]
			}
		}
	} else {
		f := strings.Fields(line)
		if len(f) < 4 {
			return nil, c, fmt.Errorf("malformed atom line %q", line)
		}
		for i := 0; i < 3; i++ {
			c[i], err = strconv.ParseFloat(f[i], 64)
			if err != nil {
				return nil, c, err
			}
		}
		at.Symbol = normalizeSymbol(f[3])
	}
	at.Name = at.Symbol
	return at, c, nil
}

//SDFFileRead reads all the molecules in the SD file sdfname (possibly compressed, see Open).
func SDFFileRead(sdfname string) ([]*Molecule, error) {
	f, err := Open(sdfname)
	if err != nil {
		return nil, errDecorate(err, "SDFFileRead")
	}
	defer f.Close()
	r := NewSDFReader(f)
	ret := make([]*Molecule, 0, 1)
	for {
		mol, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errDecorate(err, "SDFFileRead")
		}
		ret = append(ret, mol)
	}
	return ret, nil
}

//SDFWrite writes the frame frame of mol as one SD record (V2000 molfile plus data items) to out.
func SDFWrite(out io.Writer, mol *Molecule, frame int) error {
	if frame >= len(mol.Coords) {
		return newCError(fmt.Sprintf("Frame %d out of range", frame), "SDFWrite")
	}
	if mol.Len() > 999 {
		return newCError(fmt.Sprintf("Too many atoms for a V2000 molfile: %d", mol.Len()), "SDFWrite")
	}
	mol.FillIndexes()
	coords := mol.Coords[frame]
	bonds := mol.Bonds()
	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "%s\n  gochemkit  3D\n\n", mol.Title)
	fmt.Fprintf(w, "%3d%3d  0  0  0  0  0  0  0  0999 V2000\n", mol.Len(), len(bonds))
	charged := make([]int, 0)
	for i, at := range mol.Atoms {
		c := coords.RawRowView(i)
		code := 0
		for k, q := range molChargeCodes {
			if q == at.FormalCharge {
				code = k
			}
		}
		if at.FormalCharge != 0 {
			charged = append(charged, i)
		}
		fmt.Fprintf(w, "%10.4f%10.4f%10.4f %-3s 0%3d  0  0  0  0  0  0  0  0  0  0\n", c[0], c[1], c[2], at.Symbol, code)
	}
	for _, b := range bonds {
		t := int(b.Order)
		if b.Order == 1.5 {
			t = 4
		}
		if t < 1 {
			t = 1
		}
		fmt.Fprintf(w, "%3d%3d%3d  0\n", b.At1.index+1, b.At2.index+1, t)
	}
	for len(charged) > 0 {
		n := len(charged)
		if n > 8 {
			n = 8
		}
		fmt.Fprintf(w, "M  CHG%3d", n)
		for _, i := range charged[:n] {
			fmt.Fprintf(w, " %3d %3d", i+1, mol.Atoms[i].FormalCharge)
		}
		fmt.Fprint(w, "\n")
		charged = charged[n:]
	}
	fmt.Fprint(w, "M  END\n")
	keys := make([]string, 0, len(mol.Data))
	for k := range mol.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "> <%s>\n%s\n\n", k, mol.Data[k])
	}
	fmt.Fprint(w, "$$$$\n")
	if err := w.Flush(); err != nil {
		return wrapCError(err, "Couldn't write SDF", "SDFWrite")
	}
	return nil
}
