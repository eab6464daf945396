/*
 * xyz.go, part of gochemkit.
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

//XYZFileRead reads an xyz file (possibly compressed, see Open). Each structure in the file
//is read as a frame, so all of them must have the same atoms. No bonds are assigned.
func XYZFileRead(xyzname string) (*Molecule, error) {
	f, err := Open(xyzname)
	if err != nil {
		return nil, errDecorate(err, "XYZFileRead")
	}
	defer f.Close()
	mol, err := XYZRead(f)
	return mol, errDecorate(err, "XYZFileRead")
}

//XYZRead reads an xyz file from an io.Reader. The comment line of the first structure is used
//as the title of the molecule.
func XYZRead(xyzp io.Reader) (*Molecule, error) {
	xyz := bufio.NewReader(xyzp)
	var ats []*Atom
	frames := make([]*v3.Matrix, 0, 1)
	title := ""
	for {
		line, err := xyz.ReadString('\n')
		if err == io.EOF && strings.TrimSpace(line) == "" {
			break
		}
		if err != nil && err != io.EOF {
			return nil, wrapCError(err, "Couldn't read XYZ", "XYZRead")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		natoms, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			return nil, wrapCError(err, fmt.Sprintf("Ill formatted XYZ file, frame %d: bad atom count", len(frames)+1), "XYZRead")
		}
		comment, _ := xyz.ReadString('\n')
		if len(frames) == 0 {
			title = strings.TrimSpace(comment)
		}
		readAtoms := ats == nil
		if readAtoms {
			ats = make([]*Atom, natoms)
		} else if natoms != len(ats) {
			return nil, newCError(fmt.Sprintf("Frame %d has %d atoms, expected %d", len(frames)+1, natoms, len(ats)), "XYZRead")
		}
		coords := make([]float64, natoms*3)
		for i := 0; i < natoms; i++ {
			line, err := xyz.ReadString('\n')
			if err != nil && (err != io.EOF || line == "") {
				return nil, wrapCError(err, fmt.Sprintf("Frame %d ended unexpectedly", len(frames)+1), "XYZRead")
			}
			fields := strings.Fields(line)
			if len(fields) < 4 {
				return nil, newCError(fmt.Sprintf("Line number %d in frame %d ill formed", i+1, len(frames)+1), "XYZRead")
			}
			for j := 0; j < 3; j++ {
				coords[i*3+j], err = strconv.ParseFloat(fields[j+1], 64)
				if err != nil {
					return nil, wrapCError(err, fmt.Sprintf("Line number %d in frame %d ill formed", i+1, len(frames)+1), "XYZRead")
				}
			}
			if readAtoms {
				sym := normalizeSymbol(fields[0])
				ats[i] = &Atom{Name: sym, Symbol: sym, ID: i + 1, MolName: "UNL", MolID: 1, Het: true, Occupancy: 1}
			}
		}
		c := v3.Zeros(natoms)
		if natoms > 0 {
			c, err = v3.NewMatrix(coords)
			if err != nil {
				return nil, errDecorate(err, "XYZRead")
			}
		}
		frames = append(frames, c)
	}
	if len(frames) == 0 {
		return nil, newCError("No structures found", "XYZRead")
	}
	top := NewTopology(0, 1, ats)
	top.FillMasses()
	top.FillVdw()
	mol, err := NewMolecule(frames, top, nil)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	mol.Title = title
	return mol, nil
}

//XYZWrite writes all the frames of mol to out in xyz format.
func XYZWrite(out io.Writer, mol *Molecule) error {
	if err := mol.Corrupted(); err != nil {
		return errDecorate(err, "XYZWrite")
	}
	w := bufio.NewWriter(out)
	for _, c := range mol.Coords {
		fmt.Fprintf(w, "%-4d\n%s\n", mol.Len(), strings.ReplaceAll(mol.Title, "\n", " "))
		for i, at := range mol.Atoms {
			v := c.RawRowView(i)
			fmt.Fprintf(w, "%-2s  %12.6f%12.6f%12.6f\n", at.Symbol, v[0], v[1], v[2])
		}
	}
	if err := w.Flush(); err != nil {
		return wrapCError(err, "Couldn't write XYZ", "XYZWrite")
	}
	return nil
}
