/*
 * pdbx.go, part of gochem.
 *
 *
 * Copyright 2024 rmeraaatacademicosdotutadotcl
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
 * goChem is developed at Universidad de Tarapaca (UTA)
 *
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

var tl func(string) string = strings.ToLower

// PDBxFileRead reads a PDBx/mmCIF file (possibly compressed, see Open). Returns a Molecule
// with one frame per model in the file. Only the _atom_site loop is read.
func PDBxFileRead(pdbname string) (*Molecule, error) {
	pdbxfile, err := Open(pdbname)
	if err != nil {
		return nil, errDecorate(err, "PDBxFileRead")
	}
	defer pdbxfile.Close()
	mol, err := PDBxRead(pdbxfile)
	if err != nil {
		return nil, errDecorate(err, "PDBxFileRead")
	}
	if mol.Title == "" {
		_, base := CompressionExt(pdbname)
		mol.Title = strings.TrimSuffix(base, ".cif")
	}
	return mol, nil
}

// PDBxRead reads a PDBx/mmCIF file from an io.Reader.
func PDBxRead(pdb io.Reader) (*Molecule, error) {
	mol, err := pdbxBufIORead(bufio.NewReader(pdb))
	return mol, errDecorate(err, "PDBxRead")
}

type pdbxmap map[string]int

// newPdbxMap returns a map with all the _atom_site fields we care about,
// set to -1 (i.e. not present).
func newPdbxMap() pdbxmap {
	m := make(pdbxmap, len(pdbxFields))
	for _, v := range pdbxFields {
		m[v] = -1
	}
	return m
}

// adds i to the map[string] entry, if it exists. If not,
// does nothing. Returns the map.
func (m pdbxmap) add(s string, i int) pdbxmap {
	s = strings.TrimSpace(s)
	if _, ok := m[s]; ok {
		m[s] = i
	}
	return m
}

// returns the integer corresponding to the given string in the map
// or -1 if the string is not a key in the map.
func (m pdbxmap) get(s string) int {
	if i, ok := m[s]; ok {
		return i
	}
	return -1
}

// field returns the value of the field s in data, and false if the field is not present
// or has no value ("." or "?").
func (m pdbxmap) field(s string, data []string) (string, bool) {
	k := m.get(s)
	if k < 0 || k >= len(data) {
		return "", false
	}
	if data[k] == "." || data[k] == "?" {
		return "", false
	}
	return data[k], true
}

// pdbxTokens splits a CIF data line, honoring single and double quotes.
func pdbxTokens(line string) []string {
	ret := make([]string, 0, 20)
	i := 0
	for i < len(line) {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= len(line) {
			break
		}
		if q := line[i]; q == '\'' || q == '"' {
			j := i + 1
			//a quote closes a token only if followed by whitespace or the end of the line
			for j < len(line) && !(line[j] == q && (j+1 == len(line) || line[j+1] == ' ' || line[j+1] == '\t')) {
				j++
			}
			ret = append(ret, line[i+1:min(j, len(line))])
			i = j + 1
			continue
		}
		j := i
		for j < len(line) && line[j] != ' ' && line[j] != '\t' {
			j++
		}
		ret = append(ret, line[i:j])
		i = j
	}
	return ret
}

func pdbxFillAtom(at *Atom, data []string, m pdbxmap) error {
	var err error
	str := func(s string, fallback string) string {
		if v, ok := m.field(s, data); ok {
			return v
		}
		if fallback != "" {
			v, _ := m.field(fallback, data)
			return v
		}
		return ""
	}
	//We start with the simpler string fields
	at.Name = str("_atom_site.auth_atom_id", "_atom_site.label_atom_id")
	at.Symbol = normalizeSymbol(str("_atom_site.type_symbol", ""))
	if at.Symbol == "" {
		at.Symbol, err = symbolFromName(at.Name)
		if err != nil {
			return errDecorate(err, "pdbxFillAtom")
		}
	}
	at.MolName = str("_atom_site.auth_comp_id", "_atom_site.label_comp_id")
	at.MolName1 = three2OneLetter[at.MolName]
	at.Chain = str("_atom_site.auth_asym_id", "_atom_site.label_asym_id")
	if ins := str("_atom_site.pdbx_pdb_ins_code", ""); ins != "" {
		at.Char16 = ins[0]
	} else {
		at.Char16 = ' '
	}
	at.Het = str("_atom_site.group_pdb", "") == "HETATM"
	//Now the numeric fields
	if s := str("_atom_site.id", ""); s != "" {
		at.ID, err = strconv.Atoi(s)
		if err != nil {
			return wrapCError(err, "Couldn't parse ID from "+s, "pdbxFillAtom")
		}
	}
	if s := str("_atom_site.auth_seq_id", "_atom_site.label_seq_id"); s != "" {
		at.MolID, err = strconv.Atoi(s)
		if err != nil {
			return wrapCError(err, "Couldn't parse MolID from "+s, "pdbxFillAtom")
		}
	}
	at.Occupancy = 1
	if s := str("_atom_site.occupancy", ""); s != "" {
		at.Occupancy, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return wrapCError(err, "Couldn't parse Occupancy from "+s, "pdbxFillAtom")
		}
	}
	//Charge, but we won't do anything if we somehow can't read it.
	if s := str("_atom_site.pdbx_formal_charge", ""); s != "" {
		if q, err := strconv.Atoi(s); err == nil {
			at.FormalCharge = q
		}
	}
	return nil
}

func pdbxFillCoords(data []string, coord []float64, m pdbxmap) ([]float64, error) {
	c := []string{"_atom_site.cartn_x", "_atom_site.cartn_y", "_atom_site.cartn_z"}
	for j, v := range c {
		s, ok := m.field(v, data)
		if !ok {
			return coord, newCError(fmt.Sprintf("Field %s not present in data %v", v, data), "pdbxFillCoords")
		}
		fl, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return coord, wrapCError(err, fmt.Sprintf("Couldn't parse %d cartesian coordinate from %s", j, s), "pdbxFillCoords")
		}
		coord = append(coord, fl)
	}
	return coord, nil
}

func pdbxBufIORead(pdb *bufio.Reader) (*Molecule, error) {
	m := newPdbxMap()
	molecule := make([]*Atom, 0)
	coords := [][]float64{make([]float64, 0, 3)}
	bfactors := [][]float64{make([]float64, 0)}
	currentmodel := -1
	var inloop, reading, done bool
	field := 0
	title := ""
	hp := strings.HasPrefix
	for !done {
		line, err := pdb.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, wrapCError(err, "Error reading file", "pdbxBufIORead")
		}
		if err == io.EOF {
			done = true
		}
		line = strings.TrimSpace(line)
		if hp(line, "#") || hp(line, ";") || line == "" {
			if reading && len(molecule) > 0 && hp(line, "#") {
				break //end of the _atom_site loop
			}
			continue
		}
		if hp(tl(line), "data_") && title == "" {
			title = line[5:]
			continue
		}
		if hp(tl(line), "loop_") {
			inloop, reading = true, false
			field = 0
			continue
		}
		if hp(line, "_") {
			if inloop && hp(tl(line), "_atom_site.") {
				reading = true
				m.add(tl(strings.Fields(line)[0]), field)
				field++
			} else {
				inloop = reading
			}
			continue
		}
		if !reading {
			continue
		}
		//Here we should be reading the content lines.
		fields := pdbxTokens(line)
		if s, ok := m.field("_atom_site.label_alt_id", fields); ok && s != "A" && s != "1" {
			continue
		}
		if s, ok := m.field("_atom_site.pdbx_pdb_model_num", fields); ok {
			model, err := strconv.Atoi(s)
			if err != nil {
				return nil, wrapCError(err, "Couldn't parse model number from "+s, "pdbxBufIORead")
			}
			if currentmodel < 0 {
				currentmodel = model
			}
			if model != currentmodel {
				coords = append(coords, make([]float64, 0, len(molecule)*3))
				bfactors = append(bfactors, make([]float64, 0, len(molecule)))
				currentmodel = model
			}
		}
		//we don't read the atoms again for the next models.
		if len(coords) == 1 {
			at := new(Atom)
			if err := pdbxFillAtom(at, fields, m); err != nil {
				return nil, wrapCError(err, fmt.Sprintf("Couldn't read atom %d", len(molecule)+1), "pdbxBufIORead")
			}
			molecule = append(molecule, at)
		}
		c := len(coords) - 1
		coords[c], err = pdbxFillCoords(fields, coords[c], m)
		if err != nil {
			return nil, errDecorate(err, "pdbxBufIORead")
		}
		bf := 0.0
		if s, ok := m.field("_atom_site.b_iso_or_equiv", fields); ok {
			bf, _ = strconv.ParseFloat(s, 64)
		}
		bfactors[c] = append(bfactors[c], bf)
	}
	if len(molecule) == 0 {
		return nil, newCError("No atoms found", "pdbxBufIORead")
	}
	top := NewTopology(0, 1, molecule)
	top.FillMasses()
	top.FillVdw()
	mcoords := make([]*v3.Matrix, len(coords))
	for i, c := range coords {
		var err error
		if len(c) != 3*len(molecule) {
			return nil, newCError(fmt.Sprintf("Model %d has %d atoms, expected %d", i+1, len(c)/3, len(molecule)), "pdbxBufIORead")
		}
		mcoords[i], err = v3.NewMatrix(c)
		if err != nil {
			return nil, wrapCError(err, fmt.Sprintf("Couldn't transform coordinates from frame %d", i), "pdbxBufIORead")
		}
	}
	returned, err := NewMolecule(mcoords, top, bfactors)
	if err != nil {
		return nil, errDecorate(err, "pdbxBufIORead")
	}
	returned.Title = title
	return returned, nil
}

// PDBxWrite writes all the frames of mol as a PDBx/mmCIF file to out.
func PDBxWrite(out io.Writer, mol *Molecule) error {
	w := bufio.NewWriter(out)
	n := strings.ReplaceAll(mol.Title, " ", "_")
	if n == "" {
		n = "gochemkit"
	}
	fmt.Fprintf(w, "data_%s\n#\nloop_\n", n)
	for _, v := range pdbxWriteFields {
		fmt.Fprintf(w, "_atom_site.%s\n", v)
	}
	for i, v := range mol.Coords {
		if v.NVecs() != mol.Len() {
			return newCError(fmt.Sprintf("Topology (%d) and Coords (%d) don't have the same number of atoms", mol.Len(), v.NVecs()), "PDBxWrite")
		}
		for j := 0; j < mol.Len(); j++ {
			a := mol.Atom(j)
			het := "ATOM"
			if a.Het {
				het = "HETATM"
			}
			chain := a.Chain
			if chain == "" {
				chain = "."
			}
			c := v.RawRowView(j)
			var bf float64
			if len(mol.Bfactors) > i && len(mol.Bfactors[i]) > j {
				bf = mol.Bfactors[i][j]
			}
			fmt.Fprintf(w, "%s %d %s %s %s %s %d %s %.3f %.3f %.3f %.2f %.2f %d %d\n", het, a.ID, a.Symbol, pdbxQuote(a.Name), a.MolName, chain, a.MolID,
				string(checkChar16(a.Char16)), c[0], c[1], c[2], a.Occupancy, bf, a.FormalCharge, i+1)
		}
	}
	fmt.Fprint(w, "#\n")
	if err := w.Flush(); err != nil {
		return wrapCError(err, "Couldn't write file", "PDBxWrite")
	}
	return nil
}

func pdbxQuote(s string) string {
	if strings.ContainsAny(s, "'\" ") {
		return "\"" + s + "\""
	}
	return s
}

func checkChar16(c byte) byte {
	if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
		return c
	}
	return '?'
}

var pdbxWriteFields = []string{"group_PDB", "id", "type_symbol", "auth_atom_id", "auth_comp_id", "auth_asym_id", "auth_seq_id", "pdbx_PDB_ins_code",
	"Cartn_x", "Cartn_y", "Cartn_z", "occupancy", "B_iso_or_equiv", "pdbx_formal_charge", "pdbx_PDB_model_num"}

var pdbxFields = []string{
	"_atom_site.group_pdb",
	"_atom_site.id",
	"_atom_site.type_symbol",
	"_atom_site.label_atom_id",
	"_atom_site.label_alt_id",
	"_atom_site.label_comp_id",
	"_atom_site.label_asym_id",
	"_atom_site.label_seq_id",
	"_atom_site.pdbx_pdb_ins_code",
	"_atom_site.cartn_x",
	"_atom_site.cartn_y",
	"_atom_site.cartn_z",
	"_atom_site.occupancy",
	"_atom_site.b_iso_or_equiv",
	"_atom_site.pdbx_formal_charge",
	"_atom_site.auth_seq_id",
	"_atom_site.auth_comp_id",
	"_atom_site.auth_asym_id",
	"_atom_site.auth_atom_id",
	"_atom_site.pdbx_pdb_model_num",
}
