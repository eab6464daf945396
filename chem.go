/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*
 * chem.go, part of gochemkit.
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
	"fmt"
	"sort"

	v3 "github.com/rmera/gochemkit/v3"
)

//Atom contains the atoms read except for the coordinates, which will be in a matrix
//and the b-factors, which are in a separate slice of float64.
type Atom struct {
	Name         string  //PDB name of the atom
	ID           int     //The PDB index of the atom
	index        int     //The place of the atom in a set. I.e. the first atom would have index 0, etc.
	Tag          int     //Just added this for something that someone might want to keep that is not a float.
	MolName      string  //PDB name of the residue or molecule (3-letter code for residues)
	MolName1     byte    //the one letter name for residues and nucleotids
	Char16       byte    //Whatever is in the column 16 (counting from 0) in a PDB file, anything.
	MolID        int     //PDB index of the corresponding residue or molecule
	Chain        string  //One-character PDB name for a chain.
	Mass         float64 //hopefully all these float64 are not too much memory
	Occupancy    float64 //a PDB crystallographic field, often used to store values of interest.
	Vdw          float64 //radius
	Charge       float64 //Partial charge on an atom
	FormalCharge int
	Symbol       string
	Het          bool    // is the atom an hetatm in the pdb file? (if applicable)
	Aromatic     bool    //the atom is part of an aromatic system
	FixedHs      bool    //the hydrogen count of the atom is given by HCount, not by its valence.
	HCount       int     //number of hydrogens when FixedHs is set (e.g. bracket SMILES atoms).
	Bonds        []*Bond // The bonds connecting the atom to others.
}

//Copy puts a copy of A in the receiver. Bonds are not copied.
func (N *Atom) Copy(A *Atom) {
	if A == nil || N == nil {
		panic(ErrNilAtom)
	}
	N.Name = A.Name
	N.ID = A.ID
	N.Tag = A.Tag
	N.MolName = A.MolName
	N.MolName1 = A.MolName1
	N.Char16 = A.Char16
	N.MolID = A.MolID
	N.Chain = A.Chain
	N.Mass = A.Mass
	N.Occupancy = A.Occupancy
	N.Vdw = A.Vdw
	N.Charge = A.Charge
	N.FormalCharge = A.FormalCharge
	N.Symbol = A.Symbol
	N.Het = A.Het
	N.Aromatic = A.Aromatic
	N.FixedHs = A.FixedHs
	N.HCount = A.HCount
	N.index = A.index
}

//Index returns the index of the atom
func (N *Atom) Index() int {
	return N.index
}

//SetIndex sets the index of the atom.
func (N *Atom) SetIndex(i int) {
	N.index = i
}

//IsH returns true if the atom is a hydrogen
func (N *Atom) IsH() bool {
	return N.Symbol == "H" || N.Symbol == "D"
}

//SameResidue returns true if N and A belong to the same residue.
func (N *Atom) SameResidue(A *Atom) bool {
	return N.Chain == A.Chain && N.MolID == A.MolID && N.Char16 == A.Char16 && N.MolName == A.MolName
}

//Neighbors returns the atoms bonded to N, in the order of the bonds.
func (N *Atom) Neighbors() []*Atom {
	ret := make([]*Atom, 0, len(N.Bonds))
	for _, b := range N.Bonds {
		ret = append(ret, b.Cross(N))
	}
	return ret
}

//HeavyDegree returns the number of non-hydrogen atoms bonded to N
func (N *Atom) HeavyDegree() int {
	d := 0
	for _, b := range N.Bonds {
		if !b.Cross(N).IsH() {
			d++
		}
	}
	return d
}

//ExplicitHs returns the number of hydrogen atoms bonded to N.
func (N *Atom) ExplicitHs() int {
	return len(N.Bonds) - N.HeavyDegree()
}

/*****Topology type***/

//Topology contains information about a molecule which is not expected to change in time (i.e. everything except for coordinates and b-factors)
type Topology struct {
	Atoms   []*Atom
	charge  int
	multi   int
	bondseq int //next bond index, 0 if unknown
}

//NewTopology returns topology with ats atoms,
//charge charge and multi multiplicity.
//It doesnt check for consitency across slices or correct charge
//or unpaired electrons.
func NewTopology(charge, multi int, ats ...[]*Atom) *Topology {
	top := new(Topology)
	if len(ats) == 0 || ats[0] == nil {
		top.Atoms = make([]*Atom, 0, 0)
	} else {
		top.Atoms = ats[0]
	}
	top.charge = charge
	top.multi = multi
	top.FillIndexes()
	return top
}

//Charge gets the total charge of the topology
func (T *Topology) Charge() int {
	return T.charge
}

//Multi returns the multiplicity in the topology
func (T *Topology) Multi() int {
	return T.multi
}

//SetCharge sets the total charge of the topology to i
func (T *Topology) SetCharge(i int) {
	T.charge = i
}

//SetMulti sets the multiplicity in the topology to i
func (T *Topology) SetMulti(i int) {
	T.multi = i
}

//FillMasses tries to get fill the  masses for atom that don't have one
//by getting it from the symbol. Only a few common elements are supported
func (T *Topology) FillMasses() {
	for _, val := range T.Atoms {
		if val.Symbol != "" && val.Mass == 0 {
			val.Mass = symbolMass[val.Symbol] //Not error checking
		}
	}
}

//FillVdw tries to get fill the  van der Waals radii for the atoms in the molecule
//from a symbol->radii map. Only a few common elements are supported
func (T *Topology) FillVdw() {
	for _, val := range T.Atoms {
		if val.Symbol != "" && val.Vdw == 0 {
			val.Vdw = symbolVdwrad[val.Symbol] //Not error checking
		}
	}
}

//FillIndexes sets the index of each atom to its position in the topology.
func (T *Topology) FillIndexes() {
	for key, val := range T.Atoms {
		val.index = key
	}
}

//ResetIDs sets the current order of atoms as ID.
func (T *Topology) ResetIDs() {
	for key, val := range T.Atoms {
		val.ID = key + 1
	}
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic(ErrAtomOutOfRange)
	}
	return T.Atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//Masses returns a slice of float64 with the masses of the atoms in the topology, or nil and an error if they have not been calculated
func (T *Topology) Masses() ([]float64, error) {
	mass := make([]float64, T.Len())
	for i := 0; i < T.Len(); i++ {
		thisatom := T.Atom(i)
		if thisatom.Mass == 0 {
			return nil, newCError(fmt.Sprintf("Not all the masses have been obtained: %d %v", i, thisatom), "Masses")
		}
		mass[i] = thisatom.Mass
	}
	return mass, nil
}

//Bonds returns all the bonds in the topology, each once, sorted by index.
func (T *Topology) Bonds() []*Bond {
	seen := make(map[*Bond]bool)
	ret := make([]*Bond, 0, T.Len())
	for _, at := range T.Atoms {
		for _, b := range at.Bonds {
			if !seen[b] {
				seen[b] = true
				ret = append(ret, b)
			}
		}
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].Index < ret[j].Index })
	return ret
}

//nextBondIndex returns an index not used by any bond in the topology
func (T *Topology) nextBondIndex() int {
	if T.bondseq == 0 {
		max := -1
		for _, at := range T.Atoms {
			for _, b := range at.Bonds {
				if b.Index > max {
					max = b.Index
				}
			}
		}
		T.bondseq = max + 1
	}
	T.bondseq++
	return T.bondseq - 1
}

/**Type Molecule**/

//Molecule contains all the info for a molecule in many states. The info that is expected to change between states,
//Coordinates and b-factors are stored separately from other atomic info.
type Molecule struct {
	*Topology
	Coords   []*v3.Matrix
	Bfactors [][]float64
	Title    string
	Data     map[string]string //named data items, such as those at the end of an SDF record.
}

//NewMolecule makes a molecule with ats atoms, coords coordinates, bfactors b-factors
//charge charge and unpaired unpaired electrons, and returns it. It doesnt check for
//consitency across slices or correct charge or unpaired electrons.
func NewMolecule(coords []*v3.Matrix, ats *Topology, bfactors [][]float64) (*Molecule, error) {
	if ats == nil {
		return nil, newCError("Supplied a nil Topology", "NewMolecule")
	}
	mol := new(Molecule)
	mol.Topology = ats
	mol.Coords = coords
	mol.Bfactors = bfactors
	mol.Data = make(map[string]string)
	return mol, mol.Corrupted()
}

//Corrupted checks whether the molecule is corrupted, i.e. the
//coordinates don't match the number of atoms. It also checks
//That the coordinate matrices have 3 columns.
func (M *Molecule) Corrupted() error {
	var err error
	if M.Bfactors == nil {
		M.Bfactors = make([][]float64, 0, len(M.Coords))
		M.Bfactors = append(M.Bfactors, make([]float64, M.Len()))
	}
	lastbfac := len(M.Bfactors) - 1
	for i := range M.Coords {
		r, c := M.Coords[i].Dims()
		if M.Len() != r || (c != 3 && r != 0) {
			err = newCError(fmt.Sprintf("Inconsistent coordinates/atoms in frame %d: Atoms %d, coords: %d", i, M.Len(), r), "Corrupted")
			break
		}
		//Since bfactors are not as important as coordinates, we will just fill with
		//zeroes anything that is lacking or incomplete instead of returning an error.
		if lastbfac < i {
			bfacs := make([]float64, M.Len())
			M.Bfactors = append(M.Bfactors, bfacs)
		}
		bfr := len(M.Bfactors[i])
		if bfr < M.Len() {
			M.Bfactors[i] = append(M.Bfactors[i], make([]float64, M.Len()-bfr)...)
		}
	}
	return err
}

//Copy puts in the receiver a deep copy of A, including bonds.
func (M *Molecule) Copy(A *Molecule) {
	if A == nil || M == nil {
		panic(ErrNilMolecule)
	}
	ats := make([]*Atom, A.Len())
	for i, v := range A.Atoms {
		ats[i] = new(Atom)
		ats[i].Copy(v)
	}
	M.Topology = NewTopology(A.Charge(), A.Multi(), ats)
	for _, b := range A.Bonds() {
		nb := &Bond{Index: b.Index, Dist: b.Dist, Order: b.Order, Aromatic: b.Aromatic, At1: ats[b.At1.index], At2: ats[b.At2.index]}
		nb.At1.Bonds = append(nb.At1.Bonds, nb)
		nb.At2.Bonds = append(nb.At2.Bonds, nb)
	}
	M.Coords = make([]*v3.Matrix, 0, len(A.Coords))
	for _, c := range A.Coords {
		M.Coords = append(M.Coords, c.Clone())
	}
	M.Bfactors = make([][]float64, 0, len(A.Bfactors))
	for _, b := range A.Bfactors {
		M.Bfactors = append(M.Bfactors, append([]float64(nil), b...))
	}
	M.Title = A.Title
	M.Data = make(map[string]string, len(A.Data))
	for k, v := range A.Data {
		M.Data[k] = v
	}
}

//Coord returns the coords for the atom atom in the frame frame.
//panics if frame or coords are out of range.
func (M *Molecule) Coord(atom, frame int) *v3.Matrix {
	if frame >= len(M.Coords) {
		panic(ErrFrameOutOfRange)
	}
	r, _ := M.Coords[frame].Dims()
	if atom >= r {
		panic(ErrAtomOutOfRange)
	}
	return M.Coords[frame].VecView(atom)
}

//AppendAtom adds at to the end of the molecule, with the coordinates
//pos (one vector per frame, or a single one used for all frames).
func (M *Molecule) AppendAtom(at *Atom, pos [][3]float64) {
	n := M.Len()
	at.index = n
	M.Atoms = append(M.Atoms, at)
	for f, c := range M.Coords {
		p := pos[0]
		if f < len(pos) {
			p = pos[f]
		}
		nc := v3.Zeros(n + 1)
		for i := 0; i < n; i++ {
			copy(nc.RawRowView(i), c.RawRowView(i))
		}
		nc.SetVec(n, p[0], p[1], p[2])
		M.Coords[f] = nc
	}
	for f := range M.Bfactors {
		M.Bfactors[f] = append(M.Bfactors[f], 0)
	}
}

//DelAtoms removes from the molecule the atoms with the given indexes,
//together with their coordinates, b-factors and bonds.
func (M *Molecule) DelAtoms(indexes []int) {
	if len(indexes) == 0 {
		return
	}
	M.FillIndexes()
	del := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		del[i] = true
	}
	keep := make([]int, 0, M.Len()-len(del))
	ats := make([]*Atom, 0, M.Len()-len(del))
	for i, at := range M.Atoms {
		if del[i] {
			continue
		}
		keep = append(keep, i)
		ats = append(ats, at)
	}
	for _, at := range ats {
		bonds := at.Bonds[:0]
		for _, b := range at.Bonds {
			if !del[b.At1.index] && !del[b.At2.index] {
				bonds = append(bonds, b)
			}
		}
		at.Bonds = bonds
	}
	for f, c := range M.Coords {
		nc := v3.Zeros(len(keep))
		nc.SomeVecs(c, keep)
		M.Coords[f] = nc
	}
	for f, b := range M.Bfactors {
		nb := make([]float64, 0, len(keep))
		for _, k := range keep {
			if k < len(b) {
				nb = append(nb, b[k])
			}
		}
		M.Bfactors[f] = nb
	}
	M.Atoms = ats
	M.FillIndexes()
}

//Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}
