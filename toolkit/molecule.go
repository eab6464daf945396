/*
 * molecule.go, part of gochemkit.
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

package toolkit

import (
	"fmt"
	"strings"

	chem "github.com/rmera/gochemkit"
	"github.com/rmera/gochemkit/features"
	"github.com/rmera/gochemkit/internal/logging"
)

//Molecule is a molecule read by a Toolkit. Its feature tables are cached
//until the molecule is changed through AddH, RemoveH or SetProtein.
type Molecule struct {
	mol      *chem.Molecule
	tk       *Toolkit
	protein  bool
	atomdict *features.Table
	resdict  *features.Table
}

//Wrap returns a facade Molecule for mol, using the rules of T.
//mol is not copied.
func (T *Toolkit) Wrap(mol *chem.Molecule) *Molecule {
	return &Molecule{mol: mol, tk: T}
}

//Chem returns the underlying molecule. Changes made to it directly are
//not seen by the cached tables until the next AddH, RemoveH or SetProtein.
func (M *Molecule) Chem() *chem.Molecule {
	return M.mol
}

//Toolkit returns the toolkit that read the molecule.
func (M *Molecule) Toolkit() *Toolkit {
	return M.tk
}

func (M *Molecule) Title() string {
	return M.mol.Title
}

//Atoms returns the atoms of the molecule, in order.
func (M *Molecule) Atoms() []*chem.Atom {
	return M.mol.Atoms
}

func (M *Molecule) NumAtoms() int {
	return M.mol.Len()
}

//Residues returns the residues of the molecule in first-seen order.
func (M *Molecule) Residues() []*chem.Residue {
	return chem.Residues(M.mol)
}

//SetProtein marks the molecule as a protein, which enables the backbone and
//secondary structure columns of AtomDict and ResDict.
func (M *Molecule) SetProtein(protein bool) {
	if protein != M.protein {
		M.invalidate()
	}
	M.protein = protein
}

func (M *Molecule) Protein() bool {
	return M.protein
}

func (M *Molecule) invalidate() {
	M.atomdict = nil
	M.resdict = nil
}

//AddH adds explicit hydrogens: to every atom, or only to atoms other than carbon
//if onlyPolar is true. Calling it again with the same argument adds nothing.
//It returns the number of hydrogens added.
func (M *Molecule) AddH(onlyPolar bool) int {
	n := chem.AddHydrogens(M.mol, onlyPolar)
	if n > 0 {
		M.invalidate()
	}
	M.tk.log.Debug("added hydrogens", logging.String("title", M.mol.Title), logging.Bool("polar", onlyPolar), logging.Int("added", n))
	return n
}

//RemoveH removes all the explicit hydrogens and returns how many were removed.
func (M *Molecule) RemoveH() int {
	n := chem.RemoveHydrogens(M.mol)
	if n > 0 {
		M.invalidate()
	}
	return n
}

//AtomDict returns the atom feature table of the molecule.
//The table is shared with later calls until the molecule changes, and must not be modified.
func (M *Molecule) AtomDict() *features.Table {
	if M.atomdict == nil {
		M.atomdict = features.AtomTable(M.mol, M.protein)
	}
	return M.atomdict
}

//ResDict returns the table of the residues with a complete backbone. It is empty
//for molecules that are not flagged as proteins.
func (M *Molecule) ResDict() *features.Table {
	if M.resdict == nil {
		if M.protein {
			M.resdict = features.ResidueTable(M.mol)
		} else {
			M.resdict = features.ResidueTable(emptyMolecule())
		}
	}
	return M.resdict
}

func emptyMolecule() *chem.Molecule {
	return &chem.Molecule{Topology: chem.NewTopology(0, 1)}
}

//SMILES returns a SMILES string for the molecule.
func (M *Molecule) SMILES() string {
	M.mol.FillIndexes()
	return chem.SMILES(M.mol)
}

//Write returns the molecule in the given format (smi, sdf, pdb, cif or xyz).
//The smi output is the SMILES followed by the title, if any.
func (M *Molecule) Write(format string) (string, error) {
	format, err := normalizeFormat(format)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	switch format {
	case "smi":
		b.WriteString(M.SMILES())
		if t := strings.TrimSpace(M.mol.Title); t != "" && t != b.String() {
			b.WriteString("\t" + t)
		}
		b.WriteString("\n")
	case "sdf":
		err = chem.SDFWrite(&b, M.mol, 0)
	case "pdb":
		err = chem.PDBWrite(&b, M.mol)
	case "cif":
		err = chem.PDBxWrite(&b, M.mol)
	case "xyz":
		err = chem.XYZWrite(&b, M.mol)
	}
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", format, err)
	}
	return b.String(), nil
}

//WriteFile writes the molecules to path, which is compressed if its name ends in .gz or
//.zst. If format is empty it is taken from the extension of path. Only the sdf and smi
//formats can hold more than one molecule.
func WriteFile(format, path string, mols ...*Molecule) error {
	var err error
	if format == "" {
		if format, err = Format(path); err != nil {
			return err
		}
	}
	if format, err = normalizeFormat(format); err != nil {
		return err
	}
	if len(mols) > 1 && format != "sdf" && format != "smi" {
		return fmt.Errorf("%w: %s files hold a single molecule", ErrUnknownFormat, format)
	}
	f, err := chem.Create(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, m := range mols {
		s, err := m.Write(format)
		if err != nil {
			f.Close()
			return fmt.Errorf("%s: %w", path, err)
		}
		if _, err := f.Write([]byte(s)); err != nil {
			f.Close()
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return f.Close()
}
