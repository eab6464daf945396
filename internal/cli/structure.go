/*
 * structure.go, part of gochemkit.
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

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	chem "github.com/rmera/gochemkit"
	"github.com/rmera/gochemkit/chemplot"
	"github.com/rmera/gochemkit/internal/logging"
	"github.com/rmera/gochemkit/toolkit"
)

func readProtein(opts *RootOptions, path string) (*toolkit.Molecule, error) {
	mols, err := opts.tk.ReadAll("", path)
	if err != nil {
		return nil, err
	}
	if len(mols) == 0 {
		return nil, fmt.Errorf("%s: %w", path, toolkit.ErrNoMolecule)
	}
	prot := mols[0]
	prot.SetProtein(true)
	return prot, nil
}

//NewSSCommand creates the ss command.
func NewSSCommand(rootOpts *RootOptions) *cobra.Command {
	var frame int
	cmd := &cobra.Command{
		Use:   "ss <protein>",
		Short: "Print the secondary structure of the residues of a protein",
		Long: `Print one line per residue with a complete backbone: chain, residue number,
residue name and its secondary structure (H for alpha, E for beta, C otherwise).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prot, err := readProtein(rootOpts, args[0])
			if err != nil {
				return err
			}
			mol := prot.Chem()
			if frame < 0 || frame >= len(mol.Coords) {
				return fmt.Errorf("frame %d out of range (%d frames)", frame, len(mol.Coords))
			}
			return writeSS(cmd.OutOrStdout(), chem.SecondaryStructure(mol, mol.Coords[frame]))
		},
	}
	cmd.Flags().IntVar(&frame, "frame", 0, "coordinate frame (model) to use")
	return cmd
}

func writeSS(w io.Writer, dict []*chem.BackboneResidue) error {
	for _, r := range dict {
		ss := "C"
		switch {
		case r.Alpha:
			ss = "H"
		case r.Beta:
			ss = "E"
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", r.Chain, r.MolID, r.Name, ss); err != nil {
			return err
		}
	}
	return nil
}

//NewRamaCommand creates the rama command.
func NewRamaCommand(rootOpts *RootOptions) *cobra.Command {
	var output, chains, title string
	var tag []int
	var skip []string
	var size float64
	cmd := &cobra.Command{
		Use:   "rama <protein>",
		Short: "Draw the Ramachandran plot of a protein",
		Long: `Draw the Ramachandran plot of a protein, with the residues coloured by their
secondary structure. The format of the plot (png, svg, pdf, eps) is taken from the
extension of --output. The points given with --tag (indexes in the plot, 0-based)
are highlighted. Residues named with --skip (e.g. GLY,PRO) are left out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prot, err := readProtein(rootOpts, args[0])
			if err != nil {
				return err
			}
			mol := prot.Chem()
			points, err := chemplot.RamaPoints(mol, mol.Coords[0], chains, skip...)
			if err != nil {
				return err
			}
			if title == "" {
				title = mol.Title
			}
			p, err := chemplot.RamaPlot(points, tag, title)
			if err != nil {
				return err
			}
			if err := chemplot.Save(p, vg.Length(size)*vg.Inch, output); err != nil {
				return err
			}
			rootOpts.log.Info("ramachandran plot", logging.String("output", output), logging.Int("residues", len(points)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "rama.png", "output file")
	cmd.Flags().StringVar(&chains, "chains", "", "chains to plot, all if empty (e.g. AB)")
	cmd.Flags().StringVar(&title, "title", "", "plot title, the title of the molecule by default")
	cmd.Flags().IntSliceVar(&tag, "tag", nil, "points to highlight")
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "residue names to leave out")
	cmd.Flags().Float64Var(&size, "size", 5, "side of the plot, in inches")
	return cmd
}
