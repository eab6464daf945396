/*
 * molecules.go, part of gochemkit.
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

	"github.com/rmera/gochemkit/features"
	"github.com/rmera/gochemkit/internal/logging"
	"github.com/rmera/gochemkit/toolkit"
)

//hydrogen modes of the commands that read molecules.
const (
	hKeep  = "keep"
	hNone  = "none"
	hPolar = "polar"
	hAll   = "all"
)

//setHydrogens removes or adds the hydrogens of m according to mode.
func setHydrogens(m *toolkit.Molecule, mode string) error {
	switch mode {
	case hKeep, "":
	case hNone:
		m.RemoveH()
	case hPolar:
		m.AddH(true)
	case hAll:
		m.AddH(false)
	default:
		return fmt.Errorf("invalid hydrogen mode %q: must be one of keep, none, polar, all", mode)
	}
	return nil
}

//NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	var hydrogens string
	cmd := &cobra.Command{
		Use:   "count <file>...",
		Short: "Print the number of molecules, atoms and residues in files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, path := range args {
				if err := runCount(rootOpts, out, path, hydrogens); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&hydrogens, "hydrogens", hKeep, "hydrogens before counting (keep|none|polar|all)")
	return cmd
}

func runCount(opts *RootOptions, out io.Writer, path, hydrogens string) error {
	mols, err := opts.tk.ReadAll("", path)
	if err != nil {
		return err
	}
	var atoms, residues int
	for _, m := range mols {
		if err := setHydrogens(m, hydrogens); err != nil {
			return err
		}
		atoms += m.NumAtoms()
		residues += len(m.Residues())
	}
	_, err = fmt.Fprintf(out, "%s\t%d molecules\t%d atoms\t%d residues\n", path, len(mols), atoms, residues)
	return err
}

//NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	var hydrogens, from, to string
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert molecules between formats",
		Long: `Convert molecules between formats. The formats are taken from the file
extensions unless given with --from and --to. Files ending in .gz or .zst are
compressed or decompressed transparently. Only SDF and SMILES files hold more than
one molecule.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mols, err := rootOpts.tk.ReadAll(from, args[0])
			if err != nil {
				return err
			}
			for _, m := range mols {
				if err := setHydrogens(m, hydrogens); err != nil {
					return err
				}
			}
			if err := toolkit.WriteFile(to, args[1], mols...); err != nil {
				return err
			}
			rootOpts.log.Info("converted", logging.String("input", args[0]), logging.String("output", args[1]), logging.Int("molecules", len(mols)))
			return nil
		},
	}
	cmd.Flags().StringVar(&hydrogens, "hydrogens", hKeep, "hydrogens in the output (keep|none|polar|all)")
	cmd.Flags().StringVar(&from, "from", "", "input format (smi|sdf|pdb|cif|xyz)")
	cmd.Flags().StringVar(&to, "to", "", "output format (smi|sdf|pdb|cif|xyz)")
	return cmd
}

//FeaturesOptions holds the flags of the features command.
type FeaturesOptions struct {
	Output    string
	Hydrogens string
	Protein   bool
	Residues  bool
	HeavyOnly bool
}

//NewFeaturesCommand creates the features command.
func NewFeaturesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FeaturesOptions{}
	cmd := &cobra.Command{
		Use:   "features <file>",
		Short: "Compute the atom (or residue) feature table of the molecules in a file",
		Long: `Compute the feature table of every molecule in a file and stack them into
a single table with a mol_idx column. The table is written as CSV to the standard
output, or to the file given with --output (CSV or Parquet, by extension).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeatures(rootOpts, opts, args[0], cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (.csv, .csv.gz, .parquet)")
	cmd.Flags().StringVar(&opts.Hydrogens, "hydrogens", hPolar, "hydrogens before computing the table (keep|none|polar|all)")
	cmd.Flags().BoolVar(&opts.Protein, "protein", false, "treat the molecules as proteins")
	cmd.Flags().BoolVar(&opts.Residues, "residues", false, "compute the residue table instead of the atom table (implies --protein)")
	cmd.Flags().BoolVar(&opts.HeavyOnly, "heavy", true, "leave hydrogen atoms out of the atom table")
	return cmd
}

func runFeatures(rootOpts *RootOptions, opts *FeaturesOptions, path string, out io.Writer) error {
	mols, err := rootOpts.tk.ReadAll("", path)
	if err != nil {
		return err
	}
	tables := make([]*features.Table, len(mols))
	for i, m := range mols {
		if err := setHydrogens(m, opts.Hydrogens); err != nil {
			return err
		}
		m.SetProtein(opts.Protein || opts.Residues)
		if opts.Residues {
			tables[i] = m.ResDict()
		} else {
			tables[i] = m.AtomDict()
		}
	}
	var keep func(*features.Table, int) bool
	if opts.HeavyOnly && !opts.Residues {
		keep = features.NotHydrogen
	}
	t, err := features.Stack(tables, keep)
	if err != nil {
		return err
	}
	rootOpts.log.Debug("feature table", logging.String("input", path), logging.Int("rows", t.Len()), logging.Strings("columns", t.Names()))
	if opts.Output == "" {
		return features.WriteCSV(out, t)
	}
	return features.WriteFile(opts.Output, t)
}
