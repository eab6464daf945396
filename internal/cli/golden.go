/*
 * golden.go, part of gochemkit.
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

	"github.com/spf13/cobra"

	"github.com/rmera/gochemkit/golden"
	"github.com/rmera/gochemkit/internal/logging"
)

//GoldenOptions holds the flags of the golden command.
type GoldenOptions struct {
	Name    string
	Ligands string
	Protein string
	Dir     string
	Record  bool
	Parquet bool
}

//NewGoldenCommand creates the golden command.
func NewGoldenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GoldenOptions{}
	cmd := &cobra.Command{
		Use:   "golden",
		Short: "Compare the atom tables of fixture files with their golden snapshots",
		Long: `Compute the atom table of every molecule in the ligand file (with polar
hydrogens, hydrogen atoms left out) and of the protein file, if given, and compare
them column by column with the snapshots stored in <dir>/<backend>/<name>.csv.
With --record, the snapshots are written instead.

The tolerance and the excluded column groups come from the golden section of
the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGolden(rootOpts, opts, cmd)
		},
	}
	cmd.Flags().StringVarP(&opts.Name, "name", "n", "ligands", "snapshot name")
	cmd.Flags().StringVarP(&opts.Ligands, "ligands", "l", "", "multi-molecule file (SDF or SMILES)")
	cmd.Flags().StringVarP(&opts.Protein, "protein", "p", "", "protein file (PDB or mmCIF)")
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "snapshot directory, overrides the configuration")
	cmd.Flags().BoolVar(&opts.Record, "record", false, "write the snapshots instead of comparing")
	cmd.Flags().BoolVar(&opts.Parquet, "parquet", false, "store the snapshots as Parquet")
	cmd.MarkFlagRequired("ligands")
	return cmd
}

func runGolden(rootOpts *RootOptions, opts *GoldenOptions, cmd *cobra.Command) error {
	cfg := rootOpts.cfg
	dir := cfg.Golden.Dir
	if opts.Dir != "" {
		dir = opts.Dir
	}
	hopts := []golden.HarnessOption{
		golden.WithLogger(rootOpts.log),
		golden.WithOptions(golden.Options{Tolerance: cfg.Golden.Tolerance, Exclude: cfg.Golden.Exclude}),
	}
	if opts.Parquet {
		hopts = append(hopts, golden.WithParquet())
	}
	h := golden.NewHarness(rootOpts.tk, dir, hopts...)
	c := golden.Case{Name: opts.Name, Ligands: opts.Ligands, Protein: opts.Protein}
	if opts.Record {
		if err := h.Record(c); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "recorded %s\n", h.SnapshotPath(c.Name))
		return err
	}
	if err := h.Run(c); err != nil {
		rootOpts.log.Error("golden comparison failed", logging.String("snapshot", h.SnapshotPath(c.Name)), logging.Err(err))
		return err
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s matches %s\n", opts.Ligands, h.SnapshotPath(c.Name))
	return err
}
