/*
 * harness.go, part of gochemkit.
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

package golden

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/rmera/gochemkit/features"
	"github.com/rmera/gochemkit/internal/logging"
	"github.com/rmera/gochemkit/toolkit"
)

//MaxReportedRows is the number of differing rows logged per column.
const MaxReportedRows = 10

//Case is a golden fixture: a file with many small molecules and, optionally,
//a protein file, whose atom tables are stored as snapshots named after the case.
type Case struct {
	Name    string
	Ligands string
	Protein string
}

//Harness computes the atom tables of fixtures and compares them with (or records them as)
//the snapshots under Dir. Snapshots are stored per backend, in <Dir>/<backend>/<name><Ext>.
type Harness struct {
	tk   *toolkit.Toolkit
	dir  string
	ext  string
	opts Options
	log  logging.Logger
}

//HarnessOption configures a Harness.
type HarnessOption func(*Harness)

//WithOptions sets the comparison options. The default is DefaultOptions().
func WithOptions(o Options) HarnessOption {
	return func(h *Harness) {
		h.opts = o
	}
}

//WithParquet stores the snapshots as Parquet files instead of CSV.
func WithParquet() HarnessOption {
	return func(h *Harness) {
		h.ext = ".parquet"
	}
}

//WithLogger sets the logger that receives the diagnostics of failed comparisons.
func WithLogger(l logging.Logger) HarnessOption {
	return func(h *Harness) {
		if l != nil {
			h.log = l
		}
	}
}

//NewHarness returns a harness for the toolkit tk and the snapshots under dir.
func NewHarness(tk *toolkit.Toolkit, dir string, opts ...HarnessOption) *Harness {
	h := &Harness{tk: tk, dir: dir, ext: ".csv", opts: DefaultOptions(), log: logging.NewNop()}
	for _, o := range opts {
		o(h)
	}
	h.log = h.log.Named("golden").With(logging.String("backend", tk.Backend()))
	return h
}

//SnapshotPath returns the file of the snapshot name for the backend of the harness.
func (H *Harness) SnapshotPath(name string) string {
	return filepath.Join(H.dir, H.tk.Backend(), name+H.ext)
}

//LigandTable reads every molecule in path, adds their polar hydrogens and returns the
//stacked table of their heavy atoms together with the molecules, in file order.
func (H *Harness) LigandTable(path string) (*features.Table, []*toolkit.Molecule, error) {
	mols, err := H.tk.ReadAll("", path)
	if err != nil {
		return nil, nil, err
	}
	tables := make([]*features.Table, len(mols))
	for i, m := range mols {
		m.AddH(true)
		tables[i] = m.AtomDict()
	}
	t, err := features.Stack(tables, features.NotHydrogen)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, mols, nil
}

//ProteinTable reads the protein in path, adds its polar hydrogens and returns the
//table of its heavy atoms.
func (H *Harness) ProteinTable(path string) (*features.Table, *toolkit.Molecule, error) {
	mols, err := H.tk.ReadAll("", path)
	if err != nil {
		return nil, nil, err
	}
	if len(mols) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", path, toolkit.ErrNoMolecule)
	}
	prot := mols[0]
	prot.SetProtein(true)
	prot.AddH(true)
	t := prot.AtomDict()
	return t.Filter(func(row int) bool { return features.NotHydrogen(t, row) }), prot, nil
}

func proteinName(c Case) string {
	return c.Name + "_protein"
}

//Record computes the tables of c and writes them as the new snapshots.
func (H *Harness) Record(c Case) error {
	lig, _, err := H.LigandTable(c.Ligands)
	if err != nil {
		return err
	}
	if err := H.write(c.Name, lig); err != nil {
		return err
	}
	if c.Protein == "" {
		return nil
	}
	prot, _, err := H.ProteinTable(c.Protein)
	if err != nil {
		return err
	}
	return H.write(proteinName(c), prot)
}

func (H *Harness) write(name string, t *features.Table) error {
	path := H.SnapshotPath(name)
	if err := features.WriteFile(path, t); err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	H.log.Info("recorded snapshot", logging.String("path", path), logging.Int("rows", t.Len()), logging.Int("columns", len(t.Names())))
	return nil
}

func (H *Harness) read(name string) (*features.Table, error) {
	path := H.SnapshotPath(name)
	t, err := features.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return t, nil
}

//Run computes the tables of c and compares them with the stored snapshots. The
//differing rows are logged, with the SMILES of the molecule they belong to, before
//the first differing column is returned as a *ColumnError.
func (H *Harness) Run(c Case) error {
	lig, mols, err := H.LigandTable(c.Ligands)
	if err != nil {
		return err
	}
	gold, err := H.read(c.Name)
	if err != nil {
		return err
	}
	smiles := func(row int) string {
		idx, ok := lig.Column(features.MolIdx)
		if !ok {
			return ""
		}
		m, ok := idx.Float(row)
		if !ok || int(m) < 0 || int(m) >= len(mols) {
			return ""
		}
		return mols[int(m)].SMILES()
	}
	err = H.compare(c.Name, lig, gold, smiles)
	if c.Protein == "" {
		return err
	}
	prot, pmol, perr := H.ProteinTable(c.Protein)
	if perr != nil {
		return errors.Join(err, perr)
	}
	pgold, perr := H.read(proteinName(c))
	if perr != nil {
		return errors.Join(err, perr)
	}
	opts := H.opts
	opts.Table = "protein_atom_dict"
	psmiles := func(int) string { return pmol.SMILES() }
	if perr := H.compareWith(proteinName(c), prot, pgold, psmiles, opts); perr != nil && err == nil {
		err = perr
	}
	return err
}

func (H *Harness) compare(name string, live, gold *features.Table, smiles func(row int) string) error {
	return H.compareWith(name, live, gold, smiles, H.opts)
}

func (H *Harness) compareWith(name string, live, gold *features.Table, smiles func(row int) string, opts Options) error {
	diffs := Diff(live, gold, opts)
	if len(diffs) == 0 {
		H.log.Debug("snapshot matches", logging.String("snapshot", name), logging.Int("rows", live.Len()))
		return nil
	}
	for _, d := range diffs {
		H.report(name, d, live, gold, smiles)
	}
	return diffs[0]
}

//report logs the rows of a differing column.
func (H *Harness) report(name string, d *ColumnError, live, gold *features.Table, smiles func(row int) string) {
	fields := []logging.Field{logging.String("snapshot", name), logging.String("column", d.Column), logging.Int("rows", len(d.Rows))}
	if d.Reason != "" {
		fields = append(fields, logging.String("reason", d.Reason))
	}
	if !math.IsNaN(d.MaxDeviation) {
		fields = append(fields, logging.Float64("max_deviation", d.MaxDeviation))
	}
	H.log.Warn("column is not equal", fields...)
	lc, lok := live.Column(d.Column)
	gc, gok := gold.Column(d.Column)
	if !lok || !gok {
		return
	}
	for k, row := range d.Rows {
		if k == MaxReportedRows {
			H.log.Warn("more rows differ", logging.String("column", d.Column), logging.Int("skipped", len(d.Rows)-k))
			break
		}
		H.log.Warn("differing row", logging.String("column", d.Column), logging.Int("row", row),
			logging.String("live", lc.Format(row)), logging.String("golden", gc.Format(row)),
			logging.String("smiles", smiles(row)))
	}
}
