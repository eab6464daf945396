/*
 * toolkit.go, part of gochemkit.
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

// Package toolkit is a backend-agnostic facade to read molecules, manipulate their
// hydrogens and obtain their atom and residue feature tables.
//
// A Toolkit is built for one of the supported backends ("ob" or "rdk"). The
// backends share parsers, residue templates and perception rules, and differ in
// the protonation policy applied to residues read from PDB/mmCIF files: "ob" leaves
// every titratable group neutral, "rdk" uses the physiological charge states.
// Callers that depend on backend-specific numbers query Backend().
package toolkit

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	chem "github.com/rmera/gochemkit"
	"github.com/rmera/gochemkit/chemgraph"
	"github.com/rmera/gochemkit/internal/logging"
)

//ErrNoSupportedToolkit is returned when the requested backend does not exist.
var ErrNoSupportedToolkit = errors.New("there is no supported toolkit")

//ErrUnknownFormat is returned for molecule formats that can't be read or written.
var ErrUnknownFormat = errors.New("unknown molecule format")

//ErrNoMolecule is returned by ReadString when the data contains no molecule.
var ErrNoMolecule = errors.New("no molecule found")

const (
	OB  = "ob"
	RDK = "rdk"
)

//the backend registry, never modified.
var backends = map[string]chem.Protonation{
	OB:  chem.Neutral,
	RDK: chem.Physiological,
}

//Supported returns true if name is a backend known to the package.
//The name is not case sensitive.
func Supported(name string) bool {
	_, ok := backends[normalizeBackend(name)]
	return ok
}

func normalizeBackend(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

//Backends returns the names of the supported backends, sorted.
func Backends() []string {
	ret := make([]string, 0, len(backends))
	for k := range backends {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//Toolkit reads molecules with the rules of one backend. It has no mutable
//state, so it can be shared.
type Toolkit struct {
	name string
	prot chem.Protonation
	log  logging.Logger
}

//Option configures a Toolkit.
type Option func(*Toolkit)

//WithLogger sets the logger used by the toolkit. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(t *Toolkit) {
		if l != nil {
			t.log = l
		}
	}
}

//New returns the toolkit for the backend name (case insensitive).
func New(name string, opts ...Option) (*Toolkit, error) {
	name = normalizeBackend(name)
	prot, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrNoSupportedToolkit, name, strings.Join(Backends(), ", "))
	}
	t := &Toolkit{name: name, prot: prot, log: logging.NewNop()}
	for _, o := range opts {
		o(t)
	}
	t.log = t.log.Named("toolkit").With(logging.String("backend", name))
	return t, nil
}

//Backend returns the name of the backend of the toolkit.
func (T *Toolkit) Backend() string {
	return T.name
}

//Protonation returns the protonation policy of the backend.
func (T *Toolkit) Protonation() chem.Protonation {
	return T.prot
}

var formatExts = map[string]string{
	".smi":    "smi",
	".smiles": "smi",
	".ism":    "smi",
	".sdf":    "sdf",
	".sd":     "sdf",
	".mol":    "sdf",
	".pdb":    "pdb",
	".ent":    "pdb",
	".cif":    "cif",
	".mmcif":  "cif",
	".xyz":    "xyz",
}

//Format returns the molecule format of the file path, from its extension.
//A compression extension (.gz, .zst) is ignored.
func Format(path string) (string, error) {
	_, base := chem.CompressionExt(path)
	if f, ok := formatExts[strings.ToLower(filepath.Ext(base))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

func normalizeFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimPrefix(format, "."))
	switch f {
	case "mol", "sd":
		f = "sdf"
	case "smiles", "ism":
		f = "smi"
	case "ent":
		f = "pdb"
	case "mmcif":
		f = "cif"
	}
	switch f {
	case "smi", "sdf", "pdb", "cif", "xyz":
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

//Reader returns the molecules in a file or string, one at the time.
type Reader struct {
	tk     *Toolkit
	format string
	src    chem.MolReader
	closer io.Closer
	count  int
}

func (T *Toolkit) newReader(format string, r io.Reader) (*Reader, error) {
	format, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}
	R := &Reader{tk: T, format: format}
	switch format {
	case "smi":
		R.src = chem.NewSMILESReader(r)
	case "sdf":
		R.src = chem.NewSDFReader(r)
	default:
		//pdb, cif and xyz files hold one molecule, maybe with several frames.
		read := map[string]func(io.Reader) (*chem.Molecule, error){
			"pdb": chem.PDBRead,
			"cif": chem.PDBxRead,
			"xyz": chem.XYZRead,
		}[format]
		R.src = &singleReader{r: r, read: read}
	}
	return R, nil
}

//singleReader is a chem.MolReader for formats with one molecule per file.
type singleReader struct {
	r    io.Reader
	read func(io.Reader) (*chem.Molecule, error)
	done bool
}

func (s *singleReader) Next() (*chem.Molecule, error) {
	if s.done {
		return nil, io.EOF
	}
	s.done = true
	return s.read(s.r)
}

//Next returns the next molecule, or io.EOF when there are no more.
func (R *Reader) Next() (*Molecule, error) {
	mol, err := R.src.Next()
	if err != nil {
		return nil, err
	}
	if err := R.tk.prepare(mol, R.format); err != nil {
		return nil, err
	}
	R.count++
	R.tk.log.Debug("read molecule", logging.String("format", R.format), logging.Int("record", R.count),
		logging.String("title", mol.Title), logging.Int("atoms", mol.Len()))
	return &Molecule{mol: mol, tk: R.tk}, nil
}

//Close releases the file behind the reader, if any.
func (R *Reader) Close() error {
	if R.closer == nil {
		return nil
	}
	err := R.closer.Close()
	R.closer = nil
	return err
}

//prepare perceives what each format lacks: bonds for xyz files, residue
//templates (with the backend protonation) for pdb and cif, and aromaticity for all.
func (T *Toolkit) prepare(mol *chem.Molecule, format string) error {
	switch format {
	case "pdb", "cif":
		if err := chem.AssignResidueBonds(mol, 0, T.prot); err != nil {
			return err
		}
	case "xyz":
		if err := chem.AssignBonds(mol.Coords[0], mol.Topology, nil); err != nil {
			return err
		}
	}
	chemgraph.PerceiveAromaticity(mol)
	return nil
}

//ReadFile opens path and returns a reader for the molecules in it. If format is empty
//it is taken from the extension of path. Compressed files are read transparently.
//The reader must be closed.
func (T *Toolkit) ReadFile(format, path string) (*Reader, error) {
	var err error
	if format == "" {
		if format, err = Format(path); err != nil {
			return nil, err
		}
	}
	f, err := chem.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	R, err := T.newReader(format, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	R.closer = f
	return R, nil
}

//ReadAll returns all the molecules in path. On error no molecules are returned.
func (T *Toolkit) ReadAll(format, path string) ([]*Molecule, error) {
	R, err := T.ReadFile(format, path)
	if err != nil {
		return nil, err
	}
	defer R.Close()
	var ret []*Molecule
	for {
		m, err := R.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		ret = append(ret, m)
	}
	T.log.Info("read file", logging.String("path", path), logging.Int("molecules", len(ret)))
	return ret, nil
}

//ReadString returns the first molecule in data, in the given format.
func (T *Toolkit) ReadString(format, data string) (*Molecule, error) {
	R, err := T.newReader(format, strings.NewReader(data))
	if err != nil {
		return nil, err
	}
	m, err := R.Next()
	if err == io.EOF {
		return nil, ErrNoMolecule
	}
	return m, err
}
