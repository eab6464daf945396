/*
 * ramachandran.go, part of gochemkit
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
*/

// Package chemplot draws Ramachandran plots of proteins, with the residues
// coloured by their secondary structure.
package chemplot

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	chem "github.com/rmera/gochemkit"
	v3 "github.com/rmera/gochemkit/v3"
)

//ErrNoData is returned when there are no points to plot.
var ErrNoData = errors.New("no dihedrals to plot")

//SS is the secondary structure class of a residue.
type SS int

const (
	Coil SS = iota
	Alpha
	Beta
)

func (s SS) String() string {
	switch s {
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	}
	return "coil"
}

//Point is the phi/psi pair of one residue, in degrees.
type Point struct {
	Phi, Psi float64
	MolID    int
	MolName  string
	Chain    string
	SS       SS
}

func (p Point) String() string {
	return fmt.Sprintf("%s%d/%s %.2f %.2f %s", p.MolName, p.MolID, p.Chain, p.Phi, p.Psi, p.SS)
}

//RamaPoints returns the phi and psi dihedrals, calculated from coords, of every residue in
//the chains of mol (all chains if chains is empty) that has complete neighbours, with its
//secondary structure class. Residues named in skip (e.g. GLY, PRO) are left out.
func RamaPoints(mol chem.Atomer, coords *v3.Matrix, chains string, skip ...string) ([]Point, error) {
	list, err := chem.RamaList(mol, chains)
	if err != nil {
		return nil, err
	}
	if len(skip) > 0 {
		list, _ = chem.RamaResidueFilter(list, skip, false)
		if len(list) == 0 {
			return nil, ErrNoData
		}
	}
	angles, err := chem.RamaCalc(coords, list)
	if err != nil {
		return nil, err
	}
	type key struct {
		chain string
		molid int
	}
	ss := make(map[key]SS)
	for _, r := range chem.SecondaryStructure(mol, coords) {
		switch {
		case r.Alpha:
			ss[key{r.Chain, r.MolID}] = Alpha
		case r.Beta:
			ss[key{r.Chain, r.MolID}] = Beta
		}
	}
	ret := make([]Point, len(list))
	for i, r := range list {
		ret[i] = Point{Phi: angles[i][0], Psi: angles[i][1], MolID: r.MolID, MolName: r.MolName, Chain: r.Chain, SS: ss[key{r.Chain, r.MolID}]}
	}
	return ret, nil
}

func basicRamaPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Phi"
	p.Y.Label.Text = "Psi"
	//Constant axes
	p.X.Min = -180
	p.X.Max = 180
	p.Y.Min = -180
	p.Y.Max = 180
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

//RamaPlot returns a Ramachandran plot of points, one series per secondary structure
//class. The points with indexes in tag are highlighted with their own glyph and
//legend entry.
func RamaPlot(points []Point, tag []int, title string) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}
	for _, t := range tag {
		if t < 0 || t >= len(points) {
			return nil, fmt.Errorf("tagged point %d out of range (%d points)", t, len(points))
		}
	}
	p := basicRamaPlot(title)
	classes := []SS{Coil, Alpha, Beta}
	for k, class := range classes {
		var xys plotter.XYs
		for i, pt := range points {
			if pt.SS == class && !isInInt(tag, i) {
				xys = append(xys, plotter.XY{X: pt.Phi, Y: pt.Psi})
			}
		}
		if len(xys) == 0 {
			continue
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = colors(k, len(classes))
		p.Add(s)
		p.Legend.Add(class.String(), s)
	}
	for tagged, i := range tag {
		pt := points[i]
		s, err := plotter.NewScatter(plotter.XYs{{X: pt.Phi, Y: pt.Psi}})
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Shape = getShape(tagged)
		s.GlyphStyle.Radius = vg.Points(4)
		s.GlyphStyle.Color = colors(int(pt.SS), len(classes))
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("%s%d", pt.MolName, pt.MolID), s)
	}
	return p, nil
}

//WriteTo writes the plot p, of size x size, to w in the given format
//(png, svg, pdf, eps, jpg or tif).
func WriteTo(w io.Writer, p *plot.Plot, size vg.Length, format string) error {
	c, err := p.WriterTo(size, size, format)
	if err != nil {
		return err
	}
	_, err = c.WriteTo(w)
	return err
}

//Save writes a square plot of side size to the file name. The format is
//taken from the extension.
func Save(p *plot.Plot, size vg.Length, name string) error {
	if err := p.Save(size, size, name); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
