/*
 * peptide.go, part of gochemkit.
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
	"math"

	v3 "github.com/rmera/gochemkit/v3"
)

//Ideal backbone geometry, from Engh & Huber (1991).
const (
	bondNCA  = 1.458
	bondCAC  = 1.525
	bondCN   = 1.329
	bondCO   = 1.231
	bondCACB = 1.530
	angNCAC  = 111.2
	angCACN  = 116.2
	angCNCA  = 121.7
	angCACO  = 120.5
	angNCACB = 110.5
	dihCB    = -122.6 //C-N-CA-CB for L-amino acids
	omega    = 180.0
)

//Some common backbone dihedrals, in degrees.
var (
	HelixPhiPsi  = [2]float64{-57, -47}
	StrandPhiPsi = [2]float64{-120, 130}
)

//BuildBackbone builds a peptide with the residues in resnames, using ideal bond lengths and angles
//and the phi and psi dihedrals given (in degrees, one per residue, the phi of the first residue is not used).
//The peptide has the N, CA, C and O atoms for each residue, CB for non-glycine residues and an OXT atom
//in the last residue. Residues are numbered from firstres, and belong to the chain chain.
//No bonds are assigned.
func BuildBackbone(resnames []string, phi, psi []float64, chain string, firstres int) (*Molecule, error) {
	n := len(resnames)
	if n == 0 || len(phi) != n || len(psi) != n {
		return nil, newCError(fmt.Sprintf("Inconsistent input: %d residues, %d phi, %d psi", n, len(phi), len(psi)), "BuildBackbone")
	}
	ats := make([]*Atom, 0, n*5+1)
	pos := make([]float64, 0, (n*5+1)*3)
	add := func(name, symbol string, res int, p *v3.Matrix) {
		at := &Atom{Name: name, Symbol: symbol, MolName: resnames[res], MolName1: three2OneLetter[resnames[res]], MolID: firstres + res, Chain: chain, Occupancy: 1}
		ats = append(ats, at)
		pos = append(pos, p.Vec(0)...)
	}
	vec := func(x, y, z float64) *v3.Matrix {
		r := v3.Zeros(1)
		r.SetVec(0, x, y, z)
		return r
	}
	t := Deg2Rad(angNCAC)
	N := vec(0, 0, 0)
	CA := vec(bondNCA, 0, 0)
	C := vec(bondNCA-bondCAC*math.Cos(t), bondCAC*math.Sin(t), 0)
	for i := 0; i < n; i++ {
		add("N", "N", i, N)
		add("CA", "C", i, CA)
		add("C", "C", i, C)
		add("O", "O", i, Place(N, CA, C, bondCO, angCACO, psi[i]+180))
		if resnames[i] != "GLY" {
			add("CB", "C", i, Place(C, N, CA, bondCACB, angNCACB, dihCB))
		}
		if i == n-1 {
			add("OXT", "O", i, Place(N, CA, C, bondCO, angCACO, psi[i]))
			break
		}
		N2 := Place(N, CA, C, bondCN, angCACN, psi[i])
		CA2 := Place(CA, C, N2, bondNCA, angCNCA, omega)
		C2 := Place(C, N2, CA2, bondCAC, angNCAC, phi[i+1])
		N, CA, C = N2, CA2, C2
	}
	top := NewTopology(0, 1, ats)
	top.ResetIDs()
	top.FillMasses()
	top.FillVdw()
	coords, err := v3.NewMatrix(pos)
	if err != nil {
		return nil, errDecorate(err, "BuildBackbone")
	}
	mol, err := NewMolecule([]*v3.Matrix{coords}, top, nil)
	if err != nil {
		return nil, errDecorate(err, "BuildBackbone")
	}
	mol.Title = "peptide"
	return mol, nil
}

//RepeatPhiPsi returns phi and psi slices of length n filled with the given pair.
func RepeatPhiPsi(n int, phipsi [2]float64) (phi, psi []float64) {
	phi = make([]float64, n)
	psi = make([]float64, n)
	for i := range phi {
		phi[i] = phipsi[0]
		psi[i] = phipsi[1]
	}
	return phi, psi
}
