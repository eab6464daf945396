/*
 * geometric.go, part of gochem
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
 * Gochem is developed at the laboratory for instruction in Swedish, Department of Chemistry,
 * University of Helsinki, Finland.
 *
 *
*/
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package chem

import (
	"fmt"
	"math"

	v3 "github.com/rmera/gochemkit/v3"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

func checkVec(number int, point *v3.Matrix) {
	if point == nil {
		panic(fmt.Sprintf("Vector %d is nil", number))
	}
	pr, pc := point.Dims()
	if pr != 1 || pc != 3 {
		panic(fmt.Sprintf("Vector %d has invalid shape", number))
	}
}

func sub(a, b *v3.Matrix) *v3.Matrix {
	r := v3.Zeros(1)
	r.SubVecs(a, 0, b, 0)
	return r
}

func cross(a, b *v3.Matrix) *v3.Matrix {
	r := v3.Zeros(1)
	r.Cross(a, b)
	return r
}

//Angle takes 2 vectors and calculate the angle in radians between them
//It does not check for correctness or return errors!
func Angle(v1, v2 *v3.Matrix) float64 {
	normproduct := v1.VecNorm(0) * v2.VecNorm(0)
	if normproduct <= appzero {
		return 0
	}
	dotprod := v1.Dot(v2)
	argument := dotprod / normproduct
	//Take care of floating point math errors
	if argument > 1 {
		argument = 1
	} else if argument < -1 {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

//AngleAt returns the angle in radians formed by the points a, b and c, with vertex at b.
func AngleAt(a, b, c *v3.Matrix) float64 {
	return Angle(sub(a, b), sub(c, b))
}

//Dihedral calculate the dihedral between the points a, b, c, d, where the first plane
//is defined by abc and the second by bcd. The result is in radians.
func Dihedral(a, b, c, d *v3.Matrix) float64 {
	all := []*v3.Matrix{a, b, c, d}
	for number, point := range all {
		checkVec(number, point)
	}
	//bma=b minus a
	bma := sub(b, a)
	cmb := sub(c, b)
	dmc := sub(d, c)
	bmascaled := v3.Zeros(1)
	n := cmb.VecNorm(0)
	v := bma.Vec(0)
	bmascaled.SetVec(0, v[0]*n, v[1]*n, v[2]*n)
	first := bmascaled.Dot(cross(cmb, dmc))
	v1 := cross(bma, cmb)
	v2 := cross(cmb, dmc)
	second := v1.Dot(v2)
	return math.Atan2(first, second)
}

//DihedralDeg is like Dihedral but returns the angle in degrees.
func DihedralDeg(a, b, c, d *v3.Matrix) float64 {
	return Rad2Deg(Dihedral(a, b, c, d))
}

//Place returns the position of a point D such as |CD|=dist, the angle BCD is angle
//and the dihedral ABCD is dihedral (angles in degrees). It is the usual way of building
//a chain of atoms from internal coordinates.
func Place(a, b, c *v3.Matrix, dist, angle, dihedral float64) *v3.Matrix {
	bc := v3.Zeros(1)
	bc.Unit(sub(c, b))
	n := v3.Zeros(1)
	n.Unit(cross(sub(b, a), bc))
	m := cross(n, bc)
	th := Deg2Rad(angle)
	ph := Deg2Rad(dihedral)
	d2 := []float64{-dist * math.Cos(th), dist * math.Sin(th) * math.Cos(ph), dist * math.Sin(th) * math.Sin(ph)}
	cv := c.Vec(0)
	bv := bc.Vec(0)
	mv := m.Vec(0)
	nv := n.Vec(0)
	ret := v3.Zeros(1)
	ret.SetVec(0,
		cv[0]+d2[0]*bv[0]+d2[1]*mv[0]+d2[2]*nv[0],
		cv[1]+d2[0]*bv[1]+d2[1]*mv[1]+d2[2]*nv[1],
		cv[2]+d2[0]*bv[2]+d2[1]*mv[2]+d2[2]*nv[2])
	return ret
}
