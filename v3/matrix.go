/*
 * matrix.go, part of gochemkit.
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

package v3

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //Everything equal or less than this is considered zero.

//Matrix is a set of vectors in 3D space, i.e. a Nx3 row-major matrix.
//Within the package it is understood that a "vector" is a row vector, i.e. the
//cartesian coordinates of a point in 3D space.
type Matrix struct {
	*mat.Dense
}

func Dense2Matrix(A *mat.Dense) *Matrix {
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 || l == 0 {
		return nil, Error{fmt.Sprintf("Input slice lenght %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
//Zeros(0) returns an empty Matrix.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	if vecs == 0 {
		return &Matrix{&mat.Dense{}}
	}
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//VecView returns a view of the ith vector of the matrix. Changes in the
//view are reflected in F.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//View returns a view of F starting from the ith vector and spanning r vectors.
func (F *Matrix) View(i, r int) *Matrix {
	ret := F.Dense.Slice(i, i+r, 0, 3).(*mat.Dense)
	return &Matrix{ret}
}

//NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if r == 0 {
		return 0
	}
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//Clone returns a new Matrix with a copy of the data in F.
func (F *Matrix) Clone() *Matrix {
	r := F.NVecs()
	ret := Zeros(r)
	for i := 0; i < r; i++ {
		copy(ret.RawRowView(i), F.RawRowView(i))
	}
	return ret
}

//Vec returns a copy of the ith vector as a slice of 3 floats.
func (F *Matrix) Vec(i int) []float64 {
	ret := make([]float64, 3)
	copy(ret, F.RawRowView(i))
	return ret
}

//SetVec sets the ith vector of F to the given coordinates.
func (F *Matrix) SetVec(i int, x, y, z float64) {
	F.Set(i, 0, x)
	F.Set(i, 1, y)
	F.Set(i, 2, z)
}

//SwapVecs swaps the ith and jth vectors of F.
func (F *Matrix) SwapVecs(i, j int) {
	if i >= F.NVecs() || j >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	rowi := F.Vec(i)
	rowj := F.Vec(j)
	for k := 0; k < 3; k++ {
		F.Set(i, k, rowj[k])
		F.Set(j, k, rowi[k])
	}
}

//AddVec adds the vector vec to every vector of A, putting the result on the received.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(mat.ErrShape)
	}
	v := vec.Vec(0)
	for i := 0; i < ar; i++ {
		a := A.RawRowView(i)
		f := F.RawRowView(i)
		for k := 0; k < 3; k++ {
			f[k] = a[k] + v[k]
		}
	}
}

//SubVec subtracts the vector vec from every vector of A, putting the result on the received.
func (F *Matrix) SubVec(A, vec *Matrix) {
	v := vec.Vec(0)
	neg := Zeros(1)
	neg.SetVec(0, -v[0], -v[1], -v[2])
	F.AddVec(A, neg)
}

//SubVecs puts in the first vector of F the difference between the ith vector of A and the jth of B.
func (F *Matrix) SubVecs(A *Matrix, i int, B *Matrix, j int) {
	a := A.Vec(i)
	b := B.Vec(j)
	F.SetVec(0, a[0]-b[0], a[1]-b[1], a[2]-b[2])
}

//VecNorm returns the euclidean norm of the ith vector of F.
func (F *Matrix) VecNorm(i int) float64 {
	f := F.RawRowView(i)
	return math.Sqrt(f[0]*f[0] + f[1]*f[1] + f[2]*f[2])
}

//Dot returns the dot product between the first vectors of F and B
func (F *Matrix) Dot(B *Matrix) float64 {
	f := F.RawRowView(0)
	b := B.RawRowView(0)
	return f[0]*b[0] + f[1]*b[1] + f[2]*b[2]
}

//Cross puts the cross product of the first vecs of a and b in the first vec of F. Panics if error.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() < 1 || b.NVecs() < 1 || F.NVecs() < 1 {
		panic(ErrNoCrossProduct)
	}
	//I ask for Vecs and not for Dims because the Vecs function will panic if
	//the matrix does not have 3 columns.
	a0, a1, a2 := a.At(0, 0), a.At(0, 1), a.At(0, 2)
	b0, b1, b2 := b.At(0, 0), b.At(0, 1), b.At(0, 2)
	F.Set(0, 0, a1*b2-a2*b1)
	F.Set(0, 1, a2*b0-a0*b2)
	F.Set(0, 2, a0*b1-a1*b0)
}

//Unit puts in F the unitary vector pointing in the same direction as
//the first vec of A.
func (F *Matrix) Unit(A *Matrix) {
	norm := A.VecNorm(0)
	if norm <= appzero {
		panic(ErrZeroVector)
	}
	a := A.Vec(0)
	F.SetVec(0, a[0]/norm, a[1]/norm, a[2]/norm)
}

//SomeVecs puts in F the vectors of A with indexes in clist.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	if F.NVecs() != len(clist) {
		panic(mat.ErrShape)
	}
	for key, val := range clist {
		copy(F.RawRowView(key), A.RawRowView(val))
	}
}

//SetVecs sets the vectors of F with indexes in clist to the vectors of A, in order.
func (F *Matrix) SetVecs(A *Matrix, clist []int) {
	if A.NVecs() != len(clist) {
		panic(mat.ErrShape)
	}
	for key, val := range clist {
		copy(F.RawRowView(val), A.RawRowView(key))
	}
}

//Stack puts A stacked over B in F
func (F *Matrix) Stack(A, B *Matrix) {
	ar := A.NVecs()
	br := B.NVecs()
	if F.NVecs() < ar+br {
		panic(mat.ErrShape)
	}
	for i := 0; i < ar; i++ {
		copy(F.RawRowView(i), A.RawRowView(i))
	}
	for i := ar; i < ar+br; i++ {
		copy(F.RawRowView(i), B.RawRowView(i-ar))
	}
}

//DelVec puts in F a copy of A without the ith vector.
func (F *Matrix) DelVec(A *Matrix, i int) {
	ar := A.NVecs()
	if i >= ar || F.NVecs() != ar-1 {
		panic(mat.ErrShape)
	}
	for j := 0; j < i; j++ {
		copy(F.RawRowView(j), A.RawRowView(j))
	}
	for j := i + 1; j < ar; j++ {
		copy(F.RawRowView(j-1), A.RawRowView(j))
	}
}

//Distance returns the euclidean distance between the ith vector of F and the jth of B.
func (F *Matrix) Distance(i int, B *Matrix, j int) float64 {
	f := F.RawRowView(i)
	b := B.RawRowView(j)
	return math.Sqrt((f[0]-b[0])*(f[0]-b[0]) + (f[1]-b[1])*(f[1]-b[1]) + (f[2]-b[2])*(f[2]-b[2]))
}

func (F *Matrix) String() string {
	if F == nil {
		return "<nil>"
	}
	var b strings.Builder
	r := F.NVecs()
	b.WriteString("[")
	for i := 0; i < r; i++ {
		v := F.RawRowView(i)
		if i > 0 {
			b.WriteString("\n ")
		}
		fmt.Fprintf(&b, "%8.3f %8.3f %8.3f", v[0], v[1], v[2])
	}
	b.WriteString("]")
	return b.String()
}

//KronekerDelta is a naive implementation of the kroneker delta function.
func KronekerDelta(a, b, epsilon float64) float64 {
	if epsilon < 0 {
		epsilon = appzero
	}
	if math.Abs(a-b) <= epsilon {
		return 1
	}
	return 0
}
