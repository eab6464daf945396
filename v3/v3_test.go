/*
 * v3_test.go, part of gochemkit.
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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(Te *testing.T) {
	_, err := NewMatrix([]float64{1, 2})
	require.Error(Te, err)
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	assert.Equal(Te, 2, A.NVecs())
	assert.Equal(Te, []float64{4, 5, 6}, A.Vec(1))
}

func TestVecViewShares(Te *testing.T) {
	A := Zeros(3)
	v := A.VecView(1)
	v.Set(0, 2, 7)
	assert.Equal(Te, 7.0, A.At(1, 2))
}

func TestCrossAndUnit(Te *testing.T) {
	x, _ := NewMatrix([]float64{2, 0, 0})
	y, _ := NewMatrix([]float64{0, 3, 0})
	z := Zeros(1)
	z.Cross(x, y)
	assert.Equal(Te, []float64{0, 0, 6}, z.Vec(0))
	z.Unit(z)
	assert.InDelta(Te, 1.0, z.At(0, 2), 1e-12)
	assert.InDelta(Te, 0.0, x.Dot(y), 1e-12)
}

func TestStackDelSome(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 1, 1, 2, 2, 2})
	B, _ := NewMatrix([]float64{3, 3, 3})
	S := Zeros(3)
	S.Stack(A, B)
	assert.Equal(Te, []float64{3, 3, 3}, S.Vec(2))
	D := Zeros(2)
	D.DelVec(S, 1)
	assert.Equal(Te, []float64{3, 3, 3}, D.Vec(1))
	P := Zeros(2)
	P.SomeVecs(S, []int{2, 0})
	assert.Equal(Te, []float64{1, 1, 1}, P.Vec(1))
}

func TestTranslate(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 1, 1, 2, 2, 2})
	c, _ := NewMatrix([]float64{1, 1, 1})
	A.SubVec(A, c)
	assert.Equal(Te, []float64{0, 0, 0}, A.Vec(0))
	assert.Equal(Te, []float64{1, 1, 1}, c.Vec(0))
	assert.InDelta(Te, math.Sqrt(3), A.Distance(0, A, 1), 1e-12)
}
