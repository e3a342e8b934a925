/*
 * v3_test.go, part of topological-excitons.
 *
 * Copyright 2013 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestNewMatrix(Te *testing.T) {
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		Te.Error("a slice of 4 elements should not make a Matrix")
	}
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("expected 2 vectors, got %d", A.NVecs())
	}
	if v := A.Vec(1); v != [3]float64{4, 5, 6} {
		Te.Errorf("wrong second vector %v", v)
	}
}

func TestSubVecAndViews(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 1, 1, 2, 3, 4, -1, 0, 5})
	B := Zeros(3)
	B.SubVec(A, A.VecView(0))
	if B.Vec(0) != [3]float64{0, 0, 0} {
		Te.Errorf("first vector should be at the origin, got %v", B.Vec(0))
	}
	if B.Vec(2) != [3]float64{-2, -1, 4} {
		Te.Errorf("wrong shift %v", B.Vec(2))
	}
	view := A.VecView(1)
	view.Set(0, 0, 100)
	if A.At(1, 0) != 100 {
		Te.Error("changes in a view must be seen in the parent matrix")
	}
	fmt.Println("View\n", A)
}

//Shifting a set of positions so one of them sits at the origin, with the
//reference given as a row view of the same matrix.
func TestSubVecSameMatrix(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 6, 8, -2, 0, 1})
	B := Zeros(3)
	B.SubVec(A, A.VecView(1))
	if B.Vec(1) != [3]float64{0, 0, 0} || B.Vec(0) != [3]float64{-3, -4, -5} || B.Vec(2) != [3]float64{-6, -6, -7} {
		Te.Errorf("wrong shift\n%v", B)
	}
	if A.Vec(1) != [3]float64{4, 6, 8} {
		Te.Errorf("SubVec changed its reference vector: %v", A.Vec(1))
	}
	A.SubVec(A, A.VecView(0))
	if A.Vec(0) != [3]float64{0, 0, 0} || A.Vec(2) != [3]float64{-3, -2, -2} {
		Te.Errorf("wrong in-place shift\n%v", A)
	}
	u, _ := NewMatrix([]float64{3, 0, 4})
	u.Unit(u)
	if v := u.Vec(0); math.Abs(v[0]-0.6) > 1e-12 || v[1] != 0 || math.Abs(v[2]-0.8) > 1e-12 {
		Te.Errorf("in-place Unit gave %v", u.Vec(0))
	}
}

func TestCrossNorm(Te *testing.T) {
	x, _ := NewMatrix([]float64{2, 0, 0})
	y, _ := NewMatrix([]float64{0, 3, 0})
	z := Zeros(1)
	z.Cross(x, y)
	if z.Vec(0) != [3]float64{0, 0, 6} {
		Te.Errorf("wrong cross product %v", z.Vec(0))
	}
	if math.Abs(z.VecNorm(0)-6) > 1e-12 {
		Te.Errorf("wrong norm %f", z.VecNorm(0))
	}
	if floats.Dot(x.RawRowView(0), y.RawRowView(0)) != 0 {
		Te.Error("x and y should be orthogonal")
	}
	z.Unit(z)
	if math.Abs(z.VecNorm(0)-1) > 1e-12 {
		Te.Errorf("Unit gave norm %f", z.VecNorm(0))
	}
}

func TestSomeVecs(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18})
	B := Zeros(3)
	B.SomeVecs(A, []int{5, 1, 3})
	if B.Vec(0) != A.Vec(5) || B.Vec(1) != A.Vec(1) || B.Vec(2) != A.Vec(3) {
		Te.Errorf("SomeVecs gave\n%v", B)
	}
}
