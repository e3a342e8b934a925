/*
 * kpath.go, part of topological-excitons.
 *
 *
 * Copyright 2024 The topological-excitons Authors
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
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//Package kpath turns a lattice and a path like "G-K-M-G" into the list of
//wavevectors a band structure is computed on.
package kpath

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	v3 "github.com/alejandrojuria/topological-excitons/v3"
)

var (
	ErrLattice = errors.New("kpath: invalid lattice")
	ErrLabel   = errors.New("kpath: unknown point label")
	ErrPath    = errors.New("kpath: invalid path")
)

//Labels maps the name of a high symmetry point to its coordinates in the
//basis of the reciprocal lattice vectors.
type Labels map[string][3]float64

//Cubic holds the usual points of square and cubic lattices.
var Cubic = Labels{
	"G": {0, 0, 0},
	"X": {0.5, 0, 0},
	"Y": {0, 0.5, 0},
	"Z": {0, 0, 0.5},
	"M": {0.5, 0.5, 0},
	"R": {0.5, 0.5, 0.5},
}

//Hexagonal holds the points of hexagonal lattices whose vectors are
//120 degrees apart.
var Hexagonal = Labels{
	"G": {0, 0, 0},
	"M": {0.5, 0, 0},
	"K": {1.0 / 3, 1.0 / 3, 0},
	"A": {0, 0, 0.5},
	"L": {0.5, 0, 0.5},
	"H": {1.0 / 3, 1.0 / 3, 0.5},
}

//Lookup returns the point called name. "Γ" is taken as "G".
func (L Labels) Lookup(name string) ([3]float64, bool) {
	if name == "Γ" || name == "Gamma" {
		name = "G"
	}
	p, ok := L[name]
	return p, ok
}

//Reciprocal returns the reciprocal vectors of lattice, b_i.a_j = 2 pi d_ij,
//one per lattice vector. Lattices with fewer than 3 vectors are completed
//with unit vectors normal to them.
func Reciprocal(lattice *v3.Matrix) (*v3.Matrix, error) {
	ndim := lattice.NVecs()
	if ndim < 1 || ndim > 3 {
		return nil, fmt.Errorf("%w: %d vectors", ErrLattice, ndim)
	}
	full := v3.Zeros(3)
	full.View(0, 0, ndim, 3).Copy(lattice)
	switch ndim {
	case 1:
		a := lattice.VecView(0)
		trial := v3.Zeros(1)
		//any direction not parallel to a
		if math.Abs(a.At(0, 0)) < 0.9*a.VecNorm(0) {
			trial.Set(0, 0, 1)
		} else {
			trial.Set(0, 1, 1)
		}
		n1 := v3.Zeros(1)
		n1.Cross(a, trial)
		n1.Unit(n1)
		n2 := v3.Zeros(1)
		n2.Cross(a, n1)
		n2.Unit(n2)
		full.VecView(1).Copy(n1)
		full.VecView(2).Copy(n2)
	case 2:
		n := v3.Zeros(1)
		n.Cross(lattice.VecView(0), lattice.VecView(1))
		if n.VecNorm(0) < 1e-10 {
			return nil, fmt.Errorf("%w: parallel vectors", ErrLattice)
		}
		n.Unit(n)
		full.VecView(2).Copy(n)
	}
	var inv mat.Dense
	if err := inv.Inverse(full.Dense); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLattice, err)
	}
	var b mat.Dense
	b.Scale(2*math.Pi, inv.T())
	B := v3.Dense2Matrix(&b)
	ret := v3.Zeros(ndim)
	ret.Copy(B.View(0, 0, ndim, 3))
	return ret, nil
}

//Path is a sequence of named points.
type Path struct {
	Names  []string
	Coords [][3]float64 //fractional coordinates
}

//Parse reads a path written as labels joined by "-", for instance "G-K-M-G".
func Parse(path string, labels Labels) (*Path, error) {
	names := strings.Split(path, "-")
	if len(names) < 2 {
		return nil, fmt.Errorf("%w: %q needs at least 2 points", ErrPath, path)
	}
	P := &Path{Names: make([]string, len(names)), Coords: make([][3]float64, len(names))}
	for i, n := range names {
		n = strings.TrimSpace(n)
		p, ok := labels.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("%w: %q in %q", ErrLabel, n, path)
		}
		P.Names[i] = n
		P.Coords[i] = p
	}
	return P, nil
}

//Tick marks where a named point falls along a scan.
type Tick struct {
	Pos   float64
	Label string
}

//Scan is a list of wavevectors with the distance travelled along it.
type Scan struct {
	K     [][]float64 //cartesian, 3 components each
	Dist  []float64
	Ticks []Tick
}

//Points returns n points per segment of P, the last named point
//included, in cartesian coordinates.
func (P *Path) Points(recip *v3.Matrix, n int) (*Scan, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d points per segment", ErrPath, n)
	}
	ndim := recip.NVecs()
	cart := make([][3]float64, len(P.Coords))
	for i, f := range P.Coords {
		for d := ndim; d < 3; d++ {
			if f[d] != 0 {
				return nil, fmt.Errorf("%w: point %s needs %d reciprocal vectors, the lattice has %d", ErrPath, P.Names[i], d+1, ndim)
			}
		}
		for d := 0; d < ndim; d++ {
			for c := 0; c < 3; c++ {
				cart[i][c] += f[d] * recip.At(d, c)
			}
		}
	}
	S := &Scan{}
	for s := 0; s+1 < len(cart); s++ {
		a, b := cart[s], cart[s+1]
		S.Ticks = append(S.Ticks, Tick{Label: P.Names[s]})
		for j := 0; j < n; j++ {
			t := float64(j) / float64(n)
			S.add([]float64{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1]), a[2] + t*(b[2]-a[2])})
			if j == 0 {
				S.Ticks[len(S.Ticks)-1].Pos = S.Dist[len(S.Dist)-1]
			}
		}
	}
	last := cart[len(cart)-1]
	S.add([]float64{last[0], last[1], last[2]})
	S.Ticks = append(S.Ticks, Tick{S.Dist[len(S.Dist)-1], P.Names[len(P.Names)-1]})
	return S, nil
}

func (S *Scan) add(k []float64) {
	d := 0.0
	if l := len(S.K); l > 0 {
		d = S.Dist[l-1] + floats.Distance(S.K[l-1], k, 2)
	}
	S.K = append(S.K, k)
	S.Dist = append(S.Dist, d)
}

//Explicit builds a Scan from wavevectors given by the caller, in cartesian
//coordinates and with 1 to 3 components each.
func Explicit(points [][]float64) (*Scan, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no points", ErrPath)
	}
	S := &Scan{}
	for i, p := range points {
		if len(p) < 1 || len(p) > 3 {
			return nil, fmt.Errorf("%w: point %d has %d components", ErrPath, i, len(p))
		}
		k := make([]float64, 3)
		copy(k, p)
		for _, x := range k {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, fmt.Errorf("%w: point %d is not finite", ErrPath, i)
			}
		}
		S.add(k)
	}
	return S, nil
}
