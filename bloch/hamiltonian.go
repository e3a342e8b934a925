/*
 * hamiltonian.go, part of topological-excitons.
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

package bloch

import (
	"math/cmplx"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"
)

//kvec pads k with zeros up to 3 components.
func kvec(k []float64) ([3]float64, error) {
	var K [3]float64
	if len(k) > 3 {
		return K, newError(ErrDimension, "kvec", "wavevector with %d components", len(k))
	}
	copy(K[:], k)
	return K, nil
}

//fourier returns sum over cells of blocks[c] exp(i k.R_c). With triangular,
//only the elements with j >= i are summed and the rest is filled in by
//conjugation.
func (s *System) fourier(blocks []*mat.CDense, k [3]float64, triangular bool) *mat.CDense {
	n := s.n
	out := mat.NewCDense(n, n, nil)
	od := out.RawCMatrix()
	for c, b := range blocks {
		R := s.cells[c]
		phase := cmplx.Exp(complex(0, k[0]*R[0]+k[1]*R[1]+k[2]*R[2]))
		bd := b.RawCMatrix()
		for i := 0; i < n; i++ {
			j0 := 0
			if triangular {
				j0 = i
			}
			orow := od.Data[i*od.Stride : i*od.Stride+n]
			brow := bd.Data[i*bd.Stride : i*bd.Stride+n]
			for j := j0; j < n; j++ {
				orow[j] += phase * brow[j]
			}
		}
	}
	if triangular {
		for i := 1; i < n; i++ {
			for j := 0; j < i; j++ {
				od.Data[i*od.Stride+j] = cmplx.Conj(od.Data[j*od.Stride+i])
			}
		}
	}
	return out
}

//Hamiltonian returns the Bloch Hamiltonian H(k). k can have 1 to 3
//components, the missing ones are taken as zero.
func (s *System) Hamiltonian(k []float64, triangular bool) (*mat.CDense, error) {
	K, err := kvec(k)
	if err != nil {
		return nil, decorate(err, "Hamiltonian")
	}
	return s.fourier(s.fock, K, triangular), nil
}

//Overlap returns the overlap matrix S(k).
func (s *System) Overlap(k []float64, triangular bool) (*mat.CDense, error) {
	K, err := kvec(k)
	if err != nil {
		return nil, decorate(err, "Overlap")
	}
	return s.fourier(s.overlap, K, triangular), nil
}

//Orthogonalize replaces H with S(k)^-1/2 H S(k)^-1/2.
func (s *System) Orthogonalize(k []float64, H *mat.CDense, triangular bool) error {
	if r, c := H.Dims(); r != s.n || c != s.n {
		return newError(ErrDimension, "Orthogonalize", "H is %dx%d, expected %dx%d", r, c, s.n, s.n)
	}
	S, err := s.Overlap(k, triangular)
	if err != nil {
		return decorate(err, "Orthogonalize")
	}
	X, err := invSqrt(S, s.tol)
	if err != nil {
		return decorate(err, "Orthogonalize")
	}
	tmp := mat.NewCDense(s.n, s.n, nil)
	mul(tmp, X, H, blas.NoTrans)
	mul(H, tmp, X, blas.NoTrans)
	return nil
}

//mul puts a*op(b) in dst. dst must not share storage with a or b.
func mul(dst, a, b *mat.CDense, tb blas.Transpose) {
	cblas128.Gemm(blas.NoTrans, tb, 1, a.RawCMatrix(), b.RawCMatrix(), 0, dst.RawCMatrix())
}
