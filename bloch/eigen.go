/*
 * eigen.go, part of topological-excitons.
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
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/mat"
)

//gonum only diagonalizes real symmetric matrices, so a Hermitian n x n
//matrix A+iB is solved through the real symmetric 2n x 2n matrix
//
//	[ A  -B ]
//	[ B   A ]
//
//which has every eigenvalue of A+iB twice. If (u, v) is one of its
//eigenvectors, u+iv is an eigenvector of A+iB, and (-v, u) gives i(u+iv),
//so each degenerate cluster of the real problem holds twice as many vectors
//as the complex eigenspace needs.

//embed returns the real symmetric form of the Hermitian A. Only the upper
//triangle of A is read.
func embed(A *mat.CDense) *mat.SymDense {
	n, _ := A.Dims()
	M := mat.NewSymDense(2*n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			a := A.At(i, j)
			M.SetSym(i, j, real(a))
			M.SetSym(n+i, n+j, real(a))
		}
		for j := 0; j < n; j++ {
			var im float64
			switch {
			case j > i:
				im = imag(A.At(i, j))
			case j < i:
				im = -imag(A.At(j, i))
			}
			M.SetSym(i, n+j, -im)
		}
	}
	return M
}

//eigh returns the eigenvalues of the Hermitian A in ascending order, and
//the orthonormal eigenvectors as the columns of a matrix.
func eigh(A *mat.CDense) ([]float64, *mat.CDense, error) {
	n, c := A.Dims()
	if n != c {
		return nil, nil, newError(ErrDimension, "eigh", "%dx%d matrix is not square", n, c)
	}
	var es mat.EigenSym
	if ok := es.Factorize(embed(A), true); !ok {
		return nil, nil, newError(ErrEigen, "eigh", "the factorization did not converge")
	}
	w := es.Values(nil)
	var V mat.Dense
	es.VectorsTo(&V)
	for _, x := range w {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, nil, newError(ErrEigen, "eigh", "non finite eigenvalue")
		}
	}
	scale := math.Max(1, math.Max(math.Abs(w[0]), math.Abs(w[len(w)-1])))
	tol := 1e-9 * scale

	kept := make([][]complex128, 0, n)
	for start := 0; start < len(w); {
		end := start + 1
		for end < len(w) && w[end]-w[end-1] <= tol {
			end++
		}
		if (end-start)%2 != 0 {
			return nil, nil, newError(ErrEigen, "eigh", "unpaired eigenvalue %g", w[start])
		}
		cluster := make([][]complex128, 0, end-start)
		for a := start; a < end; a++ {
			z := make([]complex128, n)
			for i := 0; i < n; i++ {
				z[i] = complex(V.At(i, a), V.At(n+i, a))
			}
			cluster = append(cluster, z)
		}
		basis, err := pivotedGramSchmidt(cluster, kept, (end-start)/2)
		if err != nil {
			return nil, nil, err
		}
		kept = append(kept, basis...)
		start = end
	}
	if len(kept) != n {
		return nil, nil, newError(ErrEigen, "eigh", "found %d eigenvectors for a %dx%d matrix", len(kept), n, n)
	}
	vals := make([]float64, n)
	for a, z := range kept {
		vals[a] = rayleigh(A, z)
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return vals[order[a]] < vals[order[b]] })
	sorted := make([]float64, n)
	vecs := mat.NewCDense(n, n, nil)
	for col, a := range order {
		sorted[col] = vals[a]
		for i := 0; i < n; i++ {
			vecs.Set(i, col, kept[a][i])
		}
	}
	return sorted, vecs, nil
}

//pivotedGramSchmidt picks m orthonormal vectors spanning the candidates,
//also orthogonal to the vectors in prev. At each step the candidate with
//the largest component outside the current span is taken.
func pivotedGramSchmidt(cand [][]complex128, prev [][]complex128, m int) ([][]complex128, error) {
	res := make([][]complex128, len(cand))
	for a, z := range cand {
		r := append([]complex128(nil), z...)
		for _, q := range prev {
			project(r, q)
		}
		res[a] = r
	}
	out := make([][]complex128, 0, m)
	used := make([]bool, len(res))
	for len(out) < m {
		best, bestNorm := -1, 0.0
		for a, r := range res {
			if used[a] {
				continue
			}
			if nr := cnorm(r); nr > bestNorm {
				best, bestNorm = a, nr
			}
		}
		if best < 0 || bestNorm < 1e-6 {
			return nil, newError(ErrEigen, "pivotedGramSchmidt", "degenerate eigenspace has rank %d, expected %d", len(out), m)
		}
		used[best] = true
		q := res[best]
		for i := range q {
			q[i] /= complex(bestNorm, 0)
		}
		out = append(out, q)
		for a, r := range res {
			if !used[a] {
				project(r, q)
			}
		}
	}
	return out, nil
}

//project removes from r its component along the unit vector q.
func project(r, q []complex128) {
	var d complex128
	for i := range q {
		d += cmplx.Conj(q[i]) * r[i]
	}
	for i := range r {
		r[i] -= d * q[i]
	}
}

func cnorm(z []complex128) float64 {
	var s float64
	for _, v := range z {
		s += real(v)*real(v) + imag(v)*imag(v)
	}
	return math.Sqrt(s)
}

//rayleigh returns z^H A z for a unit vector z.
func rayleigh(A *mat.CDense, z []complex128) float64 {
	n := len(z)
	var s complex128
	for i := 0; i < n; i++ {
		var row complex128
		for j := 0; j < n; j++ {
			row += A.At(i, j) * z[j]
		}
		s += cmplx.Conj(z[i]) * row
	}
	return real(s)
}

//invSqrt returns S^-1/2 for the Hermitian, positive definite S. An
//eigenvalue under tol times the largest one is an error.
func invSqrt(S *mat.CDense, tol float64) (*mat.CDense, error) {
	vals, U, err := eigh(S)
	if err != nil {
		return nil, decorate(err, "invSqrt")
	}
	n := len(vals)
	largest := vals[n-1]
	if vals[0] <= 0 || vals[0] <= tol*largest {
		return nil, newError(ErrNotPositiveDefinite, "invSqrt", "smallest eigenvalue %g, largest %g", vals[0], largest)
	}
	W := mat.NewCDense(n, n, nil)
	for j := 0; j < n; j++ {
		f := complex(1/math.Sqrt(vals[j]), 0)
		for i := 0; i < n; i++ {
			W.Set(i, j, U.At(i, j)*f)
		}
	}
	X := mat.NewCDense(n, n, nil)
	mul(X, W, U, blas.ConjTrans)
	return X, nil
}
