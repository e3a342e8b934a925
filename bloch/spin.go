/*
 * spin.go, part of topological-excitons.
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

import "math/cmplx"

//The spin expectation values assume the basis is split in two halves of
//the same size, spin up first and spin down second, with the orbitals in
//the same order in both.

//halves checks the layout of psi and returns z = <up|down> together with
//<up|up> - <down|down>.
func (s *System) halves(psi []complex128, caller string) (complex128, float64, error) {
	n := len(psi)
	if n%2 != 0 || n != s.n {
		return 0, 0, newError(ErrSpinLayout, caller, "state of length %d for a basis of %d orbitals", n, s.n)
	}
	h := n / 2
	var z complex128
	var dz float64
	for i := 0; i < h; i++ {
		up, down := psi[i], psi[h+i]
		z += cmplx.Conj(up) * down
		dz += real(up)*real(up) + imag(up)*imag(up) - real(down)*real(down) - imag(down)*imag(down)
	}
	return z, dz, nil
}

//ExpectedSpinX returns <psi|sigma_x x I|psi>.
func (s *System) ExpectedSpinX(psi []complex128) (float64, error) {
	z, _, err := s.halves(psi, "ExpectedSpinX")
	return 2 * real(z), err
}

//ExpectedSpinY returns <psi|sigma_y x I|psi>.
func (s *System) ExpectedSpinY(psi []complex128) (float64, error) {
	z, _, err := s.halves(psi, "ExpectedSpinY")
	return 2 * imag(z), err
}

//ExpectedSpinZ returns <psi|sigma_z x I|psi>.
func (s *System) ExpectedSpinZ(psi []complex128) (float64, error) {
	_, dz, err := s.halves(psi, "ExpectedSpinZ")
	return dz, err
}

//State returns a copy of the eigenvector of band i of b.
func (b *BandSample) State(i int) []complex128 {
	n, _ := b.Vectors.Dims()
	psi := make([]complex128, n)
	for j := range psi {
		psi[j] = b.Vectors.At(j, i)
	}
	return psi
}
