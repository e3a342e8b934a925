/*
 * doc.go, part of topological-excitons.
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

//Package bloch builds and diagonalizes the Bloch Hamiltonian of a periodic
//system given as real-space Fock and overlap blocks, one pair per lattice
//translation.
//
//For a wavevector k, H(k) = sum over R of H_R exp(i k.R), and the same for
//S(k). The generalized problem H psi = E S psi is reduced to a standard one
//with the Lowdin transformation S^-1/2 H S^-1/2, so the eigenvectors a
//System returns are expressed in the orthonormalized basis.
//
//A System keeps its own copy of the model. Except for SetFilling, its
//methods can be called from several goroutines at once.
package bloch
