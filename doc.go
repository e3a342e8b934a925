/*
 * doc.go, part of topological-excitons.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

/*Package crystal turns the output of a periodic Hartree-Fock or DFT
calculation with CRYSTAL into band structures.

	**Capabilities**

    Reads CRYSTAL reports, plain or compressed with gzip or zstandard: the
	lattice, the atoms in the unit cell, the Gaussian basis set and the
	overlap and Fock matrices of every cell (package qm).

    Builds the Bloch Hamiltonian and overlap at any wavevector and solves
	the generalized eigenproblem through Lowdin orthogonalization. Band
	scans run concurrently (package bloch).

    Computes spin expectation values for states in a basis split in spin up
	and spin down halves.

    Builds reciprocal lattices and paths through named high symmetry
	points (package kpath).

    Draws band structures with gonum/plot (package bandplot).

    Runs the whole pipeline from a TOML file (Run, LoadConfig).

The v3 package holds the row-vector matrices used for lattices, atomic
positions and wavevectors.
*/
package crystal
