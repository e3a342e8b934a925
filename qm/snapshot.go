/*
 * snapshot.go, part of topological-excitons.
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

package qm

import (
	v3 "github.com/alejandrojuria/topological-excitons/v3"
	"gonum.org/v1/gonum/mat"
)

//Primitive is one Gaussian primitive of a contracted shell: the exponent
//and the S, P and D/F/G contraction coefficients as CRYSTAL prints them.
type Primitive struct {
	Exponent float64
	S        float64
	P        float64
	DFG      float64
}

//Shell is a contracted shell of the basis set.
type Shell struct {
	Type       string //S, SP, P, D, F...
	Orbitals   int    //number of atomic orbitals the shell contributes
	Primitives []Primitive
}

//Species is a chemical species of the motif, with the basis set of the
//first atom of that species found in the report.
type Species struct {
	Label        string
	AtomicNumber int
	NShells      int //from the atom listing
	Orbitals     int //from the basis set section, 0 if it was not printed
	Shells       []Shell
}

func (S Species) copy() Species {
	r := S
	r.Shells = make([]Shell, len(S.Shells))
	for i, v := range S.Shells {
		r.Shells[i] = v
		r.Shells[i].Primitives = append([]Primitive(nil), v.Primitives...)
	}
	return r
}

//Cell identifies a retained lattice cell: the index CRYSTAL gives it,
//the integer combination of lattice vectors and the resulting Cartesian
//translation.
type Cell struct {
	Index       int
	Coefficient [3]int
	Translation [3]float64
}

//Snapshot is the real-space model read from a CRYSTAL report. It is
//created once by ParseCrystal and never modified afterwards, so it can be
//shared by any number of goroutines. Every accessor returns a copy.
type Snapshot struct {
	ndim        int
	lattice     *v3.Matrix //retained lattice vectors
	axes        []int      //axis (0-2) each retained vector had in the report
	motif       *v3.Matrix
	atomSpecies []int
	species     []Species
	basisDim    int
	nshells     int
	valence     int
	core        int
	filling     int
	cells       []Cell
	//overlap and fock hold len(cells) basisDim x basisDim row-major
	//matrices, one after the other, in the order they were found.
	overlap []complex128
	fock    []complex128
}

//Dim returns the number of periodic directions (1, 2 or 3).
func (S *Snapshot) Dim() int { return S.ndim }

//Lattice returns the retained lattice vectors, one per row.
func (S *Snapshot) Lattice() *v3.Matrix { return S.lattice.Clone() }

//Axes returns, for each retained lattice vector, the position (0 to 2) it
//had in the report.
func (S *Snapshot) Axes() []int { return append([]int(nil), S.axes...) }

//Motif returns the atomic positions, with the first atom at the origin,
//and the species index of each atom.
func (S *Snapshot) Motif() (*v3.Matrix, []int) {
	return S.motif.Clone(), append([]int(nil), S.atomSpecies...)
}

//NAtoms returns the number of atoms in the unit cell.
func (S *Snapshot) NAtoms() int { return len(S.atomSpecies) }

//Species returns the species in the order they were first found.
func (S *Snapshot) Species() []Species {
	r := make([]Species, len(S.species))
	for i, v := range S.species {
		r[i] = v.copy()
	}
	return r
}

//NSpecies returns the number of different species.
func (S *Snapshot) NSpecies() int { return len(S.species) }

//OrbitalsPerSpecies returns the number of orbitals of each species.
func (S *Snapshot) OrbitalsPerSpecies() []int {
	r := make([]int, len(S.species))
	for i, v := range S.species {
		r[i] = v.Orbitals
	}
	return r
}

//OrbitalsPerAtom returns the number of orbitals of each atom of the motif.
func (S *Snapshot) OrbitalsPerAtom() []int {
	r := make([]int, len(S.atomSpecies))
	for i, v := range S.atomSpecies {
		r[i] = S.species[v].Orbitals
	}
	return r
}

//BasisDim returns the number of atomic orbitals, which is the dimension of
//every matrix in the snapshot.
func (S *Snapshot) BasisDim() int { return S.basisDim }

//NShells returns the total number of shells declared in the report.
func (S *Snapshot) NShells() int { return S.nshells }

//Electrons returns the valence and core electrons per cell.
func (S *Snapshot) Electrons() (valence, core int) { return S.valence, S.core }

//Filling returns the number of doubly occupied orbitals, i.e.
//(valence+core)/2 with integer division.
func (S *Snapshot) Filling() int { return S.filling }

//OddElectrons is true when the total number of electrons is odd, in which
//case Filling is not the number of occupied bands of the system.
func (S *Snapshot) OddElectrons() bool { return (S.valence+S.core)%2 != 0 }

//NCells returns the number of retained cells.
func (S *Snapshot) NCells() int { return len(S.cells) }

//Cells returns the retained cells in the order they were read.
func (S *Snapshot) Cells() []Cell { return append([]Cell(nil), S.cells...) }

//Translations returns the Cartesian translation of each retained cell.
func (S *Snapshot) Translations() [][3]float64 {
	r := make([][3]float64, len(S.cells))
	for i, v := range S.cells {
		r[i] = v.Translation
	}
	return r
}

//HamiltonianBlocks returns a copy of the Fock matrix of each retained cell.
func (S *Snapshot) HamiltonianBlocks() []*mat.CDense {
	return S.blocks(S.fock)
}

//OverlapBlocks returns a copy of the overlap matrix of each retained cell.
func (S *Snapshot) OverlapBlocks() []*mat.CDense {
	return S.blocks(S.overlap)
}

//HamiltonianCube returns a copy of all Fock matrices, stored one after
//the other in row-major order.
func (S *Snapshot) HamiltonianCube() []complex128 {
	return append([]complex128(nil), S.fock...)
}

//OverlapCube is the overlap version of HamiltonianCube.
func (S *Snapshot) OverlapCube() []complex128 {
	return append([]complex128(nil), S.overlap...)
}

func (S *Snapshot) blocks(cube []complex128) []*mat.CDense {
	n := S.basisDim
	r := make([]*mat.CDense, len(S.cells))
	for i := range r {
		data := make([]complex128, n*n)
		copy(data, cube[i*n*n:(i+1)*n*n])
		r[i] = mat.NewCDense(n, n, data)
	}
	return r
}
