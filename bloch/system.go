/*
 * system.go, part of topological-excitons.
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
	"runtime"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/mat"

	"github.com/alejandrojuria/topological-excitons/logger"
)

//DefaultOverlapTolerance is the smallest eigenvalue of S(k), relative to
//the largest one, that is accepted as positive.
const DefaultOverlapTolerance = 1e-10

//Model is the read-only real-space description a System is built from.
//The block lists are parallel to Translations. *qm.Snapshot implements it.
type Model interface {
	Dim() int
	BasisDim() int
	Filling() int
	Translations() [][3]float64
	HamiltonianBlocks() []*mat.CDense
	OverlapBlocks() []*mat.CDense
}

//System answers reciprocal-space questions about a Model.
type System struct {
	ndim    int
	n       int
	filling int
	cells   [][3]float64
	fock    []*mat.CDense
	overlap []*mat.CDense
	tol     float64
	workers int
	log     *log.Logger
}

//Option configures a System.
type Option func(*System)

//WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *System) { s.log = logger.OrNop(l) }
}

//WithOverlapTolerance sets the relative tolerance under which an eigenvalue
//of the overlap matrix is considered zero.
func WithOverlapTolerance(tol float64) Option {
	return func(s *System) { s.tol = tol }
}

//WithWorkers sets how many wavevectors are solved at once in a scan.
//Values under 1 mean one per CPU.
func WithWorkers(n int) Option {
	return func(s *System) { s.workers = n }
}

//New takes a copy of the blocks in m and returns a System for them. A
//filling outside 0..BasisDim is kept, with a warning, until SetFilling
//replaces it.
func New(m Model, opts ...Option) (*System, error) {
	s := &System{
		ndim:    m.Dim(),
		n:       m.BasisDim(),
		filling: m.Filling(),
		cells:   m.Translations(),
		fock:    m.HamiltonianBlocks(),
		overlap: m.OverlapBlocks(),
		tol:     DefaultOverlapTolerance,
		log:     logger.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.workers < 1 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	if s.n <= 0 {
		return nil, newError(ErrDimension, "New", "the basis has %d orbitals", s.n)
	}
	if len(s.cells) == 0 || len(s.fock) != len(s.cells) || len(s.overlap) != len(s.cells) {
		return nil, newError(ErrDimension, "New", "%d translations, %d Fock and %d overlap blocks", len(s.cells), len(s.fock), len(s.overlap))
	}
	for i := range s.cells {
		r1, c1 := s.fock[i].Dims()
		r2, c2 := s.overlap[i].Dims()
		if r1 != s.n || c1 != s.n || r2 != s.n || c2 != s.n {
			return nil, newError(ErrDimension, "New", "block %d is not %dx%d", i, s.n, s.n)
		}
	}
	if s.filling < 0 || s.filling > s.n {
		s.log.Warn("the filling of the model is out of range", "filling", s.filling, "orbitals", s.n)
	}
	s.log.Debug("bloch system", "ndim", s.ndim, "basis", s.n, "cells", len(s.cells), "filling", s.filling, "workers", s.workers)
	return s, nil
}

//Dim returns the number of periodic directions.
func (s *System) Dim() int { return s.ndim }

//BasisDim returns the size of H(k).
func (s *System) BasisDim() int { return s.n }

//Filling returns the number of doubly occupied orbitals.
func (s *System) Filling() int { return s.filling }

//SetFilling overrides the filling taken from the model.
func (s *System) SetFilling(f int) error {
	if f < 0 || f > s.n {
		return newError(ErrFilling, "SetFilling", "filling %d for %d orbitals", f, s.n)
	}
	s.filling = f
	return nil
}

//FermiLevel returns the index of the highest occupied band. It is -1 for
//an empty system.
func (s *System) FermiLevel() int { return s.filling - 1 }
