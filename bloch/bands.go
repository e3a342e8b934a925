/*
 * bands.go, part of topological-excitons.
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
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//BandSample is the solution of the Bloch problem at one wavevector.
type BandSample struct {
	K        [3]float64
	Energies []float64   //ascending
	Vectors  *mat.CDense //column i goes with Energies[i], in the orthonormalized basis
}

//Handler receives the samples of a scan, in wavevector order.
type Handler interface {
	Handle(i int, s *BandSample) error
}

//HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(i int, s *BandSample) error

//Handle calls f(i, s).
func (f HandlerFunc) Handle(i int, s *BandSample) error { return f(i, s) }

//SolveBands returns the bands at k.
func (s *System) SolveBands(k []float64, triangular bool) (*BandSample, error) {
	K, err := kvec(k)
	if err != nil {
		return nil, decorate(err, "SolveBands")
	}
	H := s.fourier(s.fock, K, triangular)
	if err := s.Orthogonalize(K[:], H, triangular); err != nil {
		return nil, decorate(err, "SolveBands")
	}
	vals, vecs, err := eigh(H)
	if err != nil {
		return nil, decorate(err, "SolveBands")
	}
	return &BandSample{K: K, Energies: vals, Vectors: vecs}, nil
}

//SolveBandsPath solves every point and returns the samples in the same
//order as points.
func (s *System) SolveBandsPath(ctx context.Context, points [][]float64, triangular bool) ([]*BandSample, error) {
	out := make([]*BandSample, len(points))
	err := s.SolveBandsTo(ctx, points, triangular, HandlerFunc(func(i int, b *BandSample) error {
		out[i] = b
		return nil
	}))
	if err != nil {
		return nil, err
	}
	return out, nil
}

//SolveBandsTo solves the points on the worker pool of s and hands every
//sample to h, in the order of points, as soon as it and all the samples
//before it are ready. h is never called concurrently. The scan stops at
//the first error, from the solver or from h, or when ctx is done.
func (s *System) SolveBandsTo(ctx context.Context, points [][]float64, triangular bool, h Handler) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	ready := make([]*BandSample, len(points))
	var mu sync.Mutex
	next := 0
	stopped := false
	for i, k := range points {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b, err := s.SolveBands(k, triangular)
			if err != nil {
				return decorate(err, fmt.Sprintf("point %d", i))
			}
			s.log.Debug("k point", "index", i, "k", b.K)
			mu.Lock()
			defer mu.Unlock()
			if stopped {
				return nil
			}
			ready[i] = b
			for next < len(ready) && ready[next] != nil {
				if err := h.Handle(next, ready[next]); err != nil {
					stopped = true
					return err
				}
				ready[next] = nil
				next++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

//BandGap describes the gap between the highest occupied and the lowest
//empty band over a set of samples. The K fields are sample indexes.
type BandGap struct {
	Direct   float64
	DirectK  int
	Indirect float64
	ValenceK int //top of the valence band
	CondK    int //bottom of the conduction band
}

//Gap finds the band gap over samples, taking band fermi as the highest
//occupied one.
func Gap(samples []*BandSample, fermi int) (*BandGap, error) {
	if len(samples) == 0 {
		return nil, newError(ErrDimension, "Gap", "no samples")
	}
	n := len(samples[0].Energies)
	if fermi < 0 || fermi+1 >= n {
		return nil, newError(ErrFilling, "Gap", "band %d has no band above it among %d", fermi, n)
	}
	val := make([]float64, len(samples))
	cond := make([]float64, len(samples))
	for i, b := range samples {
		if len(b.Energies) != n {
			return nil, newError(ErrDimension, "Gap", "sample %d has %d bands, expected %d", i, len(b.Energies), n)
		}
		val[i] = b.Energies[fermi]
		cond[i] = b.Energies[fermi+1]
	}
	g := &BandGap{ValenceK: floats.MaxIdx(val), CondK: floats.MinIdx(cond)}
	g.Indirect = cond[g.CondK] - val[g.ValenceK]
	direct := make([]float64, len(samples))
	floats.SubTo(direct, cond, val)
	g.DirectK = floats.MinIdx(direct)
	g.Direct = direct[g.DirectK]
	return g, nil
}
