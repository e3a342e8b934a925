/*
 * run.go, part of topological-excitons.
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

package crystal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/alejandrojuria/topological-excitons/bandplot"
	"github.com/alejandrojuria/topological-excitons/bloch"
	"github.com/alejandrojuria/topological-excitons/kpath"
	"github.com/alejandrojuria/topological-excitons/logger"
	"github.com/alejandrojuria/topological-excitons/qm"
)

//ErrConfig is wrapped by every error in a RunConfig.
var ErrConfig = errors.New("crystal: invalid run configuration")

//RunConfig describes a band structure calculation from a CRYSTAL report.
type RunConfig struct {
	File          string  `toml:"file"`
	Format        string  `toml:"format"` //"gz", "zst" or empty to use the extension
	Cells         int     `toml:"cells"`
	Threshold     float64 `toml:"threshold"`
	LegacyRowStop bool    `toml:"legacy_row_stop"`

	Filling          int     `toml:"filling"` //0 takes it from the report
	OverlapTolerance float64 `toml:"overlap_tolerance"`
	Triangular       bool    `toml:"triangular"`
	Workers          int     `toml:"workers"`

	//Either a named path or a list of wavevectors.
	Path    string      `toml:"path"`
	Labels  string      `toml:"labels"` //"cubic" or "hexagonal"
	Points  int         `toml:"points"` //per segment of Path
	KPoints [][]float64 `toml:"kpoints"`

	Plot  string `toml:"plot"` //file name for the plot, without the extension
	Title string `toml:"title"`

	Debug   bool `toml:"debug"`
	JSONLog bool `toml:"json_log"`

	Logger  *log.Logger   `toml:"-"` //if nil, one is built from Debug and JSONLog
	Handler SampleHandler `toml:"-"` //optional, receives every sample as it is solved
}

//ParseConfig reads a RunConfig from TOML data and fills in the defaults.
func ParseConfig(data []byte) (*RunConfig, error) {
	cfg := &RunConfig{}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing TOML: %v", ErrConfig, err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		return nil, fmt.Errorf("%w: unknown keys %v", ErrConfig, und)
	}
	applyDefaults(cfg)
	return cfg, nil
}

//LoadConfig reads the TOML file fname. Relative report and plot paths are
//taken from the directory of fname.
func LoadConfig(fname string) (*RunConfig, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(fname)
	if cfg.File != "" && !filepath.IsAbs(cfg.File) {
		cfg.File = filepath.Join(dir, cfg.File)
	}
	if cfg.Plot != "" && !filepath.IsAbs(cfg.Plot) {
		cfg.Plot = filepath.Join(dir, cfg.Plot)
	}
	return cfg, nil
}

func applyDefaults(cfg *RunConfig) {
	if cfg.Threshold == 0 {
		cfg.Threshold = qm.DefaultNormThreshold
	}
	if cfg.Points == 0 {
		cfg.Points = 50
	}
	if cfg.Labels == "" {
		cfg.Labels = "cubic"
	}
	if cfg.Title == "" && cfg.File != "" {
		cfg.Title = filepath.Base(cfg.File)
	}
}

func (cfg *RunConfig) labels() (kpath.Labels, bool) {
	switch strings.ToLower(cfg.Labels) {
	case "cubic":
		return kpath.Cubic, true
	case "hexagonal":
		return kpath.Hexagonal, true
	}
	return nil, false
}

//Validate checks cfg for values no calculation could use.
func (cfg *RunConfig) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
	}
	switch {
	case cfg.File == "":
		return bad("no report file")
	case cfg.Cells <= 0:
		return bad("the cell cutoff must be positive, got %d", cfg.Cells)
	case cfg.Threshold <= 0:
		return bad("the lattice vector threshold must be positive, got %g", cfg.Threshold)
	case cfg.Filling < 0:
		return bad("negative filling %d", cfg.Filling)
	case cfg.Workers < 0:
		return bad("negative number of workers %d", cfg.Workers)
	case cfg.OverlapTolerance < 0:
		return bad("negative overlap tolerance %g", cfg.OverlapTolerance)
	case cfg.Path == "" && len(cfg.KPoints) == 0:
		return bad("either a path or a list of kpoints is needed")
	case cfg.Path != "" && len(cfg.KPoints) > 0:
		return bad("give either a path or a list of kpoints, not both")
	case cfg.Path != "" && cfg.Points <= 0:
		return bad("the path needs a positive number of points per segment, got %d", cfg.Points)
	}
	if _, ok := cfg.labels(); !ok && cfg.Path != "" {
		return bad("unknown label set %q", cfg.Labels)
	}
	return nil
}

//Result holds everything a Run produced.
type Result struct {
	Snapshot *qm.Snapshot
	System   *bloch.System
	Scan     *kpath.Scan
	Samples  []*bloch.BandSample
	Gap      *bloch.BandGap //nil if the system has no gap to measure
}

//Run reads the report in cfg, solves the bands along the requested
//wavevectors and, if cfg.Plot is set, plots them.
func Run(ctx context.Context, cfg *RunConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l := cfg.Logger
	if l == nil {
		l = logger.New(logger.WithDebug(cfg.Debug), logger.WithJSON(cfg.JSONLog), logger.WithPrefix("crystal"))
	}
	res := &Result{}
	var err error
	res.Snapshot, err = qm.ReadCrystalFormat(cfg.File, cfg.Format, &qm.CrystalOptions{
		Cells:         cfg.Cells,
		NormThreshold: cfg.Threshold,
		LegacyRowStop: cfg.LegacyRowStop,
		Logger:        l,
	})
	if err != nil {
		return nil, err
	}
	S := res.Snapshot
	l.Info("report read", "file", cfg.File, "ndim", S.Dim(), "atoms", S.NAtoms(), "basis", S.BasisDim(), "cells", S.NCells())

	opts := []bloch.Option{bloch.WithLogger(l), bloch.WithWorkers(cfg.Workers)}
	if cfg.OverlapTolerance > 0 {
		opts = append(opts, bloch.WithOverlapTolerance(cfg.OverlapTolerance))
	}
	res.System, err = bloch.New(S, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Filling > 0 {
		if err := res.System.SetFilling(cfg.Filling); err != nil {
			return nil, err
		}
	}

	if len(cfg.KPoints) > 0 {
		res.Scan, err = kpath.Explicit(cfg.KPoints)
	} else {
		res.Scan, err = namedScan(cfg, S)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	res.Samples = make([]*bloch.BandSample, len(res.Scan.K))
	collect := bloch.HandlerFunc(func(i int, b *bloch.BandSample) error {
		res.Samples[i] = b
		if cfg.Handler != nil {
			return cfg.Handler.Handle(i, b)
		}
		return nil
	})
	if err := res.System.SolveBandsTo(ctx, res.Scan.K, cfg.Triangular, collect); err != nil {
		return nil, err
	}
	l.Info("bands solved", "points", len(res.Samples), "bands", res.System.BasisDim())

	fermi := res.System.FermiLevel()
	fermiEnergy := 0.0
	if fermi >= 0 && fermi+1 < res.System.BasisDim() {
		res.Gap, err = bloch.Gap(res.Samples, fermi)
		if err != nil {
			return nil, err
		}
		fermiEnergy = res.Samples[res.Gap.ValenceK].Energies[fermi]
		l.Info("gap", "direct", res.Gap.Direct, "indirect", res.Gap.Indirect, "valence top", fermiEnergy)
	}
	if cfg.Plot != "" {
		if err := bandplot.BandPlot(res.Samples, res.Scan, fermiEnergy, cfg.Title, cfg.Plot); err != nil {
			return nil, err
		}
		l.Info("plot written", "file", cfg.Plot+".png")
	}
	return res, nil
}

func namedScan(cfg *RunConfig, S *qm.Snapshot) (*kpath.Scan, error) {
	labels, _ := cfg.labels()
	P, err := kpath.Parse(cfg.Path, labels)
	if err != nil {
		return nil, err
	}
	recip, err := kpath.Reciprocal(S.Lattice())
	if err != nil {
		return nil, err
	}
	return P.Points(recip, cfg.Points)
}
