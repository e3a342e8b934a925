/*
 * crystal.go, part of topological-excitons.
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

package qm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alejandrojuria/topological-excitons/logger"
	v3 "github.com/alejandrojuria/topological-excitons/v3"
)

//Literal markers of the CRYSTAL report sections.
const (
	markLattice   = "DIRECT LATTICE VECTOR COMPONENTS"
	markAtoms     = "N. OF ATOMS PER CELL"
	markShells    = "NUMBER OF SHELLS"
	markAO        = "NUMBER OF AO"
	markElectrons = "N. OF ELECTRONS PER CELL"
	markCore      = "CORE ELECTRONS PER CELL"
	markBasis     = "LOCAL ATOMIC FUNCTIONS BASIS SET"
	markOverlap   = "OVERLAP MATRIX - CELL N."
	markFock      = "FOCK MATRIX - CELL N."
)

//DefaultNormThreshold is the length (in the units of the report) above
//which a lattice vector is taken to be the vacuum padding CRYSTAL adds
//along the non-periodic directions of slabs, polymers and molecules.
const DefaultNormThreshold = 100.0

//CrystalOptions sets how a CRYSTAL report is read.
type CrystalOptions struct {
	//Cells is the largest cell index whose matrices are kept. Blocks of
	//cells with a larger index are read and discarded. Truncating the
	//real-space sum is an approximation the caller chooses, not an error.
	Cells int
	//NormThreshold: lattice vectors longer than this are discarded.
	NormThreshold float64
	//LegacyRowStop ends each matrix at the first row numbered basisDim-1.
	//This drops the last row and any later page, but reproduces results
	//obtained with that rule.
	LegacyRowStop bool
	Logger        *log.Logger
}

//DefaultCrystalOptions keeps every cell and uses DefaultNormThreshold.
func DefaultCrystalOptions() *CrystalOptions {
	return &CrystalOptions{Cells: math.MaxInt32, NormThreshold: DefaultNormThreshold}
}

type block struct {
	cell Cell
	data []complex128
}

//crystalParse is the state of one pass over a report. Each section reader
//takes it and returns it, so the only coupling between sections is what
//is stored here.
type crystalParse struct {
	in      *bufio.Reader
	line    int
	pending []string //lines given back with unread
	opts    CrystalOptions
	log     *log.Logger

	lattice   *v3.Matrix
	axes      []int
	natoms    int
	nshells   int
	norbitals int
	valence   int
	core      int

	motif        *v3.Matrix
	atomSpecies  []int
	species      []Species
	speciesIndex map[string]int
	basisSeen    bool
	basisOrbs    int

	overlap   []block
	fock      []block
	discarded int
}

//next returns the next line of the report, without the line break.
func (p *crystalParse) next() (string, error) {
	if n := len(p.pending); n > 0 {
		l := p.pending[n-1]
		p.pending = p.pending[:n-1]
		p.line++
		return l, nil
	}
	l, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && l != "") {
		return "", err
	}
	p.line++
	return strings.TrimRight(l, "\r\n"), nil
}

//unread gives l back, so the next call to next returns it again.
func (p *crystalParse) unread(l string) {
	p.pending = append(p.pending, l)
	p.line--
}

func (p *crystalParse) fail(sentinel error, caller, format string, args ...any) error {
	return Error{fmt.Sprintf(format, args...), "", p.line, []string{caller}, true, sentinel}
}

//truncated builds the error for a report that ends inside a section. Read
//errors other than EOF are kept as the cause.
func (p *crystalParse) truncated(err error, caller, format string, args ...any) error {
	if !errors.Is(err, io.EOF) {
		return Error{fmt.Sprintf(format, args...) + ": " + err.Error(), "", p.line, []string{caller}, true, err}
	}
	return p.fail(ErrTruncated, caller, format, args...)
}

//basisDim is the size of every matrix. NUMBER OF AO wins, if present.
func (p *crystalParse) basisDim() int {
	if p.norbitals > 0 {
		return p.norbitals
	}
	return p.basisOrbs
}

type section struct {
	name   string
	ini    func(string) bool
	reader func(*crystalParse, string) (*crystalParse, error)
}

//The order matters: a line is handed to the first section that claims it.
var crystalSections = []section{
	{"lattice", func(l string) bool { return con(l, markLattice) }, latticeReader},
	{"atoms per cell", func(l string) bool { return con(l, markAtoms) }, countReader(markAtoms, func(p *crystalParse) *int { return &p.natoms })},
	{"shells", func(l string) bool { return con(l, markShells) }, countReader(markShells, func(p *crystalParse) *int { return &p.nshells })},
	{"atomic orbitals", func(l string) bool { return con(l, markAO) }, countReader(markAO, func(p *crystalParse) *int { return &p.norbitals })},
	{"electrons", func(l string) bool { return con(l, markElectrons) }, countReader(markElectrons, func(p *crystalParse) *int { return &p.valence })},
	{"core electrons", func(l string) bool { return con(l, markCore) }, countReader(markCore, func(p *crystalParse) *int { return &p.core })},
	{"atom listing", func(l string) bool { return con(l, "ATOM") && con(l, "SHELL") }, atomsReader},
	{"basis set", func(l string) bool { return con(l, markBasis) }, basisReader},
	{"overlap matrix", func(l string) bool { return con(l, markOverlap) }, matrixReader(markOverlap)},
	{"fock matrix", func(l string) bool { return con(l, markFock) }, matrixReader(markFock)},
}

//crystalReader feeds every line of the report to the section that claims it.
func crystalReader(p *crystalParse, secs []section) (*crystalParse, error) {
	for {
		l, err := p.next()
		if errors.Is(err, io.EOF) {
			return p, nil
		}
		if err != nil {
			return p, p.truncated(err, "crystalReader", "reading report")
		}
		for _, sec := range secs {
			if !sec.ini(l) {
				continue
			}
			p.log.Debug("section", "name", sec.name, "line", p.line)
			p, err = sec.reader(p, l)
			if err != nil {
				return p, err
			}
			break
		}
	}
}

//ParseCrystal reads a CRYSTAL output from r and returns the real-space
//model in it. A nil opts means DefaultCrystalOptions. Any error aborts the
//whole parse: the Snapshot is either complete or nil.
func ParseCrystal(r io.Reader, opts *CrystalOptions) (*Snapshot, error) {
	o := DefaultCrystalOptions()
	if opts != nil {
		o = opts
	}
	if o.Cells <= 0 {
		return nil, Error{fmt.Sprintf("the cell cutoff must be positive, got %d", o.Cells), "", 0, []string{"ParseCrystal"}, true, ErrMalformed}
	}
	if o.NormThreshold <= 0 {
		return nil, Error{fmt.Sprintf("the lattice vector norm threshold must be positive, got %g", o.NormThreshold), "", 0, []string{"ParseCrystal"}, true, ErrMalformed}
	}
	p := &crystalParse{
		in:   bufio.NewReader(r),
		opts: *o,
		log:  logger.OrNop(o.Logger),
	}
	p, err := crystalReader(p, crystalSections)
	if err != nil {
		return nil, err
	}
	return p.snapshot()
}

func latticeReader(p *crystalParse, _ string) (*crystalParse, error) {
	vecs := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		l, err := p.next()
		if err != nil {
			return p, p.truncated(err, "latticeReader", "expected 3 lattice vectors, found %d", i)
		}
		f, ok := floatFields(l)
		if !ok || len(f) != 3 {
			return p, p.fail(ErrMalformed, "latticeReader", "lattice vector %d should have 3 numeric components: %q", i+1, trim(l))
		}
		vecs = append(vecs, f...)
	}
	all, err := v3.NewMatrix(vecs)
	if err != nil {
		return p, p.fail(ErrMalformed, "latticeReader", "%s", err)
	}
	axes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		if all.VecNorm(i) <= p.opts.NormThreshold {
			axes = append(axes, i)
		}
	}
	if len(axes) == 0 {
		return p, p.fail(ErrMalformed, "latticeReader", "all lattice vectors are longer than %g", p.opts.NormThreshold)
	}
	p.lattice = v3.Zeros(len(axes))
	p.lattice.SomeVecs(all, axes)
	p.axes = axes
	p.log.Debug("lattice", "ndim", len(axes), "vectors", p.lattice.String())
	return p, nil
}

//countReader returns a reader for the one-number lines. The number is the
//first field after marker. Floats are accepted if they are integral.
func countReader(marker string, dst func(*crystalParse) *int) func(*crystalParse, string) (*crystalParse, error) {
	return func(p *crystalParse, l string) (*crystalParse, error) {
		f := strings.Fields(after(l, marker))
		if len(f) == 0 {
			return p, p.fail(ErrMalformed, "countReader", "no value after %q", marker)
		}
		v, err := strconv.Atoi(f[0])
		if err != nil {
			x, err2 := strconv.ParseFloat(f[0], 64)
			if err2 != nil || x != math.Trunc(x) {
				return p, p.fail(ErrMalformed, "countReader", "%q should be followed by an integer, found %q", marker, f[0])
			}
			v = int(x)
		}
		if v < 0 {
			return p, p.fail(ErrMalformed, "countReader", "negative value %d after %q", v, marker)
		}
		*dst(p) = v
		p.log.Debug("count", "marker", marker, "value", v)
		return p, nil
	}
}

//atomsReader reads the motif. The number of atoms must be known by now.
func atomsReader(p *crystalParse, _ string) (*crystalParse, error) {
	if p.natoms == 0 {
		return p, p.fail(ErrOrder, "atomsReader", "the atom listing came before %q", markAtoms)
	}
	l, err := p.next()
	if err != nil {
		return p, p.truncated(err, "atomsReader", "the atom listing is empty")
	}
	if !separator(l) {
		p.unread(l)
	}
	pos := make([]float64, 0, 3*p.natoms)
	p.species = nil
	p.atomSpecies = make([]int, 0, p.natoms)
	p.speciesIndex = make(map[string]int)
	for i := 0; i < p.natoms; i++ {
		l, err := p.next()
		if err != nil {
			return p, p.truncated(err, "atomsReader", "expected %d atoms, found %d", p.natoms, i)
		}
		f := strings.Fields(l)
		if len(f) < 7 {
			return p, p.fail(ErrMalformed, "atomsReader", "atom rows need index, atomic number, label, shells and 3 coordinates: %q", trim(l))
		}
		z, err1 := strconv.Atoi(f[1])
		nsh, err2 := strconv.Atoi(f[3])
		xyz, ok := floatFields(strings.Join(f[4:7], " "))
		if _, err := strconv.Atoi(f[0]); err != nil || err1 != nil || err2 != nil || !ok {
			return p, p.fail(ErrMalformed, "atomsReader", "can't read atom row %q", trim(l))
		}
		label := f[2]
		s, ok := p.speciesIndex[label]
		if !ok {
			s = len(p.species)
			p.speciesIndex[label] = s
			p.species = append(p.species, Species{Label: label, AtomicNumber: z, NShells: nsh})
		}
		p.atomSpecies = append(p.atomSpecies, s)
		pos = append(pos, xyz...)
	}
	raw, _ := v3.NewMatrix(pos)
	p.motif = v3.Zeros(p.natoms)
	p.motif.SubVec(raw, raw.VecView(0))
	p.log.Debug("motif", "natoms", p.natoms, "nspecies", len(p.species), "positions", p.motif.String())
	return p, nil
}

//basisReader reads the basis set. CRYSTAL prints the shells only for the
//first atom of each species; the other atoms get just their header row,
//but still take their share of the orbital numbering.
func basisReader(p *crystalParse, _ string) (*crystalParse, error) {
	if p.atomSpecies == nil {
		return p, p.fail(ErrOrder, "basisReader", "the basis set came before the atom listing")
	}
	for i := 0; i < 3; i++ { //asterisks, column titles, asterisks
		if _, err := p.next(); err != nil {
			return p, p.truncated(err, "basisReader", "basis set header")
		}
	}
	printed := make([]bool, len(p.species))
	running := 0
	for i, s := range p.atomSpecies {
		l, err := p.next()
		if err != nil {
			return p, p.truncated(err, "basisReader", "expected %d atoms in the basis set, found %d", p.natoms, i)
		}
		f := strings.Fields(l)
		if len(f) < 2 {
			return p, p.fail(ErrMalformed, "basisReader", "expected the header of atom %d: %q", i+1, trim(l))
		}
		if _, err := strconv.Atoi(f[0]); err != nil {
			return p, p.fail(ErrMalformed, "basisReader", "expected the header of atom %d: %q", i+1, trim(l))
		}
		sp := &p.species[s]
		if !strings.EqualFold(f[1], sp.Label) {
			return p, p.fail(ErrInconsistent, "basisReader", "atom %d is %s in the basis set but %s in the atom listing", i+1, f[1], sp.Label)
		}
		if printed[s] {
			running += sp.Orbitals
			continue
		}
		printed[s] = true
		sp.Shells = make([]Shell, 0, sp.NShells)
		last := running
		for j := 0; j < sp.NShells; j++ {
			var sh Shell
			var end int
			p, sh, end, err = shellReader(p)
			if err != nil {
				return p, err
			}
			if end <= last {
				return p, p.fail(ErrInconsistent, "basisReader", "shell %d of %s ends at orbital %d, which is not after %d", j+1, sp.Label, end, last)
			}
			sh.Orbitals = end - last
			sp.Shells = append(sp.Shells, sh)
			last = end
		}
		sp.Orbitals = last - running
		running = last
		p.log.Debug("basis", "species", sp.Label, "shells", len(sp.Shells), "orbitals", sp.Orbitals)
	}
	p.basisSeen = true
	p.basisOrbs = running
	if p.norbitals > 0 && running != p.norbitals {
		return p, p.fail(ErrInconsistent, "basisReader", "the basis set has %d orbitals but %q says %d", running, markAO, p.norbitals)
	}
	return p, nil
}

//shellReader reads a shell row followed by its primitives. It returns the
//index of the last orbital of the shell.
func shellReader(p *crystalParse) (*crystalParse, Shell, int, error) {
	var sh Shell
	l, err := p.next()
	if err != nil {
		return p, sh, 0, p.truncated(err, "shellReader", "expected a shell")
	}
	//"1 S", "2-   5 SP" or "2 - 5 SP". The "-" is a placeholder.
	t := strings.Fields(strings.ReplaceAll(l, "-", " - "))
	var num string
	switch {
	case len(t) == 2:
		num, sh.Type = t[0], t[1]
	case len(t) == 4 && t[1] == "-":
		num, sh.Type = t[2], t[3]
	default:
		return p, sh, 0, p.fail(ErrMalformed, "shellReader", "can't read shell row %q", trim(l))
	}
	end, err := strconv.Atoi(num)
	if err != nil || strings.Trim(sh.Type, "SPDFGHI") != "" {
		return p, sh, 0, p.fail(ErrMalformed, "shellReader", "can't read shell row %q", trim(l))
	}
	for {
		l, err := p.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return p, sh, 0, p.truncated(err, "shellReader", "reading primitives")
		}
		f, ok := floatFields(l)
		if !ok || len(f) != 4 {
			p.unread(l)
			break
		}
		sh.Primitives = append(sh.Primitives, Primitive{f[0], f[1], f[2], f[3]})
	}
	if len(sh.Primitives) == 0 {
		return p, sh, 0, p.fail(ErrMalformed, "shellReader", "shell %s ending at orbital %d has no primitives", sh.Type, end)
	}
	return p, sh, end, nil
}

//cellHeader matches "CELL N.   3(  1  0 -1)"
var cellHeader = regexp.MustCompile(`CELL N\.\s*(\d+)\s*\(\s*(-?\d+)\s+(-?\d+)\s+(-?\d+)\s*\)`)

//matrixReader returns the reader for the overlap or Fock blocks.
func matrixReader(marker string) func(*crystalParse, string) (*crystalParse, error) {
	return func(p *crystalParse, l string) (*crystalParse, error) {
		m := cellHeader.FindStringSubmatch(l)
		if m == nil {
			return p, p.fail(ErrMalformed, "matrixReader", "can't read the cell of %q", trim(l))
		}
		if p.lattice == nil {
			return p, p.fail(ErrOrder, "matrixReader", "%q came before the lattice vectors", marker)
		}
		n := p.basisDim()
		if n == 0 {
			return p, p.fail(ErrOrder, "matrixReader", "%q came before the number of atomic orbitals was known", marker)
		}
		var c Cell
		c.Index, _ = strconv.Atoi(m[1])
		for i := 0; i < 3; i++ {
			c.Coefficient[i], _ = strconv.Atoi(m[i+2])
		}
		for i := 0; i < 3; i++ {
			if c.Coefficient[i] != 0 && !isInInt(p.axes, i) {
				return p, p.fail(ErrInconsistent, "matrixReader", "cell %d is translated along the non-periodic direction %d", c.Index, i+1)
			}
		}
		for j, ax := range p.axes {
			for k := 0; k < 3; k++ {
				c.Translation[k] += float64(c.Coefficient[ax]) * p.lattice.At(j, k)
			}
		}
		data, err := p.readMatrix(n)
		if err != nil {
			return p, err
		}
		if c.Index > p.opts.Cells {
			p.discarded++
			p.log.Debug("cell discarded", "marker", marker, "cell", c.Index, "cutoff", p.opts.Cells)
			return p, nil
		}
		b := block{c, data}
		if marker == markOverlap {
			p.overlap = append(p.overlap, b)
		} else {
			p.fock = append(p.fock, b)
		}
		p.log.Debug("cell", "marker", marker, "cell", c.Index, "coefficients", c.Coefficient)
		return p, nil
	}
}

//snapshot checks that the report had everything needed and freezes it.
func (p *crystalParse) snapshot() (*Snapshot, error) {
	missing := func(what string) error {
		return Error{fmt.Sprintf("no %s in the report", what), "", 0, []string{"snapshot"}, true, ErrMissingSection}
	}
	switch {
	case p.lattice == nil:
		return nil, missing("lattice vectors")
	case p.motif == nil:
		return nil, missing("atom listing")
	case !p.basisSeen:
		return nil, missing("basis set")
	case p.basisDim() == 0:
		return nil, missing("number of atomic orbitals")
	case len(p.overlap) == 0:
		return nil, missing("overlap matrices")
	case len(p.fock) == 0:
		return nil, missing("Fock matrices")
	}
	inconsistent := func(format string, args ...any) error {
		return Error{fmt.Sprintf(format, args...), "", 0, []string{"snapshot"}, true, ErrInconsistent}
	}
	if len(p.overlap) != len(p.fock) {
		return nil, inconsistent("%d overlap matrices but %d Fock matrices", len(p.overlap), len(p.fock))
	}
	n := p.basisDim()
	S := &Snapshot{
		ndim:        len(p.axes),
		lattice:     p.lattice,
		axes:        p.axes,
		motif:       p.motif,
		atomSpecies: p.atomSpecies,
		species:     p.species,
		basisDim:    n,
		nshells:     p.nshells,
		valence:     p.valence,
		core:        p.core,
		filling:     (p.valence + p.core) / 2,
		cells:       make([]Cell, len(p.overlap)),
		overlap:     make([]complex128, 0, len(p.overlap)*n*n),
		fock:        make([]complex128, 0, len(p.fock)*n*n),
	}
	for i, o := range p.overlap {
		f := p.fock[i]
		if o.cell.Index != f.cell.Index || o.cell.Coefficient != f.cell.Coefficient {
			return nil, inconsistent("block %d is cell %d%v for the overlap but cell %d%v for the Fock matrix", i, o.cell.Index, o.cell.Coefficient, f.cell.Index, f.cell.Coefficient)
		}
		S.cells[i] = o.cell
		S.overlap = append(S.overlap, o.data...)
		S.fock = append(S.fock, f.data...)
	}
	if S.OddElectrons() {
		p.log.Warn("odd number of electrons, the filling assumes doubly occupied orbitals", "valence", p.valence, "core", p.core, "filling", S.filling)
	}
	if p.discarded > 0 {
		p.log.Info("cells beyond the cutoff were discarded", "blocks", p.discarded, "cutoff", p.opts.Cells)
	}
	p.log.Debug("snapshot", "ndim", S.ndim, "basis", n, "cells", len(S.cells), "filling", S.filling)
	return S, nil
}
