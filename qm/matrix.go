/*
 * matrix.go, part of topological-excitons.
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
	"strconv"
	"strings"
)

//readMatrix reads one n x n matrix printed in CRYSTAL's paged layout.
//Each page starts, after a blank line, with a row of column numbers,
//followed by rows that start with the row number and carry one value per
//column of the page. Cells that are not printed (the upper triangle, when
//CRYSTAL prints only the lower one) stay zero.
//
//The matrix ends with the row numbered n of a page whose columns include
//n. With LegacyRowStop it ends with the first row numbered n-1 instead.
func (p *crystalParse) readMatrix(n int) ([]complex128, error) {
	data := make([]complex128, n*n)
	var cols []int
	header := true
	rows := 0
	for {
		l, err := p.next()
		if err != nil {
			return nil, p.truncated(err, "readMatrix", "the matrix ended before its last row")
		}
		if blank(l) {
			//one blank line between the column numbers and the first row is fine.
			if !header && rows == 0 {
				continue
			}
			header = true
			continue
		}
		if header {
			cols, err = p.columnHeader(l, n)
			if err != nil {
				return nil, err
			}
			header = false
			rows = 0
			continue
		}
		row, err := p.matrixRow(l, n, cols, data)
		if err != nil {
			return nil, err
		}
		rows++
		if p.lastRow(row, n, cols) {
			return data, nil
		}
	}
}

func (p *crystalParse) lastRow(row, n int, cols []int) bool {
	if p.opts.LegacyRowStop {
		return row == n-1
	}
	return row == n && isInInt(cols, n)
}

//columnHeader reads the column numbers of a page.
func (p *crystalParse) columnHeader(l string, n int) ([]int, error) {
	f := strings.Fields(l)
	cols := make([]int, len(f))
	for i, v := range f {
		c, err := strconv.Atoi(v)
		if err != nil || c < 1 || c > n {
			return nil, p.fail(ErrMalformed, "columnHeader", "expected the column numbers (1 to %d) of a matrix page: %q", n, trim(l))
		}
		cols[i] = c
	}
	return cols, nil
}

//matrixRow reads one row of a page into data and returns its 1-based
//row number.
func (p *crystalParse) matrixRow(l string, n int, cols []int, data []complex128) (int, error) {
	f := strings.Fields(l)
	if len(f) != len(cols)+1 {
		return 0, p.fail(ErrMalformed, "matrixRow", "row with %d values for a page of %d columns: %q", len(f)-1, len(cols), trim(l))
	}
	row, err := strconv.Atoi(f[0])
	if err != nil || row < 1 || row > n {
		return 0, p.fail(ErrMalformed, "matrixRow", "expected a row number from 1 to %d: %q", n, trim(l))
	}
	for k, c := range cols {
		v, err := strconv.ParseFloat(f[k+1], 64)
		if err != nil {
			return 0, p.fail(ErrMalformed, "matrixRow", "value %q of row %d is not a number", f[k+1], row)
		}
		data[(row-1)*n+c-1] = complex(v, 0)
	}
	return row, nil
}
