/*
 * qm.go, part of topological-excitons.
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
	"strconv"
	"strings"
)

//just for brevity
var con func(string, string) bool = strings.Contains
var trim func(string) string = strings.TrimSpace

//Utilities here

//isInInt returns true if test is in container, false otherwise.
func isInInt(container []int, test int) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

//blank returns true for lines with nothing but whitespace.
func blank(l string) bool {
	return trim(l) == ""
}

//separator returns true for the lines of asterisks, dashes or equal
//signs that CRYSTAL prints around headers.
func separator(l string) bool {
	t := trim(l)
	if t == "" {
		return false
	}
	return strings.Trim(t, "*-=") == ""
}

//after returns what follows marker in l, or the empty string if
//marker is not in l.
func after(l, marker string) string {
	i := strings.Index(l, marker)
	if i < 0 {
		return ""
	}
	return l[i+len(marker):]
}

//floatFields parses every field of l as a float. ok is false if any
//of them isn't a number.
func floatFields(l string) (f []float64, ok bool) {
	fields := strings.Fields(l)
	f = make([]float64, len(fields))
	for i, v := range fields {
		var err error
		f[i], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
	}
	return f, true
}
