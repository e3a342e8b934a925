/*
 * errors.go, part of topological-excitons.
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
	"errors"
	"fmt"
)

//Sentinels for the different ways a report can be rejected. Every error
//returned by the parser wraps one of them, so callers can use errors.Is.
var (
	ErrMissingSection = errors.New("qm: required section missing")
	ErrOrder          = errors.New("qm: section out of order")
	ErrMalformed      = errors.New("qm: malformed section")
	ErrTruncated      = errors.New("qm: unexpected end of report")
	ErrInconsistent   = errors.New("qm: inconsistent report")
)

//Error is the error type of the package. All parse errors are critical:
//no partial Snapshot is ever returned.
type Error struct {
	message  string
	filename string
	line     int //0 if the error is not tied to a line
	deco     []string
	critical bool
	err      error
}

//Error returns a string with an error message.
func (err Error) Error() string {
	where := ""
	if err.filename != "" {
		where = err.filename + ":"
	}
	if err.line > 0 {
		where = fmt.Sprintf("%s%d:", where, err.line)
	}
	if where != "" {
		return fmt.Sprintf("%s %s: %s", where, err.err, err.message)
	}
	return fmt.Sprintf("%s: %s", err.err, err.message)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Unwrap returns the sentinel the error wraps.
func (err Error) Unwrap() error { return err.err }

//FileName returns the name of the file being read, if any.
func (err Error) FileName() string { return err.filename }

//Line returns the line of the report where the error was found.
func (err Error) Line() int { return err.line }

//Format returns the report format.
func (err Error) Format() string { return "crystal" }

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//withFile returns a copy of err, carrying the given file name.
func withFile(err error, fname string) error {
	var e Error
	if errors.As(err, &e) {
		e.filename = fname
		e.deco = append(append([]string(nil), e.deco...), "ReadCrystal")
		return e
	}
	return Error{"could not read report", fname, 0, []string{"ReadCrystal"}, true, err}
}
