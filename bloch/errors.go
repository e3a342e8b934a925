/*
 * errors.go, part of topological-excitons.
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
	"errors"
	"fmt"
)

var (
	ErrNotPositiveDefinite = errors.New("bloch: overlap matrix is not positive definite")
	ErrEigen               = errors.New("bloch: eigensolver failed")
	ErrSpinLayout          = errors.New("bloch: state does not have the two-halves spin layout")
	ErrDimension           = errors.New("bloch: dimension mismatch")
	ErrFilling             = errors.New("bloch: filling out of range")
)

//Error is the error type returned by the functions of this package.
type Error struct {
	message  string
	deco     []string
	critical bool
	err      error
}

func newError(sentinel error, caller string, format string, args ...any) Error {
	return Error{fmt.Sprintf(format, args...), []string{caller}, true, sentinel}
}

//Error returns a string with an error message.
func (err Error) Error() string {
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

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//decorate returns err with caller added to its decoration, if err is an
//Error, or err itself otherwise.
func decorate(err error, caller string) error {
	var e Error
	if !errors.As(err, &e) {
		return err
	}
	e.deco = append(append([]string(nil), e.deco...), caller)
	return e
}
