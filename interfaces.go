/*
 * interfaces.go, part of topological-excitons.
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

package crystal

import (
	"github.com/alejandrojuria/topological-excitons/bloch"
	"github.com/alejandrojuria/topological-excitons/qm"
)

//SampleHandler receives the band samples of a scan, in wavevector order.
//Writers of band structures to files, databases or plots implement it.
type SampleHandler interface {
	Handle(i int, s *bloch.BandSample) error
}

//Errors

//Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
//error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call also returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it should just return the current value, not add the empty string to the slice.
	Critical() bool
}

//ReportError is the interface for errors found while reading a report.
type ReportError interface {
	Error
	FileName() string
	Format() string
	Line() int
}

var (
	_ ReportError   = qm.Error{}
	_ Error         = bloch.Error{}
	_ bloch.Model   = (*qm.Snapshot)(nil)
	_ bloch.Handler = SampleHandler(nil)
)
