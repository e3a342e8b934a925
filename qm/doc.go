/*
 * doc.go, part of topological-excitons.
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

//Package qm reads the output of periodic QM programs. Right now it
//understands the real-space report printed by CRYSTAL (lattice, motif,
//basis set, and the overlap and Fock matrices of every lattice cell)
//and turns it into an immutable Snapshot that the bloch package can
//Fourier transform into k-space.
//
//The parser does a single forward pass over the report. It never tries
//to check the physics of the matrices it reads, only that the report is
//internally consistent.
package qm
