/*
 * errors.go, part of gochemkit.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 */

package chem

import (
	"fmt"
	"strings"
)

//Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
//error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call returns the decoration slice resulting from the current call. If passed an empty string, it just returns the current value.
}

//CError (Chemical error) is the basic error type of goChem.
type CError struct {
	msg  string
	deco []string
	err  error //an underlying error, if any.
}

//Error returns a string with an error message.
func (err CError) Error() string {
	if err.err != nil && !strings.Contains(err.msg, err.err.Error()) {
		return fmt.Sprintf("%s: %s", err.msg, err.err.Error())
	}
	return err.msg
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Unwrap returns the error that caused err, if any.
func (err CError) Unwrap() error {
	return err.err
}

//newCError returns an error with the message msg, originated in the function caller.
func newCError(msg, caller string) CError {
	return CError{msg: msg, deco: []string{caller}}
}

//wrapCError returns an error with the message msg that wraps the error under.
func wrapCError(under error, msg, caller string) CError {
	return CError{msg: msg, deco: []string{caller}, err: under}
}

//errDecorate is a helper function that decorates a goChem error with the caller's name before returning it.
//Other errors are wrapped in a CError. A nil error stays nil.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if cerr, ok := err.(CError); ok {
		cerr.deco = append(cerr.deco, caller)
		return cerr
	}
	return CError{msg: err.Error(), deco: []string{caller}, err: err}
}

//PanicMsg is the type used for all the panics raised in the chem package.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilData         = PanicMsg("goChem: Nil data given ")
	ErrNilAtom         = PanicMsg("goChem: Attempted to copy from or to a nil Atom")
	ErrNilMolecule     = PanicMsg("goChem: Attempted to copy from or to a nil Molecule")
	ErrAtomOutOfRange  = PanicMsg("goChem: Requested/Attempted setting Atom out of range")
	ErrFrameOutOfRange = PanicMsg("goChem: Requested frame out of range")
	ErrBondNotPresent  = PanicMsg("goChem: Trying to cross a bond: The origin atom given is not present in the bond")
)
