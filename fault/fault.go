// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import "fmt"

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	// ConnectionError - connection level failures, absorbed by the
	// failover loop or surfaced to a single caller
	ConnectionError GenericError

	// InvalidError - bad static data e.g. configuration
	InvalidError GenericError

	// NotFoundError - requested item does not exist
	NotFoundError GenericError

	// ProcessError - operation attempted in the wrong state
	ProcessError GenericError
)

// common errors - keep in alphabetic order
var (
	AlreadyInitialised       = ProcessError("already initialised")
	ConnectionLost           = ConnectionError("connection lost")
	ConnectionUnavailable    = ConnectionError("connection is not available")
	HeaderNotFound           = NotFoundError("header not found")
	InvalidConfigurationFile = InvalidError("invalid configuration file")
	InvalidCount             = InvalidError("invalid count")
	InvalidHostPort          = InvalidError("invalid host:port")
	InvalidLoggerChannel     = InvalidError("invalid logger channel")
	InvalidPortNumber        = InvalidError("invalid port number")
	InvalidVersionResponse   = ConnectionError("invalid server version response")
	MissingParameters        = InvalidError("missing parameters")
	NoServersConfigured      = InvalidError("no servers configured")
	NotInitialised           = ProcessError("not initialised")
)

// RemoteError - a fault reported by the wallet server for one
// specific request; never affects other requests or the connection
type RemoteError struct {
	Code    int
	Message string
}

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ConnectionError) Error() string { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e ProcessError) Error() string    { return string(e) }

func (e RemoteError) Error() string {
	return fmt.Sprintf("remote error: %d: %s", e.Code, e.Message)
}

// determine the class of an error
func IsErrConnection(e error) bool { _, ok := e.(ConnectionError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrRemote(e error) bool     { _, ok := e.(RemoteError); return ok }
