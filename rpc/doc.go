// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - the local client interface
//
// A TLS JSON-RPC server for wallet tooling; every handler is a thin
// wrapper over the wallet server connection, so calls fail fast while
// no server connection is live.
package rpc
