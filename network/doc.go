// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package network - wallet server connectivity
//
// runs the failover loop that keeps at most one session open against
// a cyclic pool of wallet servers, and exposes the query facade used
// by the local RPC handlers
//
// the facade is fail-fast: a call made while no session is connected
// returns fault.ConnectionUnavailable immediately, callers that need
// retry-across-reconnect semantics implement their own retry above it
package network
