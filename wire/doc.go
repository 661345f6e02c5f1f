// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire - JSON-RPC 2.0 connection to a wallet server
//
// implements the session.Transport interface: newline framed JSON
// over TCP or TLS, request identifier allocation and reply matching,
// and delivery of unsolicited notifications
package wire
