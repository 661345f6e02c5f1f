// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import "encoding/json"

// Notification - an unsolicited message pushed by the server
type Notification struct {
	Method string
	Params []json.RawMessage
}

// Transport - the wire-level RPC connection
//
// framing, request identifiers and serialisation are the transport's
// concern; the production implementation is in the wire package
type Transport interface {

	// establish the connection, or fail within the dial timeout
	Connect(address string) error

	// send one request and block until the matched reply arrives,
	// the server reports a fault, or the connection drops;
	// independent requests do not block each other
	SendRequest(method string, params []interface{}) (json.RawMessage, error)

	// stream of unsolicited messages, in arrival order
	Notifications() <-chan Notification

	// closed exactly once, on remote or local disconnection
	Disconnected() <-chan struct{}

	// drop the connection; triggers the Disconnected signal
	Close()
}
