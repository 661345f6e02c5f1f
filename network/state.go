// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

// a state type for the connector
type connectionState int

// state of the failover loop
const (
	// no session and the loop is not trying
	cStateDisconnected connectionState = iota

	// a connection attempt is in progress
	cStateConnecting connectionState = iota

	// exactly one session is live
	cStateConnected connectionState = iota
)

func (state connectionState) String() string {
	switch state {
	case cStateDisconnected:
		return "Disconnected"
	case cStateConnecting:
		return "Connecting"
	case cStateConnected:
		return "Connected"
	default:
		return "*Unknown*"
	}
}
