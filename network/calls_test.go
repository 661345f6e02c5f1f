// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/spvd/fault"
)

// every facade call fails fast when no session is live
func TestCallsFailFastWhenDisconnected(t *testing.T) {

	_, err := BroadcastTransaction("0100…")
	assert.Equal(t, fault.ConnectionUnavailable, err)

	_, err = GetHistory("n3GNqMveyvaPvUbH469vDRadqpJMPc84JA")
	assert.Equal(t, fault.ConnectionUnavailable, err)

	_, err = GetTransaction("5a0c4b")
	assert.Equal(t, fault.ConnectionUnavailable, err)

	_, err = GetMerkle("5a0c4b", 100)
	assert.Equal(t, fault.ConnectionUnavailable, err)

	_, err = GetHeaders(0, 100)
	assert.Equal(t, fault.ConnectionUnavailable, err)

	_, err = SubscribeHeaders()
	assert.Equal(t, fault.ConnectionUnavailable, err)

	_, err = SubscribeAddress("n3GNqMveyvaPvUbH469vDRadqpJMPc84JA")
	assert.Equal(t, fault.ConnectionUnavailable, err)

	assert.False(t, IsConnected())
	assert.Equal(t, "", CurrentServer())
}
