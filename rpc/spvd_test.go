// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/spvd/fault"
	"github.com/bitmark-inc/spvd/fixtures"
	"github.com/bitmark-inc/spvd/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func testSPVD() *SPVD {
	return &SPVD{
		log:     logger.New(fixtures.LogCategory),
		version: "test",
		start:   time.Now(),
	}
}

func TestBroadcastRejectsMissingTransaction(t *testing.T) {
	spvd := testSPVD()

	var reply json.RawMessage
	err := spvd.Broadcast(&BroadcastArguments{}, &reply)
	assert.Equal(t, fault.MissingParameters, err)
}

func TestHeadersRejectsBadCount(t *testing.T) {
	spvd := testSPVD()

	var reply json.RawMessage
	err := spvd.Headers(&HeadersArguments{Start: 0, Count: 0}, &reply)
	assert.Equal(t, fault.InvalidCount, err)

	err = spvd.Headers(&HeadersArguments{Start: 0, Count: maximumHeaderCount + 1}, &reply)
	assert.Equal(t, fault.InvalidCount, err)
}

// without a live wallet server connection every forwarding handler
// fails fast
func TestHandlersFailFastWhenDisconnected(t *testing.T) {
	spvd := testSPVD()

	var reply json.RawMessage

	err := spvd.Broadcast(&BroadcastArguments{RawTransaction: "0100"}, &reply)
	assert.Equal(t, fault.ConnectionUnavailable, err)

	err = spvd.Transaction(&TransactionArguments{TxId: "5a0c4b"}, &reply)
	assert.Equal(t, fault.ConnectionUnavailable, err)

	err = spvd.Merkle(&MerkleArguments{TxId: "5a0c4b", Height: 10}, &reply)
	assert.Equal(t, fault.ConnectionUnavailable, err)

	err = spvd.Headers(&HeadersArguments{Start: 0, Count: 10}, &reply)
	assert.Equal(t, fault.ConnectionUnavailable, err)

	err = spvd.History(&HistoryArguments{Address: "n3GNqMveyvaPvUbH469vDRadqpJMPc84JA"}, &reply)
	assert.Equal(t, fault.ConnectionUnavailable, err)
}

func TestInfo(t *testing.T) {
	directory, err := ioutil.TempDir("", "spvd-rpc-test")
	require.NoError(t, err)
	defer os.RemoveAll(directory)

	require.NoError(t, storage.Initialise(directory))
	defer storage.Finalise()

	spvd := testSPVD()

	// an empty header store reports height zero, not an error
	var reply InfoReply
	require.NoError(t, spvd.Info(&InfoArguments{}, &reply))
	assert.Equal(t, uint64(0), reply.Height)

	require.NoError(t, storage.StoreHeader(123, []byte{0x01, 0x02}))

	reply = InfoReply{}
	require.NoError(t, spvd.Info(&InfoArguments{}, &reply))

	assert.False(t, reply.Connected)
	assert.Equal(t, "", reply.Server)
	assert.Equal(t, uint64(123), reply.Height)
	assert.Equal(t, "test", reply.Version)
}

// all handlers must satisfy the net/rpc method signature rules
func TestCreateServer(t *testing.T) {
	server, err := createServer(logger.New(fixtures.LogCategory), "test")
	require.NoError(t, err)
	require.NotNil(t, server)
}
