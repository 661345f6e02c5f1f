// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/json"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/spvd/fault"
	"github.com/bitmark-inc/spvd/network"
	"github.com/bitmark-inc/spvd/storage"
)

// SPVD - the daemon control interface
type SPVD struct {
	log     *logger.L
	version string
	start   time.Time
}

// limit on one headers request
const maximumHeaderCount = 2016

// ---

// BroadcastArguments - a raw transaction in hex
type BroadcastArguments struct {
	RawTransaction string `json:"raw_transaction"`
}

// Broadcast - submit a transaction to the network
func (spvd *SPVD) Broadcast(arguments *BroadcastArguments, reply *json.RawMessage) error {
	if "" == arguments.RawTransaction {
		return fault.MissingParameters
	}
	result, err := network.BroadcastTransaction(arguments.RawTransaction)
	if nil != err {
		return err
	}
	*reply = result
	return nil
}

// ---

// TransactionArguments - a transaction hash in hex
type TransactionArguments struct {
	TxId string `json:"txid"`
}

// Transaction - fetch one raw transaction
func (spvd *SPVD) Transaction(arguments *TransactionArguments, reply *json.RawMessage) error {
	if "" == arguments.TxId {
		return fault.MissingParameters
	}
	result, err := network.GetTransaction(arguments.TxId)
	if nil != err {
		return err
	}
	*reply = result
	return nil
}

// ---

// MerkleArguments - a confirmed transaction and its block height
type MerkleArguments struct {
	TxId   string `json:"txid"`
	Height uint64 `json:"height"`
}

// Merkle - fetch the merkle proof of a confirmed transaction
func (spvd *SPVD) Merkle(arguments *MerkleArguments, reply *json.RawMessage) error {
	if "" == arguments.TxId {
		return fault.MissingParameters
	}
	result, err := network.GetMerkle(arguments.TxId, arguments.Height)
	if nil != err {
		return err
	}
	*reply = result
	return nil
}

// ---

// HeadersArguments - a range of block heights
type HeadersArguments struct {
	Start uint64 `json:"start"`
	Count int    `json:"count"`
}

// Headers - fetch a batch of raw block headers
func (spvd *SPVD) Headers(arguments *HeadersArguments, reply *json.RawMessage) error {
	if arguments.Count <= 0 || arguments.Count > maximumHeaderCount {
		return fault.InvalidCount
	}
	result, err := network.GetHeaders(arguments.Start, arguments.Count)
	if nil != err {
		return err
	}
	*reply = result
	return nil
}

// ---

// HistoryArguments - a wallet address
type HistoryArguments struct {
	Address string `json:"address"`
}

// History - confirmed history of an address
func (spvd *SPVD) History(arguments *HistoryArguments, reply *json.RawMessage) error {
	if "" == arguments.Address {
		return fault.MissingParameters
	}
	result, err := network.GetHistory(arguments.Address)
	if nil != err {
		return err
	}
	*reply = result
	return nil
}

// ---

// InfoArguments - no arguments
type InfoArguments struct{}

// InfoReply - some information about this daemon
type InfoReply struct {
	Connected   bool   `json:"connected"`
	Server      string `json:"server"`
	Height      uint64 `json:"height"`
	Connections uint64 `json:"connections"`
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
}

// Info - return some information about this daemon
func (spvd *SPVD) Info(arguments *InfoArguments, reply *InfoReply) error {

	height, err := storage.LastHeight()
	if nil != err && fault.HeaderNotFound != err {
		return err
	}

	reply.Connected = network.IsConnected()
	reply.Server = network.CurrentServer()
	reply.Height = height
	reply.Connections = connectionCount.Uint64()
	reply.Version = spvd.version
	reply.Uptime = time.Since(spvd.start).String()

	return nil
}
