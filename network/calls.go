// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"encoding/json"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/spvd/fault"
)

// forward one request to the live session
//
// fail-fast: no queueing and no waiting for a reconnect
func rpcCall(method string, params ...interface{}) (json.RawMessage, error) {
	client := globalData.conn.currentClient()
	if nil == client {
		return nil, fault.ConnectionUnavailable
	}
	return client.Request(method, params...)
}

// BroadcastTransaction - submit a raw transaction to the network
func BroadcastTransaction(rawTransaction string) (json.RawMessage, error) {
	return rpcCall("blockchain.transaction.broadcast", rawTransaction)
}

// GetHistory - confirmed history of an address
func GetHistory(address string) (json.RawMessage, error) {
	return rpcCall("blockchain.address.get_history", address)
}

// GetTransaction - fetch one raw transaction
//
// results are cached: a transaction with a hash never changes
func GetTransaction(txHash string) (json.RawMessage, error) {
	if nil != globalData.txCache {
		if data, ok := globalData.txCache.Get(txHash); ok {
			return data.(json.RawMessage), nil
		}
	}

	data, err := rpcCall("blockchain.transaction.get", txHash)
	if nil != err {
		return nil, err
	}

	if nil != globalData.txCache {
		globalData.txCache.Set(txHash, data, cache.DefaultExpiration)
	}
	return data, nil
}

// GetMerkle - merkle proof of a transaction at a height
func GetMerkle(txHash string, height uint64) (json.RawMessage, error) {
	return rpcCall("blockchain.transaction.get_merkle", txHash, height)
}

// GetHeaders - a batch of raw block headers starting at a height
func GetHeaders(startHeight uint64, count int) (json.RawMessage, error) {
	return rpcCall("blockchain.block.headers", startHeight, count)
}

// SubscribeHeaders - ask the server to push new block headers
//
// the reply is the current chain tip; subsequent announcements are
// delivered on the HeaderEvents stream
func SubscribeHeaders() (json.RawMessage, error) {
	return rpcCall("blockchain.headers.subscribe", true)
}

// SubscribeAddress - ask the server to push status changes of address
//
// subsequent announcements are delivered on the AddressStatusEvents
// stream
func SubscribeAddress(address string) (json.RawMessage, error) {
	return rpcCall("blockchain.address.subscribe", address)
}
