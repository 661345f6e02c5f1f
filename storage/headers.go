// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/spvd/fault"
)

// key layout: 'H' ++ big endian block height
const headerKeyPrefix = 'H'

func headerKey(height uint64) []byte {
	key := make([]byte, 9)
	key[0] = headerKeyPrefix
	binary.BigEndian.PutUint64(key[1:], height)
	return key
}

// StoreHeader - save one raw block header at its height
//
// storing the same height again overwrites the previous record, this
// covers small reorganisations announced by the server
func StoreHeader(height uint64, header []byte) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Debugf("store header: %d  %d bytes", height, len(header))
	return globalData.db.Put(headerKey(height), header, nil)
}

// Header - fetch one raw block header by height
func Header(height uint64) ([]byte, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	header, err := globalData.db.Get(headerKey(height), nil)
	if leveldb.ErrNotFound == err {
		return nil, fault.HeaderNotFound
	}
	return header, err
}

// LastHeight - the highest stored header height
//
// an empty store reports fault.HeaderNotFound
func LastHeight() (uint64, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return 0, fault.NotInitialised
	}

	iterator := globalData.db.NewIterator(util.BytesPrefix([]byte{headerKeyPrefix}), nil)
	defer iterator.Release()

	if !iterator.Last() {
		if err := iterator.Error(); nil != err {
			return 0, err
		}
		return 0, fault.HeaderNotFound
	}
	return binary.BigEndian.Uint64(iterator.Key()[1:]), iterator.Error()
}
