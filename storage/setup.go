// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldberrors "github.com/syndtr/goleveldb/leveldb/errors"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/spvd/fault"
)

// globals for the storage system
type storageData struct {
	sync.RWMutex // to allow locking

	log *logger.L
	db  *leveldb.DB

	// set once during initialise
	initialised bool
}

// global data
var globalData storageData

// Initialise - open the header database
func Initialise(directory string) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("storage")
	globalData.log.Info("starting…")

	db, err := leveldb.OpenFile(directory, nil)
	if ldberrors.IsCorrupted(err) {
		globalData.log.Criticalf("corrupted database: %q", directory)
		db, err = leveldb.RecoverFile(directory, nil)
	}
	if nil != err {
		return err
	}
	globalData.db = db

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - close the database
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.db.Close()
	globalData.db = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// IsInitialised - check the database is open
func IsInitialised() bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.initialised
}
