// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - persistent store for block headers
//
// headers announced by the wallet server are kept in a LevelDB
// database keyed by block height so a restart does not have to
// refetch the whole chain of headers
package storage
