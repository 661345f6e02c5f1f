// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - Lua based configuration reader for the daemon
//
// a configuration file is a Lua script that builds a table and ends
// with "return M"; base Lua stays available so a script can call
// getenv, read files or compute entries before returning the table.
package configuration
