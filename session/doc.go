// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package session - one live connection to a single wallet server
//
// a Session owns one Transport for its whole life; once the transport
// disconnect fires the Session is dead and a fresh one must be
// created for the next attempt
package session
