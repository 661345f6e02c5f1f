// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package subscription - delivery of server push notifications
//
// a Router holds a fixed table of notification method names, each
// bound to a broadcast Channel; incoming notifications for unknown
// methods are silently discarded
//
// any number of independent consumers may attach to a Channel; each
// consumer receives every event published after it attached, in
// publication order; a slow consumer only delays its own delivery
package subscription
