// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/spvd/fault"
	"github.com/bitmark-inc/spvd/util"
)

func TestCanonicalHostPort(t *testing.T) {

	testData := []struct {
		in  string
		out string
	}{
		{"127.0.0.1:50001", "127.0.0.1:50001"},
		{" 127.0.0.1:50001 ", "127.0.0.1:50001"},
		{"[::1]:50001", "[::1]:50001"},
		{"[0:0::0:0:1]:50001", "[::1]:50001"},
		{"Electrum.Example.COM:50002", "electrum.example.com:50002"},
		{"127.0.0.1:050001", "127.0.0.1:50001"},
	}

	for i, item := range testData {
		actual, err := util.CanonicalHostPort(item.in)
		assert.Nil(t, err, "%d: unexpected error", i)
		assert.Equal(t, item.out, actual, "%d: wrong canonical form", i)
	}
}

func TestCanonicalHostPortErrors(t *testing.T) {

	testData := []struct {
		in  string
		err error
	}{
		{"127.0.0.1", fault.InvalidHostPort},
		{":50001", fault.InvalidHostPort},
		{"127.0.0.1:0", fault.InvalidPortNumber},
		{"127.0.0.1:65536", fault.InvalidPortNumber},
		{"", fault.InvalidHostPort},
	}

	for i, item := range testData {
		_, err := util.CanonicalHostPort(item.in)
		assert.Equal(t, item.err, err, "%d: wrong error", i)
	}
}
