// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/bitmark-inc/spvd/fault"
)

// CanonicalHostPort - make a wallet server "host:port" entry canonical
//
// a host may be a DNS name, an IPv4 address or an IPv6 address
//
// examples:
//   name:  electrum.example.com:50001
//   IPv4:  127.0.0.1:50001
//   IPv6:  [::1]:50001
func CanonicalHostPort(hostPort string) (string, error) {

	host, port, err := net.SplitHostPort(strings.TrimSpace(hostPort))
	if nil != err {
		return "", fault.InvalidHostPort
	}

	host = strings.TrimSpace(host)
	if "" == host {
		return "", fault.InvalidHostPort
	}

	numericPort, err := strconv.Atoi(strings.TrimSpace(port))
	if nil != err {
		return "", err
	}
	if numericPort < 1 || numericPort > 65535 {
		return "", fault.InvalidPortNumber
	}
	port = strconv.Itoa(numericPort)

	IP := net.ParseIP(host)
	if nil == IP {
		// not numeric, assume a DNS name
		return strings.ToLower(host) + ":" + port, nil
	}

	if nil != IP.To4() {
		return IP.String() + ":" + port, nil
	}
	return "[" + IP.String() + "]:" + port, nil
}
