// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"io"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/spvd/counter"
)

// ServerArgument - the argument passed to the callback
type ServerArgument struct {
	Log    *logger.L
	Server *rpc.Server
}

var connectionCount counter.Counter

// create a server instance with all handlers registered
func createServer(log *logger.L, version string) (*rpc.Server, error) {
	server := rpc.NewServer()

	spvd := &SPVD{
		log:     log,
		version: version,
		start:   time.Now(),
	}
	err := server.Register(spvd)
	if nil != err {
		log.Criticalf("rpc register error: %s", err)
		return nil, err
	}

	return server, nil
}

// Callback - handle one incoming JSON-RPC connection
func Callback(conn io.ReadWriteCloser, argument interface{}) {

	serverArgument := argument.(*ServerArgument)

	log := serverArgument.Log
	log.Info("starting…")

	connectionCount.Increment()
	defer connectionCount.Decrement()

	codec := jsonrpc.NewServerCodec(conn)
	defer codec.Close()
	serverArgument.Server.ServeCodec(codec)

	log.Info("finished")
}
