// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import (
	"encoding/json"
	"fmt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/spvd/counter"
	"github.com/bitmark-inc/spvd/fault"
	"github.com/bitmark-inc/spvd/subscription"
)

// atomically incremented counter for log names
var sessionCounter counter.Counter

// Session - a bidirectional connection to one wallet server
type Session struct {
	log       *logger.L
	transport Transport
	address   string
	router    *subscription.Router
}

// New - create a session bound to one server address
//
// nothing is connected until Connect is called
func New(transport Transport, address string, router *subscription.Router) *Session {
	n := sessionCounter.Increment()
	return &Session{
		log:       logger.New(fmt.Sprintf("session@%d", n)),
		transport: transport,
		address:   address,
		router:    router,
	}
}

// Connect - establish the transport and start relaying notifications
func (session *Session) Connect() error {
	session.log.Infof("connecting to: %s", session.address)
	err := session.transport.Connect(session.address)
	if nil != err {
		return err
	}
	go session.relay()
	return nil
}

// Request - send one request and await its matched reply
//
// resolves with fault.ConnectionLost if this session's disconnect
// fires before the reply arrives; a fault.RemoteError only concerns
// this request and leaves the session usable
func (session *Session) Request(method string, params ...interface{}) (json.RawMessage, error) {
	if nil == params {
		params = []interface{}{}
	}

	type outcome struct {
		data json.RawMessage
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		data, err := session.transport.SendRequest(method, params)
		done <- outcome{data: data, err: err}
	}()

	select {
	case result := <-done:
		if nil == result.err {
			return result.data, nil
		}
		if fault.IsErrRemote(result.err) {
			return nil, result.err
		}
		// a transport level failure on a dead connection is
		// reported uniformly
		select {
		case <-session.transport.Disconnected():
			return nil, fault.ConnectionLost
		default:
			return nil, result.err
		}

	case <-session.transport.Disconnected():
		return nil, fault.ConnectionLost
	}
}

// Disconnected - one-shot signal; closed when this session dies
func (session *Session) Disconnected() <-chan struct{} {
	return session.transport.Disconnected()
}

// IsClosing - check if the underlying transport is already down
func (session *Session) IsClosing() bool {
	select {
	case <-session.transport.Disconnected():
		return true
	default:
		return false
	}
}

// Close - drop the connection; fires the disconnect signal
func (session *Session) Close() {
	session.log.Debug("closing…")
	session.transport.Close()
}

// Address - the server this session is bound to
func (session *Session) Address() string {
	return session.address
}

// pump unsolicited server messages into the subscription router
func (session *Session) relay() {
loop:
	for {
		select {
		case <-session.transport.Disconnected():
			break loop
		case notification, ok := <-session.transport.Notifications():
			if !ok {
				break loop
			}
			session.router.Dispatch(notification.Method, notification.Params)
		}
	}
	session.log.Debug("relay stopped")
}
