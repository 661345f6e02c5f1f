// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bufio"
	"crypto/tls"
	"encoding/json"
	"net"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/spvd/fault"
	"github.com/bitmark-inc/spvd/session"
)

// buffer for notifications awaiting the session relay
const notificationQueueSize = 64

// request as sent to the server
type request struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// rpcError - error member of a reply
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// incoming frame: a reply when ID is present, otherwise a notification
type message struct {
	ID     *uint64           `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
	Result json.RawMessage   `json:"result"`
	Error  *rpcError         `json:"error"`
}

// Client - one wire connection, implements session.Transport
type Client struct {
	sync.Mutex // protects conn writes, sequence and pending

	log           *logger.L
	dialTimeout   time.Duration
	tlsConfig     *tls.Config // nil for plain TCP
	conn          net.Conn
	sequence      uint64
	pending       map[uint64]chan message
	notifications chan session.Notification
	disconnected  chan struct{}
	closeOnce     sync.Once
}

// NewClient - create an unconnected client
//
// a nil tlsConfig selects plain TCP
func NewClient(dialTimeout time.Duration, tlsConfig *tls.Config) *Client {
	return &Client{
		log:           logger.New("wire"),
		dialTimeout:   dialTimeout,
		tlsConfig:     tlsConfig,
		pending:       make(map[uint64]chan message),
		notifications: make(chan session.Notification, notificationQueueSize),
		disconnected:  make(chan struct{}),
	}
}

// Connect - dial the server and start the receive loop
func (client *Client) Connect(address string) error {

	var conn net.Conn
	var err error
	if nil == client.tlsConfig {
		conn, err = net.DialTimeout("tcp", address, client.dialTimeout)
	} else {
		dialer := &net.Dialer{Timeout: client.dialTimeout}
		conn, err = tls.DialWithDialer(dialer, "tcp", address, client.tlsConfig)
	}
	if nil != err {
		return err
	}

	client.Lock()
	client.conn = conn
	client.Unlock()

	go client.receiver()
	return nil
}

// SendRequest - one matched request/reply exchange
//
// may be called concurrently; replies are matched by identifier so
// one slow request does not delay another
func (client *Client) SendRequest(method string, params []interface{}) (json.RawMessage, error) {
	if nil == params {
		params = []interface{}{}
	}

	client.Lock()
	if nil == client.conn {
		client.Unlock()
		return nil, fault.ConnectionUnavailable
	}

	client.sequence += 1
	id := client.sequence
	reply := make(chan message, 1)
	client.pending[id] = reply

	data, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	})
	if nil == err {
		data = append(data, '\n')
		_, err = client.conn.Write(data)
	}
	if nil != err {
		delete(client.pending, id)
		client.Unlock()
		client.shutdown()
		return nil, fault.ConnectionLost
	}
	client.Unlock()

	client.log.Debugf("sent: %q id: %d", method, id)

	select {
	case m := <-reply:
		if nil != m.Error {
			return nil, fault.RemoteError{
				Code:    m.Error.Code,
				Message: m.Error.Message,
			}
		}
		return m.Result, nil

	case <-client.disconnected:
		return nil, fault.ConnectionLost
	}
}

// Notifications - unsolicited server messages in arrival order
func (client *Client) Notifications() <-chan session.Notification {
	return client.notifications
}

// Disconnected - closed exactly once when the connection dies
func (client *Client) Disconnected() <-chan struct{} {
	return client.disconnected
}

// Close - drop the connection
func (client *Client) Close() {
	client.shutdown()
}

// fire the one-shot disconnect and release the socket
func (client *Client) shutdown() {
	client.closeOnce.Do(func() {
		close(client.disconnected)
		client.Lock()
		if nil != client.conn {
			client.conn.Close()
		}
		client.Unlock()
	})
}

// read frames until the connection dies
func (client *Client) receiver() {
	log := client.log

	reader := bufio.NewReader(client.conn)
loop:
	for {
		line, err := reader.ReadBytes('\n')
		if nil != err {
			log.Debugf("receive: %s", err)
			break loop
		}

		var m message
		if err := json.Unmarshal(line, &m); nil != err {
			log.Errorf("invalid frame: %s", err)
			continue loop
		}

		// no identifier: an unsolicited notification
		if nil == m.ID {
			select {
			case client.notifications <- session.Notification{
				Method: m.Method,
				Params: m.Params,
			}:
			case <-client.disconnected:
				break loop
			}
			continue loop
		}

		client.Lock()
		reply, ok := client.pending[*m.ID]
		delete(client.pending, *m.ID)
		client.Unlock()
		if ok {
			reply <- m
		} else {
			log.Warnf("unmatched reply id: %d", *m.ID)
		}
	}
	client.shutdown()
}
