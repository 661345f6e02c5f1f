// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/spvd/fault"
	"github.com/bitmark-inc/spvd/fixtures"
	"github.com/bitmark-inc/spvd/session"
	"github.com/bitmark-inc/spvd/subscription"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// scripted in-memory wallet servers keyed by address
type fakePool struct {
	sync.Mutex
	refuse     map[string]bool // Connect fails for these
	badVersion map[string]bool // handshake reply is malformed for these
	gate       chan struct{}   // when set, Connect waits until closed
	live       []*fakeTransport
}

func newFakePool() *fakePool {
	return &fakePool{
		refuse:     make(map[string]bool),
		badVersion: make(map[string]bool),
	}
}

func (pool *fakePool) factory() session.Transport {
	return &fakeTransport{
		pool:          pool,
		notifications: make(chan session.Notification, 4),
		disconnected:  make(chan struct{}),
	}
}

// remote side closes every live connection
func (pool *fakePool) dropAll() {
	pool.Lock()
	live := pool.live
	pool.live = nil
	pool.Unlock()

	for _, transport := range live {
		transport.shutdown()
	}
}

type fakeTransport struct {
	pool          *fakePool
	address       string
	notifications chan session.Notification
	disconnected  chan struct{}
	closeOnce     sync.Once
}

func (t *fakeTransport) Connect(address string) error {
	t.address = address

	t.pool.Lock()
	gate := t.pool.gate
	t.pool.Unlock()
	if nil != gate {
		<-gate
	}

	t.pool.Lock()
	defer t.pool.Unlock()

	if t.pool.refuse[address] {
		return fault.ConnectionError("connection refused")
	}
	t.pool.live = append(t.pool.live, t)
	return nil
}

// wait for a connection to be established
func (pool *fakePool) awaitLive(t *testing.T) *fakeTransport {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		pool.Lock()
		if len(pool.live) > 0 {
			transport := pool.live[len(pool.live)-1]
			pool.Unlock()
			return transport
		}
		pool.Unlock()
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timeout waiting for live transport")
	return nil
}

func (t *fakeTransport) SendRequest(method string, params []interface{}) (json.RawMessage, error) {
	select {
	case <-t.disconnected:
		return nil, fault.ConnectionLost
	default:
	}

	if "server.version" == method {
		t.pool.Lock()
		bad := t.pool.badVersion[t.address]
		t.pool.Unlock()
		if bad {
			return json.RawMessage(`"unexpected"`), nil
		}
		return json.RawMessage(`["fake/1.0", "1.4"]`), nil
	}
	return json.RawMessage(`"ok"`), nil
}

func (t *fakeTransport) Notifications() <-chan session.Notification {
	return t.notifications
}

func (t *fakeTransport) Disconnected() <-chan struct{} {
	return t.disconnected
}

func (t *fakeTransport) Close() {
	t.shutdown()
}

func (t *fakeTransport) shutdown() {
	t.closeOnce.Do(func() { close(t.disconnected) })
}

// assemble a connector over a fake pool; Run is not started here
func setupConnector(t *testing.T, pool *fakePool, servers ...string) (*connector, *subscription.Channel) {
	router := subscription.NewRouter(
		logger.New(fixtures.LogCategory),
		TopicHeaders,
		TopicAddressStatus,
	)
	onConnected := subscription.NewChannel()

	conn := &connector{}
	err := conn.initialise(servers, "spvd/test", "1.4", pool.factory, router, onConnected)
	require.NoError(t, err)

	return conn, onConnected
}

func awaitEvent(t *testing.T, events *subscription.Consumer) subscription.Event {
	select {
	case event := <-events.Chan():
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for event")
		return subscription.Event{}
	}
}

func connectedAddress(t *testing.T, event subscription.Event) string {
	require.Equal(t, "connected", event.Method)
	require.Len(t, event.Params, 1)

	var address string
	require.NoError(t, json.Unmarshal(event.Params[0], &address))
	return address
}

func TestInitialiseEmptyPool(t *testing.T) {
	conn := &connector{}
	err := conn.initialise(nil, "spvd/test", "1.4", newFakePool().factory, nil, nil)
	assert.Equal(t, fault.NoServersConfigured, err)
}

func TestFailoverToNextServer(t *testing.T) {
	pool := newFakePool()
	pool.refuse["127.0.0.1:50001"] = true

	conn, onConnected := setupConnector(t, pool, "127.0.0.1:50001", "127.0.0.1:50002")
	events := onConnected.Subscribe()
	defer events.Close()

	shutdown := make(chan struct{})
	done := make(chan struct{})
	go func() {
		conn.Run(nil, shutdown)
		close(done)
	}()

	event := awaitEvent(t, events)
	assert.Equal(t, "127.0.0.1:50002", connectedAddress(t, event))
	assert.True(t, conn.isConnected())
	assert.Equal(t, "127.0.0.1:50002", conn.currentAddress())

	close(shutdown)
	<-done

	// no dangling session after stop
	assert.False(t, conn.isConnected())
	assert.Nil(t, conn.currentClient())
	assert.Equal(t, "", conn.currentAddress())
}

func TestHandshakeRejection(t *testing.T) {
	pool := newFakePool()
	pool.badVersion["127.0.0.1:50001"] = true

	conn, onConnected := setupConnector(t, pool, "127.0.0.1:50001", "127.0.0.1:50002")
	events := onConnected.Subscribe()
	defer events.Close()

	shutdown := make(chan struct{})
	done := make(chan struct{})
	go func() {
		conn.Run(nil, shutdown)
		close(done)
	}()

	event := awaitEvent(t, events)
	assert.Equal(t, "127.0.0.1:50002", connectedAddress(t, event))

	close(shutdown)
	<-done
}

func TestReconnectAfterRemoteClose(t *testing.T) {
	pool := newFakePool()

	conn, onConnected := setupConnector(t, pool, "127.0.0.1:50001")
	events := onConnected.Subscribe()
	defer events.Close()

	shutdown := make(chan struct{})
	done := make(chan struct{})
	go func() {
		conn.Run(nil, shutdown)
		close(done)
	}()

	first := awaitEvent(t, events)
	assert.Equal(t, "127.0.0.1:50001", connectedAddress(t, first))

	// server goes away: the loop must come back on its own
	pool.dropAll()

	second := awaitEvent(t, events)
	assert.Equal(t, "127.0.0.1:50001", connectedAddress(t, second))

	close(shutdown)
	<-done
	assert.False(t, conn.isConnected())
}

func TestRequestThroughConnectedSession(t *testing.T) {
	pool := newFakePool()

	conn, onConnected := setupConnector(t, pool, "127.0.0.1:50001")
	events := onConnected.Subscribe()
	defer events.Close()

	shutdown := make(chan struct{})
	done := make(chan struct{})
	go func() {
		conn.Run(nil, shutdown)
		close(done)
	}()

	awaitEvent(t, events)

	client := conn.currentClient()
	require.NotNil(t, client)

	reply, err := client.Request("blockchain.address.get_history", "n3GNqMveyvaPvUbH469vDRadqpJMPc84JA")
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`"ok"`), reply)

	close(shutdown)
	<-done
}
