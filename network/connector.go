// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"encoding/json"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/spvd/fault"
	"github.com/bitmark-inc/spvd/session"
	"github.com/bitmark-inc/spvd/subscription"
	"github.com/bitmark-inc/spvd/util"
)

// creates the transport for one connection attempt
type transportFactory func() session.Transport

// connector - the failover loop
//
// sole owner of the current session handle: the handle is only
// assigned and cleared by the Run loop, everything else reads it
type connector struct {
	sync.RWMutex // only protects client and state

	log            *logger.L
	servers        []string
	clientVersion  string
	minimumVersion string
	newTransport   transportFactory
	router         *subscription.Router
	onConnected    *subscription.Channel

	state  connectionState
	client *session.Session
}

func (conn *connector) initialise(
	servers []string,
	clientVersion string,
	minimumVersion string,
	newTransport transportFactory,
	router *subscription.Router,
	onConnected *subscription.Channel,
) error {

	conn.log = logger.New("connector")
	conn.log.Info("initialising…")

	if 0 == len(servers) {
		return fault.NoServersConfigured
	}

	conn.servers = make([]string, len(servers))
	for i, server := range servers {
		address, err := util.CanonicalHostPort(server)
		if nil != err {
			conn.log.Errorf("server: %q error: %s", server, err)
			return err
		}
		conn.servers[i] = address
	}

	conn.clientVersion = clientVersion
	conn.minimumVersion = minimumVersion
	conn.newTransport = newTransport
	conn.router = router
	conn.onConnected = onConnected
	conn.state = cStateDisconnected

	return nil
}

// Run - the failover loop; implements background.Process
//
// iterates the server pool cyclically and indefinitely: every attempt
// uses a fresh session; connect and handshake failures are logged and
// absorbed, the loop simply advances to the next pool entry
//
// note: there is no delay between attempts, a fully failing pool
// spins bounded only by the per-attempt dial timeout
func (conn *connector) Run(_ interface{}, shutdown <-chan struct{}) {
	log := conn.log

	log.Info("starting…")

loop:
	for i := 0; ; i = (i + 1) % len(conn.servers) {

		select {
		case <-shutdown:
			break loop
		default:
		}

		address := conn.servers[i]
		conn.setState(cStateConnecting)
		log.Infof("attempt: %s", address)

		client := session.New(conn.newTransport(), address, conn.router)

		err := client.Connect()
		if nil == err {
			err = conn.checkVersion(client)
		}
		if nil != err {
			log.Warnf("connect: %s error: %s", address, err)
			client.Close()
			continue loop
		}

		log.Infof("connected to wallet server: %s", address)
		conn.setClient(client)
		conn.announceConnected(address)

		select {
		case <-shutdown:
			conn.dropClient()
			break loop

		case <-client.Disconnected():
			log.Warnf("disconnected from: %s", address)
			conn.clearClient()
		}
	}

	// guarantee no dangling session after stop
	conn.dropClient()
	conn.setState(cStateDisconnected)
	log.Info("stopped")
}

// additional handshake: refuse servers below the required protocol
//
// a failure only abandons this attempt, the loop keeps cycling
func (conn *connector) checkVersion(client *session.Session) error {
	reply, err := client.Request("server.version", conn.clientVersion, conn.minimumVersion)
	if nil != err {
		return err
	}

	// reply is the pair: [server software, protocol version]
	var result []string
	if err := json.Unmarshal(reply, &result); nil != err || 2 != len(result) {
		return fault.InvalidVersionResponse
	}
	conn.log.Infof("server: %q protocol: %s", result[0], result[1])
	return nil
}

func (conn *connector) announceConnected(address string) {
	data, _ := json.Marshal(address)
	conn.onConnected.Publish(subscription.Event{
		Method: "connected",
		Params: []json.RawMessage{data},
	})
}

func (conn *connector) setState(state connectionState) {
	conn.Lock()
	conn.log.Debugf("state: %s → %s", conn.state, state)
	conn.state = state
	conn.Unlock()
}

func (conn *connector) setClient(client *session.Session) {
	conn.Lock()
	conn.client = client
	conn.state = cStateConnected
	conn.Unlock()
}

func (conn *connector) clearClient() {
	conn.Lock()
	conn.client = nil
	conn.state = cStateConnecting
	conn.Unlock()
}

// close the live session and wait for its disconnect to fire
func (conn *connector) dropClient() {
	conn.Lock()
	client := conn.client
	conn.client = nil
	conn.Unlock()

	if nil != client {
		client.Close()
		<-client.Disconnected()
	}
}

// the live session, nil unless connected and usable
func (conn *connector) currentClient() *session.Session {
	conn.RLock()
	defer conn.RUnlock()

	if cStateConnected != conn.state || nil == conn.client || conn.client.IsClosing() {
		return nil
	}
	return conn.client
}

// point-in-time connectivity query
func (conn *connector) isConnected() bool {
	return nil != conn.currentClient()
}

// the address of the live session, empty when disconnected
func (conn *connector) currentAddress() string {
	client := conn.currentClient()
	if nil == client {
		return ""
	}
	return client.Address()
}
