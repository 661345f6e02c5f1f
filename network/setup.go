// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"crypto/tls"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/spvd/background"
	"github.com/bitmark-inc/spvd/fault"
	"github.com/bitmark-inc/spvd/session"
	"github.com/bitmark-inc/spvd/subscription"
	"github.com/bitmark-inc/spvd/wire"
)

// notification topics recognised from the wallet server
const (
	TopicHeaders       = "blockchain.headers.subscribe"
	TopicAddressStatus = "blockchain.address.subscribe"
)

// transaction cache: a confirmed transaction never changes
const (
	txCacheExpiry = 10 * time.Minute
	txCachePurge  = 30 * time.Minute
)

// lowest protocol accepted when the configuration does not say
const defaultMinimumVersion = "1.2"

// seconds, when the configuration does not say
const defaultConnectTimeout = 30

// Configuration - wallet server connection settings
//
// this is read from the Lua configuration file
type Configuration struct {
	Servers        []string `gluamapper:"servers" json:"servers"`
	MinimumVersion string   `gluamapper:"minimum_version" json:"minimum_version"`
	UseTLS         bool     `gluamapper:"use_tls" json:"use_tls"`
	ConnectTimeout int      `gluamapper:"connect_timeout" json:"connect_timeout"` // seconds
}

// globals for the background processes
type networkData struct {
	sync.RWMutex // to allow locking

	// logger
	log *logger.L

	conn connector // the failover loop
	rec  recorder  // persists announced headers

	router      *subscription.Router
	onConnected *subscription.Channel
	txCache     *cache.Cache

	// for background
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData networkData

// Initialise - start the wallet server connection processes
//
// version is reported to the server during the handshake
func Initialise(configuration *Configuration, version string) error {

	timeout := time.Duration(configuration.ConnectTimeout) * time.Second
	if configuration.ConnectTimeout <= 0 {
		timeout = defaultConnectTimeout * time.Second
	}

	var tlsConfig *tls.Config
	if configuration.UseTLS {
		// wallet servers normally present self-signed certificates
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	factory := func() session.Transport {
		return wire.NewClient(timeout, tlsConfig)
	}

	return initialise(configuration, version, factory)
}

// common initialisation, the tests supply their own factory
func initialise(configuration *Configuration, version string, factory transportFactory) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("network")
	globalData.log.Info("starting…")

	globalData.router = subscription.NewRouter(
		logger.New("subscription"),
		TopicHeaders,
		TopicAddressStatus,
	)
	globalData.onConnected = subscription.NewChannel()
	globalData.txCache = cache.New(txCacheExpiry, txCachePurge)

	minimumVersion := configuration.MinimumVersion
	if "" == minimumVersion {
		minimumVersion = defaultMinimumVersion
	}

	err := globalData.conn.initialise(
		configuration.Servers,
		version,
		minimumVersion,
		factory,
		globalData.router,
		globalData.onConnected,
	)
	if nil != err {
		return err
	}

	err = globalData.rec.initialise(globalData.router)
	if nil != err {
		return err
	}

	// all data initialised
	globalData.initialised = true

	// start background processes
	globalData.log.Info("start background…")

	processes := background.Processes{
		&globalData.conn,
		&globalData.rec,
	}

	globalData.background = background.Start(processes, globalData.log)

	return nil
}

// Finalise - stop all background tasks
//
// closes the live session, if any, and waits for its disconnect to
// fire; safe to call only once, a second call reports NotInitialised
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// stop background
	globalData.background.Stop()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// IsConnected - true iff one session is live and not closing
func IsConnected() bool {
	return globalData.conn.isConnected()
}

// CurrentServer - address of the connected server, empty if none
func CurrentServer() string {
	return globalData.conn.currentAddress()
}

// OnConnected - events fired every time a server connection succeeds
func OnConnected() *subscription.Consumer {
	return globalData.onConnected.Subscribe()
}

// HeaderEvents - new block header announcements
func HeaderEvents() *subscription.Consumer {
	return globalData.router.Topic(TopicHeaders).Subscribe()
}

// AddressStatusEvents - address status change announcements
func AddressStatusEvents() *subscription.Consumer {
	return globalData.router.Topic(TopicAddressStatus).Subscribe()
}
