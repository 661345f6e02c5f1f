// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package subscription

import (
	"encoding/json"

	"github.com/bitmark-inc/logger"
)

// Router - fixed mapping from notification method name to its Channel
//
// the topic set is established at construction, there is no dynamic
// registration
type Router struct {
	log      *logger.L
	channels map[string]*Channel
}

// NewRouter - create a router for a fixed set of topics
func NewRouter(log *logger.L, topics ...string) *Router {
	channels := make(map[string]*Channel, len(topics))
	for _, topic := range topics {
		channels[topic] = NewChannel()
	}
	return &Router{
		log:      log,
		channels: channels,
	}
}

// Dispatch - deliver one incoming notification
//
// a notification for an unknown method is dropped without error so
// that newer servers remain compatible
func (router *Router) Dispatch(method string, params []json.RawMessage) {
	channel, ok := router.channels[method]
	if !ok {
		router.log.Debugf("discard notification: %q", method)
		return
	}
	router.log.Debugf("dispatch: %q", method)
	channel.Publish(Event{
		Method: method,
		Params: params,
	})
}

// Topic - the channel for a topic name; nil for an unknown topic
func (router *Router) Topic(name string) *Channel {
	return router.channels[name]
}
