// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package subscription_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/spvd/fixtures"
	"github.com/bitmark-inc/spvd/subscription"
)

const (
	topicHeaders = "blockchain.headers.subscribe"
	topicAddress = "blockchain.address.subscribe"
)

func newTestRouter() *subscription.Router {
	return subscription.NewRouter(logger.New(fixtures.LogCategory), topicHeaders, topicAddress)
}

func TestDispatchToTopic(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	router := newTestRouter()

	headers := router.Topic(topicHeaders).Subscribe()
	address := router.Topic(topicAddress).Subscribe()
	defer headers.Close()
	defer address.Close()

	params := []json.RawMessage{json.RawMessage(`{"height":100}`)}
	router.Dispatch(topicHeaders, params)

	select {
	case e := <-headers.Chan():
		assert.Equal(t, topicHeaders, e.Method, "wrong method")
		assert.Equal(t, params, e.Params, "wrong params")
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for header event")
	}

	select {
	case e := <-address.Chan():
		t.Fatalf("cross-topic delivery: %v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDispatchUnknownMethodDropped(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	router := newTestRouter()

	headers := router.Topic(topicHeaders).Subscribe()
	defer headers.Close()

	// unknown method must be ignored without affecting later dispatch
	assert.NotPanics(t, func() {
		router.Dispatch("blockchain.scripthash.subscribe", nil)
	}, "unknown method dispatch panicked")

	router.Dispatch(topicHeaders, nil)
	select {
	case e := <-headers.Chan():
		assert.Equal(t, topicHeaders, e.Method, "wrong method")
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for header event")
	}
}

func TestUnknownTopicIsNil(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	router := newTestRouter()
	assert.Nil(t, router.Topic("no.such.topic"), "expected nil channel")
}
