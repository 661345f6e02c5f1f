// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package network

import (
	"encoding/hex"
	"encoding/json"

	"github.com/prometheus/common/log"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/spvd/storage"
	"github.com/bitmark-inc/spvd/subscription"
)

// recorder - persists announced block headers
//
// consumes the headers subscription stream and stores each announced
// header; a malformed announcement is logged and skipped, the stream
// keeps going
type recorder struct {
	log    *logger.L
	events *subscription.Consumer
}

// the server pushes this shape on blockchain.headers.subscribe
type headerAnnouncement struct {
	Height uint64 `json:"height"`
	Hex    string `json:"hex"`
}

func (rec *recorder) initialise(router *subscription.Router) error {
	rec.log = logger.New("recorder")
	rec.log.Info("initialising…")

	rec.events = router.Topic(TopicHeaders).Subscribe()

	return nil
}

// Run - background header recording loop
func (rec *recorder) Run(args interface{}, shutdown <-chan struct{}) {
	rec.log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case event := <-rec.events.Chan():
			rec.record(event)
		}
	}

	rec.events.Close()
	rec.log.Info("stopped")
}

func (rec *recorder) record(event subscription.Event) {
	for _, raw := range event.Params {

		var announcement headerAnnouncement
		if err := json.Unmarshal(raw, &announcement); nil != err {
			log.Warnf("header announcement decode error: %s", err)
			continue
		}
		if "" == announcement.Hex {
			continue
		}

		header, err := hex.DecodeString(announcement.Hex)
		if nil != err {
			log.Warnf("header hex decode error: %s", err)
			continue
		}

		err = storage.StoreHeader(announcement.Height, header)
		if nil != err {
			log.Warnf("header store error: %s", err)
			continue
		}

		rec.log.Debugf("stored header: height: %d", announcement.Height)
	}
}
