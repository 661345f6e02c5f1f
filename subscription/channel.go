// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package subscription

import (
	"encoding/json"
	"sync"
)

// Event - one server push notification
type Event struct {
	Method string
	Params []json.RawMessage
}

// Channel - broadcast stream for one notification topic
type Channel struct {
	sync.Mutex // protects the consumer list
	consumers  []*Consumer
}

// NewChannel - create an empty broadcast channel
func NewChannel() *Channel {
	return &Channel{}
}

// Subscribe - attach a new independent consumer
//
// events published before the consumer attached are not replayed
func (channel *Channel) Subscribe() *Consumer {
	consumer := &Consumer{
		channel: channel,
		out:     make(chan Event),
		signal:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go consumer.deliver()

	channel.Lock()
	channel.consumers = append(channel.consumers, consumer)
	channel.Unlock()

	return consumer
}

// Publish - deliver an event to every attached consumer
//
// never blocks: each consumer has its own unbounded queue
func (channel *Channel) Publish(event Event) {
	channel.Lock()
	for _, consumer := range channel.consumers {
		consumer.enqueue(event)
	}
	channel.Unlock()
}

// detach one consumer
func (channel *Channel) unsubscribe(consumer *Consumer) {
	channel.Lock()
	for i, item := range channel.consumers {
		if item == consumer {
			channel.consumers = append(channel.consumers[:i], channel.consumers[i+1:]...)
			break
		}
	}
	channel.Unlock()
}

// Consumer - one attachment to a Channel
//
// events are queued without limit and handed out in FIFO order on the
// Chan stream; Close detaches from the channel and releases the queue
type Consumer struct {
	sync.Mutex // protects queue
	channel    *Channel
	queue      []Event
	out        chan Event
	signal     chan struct{}
	done       chan struct{}
	closeOnce  sync.Once
}

// Chan - the stream of events for this consumer
func (consumer *Consumer) Chan() <-chan Event {
	return consumer.out
}

// Close - detach from the channel; pending events are dropped
func (consumer *Consumer) Close() {
	consumer.closeOnce.Do(func() {
		consumer.channel.unsubscribe(consumer)
		close(consumer.done)
	})
}

func (consumer *Consumer) enqueue(event Event) {
	consumer.Lock()
	consumer.queue = append(consumer.queue, event)
	consumer.Unlock()

	// wake the delivery loop, a single token is sufficient
	select {
	case consumer.signal <- struct{}{}:
	default:
	}
}

// move queued events to the outgoing stream, one at a time
func (consumer *Consumer) deliver() {
	for {
		consumer.Lock()
		for 0 == len(consumer.queue) {
			consumer.Unlock()
			select {
			case <-consumer.signal:
			case <-consumer.done:
				return
			}
			consumer.Lock()
		}
		event := consumer.queue[0]
		consumer.queue = consumer.queue[1:]
		consumer.Unlock()

		select {
		case consumer.out <- event:
		case <-consumer.done:
			return
		}
	}
}
