// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package transport provides the NATS-backed transport adapter: it
// publishes an encoded payload to the subject "vsd.<tag>" and, on the
// other side, drains a wildcard subscription through a worker pool
// before handing each message to the core's Receiver. The NATS client
// owns the reconnection state machine; the handlers installed here
// only log.
package transport

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"golang.org/x/time/rate"

	vsdlog "github.com/signaltree/vsd-core/pkg/log"
)

const subjectPrefix = "vsd."

func subjectFor(tag uint32) string {
	return subjectPrefix + strconv.FormatUint(uint64(tag), 10)
}

func tagFromSubject(subject string) (uint32, bool) {
	rest, ok := strings.CutPrefix(subject, subjectPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(rest, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// Config configures one Adapter. RatePerSecond limits Transmit calls;
// zero means unlimited.
type Config struct {
	Address       string
	Username      string
	Password      string
	CredsFilePath string
	RatePerSecond float64
}

// Receiver is the core's entry point for an inbound payload, matching
// vsdcore.Distributor.OnReceive's signature without importing the root
// package (which would be a dependency cycle: the root package depends
// on this one only through the Transport interface, never the reverse).
type Receiver func(tag uint32, payload []byte) error

// Adapter is a NATS-backed Transport Adapter. The zero Adapter is not
// usable; construct one with Dial.
type Adapter struct {
	conn    *nats.Conn
	subs    []*nats.Subscription
	limiter *rate.Limiter

	mu   sync.Mutex
	msgs chan *nats.Msg
	wg   sync.WaitGroup
}

// Dial connects to the configured NATS server. It does not subscribe;
// call Listen to start receiving.
func Dial(cfg Config) (*Adapter, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("transport: NATS address is required")
	}

	var opts []nats.Option
	if cfg.Username != "" && cfg.Password != "" {
		opts = append(opts, nats.UserInfo(cfg.Username, cfg.Password))
	}
	if cfg.CredsFilePath != "" {
		opts = append(opts, nats.UserCredentials(cfg.CredsFilePath))
	}
	opts = append(opts, nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
		if err != nil {
			vsdlog.Warnf("transport: NATS disconnected: %v", err)
		}
	}))
	opts = append(opts, nats.ReconnectHandler(func(nc *nats.Conn) {
		vsdlog.Infof("transport: NATS reconnected to %s", nc.ConnectedUrl())
	}))

	nc, err := nats.Connect(cfg.Address, opts...)
	if err != nil {
		return nil, fmt.Errorf("transport: NATS connect failed: %w", err)
	}
	vsdlog.Infof("transport: NATS connected to %s", cfg.Address)

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}

	return &Adapter{conn: nc, limiter: limiter}, nil
}

// Transmit implements vsdcore.Transport: it publishes payload to the
// subject "vsd.<tag>", rate-limited if the adapter was configured with
// RatePerSecond.
func (a *Adapter) Transmit(tag uint32, payload []byte) error {
	if a.limiter != nil {
		if err := a.limiter.Wait(context.Background()); err != nil {
			return fmt.Errorf("transport: rate limiter: %w", err)
		}
	}

	subject := subjectFor(tag)
	if err := a.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("transport: NATS publish to %q failed: %w", subject, err)
	}
	return nil
}

// Listen subscribes to every roots-derived subject, or to the wildcard
// "vsd.*" when roots is empty, and feeds each inbound message to recv
// through a channel drained by workers goroutines. With workers == 1
// (clamped up from anything smaller) every payload is handled to
// completion in delivery order and recv is never called concurrently,
// which is what a Distributor sharing one Context requires; a larger
// pool trades that ordering away and demands a recv that is safe for
// concurrent use. The tag is always derived from the message's own
// subject, never from closure state, so one shared worker pool can
// safely serve any number of subscribed subjects.
func (a *Adapter) Listen(workers int, recv Receiver, roots ...uint32) error {
	if workers < 1 {
		workers = 1
	}
	handle := func(msg *nats.Msg) {
		tag, ok := tagFromSubject(msg.Subject)
		if !ok {
			vsdlog.Errorf("transport: message on unexpected subject %q", msg.Subject)
			return
		}
		if err := recv(tag, msg.Data); err != nil {
			vsdlog.Errorf("transport: %v", err)
		}
	}

	subjects := []string{subjectPrefix + "*"}
	if len(roots) > 0 {
		// Subscribing per-tag lets a caller that only cares about a few
		// publish roots avoid paying for every other peer's traffic.
		subjects = make([]string, len(roots))
		for i, tag := range roots {
			subjects[i] = subjectFor(tag)
		}
	}

	a.mu.Lock()
	if a.msgs == nil {
		a.msgs = make(chan *nats.Msg, workers*2)
	}
	msgs := a.msgs
	a.mu.Unlock()

	a.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer a.wg.Done()
			for msg := range msgs {
				handle(msg)
			}
		}()
	}

	for _, subject := range subjects {
		sub, err := a.conn.Subscribe(subject, func(msg *nats.Msg) { msgs <- msg })
		if err != nil {
			return fmt.Errorf("transport: NATS subscribe to %q failed: %w", subject, err)
		}
		a.subs = append(a.subs, sub)
	}
	return nil
}

// Close unsubscribes, drains the worker pool, and closes the connection.
func (a *Adapter) Close() {
	for _, sub := range a.subs {
		if err := sub.Unsubscribe(); err != nil {
			vsdlog.Warnf("transport: NATS unsubscribe failed: %v", err)
		}
	}
	a.subs = nil
	a.mu.Lock()
	if a.msgs != nil {
		close(a.msgs)
		a.msgs = nil
	}
	a.mu.Unlock()
	a.wg.Wait()

	if a.conn != nil {
		a.conn.Close()
	}
}

// Flush blocks until every Transmit call so far has reached the server,
// up to timeout.
func (a *Adapter) Flush(timeout time.Duration) error {
	return a.conn.FlushTimeout(timeout)
}

// Raw returns the underlying NATS connection, for callers that need to
// subscribe to a subject this Adapter does not itself model, namely
// internal/transport/lpbridge's legacy line-protocol subjects, which
// carry a different wire format than the tagged binary codec payloads
// Transmit/Listen handle.
func (a *Adapter) Raw() *nats.Conn {
	return a.conn
}
