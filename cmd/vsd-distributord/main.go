// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command vsd-distributord is the long-running counterpart to the
// vsd-publish/vsd-subscribe demo programs: it loads a specification,
// dials the NATS transport, and keeps a Distributor alive to serve
// whatever combination of the debug HTTP API, Prometheus exposition,
// heartbeat republishing, and legacy line-protocol ingestion its config
// file turns on.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/gorilla/mux"
	"github.com/influxdata/line-protocol/v2/lineprotocol"
	"github.com/nats-io/nats.go"

	vsdcore "github.com/signaltree/vsd-core"
	"github.com/signaltree/vsd-core/internal/config"
	"github.com/signaltree/vsd-core/internal/httpapi"
	"github.com/signaltree/vsd-core/internal/metrics"
	"github.com/signaltree/vsd-core/internal/taskmanager"
	"github.com/signaltree/vsd-core/internal/transport"
	"github.com/signaltree/vsd-core/internal/transport/lpbridge"
	vsdlog "github.com/signaltree/vsd-core/pkg/log"
	"github.com/signaltree/vsd-core/pkg/vss"
)

func main() {
	var configPath string
	var flagGops bool
	flag.StringVar(&configPath, "config", "./config.json", "Path to the process configuration file")
	flag.BoolVar(&flagGops, "gops", false, "Listen via github.com/google/gops/agent (for debugging)")
	flag.Parse()

	if flagGops {
		if err := agent.Listen(agent.Options{}); err != nil {
			vsdlog.Fatalf("gops/agent.Listen failed: %s", err.Error())
		}
	}

	raw, err := os.ReadFile(configPath)
	if err != nil {
		vsdlog.Fatalf("reading %s: %v", configPath, err)
	}
	cfg, err := config.Load(json.RawMessage(raw))
	if err != nil {
		vsdlog.Fatalf("loading config: %v", err)
	}
	if cfg.LogLevel != "" {
		vsdlog.SetLogLevel(cfg.LogLevel)
	}

	specFile, err := os.Open(cfg.Specification)
	if err != nil {
		vsdlog.Fatalf("opening %s: %v", cfg.Specification, err)
	}
	ctx := vsdcore.NewContext("Vehicle")
	loadErr := vss.Load(ctx, specFile)
	specFile.Close()
	if loadErr != nil {
		vsdlog.Warnf("specification loaded with errors: %v", loadErr)
	}
	ctx.Finalize()

	adapter, err := transport.Dial(transport.Config{
		Address:       cfg.Nats.Address,
		Username:      cfg.Nats.Username,
		Password:      cfg.Nats.Password,
		CredsFilePath: cfg.Nats.CredsFilePath,
		RatePerSecond: cfg.Nats.PublishRatePerSecond,
	})
	if err != nil {
		vsdlog.Fatalf("connecting to NATS: %v", err)
	}
	defer adapter.Close()

	reg := metrics.New()
	dist := vsdcore.NewDistributor(ctx, adapter)
	dist.Metrics = reg

	// One worker: payloads decode and dispatch in delivery order, and
	// nothing races on the shared context.
	if err := adapter.Listen(1, dist.OnReceive); err != nil {
		vsdlog.Fatalf("listening on NATS: %v", err)
	}

	if cfg.LineProtocolBridge.Enabled && cfg.Nats.Subject != "" {
		subject := cfg.Nats.Subject + ".lp"
		if _, err := adapter.Raw().Subscribe(subject, func(msg *nats.Msg) {
			dec := lineprotocol.NewDecoderWithBytes(msg.Data)
			if _, errs := lpbridge.Decode(ctx, dec); len(errs) > 0 {
				vsdlog.Warnf("line-protocol bridge: %v", errs)
			}
		}); err != nil {
			vsdlog.Fatalf("subscribing to line-protocol bridge subject %s: %v", subject, err)
		}
		vsdlog.Infof("line-protocol bridge listening on %s", subject)
	}

	var mgr *taskmanager.Manager
	if cfg.Heartbeat.Enabled {
		mgr, err = taskmanager.New()
		if err != nil {
			vsdlog.Fatalf("starting task manager: %v", err)
		}
		interval, err := time.ParseDuration(cfg.Heartbeat.Interval)
		if err != nil {
			vsdlog.Fatalf("parsing heartbeat interval %q: %v", cfg.Heartbeat.Interval, err)
		}
		roots := make([]vsdcore.Signal, 0, len(cfg.Heartbeat.Roots))
		for _, path := range cfg.Heartbeat.Roots {
			root, err := ctx.LookupByPath(path)
			if err != nil {
				vsdlog.Fatalf("heartbeat root %s: %v", path, err)
			}
			roots = append(roots, root)
		}
		if err := mgr.RegisterHeartbeat(dist, roots, interval); err != nil {
			vsdlog.Fatalf("registering heartbeat: %v", err)
		}
		mgr.Start()
		defer mgr.Stop()
	}

	var servers []*http.Server
	if cfg.HTTPDebugAPI.Enabled {
		router := mux.NewRouter()
		var apiMetrics *metrics.Registry
		if cfg.Metrics.Enabled && cfg.Metrics.Address == cfg.HTTPDebugAPI.Address {
			apiMetrics = reg
		}
		httpapi.New(dist, apiMetrics).Register(router)
		srv := &http.Server{Addr: cfg.HTTPDebugAPI.Address, Handler: router}
		servers = append(servers, srv)
		go func() {
			vsdlog.Infof("http debug api listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				vsdlog.Errorf("http debug api: %v", err)
			}
		}()
	}
	if cfg.Metrics.Enabled && (!cfg.HTTPDebugAPI.Enabled || cfg.Metrics.Address != cfg.HTTPDebugAPI.Address) {
		router := mux.NewRouter()
		router.Handle("/metrics", reg.Handler()).Methods(http.MethodGet)
		srv := &http.Server{Addr: cfg.Metrics.Address, Handler: router}
		servers = append(servers, srv)
		go func() {
			vsdlog.Infof("metrics listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				vsdlog.Errorf("metrics: %v", err)
			}
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			vsdlog.Warnf("http server shutdown: %v", err)
		}
	}
}
