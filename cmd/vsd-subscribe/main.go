// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command vsd-subscribe loads a VSS specification, subscribes to one
// signal, and dumps every leaf touched by each payload it receives,
// running until interrupted (SIGINT/SIGTERM).
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	vsdcore "github.com/signaltree/vsd-core"
	"github.com/signaltree/vsd-core/internal/transport"
	"github.com/signaltree/vsd-core/pkg/log"
	"github.com/signaltree/vsd-core/pkg/vss"
)

func main() {
	var specPath, natsAddr string
	flag.StringVar(&specPath, "spec", "", "Path to the VSS CSV specification file (required)")
	flag.StringVar(&natsAddr, "nats", "nats://localhost:4222", "Address of the NATS server")
	flag.Parse()

	args := flag.Args()
	if specPath == "" || len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s -spec <vss.csv> <signal-path>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Example: %s -spec vss.csv Vehicle.Drivetrain.InternalCombustionEngine\n", os.Args[0])
		os.Exit(1)
	}
	signalPath := args[0]

	f, err := os.Open(specPath)
	if err != nil {
		log.Fatalf("opening %s: %v", specPath, err)
	}
	ctx := vsdcore.NewContext("Vehicle")
	loadErr := vss.Load(ctx, f)
	f.Close()
	if loadErr != nil {
		log.Warnf("specification loaded with errors: %v", loadErr)
	}
	ctx.Finalize()

	sig, err := ctx.LookupByPath(signalPath)
	if err != nil {
		log.Fatalf("cannot find signal %s: %v", signalPath, err)
	}

	adapter, err := transport.Dial(transport.Config{Address: natsAddr})
	if err != nil {
		log.Fatalf("connecting to NATS at %s: %v", natsAddr, err)
	}
	defer adapter.Close()

	dist := vsdcore.NewDistributor(ctx, adapter)
	dist.Subscribe(sig, func(touched []vsdcore.Signal) {
		fmt.Println("Got signal")
		for _, leaf := range touched {
			dumpLeaf(ctx, leaf)
		}
		fmt.Println("----")
	})

	if err := adapter.Listen(1, dist.OnReceive); err != nil {
		log.Fatalf("subscribing to %s: %v", signalPath, err)
	}

	log.Infof("subscribed to %s, waiting for payloads (ctrl-c to quit)", signalPath)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func dumpLeaf(ctx *vsdcore.Context, leaf vsdcore.Signal) {
	v, err := leaf.Value()
	if err != nil {
		fmt.Printf("%s - %s:%s -> [error: %v]\n", leaf.Name(), leaf.ElementKind(), leaf.DataKind(), err)
		return
	}

	var rendered string
	switch v.Kind {
	case vsdcore.KindFloat32:
		rendered = fmt.Sprintf("%f", v.F32)
	case vsdcore.KindFloat64:
		rendered = fmt.Sprintf("%f", v.F64)
	case vsdcore.KindBool:
		rendered = fmt.Sprintf("%t", v.Bool())
	case vsdcore.KindString:
		if v.Str == "" {
			rendered = "[nil]"
		} else {
			rendered = v.Str
		}
	default:
		rendered = fmt.Sprintf("%d", v.I64)
	}

	fmt.Printf("%s - %s:%s -> %s\n", ctx.PathOf(leaf), leaf.ElementKind(), leaf.DataKind(), rendered)
}
