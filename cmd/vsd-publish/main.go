// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command vsd-publish loads a VSS specification, applies a set of
// -s path:value pairs, and publishes one subtree, then exits: connect,
// set values, publish, done.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	vsdcore "github.com/signaltree/vsd-core"
	"github.com/signaltree/vsd-core/internal/transport"
	"github.com/signaltree/vsd-core/pkg/log"
	"github.com/signaltree/vsd-core/pkg/vss"
)

type setFlags []string

func (s *setFlags) String() string { return strings.Join(*s, ",") }
func (s *setFlags) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var specPath, natsAddr, publishPath string
	var sets setFlags
	flag.StringVar(&specPath, "spec", "", "Path to the VSS CSV specification file (required)")
	flag.StringVar(&natsAddr, "nats", "nats://localhost:4222", "Address of the NATS server")
	flag.StringVar(&publishPath, "p", "", "Dotted path of the signal subtree to publish (required)")
	flag.Var(&sets, "s", "signal-path:value pair to set before publish; may be repeated")
	flag.Parse()

	if specPath == "" || publishPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -spec <vss.csv> -p <signal-path> [-s <signal-path:value>]...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Example: %s -spec vss.csv -p Vehicle.Drivetrain.InternalCombustionEngine \\\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "         -s Vehicle.Drivetrain.InternalCombustionEngine.Engine.Power:230\n")
		os.Exit(1)
	}

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

	for _, pair := range sets {
		idx := strings.IndexByte(pair, ':')
		if idx < 0 {
			log.Fatalf("-s %q: missing colon, expected <signal-path>:<value>", pair)
		}
		path, val := pair[:idx], pair[idx+1:]
		if err := ctx.SetConvertByPath(path, val); err != nil {
			log.Fatalf("could not set %s to %s: %v", path, val, err)
		}
	}

	adapter, err := transport.Dial(transport.Config{Address: natsAddr})
	if err != nil {
		log.Fatalf("connecting to NATS at %s: %v", natsAddr, err)
	}
	defer adapter.Close()

	dist := vsdcore.NewDistributor(ctx, adapter)

	root, err := ctx.LookupByPath(publishPath)
	if err != nil {
		log.Fatalf("could not use publish path %s: %v", publishPath, err)
	}

	log.Infof("publishing %s", publishPath)
	if err := dist.Publish(root); err != nil {
		log.Fatalf("cannot publish signal %s: %v", publishPath, err)
	}
	if err := adapter.Flush(2 * time.Second); err != nil {
		log.Warnf("flush: %v", err)
	}
}
