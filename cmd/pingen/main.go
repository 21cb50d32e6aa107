// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Command pingen turns a family's JSON pinout into the Go pin tables of
// package gpio.
//
//	go run ./cmd/pingen -in gpio/data/stm32f407.json -out gpio/zpins_stm32f407.go
package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var logger *logrus.Logger

func initLogger(verbose bool) {
	logger = logrus.New()
	logger.SetFormatter(&prefixed.TextFormatter{
		DisableTimestamp: true,
		ForceFormatting:  true,
	})
	logger.SetOutput(os.Stderr)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
}

func main() {
	flagIn := flag.String("in", "", "JSON pin table")
	flagOut := flag.String("out", "", "generated Go file")
	flagVerbose := flag.Bool("v", false, "verbose output")
	flag.Parse()

	initLogger(*flagVerbose)

	if *flagIn == "" || *flagOut == "" {
		flag.Usage()
		os.Exit(2)
	}

	t, err := loadTable(*flagIn)
	if err != nil {
		logger.Fatal(err)
	}
	f, err := t.family(*flagIn)
	if err != nil {
		logger.Fatal(err)
	}

	pins := 0
	for _, p := range f.Ports {
		pins += len(p.Pins)
		logger.WithField("prefix", f.Name).Debugf("port %c: %d pins", p.Letter, len(p.Pins))
	}

	src, err := generate(f)
	if err != nil {
		logger.Fatal(err)
	}
	if err := os.WriteFile(*flagOut, src, 0o644); err != nil {
		logger.Fatal(err)
	}
	logger.WithField("prefix", f.Name).Infof("%d ports, %d pins written to %s", len(f.Ports), pins, *flagOut)
}
