//
// Copyright (c) 2023-2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"sync"

	"github.com/markkurossi/ukern/kernel"
	"go.uber.org/zap"
)

var (
	kern *kernel.Kernel
)

func main() {
	fVerbose := flag.Bool("v", false, "verbose output")
	ktrace := flag.Bool("ktrace", false, "kernel trace")
	fFS := flag.String("fs", "", "host directory for the file system")
	fPS := flag.Bool("ps", false, "print process table on exit")
	fMaxProc := flag.Int("maxproc", kernel.DefaultMaxProcesses,
		"maximum number of processes")
	fConsole := flag.String("console", "",
		"accept console connection at address")
	fList := flag.Bool("l", false, "list programs")
	flag.Parse()

	log.SetFlags(0)

	if *fList {
		for _, name := range programs.Names() {
			fmt.Println(name)
		}
		return
	}

	logger := zap.NewNop()
	if *fVerbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
		defer logger.Sync()
	}

	var fs kernel.FileSystem
	if len(*fFS) > 0 {
		hfs, err := kernel.NewHostFS(*fFS)
		if err != nil {
			log.Fatal(err)
		}
		fs = hfs
	} else {
		fs = kernel.NewMemFS()
	}

	cons := kernel.NewStreamConsole(os.Stdin, os.Stdout)
	if len(*fConsole) > 0 {
		conn, err := acceptConsole(*fConsole)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()
		cons = kernel.NewStreamConsole(conn, conn)
	}

	kern = kernel.New(&kernel.Params{
		Trace:        *ktrace,
		Verbose:      *fVerbose,
		MaxProcesses: *fMaxProc,
		TraceOut:     os.Stderr,
		Logger:       logger,
		FileSystem:   fs,
		Console:      cons,
		Loader:       programs,
	})

	var wg sync.WaitGroup
	for _, arg := range flag.Args() {
		proc, err := kern.Spawn(arg)
		if err != nil {
			log.Print(err)
			continue
		}
		wg.Go(proc.Run)
	}

	// Wait for all programs to terminate or the machine to halt.
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-kern.Halted():
	}

	if *fPS {
		kern.PrintProcesses(os.Stdout)
	}
}

func acceptConsole(addr string) (net.Conn, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	defer listener.Close()

	log.Printf("Console waiting at %s", listener.Addr())
	conn, err := listener.Accept()
	if err != nil {
		return nil, err
	}
	log.Printf("Console connection from %s", conn.RemoteAddr())
	return conn, nil
}
