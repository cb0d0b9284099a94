// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/tebeka/atexit"

	"github.com/ezrec/katta/emulator"
	"github.com/ezrec/katta/trace"
)

func main() {
	var tracefile string
	var verbose bool
	var strict bool
	var limit int
	var expect string
	var quiet bool

	flag.StringVar(&tracefile, "t", "Tracer.txt", "Trace output file")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&strict, "strict", false, "Stop on invalid instructions")
	flag.IntVar(&limit, "max", 0, "Maximum instructions to execute (0 for no limit)")
	flag.StringVar(&expect, "expect", "", "Expression that must hold after the program halts")
	flag.BoolVar(&quiet, "q", false, "Do not print the final state")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Printf("usage: %v [options] <file.ktt>", os.Args[0])
		flag.PrintDefaults()
		atexit.Exit(0)
	}

	program := flag.Arg(0)

	inf, err := os.Open(program)
	if err != nil {
		log.Printf("%v: %v", program, err)
		atexit.Exit(0)
	}

	ouf, err := os.Create(tracefile)
	if err != nil {
		log.Printf("%v: %v", tracefile, err)
		atexit.Exit(1)
	}

	tracer := trace.NewWriter(ouf)
	atexit.Register(func() {
		err := tracer.Flush()
		if err != nil {
			log.Printf("%v: %v", tracefile, err)
		}
		ouf.Close()
	})

	emu := emulator.NewEmulator(tracer)
	emu.Verbose = verbose
	emu.Strict = strict
	emu.StepLimit = limit

	err = emu.Load(inf)
	inf.Close()
	if err != nil {
		log.Printf("%v: %v", program, err)
		atexit.Exit(1)
	}

	emu.Reset()

	err = emu.Run()
	if err != nil {
		log.Printf("%v: %v", program, err)
		atexit.Exit(1)
	}

	if !quiet {
		err = emu.Report(os.Stdout)
		if err != nil {
			log.Printf("%v", err)
			atexit.Exit(1)
		}
	}

	if len(expect) != 0 {
		ok, err := emu.Expect(expect)
		if err != nil {
			log.Printf("-expect: %v", err)
			atexit.Exit(1)
		}
		if !ok {
			log.Printf("-expect: '%v' does not hold", expect)
			atexit.Exit(1)
		}
	}

	atexit.Exit(0)
}
