// Command subosc-render renders a generated sidechain signal through the
// sub-oscillator engine and prints per-block levels plus a harmonic report.
//
// Usage:
//
//	subosc-render [flags]
//
// Examples:
//
//	subosc-render -input burst -pitch 55
//	subosc-render -input sine -channel 2 -gain-db -6 -block 256
//	subosc-render -restart-phase -harmonics 8
//	subosc-render -info
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

func main() {
	logger := log.New(os.Stderr, "[subosc-render] ", 0)

	var opts renderOptions
	flag.Float64Var(&opts.sampleRate, "rate", 48000, "sample rate in Hz")
	flag.IntVar(&opts.blockSize, "block", 512, "block size in samples")
	flag.IntVar(&opts.channels, "channels", 2, "number of channels")
	flag.StringVar(&opts.input, "input", "burst", "sidechain signal: sine, noise, step, burst, silence")
	flag.Float64Var(&opts.inputFreq, "input-freq", 220, "sidechain tone frequency in Hz")
	flag.Float64Var(&opts.inputLevel, "input-level", 0.5, "sidechain peak amplitude")
	flag.Float64Var(&opts.duration, "duration", 1, "rendered length in seconds")
	flag.Float64Var(&opts.pitch, "pitch", 440, "sub-oscillator pitch in Hz (10..2000)")
	flag.Float64Var(&opts.gainDB, "gain-db", 0, "post gain in dB (max +6)")
	flag.IntVar(&opts.channel, "channel", 0, "output channel, 0 mixes into all (0..10)")
	flag.IntVar(&opts.harmonics, "harmonics", 3, "sawtooth partials")
	flag.Float64Var(&opts.attackMs, "attack", 10, "envelope attack in ms")
	flag.Float64Var(&opts.releaseMs, "release", 10, "envelope release in ms")
	flag.BoolVar(&opts.restartPhase, "restart-phase", false, "restart the oscillator phase every block")
	flag.IntVar(&opts.every, "every", 8, "print every n-th block")
	info := flag.Bool("info", false, "print SIMD capabilities and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: subosc-render [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders a test sidechain through the envelope-driven sub-oscillator.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *info {
		if err := printInfo(os.Stdout); err != nil {
			logger.Fatal(err)
		}
		return
	}

	if err := run(opts, os.Stdout); err != nil {
		logger.Fatal(err)
	}
}
