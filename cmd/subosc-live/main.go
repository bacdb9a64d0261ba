// Command subosc-live runs the sub-oscillator on a live duplex audio device.
//
// The capture side is the sidechain; the playback side carries the processed
// block. A meter line is printed until the process is interrupted.
//
// Usage:
//
//	subosc-live [flags]
//
// Examples:
//
//	subosc-live -pitch 55 -gain-db -6
//	subosc-live -channels 1 -period 128 -release 80
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/cwbudde/algo-subosc/dsp/subosc"
	"github.com/gen2brain/malgo"
)

func main() {
	logger := log.New(os.Stderr, "[subosc-live] ", log.LstdFlags)

	sampleRate := flag.Uint("rate", 48000, "device sample rate in Hz")
	channels := flag.Uint("channels", 2, "capture and playback channels")
	period := flag.Uint("period", 256, "device period in frames")
	pitch := flag.Float64("pitch", 440, "sub-oscillator pitch in Hz (10..2000)")
	gainDB := flag.Float64("gain-db", 0, "post gain in dB (max +6)")
	channel := flag.Int("channel", 0, "output channel, 0 mixes into all (0..10)")
	harmonics := flag.Int("harmonics", 3, "sawtooth partials")
	attack := flag.Float64("attack", 10, "envelope attack in ms")
	release := flag.Float64("release", 10, "envelope release in ms")
	refresh := flag.Duration("refresh", 100*time.Millisecond, "meter refresh interval")
	flag.Parse()

	if *channels == 0 || *period == 0 {
		logger.Fatalf("channels and period must be > 0: %d/%d", *channels, *period)
	}

	engine, err := subosc.New(float64(*sampleRate),
		subosc.WithPitch(*pitch),
		subosc.WithPostGainDB(*gainDB),
		subosc.WithOutputChannel(*channel),
		subosc.WithHarmonics(*harmonics),
		subosc.WithAttack(*attack),
		subosc.WithRelease(*release),
		subosc.WithMaxBlockSize(int(*period)),
		subosc.WithChannels(int(*channels)),
	)
	if err != nil {
		logger.Fatal(err)
	}

	host := newDuplexHost(engine, int(*channels), int(*period))

	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		logger.Fatalf("init audio context: %v", err)
	}
	defer mctx.Free()

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Duplex)
	deviceConfig.Capture.Format = malgo.FormatF32
	deviceConfig.Capture.Channels = uint32(*channels)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = uint32(*channels)
	deviceConfig.SampleRate = uint32(*sampleRate)
	deviceConfig.PeriodSizeInFrames = uint32(*period)

	device, err := malgo.InitDevice(mctx.Context, deviceConfig, malgo.DeviceCallbacks{Data: host.process})
	if err != nil {
		logger.Fatalf("init duplex device: %v", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		logger.Fatalf("start device: %v", err)
	}

	enableVirtualTerminal()
	logger.Printf("running at %d Hz, %d channels, %d frame periods; Ctrl+C to stop", *sampleRate, *channels, *period)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ticker := time.NewTicker(*refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			if n := host.Errors(); n > 0 {
				logger.Printf("%d callbacks failed", n)
			}
			return
		case <-ticker.C:
			fmt.Print("\r\x1b[2K" + host.MeterLine())
		}
	}
}
