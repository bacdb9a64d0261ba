package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-subosc/dsp/buffer"
	"github.com/cwbudde/algo-subosc/dsp/core"
	"github.com/cwbudde/algo-subosc/dsp/signal"
	"github.com/cwbudde/algo-subosc/dsp/subosc"
	"github.com/cwbudde/algo-subosc/measure/harmonics"
	"github.com/cwbudde/algo-subosc/measure/meter"
)

const analysisSize = 8192

type renderOptions struct {
	sampleRate   float64
	blockSize    int
	channels     int
	input        string
	inputFreq    float64
	inputLevel   float64
	duration     float64
	pitch        float64
	gainDB       float64
	channel      int
	harmonics    int
	attackMs     float64
	releaseMs    float64
	restartPhase bool
	every        int
}

func run(opts renderOptions, w io.Writer) error {
	if opts.channels <= 0 {
		return fmt.Errorf("channels must be > 0: %d", opts.channels)
	}
	if opts.duration <= 0 || !core.IsFinite(opts.duration) {
		return fmt.Errorf("duration must be > 0 and finite: %f", opts.duration)
	}

	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(opts.sampleRate),
		core.WithBlockSize(opts.blockSize),
	)
	if cfg.SampleRate != opts.sampleRate || cfg.BlockSize != opts.blockSize {
		return fmt.Errorf("invalid rate/block: %f/%d", opts.sampleRate, opts.blockSize)
	}

	kind, err := signal.ParseKind(opts.input)
	if err != nil {
		return err
	}

	engine, err := subosc.New(cfg.SampleRate,
		subosc.WithPitch(opts.pitch),
		subosc.WithPostGainDB(opts.gainDB),
		subosc.WithOutputChannel(opts.channel),
		subosc.WithHarmonics(opts.harmonics),
		subosc.WithAttack(opts.attackMs),
		subosc.WithRelease(opts.releaseMs),
		subosc.WithMaxBlockSize(cfg.BlockSize),
		subosc.WithChannels(opts.channels),
		subosc.WithContinuousPhase(!opts.restartPhase),
	)
	if err != nil {
		return err
	}

	total := int(math.Round(opts.duration * cfg.SampleRate))
	gen := signal.NewGenerator(core.WithSampleRate(cfg.SampleRate), core.WithBlockSize(cfg.BlockSize))

	sidechain, err := gen.Generate(kind, opts.inputFreq, opts.inputLevel, total)
	if err != nil {
		return err
	}

	every := max(opts.every, 1)
	block := buffer.New(opts.channels, cfg.BlockSize)
	out := meter.New()
	blockMeter := meter.New()

	// The last analysisSize samples of the sub-oscillator signal.
	tail := make([]float64, 0, analysisSize)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Block\tTime [s]\tEnvelope\tSub Peak\tOut Peak [dB]\tOut RMS [dB]\n")
	fmt.Fprintf(tw, "-----\t--------\t--------\t--------\t-------------\t------------\n")

	blocks := cfg.Blocks(total)
	for b := range blocks {
		start := b * cfg.BlockSize
		end := min(start+cfg.BlockSize, total)

		block.Resize(end - start)
		for ch := range block.NumChannels() {
			copy(block.Channel(ch), sidechain[start:end])
		}

		if err := engine.Process(block.Slices()); err != nil {
			return err
		}

		first := block.Channel(0)
		out.Update(first)
		tail = appendTail(tail, engine.SubBlock(), analysisSize)

		blockMeter.Reset()
		blockMeter.Update(first)

		if b%every == 0 || b == blocks-1 {
			env, sub := engine.Meter()
			r := blockMeter.Result()
			fmt.Fprintf(tw, "%d\t%.3f\t%.4f\t%.4f\t%s\t%s\n",
				b, float64(start)/cfg.SampleRate, env, sub, formatDB(r.Peak_dB), formatDB(r.RMS_dB))
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	summary := out.Result()
	fmt.Fprintf(w, "\nchannel 1: peak %s dB, rms %s dB, crest %.2f\n",
		formatDB(summary.Peak_dB), formatDB(summary.RMS_dB), summary.CrestFactor)

	return printHarmonics(w, tail, cfg.SampleRate, engine)
}

func printHarmonics(w io.Writer, tail []float64, sampleRate float64, engine *subosc.Engine) error {
	if len(tail) == 0 {
		return nil
	}

	res, err := harmonics.Analyze(tail, harmonics.Config{
		SampleRate:   sampleRate,
		Fundamental:  engine.Pitch(),
		MaxHarmonics: engine.Harmonics() + 2,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nsub-oscillator harmonics, last %d samples (%d of %d partials below Nyquist):\n",
		len(tail), engine.EffectiveHarmonics(), engine.Harmonics())

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "k\tFreq [Hz]\tAmplitude\tLevel [dB]\n")
	for k := 1; k <= len(res.Amplitudes); k++ {
		a := res.Amplitude(k)
		fmt.Fprintf(tw, "%d\t%.1f\t%.5f\t%s\n", k, float64(k)*engine.Pitch(), a, formatDB(core.LinearToDB(a)))
	}
	fmt.Fprintf(tw, "THD\t\t%.5f\t%s\n", res.THD, formatDB(res.THD_dB))

	return tw.Flush()
}

// appendTail keeps the most recent limit samples of a stream in buf.
func appendTail(buf, samples []float64, limit int) []float64 {
	if len(samples) >= limit {
		buf = buf[:limit]
		copy(buf, samples[len(samples)-limit:])
		return buf
	}

	if overflow := len(buf) + len(samples) - limit; overflow > 0 {
		copy(buf, buf[overflow:])
		buf = buf[:len(buf)-overflow]
	}

	return append(buf, samples...)
}

func formatDB(db float64) string {
	if math.IsInf(db, -1) {
		return "-inf"
	}
	return fmt.Sprintf("%.1f", db)
}
