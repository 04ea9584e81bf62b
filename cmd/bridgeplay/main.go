// SPDX-License-Identifier: EPL-2.0

// Command bridgeplay plays an audio file through a bridge session driven by
// a simulated host clock. With -out the session runs duplex and the host
// loops its output back as input, which is recorded to a WAV file.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ik5/audbridge/audio"
	"github.com/ik5/audbridge/bridge"
	"github.com/ik5/audbridge/formats/aiff"
	"github.com/ik5/audbridge/formats/mp3"
	"github.com/ik5/audbridge/formats/vorbis"
	"github.com/ik5/audbridge/formats/wav"
	"github.com/ik5/audbridge/host"
	"github.com/ik5/audbridge/render"
	"github.com/ik5/audbridge/shm"
	"github.com/ik5/audbridge/stream"
)

func main() {
	var (
		inFile   = flag.String("in", "", "Audio file to play (wav, mp3, ogg, aiff)")
		outFile  = flag.String("out", "", "Record the looped-back input to this WAV file")
		frames   = flag.Int("frames", bridge.DefaultFrames, "Frames per quantum")
		channels = flag.Int("channels", 0, "Session channels (default: the file's)")
		policy   = flag.String("policy", "repeat", "Underrun policy: repeat or silence")
		bits     = flag.Int("bits", 16, "Recording bit depth (16, 24 or 32)")
		monitor  = flag.Bool("monitor", false, "Show a live stats monitor")
		verbose  = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "usage: bridgeplay -in <file> [-out capture.wav] [-monitor]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	log, err := newLogger(*verbose, *monitor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	bridge.SetLogger(log)
	stream.SetLogger(log)

	if err := run(log, options{
		in:       *inFile,
		out:      *outFile,
		frames:   *frames,
		channels: *channels,
		policy:   *policy,
		bits:     *bits,
		monitor:  *monitor,
	}); err != nil {
		log.Error("bridgeplay failed", zap.Error(err))
		os.Exit(1)
	}
}

type options struct {
	in, out  string
	frames   int
	channels int
	policy   string
	bits     int
	monitor  bool
}

func newLogger(verbose, quiet bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	if quiet {
		// The monitor owns the terminal.
		cfg.Level.SetLevel(zapcore.ErrorLevel)
	}
	return cfg.Build()
}

func decoders() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	return r
}

func run(log *zap.Logger, opts options) error {
	pol, err := render.ParsePolicy(opts.policy)
	if err != nil {
		return err
	}

	registry := decoders()
	dec, ok := registry.ForPath(opts.in)
	if !ok {
		return fmt.Errorf("no decoder for %s (known: %v)", opts.in, registry.Formats())
	}

	file, err := os.Open(opts.in)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer file.Close()

	var src audio.Source
	src, err = dec.Decode(file)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", opts.in, err)
	}
	defer src.Close()

	if opts.channels > 0 && opts.channels != src.Channels() {
		src, err = audio.NewChannelMapper(src, opts.channels)
		if err != nil {
			return err
		}
	}
	pump := stream.NewSourcePump(src)

	cfg := bridge.Config{
		Direction:      bridge.Output,
		SampleRate:     src.SampleRate(),
		Frames:         opts.frames,
		OutputChannels: src.Channels(),
		Policy:         pol,
	}
	cb := stream.Callbacks{Output: pump.Fill}

	var rec *wav.Recorder
	if opts.out != "" {
		out, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("%w", err)
		}
		defer out.Close()

		rec, err = wav.NewRecorder(out, src.SampleRate(), src.Channels(), opts.bits)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.Error("finalizing recording", zap.Error(err))
			}
		}()

		cfg.Direction = bridge.Duplex
		cfg.InputChannels = src.Channels()
		cb.Input = func(in *shm.Batch) { _ = rec.WriteBuffer(in.Buffer()) }
	}

	var level peakMeter
	clock := host.NewClock(
		host.WithSink(level.observe),
		host.WithLoopback(),
		host.WithClockLogger(log),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	b, err := bridge.New(cfg, clock, cb, bridge.WithLogger(log), bridge.WithContext(ctx))
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			log.Error("closing session", zap.Error(err))
		}
	}()

	if err := b.Start(); err != nil {
		return err
	}
	log.Info("playing",
		zap.String("file", opts.in),
		zap.String("session", b.ID().String()),
		zap.Stringer("direction", cfg.Direction),
	)

	if opts.monitor {
		m := newMonitor(b, &level, pump.Done(), opts.in)
		if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil && ctx.Err() == nil {
			return fmt.Errorf("monitor: %w", err)
		}
	} else {
		select {
		case <-pump.Done():
			// Let the last batch reach the host.
			time.Sleep(2 * host.StreamInfo{SampleRate: cfg.SampleRate, Frames: cfg.Frames}.Period())
		case <-ctx.Done():
			log.Info("interrupted")
		}
	}

	if err := pump.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", opts.in, err)
	}
	if rec != nil {
		if err := rec.Err(); err != nil {
			return err
		}
	}

	st := b.Stats()
	log.Info("finished",
		zap.Uint64("quanta", st.Quanta),
		zap.Uint64("batches", st.Batches),
		zap.Uint64("captures", st.Captures),
		zap.Uint64("underruns", st.Underruns),
		zap.Uint64("overruns", st.Overruns),
	)
	return nil
}

// peakMeter holds the absolute peak of the latest output quantum.
type peakMeter struct {
	bits atomic.Uint32
}

func (p *peakMeter) observe(out []float32) {
	var peak float32
	for _, v := range out {
		if v < 0 {
			v = -v
		}
		peak = max(peak, v)
	}
	p.bits.Store(math.Float32bits(peak))
}

func (p *peakMeter) load() float32 {
	return math.Float32frombits(p.bits.Load())
}
