package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
)

// ArchiverConfig configures background archiving of hand records.
type ArchiverConfig struct {
	Dir              string
	Filename         string
	FlushInterval    time.Duration
	FlushHands       int
	IncludeHoleCards bool
}

// Archiver buffers completed hand records and appends their transcripts to a
// session file. Flushing happens on an interval, when the buffer fills, and
// on Close. Three consecutive write failures disable the archiver and drop
// its buffer rather than stall the match.
type Archiver struct {
	cfg     ArchiverConfig
	logger  zerolog.Logger
	clock   quartz.Clock
	outPath string

	mu                  sync.Mutex
	flushMu             sync.Mutex
	buffer              []HandRecord
	consecutiveFailures int
	disabled            bool

	flushReq chan struct{}
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewArchiver creates the output directory and starts the flush loop.
func NewArchiver(logger zerolog.Logger, clock quartz.Clock, cfg ArchiverConfig) (*Archiver, error) {
	if cfg.Dir == "" {
		cfg.Dir = "hands"
	}
	if cfg.Filename == "" {
		cfg.Filename = "session.log"
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 10 * time.Second
	}
	if cfg.FlushHands <= 0 {
		cfg.FlushHands = 100
	}
	if clock == nil {
		clock = quartz.NewReal()
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("history: create dir: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &Archiver{
		cfg:      cfg,
		logger:   logger,
		clock:    clock,
		outPath:  filepath.Join(cfg.Dir, cfg.Filename),
		buffer:   make([]HandRecord, 0, cfg.FlushHands),
		flushReq: make(chan struct{}, 1),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go a.run(ctx)
	return a, nil
}

// Record buffers one completed hand. Filling the buffer requests an async
// flush; Record itself never blocks on the filesystem.
func (a *Archiver) Record(rec HandRecord) {
	a.mu.Lock()
	if a.disabled {
		a.mu.Unlock()
		return
	}
	a.buffer = append(a.buffer, rec)
	full := len(a.buffer) >= a.cfg.FlushHands
	a.mu.Unlock()

	if full {
		a.requestFlush()
	}
}

// Close stops the flush loop and writes out anything still buffered.
func (a *Archiver) Close() error {
	a.cancel()
	<-a.done
	return a.flushAndReport()
}

// Disabled reports whether archiving was shut off after repeated failures.
func (a *Archiver) Disabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.disabled
}

func (a *Archiver) run(ctx context.Context) {
	defer close(a.done)

	ticker := a.clock.TickerFunc(ctx, a.cfg.FlushInterval, func() error {
		_ = a.flushAndReport()
		return nil
	}, "archiver", "flush")

	for {
		select {
		case <-a.flushReq:
			_ = a.flushAndReport()
		case <-ctx.Done():
			_ = ticker.Wait()
			return
		}
	}
}

func (a *Archiver) requestFlush() {
	select {
	case a.flushReq <- struct{}{}:
	default:
	}
}

func (a *Archiver) flushAndReport() error {
	err := a.flush()
	if err != nil {
		a.logger.Error().Err(err).Msg("hand archive flush failed")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err == nil {
		a.consecutiveFailures = 0
		return nil
	}
	a.consecutiveFailures++
	if a.consecutiveFailures >= 3 && !a.disabled {
		dropped := len(a.buffer)
		a.buffer = nil
		a.disabled = true
		a.logger.Error().Int("dropped_hands", dropped).
			Msg("hand archiving disabled after repeated failures")
	}
	return err
}

func (a *Archiver) flush() error {
	a.flushMu.Lock()
	defer a.flushMu.Unlock()

	a.mu.Lock()
	if a.disabled || len(a.buffer) == 0 {
		a.mu.Unlock()
		return nil
	}
	records := append([]HandRecord(nil), a.buffer...)
	a.mu.Unlock()

	file, err := os.OpenFile(a.outPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	written := 0
	opts := TranscriptOpts{IncludeHoleCards: a.cfg.IncludeHoleCards}
	var writeErr error
	for _, rec := range records {
		if _, err := file.WriteString(Transcript(rec, opts) + "\n"); err != nil {
			writeErr = err
			break
		}
		written++
	}

	a.mu.Lock()
	if written >= len(a.buffer) {
		a.buffer = a.buffer[:0]
	} else {
		a.buffer = a.buffer[written:]
	}
	a.mu.Unlock()

	if writeErr != nil {
		return writeErr
	}
	return file.Sync()
}
