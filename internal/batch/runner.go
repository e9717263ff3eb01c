package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"coverpress/internal/encode"
	"coverpress/internal/logger"
	"coverpress/internal/match"
	"coverpress/internal/pcm"
	"coverpress/internal/tag"
)

// ErrRunActive is returned by Run while another run is in progress. The
// active run is not disturbed.
var ErrRunActive = errors.New("a run is already active")

// State of a run. Transitions: idle -> running -> completed | aborted.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateAborted   State = "aborted"
)

// Status is a point-in-time snapshot of the runner. Stage is advisory,
// human-readable progress text, not a state machine of its own.
type Status struct {
	State     State
	Stage     string
	Processed int // pairings fully delivered so far
	Total     int // matched pairings in this run
	RunID     string
	Err       error // set when State is StateAborted
}

// StatusFunc observes status snapshots as they change. It is called on
// the run's goroutine, after the runner's lock is released, so it may
// safely read Status() or publish to a Notifier.
type StatusFunc func(Status)

// RunnerConfig fixes the encoding and naming settings for every pairing
// a runner processes.
type RunnerConfig struct {
	BitrateKbps  int    // 0 means the encoder default
	OutputSuffix string // appended to the base name before ".mp3"
}

// Runner drives matched pairings through decode, encode, tag, deliver,
// strictly in order with one pairing active at a time. The first failure
// aborts the whole run; artifacts already delivered stay delivered.
type Runner struct {
	source pcm.Source
	sink   Sink
	cfg    RunnerConfig

	mu       sync.RWMutex
	active   bool
	status   Status
	statusFn StatusFunc
}

// NewRunner wires a runner to its decode source and output sink.
func NewRunner(source pcm.Source, sink Sink, cfg RunnerConfig) *Runner {
	return &Runner{
		source: source,
		sink:   sink,
		cfg:    cfg,
		status: Status{State: StateIdle},
	}
}

// SetStatusFunc registers an observer called after every status change.
func (r *Runner) SetStatusFunc(fn StatusFunc) {
	r.mu.Lock()
	r.statusFn = fn
	r.mu.Unlock()
}

// Status returns the current snapshot.
func (r *Runner) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Run processes every matched pairing in order. Pairings with status
// missing-image are skipped, not failed. Pairing N+1 never starts before
// N has fully completed. The first error from any stage aborts the run
// and is returned wrapped with the failing item's name; context
// cancellation aborts between pairings and between encode blocks.
func (r *Runner) Run(ctx context.Context, pairings []match.Pairing) error {
	matched := make([]match.Pairing, 0, len(pairings))
	for _, p := range pairings {
		if p.Status == match.StatusMatched {
			matched = append(matched, p)
		}
	}

	runID, err := r.begin(len(matched))
	if err != nil {
		return err
	}

	logger.Info("run started",
		logger.String("run_id", runID),
		logger.Int("matched", len(matched)),
		logger.Int("skipped", len(pairings)-len(matched)),
	)

	for i, p := range matched {
		if err := ctx.Err(); err != nil {
			return r.abort(runID, fmt.Errorf("run canceled: %w", err))
		}
		if err := r.process(ctx, runID, p, i+1, len(matched)); err != nil {
			return r.abort(runID, fmt.Errorf("%s: %w", p.Media.Name, err))
		}
		r.markDelivered()
	}

	r.complete(runID)
	return nil
}

// process carries one pairing through all four stages. Each pairing owns
// its PCM buffer and encoder instance; nothing is shared across pairings.
func (r *Runner) process(ctx context.Context, runID string, p match.Pairing, n, total int) error {
	name := p.Media.Name

	r.setStage(fmt.Sprintf("decoding %d/%d: %s", n, total, name))
	buf, err := r.source.Decode(ctx, p.Media.Path)
	if err != nil {
		return err
	}

	r.setStage(fmt.Sprintf("encoding %d/%d: %s", n, total, name))
	enc, err := encode.NewFrameEncoder(buf.Channels, buf.SampleRate, r.cfg.BitrateKbps)
	if err != nil {
		return err
	}
	stream, err := encode.EncodeBuffer(ctx, enc, buf)
	if err != nil {
		return err
	}

	r.setStage(fmt.Sprintf("tagging %d/%d: %s", n, total, name))
	artwork, err := p.Artwork.Bytes()
	if err != nil {
		return fmt.Errorf("read artwork %q: %w", p.Artwork.Name, err)
	}
	tagged, err := tag.Embed(stream, artwork, p.Artwork.MIME)
	if err != nil {
		return err
	}

	r.setStage(fmt.Sprintf("delivering %d/%d: %s", n, total, name))
	artifact := Artifact{
		SourceName: name,
		Name:       OutputName(name, r.cfg.OutputSuffix),
		Data:       tagged,
	}
	if err := r.sink.Deliver(ctx, artifact); err != nil {
		return fmt.Errorf("deliver %q: %w", artifact.Name, err)
	}

	logger.Info("artifact delivered",
		logger.String("run_id", runID),
		logger.String("item", name),
		logger.String("artifact", artifact.Name),
		logger.Int("bytes", len(artifact.Data)),
	)
	return nil
}

// begin claims the runner for a new run. A second run while one is
// active gets ErrRunActive.
func (r *Runner) begin(total int) (string, error) {
	r.mu.Lock()
	if r.active {
		r.mu.Unlock()
		return "", ErrRunActive
	}
	runID := uuid.NewString()
	r.active = true
	r.status = Status{State: StateRunning, Stage: "starting", Total: total, RunID: runID}
	st, fn := r.status, r.statusFn
	r.mu.Unlock()

	publish(st, fn)
	return runID, nil
}

func (r *Runner) setStage(stage string) {
	r.mu.Lock()
	r.status.Stage = stage
	st, fn := r.status, r.statusFn
	r.mu.Unlock()

	publish(st, fn)
}

func (r *Runner) markDelivered() {
	r.mu.Lock()
	r.status.Processed++
	st, fn := r.status, r.statusFn
	r.mu.Unlock()

	publish(st, fn)
}

func (r *Runner) complete(runID string) {
	r.mu.Lock()
	r.active = false
	r.status.State = StateCompleted
	r.status.Stage = ""
	st, fn := r.status, r.statusFn
	r.mu.Unlock()

	publish(st, fn)
	logger.Info("run completed",
		logger.String("run_id", runID),
		logger.Int("processed", st.Processed),
	)
}

func (r *Runner) abort(runID string, err error) error {
	r.mu.Lock()
	r.active = false
	r.status.State = StateAborted
	r.status.Err = err
	st, fn := r.status, r.statusFn
	r.mu.Unlock()

	publish(st, fn)
	logger.Error("run aborted",
		logger.String("run_id", runID),
		logger.String("stage", st.Stage),
		logger.Err(err),
	)
	return err
}

// publish fires the observer outside the runner's lock so observers may
// read Status() without deadlocking.
func publish(st Status, fn StatusFunc) {
	if fn != nil {
		fn(st)
	}
}
