package carousel

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"
)

type Speed string

const (
	SpeedNormal Speed = "normal"
	SpeedHover  Speed = "hover"
	SpeedPaused Speed = "paused"
)

// ResumeDelay is how long auto-scroll stays paused after the visitor
// scrolls the strip by hand.
const ResumeDelay = 3000 * time.Millisecond

var ErrAlreadyRunning = errors.New("scheduler already running")

type Config struct {
	// NormalStep and HoverStep are pixels advanced per frame.
	NormalStep float64
	HoverStep  float64
	LoopWidth  float64
}

func DefaultConfig() Config {
	return Config{NormalStep: 1, HoverStep: 0.3}
}

type Frame struct {
	Offset float64   `json:"offset"`
	Speed  Speed     `json:"speed"`
	At     time.Time `json:"at"`
}

// Scheduler holds the scroll offset and speed state of one strip. Step is
// the whole state machine; Run only calls it on a ticker.
type Scheduler struct {
	mu          sync.Mutex
	cfg         Config
	offset      float64
	hovering    bool
	pausedUntil time.Time
	running     bool

	stop     chan struct{}
	stopOnce sync.Once
}

func NewScheduler(cfg Config) *Scheduler {
	if cfg.NormalStep <= 0 {
		cfg.NormalStep = DefaultConfig().NormalStep
	}
	if cfg.HoverStep <= 0 || cfg.HoverStep > cfg.NormalStep {
		cfg.HoverStep = math.Min(DefaultConfig().HoverStep, cfg.NormalStep)
	}
	return &Scheduler{cfg: cfg, stop: make(chan struct{})}
}

// SetLoopWidth changes where the offset wraps, e.g. after the works list
// changed. A width of zero means there is nothing to scroll.
func (s *Scheduler) SetLoopWidth(width float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if width < 0 {
		width = 0
	}
	s.cfg.LoopWidth = width
	s.offset = s.wrap(s.offset)
}

func (s *Scheduler) Hover(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hovering = on
}

// UserScroll pauses auto-scroll until ResumeDelay after now. Another scroll
// during the pause pushes the deadline out.
func (s *Scheduler) UserScroll(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pausedUntil = now.Add(ResumeDelay)
}

func (s *Scheduler) Speed(now time.Time) Speed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speedLocked(now)
}

func (s *Scheduler) speedLocked(now time.Time) Speed {
	if !s.pausedUntil.IsZero() {
		if now.Before(s.pausedUntil) {
			return SpeedPaused
		}
		s.pausedUntil = time.Time{}
	}
	if s.hovering {
		return SpeedHover
	}
	return SpeedNormal
}

// Step advances one frame at now.
func (s *Scheduler) Step(now time.Time) Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	speed := s.speedLocked(now)
	switch speed {
	case SpeedNormal:
		s.offset = s.wrap(s.offset + s.cfg.NormalStep)
	case SpeedHover:
		s.offset = s.wrap(s.offset + s.cfg.HoverStep)
	}
	return Frame{Offset: s.offset, Speed: speed, At: now}
}

func (s *Scheduler) Offset() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset
}

func (s *Scheduler) wrap(offset float64) float64 {
	if s.cfg.LoopWidth <= 0 {
		return 0
	}
	return math.Mod(offset, s.cfg.LoopWidth)
}

// Acquire claims the frame loop for one caller. It fails with
// ErrAlreadyRunning while another caller holds it. The holder either calls
// RunAcquired or gives the claim back with Release.
func (s *Scheduler) Acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrAlreadyRunning
	}
	s.running = true
	return nil
}

func (s *Scheduler) Release() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// Run steps the scheduler every interval and hands each frame to onFrame.
// It returns when ctx is done, Stop is called or onFrame fails, and leaves
// no goroutine or ticker behind.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration, onFrame func(Frame) error) error {
	if err := s.Acquire(); err != nil {
		return err
	}
	return s.RunAcquired(ctx, interval, onFrame)
}

// RunAcquired is Run for a caller that already holds the claim. The claim
// is released on return.
func (s *Scheduler) RunAcquired(ctx context.Context, interval time.Duration, onFrame func(Frame) error) error {
	defer s.Release()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stop:
			return nil
		case now := <-ticker.C:
			if err := onFrame(s.Step(now)); err != nil {
				return err
			}
		}
	}
}

// Stop ends any current and future Run. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
