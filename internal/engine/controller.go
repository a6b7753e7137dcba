package engine

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// ErrControllerStopped is returned by queries made after Run has returned.
var ErrControllerStopped = errors.New("engine: controller stopped")

// RunSummary describes a finished game. It is passed to the game-over hook.
type RunSummary struct {
	Generation uint64
	Seed       int64
	Lines      int
	Pieces     int
	SpeedUps   int
	Duration   time.Duration
	EndedAt    time.Time
}

type requestKind uint8

const (
	reqCommand requestKind = iota
	reqRestart
	reqPause
	reqSnapshot
)

type request struct {
	kind  requestKind
	cmd   Command
	seed  int64
	pause bool
	reply chan Snapshot
}

// deadline is a one-shot timer that can be paused and resumed without
// losing the time already elapsed.
type deadline struct {
	timer     *time.Timer
	due       time.Time
	remaining time.Duration
	held      bool
}

func (d *deadline) start(after time.Duration) {
	d.stop()
	d.timer = time.NewTimer(after)
	d.due = time.Now().Add(after)
}

func (d *deadline) stop() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.held = false
}

func (d *deadline) hold() {
	if d.timer == nil {
		return
	}
	d.remaining = max(0, time.Until(d.due))
	d.timer.Stop()
	d.timer = nil
	d.held = true
}

func (d *deadline) release() {
	if d.held {
		d.start(d.remaining)
	}
}

// C returns the timer channel, or nil when the timer is not running so a
// select case on it never fires.
func (d *deadline) C() <-chan time.Time {
	if d.timer == nil {
		return nil
	}
	return d.timer.C
}

// Controller runs a Game on a single goroutine. The drop timer, the
// speed-up timer and player requests are serialized through one select
// loop, so the game state has exactly one writer.
type Controller struct {
	game       *Game
	logger     *log.Logger
	onGameOver func(RunSummary)
	clock      func() time.Time

	requests chan request
	done     chan struct{}

	drop      deadline
	speed     deadline
	startedAt time.Time
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *log.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithGameOverHook registers a function called on the controller goroutine
// each time a game ends.
func WithGameOverHook(f func(RunSummary)) ControllerOption {
	return func(c *Controller) {
		c.onGameOver = f
	}
}

// NewController wraps game. Run must be called to start the timers.
func NewController(game *Game, opts ...ControllerOption) *Controller {
	c := &Controller{
		game:     game,
		logger:   log.New(io.Discard),
		clock:    time.Now,
		requests: make(chan request, 64),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run drives the game until ctx is cancelled. It returns nil on cancellation.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.done)
	defer c.drop.stop()
	defer c.speed.stop()

	c.arm()
	c.logger.Info("game started", "generation", c.game.Generation(), "seed", c.game.Seed())

	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("controller stopped")
			return nil

		case <-c.drop.C():
			c.drop.timer = nil
			out := c.game.Tick()
			c.after(out)

		case <-c.speed.C():
			c.speed.timer = nil
			if c.game.SpeedUp() {
				c.logger.Debug("speed up", "interval", c.game.DropInterval(), "step", c.game.Status().SpeedUps)
			}
			c.armSpeed()

		case req := <-c.requests:
			c.handle(req)
		}
	}
}

func (c *Controller) handle(req request) {
	switch req.kind {
	case reqCommand:
		out := c.game.Apply(req.cmd)
		if out.Locked || out.GameOver {
			c.after(out)
		}

	case reqRestart:
		c.drop.stop()
		c.speed.stop()
		c.game.Restart(req.seed)
		c.arm()
		c.logger.Info("game restarted", "generation", c.game.Generation(), "seed", req.seed)

	case reqPause:
		if c.game.Phase() != PhaseFalling || c.game.Paused() == req.pause {
			return
		}
		c.game.SetPaused(req.pause)
		if req.pause {
			c.drop.hold()
			c.speed.hold()
		} else {
			c.drop.release()
			c.speed.release()
		}
		c.logger.Debug("pause", "paused", req.pause)

	case reqSnapshot:
		req.reply <- c.game.Snapshot()
	}
}

// after re-arms the drop timer with the current interval, or stops both
// timers once the game is over.
func (c *Controller) after(out Outcome) {
	if out.Cleared > 0 {
		c.logger.Debug("rows cleared", "rows", out.Cleared, "lines", c.game.Stats().Lines)
	}
	if out.GameOver {
		c.drop.stop()
		c.speed.stop()
		c.finish()
		return
	}
	c.drop.start(c.game.DropInterval())
}

func (c *Controller) arm() {
	c.startedAt = c.clock()
	if c.game.Phase() != PhaseFalling {
		return
	}
	c.drop.start(c.game.DropInterval())
	c.armSpeed()
}

func (c *Controller) armSpeed() {
	t := c.game.Config().Timing
	if t.SpeedUpPeriod > 0 && t.DropIntervalDecrease > 0 {
		c.speed.start(t.SpeedUpPeriod)
	}
}

func (c *Controller) finish() {
	st := c.game.Status()
	now := c.clock()
	summary := RunSummary{
		Generation: st.Generation,
		Seed:       st.Seed,
		Lines:      st.Lines,
		Pieces:     st.Pieces,
		SpeedUps:   st.SpeedUps,
		Duration:   now.Sub(c.startedAt),
		EndedAt:    now,
	}
	c.logger.Info("game over",
		"generation", summary.Generation,
		"lines", summary.Lines,
		"pieces", summary.Pieces,
		"duration", summary.Duration.Round(time.Second),
	)
	if c.onGameOver != nil {
		c.onGameOver(summary)
	}
}

func (c *Controller) send(req request) bool {
	select {
	case c.requests <- req:
		return true
	case <-c.done:
		return false
	}
}

// Submit queues a player command. It returns false once Run has exited.
func (c *Controller) Submit(cmd Command) bool {
	if cmd == CommandNone {
		return true
	}
	return c.send(request{kind: reqCommand, cmd: cmd})
}

// Restart replaces the game state and both timers in one step.
func (c *Controller) Restart(seed int64) bool {
	return c.send(request{kind: reqRestart, seed: seed})
}

// SetPaused pauses or resumes the game. Time already elapsed towards the
// next drop and the next speed-up is kept across a pause.
func (c *Controller) SetPaused(paused bool) bool {
	return c.send(request{kind: reqPause, pause: paused})
}

// Snapshot returns a copy of the game state taken on the controller goroutine.
func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	select {
	case c.requests <- request{kind: reqSnapshot, reply: reply}:
	case <-c.done:
		return Snapshot{}, ErrControllerStopped
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
	select {
	case s := <-reply:
		return s, nil
	case <-c.done:
		return Snapshot{}, ErrControllerStopped
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Done is closed when Run returns.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}
