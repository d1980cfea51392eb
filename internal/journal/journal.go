// Package journal records the inputs that drive a simulation so a session
// can be saved and replayed deterministically.
//
// Every event carries the number of ticks already run when it arrived; on
// replay it is applied before the next tick, exactly where the live host
// applied it.
package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// ErrDiverged is returned when a replay does not end where the recording did.
var ErrDiverged = errors.New("journal: replay diverged from recording")

// Kind classifies an event.
type Kind string

const (
	KindPress   Kind = "press"
	KindRelease Kind = "release"
	KindResize  Kind = "resize"
)

// Event is one recorded input.
type Event struct {
	Tick      uint64
	Kind      Kind
	Direction physics.Direction // press and release
	W, H      float64           // resize
}

// Session is a finished or in-progress recording.
type Session struct {
	ID            string
	Frontend      string
	WorldYAML     []byte
	Policy        string
	JumpRule      string
	Viewport      physics.Viewport // viewport the world was built for
	Ticks         uint64
	FinalPosition physics.Vec2
	FinalVelocity physics.Vec2
	Events        []Event
	CreatedAt     time.Time
}

// Recorder drives a simulation and journals every input it forwards.
type Recorder struct {
	sim     *physics.Simulation
	session Session
}

// NewRecorder builds a simulation from cfg for the given viewport and starts
// a new session with a fresh id.
func NewRecorder(cfg config.WorldConfig, vp physics.Viewport, frontend string) (*Recorder, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	return &Recorder{
		sim: physics.NewSimulation(cfg.World(vp.H), vp, opts),
		session: Session{
			ID:        uuid.NewString(),
			Frontend:  frontend,
			WorldYAML: data,
			Policy:    cfg.Physics.Collision,
			JumpRule:  opts.JumpRule.String(),
			Viewport:  vp,
			CreatedAt: time.Now(),
		},
	}, nil
}

// Simulation returns the recorded simulation for render queries.
func (r *Recorder) Simulation() *physics.Simulation {
	return r.sim
}

// SetMovement forwards a key-down.
func (r *Recorder) SetMovement(d physics.Direction) {
	r.record(Event{Kind: KindPress, Direction: d})
	r.sim.SetMovement(d)
}

// ClearMovement forwards a key-up.
func (r *Recorder) ClearMovement(d physics.Direction) {
	r.record(Event{Kind: KindRelease, Direction: d})
	r.sim.ClearMovement(d)
}

// Advance runs one tick, recording a resize first if the viewport changed.
func (r *Recorder) Advance(width, height float64) {
	if vp := r.sim.Viewport(); vp.W != width || vp.H != height {
		r.record(Event{Kind: KindResize, W: width, H: height})
	}
	r.sim.Advance(width, height)
}

func (r *Recorder) record(e Event) {
	e.Tick = r.sim.Ticks()
	r.session.Events = append(r.session.Events, e)
}

// Session returns a snapshot of the recording including the current final
// state.
func (r *Recorder) Session() Session {
	s := r.session
	s.Events = append([]Event(nil), r.session.Events...)
	p := r.sim.Player()
	s.Ticks = r.sim.Ticks()
	s.FinalPosition = p.Position
	s.FinalVelocity = p.Velocity
	return s
}

// Replay rebuilds the session's world and reapplies its events, running the
// same number of ticks.
func Replay(s Session) (*physics.Simulation, error) {
	cfg, err := config.Parse(s.WorldYAML)
	if err != nil {
		return nil, fmt.Errorf("journal: cannot parse world: %w", err)
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}

	sim := physics.NewSimulation(cfg.World(s.Viewport.H), s.Viewport, opts)
	next := 0
	apply := func(tick uint64) {
		for next < len(s.Events) && s.Events[next].Tick == tick {
			e := s.Events[next]
			switch e.Kind {
			case KindPress:
				sim.SetMovement(e.Direction)
			case KindRelease:
				sim.ClearMovement(e.Direction)
			case KindResize:
				sim.SetViewport(physics.Viewport{W: e.W, H: e.H})
			}
			next++
		}
	}

	for t := uint64(0); t < s.Ticks; t++ {
		apply(t)
		sim.Tick()
	}
	apply(s.Ticks)
	return sim, nil
}

// Verify replays the session and checks it ends in the recorded state.
func Verify(s Session) (physics.Player, error) {
	sim, err := Replay(s)
	if err != nil {
		return physics.Player{}, err
	}
	p := sim.Player()
	if p.Position != s.FinalPosition || p.Velocity != s.FinalVelocity {
		return p, fmt.Errorf("%w: ended at %+v moving %+v, recorded %+v moving %+v",
			ErrDiverged, p.Position, p.Velocity, s.FinalPosition, s.FinalVelocity)
	}
	return p, nil
}
