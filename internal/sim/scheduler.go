package sim

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Params holds the recognized simulation parameters (spec.md §6), already
// validated and defaulted by internal/config before reaching the scheduler.
type Params struct {
	NDim            int
	NumBalls        int
	BallRadius      float64
	DomainSize      Vec
	SimulationTime  float64
	Gravity         bool
	BallRestitution float64
	WallRestitution float64
	OutputRate      float64
	RandomSeed      int64
}

// ValidateParams aggregates every violated constraint instead of stopping
// at the first, matching validate_simulation_parameters.
func ValidateParams(p Params) error {
	var problems []string

	if p.NDim != 2 && p.NDim != 3 {
		problems = append(problems, "ndim must be 2 or 3")
	}
	if p.NumBalls <= 0 {
		problems = append(problems, "num_balls must be positive")
	}
	if p.BallRadius <= 0 {
		problems = append(problems, "ball_radius must be positive")
	}
	if p.BallRadius > 0.5 {
		problems = append(problems, fmt.Sprintf("ball_radius (%v) too large; maximum is 0.5 for the centered-in-cell placement policy", p.BallRadius))
	}
	if p.NDim == 2 || p.NDim == 3 {
		for axis := 0; axis < p.NDim; axis++ {
			if p.DomainSize[axis] <= 0 {
				problems = append(problems, "all domain_size values must be positive")
				break
			}
		}
	}
	if p.SimulationTime <= 0 {
		problems = append(problems, "simulation_time must be positive")
	}
	if p.BallRestitution < 0 || p.BallRestitution > 1 {
		problems = append(problems, "ball_restitution must be in [0, 1]")
	}
	if p.WallRestitution < 0 || p.WallRestitution > 1 {
		problems = append(problems, "wall_restitution must be in [0, 1]")
	}
	if p.OutputRate <= 0 {
		problems = append(problems, "output_rate must be positive")
	}

	if p.NDim == 2 || p.NDim == 3 {
		total := 1
		for axis := 0; axis < p.NDim; axis++ {
			total *= int(p.DomainSize[axis])
		}
		if p.NumBalls > total {
			problems = append(problems, fmt.Sprintf("too many balls (%d) for domain %v (%d cells)", p.NumBalls, p.DomainSize, total))
		}
	}

	if len(problems) > 0 {
		return &ConfigError{Violations: problems}
	}
	return nil
}

// Scheduler owns all simulation state: the balls, walls, grid, and event
// queue. Nothing outside Scheduler mutates any of it.
type Scheduler struct {
	params Params
	balls  []*Ball
	walls  []Wall
	grid   *Grid
	queue  *EventQueue
	output *OutputManager
	diag   Diagnostics

	currentTime  float64
	frameIndex   int
	grazeGuard   uint64
	eventCount   int
	shouldEnd    bool
}

// NewScheduler validates params, places balls (external policy, §6),
// builds the walls and grid, and enqueues the initial event set per the
// initialization protocol in spec.md §4.6.
func NewScheduler(params Params, output *OutputManager, diag Diagnostics) (*Scheduler, error) {
	if err := ValidateParams(params); err != nil {
		return nil, err
	}
	if diag == nil {
		diag = NopDiagnostics{}
	}

	balls, err := placeBalls(params.NDim, params.NumBalls, params.DomainSize, params.BallRadius, params.RandomSeed)
	if err != nil {
		return nil, err
	}

	walls := createBoxWalls(params.NDim, params.DomainSize, 0.01, params.WallRestitution)
	grid := newGrid(params.NDim, params.DomainSize)
	for _, b := range balls {
		grid.insert(b.ID, b.Cell)
	}

	s := &Scheduler{
		params: params,
		balls:  balls,
		walls:  walls,
		grid:   grid,
		queue:  newEventQueue(),
		output: output,
		diag:   diag,
	}

	s.initializeEvents()
	return s, nil
}

func (s *Scheduler) initializeEvents() {
	for _, b := range s.balls {
		higherIDs := s.grid.neighbors(b.Cell)
		filtered := higherIDs[:0:0]
		for _, id := range higherIDs {
			if id > b.ID {
				filtered = append(filtered, id)
			}
		}
		for _, e := range generateBallBallEvents(s.balls, b, filtered, 0, s.params.NDim, s.params.Gravity, s.diag) {
			s.queue.push(e)
		}
		for _, e := range generateBallWallEvents(b, s.walls, 0, s.params.NDim, s.params.Gravity, s.diag) {
			s.queue.push(e)
		}
		for _, e := range generateTransitEvent(b, 0, s.params.NDim, s.params.Gravity, s.diag) {
			s.queue.push(e)
		}
	}

	exportTime := 0.0
	for exportTime <= s.params.SimulationTime {
		s.queue.push(&Event{Kind: KindExport, Time: exportTime})
		exportTime += s.params.OutputRate
	}
	s.queue.push(&Event{Kind: KindEnd, Time: s.params.SimulationTime})

	s.diag.SimulationStart(log.Fields{
		"ndim":             s.params.NDim,
		"total_balls":      len(s.balls),
		"ball_radius":      s.params.BallRadius,
		"domain_size":      s.params.DomainSize,
		"simulation_time":  s.params.SimulationTime,
		"gravity":          s.params.Gravity,
		"ball_restitution": s.params.BallRestitution,
		"wall_restitution": s.params.WallRestitution,
		"output_rate":      s.params.OutputRate,
	})
}

// GrazeGuardCount reports how many times a resolver's separating-velocity
// guard fired during the run (spec.md §9, second Open Question).
func (s *Scheduler) GrazeGuardCount() uint64 { return s.grazeGuard }

// Run drives the scheduler's main loop to completion, returning a fatal
// error if the overlap invariant is ever violated.
func (s *Scheduler) Run() error {
	for {
		e := s.queue.popNextValid(s.balls)
		if e == nil {
			break
		}
		s.currentTime = e.Time
		s.eventCount++

		if s.eventCount%1000 == 0 {
			s.diag.ProcessingEvent(log.Fields{
				"event_count": s.eventCount,
				"time":        s.currentTime,
				"kind":        e.Kind,
			})
		}

		if err := s.dispatch(e); err != nil {
			return err
		}
		if s.shouldEnd {
			break
		}
	}

	s.diag.SimulationComplete(log.Fields{
		"total_events_processed": s.eventCount,
		"final_time":             s.currentTime,
		"target_time":            s.params.SimulationTime,
		"graze_guard_count":      s.grazeGuard,
	})
	return nil
}

func (s *Scheduler) dispatch(e *Event) error {
	switch e.Kind {
	case KindBallBall:
		return s.dispatchBallBall(e)
	case KindBallWall:
		return s.dispatchBallWall(e)
	case KindBallTransit:
		s.dispatchTransit(e)
		return nil
	case KindExport:
		return s.dispatchExport(e)
	case KindEnd:
		s.shouldEnd = true
		return nil
	default:
		return nil
	}
}

func (s *Scheduler) dispatchBallBall(e *Event) error {
	b1, b2 := s.balls[e.Ball1], s.balls[e.Ball2]
	ndim, gravity := s.params.NDim, s.params.Gravity

	b1.advance(e.Time, ndim, gravity)
	b2.advance(e.Time, ndim, gravity)

	resolveBallBall(b1, b2, s.params.BallRestitution, &s.grazeGuard)

	// Every event mentioning either participant is stale the instant this
	// one is processed (spec.md §4.6); the generation bump is the
	// lazy-invalidation mechanism for that (see event.go).
	b1.bumpGeneration()
	b2.bumpGeneration()

	newEvents := generateEventsForBall(s.balls, b1, s.walls, s.grid, e.Time, ndim, gravity, s.diag)
	newEvents = append(newEvents, generateEventsForBall(s.balls, b2, s.walls, s.grid, e.Time, ndim, gravity, s.diag)...)
	for _, ne := range newEvents {
		s.queue.push(ne)
	}
	return nil
}

func (s *Scheduler) dispatchBallWall(e *Event) error {
	b := s.balls[e.Ball]
	w := s.walls[e.WallIdx]
	ndim, gravity := s.params.NDim, s.params.Gravity

	b.advance(e.Time, ndim, gravity)
	resolveBallWall(b, w, &s.grazeGuard)
	b.bumpGeneration()

	newEvents := generateEventsForBall(s.balls, b, s.walls, s.grid, e.Time, ndim, gravity, s.diag)
	for _, ne := range newEvents {
		s.queue.push(ne)
	}
	return nil
}

func (s *Scheduler) dispatchTransit(e *Event) {
	b := s.balls[e.Ball]
	oldCell := b.Cell
	b.Cell = e.NewCell
	s.grid.move(b.ID, oldCell, e.NewCell)

	ndim, gravity := s.params.NDim, s.params.Gravity

	incomingIDs := s.grid.incomingNeighbors(oldCell, e.NewCell)
	for _, e2 := range generateBallBallEvents(s.balls, b, incomingIDs, e.Time, ndim, gravity, s.diag) {
		s.queue.push(e2)
	}
	for _, e2 := range generateTransitEvent(b, e.Time, ndim, gravity, s.diag) {
		s.queue.push(e2)
	}
}

func (s *Scheduler) dispatchExport(e *Event) error {
	ndim, gravity := s.params.NDim, s.params.Gravity

	if violation := checkOverlap(s.balls, e.Time, ndim, gravity); violation != nil {
		return violation
	}

	positions := make([]Vec, len(s.balls))
	velocities := make([]Vec, len(s.balls))
	for i, b := range s.balls {
		p, v := b.peek(e.Time, ndim, gravity)
		positions[i] = p
		velocities[i] = v
	}

	if s.output != nil {
		s.output.WriteFrame(s.frameIndex, e.Time, ndim, positions, velocities)
	}
	s.frameIndex++
	return nil
}
