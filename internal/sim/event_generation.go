package sim

// generateBallBallEvents predicts collisions between ball and every ball
// named in otherIDs (self excluded), logging one CollisionCheck or
// EventCreated diagnostic per candidate pair, matching
// generate_ball_ball_events.
func generateBallBallEvents(balls []*Ball, ball *Ball, otherIDs []int, currentTime float64, ndim int, gravity bool, diag Diagnostics) []*Event {
	var events []*Event
	for _, otherID := range otherIDs {
		if otherID == ball.ID {
			continue
		}
		other := balls[otherID]
		t, ok := predictBallBall(ball, other, currentTime, ndim, gravity)
		if ok {
			events = append(events, &Event{
				Kind:  KindBallBall,
				Time:  t,
				Ball1: ball.ID,
				Ball2: otherID,
				Gen1:  ball.Generation,
				Gen2:  other.Generation,
			})
			diag.EventCreated(diagFields{
				"created_event": "BallBallCollision",
				"time":          t,
				"ball1":         ball.ID,
				"ball2":         otherID,
			}.toLog())
		} else {
			diag.CollisionCheck(diagFields{
				"result":       "no_collision",
				"ball1":        ball.ID,
				"ball2":        otherID,
				"current_time": currentTime,
			}.toLog())
		}
	}
	return events
}

// generateBallWallEvents predicts ball-wall collisions against every wall,
// matching generate_ball_wall_events.
func generateBallWallEvents(ball *Ball, walls []Wall, currentTime float64, ndim int, gravity bool, diag Diagnostics) []*Event {
	var events []*Event
	for idx, w := range walls {
		t, ok := predictBallWall(ball, w, currentTime, ndim, gravity)
		if ok {
			events = append(events, &Event{
				Kind:    KindBallWall,
				Time:    t,
				Ball:    ball.ID,
				WallIdx: idx,
				Gen:     ball.Generation,
			})
			diag.EventCreated(diagFields{
				"created_event": "BallWallCollision",
				"time":          t,
				"ball":          ball.ID,
				"wall_axis":     w.NormalAxis,
				"wall_coord":    w.Coordinate,
			}.toLog())
		}
	}
	return events
}

// generateTransitEvent predicts the one earliest cell-boundary crossing for
// ball, matching generate_ball_grid_event.
func generateTransitEvent(ball *Ball, currentTime float64, ndim int, gravity bool, diag Diagnostics) []*Event {
	t, newCell, ok := predictTransit(ball, currentTime, ndim, gravity, 1.0)
	if !ok {
		return nil
	}
	diag.EventCreated(diagFields{
		"created_event": "BallGridTransit",
		"time":          t,
		"ball":          ball.ID,
		"from_cell":     ball.Cell,
		"to_cell":       newCell,
	}.toLog())
	return []*Event{{
		Kind:    KindBallTransit,
		Time:    t,
		Ball:    ball.ID,
		Gen:     ball.Generation,
		NewCell: newCell,
	}}
}

// generateEventsForBall generates all three event kinds for ball using the
// full cell-neighborhood for ball-ball candidates, matching
// generate_events_for_ball. Used whenever a ball's velocity has changed.
func generateEventsForBall(balls []*Ball, ball *Ball, walls []Wall, grid *Grid, currentTime float64, ndim int, gravity bool, diag Diagnostics) []*Event {
	neighborIDs := grid.neighbors(ball.Cell)
	diag.EventGeneration(diagFields{
		"ball":         ball.ID,
		"cell":         ball.Cell,
		"current_time": currentTime,
		"neighbors":    neighborIDs,
	}.toLog())

	var events []*Event
	events = append(events, generateBallBallEvents(balls, ball, neighborIDs, currentTime, ndim, gravity, diag)...)
	events = append(events, generateBallWallEvents(ball, walls, currentTime, ndim, gravity, diag)...)
	events = append(events, generateTransitEvent(ball, currentTime, ndim, gravity, diag)...)
	return events
}

// diagFields is a small literal-friendly alias kept local to this file so
// call sites above read like the original JSON log entries.
type diagFields map[string]any

func (f diagFields) toLog() map[string]any { return f }
