package sim

import log "github.com/sirupsen/logrus"

// Diagnostics receives one structured entry per notable scheduler/predictor
// event, reproducing the original engine's print(json.dumps(...)) call
// sites (event_generation.py, simulation.py) as logrus field sets instead
// of hand-rolled JSON. NewScheduler substitutes NopDiagnostics for a nil
// Diagnostics, which disables the stream entirely.
type Diagnostics interface {
	EventCreated(fields log.Fields)
	CollisionCheck(fields log.Fields)
	EventGeneration(fields log.Fields)
	ProcessingEvent(fields log.Fields)
	SimulationStart(fields log.Fields)
	SimulationComplete(fields log.Fields)
}

// LogrusDiagnostics writes each diagnostic as one JSON object per line
// through a dedicated logrus.Logger (see internal/config.NewDiagnosticsLogger),
// independent of the human-facing run log.
type LogrusDiagnostics struct {
	Log *log.Logger
}

func (d *LogrusDiagnostics) EventCreated(fields log.Fields) {
	d.Log.WithFields(fields).Debug("EventCreated")
}

func (d *LogrusDiagnostics) CollisionCheck(fields log.Fields) {
	d.Log.WithFields(fields).Trace("CollisionCheck")
}

func (d *LogrusDiagnostics) EventGeneration(fields log.Fields) {
	d.Log.WithFields(fields).Trace("EventGeneration")
}

func (d *LogrusDiagnostics) ProcessingEvent(fields log.Fields) {
	d.Log.WithFields(fields).Debug("ProcessingEvent")
}

func (d *LogrusDiagnostics) SimulationStart(fields log.Fields) {
	d.Log.WithFields(fields).Info("SimulationStart")
}

func (d *LogrusDiagnostics) SimulationComplete(fields log.Fields) {
	d.Log.WithFields(fields).Info("SimulationComplete")
}

// NopDiagnostics discards every entry; used when the diagnostics stream is
// disabled.
type NopDiagnostics struct{}

func (NopDiagnostics) EventCreated(log.Fields)      {}
func (NopDiagnostics) CollisionCheck(log.Fields)    {}
func (NopDiagnostics) EventGeneration(log.Fields)   {}
func (NopDiagnostics) ProcessingEvent(log.Fields)   {}
func (NopDiagnostics) SimulationStart(log.Fields)   {}
func (NopDiagnostics) SimulationComplete(log.Fields) {}
