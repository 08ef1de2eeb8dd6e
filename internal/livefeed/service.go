// Package livefeed is an optional HTTP/WebSocket spectator service:
// browsers connect to /subscribe and receive one JSON message per export
// snapshot the scheduler produces. It is adapted from the teacher's
// ComfyUIService (services/comfyui.go), inverted from a client that dials
// out to ComfyUI into a server that accepts incoming subscribers.
package livefeed

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"hardsphere/internal/sim"
)

// subscriberBuffer is the per-connection channel depth. A subscriber that
// falls this far behind has frames dropped rather than stalling the
// scheduler, mirroring AsyncNewImageFromPrompt's buffered channel.
const subscriberBuffer = 8

// Service is a WebSocket server that broadcasts every frame written by an
// *sim.OutputManager to all currently connected subscribers.
type Service struct {
	running bool
	addr    string
	output  *sim.OutputManager

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]chan sim.Frame

	latestMu sync.Mutex
	latest   *sim.Frame
}

// NewService creates a livefeed server bound to addr, subscribing itself
// to output so every exported frame is relayed to connected spectators.
func NewService(addr string, output *sim.OutputManager) *Service {
	s := &Service{
		addr:    addr,
		output:  output,
		clients: make(map[string]chan sim.Frame),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	relay := make(chan sim.Frame, subscriberBuffer)
	output.Subscribe(relay)
	go s.fanOut(relay)
	return s
}

// Start runs the HTTP server in the background. Not blocking, matching
// the teacher's Start/Stop/IsRunning shape.
func (s *Service) Start() error {
	log.Info("Starting livefeed WebSocket service")
	s.running = true

	mux := http.NewServeMux()
	mux.HandleFunc("/subscribe", s.handleSubscribe)

	go func() {
		if err := http.ListenAndServe(s.addr, mux); err != nil {
			log.WithError(err).Error("livefeed server stopped")
		}
	}()
	return nil
}

// Stop marks the service as no longer running. The underlying HTTP
// server is not force-closed; connections drain naturally at process
// exit, matching the teacher's fire-and-forget Stop.
func (s *Service) Stop() {
	log.Info("Stopping livefeed WebSocket service")
	s.running = false
}

// IsRunning reports the current running state.
func (s *Service) IsRunning() bool { return s.running }

func (s *Service) fanOut(relay <-chan sim.Frame) {
	for f := range relay {
		frame := f
		s.latestMu.Lock()
		s.latest = &frame
		s.latestMu.Unlock()

		s.mu.Lock()
		for id, ch := range s.clients {
			select {
			case ch <- frame:
			default:
				log.WithField("subscriber_id", id).Debug("livefeed subscriber behind, dropping frame")
			}
		}
		s.mu.Unlock()
	}
}

func (s *Service) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("failed to upgrade livefeed subscriber")
		return
	}
	defer conn.Close()

	subscriberID := uuid.New().String()
	ch := make(chan sim.Frame, subscriberBuffer)

	s.mu.Lock()
	s.clients[subscriberID] = ch
	s.mu.Unlock()

	log.WithField("subscriber_id", subscriberID).Info("livefeed subscriber connected")

	defer func() {
		s.mu.Lock()
		delete(s.clients, subscriberID)
		s.mu.Unlock()
		log.WithField("subscriber_id", subscriberID).Info("livefeed subscriber disconnected")
	}()

	s.latestMu.Lock()
	latest := s.latest
	s.latestMu.Unlock()
	if latest != nil {
		if err := conn.WriteJSON(frameMessage(*latest)); err != nil {
			return
		}
	}

	go drainReads(conn)

	for frame := range ch {
		if err := conn.WriteJSON(frameMessage(frame)); err != nil {
			log.WithError(err).WithField("subscriber_id", subscriberID).Debug("failed to write frame to subscriber")
			return
		}
	}
}

// drainReads discards inbound messages so the connection's read deadline
// and control-frame handling keep working; this service is send-only.
func drainReads(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

type wireFrame struct {
	Index      int         `json:"index"`
	Time       float64     `json:"time"`
	NDim       int         `json:"ndim"`
	Positions  [][]float64 `json:"positions"`
	Velocities [][]float64 `json:"velocities"`
}

func frameMessage(f sim.Frame) wireFrame {
	positions := make([][]float64, len(f.Positions))
	velocities := make([][]float64, len(f.Velocities))
	for i := range f.Positions {
		positions[i] = f.Positions[i][:f.NDim]
		velocities[i] = f.Velocities[i][:f.NDim]
	}
	return wireFrame{
		Index:      f.Index,
		Time:       f.Time,
		NDim:       f.NDim,
		Positions:  positions,
		Velocities: velocities,
	}
}
