package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Frame is one exported snapshot: every ball's position and velocity at a
// single simulation time, plus its monotone frame index.
type Frame struct {
	Index      int
	Time       float64
	NDim       int
	Positions  []Vec
	Velocities []Vec
}

// OutputManager writes snapshot frames to <output_dir>/<run_name> and a
// parameters.json sidecar, following the file format and layout of
// OutputManager.write_frame/write_parameters. Writing is decoupled from
// the scheduler via a bounded channel and a background goroutine — the
// buffered-channel-plus-goroutine shape mirrors AsyncNewImageFromPrompt,
// adapted here to preserve snapshot ordering (the channel is a FIFO, so a
// blocking send when the buffer is full still writes frames in order).
type OutputManager struct {
	outputDir string
	frameCh   chan Frame
	wg        sync.WaitGroup

	subMu       sync.Mutex
	subscribers []chan<- Frame

	onWriteError func(error)
}

// NewOutputManager creates the run's output directory and starts the
// background writer goroutine with a channel buffer of bufSize frames.
func NewOutputManager(outputDir string, bufSize int, onWriteError func(error)) (*OutputManager, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %q: %w", outputDir, err)
	}
	if bufSize < 1 {
		bufSize = 1
	}
	om := &OutputManager{
		outputDir:    outputDir,
		frameCh:      make(chan Frame, bufSize),
		onWriteError: onWriteError,
	}
	om.wg.Add(1)
	go om.run()
	return om, nil
}

func (om *OutputManager) run() {
	defer om.wg.Done()
	for f := range om.frameCh {
		if err := om.writeFrameFile(f); err != nil && om.onWriteError != nil {
			om.onWriteError(err)
		}
		om.publish(f)
	}
}

// WriteFrame enqueues a snapshot for writing. The send blocks if the
// writer has fallen behind, which preserves monotone snapshot ordering
// instead of dropping or reordering frames.
func (om *OutputManager) WriteFrame(index int, time float64, ndim int, positions, velocities []Vec) {
	om.frameCh <- Frame{Index: index, Time: time, NDim: ndim, Positions: positions, Velocities: velocities}
}

// Close drains the pending frames and stops the writer. Call once, after
// the scheduler's main loop has finished enqueueing frames.
func (om *OutputManager) Close() {
	close(om.frameCh)
	om.wg.Wait()
}

// Subscribe registers a channel to receive a copy of every frame as it is
// written. Delivery is best-effort: a full channel has that frame dropped
// rather than blocking the writer (see internal/livefeed).
func (om *OutputManager) Subscribe(ch chan<- Frame) {
	om.subMu.Lock()
	defer om.subMu.Unlock()
	om.subscribers = append(om.subscribers, ch)
}

func (om *OutputManager) publish(f Frame) {
	om.subMu.Lock()
	defer om.subMu.Unlock()
	for _, ch := range om.subscribers {
		select {
		case ch <- f:
		default:
		}
	}
}

func (om *OutputManager) writeFrameFile(f Frame) error {
	name := filepath.Join(om.outputDir, fmt.Sprintf("frame_%06d.txt", f.Index))
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "# Time: %v\n", f.Time)
	fmt.Fprintf(file, "# Balls: %d\n", len(f.Positions))
	for i := range f.Positions {
		p, v := f.Positions[i], f.Velocities[i]
		if f.NDim == 2 {
			fmt.Fprintf(file, "%d %v %v %v %v\n", i, p[0], p[1], v[0], v[1])
		} else {
			fmt.Fprintf(file, "%d %v %v %v %v %v %v\n", i, p[0], p[1], p[2], v[0], v[1], v[2])
		}
	}
	return nil
}

// WriteParameters writes the run's configuration as parameters.json,
// mirroring the full configuration (not the resolved per-run output path)
// exactly once per run.
func (om *OutputManager) WriteParameters(params map[string]any) error {
	name := filepath.Join(om.outputDir, "parameters.json")
	data, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal parameters: %w", err)
	}
	return os.WriteFile(name, data, 0o644)
}
