package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth   = 800
	windowHeight  = 600
	pixelsPerUnit = 60
)

var ballColor = color.RGBA{80, 160, 255, 255}

// ReplayScene draws balls from parsed snapshot frames (spec.md §6 file
// format) and handles keyboard-driven frame scrubbing: left/right arrows
// step one frame, space toggles playback. It never touches internal/sim
// state, only the on-disk snapshot, so it cannot affect determinism — the
// disk-file idiom mirrors BallsScene's mouse-driven spawning, remapped to
// keys since there is nothing here to spawn.
type ReplayScene struct {
	loaded bool

	frames     []snapshotFrame
	radius     float64
	domainSize []float64

	current  int
	playing  bool
	playTick int
}

func NewReplayScene(frames []snapshotFrame, radius float64, domainSize []float64) *ReplayScene {
	return &ReplayScene{
		frames:     frames,
		radius:     radius,
		domainSize: domainSize,
	}
}

func (s *ReplayScene) FirstLoad()     { s.loaded = true }
func (s *ReplayScene) IsLoaded() bool { return s.loaded }
func (s *ReplayScene) OnEnter()       {}
func (s *ReplayScene) OnExit()        {}

func (s *ReplayScene) Update() SceneId {
	if len(s.frames) == 0 {
		return ReplaySceneId
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.playing = !s.playing
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		s.step(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		s.step(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		s.current = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		s.current = len(s.frames) - 1
	}

	if s.playing {
		s.playTick++
		if s.playTick >= 4 {
			s.playTick = 0
			if s.current == len(s.frames)-1 {
				s.playing = false
			} else {
				s.step(1)
			}
		}
	}

	return ReplaySceneId
}

func (s *ReplayScene) step(delta int) {
	s.current += delta
	if s.current < 0 {
		s.current = 0
	}
	if s.current >= len(s.frames) {
		s.current = len(s.frames) - 1
	}
}

func (s *ReplayScene) Draw(screen *ebiten.Image) {
	if len(s.frames) == 0 {
		ebitenutil.DebugPrintAt(screen, "no frames in run directory", 20, 20)
		return
	}

	frame := s.frames[s.current]
	for _, p := range frame.Positions {
		x := float32(p[0] * pixelsPerUnit)
		y := windowHeight - float32(p[1]*pixelsPerUnit)
		r := float32(s.radius * pixelsPerUnit)
		vector.DrawFilledCircle(screen, x, y, r, ballColor, false)
	}

	header := fmt.Sprintf("frame %d/%d  t=%.4f  (space: play/pause, arrows: step, home/end: jump)",
		s.current+1, len(s.frames), frame.Time)
	ebitenutil.DebugPrintAt(screen, header, 10, 10)
}

var _ Scene = (*ReplayScene)(nil)
