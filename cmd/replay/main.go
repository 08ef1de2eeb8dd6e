// Command replay is a post-hoc viewer over a completed run directory: it
// reads frame_NNNNNN.txt snapshots and parameters.json (spec.md §6) and
// lets a user scrub through them frame by frame. It is adapted from the
// teacher's render.Game/Scene pairing (render/game.go,
// render/scenes/scene.go), here driving a single ReplayScene instead of
// switching between several.
package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game implements ebiten.Game, delegating to the single active Scene.
type Game struct {
	scene Scene
}

func NewGame(scene Scene) *Game {
	if !scene.IsLoaded() {
		scene.FirstLoad()
		scene.OnEnter()
	}
	return &Game{scene: scene}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: replay <run-dir>")
		os.Exit(1)
	}
	runDir := os.Args[1]

	frames, params, err := loadRun(runDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}

	radius := 0.1
	if r, ok := params["ball_radius"].(float64); ok {
		radius = r
	}
	var domainSize []float64
	if raw, ok := params["domain_size"].([]any); ok {
		for _, v := range raw {
			if f, ok := v.(float64); ok {
				domainSize = append(domainSize, f)
			}
		}
	}

	scene := NewReplayScene(frames, radius, domainSize)
	game := NewGame(scene)

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle(fmt.Sprintf("hardsphere replay: %s", runDir))
	if err := ebiten.RunGame(game); err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}
}
