package main

import "github.com/hajimehoshi/ebiten/v2"

// SceneId and Scene are kept in the shape of the teacher's
// render/scenes/scene.go: a single scene never needs to switch, so this
// viewer only ever returns its own id from Update.
type SceneId uint

const ReplaySceneId SceneId = 0

type Scene interface {
	Update() SceneId
	Draw(screen *ebiten.Image)
	FirstLoad()
	OnEnter()
	OnExit()
	IsLoaded() bool
}
