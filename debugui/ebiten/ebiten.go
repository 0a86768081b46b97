// Package ebiten connects the debug overlay to the Ebiten game loop.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/blockfall/debugui"
	"github.com/plus3/blockfall/ecs"
)

// ImguiBackend wraps the Ebiten Dear ImGui backend. Store it as an ecs
// singleton and bracket Scheduler.Once with BeginFrame and EndFrame.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the game window through the backend. The imgui.ini
// file is disabled.
func NewImguiBackend(title string, width, height int) ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return ImguiBackend{EbitenBackend: backend}
}

// Register adds the backend and debugui components to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiBackend](registry)
	debugui.Register(registry)
}

// DrawOver draws the overlay on top of screen unless input marks it hidden.
func (b ImguiBackend) DrawOver(screen *ebiten.Image, input *debugui.InputState) {
	if input == nil || !input.Hidden {
		b.Draw(screen)
	}
}
