// Package debugui draws Dear ImGui debug windows over a running game. Windows
// are ecs entities carrying an Item; OverlaySystem runs them once per frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/ecs"
)

// Item is a component holding a Dear ImGui render function.
type Item struct {
	Render func()
}

// InputState is a singleton tracking whether Dear ImGui is consuming mouse
// or keyboard input. Game input should be ignored while it is. Hidden turns
// the whole overlay off.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
	Hidden              bool
}

// Register adds the debugui components to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Item](registry)
	ecs.RegisterComponent[InputState](registry)
}

// OverlaySystem updates InputState and defers every Item's render function
// to the end of the frame, after the game's own systems have run.
type OverlaySystem struct {
	Items ecs.Query[struct{ *Item }]
	Input ecs.Singleton[InputState]

	// Capture reports imgui's mouse and keyboard capture. Nil reads the
	// current imgui IO.
	Capture func() (mouse, keyboard bool)
}

func (s *OverlaySystem) Execute(frame *ecs.UpdateFrame) {
	state := s.Input.Get()
	if state == nil {
		frame.Storage.AddSingleton(InputState{})
		state = s.Input.Get()
	}
	if state.Hidden {
		state.WantCaptureMouse = false
		state.WantCaptureKeyboard = false
		return
	}

	capture := s.Capture
	if capture == nil {
		capture = currentCapture
	}
	state.WantCaptureMouse, state.WantCaptureKeyboard = capture()

	for item := range s.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

func currentCapture() (bool, bool) {
	io := imgui.CurrentIO()
	return io.WantCaptureMouse(), io.WantCaptureKeyboard()
}
