package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/ecs"
)

// FrameHistory is a ring buffer of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

func NewFrameHistory(frames int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, frames)}
}

func (h *FrameHistory) Record(dt time.Duration) {
	h.samples[h.next] = float32(dt.Microseconds()) / 1000
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average returns the mean of the recorded frame times in milliseconds.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, s := range h.samples[:h.filled] {
		sum += s
	}
	if h.filled < len(h.samples) {
		return sum / float32(h.filled)
	}
	return sum / float32(len(h.samples))
}

// Ordered returns the samples oldest first.
func (h *FrameHistory) Ordered() []float32 {
	out := make([]float32, len(h.samples))
	copy(out, h.samples[h.next:])
	copy(out[len(h.samples)-h.next:], h.samples[:h.next])
	return out
}

// PerformanceWindow plots frame times and shows the ecs world and system
// timings.
type PerformanceWindow struct {
	History   *FrameHistory
	Scheduler *ecs.Scheduler
	// Ticks returns the number of gravity ticks fired so far.
	Ticks func() int
}

func (w *PerformanceWindow) Item() Item { return Item{Render: w.Render} }

func (w *PerformanceWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 440), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(260, 260), imgui.CondOnce)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := w.History.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	if w.Ticks != nil {
		imgui.Text(fmt.Sprintf("Gravity ticks: %d", w.Ticks()))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	samples := w.History.Ordered()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	if w.Scheduler != nil {
		w.renderWorld()
	}

	imgui.End()
}

func (w *PerformanceWindow) renderWorld() {
	world := w.Scheduler.Storage().Stats()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Entities: %d  Archetypes: %d  Singletons: %d",
		world.EntityCount, world.ArchetypeCount, world.SingletonCount))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStats", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range w.Scheduler.Stats().Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetypes") {
		for _, arch := range world.Archetypes {
			imgui.BulletText(fmt.Sprintf("0x%X %v: %d", arch.ID, arch.Components, arch.EntityCount))
		}
		imgui.TreePop()
	}
}
