package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/jeslor/globe-with-connecting-cities/internal/clock"
	"github.com/jeslor/globe-with-connecting-cities/internal/logging"
	"github.com/jeslor/globe-with-connecting-cities/internal/scene"
	"github.com/jeslor/globe-with-connecting-cities/pkg/config"
	"github.com/jeslor/globe-with-connecting-cities/pkg/flights"
	"github.com/jeslor/globe-with-connecting-cities/pkg/geo"
)

const (
	// rotateStep is the camera rotation per key press, in radians
	rotateStep = 0.1

	// dragStep is the camera rotation per cell of mouse drag, in radians
	dragStep = 0.04

	zoomIn  = 0.9
	zoomOut = 1.1
)

// AppConfig holds the application configuration
type AppConfig struct {
	Config     *config.Config
	ConfigPath string
	Logger     *logging.Logger
	Logs       *LogManager
}

// App represents the main application
type App struct {
	// Configuration
	config     *config.Config
	configPath string
	log        *logging.Logger

	// UI components
	tviewApp   *tview.Application
	mainView   *GlobeView
	telemetry  *tview.TextView
	controls   *tview.TextView
	logs       *LogManager
	rootLayout *tview.Flex

	// State
	scene *scene.Scene
	clock *clock.Clock

	// redraw schedules a repaint from the frame goroutine
	redraw func()

	// Mouse drag state
	dragging     bool
	dragX, dragY int

	// Synchronization
	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewApp creates a new application instance
func NewApp(cfg *AppConfig) (*App, error) {
	// The first Draw resizes the scene to the real viewport.
	sc, err := scene.New(cfg.Config, cfg.Logger, 80, 24)
	if err != nil {
		return nil, err
	}

	app := &App{
		config:     cfg.Config,
		configPath: cfg.ConfigPath,
		log:        cfg.Logger.With(slog.String("component", "globe-view")),
		logs:       cfg.Logs,
		scene:      sc,
		clock:      clock.New(cfg.Config.Render.FPS),
	}

	app.setupUI()
	app.redraw = func() { app.tviewApp.QueueUpdateDraw(app.updateTelemetry) }
	return app, nil
}

// setupUI initializes the user interface
func (a *App) setupUI() {
	a.tviewApp = tview.NewApplication().EnableMouse(true)

	// Create panels
	a.mainView = NewGlobeView(a)
	a.createTelemetryPanel()
	a.createControlsPanel()

	// Create layout
	a.createLayout()

	// Setup input handlers
	a.tviewApp.SetInputCapture(a.handleKeyboard)
	a.tviewApp.SetMouseCapture(a.handleMouse)
}

// createTelemetryPanel creates the telemetry info panel
func (a *App) createTelemetryPanel() {
	a.telemetry = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	a.telemetry.SetBorder(true).SetTitle(" Telemetry ")

	a.updateTelemetry()
}

// createControlsPanel creates the controls/shortcuts panel
func (a *App) createControlsPanel() {
	a.controls = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	a.controls.SetBorder(true).SetTitle(" Controls ")

	controlsText := `[yellow]CAMERA[-]
  [white]←/→, h/l[-]  Orbit
  [white]↑/↓, k/j[-]  Tilt
  [white]drag[-]      Orbit
  [white]+/-, wheel[-] Zoom
  [white]0[-]         Reset

[yellow]DISPLAY[-]
  [white]p, SPACE[-]  Pause
  [white]n[-]         Names
  [white]f[-]         Follow logs

[yellow]CONTROL[-]
  [white]q, ESC[-]    Quit`

	a.controls.SetText(controlsText)
}

// createLayout creates the main layout with 4 panels
func (a *App) createLayout() {
	// Right sidebar with 3 panels
	sidebar := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.telemetry, 0, 4, false).
		AddItem(a.controls, 0, 3, false).
		AddItem(a.logs.GetView(), 0, 3, false)

	// Main layout: globe (70%) + sidebar (30%)
	a.rootLayout = tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.mainView, 0, 7, true).
		AddItem(sidebar, 0, 3, false)

	a.tviewApp.SetRoot(a.rootLayout, true)
}

// frame resizes the scene to the view and snapshots it. It runs on the
// draw goroutine.
func (a *App) frame(cols, rows int) (scene.Frame, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.scene.Resize(cols, rows); err != nil {
		a.log.Error("resize failed", slog.Any("error", err))
		return scene.Frame{}, false
	}
	return a.scene.Frame(), true
}

// updateTelemetry updates the telemetry panel content
func (a *App) updateTelemetry() {
	a.mu.Lock()
	text := a.telemetryText()
	a.mu.Unlock()

	a.telemetry.SetText(text)
}

// telemetryText renders the panel body. The caller holds a.mu.
func (a *App) telemetryText() string {
	var b strings.Builder

	st := a.scene.Stats()
	orbit := a.scene.Orbit()
	cols, rows := a.scene.Size()

	counts := make(map[flights.Status]int)
	for _, f := range a.scene.Manager().Flights() {
		counts[f.Status]++
	}

	fmt.Fprintf(&b, "[yellow]GLOBE:[-] [white]r=%.1f[-] [gray](%dx%d)[-]\n", a.scene.Radius(), cols, rows)
	fmt.Fprintf(&b, "[gray]Cities:[-] [white]%d[-]\n", a.scene.Manager().Catalog().Len())
	b.WriteString("\n")

	fmt.Fprintf(&b, "[yellow]FLIGHTS:[-] [white]%d[-] active\n", a.scene.Manager().Len())
	fmt.Fprintf(&b, "[gray]Growing:[-] [white]%d[-]  [gray]Fading:[-] [white]%d[-]\n",
		counts[flights.Growing], counts[flights.FadingOut])
	fmt.Fprintf(&b, "[gray]Spawned:[-] [white]%d[-]  [gray]Arrived:[-] [white]%d[-]\n", st.Spawned, st.Arrived)
	if last := a.scene.LastArrival(); last != "" {
		fmt.Fprintf(&b, "[gray]Last:[-] [green]%s[-]\n", last)
	}
	b.WriteString("\n")

	mode := "[green]AUTO[-]"
	switch {
	case a.scene.Paused():
		mode = "[red]PAUSED[-]"
	case orbit.Interacting():
		mode = "[yellow]DRAG[-]"
	case !orbit.AutoRotate:
		mode = "[white]MANUAL[-]"
	}
	fmt.Fprintf(&b, "[yellow]CAMERA:[-] %s\n", mode)
	fmt.Fprintf(&b, "[gray]Az:[-] [white]%.0f°[-]  [gray]El:[-] [white]%.0f°[-]\n",
		normalizeDegrees(orbit.Azimuth*geo.RadiansToDegrees),
		orbit.Elevation*geo.RadiansToDegrees)
	fmt.Fprintf(&b, "[gray]Dist:[-] [white]%.2f[-]\n", orbit.Distance)
	b.WriteString("\n")

	fps := 0.0
	if st.Seconds > 0 {
		fps = float64(st.Frames) / st.Seconds
	}
	fmt.Fprintf(&b, "[gray]Frames:[-] [white]%d[-]  [gray]FPS:[-] [white]%.0f[-]\n", st.Frames, fps)

	return b.String()
}

func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// handleKeyboard handles keyboard input
func (a *App) handleKeyboard(event *tcell.EventKey) *tcell.EventKey {
	key := event.Key()
	r := event.Rune()

	switch {
	// Quit
	case key == tcell.KeyEscape || r == 'q':
		a.Stop()
		return nil

	// Camera
	case key == tcell.KeyLeft || r == 'h':
		a.rotate(-rotateStep, 0)
	case key == tcell.KeyRight || r == 'l':
		a.rotate(rotateStep, 0)
	case key == tcell.KeyUp || r == 'k':
		a.rotate(0, rotateStep)
	case key == tcell.KeyDown || r == 'j':
		a.rotate(0, -rotateStep)
	case r == '+' || r == '=':
		a.zoom(zoomIn)
	case r == '-':
		a.zoom(zoomOut)
	case r == '0':
		a.resetCamera()

	// Display
	case r == 'p' || r == ' ':
		a.togglePause()
	case r == 'n':
		a.toggleLabels()
	case r == 'f':
		a.toggleFollowLogs()

	default:
		return event
	}

	a.updateTelemetry()
	return nil
}

// handleMouse orbits on left-drag and zooms on the wheel
func (a *App) handleMouse(event *tcell.EventMouse, action tview.MouseAction) (*tcell.EventMouse, tview.MouseAction) {
	x, y := event.Position()

	switch action {
	case tview.MouseLeftDown:
		if !a.mainView.InRect(x, y) {
			return event, action
		}
		a.mu.Lock()
		a.dragging = true
		a.dragX, a.dragY = x, y
		a.scene.Orbit().BeginInteraction()
		a.mu.Unlock()
		return nil, action

	case tview.MouseMove:
		a.mu.Lock()
		if a.dragging && event.Buttons()&tcell.Button1 != 0 {
			dx, dy := x-a.dragX, y-a.dragY
			a.dragX, a.dragY = x, y
			a.scene.Orbit().Rotate(-float64(dx)*dragStep, float64(dy)*dragStep)
		}
		a.mu.Unlock()
		return nil, action

	case tview.MouseLeftUp:
		a.mu.Lock()
		if a.dragging {
			a.dragging = false
			a.scene.Orbit().EndInteraction()
		}
		a.mu.Unlock()
		return nil, action

	case tview.MouseScrollUp:
		if a.mainView.InRect(x, y) {
			a.zoom(zoomIn)
			return nil, action
		}
	case tview.MouseScrollDown:
		if a.mainView.InRect(x, y) {
			a.zoom(zoomOut)
			return nil, action
		}
	}

	return event, action
}

func (a *App) rotate(dAzimuth, dElevation float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.scene.Orbit().Rotate(dAzimuth, dElevation)
}

func (a *App) zoom(factor float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.scene.Orbit().Zoom(factor)
}

func (a *App) resetCamera() {
	a.mu.Lock()
	a.scene.Orbit().Reset()
	a.mu.Unlock()

	a.log.Info("camera reset")
}

func (a *App) togglePause() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.scene.TogglePause()
}

func (a *App) toggleLabels() {
	a.mu.Lock()
	on := a.scene.ToggleLabels()
	a.mu.Unlock()

	a.log.Debug("city labels", slog.Bool("on", on))
}

// toggleFollowLogs freezes the log panel so older lines can be read, or
// resumes following the newest line.
func (a *App) toggleFollowLogs() {
	follow := !a.logs.AutoScroll()
	a.logs.SetAutoScroll(follow)
	a.log.Debug("log follow", slog.Bool("on", follow))
}

// Run starts the frame loop and the tview application
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- a.clock.Run(ctx, a.step)
	}()

	a.log.Info("globe view started",
		slog.String("config", a.configPath),
		slog.Int("fps", a.clock.FPS()))

	err := a.tviewApp.Run()
	cancel()
	if loopErr := <-done; loopErr != nil && err == nil {
		err = loopErr
	}
	return err
}

// step advances the scene by one frame and schedules a redraw
func (a *App) step(elapsed float64) error {
	a.mu.Lock()
	wasPaused := a.scene.Paused()
	a.scene.Tick(elapsed)
	a.mu.Unlock()

	if wasPaused {
		// Time spent paused is not replayed on resume.
		a.clock.Reset()
	}

	a.redraw()
	return nil
}

// Stop stops the application
func (a *App) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
	a.tviewApp.Stop()
}
