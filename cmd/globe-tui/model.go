package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeslor/globe-with-connecting-cities/internal/clock"
	"github.com/jeslor/globe-with-connecting-cities/internal/logging"
	"github.com/jeslor/globe-with-connecting-cities/internal/raster"
	"github.com/jeslor/globe-with-connecting-cities/internal/scene"
	"github.com/jeslor/globe-with-connecting-cities/pkg/config"
	"github.com/jeslor/globe-with-connecting-cities/pkg/flights"
)

const (
	// legendWidth is the width of the flight list beside the globe
	legendWidth = 44

	// chrome is the rows taken by the title and the help line
	chrome = 4

	minGlobeCols = 20
	minGlobeRows = 10

	rotateStep = 0.1
	dragStep   = 0.04
)

type frameMsg time.Time

type model struct {
	cfg        *config.Config
	configPath string
	log        *logging.Logger

	scene  *scene.Scene
	canvas *raster.Canvas
	clock  *clock.Clock

	width  int
	height int

	// Mouse drag state
	dragging     bool
	dragX, dragY int

	settings *settingsModel
	err      error
}

func newModel(cfg *config.Config, configPath string, log *logging.Logger) (model, error) {
	sc, err := scene.New(cfg, log, 80, 24)
	if err != nil {
		return model{}, err
	}
	return model{
		cfg:        cfg,
		configPath: configPath,
		log:        log.With(slog.String("component", "globe-tui")),
		scene:      sc,
		canvas:     raster.New(80, 24),
		clock:      clock.New(cfg.Render.FPS),
		width:      80 + legendWidth + 2,
		height:     24 + chrome,
	}, nil
}

func (m model) frame() tea.Cmd {
	return tea.Tick(m.clock.Interval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return m.frame()
}

// globeSize is the viewport left for the globe after the legend and chrome
func (m model) globeSize() (cols, rows int) {
	cols = max(m.width-legendWidth-2, minGlobeCols)
	rows = max(m.height-chrome, minGlobeRows)
	return cols, rows
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cols, rows := m.globeSize()
		if changed, err := m.scene.Resize(cols, rows); err != nil {
			m.err = err
		} else if changed {
			m.log.Info("globe radius changed", slog.Float64("radius", m.scene.Radius()))
		}
		return m, nil

	case frameMsg:
		elapsed := m.clock.Elapsed()
		if m.scene.Paused() {
			m.clock.Reset()
		}
		m.scene.Tick(elapsed)
		return m, m.frame()

	case settingsSavedMsg:
		if m.settings != nil {
			m.settings.saved(msg)
		}
		if msg.err != nil {
			m.log.Error("failed to save config", slog.Any("error", msg.err))
		} else {
			m.log.Info("config saved", slog.String("path", m.configPath))
		}
		return m, nil

	case settingsAppliedMsg:
		return m.apply(msg.cfg), nil

	case settingsClosedMsg:
		m.settings = nil
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.settings != nil {
			return m, m.settings.Update(msg)
		}
		if m.err != nil {
			// Any key clears the error
			m.err = nil
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	orbit := m.scene.Orbit()

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "left", "h":
		orbit.Rotate(-rotateStep, 0)
	case "right", "l":
		orbit.Rotate(rotateStep, 0)
	case "up", "k":
		orbit.Rotate(0, rotateStep)
	case "down", "j":
		orbit.Rotate(0, -rotateStep)
	case "+", "=":
		orbit.Zoom(0.9)
	case "-", "_":
		orbit.Zoom(1.1)
	case "0":
		orbit.Reset()
	case "p", " ":
		m.scene.TogglePause()
	case "n":
		m.scene.ToggleLabels()
	case "c":
		m.settings = newSettingsModel(m.cfg, m.configPath)
	}

	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) model {
	orbit := m.scene.Orbit()
	cols, rows := m.globeSize()
	// The globe starts below the title line
	inGlobe := msg.X < cols && msg.Y >= 2 && msg.Y < rows+2

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && inGlobe:
		m.dragging = true
		m.dragX, m.dragY = msg.X, msg.Y
		orbit.BeginInteraction()

	case msg.Action == tea.MouseActionMotion && m.dragging:
		dx, dy := msg.X-m.dragX, msg.Y-m.dragY
		m.dragX, m.dragY = msg.X, msg.Y
		orbit.Rotate(-float64(dx)*dragStep, float64(dy)*dragStep)

	case msg.Action == tea.MouseActionRelease && m.dragging:
		m.dragging = false
		orbit.EndInteraction()

	case msg.Button == tea.MouseButtonWheelUp && inGlobe:
		orbit.Zoom(0.9)

	case msg.Button == tea.MouseButtonWheelDown && inGlobe:
		orbit.Zoom(1.1)
	}

	return m
}

// apply rebuilds the scene from a new config
func (m model) apply(cfg *config.Config) model {
	cols, rows := m.globeSize()
	sc, err := scene.New(cfg, m.log, cols, rows)
	if err != nil {
		m.settings.setError(err)
		return m
	}

	m.cfg = cfg
	m.scene = sc
	m.clock = clock.New(cfg.Render.FPS)
	m.settings = nil
	m.log.Info("settings applied",
		slog.Int("flights", cfg.Flights.MaxActive),
		slog.Int("fps", cfg.Render.FPS))
	return m
}

func (m model) View() string {
	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)
	s.WriteString(titleStyle.Render("GLOBE WITH CONNECTING CITIES"))
	s.WriteString("\n\n")

	if m.settings != nil {
		s.WriteString(m.settings.View())
		return s.String()
	}

	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		s.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n\n")
		helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		s.WriteString(helpStyle.Render("Press any key to continue..."))
		return s.String()
	}

	frame := m.scene.Frame()
	scene.Rasterize(frame, m.canvas)

	globeLines := renderCanvas(m.canvas)
	legendLines := strings.Split(renderLegend(frame, frame.Rows), "\n")

	// Combine side by side
	maxLines := max(len(globeLines), len(legendLines))
	for i := 0; i < maxLines; i++ {
		if i < len(globeLines) {
			s.WriteString(globeLines[i])
		} else {
			s.WriteString(strings.Repeat(" ", frame.Cols))
		}
		s.WriteString("  ")
		if i < len(legendLines) {
			s.WriteString(legendLines[i])
		}
		s.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	s.WriteString(helpStyle.Render("←/→/↑/↓: Orbit  Drag: Orbit  +/-: Zoom  0: Reset  P: Pause  N: Names  C: Settings  Q: Quit"))

	return s.String()
}

// cellColor maps a rasterized cell to a 256-color code
func cellColor(cell raster.Cell) lipgloss.Color {
	switch cell.Kind {
	case raster.Star:
		switch {
		case cell.Intensity >= 0.8:
			return "255"
		case cell.Intensity >= 0.4:
			return "245"
		default:
			return "238"
		}
	case raster.Globe:
		if cell.Rune == scene.GlyphRim {
			return "37"
		}
		return "24"
	case raster.Arc:
		switch {
		case cell.Intensity >= 0.75:
			return "46"
		case cell.Intensity >= 0.5:
			return "34"
		case cell.Intensity >= 0.25:
			return "28"
		default:
			return "22"
		}
	case raster.City:
		return "226"
	case raster.Label:
		return "252"
	default:
		return ""
	}
}

// renderCanvas colors the canvas row by row, one style per run of cells
func renderCanvas(c *raster.Canvas) []string {
	cols, rows := c.Size()
	lines := make([]string, rows)

	for y := 0; y < rows; y++ {
		var line, run strings.Builder
		var runColor lipgloss.Color

		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				line.WriteString(run.String())
			} else {
				line.WriteString(lipgloss.NewStyle().Foreground(runColor).Render(run.String()))
			}
			run.Reset()
		}

		for x := 0; x < cols; x++ {
			cell := c.At(x, y)
			color := cellColor(cell)
			if color != runColor {
				flush()
				runColor = color
			}
			if cell.Kind == raster.Empty {
				run.WriteRune(' ')
			} else {
				run.WriteRune(cell.Rune)
			}
		}
		flush()
		lines[y] = line.String()
	}

	return lines
}

// renderLegend lists the globe state and as many flights as fit in rows
func renderLegend(f scene.Frame, rows int) string {
	var leg strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	leg.WriteString(headerStyle.Render("GLOBE"))
	leg.WriteString("\n")
	leg.WriteString(dimStyle.Render(fmt.Sprintf("r=%.1f  %d/%d cities facing", f.Radius, len(f.VisibleCities()), len(f.Cities))))
	leg.WriteString("\n")

	status := lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render("RUNNING")
	if f.Paused {
		status = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("PAUSED")
	}
	leg.WriteString(fmt.Sprintf("%s  %s\n", status,
		dimStyle.Render(fmt.Sprintf("arrived %d", f.Stats.Arrived))))
	if f.LastArrival != "" {
		leg.WriteString(dimStyle.Render("last: " + f.LastArrival))
	}
	leg.WriteString("\n\n")

	leg.WriteString(headerStyle.Render(fmt.Sprintf("FLIGHTS (%d)", len(f.Flights))))
	leg.WriteString("\n")

	room := rows - 6
	for i, fl := range f.Flights {
		if i >= room {
			leg.WriteString(dimStyle.Render(fmt.Sprintf("  +%d more", len(f.Flights)-i)))
			break
		}
		leg.WriteString(flightLine(fl))
		leg.WriteString("\n")
	}

	return leg.String()
}

// flightLine renders "From → To  1234km 045° [####----]"
func flightLine(fl scene.FlightView) string {
	color := lipgloss.Color("46")
	if fl.Status == flights.FadingOut {
		color = lipgloss.Color("28")
	}

	route := fmt.Sprintf("%s → %s", fl.From, fl.To)
	if r := []rune(route); len(r) > 22 {
		route = string(r[:21]) + "…"
	}

	const barWidth = 8
	filled := int(fl.Progress * barWidth)
	bar := strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled)

	return lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%-22s", route)) +
		fmt.Sprintf(" %5.0fkm %03.0f° [%s]", fl.DistanceKm, fl.Bearing, bar)
}
