package main

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeslor/globe-with-connecting-cities/internal/logging"
	"github.com/jeslor/globe-with-connecting-cities/pkg/config"
)

// settingField is one editable line of the settings screen.
type settingField struct {
	section string
	label   string
	get     func(c *config.Config) string
	set     func(c *config.Config, v string) error
}

// settingsModel edits a working copy of the configuration.
type settingsModel struct {
	cfg        *config.Config // Working copy of configuration
	configPath string

	fields  []settingField
	current int

	editing    bool
	editBuffer string

	// Status
	dirty          bool
	message        string
	messageIsError bool
}

// settingsSavedMsg reports the result of writing the config file.
type settingsSavedMsg struct {
	err error
}

// settingsAppliedMsg hands a validated config to the running globe.
type settingsAppliedMsg struct {
	cfg *config.Config
}

// settingsClosedMsg leaves the settings screen without applying.
type settingsClosedMsg struct{}

func newSettingsModel(cfg *config.Config, configPath string) *settingsModel {
	working := *cfg
	return &settingsModel{
		cfg:        &working,
		configPath: configPath,
		fields:     settingFields(),
	}
}

func settingFields() []settingField {
	return []settingField{
		{"FLIGHTS", "Active flights",
			func(c *config.Config) string { return strconv.Itoa(c.Flights.MaxActive) },
			intSetter(func(c *config.Config) *int { return &c.Flights.MaxActive })},
		{"FLIGHTS", "Fade in (s)",
			func(c *config.Config) string { return formatFloat(c.Flights.FadeInSeconds) },
			floatSetter(func(c *config.Config) *float64 { return &c.Flights.FadeInSeconds })},
		{"FLIGHTS", "Fade out (s)",
			func(c *config.Config) string { return formatFloat(c.Flights.FadeOutSeconds) },
			floatSetter(func(c *config.Config) *float64 { return &c.Flights.FadeOutSeconds })},
		{"FLIGHTS", "Min duration (s)",
			func(c *config.Config) string { return formatFloat(c.Flights.MinDurationSeconds) },
			floatSetter(func(c *config.Config) *float64 { return &c.Flights.MinDurationSeconds })},
		{"FLIGHTS", "Max duration (s)",
			func(c *config.Config) string { return formatFloat(c.Flights.MaxDurationSeconds) },
			floatSetter(func(c *config.Config) *float64 { return &c.Flights.MaxDurationSeconds })},
		{"RENDER", "Frame rate",
			func(c *config.Config) string { return strconv.Itoa(c.Render.FPS) },
			intSetter(func(c *config.Config) *int { return &c.Render.FPS })},
		{"RENDER", "Stars",
			func(c *config.Config) string { return strconv.Itoa(c.Render.Stars) },
			intSetter(func(c *config.Config) *int { return &c.Render.Stars })},
		{"RENDER", "City names",
			func(c *config.Config) string { return strconv.FormatBool(c.Render.ShowLabels) },
			boolSetter(func(c *config.Config) *bool { return &c.Render.ShowLabels })},
		{"RENDER", "Seed",
			func(c *config.Config) string { return strconv.FormatInt(c.Render.Seed, 10) },
			func(c *config.Config, v string) error {
				n, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid seed: %s", v)
				}
				c.Render.Seed = n
				return nil
			}},
		{"CAMERA", "Auto-rotate",
			func(c *config.Config) string { return strconv.FormatBool(c.Camera.AutoRotate) },
			boolSetter(func(c *config.Config) *bool { return &c.Camera.AutoRotate })},
		{"CAMERA", "Turns per minute",
			func(c *config.Config) string { return formatFloat(c.Camera.AutoRotateSpeed) },
			floatSetter(func(c *config.Config) *float64 { return &c.Camera.AutoRotateSpeed })},
		{"CAMERA", "Resume after (s)",
			func(c *config.Config) string { return formatFloat(c.Camera.ResumeAfterSeconds) },
			floatSetter(func(c *config.Config) *float64 { return &c.Camera.ResumeAfterSeconds })},
		{"LOG", "Level",
			func(c *config.Config) string { return c.Log.Level },
			func(c *config.Config, v string) error {
				if _, ok := logging.ParseLevel(v); !ok {
					return fmt.Errorf("unknown log level: %s", v)
				}
				c.Log.Level = strings.ToLower(strings.TrimSpace(v))
				return nil
			}},
	}
}

func intSetter(field func(c *config.Config) *int) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid number: %s", v)
		}
		*field(c) = n
		return nil
	}
}

func floatSetter(field func(c *config.Config) *float64) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid number: %s", v)
		}
		*field(c) = f
		return nil
	}
}

func boolSetter(field func(c *config.Config) *bool) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("expected true or false: %s", v)
		}
		*field(c) = b
		return nil
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (m *settingsModel) Update(msg tea.KeyMsg) tea.Cmd {
	if m.editing {
		return m.handleEditMode(msg)
	}

	switch msg.String() {
	case "esc", "c":
		return func() tea.Msg { return settingsClosedMsg{} }

	case "up", "k":
		if m.current > 0 {
			m.current--
		} else {
			m.current = len(m.fields) - 1
		}
		m.message = ""

	case "down", "j":
		m.current = (m.current + 1) % len(m.fields)
		m.message = ""

	case "enter":
		m.editing = true
		m.editBuffer = m.fields[m.current].get(m.cfg)

	case "s":
		if err := m.cfg.Validate(); err != nil {
			m.setError(err)
			return nil
		}
		return m.saveConfig()

	case "a":
		if err := m.cfg.Validate(); err != nil {
			m.setError(err)
			return nil
		}
		cfg := *m.cfg
		return func() tea.Msg { return settingsAppliedMsg{cfg: &cfg} }

	case "d":
		m.cfg = config.DefaultConfig()
		m.dirty = true
		m.message = "Defaults restored (not saved)"
		m.messageIsError = false
	}

	return nil
}

func (m *settingsModel) handleEditMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.editBuffer = ""
		m.message = "Edit cancelled"
		m.messageIsError = false

	case "enter":
		if err := m.fields[m.current].set(m.cfg, m.editBuffer); err != nil {
			m.setError(err)
			return nil
		}
		m.editing = false
		m.editBuffer = ""
		m.dirty = true
		m.message = "Field updated (not saved)"
		m.messageIsError = false

	case "backspace":
		if len(m.editBuffer) > 0 {
			m.editBuffer = m.editBuffer[:len(m.editBuffer)-1]
		}

	default:
		if msg.Type == tea.KeyRunes {
			m.editBuffer += string(msg.Runes)
		}
	}

	return nil
}

func (m *settingsModel) setError(err error) {
	m.message = fmt.Sprintf("Error: %v", err)
	m.messageIsError = true
}

// saveConfig saves the configuration to file.
func (m *settingsModel) saveConfig() tea.Cmd {
	cfg := *m.cfg
	path := m.configPath
	return func() tea.Msg {
		return settingsSavedMsg{err: cfg.Save(path)}
	}
}

func (m *settingsModel) saved(msg settingsSavedMsg) {
	if msg.err != nil {
		m.setError(msg.err)
		return
	}
	m.dirty = false
	m.message = "Saved to " + m.configPath
	m.messageIsError = false
}

func (m *settingsModel) View() string {
	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Padding(0, 1)
	s.WriteString(headerStyle.Render("Settings"))
	s.WriteString("\n\n")

	controlsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	s.WriteString(controlsStyle.Render("[↑/↓] Navigate  [ENTER] Edit  [A] Apply  [S] Save  [D] Defaults  [ESC] Back"))
	s.WriteString("\n")

	if m.dirty {
		dirtyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
		s.WriteString(dirtyStyle.Render("Modified: * (unsaved changes)"))
	}
	s.WriteString("\n\n")

	if m.message != "" {
		msgStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
		if m.messageIsError {
			msgStyle = msgStyle.Foreground(lipgloss.Color("196"))
		}
		s.WriteString(msgStyle.Render(m.message))
		s.WriteString("\n\n")
	}

	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	section := ""
	for i, f := range m.fields {
		if f.section != section {
			if section != "" {
				s.WriteString("\n")
			}
			section = f.section
			s.WriteString(sectionStyle.Render(fmt.Sprintf("━━━ %s ━━━", section)))
			s.WriteString("\n")
		}
		m.renderField(&s, i, f)
	}

	return s.String()
}

func (m *settingsModel) renderField(s *strings.Builder, i int, f settingField) {
	selected := i == m.current

	prefix := "  "
	if selected {
		prefix = "▸ "
	}

	fieldStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	if selected {
		fieldStyle = fieldStyle.Background(lipgloss.Color("237"))
	}

	value := f.get(m.cfg)
	if selected && m.editing {
		value = m.editBuffer + "_"
	}

	s.WriteString(fieldStyle.Render(fmt.Sprintf("%s%-18s %s", prefix, f.label+":", value)))
	s.WriteString("\n")
}
