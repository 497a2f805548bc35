package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/halcyde/timedock/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings store.Settings

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	timeFormat    *string
	theme         *string
	defaultSound  *string
	calendarView  *string
	notifications *bool
}

func newSettingsModel(s *store.Store, settings store.Settings) settingsModel {
	tf, th, ds, cv := "", "", "", ""
	nt := false
	return settingsModel{
		store:         s,
		settings:      settings,
		timeFormat:    &tf,
		theme:         &th,
		defaultSound:  &ds,
		calendarView:  &cv,
		notifications: &nt,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s *settingsModel) setSettings(settings store.Settings) {
	s.settings = settings
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.timeFormat = s.settings.TimeFormat
	*s.theme = s.settings.Theme
	*s.defaultSound = s.settings.DefaultAlarmSound
	*s.calendarView = s.settings.CalendarView
	*s.notifications = s.settings.Notifications

	soundOptions := make([]huh.Option[string], len(store.AlarmSounds))
	for i, snd := range store.AlarmSounds {
		soundOptions[i] = huh.NewOption(snd, snd)
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Time format").
				Options(
					huh.NewOption("12-hour", "12"),
					huh.NewOption("24-hour", "24"),
				).Value(s.timeFormat),
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Light", "light"),
					huh.NewOption("Dark", "dark"),
				).Value(s.theme),
		).Title("Appearance"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Default alarm sound").
				Options(soundOptions...).Value(s.defaultSound),
			huh.NewSelect[string]().Title("Default calendar view").
				Options(
					huh.NewOption("Daily", "daily"),
					huh.NewOption("Weekly", "weekly"),
					huh.NewOption("Monthly", "monthly"),
				).Value(s.calendarView),
			huh.NewConfirm().Title("Notifications").Value(s.notifications),
		).Title("Behavior"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		next := store.Settings{
			TimeFormat:        *s.timeFormat,
			Theme:             *s.theme,
			DefaultAlarmSound: *s.defaultSound,
			CalendarView:      *s.calendarView,
			Notifications:     *s.notifications,
		}
		if err := s.store.SaveSettings(next); err != nil {
			return s, errStatus(err)
		}
		s.settings = next
		return s, func() tea.Msg { return settingsSavedMsg{settings: next} }
	}

	return s, cmd
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	onOff := "off"
	if s.settings.Notifications {
		onOff = "on"
	}

	entries := []struct {
		label, value string
	}{
		{"Time format", s.settings.TimeFormat + "-hour"},
		{"Theme", s.settings.Theme},
		{"Default alarm sound", s.settings.DefaultAlarmSound},
		{"Default calendar view", s.settings.CalendarView},
		{"Notifications", onOff},
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for _, e := range entries {
		label := lipgloss.NewStyle().Width(24).Render(e.label)
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(e.value)))
	}
	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
