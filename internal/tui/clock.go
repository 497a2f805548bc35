package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/halcyde/timedock/internal/store"
	"github.com/halcyde/timedock/internal/timeutil"
)

type timeZone struct {
	name   string
	zone   string
	offset string
}

var worldZones = []timeZone{
	{"New York", "America/New_York", "UTC-5"},
	{"London", "Europe/London", "UTC+0"},
	{"Tokyo", "Asia/Tokyo", "UTC+9"},
	{"Sydney", "Australia/Sydney", "UTC+11"},
	{"Los Angeles", "America/Los_Angeles", "UTC-8"},
	{"Dubai", "Asia/Dubai", "UTC+4"},
}

type clockModel struct {
	store  *store.Store
	width  int
	height int

	now    time.Time
	format string // "12" or "24"

	shown []timeZone

	picking      bool
	pickerCursor int
}

func newClockModel(s *store.Store, format string) clockModel {
	return clockModel{
		store:  s,
		now:    time.Now(),
		format: format,
		shown:  worldZones[:3],
	}
}

func (c *clockModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c *clockModel) setFormat(format string) {
	c.format = format
}

func (c clockModel) update(msg tea.Msg) (clockModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		c.now = time.Time(msg)
		return c, nil

	case tea.KeyMsg:
		if c.picking {
			return c.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Format):
			return c.toggleFormat()
		case key.Matches(msg, keys.New):
			c.picking = true
			c.pickerCursor = 0
			return c, nil
		}
	}
	return c, nil
}

// toggleFormat flips 12/24 hour display and persists it with the rest of
// the settings record.
func (c clockModel) toggleFormat() (clockModel, tea.Cmd) {
	next := "24"
	if c.format == "24" {
		next = "12"
	}
	c.format = next

	st := c.store
	return c, func() tea.Msg {
		settings := st.LoadSettings()
		settings.TimeFormat = next
		if err := st.SaveSettings(settings); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return settingsSavedMsg{settings: settings}
	}
}

func (c clockModel) updatePicker(msg tea.KeyMsg) (clockModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if c.pickerCursor > 0 {
			c.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if c.pickerCursor < len(worldZones)-1 {
			c.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		c.picking = false
		pick := worldZones[c.pickerCursor]
		for _, tz := range c.shown {
			if tz.zone == pick.zone {
				return c, nil
			}
		}
		c.shown = append(append([]timeZone{}, c.shown...), pick)
	case key.Matches(msg, keys.Back):
		c.picking = false
	}
	return c, nil
}

func (c clockModel) view() string {
	if c.width < 20 {
		return "Terminal too small"
	}

	contentWidth := c.width - 4

	timeDisplay := clockStyle.Width(contentWidth - 6).Render(timeutil.FormatTime(c.now, c.format))
	dateLine := lipgloss.NewStyle().Width(contentWidth - 6).Align(lipgloss.Center).
		Render(mutedStyle.Render(timeutil.FormatDate(c.now)))
	zoneName := lipgloss.NewStyle().Width(contentWidth - 6).Align(lipgloss.Center).
		Render(mutedStyle.Render(c.now.Location().String()))

	mainPanel := activePanelStyle.Width(contentWidth).Render(
		lipgloss.JoinVertical(lipgloss.Center, timeDisplay, dateLine, zoneName),
	)

	var bottom string
	if c.picking {
		bottom = c.renderZonePicker(contentWidth)
	} else {
		bottom = c.renderWorldClock(contentWidth)
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainPanel, bottom)
}

func (c clockModel) renderWorldClock(w int) string {
	title := titleStyle.Render("World Clock")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for _, tz := range c.shown {
		zoneTime, err := timeutil.TimeInZone(tz.zone)
		display := "--:--:--"
		if err == nil {
			display = timeutil.FormatTime(zoneTime, c.format)
		}
		row := fmt.Sprintf("  %-14s %s  %s",
			tz.name,
			highlightStyle.Render(display),
			mutedStyle.Render(tz.offset),
		)
		rows = append(rows, row)
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  f: 12/24h  n: add time zone"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (c clockModel) renderZonePicker(w int) string {
	title := titleStyle.Render("Add Time Zone")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, tz := range worldZones {
		cursor := "  "
		style := normalItemStyle
		if i == c.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s (%s)", cursor, tz.name, tz.offset)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: add  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
