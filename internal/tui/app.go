package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/halcyde/timedock/internal/export"
	"github.com/halcyde/timedock/internal/sched"
	"github.com/halcyde/timedock/internal/store"
	"github.com/halcyde/timedock/internal/timeutil"
)

// App is the root Bubble Tea model.
type App struct {
	store    *store.Store
	alarms   *store.Alarms
	events   *store.Events
	settings store.Settings
	sched    *sched.Scheduler

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	clock        clockModel
	calendar     calendarModel
	alarmList    alarmsModel
	settingsView settingsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	alarms := store.NewAlarms(s)
	events := store.NewEvents(s)
	settings := s.LoadSettings()
	applyTheme(settings.Theme)

	return App{
		store:        s,
		alarms:       alarms,
		events:       events,
		settings:     settings,
		sched:        sched.New(alarms, nil),
		activeView:   viewClock,
		clock:        newClockModel(s, settings.TimeFormat),
		calendar:     newCalendarModel(events, settings.TimeFormat),
		alarmList:    newAlarmsModel(alarms, settings.TimeFormat, settings.DefaultAlarmSound),
		settingsView: newSettingsModel(s, settings),
		help:         h,
	}
}

func (a App) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd is the single recurring timer. It drives the clock display and
// the alarm scheduler; bubbletea tears it down with the program, so no
// per-view cleanup is needed.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.clock.setSize(a.width, contentHeight)
		a.calendar.setSize(a.width, contentHeight)
		a.alarmList.setSize(a.width, contentHeight)
		a.settingsView.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// A ringing alarm captures all input until acknowledged.
		if a.sched.Ringing() != nil {
			return a.updateRinging(msg)
		}

		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewClock
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewCalendar
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewAlarms
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			return a, nil
		}

	case tickMsg:
		now := time.Time(msg)
		var cmd tea.Cmd
		a.clock, cmd = a.clock.update(msg)

		if rung := a.sched.Tick(now); rung != nil {
			// The terminal bell is the sound device; the BEL rides the
			// status line exactly once per transition.
			a.status = fmt.Sprintf("Alarm: %s \a", rung.Label)
		}
		if err := a.sched.PlayError(); err != nil {
			a.status = fmt.Sprintf("Sound error: %v", err)
		}

		return a, tea.Batch(tickCmd(), cmd)

	case settingsSavedMsg:
		a.settings = msg.settings
		applyTheme(a.settings.Theme)
		a.clock.setFormat(a.settings.TimeFormat)
		a.calendar.setFormat(a.settings.TimeFormat)
		a.alarmList.setFormat(a.settings.TimeFormat)
		a.alarmList.setDefaultSound(a.settings.DefaultAlarmSound)
		a.settingsView.setSettings(a.settings)
		a.status = "Settings saved"
		return a, nil

	case alarmSavedMsg:
		a.status = "Alarms updated"
		return a, nil

	case eventSavedMsg:
		a.status = "Calendar updated"
		return a, nil

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateRinging(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ringing := a.sched.Ringing()
	switch {
	case key.Matches(msg, keys.Snooze):
		if a.sched.Snooze(time.Now()) {
			a.status = fmt.Sprintf("Snoozed for %d minutes", ringing.SnoozeMinutes)
		}
	case key.Matches(msg, keys.Dismiss), key.Matches(msg, keys.Back):
		a.sched.Dismiss()
		a.status = "Alarm dismissed"
	}
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewClock:
		a.clock, cmd = a.clock.update(msg)
	case viewCalendar:
		a.calendar, cmd = a.calendar.update(msg)
	case viewAlarms:
		a.alarmList, cmd = a.alarmList.update(msg)
	case viewSettings:
		a.settingsView, cmd = a.settingsView.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewCalendar:
		return a.calendar.formActive
	case viewAlarms:
		return a.alarmList.formActive
	case viewSettings:
		return a.settingsView.formActive
	case viewClock:
		return a.clock.picking
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewClock:
		content = a.clock.view()
	case viewCalendar:
		content = a.calendar.view()
	case viewAlarms:
		content = a.alarmList.view()
	case viewSettings:
		content = a.settingsView.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if ringing := a.sched.Ringing(); ringing != nil {
		content = a.renderRingOverlay(ringing)
	} else if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("timedock")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Pending snooze indicator in footer.
	snoozeInfo := ""
	if until := a.sched.SnoozedUntil(); !until.IsZero() {
		snoozeInfo = warningStyle.Render(" ⏰ " + timeutil.FormatTime(until, a.settings.TimeFormat))
	}

	left := footerStyle.Render(helpView)
	right := snoozeInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderRingOverlay(ringing *store.Alarm) string {
	w := a.width - 4

	bell := ringStyle.Width(w - 6).Render("⏰")
	label := lipgloss.NewStyle().Width(w - 6).Align(lipgloss.Center).Bold(true).Render(ringing.Label)
	timeStr := ringStyle.Width(w - 6).Render(timeutil.FormatClock(ringing.Time, a.settings.TimeFormat))

	controls := "enter: dismiss"
	if ringing.SnoozeEnabled {
		controls = fmt.Sprintf("s: snooze %dm  enter: dismiss", ringing.SnoozeMinutes)
	}
	hint := lipgloss.NewStyle().Width(w - 6).Align(lipgloss.Center).Render(mutedStyle.Render(controls))

	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, bell, "", label, timeStr, "", hint),
	)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Events")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	events := a.events.List()
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("timedock-events-%s.csv", dateStr))
			if err := export.ToCSV(events, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("timedock-events-%s.json", dateStr))
			if err := export.ToJSON(events, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
