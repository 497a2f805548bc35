package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/halcyde/timedock/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewClock viewState = iota
	viewCalendar
	viewAlarms
	viewSettings
)

var viewNames = []string{"Clock", "Calendar", "Alarms", "Settings"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

type settingsSavedMsg struct {
	settings store.Settings
}

type alarmSavedMsg struct{}
type eventSavedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func errStatus(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}

var dayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func categoryColor(category string) string {
	switch category {
	case store.CategoryWork:
		return "#3498DB"
	case store.CategoryPersonal:
		return "#2ECC71"
	case store.CategoryHealth:
		return "#E74C3C"
	case store.CategorySocial:
		return "#9B59B6"
	}
	return "#95A5A6"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
