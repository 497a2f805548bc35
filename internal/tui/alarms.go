package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/halcyde/timedock/internal/store"
	"github.com/halcyde/timedock/internal/timeutil"
)

type alarmsModel struct {
	alarms *store.Alarms
	width  int
	height int

	cursor       int
	format       string
	defaultSound string

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formLabel      *string
	formTime       *string
	formRepeat     *string
	formCustomDays *[]string
	formSound      *string
	formSnooze     *bool
	formSnoozeMin  *string

	editingID string
}

func newAlarmsModel(a *store.Alarms, format, defaultSound string) alarmsModel {
	label, timeStr := "", ""
	repeat, sound, snoozeMin := string(store.RepeatOnce), defaultSound, "5"
	snooze := true
	customDays := []string{}
	return alarmsModel{
		alarms:         a,
		format:         format,
		defaultSound:   defaultSound,
		formLabel:      &label,
		formTime:       &timeStr,
		formRepeat:     &repeat,
		formCustomDays: &customDays,
		formSound:      &sound,
		formSnooze:     &snooze,
		formSnoozeMin:  &snoozeMin,
	}
}

func (a *alarmsModel) setSize(w, h int) {
	a.width = w
	a.height = h
}

func (a *alarmsModel) setFormat(format string) {
	a.format = format
}

func (a *alarmsModel) setDefaultSound(sound string) {
	a.defaultSound = sound
}

func (a alarmsModel) update(msg tea.Msg) (alarmsModel, tea.Cmd) {
	if a.formActive && a.form != nil {
		return a.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		alarms := a.alarms.List()

		switch {
		case key.Matches(msg, keys.Up):
			if a.cursor > 0 {
				a.cursor--
			}
		case key.Matches(msg, keys.Down):
			if a.cursor < len(alarms)-1 {
				a.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			if len(alarms) > 0 && a.cursor < len(alarms) {
				if err := a.alarms.Toggle(alarms[a.cursor].ID); err != nil {
					return a, errStatus(err)
				}
				return a, func() tea.Msg { return alarmSavedMsg{} }
			}
		case key.Matches(msg, keys.New):
			return a.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(alarms) > 0 && a.cursor < len(alarms) {
				al := alarms[a.cursor]
				return a.showForm(&al)
			}
		case key.Matches(msg, keys.Delete):
			if len(alarms) > 0 && a.cursor < len(alarms) {
				if err := a.alarms.Delete(alarms[a.cursor].ID); err != nil {
					return a, errStatus(err)
				}
				a.cursor = max(0, a.cursor-1)
				return a, func() tea.Msg { return alarmSavedMsg{} }
			}
		}
	}
	return a, nil
}

func (a alarmsModel) showForm(editing *store.Alarm) (alarmsModel, tea.Cmd) {
	if editing != nil {
		a.editingID = editing.ID
		*a.formLabel = editing.Label
		*a.formTime = editing.Time
		*a.formRepeat = string(editing.Repeat)
		days := make([]string, 0, len(editing.CustomDays))
		for _, d := range editing.CustomDays {
			days = append(days, strconv.Itoa(d))
		}
		*a.formCustomDays = days
		*a.formSound = editing.Sound
		*a.formSnooze = editing.SnoozeEnabled
		*a.formSnoozeMin = strconv.Itoa(editing.SnoozeMinutes)
	} else {
		a.editingID = ""
		*a.formLabel = ""
		*a.formTime = ""
		*a.formRepeat = string(store.RepeatOnce)
		*a.formCustomDays = []string{}
		*a.formSound = a.defaultSound
		*a.formSnooze = true
		*a.formSnoozeMin = "5"
	}

	soundOptions := make([]huh.Option[string], len(store.AlarmSounds))
	for i, s := range store.AlarmSounds {
		soundOptions[i] = huh.NewOption(s, s)
	}
	dayOptions := make([]huh.Option[string], len(dayNames))
	for i, d := range dayNames {
		dayOptions[i] = huh.NewOption(d, strconv.Itoa(i))
	}

	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Label").Placeholder("Wake up, Meeting, ...").Value(a.formLabel),
			huh.NewInput().Title("Time (HH:MM)").Value(a.formTime),
			huh.NewSelect[string]().Title("Repeat").
				Options(
					huh.NewOption("Once", string(store.RepeatOnce)),
					huh.NewOption("Daily", string(store.RepeatDaily)),
					huh.NewOption("Weekdays", string(store.RepeatWeekdays)),
					huh.NewOption("Weekends", string(store.RepeatWeekends)),
					huh.NewOption("Custom", string(store.RepeatCustom)),
				).Value(a.formRepeat),
			huh.NewMultiSelect[string]().Title("Days (custom repeat only)").
				Options(dayOptions...).Value(a.formCustomDays),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Sound").Options(soundOptions...).Value(a.formSound),
			huh.NewConfirm().Title("Enable snooze").Value(a.formSnooze),
			huh.NewSelect[string]().Title("Snooze duration").
				Options(
					huh.NewOption("5 min", "5"),
					huh.NewOption("10 min", "10"),
					huh.NewOption("15 min", "15"),
					huh.NewOption("30 min", "30"),
				).Value(a.formSnoozeMin),
		),
	).WithShowHelp(true).WithShowErrors(true)

	a.formActive = true
	return a, a.form.Init()
}

func (a alarmsModel) updateForm(msg tea.Msg) (alarmsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			a.formActive = false
			a.form = nil
			return a, nil
		}
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		a.formActive = false

		days := make([]int, 0, len(*a.formCustomDays))
		for _, d := range *a.formCustomDays {
			if n, err := strconv.Atoi(d); err == nil {
				days = append(days, n)
			}
		}
		snoozeMin, _ := strconv.Atoi(*a.formSnoozeMin)

		alarm := store.Alarm{
			ID:            a.editingID,
			Label:         *a.formLabel,
			Time:          *a.formTime,
			Active:        true,
			Repeat:        store.Repeat(*a.formRepeat),
			CustomDays:    days,
			Sound:         *a.formSound,
			SnoozeEnabled: *a.formSnooze,
			SnoozeMinutes: snoozeMin,
		}

		var err error
		if a.editingID != "" {
			if prev := a.alarms.Get(a.editingID); prev != nil {
				alarm.Active = prev.Active
			}
			err = a.alarms.Update(alarm)
		} else {
			_, err = a.alarms.Create(alarm)
		}
		if err != nil {
			return a, errStatus(err)
		}
		return a, func() tea.Msg { return alarmSavedMsg{} }
	}

	return a, cmd
}

func (a alarmsModel) view() string {
	w := a.width - 4

	if a.formActive && a.form != nil {
		title := titleStyle.Render("New Alarm")
		if a.editingID != "" {
			title = titleStyle.Render("Edit Alarm")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", a.form.View()),
		)
	}

	title := titleStyle.Render("Alarms")
	alarms := a.alarms.List()

	if len(alarms) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No alarms set. Press n to add one."),
		))
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, al := range alarms {
		cursor := "  "
		style := normalItemStyle
		if i == a.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		bell := successStyle.Render("●")
		timeStr := highlightStyle.Render(timeutil.FormatClock(al.Time, a.format))
		if !al.Active {
			bell = mutedStyle.Render("○")
			timeStr = mutedStyle.Render(timeutil.FormatClock(al.Time, a.format))
		}

		row := style.Render(cursor) + bell + " " + timeStr + "  " + style.Render(fmt.Sprintf("%-20s", al.Label)) +
			mutedStyle.Render(fmt.Sprintf(" %-18s %-8s", al.RepeatText(), al.Sound))
		if al.SnoozeEnabled {
			row += mutedStyle.Render(fmt.Sprintf(" snooze %dm", al.SnoozeMinutes))
		}
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  space: on/off"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
