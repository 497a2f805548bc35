package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/halcyde/timedock/internal/store"
	"github.com/halcyde/timedock/internal/timeutil"
)

type calendarModel struct {
	events *store.Events
	width  int
	height int

	selected    time.Time // selected day; also defines the displayed month
	eventCursor int
	format      string

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTitle       *string
	formDate        *string
	formTime        *string
	formDescription *string
	formCategory    *string
	formReminder    *string

	editingID string
}

func newCalendarModel(events *store.Events, format string) calendarModel {
	title, date, timeStr, desc := "", "", "", ""
	category, reminder := store.CategoryPersonal, "15"
	return calendarModel{
		events:          events,
		selected:        time.Now(),
		format:          format,
		formTitle:       &title,
		formDate:        &date,
		formTime:        &timeStr,
		formDescription: &desc,
		formCategory:    &category,
		formReminder:    &reminder,
	}
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c *calendarModel) setFormat(format string) {
	c.format = format
}

func (c calendarModel) selectedDate() string {
	return c.selected.Format("2006-01-02")
}

func (c calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		dayEvents := c.events.On(c.selectedDate())

		switch {
		case key.Matches(msg, keys.Left):
			c.selected = c.selected.AddDate(0, 0, -1)
			c.eventCursor = 0
		case key.Matches(msg, keys.Right):
			c.selected = c.selected.AddDate(0, 0, 1)
			c.eventCursor = 0
		case key.Matches(msg, keys.Up):
			c.selected = c.selected.AddDate(0, 0, -7)
			c.eventCursor = 0
		case key.Matches(msg, keys.Down):
			c.selected = c.selected.AddDate(0, 0, 7)
			c.eventCursor = 0
		case key.Matches(msg, keys.Today):
			c.selected = time.Now()
			c.eventCursor = 0
		case key.Matches(msg, keys.Enter):
			if c.eventCursor < len(dayEvents)-1 {
				c.eventCursor++
			} else {
				c.eventCursor = 0
			}
		case key.Matches(msg, keys.New):
			return c.showForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(dayEvents) > 0 && c.eventCursor < len(dayEvents) {
				ev := dayEvents[c.eventCursor]
				return c.showForm(&ev)
			}
		case key.Matches(msg, keys.Delete):
			if len(dayEvents) > 0 && c.eventCursor < len(dayEvents) {
				if err := c.events.Delete(dayEvents[c.eventCursor].ID); err != nil {
					return c, errStatus(err)
				}
				c.eventCursor = 0
				return c, func() tea.Msg { return eventSavedMsg{} }
			}
		}
	}
	return c, nil
}

func (c calendarModel) showForm(editing *store.CalendarEvent) (calendarModel, tea.Cmd) {
	if editing != nil {
		c.editingID = editing.ID
		*c.formTitle = editing.Title
		*c.formDate = editing.Date
		*c.formTime = editing.Time
		*c.formDescription = editing.Description
		*c.formCategory = editing.Category
		*c.formReminder = strconv.Itoa(editing.Reminder)
	} else {
		c.editingID = ""
		*c.formTitle = ""
		*c.formDate = c.selectedDate()
		*c.formTime = ""
		*c.formDescription = ""
		*c.formCategory = store.CategoryPersonal
		*c.formReminder = "15"
	}

	catOptions := make([]huh.Option[string], len(store.EventCategories))
	for i, cat := range store.EventCategories {
		catOptions[i] = huh.NewOption(cat, cat)
	}

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(c.formTitle),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(c.formDate),
			huh.NewInput().Title("Time (HH:MM)").Value(c.formTime),
			huh.NewInput().Title("Description").Value(c.formDescription),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(c.formCategory),
			huh.NewSelect[string]().Title("Reminder").
				Options(
					huh.NewOption("None", "0"),
					huh.NewOption("5 min before", "5"),
					huh.NewOption("15 min before", "15"),
					huh.NewOption("30 min before", "30"),
					huh.NewOption("1 hour before", "60"),
				).Value(c.formReminder),
		),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c calendarModel) updateForm(msg tea.Msg) (calendarModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		reminder, _ := strconv.Atoi(*c.formReminder)
		ev := store.CalendarEvent{
			ID:          c.editingID,
			Title:       *c.formTitle,
			Date:        *c.formDate,
			Time:        *c.formTime,
			Description: *c.formDescription,
			Category:    *c.formCategory,
			Reminder:    reminder,
		}
		var err error
		if c.editingID != "" {
			err = c.events.Update(ev)
		} else {
			_, err = c.events.Create(ev)
		}
		if err != nil {
			return c, errStatus(err)
		}
		return c, func() tea.Msg { return eventSavedMsg{} }
	}

	return c, cmd
}

func (c calendarModel) view() string {
	w := c.width - 4

	if c.formActive && c.form != nil {
		title := titleStyle.Render("New Event")
		if c.editingID != "" {
			title = titleStyle.Render("Edit Event")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", c.form.View()),
		)
	}

	grid := c.renderMonthGrid(w)
	list := c.renderDayEvents(w)
	chart := c.renderCategoryChart(w)

	return lipgloss.JoinVertical(lipgloss.Left, grid, list, chart)
}

func (c calendarModel) renderMonthGrid(w int) string {
	year, month := c.selected.Year(), c.selected.Month()
	header := titleStyle.Render(fmt.Sprintf("%s %d", month, year))

	byDay := eventDays(c.events.List(), month, year)

	var head []string
	for _, d := range dayNames {
		head = append(head, mutedStyle.Render(fmt.Sprintf("%4s", d)))
	}

	rows := []string{header, "", strings.Join(head, "")}

	line := ""
	col := timeutil.FirstWeekday(month, year)
	line += strings.Repeat("    ", col)
	for day := 1; day <= timeutil.DaysInMonth(month, year); day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)

		mark := " "
		if byDay[day] {
			mark = accentStyle.Render("·")
		}
		cell := fmt.Sprintf("%3d", day)
		switch {
		case timeutil.IsSameDay(date, c.selected):
			cell = selectedCellStyle.Render(cell)
		case timeutil.IsToday(date):
			cell = todayCellStyle.Render(cell)
		}
		line += cell + mark

		col++
		if col == 7 {
			rows = append(rows, line)
			line = ""
			col = 0
		}
	}
	if line != "" {
		rows = append(rows, line)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  ←↑↓→: move  t: today  n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (c calendarModel) renderDayEvents(w int) string {
	title := titleStyle.Render("Events for " + c.selected.Format("Jan 2, 2006"))
	dayEvents := c.events.On(c.selectedDate())

	if len(dayEvents) == 0 {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, mutedStyle.Render("No events for this day")),
		)
	}

	var rows []string
	rows = append(rows, title)
	for i, ev := range dayEvents {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(categoryColor(ev.Category))).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == c.eventCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%s %s  %-24s", cursor, dot, timeutil.FormatClock(ev.Time, c.format), ev.Title))
		if ev.Description != "" {
			row += mutedStyle.Render("  " + ev.Description)
		}
		if ev.Reminder > 0 {
			row += mutedStyle.Render(fmt.Sprintf("  ⏱ %dm", ev.Reminder))
		}
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// renderCategoryChart draws a bar per category counting the displayed
// month's events.
func (c calendarModel) renderCategoryChart(w int) string {
	counts := categoryCounts(c.events.List(), c.selected.Month(), c.selected.Year())

	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return ""
	}

	chartWidth := w - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chart := barchart.New(chartWidth, 6)

	var bars []barchart.BarData
	for _, cat := range store.EventCategories {
		n := counts[cat]
		if n == 0 {
			continue
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(categoryColor(cat)))
		bars = append(bars, barchart.BarData{
			Label:  cat,
			Values: []barchart.BarValue{{Name: cat, Value: float64(n), Style: style}},
		})
	}
	chart.PushAll(bars)
	chart.Draw()

	title := titleStyle.Render("This Month")
	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", chart.View()),
	)
}

// eventDays maps day-of-month to whether any event falls on it.
func eventDays(events []store.CalendarEvent, month time.Month, year int) map[int]bool {
	out := make(map[int]bool)
	for _, ev := range events {
		day, err := ev.Day()
		if err != nil {
			continue
		}
		if day.Month() == month && day.Year() == year {
			out[day.Day()] = true
		}
	}
	return out
}

// categoryCounts tallies the month's events per category.
func categoryCounts(events []store.CalendarEvent, month time.Month, year int) map[string]int {
	out := make(map[string]int)
	for _, ev := range events {
		day, err := ev.Day()
		if err != nil {
			continue
		}
		if day.Month() == month && day.Year() == year {
			out[ev.Category]++
		}
	}
	return out
}
