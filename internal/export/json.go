package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/halcyde/timedock/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Events     []jsonEvent `json:"events"`
}

type jsonEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Category    string `json:"category"`
	Reminder    int    `json:"reminder_minutes,omitempty"`
	Description string `json:"description,omitempty"`
}

func ToJSON(events []store.CalendarEvent, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(events),
	}

	for _, e := range events {
		out.Events = append(out.Events, jsonEvent{
			ID:          e.ID,
			Title:       e.Title,
			Date:        e.Date,
			Time:        e.Time,
			Category:    e.Category,
			Reminder:    e.Reminder,
			Description: e.Description,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
