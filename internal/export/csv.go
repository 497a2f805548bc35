package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/halcyde/timedock/internal/store"
)

func ToCSV(events []store.CalendarEvent, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Title", "Date", "Time", "Category", "Reminder (min)", "Description"}); err != nil {
		return err
	}

	for _, e := range events {
		row := []string{
			e.ID,
			e.Title,
			e.Date,
			e.Time,
			e.Category,
			fmt.Sprintf("%d", e.Reminder),
			e.Description,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
