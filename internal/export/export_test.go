package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/halcyde/timedock/internal/store"
)

func sampleEvents() []store.CalendarEvent {
	return []store.CalendarEvent{
		{
			ID:          "id-1",
			Title:       "Dentist",
			Date:        "2026-09-14",
			Time:        "10:00",
			Category:    store.CategoryHealth,
			Reminder:    15,
			Description: "bring insurance card",
		},
		{
			ID:       "id-2",
			Title:    "Standup",
			Date:     "2026-09-15",
			Time:     "09:30",
			Category: store.CategoryWork,
		},
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	if err := ToCSV(sampleEvents(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][1] != "Title" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "Dentist" || rows[1][5] != "15" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[2][1] != "Standup" || rows[2][6] != "" {
		t.Fatalf("unexpected second row: %v", rows[2])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("empty export should still have a header, got %d rows", len(rows))
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	if err := ToJSON(sampleEvents(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out jsonExport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}

	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("count mismatch: count=%d events=%d", out.Count, len(out.Events))
	}
	if out.ExportedAt == "" {
		t.Fatal("exported_at should be set")
	}
	if out.Events[0].Title != "Dentist" || out.Events[0].Reminder != 15 {
		t.Fatalf("unexpected first event: %+v", out.Events[0])
	}
	if out.Events[1].Reminder != 0 {
		t.Fatalf("unexpected second event: %+v", out.Events[1])
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := ToJSON(nil, path); err != nil {
		t.Fatal(err)
	}

	var out jsonExport
	data, _ := os.ReadFile(path)
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 0 || len(out.Events) != 0 {
		t.Fatalf("expected empty export, got %+v", out)
	}
}
