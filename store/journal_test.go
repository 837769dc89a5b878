package store

import (
	"path/filepath"
	"testing"
	"time"
)

func TestJournalAddList(t *testing.T) {
	j, err := NewJournal(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatal("Error opening journal: ", err)
	}
	defer j.Close()

	rec := Record{
		Time:             time.Now(),
		Hostname:         "node-1",
		BootTime:         time.Now().Add(-time.Hour),
		OSVersion:        "1.2.3",
		OldPrimaryName:   "wlan0",
		OldPrimaryAddr:   "aa:bb:cc:dd:ee:ff",
		NewPrimaryName:   "enp3s0",
		NewPrimaryAddr:   "11:22:33:44:55:66",
		NewSecondaryName: "wlan0",
		NewSecondaryAddr: "aa:bb:cc:dd:ee:ff",
		Outcome:          "applied",
	}

	id, err := j.Add(rec)
	if err != nil {
		t.Fatal("Error adding record: ", err)
	}
	if id == "" {
		t.Fatal("Expected a record ID")
	}

	records, err := j.List()
	if err != nil {
		t.Fatal("Error listing records: ", err)
	}
	if len(records) != 1 {
		t.Fatal("Expected 1 record, got: ", len(records))
	}

	got := records[0]
	if got.ID != id {
		t.Error("Wrong ID: ", got.ID)
	}
	if got.Hostname != "node-1" || got.Outcome != "applied" {
		t.Errorf("Record mismatch: %+v", got)
	}
	if got.NewPrimaryName != "enp3s0" || got.NewPrimaryAddr != "11:22:33:44:55:66" {
		t.Errorf("Identity mismatch: %+v", got)
	}
	if got.Time.Unix() != rec.Time.Unix() {
		t.Error("Time not round-tripped")
	}
}

func TestJournalOrder(t *testing.T) {
	j, err := NewJournal(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatal("Error opening journal: ", err)
	}
	defer j.Close()

	base := time.Now()
	for i, outcome := range []string{"partial:naming-rule", "applied"} {
		_, err := j.Add(Record{
			Time:    base.Add(time.Duration(i) * time.Minute),
			Outcome: outcome,
		})
		if err != nil {
			t.Fatal("Error adding record: ", err)
		}
	}

	records, err := j.List()
	if err != nil {
		t.Fatal("Error listing records: ", err)
	}
	if len(records) != 2 {
		t.Fatal("Expected 2 records, got: ", len(records))
	}

	// oldest first
	if records[0].Outcome != "partial:naming-rule" {
		t.Error("Wrong order: ", records[0].Outcome)
	}
}
