package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	// tell sql to use sqlite
	_ "modernc.org/sqlite"
)

// Journal is a SQLite-backed log of role migration runs. It makes the
// "already migrated" history explicit state instead of an implicit
// filesystem flag.
type Journal struct {
	db *sql.DB
}

// Record is one migration run.
type Record struct {
	ID        string
	Time      time.Time
	Hostname  string
	BootTime  time.Time
	OSVersion string

	OldPrimaryName   string
	OldPrimaryAddr   string
	NewPrimaryName   string
	NewPrimaryAddr   string
	NewSecondaryName string
	NewSecondaryAddr string

	// Outcome is "applied", "partial:<step>", or the no-op reason.
	Outcome string
}

// NewJournal opens (creating if needed) the journal database
func NewJournal(dbFile string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbFile)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS migrations (id TEXT NOT NULL PRIMARY KEY,
				time_s INT,
				hostname TEXT,
				boot_time_s INT,
				os_version TEXT,
				old_primary_name TEXT,
				old_primary_addr TEXT,
				new_primary_name TEXT,
				new_primary_addr TEXT,
				new_secondary_name TEXT,
				new_secondary_addr TEXT,
				outcome TEXT)`)
	if err != nil {
		return nil, fmt.Errorf("Error creating migrations table: %v", err)
	}

	return &Journal{db: db}, nil
}

// Add appends a migration record. The ID is assigned here.
func (j *Journal) Add(r Record) (string, error) {
	r.ID = uuid.New().String()

	_, err := j.db.Exec(`INSERT INTO migrations (id, time_s, hostname, boot_time_s,
				os_version, old_primary_name, old_primary_addr,
				new_primary_name, new_primary_addr,
				new_secondary_name, new_secondary_addr, outcome)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Time.Unix(), r.Hostname, r.BootTime.Unix(), r.OSVersion,
		r.OldPrimaryName, r.OldPrimaryAddr,
		r.NewPrimaryName, r.NewPrimaryAddr,
		r.NewSecondaryName, r.NewSecondaryAddr, r.Outcome)
	if err != nil {
		return "", fmt.Errorf("Error inserting migration record: %v", err)
	}

	return r.ID, nil
}

// List returns all records, oldest first
func (j *Journal) List() ([]Record, error) {
	rows, err := j.db.Query(`SELECT id, time_s, hostname, boot_time_s, os_version,
				old_primary_name, old_primary_addr,
				new_primary_name, new_primary_addr,
				new_secondary_name, new_secondary_addr, outcome
				FROM migrations ORDER BY time_s`)
	if err != nil {
		return nil, fmt.Errorf("Error querying migrations: %v", err)
	}
	defer rows.Close()

	var records []Record

	for rows.Next() {
		var r Record
		var timeS, bootS int64
		err = rows.Scan(&r.ID, &timeS, &r.Hostname, &bootS, &r.OSVersion,
			&r.OldPrimaryName, &r.OldPrimaryAddr,
			&r.NewPrimaryName, &r.NewPrimaryAddr,
			&r.NewSecondaryName, &r.NewSecondaryAddr, &r.Outcome)
		if err != nil {
			return nil, fmt.Errorf("Error scanning migration row: %v", err)
		}
		r.Time = time.Unix(timeS, 0)
		r.BootTime = time.Unix(bootS, 0)
		records = append(records, r)
	}

	return records, rows.Err()
}

// Close closes the journal database
func (j *Journal) Close() error {
	return j.db.Close()
}
