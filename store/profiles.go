package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/martinvega/visa462-tracker/dto"
)

// Load returns the named profile with its history ordered by entry ID, or
// (nil, nil) if no such profile exists.
func (s *Store) Load(name string) (*dto.Profile, error) {
	p := &dto.Profile{Name: name}
	err := s.db.QueryRow(
		"SELECT target_days, days FROM profiles WHERE name = ?", name,
	).Scan(&p.TargetDays, &p.Days)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT entry_id, ts, contributed_days, source_hours, source_label, kind
		 FROM history
		 WHERE profile_name = ?
		 ORDER BY entry_id ASC`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e dto.HistoryEntry
		var ts, kind string
		if err := rows.Scan(&e.ID, &ts, &e.ContributedDays, &e.SourceHours, &e.SourceLabel, &kind); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			e.Timestamp = t
		}
		e.Kind = dto.EntryKind(kind)
		p.History = append(p.History, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	return p, nil
}

// Save writes the whole profile record, replacing any stored history. Runs
// in one transaction so a partial write never becomes visible.
func (s *Store) Save(p *dto.Profile) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO profiles (name, target_days, days) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET target_days = excluded.target_days, days = excluded.days`,
		p.Name, p.TargetDays, p.Days,
	)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM history WHERE profile_name = ?", p.Name); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}

	for _, e := range p.History {
		_, err := tx.Exec(
			`INSERT INTO history (profile_name, entry_id, ts, contributed_days, source_hours, source_label, kind)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.Name, e.ID, e.Timestamp.UTC().Format(time.RFC3339),
			e.ContributedDays, e.SourceHours, e.SourceLabel, string(e.Kind),
		)
		if err != nil {
			return fmt.Errorf("saving history entry: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) Delete(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM history WHERE profile_name = ?", name); err != nil {
		return fmt.Errorf("deleting history: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM profiles WHERE name = ?", name); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}

	return tx.Commit()
}

func (s *Store) List() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM profiles ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning profile name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}
