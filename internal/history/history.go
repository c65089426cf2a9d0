// bt - Build and packaging tool for the Kegsmith desktop application
// Copyright (C) 2025 The Kegsmith Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package history records setup and packaging runs in a small SQLite
// database in the user cache directory, so `bt history` can show what
// was built when and with what result.
package history

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	command     TEXT NOT NULL,
	version     TEXT NOT NULL,
	platform    TEXT NOT NULL,
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL,
	succeeded   BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS artifacts (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id     INTEGER NOT NULL REFERENCES runs(id),
	file_name  TEXT NOT NULL,
	sha256     TEXT NOT NULL,
	size_bytes INTEGER NOT NULL
);
`

// Run is one invocation of a bt subcommand.
type Run struct {
	ID         int64     `db:"id"`
	Command    string    `db:"command"`
	Version    string    `db:"version"`
	Platform   string    `db:"platform"`
	StartedAt  time.Time `db:"started_at"`
	FinishedAt time.Time `db:"finished_at"`
	Succeeded  bool      `db:"succeeded"`
}

// Artifact is one file a packaging run produced.
type Artifact struct {
	ID        int64  `db:"id"`
	RunID     int64  `db:"run_id"`
	FileName  string `db:"file_name"`
	SHA256    string `db:"sha256"`
	SizeBytes int64  `db:"size_bytes"`
}

// Store is the history database.
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if necessary) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts a run and returns its id.
func (s *Store) RecordRun(run Run) (int64, error) {
	res, err := s.db.NamedExec(
		`INSERT INTO runs (command, version, platform, started_at, finished_at, succeeded)
		 VALUES (:command, :version, :platform, :started_at, :finished_at, :succeeded)`,
		run,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// AddArtifact attaches an artifact to a recorded run.
func (s *Store) AddArtifact(runID int64, a Artifact) error {
	a.RunID = runID
	_, err := s.db.NamedExec(
		`INSERT INTO artifacts (run_id, file_name, sha256, size_bytes)
		 VALUES (:run_id, :file_name, :sha256, :size_bytes)`,
		a,
	)
	return err
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(limit int) ([]Run, error) {
	var runs []Run
	err := s.db.Select(&runs,
		`SELECT * FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	return runs, err
}

// Artifacts returns the artifacts recorded for a run.
func (s *Store) Artifacts(runID int64) ([]Artifact, error) {
	var artifacts []Artifact
	err := s.db.Select(&artifacts,
		`SELECT * FROM artifacts WHERE run_id = ? ORDER BY id`, runID)
	return artifacts, err
}
