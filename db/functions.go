package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var r Run
	err := s.Scan(&r.ID, &r.Mode, &r.Source, &r.RecordingStart, &r.Before, &r.After, &r.Duration,
		&r.StartedAt, &r.FinishedAt, &r.Succeeded, &r.Failed, &r.ReportPath)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// SaveRun inserts a run and its outcomes in one transaction.
// An empty run ID is replaced with a new one; the stored ID is returned.
func SaveRun(db *sql.DB, run Run, outcomes []Outcome) (string, error) {
	if run.ID == "" {
		run.ID = NewRunID()
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin save run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(InsertRunSQL, run.ID, run.Mode, run.Source, run.RecordingStart, run.Before, run.After,
		run.Duration, run.StartedAt, run.FinishedAt, run.Succeeded, run.Failed, run.ReportPath)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(InsertOutcomeSQL)
	if err != nil {
		return "", fmt.Errorf("prepare insert outcome: %w", err)
	}
	defer stmt.Close()

	for _, o := range outcomes {
		_, err := stmt.Exec(run.ID, o.Line, o.Expression, o.Label, o.Start, o.End, o.OutputPath, o.Filesize, o.Status, o.Error)
		if err != nil {
			return "", fmt.Errorf("insert outcome for line %d: %w", o.Line, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit save run: %w", err)
	}
	return run.ID, nil
}

// SelectRuns returns the most recent runs, newest first.
func SelectRuns(db *sql.DB, limit int) ([]Run, error) {
	rows, err := db.Query(SelectRunsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// SelectRunByIDPrefix returns the run whose ID starts with prefix.
// It fails if no run or more than one run matches.
func SelectRunByIDPrefix(db *sql.DB, prefix string) (*Run, error) {
	rows, err := db.Query(SelectRunByIDPrefixSQL, prefix)
	if err != nil {
		return nil, fmt.Errorf("select run: %w", err)
	}
	defer rows.Close()

	var found []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("run '%s' not found", prefix)
	case 1:
		return found[0], nil
	}
	return nil, fmt.Errorf("run id '%s' is ambiguous (%d matches)", prefix, len(found))
}

// SelectOutcomesByRun returns the outcomes of a run in line order.
func SelectOutcomesByRun(db *sql.DB, runID string) ([]Outcome, error) {
	rows, err := db.Query(SelectOutcomesByRunSQL, runID)
	if err != nil {
		return nil, fmt.Errorf("select outcomes: %w", err)
	}
	defer rows.Close()

	var out []Outcome
	for rows.Next() {
		var o Outcome
		if err := rows.Scan(&o.ID, &o.RunID, &o.Line, &o.Expression, &o.Label, &o.Start, &o.End,
			&o.OutputPath, &o.Filesize, &o.Status, &o.Error); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and, through the foreign key, its outcomes.
func DeleteRun(db *sql.DB, runID string) error {
	result, err := db.Exec(DeleteRunSQL, runID)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deletion result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run '%s' not found", runID)
	}
	return nil
}
