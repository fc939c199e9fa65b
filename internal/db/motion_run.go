package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// Run statuses recorded for motion runs.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusAborted   = "aborted"
)

// MotionRun records one pass of a drive runner over a generated point
// sequence.
type MotionRun struct {
	RunID             string `json:"run_id"`
	ConfigName        string `json:"config_name"`
	StartedUnixNanos  int64  `json:"started_unix_nanos"`
	FinishedUnixNanos *int64 `json:"finished_unix_nanos,omitempty"`
	PointsTotal       int    `json:"points_total"`
	PointsVisited     int    `json:"points_visited"`
	Status            string `json:"status"`
}

// RecordRunStart inserts a new run in the running state.
func (db *DB) RecordRunStart(runID, configName string, startedUnixNanos int64, pointsTotal int) error {
	_, err := db.Exec(`
		INSERT INTO motion_runs (run_id, config_name, started_unix_nanos, points_total)
		VALUES (?, ?, ?, ?)
	`, runID, configName, startedUnixNanos, pointsTotal)
	if err != nil {
		return fmt.Errorf("failed to record run start: %w", err)
	}
	return nil
}

// RecordRunFinish marks a run finished with its final status and visit
// count.
func (db *DB) RecordRunFinish(runID string, finishedUnixNanos int64, pointsVisited int, status string) error {
	res, err := db.Exec(`
		UPDATE motion_runs
		SET finished_unix_nanos = ?, points_visited = ?, status = ?
		WHERE run_id = ?
	`, finishedUnixNanos, pointsVisited, status, runID)
	if err != nil {
		return fmt.Errorf("failed to record run finish: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("unknown run %q", runID)
	}
	return nil
}

// GetRun retrieves a run by its ID.
func (db *DB) GetRun(runID string) (*MotionRun, error) {
	var run MotionRun
	err := db.QueryRow(`
		SELECT run_id, config_name, started_unix_nanos, finished_unix_nanos,
		       points_total, points_visited, status
		FROM motion_runs
		WHERE run_id = ?
	`, runID).Scan(
		&run.RunID,
		&run.ConfigName,
		&run.StartedUnixNanos,
		&run.FinishedUnixNanos,
		&run.PointsTotal,
		&run.PointsVisited,
		&run.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("unknown run %q", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run %q: %w", runID, err)
	}
	return &run, nil
}

// ListRuns returns runs for a config name, newest first. An empty name
// lists all runs.
func (db *DB) ListRuns(configName string) ([]MotionRun, error) {
	query := `
		SELECT run_id, config_name, started_unix_nanos, finished_unix_nanos,
		       points_total, points_visited, status
		FROM motion_runs
	`
	var args []interface{}
	if configName != "" {
		query += ` WHERE config_name = ?`
		args = append(args, configName)
	}
	query += ` ORDER BY started_unix_nanos DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []MotionRun
	for rows.Next() {
		var run MotionRun
		if err := rows.Scan(
			&run.RunID,
			&run.ConfigName,
			&run.StartedUnixNanos,
			&run.FinishedUnixNanos,
			&run.PointsTotal,
			&run.PointsVisited,
			&run.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}
