package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrConfigNotFound is returned when a named configuration does not
// exist.
var ErrConfigNotFound = errors.New("motion config not found")

// MotionConfig is a stored motion-list configuration, kept in its TOML
// form so files and database rows stay interchangeable.
type MotionConfig struct {
	ConfigID   int64  `json:"config_id"`
	Name       string `json:"name"`
	ConfigTOML string `json:"config_toml"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// SaveConfig stores a configuration under a unique name, replacing any
// existing configuration of that name.
func (db *DB) SaveConfig(name, configTOML string) error {
	_, err := db.Exec(`
		INSERT INTO motion_configs (name, config_toml)
		VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET
			config_toml = excluded.config_toml,
			updated_at = CURRENT_TIMESTAMP
	`, name, configTOML)
	if err != nil {
		return fmt.Errorf("failed to save motion config %q: %w", name, err)
	}
	return nil
}

// GetConfig retrieves a stored configuration by name.
func (db *DB) GetConfig(name string) (*MotionConfig, error) {
	var cfg MotionConfig
	err := db.QueryRow(`
		SELECT config_id, name, config_toml, created_at, updated_at
		FROM motion_configs
		WHERE name = ?
	`, name).Scan(&cfg.ConfigID, &cfg.Name, &cfg.ConfigTOML, &cfg.CreatedAt, &cfg.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query motion config %q: %w", name, err)
	}
	return &cfg, nil
}

// ListConfigs returns all stored configurations ordered by name.
func (db *DB) ListConfigs() ([]MotionConfig, error) {
	rows, err := db.Query(`
		SELECT config_id, name, config_toml, created_at, updated_at
		FROM motion_configs
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query motion configs: %w", err)
	}
	defer rows.Close()

	var configs []MotionConfig
	for rows.Next() {
		var cfg MotionConfig
		if err := rows.Scan(&cfg.ConfigID, &cfg.Name, &cfg.ConfigTOML, &cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan motion config: %w", err)
		}
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating motion configs: %w", err)
	}
	return configs, nil
}

// DeleteConfig removes a stored configuration by name.
func (db *DB) DeleteConfig(name string) error {
	res, err := db.Exec(`DELETE FROM motion_configs WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete motion config %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrConfigNotFound, name)
	}
	return nil
}
