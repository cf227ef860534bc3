package database

import (
	"context"
	"database/sql"
)

// schema holds the DDL executed at startup. Statements are idempotent
// (CREATE TABLE IF NOT EXISTS) so restarting the service against an
// existing database is a no-op. Cascading foreign keys from agencies to
// all dependent tables implement the delete-agency contract.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS agencies (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL,
		api_key CHAR(36) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_agencies_name (name),
		UNIQUE KEY uq_agencies_api_key (api_key)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS agency_settings (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		agency_id BIGINT UNSIGNED NOT NULL,
		total_licenses INT NOT NULL DEFAULT 25,
		PRIMARY KEY (id),
		UNIQUE KEY uq_settings_agency (agency_id),
		CONSTRAINT fk_settings_agency FOREIGN KEY (agency_id)
			REFERENCES agencies (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS licenses (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		agency_id BIGINT UNSIGNED NOT NULL,
		device_id VARCHAR(191) NOT NULL,
		username VARCHAR(255) NOT NULL,
		hostname VARCHAR(255) NULL,
		location VARCHAR(255) NULL,
		operating_system VARCHAR(255) NULL,
		activated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		status ENUM('active','inactive') NOT NULL DEFAULT 'active',
		PRIMARY KEY (id),
		UNIQUE KEY uq_licenses_agency_device (agency_id, device_id),
		CONSTRAINT fk_licenses_agency FOREIGN KEY (agency_id)
			REFERENCES agencies (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS versions (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		agency_id BIGINT UNSIGNED NOT NULL,
		version_number VARCHAR(64) NOT NULL,
		release_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		download_url TEXT NOT NULL,
		is_latest BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (id),
		UNIQUE KEY uq_versions_agency_number (agency_id, version_number),
		CONSTRAINT fk_versions_agency FOREIGN KEY (agency_id)
			REFERENCES agencies (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates all tables the service needs if they do not
// already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
