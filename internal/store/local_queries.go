// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 AleaSistemi

package store

const (
	localCreateUser = `INSERT INTO users (id, name, email, role, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?);`

	localFindUserByEmail = `SELECT id, name, email, role, password_hash, created_at
		FROM users
		WHERE email = ?;`

	localFindUserByID = `SELECT id, name, email, role, password_hash, created_at
		FROM users
		WHERE id = ?;`

	localSaveSession = `INSERT OR IGNORE INTO sessions (token_id, user_id, created_at)
		VALUES (?, ?, ?);`

	localFindSession = `SELECT token_id, user_id, created_at
		FROM sessions
		WHERE token_id = ?;`

	localDeleteSession = `DELETE FROM sessions
		WHERE token_id = ?;`

	localSelectBlob = `SELECT revision, data
		FROM tenant_blobs
		WHERE tenant_key = ?;`

	localInsertBlob = `INSERT INTO tenant_blobs (tenant_key, revision, data)
		VALUES (?, 1, ?);`

	localUpdateBlob = `UPDATE tenant_blobs
		SET revision = revision + 1, data = ?
		WHERE tenant_key = ? AND revision = ?;`
)
