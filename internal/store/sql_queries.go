// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 AleaSistemi

package store

const (
	createUser = `INSERT INTO users (id, name, email, role, password_hash)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, name, email, role, password_hash, created_at;`

	findUserByEmail = `SELECT id, name, email, role, password_hash, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT id, name, email, role, password_hash, created_at
    FROM users
    WHERE id = $1;`

	saveSession = `INSERT INTO sessions (token_id, user_id, created_at)
    VALUES ($1, $2, $3)
    ON CONFLICT (token_id) DO NOTHING;`

	findSession = `SELECT token_id, user_id, created_at
    FROM sessions
    WHERE token_id = $1;`

	deleteSession = `DELETE FROM sessions
    WHERE token_id = $1;`
)
