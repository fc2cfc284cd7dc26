// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	startRotation = `
		INSERT INTO rotations (rotation_id, user_id, key_salt)
		VALUES (?, ?, ?)
		ON CONFLICT (rotation_id) DO NOTHING;`

	latestRotation = `
		SELECT rotation_id, key_salt
		FROM rotations
		WHERE user_id = ?
		ORDER BY rowid DESC
		LIMIT 1;`

	recordJournalEntry = `
		INSERT INTO rotation_journal (rotation_id, file_id, status, error, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (rotation_id, file_id) DO UPDATE
		SET status = excluded.status,
			error = excluded.error,
			updated_at = CURRENT_TIMESTAMP;`

	getJournalEntries = `
		SELECT rotation_id, file_id, status, error, updated_at
		FROM rotation_journal
		WHERE rotation_id = ?
		ORDER BY file_id;`

	getUnfinishedEntries = `
		SELECT file_id
		FROM rotation_journal
		WHERE rotation_id = ? AND status <> 'done'
		ORDER BY file_id;`
)
