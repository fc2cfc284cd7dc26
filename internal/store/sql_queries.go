package store

import sq "github.com/Masterminds/squirrel"

// psql builds Postgres statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// fileColumns is the column order scanned by scanFile.
var fileColumns = []string{
	"file_id",
	"user_id",
	"name",
	"size",
	"iv",
	"auth_tag",
	"owner_encrypted_key",
	"owner_iv",
	"emergency_encrypted_key",
	"emergency_iv",
	"created_at",
	"updated_at",
}

const (
	createUser = `
		INSERT INTO users (login, auth_hash, master_key_salt)
		VALUES ($1, $2, $3)
		RETURNING user_id, created_at, updated_at;`

	userColumns = `
		user_id,
		login,
		auth_hash,
		master_key_salt,
		COALESCE(emergency_verifier, ''),
		COALESCE(emergency_key_salt, ''),
		COALESCE(encrypted_emergency_key, ''),
		rotation_lease_until,
		created_at,
		updated_at`

	findUserByLogin = `SELECT` + userColumns + `
		FROM users
		WHERE login = $1;`

	getUserByID = `SELECT` + userColumns + `
		FROM users
		WHERE user_id = $1;`

	// lockLease locks the user row and reports whether leaseID currently
	// holds an unexpired lease. NULL columns yield NULL, scanned as false.
	lockLease = `
		SELECT rotation_lease_id = $2 AND rotation_lease_until > NOW()
		FROM users
		WHERE user_id = $1
		FOR UPDATE;`

	updateEmergencyAccess = `
		UPDATE users
		SET emergency_verifier = $2,
			emergency_key_salt = $3,
			encrypted_emergency_key = $4,
			updated_at = NOW()
		WHERE user_id = $1;`

	upgradeVerifier = `
		UPDATE users
		SET emergency_verifier = $3,
			updated_at = NOW()
		WHERE user_id = $1 AND emergency_verifier = $2;`

	// acquireLease succeeds when the lease is free, expired, or already
	// held by the same lease id (renewal).
	acquireLease = `
		UPDATE users
		SET rotation_lease_id = $2,
			rotation_lease_until = $3
		WHERE user_id = $1
		  AND (rotation_lease_until IS NULL
		       OR rotation_lease_until <= NOW()
		       OR rotation_lease_id = $2);`

	releaseLease = `
		UPDATE users
		SET rotation_lease_id = NULL,
			rotation_lease_until = NULL
		WHERE user_id = $1 AND rotation_lease_id = $2;`

	sweepExpiredLeases = `
		UPDATE users
		SET rotation_lease_id = NULL,
			rotation_lease_until = NULL
		WHERE rotation_lease_until <= NOW();`
)
