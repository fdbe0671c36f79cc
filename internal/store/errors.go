package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameTaken is returned when an attempt to register a new user
	// fails because a user with the same username already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrTodoNotFound is returned when a todo lookup or mutation scoped by
	// (user_id, todo_id) matches no row. A todo owned by another user is
	// reported exactly like a missing one.
	ErrTodoNotFound = errors.New("todo was not found")

	// ErrSessionNotFound is returned when the requested session does not
	// exist in the session storage (never created, ended, or expired).
	ErrSessionNotFound = errors.New("session was not found")

	// ErrUnsupportedDriver is returned when the configured database driver
	// is neither postgres nor sqlite.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result set
	// fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrRowsAffected is returned when the driver cannot report the number
	// of rows touched by a statement.
	ErrRowsAffected = errors.New("failed to get rows affected")
)

// Session storage errors for the key-value backend.
var (
	// ErrEncodingSession is returned when a session cannot be serialized or
	// deserialized for the key-value store.
	ErrEncodingSession = errors.New("failed to encode session")

	// ErrSessionStorage is returned when the key-value store command fails.
	ErrSessionStorage = errors.New("session storage command failed")
)
