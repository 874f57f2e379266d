package database

import "time"

// Connection pool tuning
const (
	// DefaultMinConnections keeps a couple of warm connections so the first
	// request after an idle stretch does not pay the handshake.
	DefaultMinConnections = 2

	// DefaultHealthCheckPeriod is how often idle connections are rechecked.
	DefaultHealthCheckPeriod = time.Minute

	// DefaultConnectTimeout bounds pool creation and the startup ping.
	DefaultConnectTimeout = 10 * time.Second
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
)

// Log Messages
const (
	LogMsgDatabaseConnected = "Database connection pool ready"
)
