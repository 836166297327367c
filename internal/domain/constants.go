package domain

import "time"

// Version is the release identifier reported by the banner and !update.
const Version = "1.2.3"

// File permission constants.
const (
	// DirectoryPermissions is the default permission for state directories.
	DirectoryPermissions = 0o755
	// SecureFilePermissions protects the secret store file.
	SecureFilePermissions = 0o600
)

// History constants.
const (
	// DefaultMaxHistory bounds the persisted history when unconfigured.
	DefaultMaxHistory = 100
	// DefaultHistoryDisplay is how many entries !history shows by default.
	DefaultHistoryDisplay = 20
	// PromptHistoryContext is how many recent entries are fed to the
	// provider as conversation context.
	PromptHistoryContext = 5
)

// Provider constants.
const (
	// DefaultHTTPTimeout bounds one translate/explain round-trip.
	DefaultHTTPTimeout = 60 * time.Second
	// DefaultMaxTokens caps provider output; a single command line fits
	// comfortably.
	DefaultMaxTokens = 200
)
