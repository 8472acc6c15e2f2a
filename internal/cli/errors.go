package cli

import (
	"errors"
	"io/fs"

	"github.com/aidanlsb/slashcmd/internal/semver"
	"github.com/aidanlsb/slashcmd/internal/versions"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	ErrRepoNotFound   = "REPO_NOT_FOUND"
	ErrConfigInvalid  = "CONFIG_INVALID"
	ErrCommandMissing = "COMMAND_NOT_FOUND"

	ErrInvalidVersion    = "INVALID_VERSION"
	ErrInvalidChangeKind = "INVALID_CHANGE_KIND"

	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	ErrValidationFailed = "VALIDATION_FAILED"
	ErrIncompatible     = "INCOMPATIBLE_VERSION"

	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"
)

// Warning codes for non-fatal issues.
const (
	WarnAlreadyInitialized = "ALREADY_INITIALIZED"
	WarnCommandFileMissing = "COMMAND_FILE_MISSING"
)

// errorCode maps a domain error onto a stable code, or fallback.
func errorCode(err error, fallback string) string {
	switch {
	case errors.Is(err, semver.ErrInvalidVersion):
		return ErrInvalidVersion
	case errors.Is(err, semver.ErrInvalidChangeKind):
		return ErrInvalidChangeKind
	case errors.Is(err, versions.ErrNotRegistered):
		return ErrCommandMissing
	case errors.Is(err, versions.ErrNoChanges):
		return ErrMissingArgument
	case errors.Is(err, fs.ErrNotExist):
		return ErrFileNotFound
	default:
		return fallback
	}
}
