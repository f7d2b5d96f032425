// Package errors provides the domain error types for zoomchat.
//
// Scans are all-or-nothing: every failure is one of the sentinels below,
// wrapped with the path it concerns. Callers check the class with the IsX
// helpers or errors.Is.
//
// Usage:
//
//	import pferrors "github.com/otherjamesbrown/zoomchat/pkg/errors"
//
//	if pferrors.IsInvalidName(err) {
//	    // handle a folder name that is not valid text
//	}
package errors

import "errors"

// Domain errors.
var (
	// ErrScanFailed indicates the root folder or a room folder could not be read.
	ErrScanFailed = errors.New("scan failed")

	// ErrInvalidName indicates a folder or file name that is not valid UTF-8.
	ErrInvalidName = errors.New("invalid name")

	// ErrTranscriptOpen indicates a transcript file could not be opened.
	ErrTranscriptOpen = errors.New("cannot open transcript")

	// ErrTranscriptRead indicates a transcript failed while being read.
	ErrTranscriptRead = errors.New("cannot read transcript")

	// ErrNoMessages indicates statistics were requested before any message was counted.
	ErrNoMessages = errors.New("no messages counted")

	// ErrParticipantNotFound indicates the selected participant is not in the session.
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrValidation indicates invalid input or configuration.
	ErrValidation = errors.New("validation error")
)

// IsScanFailed reports whether any error in err's chain is ErrScanFailed.
func IsScanFailed(err error) bool {
	return errors.Is(err, ErrScanFailed)
}

// IsInvalidName reports whether any error in err's chain is ErrInvalidName.
func IsInvalidName(err error) bool {
	return errors.Is(err, ErrInvalidName)
}

// IsTranscriptOpen reports whether any error in err's chain is ErrTranscriptOpen.
func IsTranscriptOpen(err error) bool {
	return errors.Is(err, ErrTranscriptOpen)
}

// IsTranscriptRead reports whether any error in err's chain is ErrTranscriptRead.
func IsTranscriptRead(err error) bool {
	return errors.Is(err, ErrTranscriptRead)
}

// IsNoMessages reports whether any error in err's chain is ErrNoMessages.
func IsNoMessages(err error) bool {
	return errors.Is(err, ErrNoMessages)
}

// IsParticipantNotFound reports whether any error in err's chain is ErrParticipantNotFound.
func IsParticipantNotFound(err error) bool {
	return errors.Is(err, ErrParticipantNotFound)
}

// IsValidation reports whether any error in err's chain is ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
