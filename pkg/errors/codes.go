package errors

import "errors"

// ErrorCode classifies a failure for reporting.
type ErrorCode string

const (
	CodeScanFailed          ErrorCode = "scan_failed"
	CodeInvalidName         ErrorCode = "invalid_name"
	CodeTranscriptOpen      ErrorCode = "transcript_open"
	CodeTranscriptRead      ErrorCode = "transcript_read"
	CodeNoMessages          ErrorCode = "no_messages"
	CodeParticipantNotFound ErrorCode = "participant_not_found"
	CodeValidation          ErrorCode = "validation"
	CodeUnknown             ErrorCode = "unknown"
)

// ErrorCodeInfo contains metadata about an error code.
type ErrorCodeInfo struct {
	Code            ErrorCode
	Description     string
	SuggestedAction string
}

// ErrorCodeRegistry maps error codes to their metadata.
var ErrorCodeRegistry = map[ErrorCode]ErrorCodeInfo{
	CodeScanFailed: {
		Code:            CodeScanFailed,
		Description:     "The chat folder or one of its room folders could not be read",
		SuggestedAction: "Check the folder exists and is readable, then run the scan again",
	},
	CodeInvalidName: {
		Code:            CodeInvalidName,
		Description:     "A folder or file name is not valid text",
		SuggestedAction: "Rename the offending folder; room folders must keep Zoom's naming",
	},
	CodeTranscriptOpen: {
		Code:            CodeTranscriptOpen,
		Description:     "A meeting_saved_chat.txt file could not be opened",
		SuggestedAction: "Check the file permissions; the whole scan is discarded",
	},
	CodeTranscriptRead: {
		Code:            CodeTranscriptRead,
		Description:     "A transcript failed while being read",
		SuggestedAction: "Re-export the chat from Zoom and scan again",
	},
	CodeNoMessages: {
		Code:            CodeNoMessages,
		Description:     "No participant messages were found",
		SuggestedAction: "Check the folder holds Zoom room exports: zoomchat scan <folder> --dry-run",
	},
	CodeParticipantNotFound: {
		Code:            CodeParticipantNotFound,
		Description:     "No participant with that name was found",
		SuggestedAction: "List the participants: zoomchat students <folder>",
	},
	CodeValidation: {
		Code:            CodeValidation,
		Description:     "Invalid input or configuration",
		SuggestedAction: "Inspect the configuration: zoomchat config show",
	},
}

// Classify maps err to its error code.
func Classify(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidName):
		return CodeInvalidName
	case errors.Is(err, ErrTranscriptOpen):
		return CodeTranscriptOpen
	case errors.Is(err, ErrTranscriptRead):
		return CodeTranscriptRead
	case errors.Is(err, ErrScanFailed):
		return CodeScanFailed
	case errors.Is(err, ErrNoMessages):
		return CodeNoMessages
	case errors.Is(err, ErrParticipantNotFound):
		return CodeParticipantNotFound
	case errors.Is(err, ErrValidation):
		return CodeValidation
	default:
		return CodeUnknown
	}
}

// GetSuggestedAction returns the suggested action for the given error code.
func GetSuggestedAction(code ErrorCode) string {
	if info, ok := ErrorCodeRegistry[code]; ok {
		return info.SuggestedAction
	}
	return "Run again with --debug for more details"
}

// GetDescription returns the human-readable description for the given error code.
func GetDescription(code ErrorCode) string {
	if info, ok := ErrorCodeRegistry[code]; ok {
		return info.Description
	}
	return "Unknown error"
}
