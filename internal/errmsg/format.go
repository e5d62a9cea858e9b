// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Files
	OpFolderScan Op = "scan folder"
	OpAudioOpen  Op = "open audio file"
	OpLRCLoad    Op = "load lyrics"
	OpLRCSave    Op = "save lyrics"

	// Downloads
	OpLyricsDownload Op = "download lyrics"
	OpLyricsSearch   Op = "search lyrics"
	OpLyricsFetch    Op = "fetch lyrics"

	// Snapshots
	OpSnapshotSave    Op = "save snapshot"
	OpSnapshotList    Op = "list snapshots"
	OpSnapshotRestore Op = "restore snapshot"

	// Editing
	OpClipboardCopy Op = "copy to clipboard"

	// Session
	OpSessionLoad Op = "load session"
	OpSessionSave Op = "save session"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
