package sql

import errorkind "gopkg.in/src-d/go-errors.v1"

// Error kinds for the core data model and runtime (§7). Each is a
// typed kind constructed once and instantiated with .New(args...) at
// the raise site, following the teacher's auth.ErrNotAuthorized /
// auth.ErrUnknownPermission idiom.
var (
	ErrSchemaMismatch = errorkind.NewKind("schema has %d columns but %d vectors were supplied")
	ErrRaggedMorsel   = errorkind.NewKind("column %q has length %d, expected %d")
	ErrUnknownColumn  = errorkind.NewKind("unknown column %q")
	ErrUnsupportedType = errorkind.NewKind("unsupported type %s")

	// Runtime errors (§7 "OutOfMemory, ResourceExhausted, Cancelled, Timeout").
	ErrOutOfMemory      = errorkind.NewKind("out of memory: %s")
	ErrResourceExhausted = errorkind.NewKind("resource exhausted: %s")
	ErrCancelled        = errorkind.NewKind("query cancelled")
	ErrTimeout          = errorkind.NewKind("query timed out after %s")

	// Connector errors (§7 "IOError, CorruptData, AuthError") are
	// surfaced untranslated but annotated with the scan node id.
	ErrIO          = errorkind.NewKind("scan %d: io error: %s")
	ErrCorruptData = errorkind.NewKind("scan %d: corrupt data: %s")
	ErrAuth        = errorkind.NewKind("scan %d: authentication error: %s")
)
