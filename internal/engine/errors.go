package engine

import "errors"

// ErrUnreadableInput reports that the source file could not be read or
// decoded by the table-extraction layer. The only fatal input condition.
var ErrUnreadableInput = errors.New("unreadable input")

// ErrSchemaMismatch reports that the reference schema used for final
// reconciliation differs from the transaction column layout.
var ErrSchemaMismatch = errors.New("schema mismatch")
