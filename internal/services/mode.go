package services

import "context"

// BackingMode is the storage backing a service serves from. It is
// selected exactly once, when Initialize probes the document store, and
// never revisited for the lifetime of the service instance. A document
// store that comes up (or goes away) later does not flip a running
// service; restart the process to change backings.
type BackingMode int

const (
	ModeUninitialized BackingMode = iota
	ModeFile
	ModeDocument
)

func (m BackingMode) String() string {
	switch m {
	case ModeFile:
		return "file"
	case ModeDocument:
		return "document"
	default:
		return "uninitialized"
	}
}

// Prober checks whether the document store connection is live. A nil
// Prober means no document store is configured at all.
type Prober func(ctx context.Context) error

// MigrateFunc runs one entity's migration step. Wired per service so
// the composition root controls the Questions -> Quizzes -> Posts order
// through the order of Initialize calls.
type MigrateFunc func(ctx context.Context) error
