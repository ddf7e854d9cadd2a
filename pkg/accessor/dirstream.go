package accessor

import "context"

// DirEntry is one entry produced by a directory stream.
type DirEntry struct {
	Path     string
	Metadata ObjectMetadata
}

// DirStream is a lazy, forward-only, non-restartable sequence of DirEntry
// values, modeled after bufio.Scanner and database/sql.Rows: call Next to
// advance, Entry to read the current value, and check Err once Next returns
// false. The stream issues one listing request per page and advances a
// continuation marker internally; an empty marker from the backend ends the
// stream (§4.5, §9).
type DirStream interface {
	// Next advances to the next entry, fetching another page from the
	// backend if the current page is exhausted. It returns false at end
	// of stream or on error — callers must check Err to distinguish the
	// two.
	Next(ctx context.Context) bool
	// Entry returns the entry most recently made current by Next. Its
	// result is undefined before the first call to Next or after Next
	// returns false.
	Entry() DirEntry
	// Err returns the first error encountered, if any. A mid-stream error
	// terminates the stream (§4.5).
	Err() error
	// Close releases any resources held by the stream. It is safe to
	// call Close without exhausting the stream.
	Close() error
}

// BlockingDirStream is the synchronous-path equivalent of DirStream, used
// from BlockingAccessor.ListBlocking. It has no context parameter and is
// not cancellable mid-page, matching the blocking surface's semantics
// elsewhere in the contract.
type BlockingDirStream interface {
	Next() bool
	Entry() DirEntry
	Err() error
	Close() error
}
