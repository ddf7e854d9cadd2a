package memory

import (
	"context"
	"strings"

	"github.com/marmos91/accessor/pkg/accessor"
)

// List emulates directory semantics over the flat object namespace: an
// entry is either an object directly under op.Path, or a synthetic
// directory entry for the next path segment when deeper objects exist.
func (b *Backend) List(ctx context.Context, op accessor.OpList) (accessor.DirStream, error) {
	prefix := op.Path
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	prefix = strings.TrimPrefix(prefix, "/")

	b.mu.RLock()
	defer b.mu.RUnlock()

	seenDirs := make(map[string]bool)
	var entries []accessor.DirEntry

	for _, key := range sortedKeys(b.objects) {
		trimmed := strings.TrimPrefix(key, "/")
		if !strings.HasPrefix(trimmed, prefix) {
			continue
		}
		rest := strings.TrimPrefix(trimmed, prefix)
		if rest == "" {
			continue
		}

		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			dirName := prefix + rest[:idx+1]
			if !seenDirs[dirName] {
				seenDirs[dirName] = true
				entries = append(entries, accessor.DirEntry{
					Path:     "/" + dirName,
					Metadata: accessor.ObjectMetadata{Mode: accessor.ModeDir},
				})
			}
			continue
		}

		obj := b.objects[key]
		entries = append(entries, accessor.DirEntry{
			Path: key,
			Metadata: accessor.ObjectMetadata{
				Mode:          accessor.ModeFile,
				ContentLength: int64(len(obj.data)),
				ETag:          obj.etag,
				LastModified:  obj.lastModified,
			},
		})
	}

	return &dirStream{entries: entries, index: -1}, nil
}

// dirStream serves a pre-materialized entry slice; the in-memory backend
// has no pagination boundary to emulate, so it yields everything as a
// single page behind the same lazy iterator protocol every backend uses.
type dirStream struct {
	entries []accessor.DirEntry
	index   int
}

func (s *dirStream) Next(ctx context.Context) bool {
	s.index++
	return s.index < len(s.entries)
}

func (s *dirStream) Entry() accessor.DirEntry {
	return s.entries[s.index]
}

func (s *dirStream) Err() error {
	return nil
}

func (s *dirStream) Close() error {
	return nil
}
