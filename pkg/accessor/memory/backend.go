// Package memory provides a dependency-free, in-process Accessor backend.
// It exists to exercise the Accessor contract and the layer stack in tests
// without a network dependency — not as a spec.md backend in its own
// right (only Azure Blob is).
package memory

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marmos91/accessor/pkg/accessor"
)

// Backend is an in-memory Accessor. The zero value is not usable; use New.
type Backend struct {
	accessor.UnsupportedBlocking

	name string

	mu      sync.RWMutex
	objects map[string]object
	uploads map[string]*multipartUpload
}

type object struct {
	data         []byte
	contentMD5   string
	etag         string
	lastModified time.Time
}

// New returns an empty in-memory Backend named name (used only in
// AccessorMetadata.Name).
func New(name string) *Backend {
	return &Backend{
		name:    name,
		objects: make(map[string]object),
		uploads: make(map[string]*multipartUpload),
	}
}

func (b *Backend) Metadata() accessor.AccessorMetadata {
	return accessor.AccessorMetadata{
		Scheme: "memory",
		Root:   "/",
		Name:   b.name,
		Capabilities: accessor.CapRead | accessor.CapWrite | accessor.CapList |
			accessor.CapPresign | accessor.CapMultipart,
	}
}

func (b *Backend) Create(ctx context.Context, op accessor.OpCreate) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[op.Path] = object{lastModified: time.Now(), etag: newETag()}
	return nil
}

func (b *Backend) Read(ctx context.Context, op accessor.OpRead) (accessor.BytesReader, error) {
	b.mu.RLock()
	obj, ok := b.objects[op.Path]
	b.mu.RUnlock()
	if !ok {
		return nil, accessor.NewError(accessor.KindNotFound, "read", op.Path, nil)
	}

	data := obj.data
	if op.HasRange {
		end := op.Offset + op.Size
		if op.Offset < 0 || end > int64(len(data)) || op.Offset > end {
			return nil, accessor.NewError(accessor.KindInvalidInput, "read", op.Path, nil)
		}
		data = data[op.Offset:end]
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *Backend) Write(ctx context.Context, op accessor.OpWrite, body accessor.BytesReader) (int64, error) {
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return 0, accessor.NewError(accessor.KindOther, "write", op.Path, err)
	}

	b.mu.Lock()
	b.objects[op.Path] = object{data: data, lastModified: time.Now(), etag: newETag()}
	b.mu.Unlock()

	return int64(len(data)), nil
}

func (b *Backend) Stat(ctx context.Context, op accessor.OpStat) (accessor.ObjectMetadata, error) {
	if strings.HasSuffix(op.Path, "/") {
		if !b.hasEntryUnder(op.Path) {
			return accessor.ObjectMetadata{}, accessor.NewError(accessor.KindNotFound, "stat", op.Path, nil)
		}
		return accessor.ObjectMetadata{Mode: accessor.ModeDir}, nil
	}

	b.mu.RLock()
	obj, ok := b.objects[op.Path]
	b.mu.RUnlock()
	if !ok {
		return accessor.ObjectMetadata{}, accessor.NewError(accessor.KindNotFound, "stat", op.Path, nil)
	}
	return accessor.ObjectMetadata{
		Mode:          accessor.ModeFile,
		ContentLength: int64(len(obj.data)),
		ETag:          obj.etag,
		LastModified:  obj.lastModified,
	}, nil
}

func (b *Backend) Delete(ctx context.Context, op accessor.OpDelete) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	// deleting a nonexistent object is idempotent, matching object-storage
	// delete semantics (spec.md §4.2 edge cases).
	delete(b.objects, op.Path)
	return nil
}

func (b *Backend) Presign(ctx context.Context, op accessor.OpPresign) (accessor.PresignedRequest, error) {
	method := "GET"
	if op.Operation == accessor.PresignWrite {
		method = "PUT"
	}
	expires := time.Now().Add(time.Duration(op.Expiry) * time.Second)
	return accessor.PresignedRequest{
		Method:  method,
		URL:     "memory://" + strings.TrimPrefix(op.Path, "/") + "?op=" + op.Operation.String(),
		Expires: expires,
	}, nil
}

func (b *Backend) hasEntryUnder(prefix string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for p := range b.objects {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// newETag returns a short unique identifier used as an object's ETag; the
// in-memory backend does not compute a real content hash.
func newETag() string {
	return uuid.NewString()
}

func sortedKeys(m map[string]object) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
