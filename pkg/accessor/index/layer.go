// Package index provides an in-memory metadata index layer: it caches Stat
// results for a configurable time-to-live, serving repeat Stat calls for
// hot paths without a round trip to the backend. The cache is
// write-through: a successful Create, Write, Delete or CompleteMultipart
// through this layer removes the cached entry for the affected path, so the
// next Stat of that path goes to the backend. Changes made by callers
// outside this layer are seen only once the cached entry expires.
package index

import (
	"context"
	"sync"
	"time"

	"github.com/marmos91/accessor/pkg/accessor"
)

// Layer builds an index-decorated Accessor with the given time-to-live for
// cached Stat entries. A zero (or negative) TTL disables caching: no entry
// is ever stored, so every Stat passes through to the inner accessor.
type Layer struct {
	TTL time.Duration
}

// New returns an index Layer caching Stat results for ttl.
func New(ttl time.Duration) Layer {
	return Layer{TTL: ttl}
}

func (l Layer) Apply(inner accessor.Accessor) accessor.Accessor {
	return &indexAccessor{
		inner:   inner,
		ttl:     l.TTL,
		entries: make(map[string]entry),
	}
}

type entry struct {
	metadata accessor.ObjectMetadata
	expires  time.Time
}

type indexAccessor struct {
	inner accessor.Accessor
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]entry
}

func (a *indexAccessor) Metadata() accessor.AccessorMetadata {
	return a.inner.Metadata()
}

func (a *indexAccessor) lookup(path string) (accessor.ObjectMetadata, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	e, ok := a.entries[path]
	if !ok || time.Now().After(e.expires) {
		return accessor.ObjectMetadata{}, false
	}
	return e.metadata, true
}

func (a *indexAccessor) store(path string, md accessor.ObjectMetadata) {
	if a.ttl <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries[path] = entry{metadata: md, expires: time.Now().Add(a.ttl)}
}

func (a *indexAccessor) invalidate(path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.entries, path)
}

func (a *indexAccessor) Stat(ctx context.Context, op accessor.OpStat) (accessor.ObjectMetadata, error) {
	if md, ok := a.lookup(op.Path); ok {
		return md, nil
	}
	md, err := a.inner.Stat(ctx, op)
	if err != nil {
		return md, err
	}
	a.store(op.Path, md)
	return md, nil
}

func (a *indexAccessor) Create(ctx context.Context, op accessor.OpCreate) error {
	err := a.inner.Create(ctx, op)
	if err == nil {
		a.invalidate(op.Path)
	}
	return err
}

func (a *indexAccessor) Read(ctx context.Context, op accessor.OpRead) (accessor.BytesReader, error) {
	return a.inner.Read(ctx, op)
}

func (a *indexAccessor) Write(ctx context.Context, op accessor.OpWrite, body accessor.BytesReader) (int64, error) {
	n, err := a.inner.Write(ctx, op, body)
	if err == nil {
		a.invalidate(op.Path)
	}
	return n, err
}

func (a *indexAccessor) Delete(ctx context.Context, op accessor.OpDelete) error {
	err := a.inner.Delete(ctx, op)
	if err == nil {
		a.invalidate(op.Path)
	}
	return err
}

func (a *indexAccessor) List(ctx context.Context, op accessor.OpList) (accessor.DirStream, error) {
	return a.inner.List(ctx, op)
}

func (a *indexAccessor) Presign(ctx context.Context, op accessor.OpPresign) (accessor.PresignedRequest, error) {
	return a.inner.Presign(ctx, op)
}

func (a *indexAccessor) CreateMultipart(ctx context.Context, op accessor.OpCreateMultipart) (string, error) {
	return a.inner.CreateMultipart(ctx, op)
}

func (a *indexAccessor) WriteMultipart(ctx context.Context, op accessor.OpWriteMultipart, body accessor.BytesReader) (accessor.ObjectPart, error) {
	return a.inner.WriteMultipart(ctx, op, body)
}

func (a *indexAccessor) CompleteMultipart(ctx context.Context, op accessor.OpCompleteMultipart) error {
	err := a.inner.CompleteMultipart(ctx, op)
	if err == nil {
		a.invalidate(op.Path)
	}
	return err
}

func (a *indexAccessor) AbortMultipart(ctx context.Context, op accessor.OpAbortMultipart) error {
	return a.inner.AbortMultipart(ctx, op)
}
