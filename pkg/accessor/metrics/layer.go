package metrics

import (
	"context"
	"io"
	"time"

	"github.com/marmos91/accessor/pkg/accessor"
)

// Layer decorates an Accessor to record Prometheus metrics for every
// operation. A Layer built with a nil *Metrics is a no-op pass-through.
type Layer struct {
	Metrics *Metrics
}

// New returns a metrics Layer backed by m.
func New(m *Metrics) Layer {
	return Layer{Metrics: m}
}

func (l Layer) Apply(inner accessor.Accessor) accessor.Accessor {
	return metricsAccessor{inner: inner, m: l.Metrics}
}

type metricsAccessor struct {
	inner accessor.Accessor
	m     *Metrics
}

func (a metricsAccessor) Metadata() accessor.AccessorMetadata {
	return a.inner.Metadata()
}

func (a metricsAccessor) Create(ctx context.Context, op accessor.OpCreate) error {
	start := time.Now()
	err := a.inner.Create(ctx, op)
	a.m.observe("create", time.Since(start), err)
	return err
}

func (a metricsAccessor) Read(ctx context.Context, op accessor.OpRead) (accessor.BytesReader, error) {
	start := time.Now()
	r, err := a.inner.Read(ctx, op)
	a.m.observe("read", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &countingReadCloser{ReadCloser: r, m: a.m, operation: "read"}, nil
}

func (a metricsAccessor) Write(ctx context.Context, op accessor.OpWrite, body accessor.BytesReader) (int64, error) {
	start := time.Now()
	n, err := a.inner.Write(ctx, op, body)
	a.m.observe("write", time.Since(start), err)
	a.m.observeBytes("write", "write", n)
	return n, err
}

func (a metricsAccessor) Stat(ctx context.Context, op accessor.OpStat) (accessor.ObjectMetadata, error) {
	start := time.Now()
	md, err := a.inner.Stat(ctx, op)
	a.m.observe("stat", time.Since(start), err)
	return md, err
}

func (a metricsAccessor) Delete(ctx context.Context, op accessor.OpDelete) error {
	start := time.Now()
	err := a.inner.Delete(ctx, op)
	a.m.observe("delete", time.Since(start), err)
	return err
}

func (a metricsAccessor) List(ctx context.Context, op accessor.OpList) (accessor.DirStream, error) {
	start := time.Now()
	s, err := a.inner.List(ctx, op)
	a.m.observe("list", time.Since(start), err)
	return s, err
}

func (a metricsAccessor) Presign(ctx context.Context, op accessor.OpPresign) (accessor.PresignedRequest, error) {
	start := time.Now()
	req, err := a.inner.Presign(ctx, op)
	a.m.observe("presign", time.Since(start), err)
	return req, err
}

func (a metricsAccessor) CreateMultipart(ctx context.Context, op accessor.OpCreateMultipart) (string, error) {
	start := time.Now()
	id, err := a.inner.CreateMultipart(ctx, op)
	a.m.observe("create_multipart", time.Since(start), err)
	if err == nil {
		a.m.uploadOpened()
	}
	return id, err
}

func (a metricsAccessor) WriteMultipart(ctx context.Context, op accessor.OpWriteMultipart, body accessor.BytesReader) (accessor.ObjectPart, error) {
	start := time.Now()
	part, err := a.inner.WriteMultipart(ctx, op, body)
	a.m.observe("write_multipart", time.Since(start), err)
	a.m.observeBytes("write_multipart", "write", op.Size)
	return part, err
}

func (a metricsAccessor) CompleteMultipart(ctx context.Context, op accessor.OpCompleteMultipart) error {
	start := time.Now()
	err := a.inner.CompleteMultipart(ctx, op)
	a.m.observe("complete_multipart", time.Since(start), err)
	a.m.uploadClosed()
	return err
}

func (a metricsAccessor) AbortMultipart(ctx context.Context, op accessor.OpAbortMultipart) error {
	start := time.Now()
	err := a.inner.AbortMultipart(ctx, op)
	a.m.observe("abort_multipart", time.Since(start), err)
	a.m.uploadClosed()
	return err
}

// countingReadCloser tallies bytes as they're read so Read's transferred
// size is known without buffering the whole object.
type countingReadCloser struct {
	io.ReadCloser
	m         *Metrics
	operation string
	n         int64
}

func (c *countingReadCloser) Read(p []byte) (int, error) {
	n, err := c.ReadCloser.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *countingReadCloser) Close() error {
	c.m.observeBytes(c.operation, "read", c.n)
	return c.ReadCloser.Close()
}
