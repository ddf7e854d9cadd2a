// Package logging provides a structured-logging logging.Layer, recording a
// start-of-operation debug entry and an end-of-operation info/error entry
// through internal/logger's context-aware API.
package logging

import (
	"context"

	"github.com/marmos91/accessor/internal/logger"
	"github.com/marmos91/accessor/pkg/accessor"
)

// Layer wraps an Accessor to log every operation.
type Layer struct{}

// New returns a logging Layer.
func New() Layer {
	return Layer{}
}

func (Layer) Apply(inner accessor.Accessor) accessor.Accessor {
	return loggingAccessor{inner: inner}
}

type loggingAccessor struct {
	inner accessor.Accessor
}

func (a loggingAccessor) Metadata() accessor.AccessorMetadata {
	return a.inner.Metadata()
}

func (a loggingAccessor) begin(ctx context.Context, operation, path string) context.Context {
	lc := logger.NewLogContext(operation, path).WithScheme(a.inner.Metadata().Scheme)
	ctx = logger.WithContext(ctx, lc)
	logger.DebugCtx(ctx, "accessor operation started")
	return ctx
}

func (a loggingAccessor) end(ctx context.Context, err error) {
	lc := logger.FromContext(ctx)
	durationMs := lc.DurationMs()
	if err != nil {
		logger.ErrorCtx(ctx, "accessor operation failed", logger.DurationMs(durationMs), logger.Err(err), logger.ErrorKind(accessor.KindOf(err).String()))
		return
	}
	logger.InfoCtx(ctx, "accessor operation completed", logger.DurationMs(durationMs))
}

func (a loggingAccessor) Create(ctx context.Context, op accessor.OpCreate) error {
	ctx = a.begin(ctx, "create", op.Path)
	err := a.inner.Create(ctx, op)
	a.end(ctx, err)
	return err
}

func (a loggingAccessor) Read(ctx context.Context, op accessor.OpRead) (accessor.BytesReader, error) {
	ctx = a.begin(ctx, "read", op.Path)
	r, err := a.inner.Read(ctx, op)
	a.end(ctx, err)
	return r, err
}

func (a loggingAccessor) Write(ctx context.Context, op accessor.OpWrite, body accessor.BytesReader) (int64, error) {
	ctx = a.begin(ctx, "write", op.Path)
	n, err := a.inner.Write(ctx, op, body)
	a.end(ctx, err)
	return n, err
}

func (a loggingAccessor) Stat(ctx context.Context, op accessor.OpStat) (accessor.ObjectMetadata, error) {
	ctx = a.begin(ctx, "stat", op.Path)
	md, err := a.inner.Stat(ctx, op)
	a.end(ctx, err)
	return md, err
}

func (a loggingAccessor) Delete(ctx context.Context, op accessor.OpDelete) error {
	ctx = a.begin(ctx, "delete", op.Path)
	err := a.inner.Delete(ctx, op)
	a.end(ctx, err)
	return err
}

func (a loggingAccessor) List(ctx context.Context, op accessor.OpList) (accessor.DirStream, error) {
	ctx = a.begin(ctx, "list", op.Path)
	s, err := a.inner.List(ctx, op)
	a.end(ctx, err)
	return s, err
}

func (a loggingAccessor) Presign(ctx context.Context, op accessor.OpPresign) (accessor.PresignedRequest, error) {
	ctx = a.begin(ctx, "presign", op.Path)
	req, err := a.inner.Presign(ctx, op)
	a.end(ctx, err)
	return req, err
}

func (a loggingAccessor) CreateMultipart(ctx context.Context, op accessor.OpCreateMultipart) (string, error) {
	ctx = a.begin(ctx, "create_multipart", op.Path)
	id, err := a.inner.CreateMultipart(ctx, op)
	a.end(ctx, err)
	return id, err
}

func (a loggingAccessor) WriteMultipart(ctx context.Context, op accessor.OpWriteMultipart, body accessor.BytesReader) (accessor.ObjectPart, error) {
	ctx = a.begin(ctx, "write_multipart", op.Path)
	part, err := a.inner.WriteMultipart(ctx, op, body)
	a.end(ctx, err)
	return part, err
}

func (a loggingAccessor) CompleteMultipart(ctx context.Context, op accessor.OpCompleteMultipart) error {
	ctx = a.begin(ctx, "complete_multipart", op.Path)
	err := a.inner.CompleteMultipart(ctx, op)
	a.end(ctx, err)
	return err
}

func (a loggingAccessor) AbortMultipart(ctx context.Context, op accessor.OpAbortMultipart) error {
	ctx = a.begin(ctx, "abort_multipart", op.Path)
	err := a.inner.AbortMultipart(ctx, op)
	a.end(ctx, err)
	return err
}
