// Package tracing provides an OpenTelemetry-backed tracing.Layer, wrapping
// every Accessor operation in a span via internal/telemetry's
// StartAccessorSpan helper.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel/codes"

	"github.com/marmos91/accessor/internal/telemetry"
	"github.com/marmos91/accessor/pkg/accessor"
)

// Layer wraps an Accessor so that every operation runs inside its own span.
type Layer struct{}

// New returns a tracing Layer.
func New() Layer {
	return Layer{}
}

func (Layer) Apply(inner accessor.Accessor) accessor.Accessor {
	return tracingAccessor{inner: inner}
}

type tracingAccessor struct {
	inner accessor.Accessor
}

func (a tracingAccessor) Metadata() accessor.AccessorMetadata {
	return a.inner.Metadata()
}

func (a tracingAccessor) scheme() string {
	return a.inner.Metadata().Scheme
}

// endSpan records err on the span in ctx (if any) and ends it.
func endSpan(ctx context.Context, err error) {
	span := telemetry.SpanFromContext(ctx)
	defer span.End()
	if err != nil {
		telemetry.RecordError(ctx, err)
		return
	}
	span.SetStatus(codes.Ok, "")
}

func (a tracingAccessor) Create(ctx context.Context, op accessor.OpCreate) error {
	ctx, _ = telemetry.StartAccessorSpan(ctx, telemetry.SpanAccessorCreate, "create", op.Path, a.scheme())
	err := a.inner.Create(ctx, op)
	endSpan(ctx, err)
	return err
}

func (a tracingAccessor) Read(ctx context.Context, op accessor.OpRead) (accessor.BytesReader, error) {
	ctx, _ = telemetry.StartAccessorSpan(ctx, telemetry.SpanAccessorRead, "read", op.Path, a.scheme(), telemetry.Offset(op.Offset), telemetry.Size(op.Size))
	r, err := a.inner.Read(ctx, op)
	endSpan(ctx, err)
	return r, err
}

func (a tracingAccessor) Write(ctx context.Context, op accessor.OpWrite, body accessor.BytesReader) (int64, error) {
	ctx, _ = telemetry.StartAccessorSpan(ctx, telemetry.SpanAccessorWrite, "write", op.Path, a.scheme(), telemetry.Size(op.Size))
	n, err := a.inner.Write(ctx, op, body)
	endSpan(ctx, err)
	return n, err
}

func (a tracingAccessor) Stat(ctx context.Context, op accessor.OpStat) (accessor.ObjectMetadata, error) {
	ctx, _ = telemetry.StartAccessorSpan(ctx, telemetry.SpanAccessorStat, "stat", op.Path, a.scheme())
	md, err := a.inner.Stat(ctx, op)
	endSpan(ctx, err)
	return md, err
}

func (a tracingAccessor) Delete(ctx context.Context, op accessor.OpDelete) error {
	ctx, _ = telemetry.StartAccessorSpan(ctx, telemetry.SpanAccessorDelete, "delete", op.Path, a.scheme())
	err := a.inner.Delete(ctx, op)
	endSpan(ctx, err)
	return err
}

func (a tracingAccessor) List(ctx context.Context, op accessor.OpList) (accessor.DirStream, error) {
	ctx, _ = telemetry.StartAccessorSpan(ctx, telemetry.SpanAccessorList, "list", op.Path, a.scheme())
	s, err := a.inner.List(ctx, op)
	endSpan(ctx, err)
	return s, err
}

func (a tracingAccessor) Presign(ctx context.Context, op accessor.OpPresign) (accessor.PresignedRequest, error) {
	ctx, _ = telemetry.StartAccessorSpan(ctx, telemetry.SpanAccessorPresign, "presign", op.Path, a.scheme())
	req, err := a.inner.Presign(ctx, op)
	endSpan(ctx, err)
	return req, err
}

func (a tracingAccessor) CreateMultipart(ctx context.Context, op accessor.OpCreateMultipart) (string, error) {
	ctx, span := telemetry.StartAccessorSpan(ctx, telemetry.SpanAccessorCreateMultipart, "create_multipart", op.Path, a.scheme())
	id, err := a.inner.CreateMultipart(ctx, op)
	if err == nil {
		span.SetAttributes(telemetry.UploadID(id))
	}
	endSpan(ctx, err)
	return id, err
}

func (a tracingAccessor) WriteMultipart(ctx context.Context, op accessor.OpWriteMultipart, body accessor.BytesReader) (accessor.ObjectPart, error) {
	ctx, _ = telemetry.StartAccessorSpan(ctx, telemetry.SpanAccessorWriteMultipart, "write_multipart", op.Path, a.scheme(),
		telemetry.UploadID(op.UploadID), telemetry.PartNumber(op.PartNumber), telemetry.Size(op.Size))
	part, err := a.inner.WriteMultipart(ctx, op, body)
	endSpan(ctx, err)
	return part, err
}

func (a tracingAccessor) CompleteMultipart(ctx context.Context, op accessor.OpCompleteMultipart) error {
	ctx, _ = telemetry.StartAccessorSpan(ctx, telemetry.SpanAccessorCompleteMulti, "complete_multipart", op.Path, a.scheme(), telemetry.UploadID(op.UploadID))
	err := a.inner.CompleteMultipart(ctx, op)
	endSpan(ctx, err)
	return err
}

func (a tracingAccessor) AbortMultipart(ctx context.Context, op accessor.OpAbortMultipart) error {
	ctx, _ = telemetry.StartAccessorSpan(ctx, telemetry.SpanAccessorAbortMulti, "abort_multipart", op.Path, a.scheme(), telemetry.UploadID(op.UploadID))
	err := a.inner.AbortMultipart(ctx, op)
	endSpan(ctx, err)
	return err
}
