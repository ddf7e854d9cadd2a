package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for accessor operations, following OpenTelemetry semantic
// conventions where applicable.
const (
	AttrOperation   = "accessor.operation"
	AttrPath        = "accessor.path"
	AttrScheme      = "accessor.scheme"
	AttrRoot        = "accessor.root"
	AttrContainer   = "accessor.container" // Azure Blob container
	AttrBucket      = "accessor.bucket"
	AttrKey         = "accessor.key"
	AttrRegion      = "accessor.region"
	AttrSize        = "accessor.size"
	AttrOffset      = "accessor.offset"
	AttrStatus      = "accessor.status"
	AttrAttempt     = "accessor.attempt"
	AttrMaxRetries  = "accessor.max_retries"
	AttrUploadID    = "accessor.upload_id"
	AttrPartNumber  = "accessor.part_number"
	AttrEntries     = "accessor.entries"
)

// Span names for layer and backend operations.
const (
	SpanAccessorCreate          = "accessor.create"
	SpanAccessorRead            = "accessor.read"
	SpanAccessorWrite           = "accessor.write"
	SpanAccessorStat            = "accessor.stat"
	SpanAccessorDelete          = "accessor.delete"
	SpanAccessorList            = "accessor.list"
	SpanAccessorPresign         = "accessor.presign"
	SpanAccessorCreateMultipart = "accessor.create_multipart"
	SpanAccessorWriteMultipart  = "accessor.write_multipart"
	SpanAccessorCompleteMulti   = "accessor.complete_multipart"
	SpanAccessorAbortMulti      = "accessor.abort_multipart"
	SpanRetryAttempt            = "retry.attempt"
)

// Operation returns an attribute for the accessor operation name.
func Operation(op string) attribute.KeyValue {
	return attribute.String(AttrOperation, op)
}

// Path returns an attribute for the object path.
func Path(path string) attribute.KeyValue {
	return attribute.String(AttrPath, path)
}

// Scheme returns an attribute for the backend scheme (e.g. "azblob").
func Scheme(scheme string) attribute.KeyValue {
	return attribute.String(AttrScheme, scheme)
}

// Root returns an attribute for the backend's working root.
func Root(root string) attribute.KeyValue {
	return attribute.String(AttrRoot, root)
}

// Container returns an attribute for the Azure Blob container name.
func Container(name string) attribute.KeyValue {
	return attribute.String(AttrContainer, name)
}

// Bucket returns an attribute for a generic bucket/namespace name.
func Bucket(name string) attribute.KeyValue {
	return attribute.String(AttrBucket, name)
}

// StorageKey returns an attribute for an object key.
func StorageKey(key string) attribute.KeyValue {
	return attribute.String(AttrKey, key)
}

// Region returns an attribute for the backend region, if applicable.
func Region(region string) attribute.KeyValue {
	return attribute.String(AttrRegion, region)
}

// Size returns an attribute for an object or range size in bytes.
func Size(size int64) attribute.KeyValue {
	return attribute.Int64(AttrSize, size)
}

// Offset returns an attribute for a read/write offset.
func Offset(offset int64) attribute.KeyValue {
	return attribute.Int64(AttrOffset, offset)
}

// Status returns an attribute for the HTTP status code of a backend call.
func Status(code int) attribute.KeyValue {
	return attribute.Int(AttrStatus, code)
}

// Attempt returns an attribute for the current retry attempt number.
func Attempt(n int) attribute.KeyValue {
	return attribute.Int(AttrAttempt, n)
}

// UploadID returns an attribute for a multipart upload identifier.
func UploadID(id string) attribute.KeyValue {
	return attribute.String(AttrUploadID, id)
}

// PartNumber returns an attribute for a multipart part number.
func PartNumber(n int) attribute.KeyValue {
	return attribute.Int(AttrPartNumber, n)
}

// Entries returns an attribute for the number of directory entries returned
// by a single list page.
func Entries(n int) attribute.KeyValue {
	return attribute.Int(AttrEntries, n)
}

// StartAccessorSpan starts a span for an accessor operation, tagging it with
// the operation name, path and backend scheme.
func StartAccessorSpan(ctx context.Context, spanName, operation, path, scheme string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		Operation(operation),
		Path(path),
		Scheme(scheme),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, spanName, trace.WithAttributes(allAttrs...))
}

// StartRetrySpan starts a span for a single retry attempt.
func StartRetrySpan(ctx context.Context, operation string, attempt int, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		Operation(operation),
		Attempt(attempt),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, SpanRetryAttempt, trace.WithAttributes(allAttrs...))
}
