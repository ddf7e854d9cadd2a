package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements for log aggregation
// and querying across layers and backends.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Accessor operation
	// ========================================================================
	KeyOperation = "operation" // Accessor operation name: read, write, stat, list, ...
	KeyPath      = "path"      // Object path
	KeyScheme    = "scheme"    // Backend scheme: azblob, memory, ...
	KeySize      = "size"      // Object size in bytes
	KeyOffset    = "offset"    // Read/write offset

	// ========================================================================
	// Operation metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyErrorKind  = "error_kind"  // Accessor error Kind
	KeyStatus     = "status"      // Backend HTTP status code

	// ========================================================================
	// Storage backend
	// ========================================================================
	KeyStoreName  = "store_name"  // Named backend identifier
	KeyStoreType  = "store_type"  // Backend type: azblob, memory
	KeyBucket     = "bucket"      // Cloud bucket name
	KeyContainer  = "container"   // Azure Blob container name
	KeyKey        = "key"         // Object key
	KeyRegion     = "region"      // Cloud region
	KeyAttempt    = "attempt"     // Retry attempt number
	KeyMaxRetries = "max_retries" // Maximum retry attempts

	// ========================================================================
	// Directory listing
	// ========================================================================
	KeyEntries   = "entries"    // Number of directory entries returned
	KeyMarker    = "marker"     // Pagination continuation marker

	// ========================================================================
	// Multipart upload
	// ========================================================================
	KeyUploadID   = "upload_id"   // Multipart upload identifier
	KeyPartNumber = "part_number" // Multipart part number
)

// ----------------------------------------------------------------------------
// Distributed Tracing
// ----------------------------------------------------------------------------

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// ----------------------------------------------------------------------------
// Accessor operation
// ----------------------------------------------------------------------------

// Operation returns a slog.Attr for the accessor operation name
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Path returns a slog.Attr for an object path
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Scheme returns a slog.Attr for the backend scheme
func Scheme(scheme string) slog.Attr {
	return slog.String(KeyScheme, scheme)
}

// Size returns a slog.Attr for object size in bytes
func Size(s int64) slog.Attr {
	return slog.Int64(KeySize, s)
}

// Offset returns a slog.Attr for a read/write offset
func Offset(off int64) slog.Attr {
	return slog.Int64(KeyOffset, off)
}

// ----------------------------------------------------------------------------
// Operation metadata
// ----------------------------------------------------------------------------

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorKind returns a slog.Attr for an accessor error Kind
func ErrorKind(kind string) slog.Attr {
	return slog.String(KeyErrorKind, kind)
}

// Status returns a slog.Attr for a backend HTTP status code
func Status(code int) slog.Attr {
	return slog.Int(KeyStatus, code)
}

// ----------------------------------------------------------------------------
// Storage Backend
// ----------------------------------------------------------------------------

// StoreName returns a slog.Attr for a named backend identifier
func StoreName(name string) slog.Attr {
	return slog.String(KeyStoreName, name)
}

// StoreType returns a slog.Attr for the backend type
func StoreType(t string) slog.Attr {
	return slog.String(KeyStoreType, t)
}

// Bucket returns a slog.Attr for a cloud bucket name
func Bucket(name string) slog.Attr {
	return slog.String(KeyBucket, name)
}

// Container returns a slog.Attr for an Azure container name
func Container(name string) slog.Attr {
	return slog.String(KeyContainer, name)
}

// Key returns a slog.Attr for an object key
func Key(k string) slog.Attr {
	return slog.String(KeyKey, k)
}

// Region returns a slog.Attr for a cloud region
func Region(r string) slog.Attr {
	return slog.String(KeyRegion, r)
}

// Attempt returns a slog.Attr for a retry attempt number
func Attempt(n int) slog.Attr {
	return slog.Int(KeyAttempt, n)
}

// MaxRetries returns a slog.Attr for the maximum retry attempt count
func MaxRetries(n int) slog.Attr {
	return slog.Int(KeyMaxRetries, n)
}

// ----------------------------------------------------------------------------
// Directory listing
// ----------------------------------------------------------------------------

// Entries returns a slog.Attr for the number of directory entries returned
func Entries(n int) slog.Attr {
	return slog.Int(KeyEntries, n)
}

// Marker returns a slog.Attr for a pagination continuation marker
func Marker(marker string) slog.Attr {
	return slog.String(KeyMarker, marker)
}

// ----------------------------------------------------------------------------
// Multipart upload
// ----------------------------------------------------------------------------

// UploadID returns a slog.Attr for a multipart upload identifier
func UploadID(id string) slog.Attr {
	return slog.String(KeyUploadID, id)
}

// PartNumber returns a slog.Attr for a multipart part number
func PartNumber(n int) slog.Attr {
	return slog.Int(KeyPartNumber, n)
}
