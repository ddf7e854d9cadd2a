package accessor

import "context"

// Accessor is the polymorphic storage interface — the narrow waist every
// backend and every layer implements. "Asynchronous" in the source design
// is rendered here as the ctx-carrying, cancellable method set; a backend
// or layer that also supports the thread-blocking form additionally
// implements BlockingAccessor and advertises CapBlocking.
//
// Implementations must be safe for concurrent use by many goroutines (§5):
// no mutable per-call state may be held between invocations.
type Accessor interface {
	// Metadata describes this accessor's scheme, root and capabilities.
	// It performs no I/O.
	Metadata() AccessorMetadata

	Create(ctx context.Context, op OpCreate) error
	Read(ctx context.Context, op OpRead) (BytesReader, error)
	// Write consumes body in order, exactly once, regardless of outcome.
	// It is never retried by the retry layer (§4.3.3): body is a one-shot
	// stream and a retry would send a truncated payload.
	Write(ctx context.Context, op OpWrite, body BytesReader) (int64, error)
	Stat(ctx context.Context, op OpStat) (ObjectMetadata, error)
	Delete(ctx context.Context, op OpDelete) error
	List(ctx context.Context, op OpList) (DirStream, error)
	// Presign is pure local computation; it never performs network I/O
	// and is never retried.
	Presign(ctx context.Context, op OpPresign) (PresignedRequest, error)

	CreateMultipart(ctx context.Context, op OpCreateMultipart) (uploadID string, err error)
	// WriteMultipart consumes body exactly once, like Write, and is
	// never retried for the same reason.
	WriteMultipart(ctx context.Context, op OpWriteMultipart, body BytesReader) (ObjectPart, error)
	CompleteMultipart(ctx context.Context, op OpCompleteMultipart) error
	AbortMultipart(ctx context.Context, op OpAbortMultipart) error
}

// BlockingAccessor is the thread-blocking equivalent of Accessor, offered by
// backends and layers that support callers without an async runtime (§5).
// It omits multipart and presign — the source restricts the blocking
// surface to the single-object operations (§4.1).
//
// Blocking methods are not cancellable; callers must await completion.
type BlockingAccessor interface {
	CreateBlocking(op OpCreate) error
	ReadBlocking(op OpRead) (BlockingBytesReader, error)
	WriteBlocking(op OpWrite, body BlockingBytesReader) (int64, error)
	StatBlocking(op OpStat) (ObjectMetadata, error)
	DeleteBlocking(op OpDelete) error
	ListBlocking(op OpList) (BlockingDirStream, error)
}

// Unsupported is an embeddable base that answers every Accessor and
// BlockingAccessor method with a not-supported error. Concrete backends
// embed it and override only the methods they actually implement — the
// same embed-a-default-then-override shape used throughout this codebase
// for optional capabilities.
type Unsupported struct{}

func (Unsupported) Create(ctx context.Context, op OpCreate) error {
	return NewNotSupportedError("create", op.Path)
}

func (Unsupported) Read(ctx context.Context, op OpRead) (BytesReader, error) {
	return nil, NewNotSupportedError("read", op.Path)
}

func (Unsupported) Write(ctx context.Context, op OpWrite, body BytesReader) (int64, error) {
	return 0, NewNotSupportedError("write", op.Path)
}

func (Unsupported) Stat(ctx context.Context, op OpStat) (ObjectMetadata, error) {
	return ObjectMetadata{}, NewNotSupportedError("stat", op.Path)
}

func (Unsupported) Delete(ctx context.Context, op OpDelete) error {
	return NewNotSupportedError("delete", op.Path)
}

func (Unsupported) List(ctx context.Context, op OpList) (DirStream, error) {
	return nil, NewNotSupportedError("list", op.Path)
}

func (Unsupported) Presign(ctx context.Context, op OpPresign) (PresignedRequest, error) {
	return PresignedRequest{}, NewNotSupportedError("presign", op.Path)
}

func (Unsupported) CreateMultipart(ctx context.Context, op OpCreateMultipart) (string, error) {
	return "", NewNotSupportedError("create_multipart", op.Path)
}

func (Unsupported) WriteMultipart(ctx context.Context, op OpWriteMultipart, body BytesReader) (ObjectPart, error) {
	return ObjectPart{}, NewNotSupportedError("write_multipart", op.Path)
}

func (Unsupported) CompleteMultipart(ctx context.Context, op OpCompleteMultipart) error {
	return NewNotSupportedError("complete_multipart", op.Path)
}

func (Unsupported) AbortMultipart(ctx context.Context, op OpAbortMultipart) error {
	return NewNotSupportedError("abort_multipart", op.Path)
}

// UnsupportedBlocking is the BlockingAccessor counterpart to Unsupported.
type UnsupportedBlocking struct{}

func (UnsupportedBlocking) CreateBlocking(op OpCreate) error {
	return NewNotSupportedError("create", op.Path)
}

func (UnsupportedBlocking) ReadBlocking(op OpRead) (BlockingBytesReader, error) {
	return nil, NewNotSupportedError("read", op.Path)
}

func (UnsupportedBlocking) WriteBlocking(op OpWrite, body BlockingBytesReader) (int64, error) {
	return 0, NewNotSupportedError("write", op.Path)
}

func (UnsupportedBlocking) StatBlocking(op OpStat) (ObjectMetadata, error) {
	return ObjectMetadata{}, NewNotSupportedError("stat", op.Path)
}

func (UnsupportedBlocking) DeleteBlocking(op OpDelete) error {
	return NewNotSupportedError("delete", op.Path)
}

func (UnsupportedBlocking) ListBlocking(op OpList) (BlockingDirStream, error) {
	return nil, NewNotSupportedError("list", op.Path)
}
