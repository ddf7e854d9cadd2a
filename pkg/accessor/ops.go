package accessor

import "strings"

// isDirPath reports whether p denotes a directory by convention (trailing
// slash), the same convention the backend uses for directory emulation over
// its flat namespace.
func isDirPath(p string) bool {
	return strings.HasSuffix(p, "/")
}

// rejectDirPath fails construction of a single-object op-args value when p
// ends with "/" — the is-a-directory invariant (spec §3, §6).
func rejectDirPath(operation, path string) error {
	if isDirPath(path) {
		return NewValidationError(operation, path, "is a directory")
	}
	return nil
}

// OpCreate is the op-args for Create: create an empty object at Path.
type OpCreate struct {
	Path string
}

// NewOpCreate validates Path and returns the op-args for Create.
func NewOpCreate(path string) (OpCreate, error) {
	if err := rejectDirPath("create", path); err != nil {
		return OpCreate{}, err
	}
	return OpCreate{Path: path}, nil
}

// OpRead is the op-args for Read: read object bytes, optionally restricted
// to a byte range via Offset/Size. A zero Size with HasRange false means
// read the whole object.
type OpRead struct {
	Path     string
	Offset   int64
	Size     int64
	HasRange bool
}

// NewOpRead validates Path and returns the op-args for a whole-object Read.
func NewOpRead(path string) (OpRead, error) {
	if err := rejectDirPath("read", path); err != nil {
		return OpRead{}, err
	}
	return OpRead{Path: path}, nil
}

// NewOpReadRange validates Path and returns the op-args for a ranged Read
// covering [offset, offset+size).
func NewOpReadRange(path string, offset, size int64) (OpRead, error) {
	if err := rejectDirPath("read", path); err != nil {
		return OpRead{}, err
	}
	return OpRead{Path: path, Offset: offset, Size: size, HasRange: true}, nil
}

// OpWrite is the op-args for Write: write Size bytes from a reader supplied
// separately to the Accessor method.
type OpWrite struct {
	Path string
	Size int64
}

// NewOpWrite validates Path and returns the op-args for Write.
func NewOpWrite(path string, size int64) (OpWrite, error) {
	if err := rejectDirPath("write", path); err != nil {
		return OpWrite{}, err
	}
	return OpWrite{Path: path, Size: size}, nil
}

// OpStat is the op-args for Stat: fetch metadata for Path. Unlike the other
// single-object operations, a trailing slash is accepted — it signals
// directory semantics rather than being rejected.
type OpStat struct {
	Path string
}

// NewOpStat returns the op-args for Stat. Stat accepts trailing-slash paths.
func NewOpStat(path string) (OpStat, error) {
	return OpStat{Path: path}, nil
}

// OpDelete is the op-args for Delete: delete the object at Path.
type OpDelete struct {
	Path string
}

// NewOpDelete validates Path and returns the op-args for Delete.
func NewOpDelete(path string) (OpDelete, error) {
	if err := rejectDirPath("delete", path); err != nil {
		return OpDelete{}, err
	}
	return OpDelete{Path: path}, nil
}

// OpList is the op-args for List: list entries with Path as prefix. Like
// Stat, List accepts trailing-slash paths — that is the normal case.
type OpList struct {
	Path string
}

// NewOpList returns the op-args for List. List accepts trailing-slash paths.
func NewOpList(path string) (OpList, error) {
	return OpList{Path: path}, nil
}

// PresignOperation names the operation a presigned URL authorizes.
type PresignOperation int

const (
	PresignRead PresignOperation = iota
	PresignWrite
)

func (p PresignOperation) String() string {
	if p == PresignWrite {
		return "write"
	}
	return "read"
}

// OpPresign is the op-args for Presign: produce a time-limited signed URL
// for Operation against Path, valid for Expiry.
type OpPresign struct {
	Path      string
	Operation PresignOperation
	Expiry    int64 // seconds
}

// NewOpPresign validates Path and returns the op-args for Presign.
func NewOpPresign(path string, operation PresignOperation, expirySeconds int64) (OpPresign, error) {
	if err := rejectDirPath("presign", path); err != nil {
		return OpPresign{}, err
	}
	return OpPresign{Path: path, Operation: operation, Expiry: expirySeconds}, nil
}

// OpCreateMultipart is the op-args for CreateMultipart: begin a multipart
// upload for Path.
type OpCreateMultipart struct {
	Path string
}

// NewOpCreateMultipart validates Path and returns the op-args for
// CreateMultipart.
func NewOpCreateMultipart(path string) (OpCreateMultipart, error) {
	if err := rejectDirPath("create_multipart", path); err != nil {
		return OpCreateMultipart{}, err
	}
	return OpCreateMultipart{Path: path}, nil
}

// OpWriteMultipart is the op-args for WriteMultipart: write one part of an
// in-progress multipart upload, from a reader supplied separately.
type OpWriteMultipart struct {
	Path       string
	UploadID   string
	PartNumber int
	Size       int64
}

// NewOpWriteMultipart validates Path and returns the op-args for
// WriteMultipart.
func NewOpWriteMultipart(path, uploadID string, partNumber int, size int64) (OpWriteMultipart, error) {
	if err := rejectDirPath("write_multipart", path); err != nil {
		return OpWriteMultipart{}, err
	}
	return OpWriteMultipart{Path: path, UploadID: uploadID, PartNumber: partNumber, Size: size}, nil
}

// OpCompleteMultipart is the op-args for CompleteMultipart: assemble the
// uploaded Parts, in the order given, into the final object.
type OpCompleteMultipart struct {
	Path     string
	UploadID string
	Parts    []ObjectPart
}

// NewOpCompleteMultipart validates Path and returns the op-args for
// CompleteMultipart.
func NewOpCompleteMultipart(path, uploadID string, parts []ObjectPart) (OpCompleteMultipart, error) {
	if err := rejectDirPath("complete_multipart", path); err != nil {
		return OpCompleteMultipart{}, err
	}
	return OpCompleteMultipart{Path: path, UploadID: uploadID, Parts: parts}, nil
}

// OpAbortMultipart is the op-args for AbortMultipart: abandon an in-progress
// multipart upload.
type OpAbortMultipart struct {
	Path     string
	UploadID string
}

// NewOpAbortMultipart validates Path and returns the op-args for
// AbortMultipart.
func NewOpAbortMultipart(path, uploadID string) (OpAbortMultipart, error) {
	if err := rejectDirPath("abort_multipart", path); err != nil {
		return OpAbortMultipart{}, err
	}
	return OpAbortMultipart{Path: path, UploadID: uploadID}, nil
}
