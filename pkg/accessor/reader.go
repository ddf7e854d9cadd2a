package accessor

import "io"

// BytesReader is the async-path object body returned from Read. It is
// owned by the caller, single-consumer, and not restartable: once bytes
// have been pulled, the stream cannot be re-read from the start. This is
// why write and write_multipart are never retried (§4.3.3) — the same
// one-shot property applies to the body handed into Write.
type BytesReader = io.ReadCloser

// BlockingBytesReader is the synchronous-path equivalent of BytesReader,
// used from BlockingAccessor methods. Despite the distinct name it has the
// same one-shot, non-restartable contract.
type BlockingBytesReader = io.ReadCloser
