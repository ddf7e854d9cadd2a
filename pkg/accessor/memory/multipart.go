package memory

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marmos91/accessor/pkg/accessor"
)

type multipartUpload struct {
	path string

	mu    sync.Mutex
	parts map[int][]byte
}

func (b *Backend) CreateMultipart(ctx context.Context, op accessor.OpCreateMultipart) (string, error) {
	id := uuid.NewString()

	b.mu.Lock()
	b.uploads[id] = &multipartUpload{path: op.Path, parts: make(map[int][]byte)}
	b.mu.Unlock()

	return id, nil
}

func (b *Backend) WriteMultipart(ctx context.Context, op accessor.OpWriteMultipart, body accessor.BytesReader) (accessor.ObjectPart, error) {
	defer body.Close()

	b.mu.RLock()
	upload, ok := b.uploads[op.UploadID]
	b.mu.RUnlock()
	if !ok {
		return accessor.ObjectPart{}, accessor.NewError(accessor.KindNotFound, "write_multipart", op.Path, nil)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return accessor.ObjectPart{}, accessor.NewError(accessor.KindOther, "write_multipart", op.Path, err)
	}

	upload.mu.Lock()
	upload.parts[op.PartNumber] = data
	upload.mu.Unlock()

	return accessor.ObjectPart{PartNumber: op.PartNumber, ETag: newETag()}, nil
}

func (b *Backend) CompleteMultipart(ctx context.Context, op accessor.OpCompleteMultipart) error {
	b.mu.Lock()
	upload, ok := b.uploads[op.UploadID]
	if ok {
		delete(b.uploads, op.UploadID)
	}
	b.mu.Unlock()
	if !ok {
		return accessor.NewError(accessor.KindNotFound, "complete_multipart", op.Path, nil)
	}

	upload.mu.Lock()
	defer upload.mu.Unlock()

	var buf bytes.Buffer
	for _, part := range op.Parts {
		data, ok := upload.parts[part.PartNumber]
		if !ok {
			return accessor.NewError(accessor.KindInvalidInput, "complete_multipart", op.Path, nil)
		}
		buf.Write(data)
	}

	b.mu.Lock()
	b.objects[op.Path] = object{data: buf.Bytes(), lastModified: time.Now(), etag: newETag()}
	b.mu.Unlock()

	return nil
}

func (b *Backend) AbortMultipart(ctx context.Context, op accessor.OpAbortMultipart) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.uploads, op.UploadID)
	return nil
}
