package azblob

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// blobTypeHeader is the header Azure requires on every Put Blob request
// that creates a page/block blob. This backend only ever creates block
// blobs.
const blobTypeHeader = "BlockBlob"

// blobURL joins endpoint, container and an object path into the full blob
// URL, percent-encoding each path segment individually so that slashes
// inside path remain segment separators.
func (b *Backend) blobURL(path string) string {
	return b.endpoint + "/" + b.container + "/" + encodeBlobPath(path)
}

// containerURL is the blob URL with no trailing object path, used for
// container-level operations such as list-blobs.
func (b *Backend) containerURL() string {
	return b.endpoint + "/" + b.container
}

func encodeBlobPath(path string) string {
	path = strings.TrimPrefix(path, "/")
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

func (b *Backend) newGetBlobRequest(ctx context.Context, path string, offset, size int64, hasRange bool) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.blobURL(path), nil)
	if err != nil {
		return nil, err
	}
	if hasRange {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", offset, offset+size-1))
	}
	return req, nil
}

func (b *Backend) newHeadBlobRequest(ctx context.Context, path string) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, http.MethodHead, b.blobURL(path), nil)
}

func (b *Backend) newPutBlobRequest(ctx context.Context, path string, size int64, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, b.blobURL(path), body)
	if err != nil {
		return nil, err
	}
	req.ContentLength = size
	req.Header.Set("Content-Length", strconv.FormatInt(size, 10))
	req.Header.Set("x-ms-blob-type", blobTypeHeader)
	return req, nil
}

func (b *Backend) newDeleteBlobRequest(ctx context.Context, path string) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, http.MethodDelete, b.blobURL(path), nil)
}

func (b *Backend) newListBlobsRequest(ctx context.Context, prefix, marker string) (*http.Request, error) {
	u := b.containerURL()
	q := url.Values{}
	q.Set("restype", "container")
	q.Set("comp", "list")
	q.Set("delimiter", "/")
	if prefix != "" {
		q.Set("prefix", strings.TrimPrefix(prefix, "/"))
	}
	if marker != "" {
		q.Set("marker", marker)
	}
	return http.NewRequestWithContext(ctx, http.MethodGet, u+"?"+q.Encode(), nil)
}

func (b *Backend) newPutBlockRequest(ctx context.Context, path, blockID string, size int64, body io.Reader) (*http.Request, error) {
	u := b.blobURL(path) + "?" + url.Values{
		"comp":    {"block"},
		"blockid": {blockID},
	}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, body)
	if err != nil {
		return nil, err
	}
	req.ContentLength = size
	req.Header.Set("Content-Length", strconv.FormatInt(size, 10))
	return req, nil
}

func (b *Backend) newPutBlockListRequest(ctx context.Context, path string, body io.Reader, size int64) (*http.Request, error) {
	u := b.blobURL(path) + "?" + url.Values{"comp": {"blocklist"}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, body)
	if err != nil {
		return nil, err
	}
	req.ContentLength = size
	req.Header.Set("Content-Length", strconv.FormatInt(size, 10))
	req.Header.Set("Content-Type", "application/xml")
	return req, nil
}
