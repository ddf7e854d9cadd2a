package azblob

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/marmos91/accessor/pkg/accessor"
)

// Backend is the Azure Blob Storage reference backend. It holds no
// mutable per-call state: client and signer are shared by reference and
// safe for concurrent use across goroutines (§7).
type Backend struct {
	accessor.UnsupportedBlocking

	name        string
	root        string
	container   string
	endpoint    string
	accountName string
	signer      *Signer
	client      *http.Client
}

// New builds a Backend from a validated Config. name is a human-readable
// label surfaced in Metadata().Name; it has no bearing on wire behavior.
func New(name string, cfg Config, client *http.Client) (*Backend, error) {
	signer, err := NewSigner(cfg.AccountName, cfg.AccountKey)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Backend{
		name:        name,
		root:        cfg.Root,
		container:   cfg.Container,
		endpoint:    cfg.Endpoint,
		accountName: cfg.AccountName,
		signer:      signer,
		client:      client,
	}, nil
}

func (b *Backend) Metadata() accessor.AccessorMetadata {
	return accessor.AccessorMetadata{
		Scheme: "azblob",
		Root:   b.root,
		Name:   b.name,
		Capabilities: accessor.CapRead | accessor.CapWrite | accessor.CapList |
			accessor.CapPresign | accessor.CapMultipart,
	}
}

// do signs and sends req. A Sign failure is classified Other — it never
// reached the wire, so it is not the transient, retry-worthy condition a
// transport error is (§4.4, §7); only b.client.Do failures are classified
// Interrupted.
func (b *Backend) do(req *http.Request, operation, path string) (*http.Response, error) {
	if err := b.signer.Sign(req); err != nil {
		return nil, accessor.NewError(accessor.KindOther, operation, path, fmt.Errorf("azblob: sign request: %w", err))
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, networkError(operation, path, err)
	}
	return resp, nil
}

func (b *Backend) Create(ctx context.Context, op accessor.OpCreate) error {
	req, err := b.newPutBlobRequest(ctx, op.Path, 0, nil)
	if err != nil {
		return accessor.NewError(accessor.KindOther, "create", op.Path, err)
	}
	resp, err := b.do(req, "create", op.Path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return parseErrorResponse("create", op.Path, resp)
	}
	return nil
}

func (b *Backend) Read(ctx context.Context, op accessor.OpRead) (accessor.BytesReader, error) {
	req, err := b.newGetBlobRequest(ctx, op.Path, op.Offset, op.Size, op.HasRange)
	if err != nil {
		return nil, accessor.NewError(accessor.KindOther, "read", op.Path, err)
	}
	resp, err := b.do(req, "read", op.Path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, parseErrorResponse("read", op.Path, resp)
	}
	return resp.Body, nil
}

func (b *Backend) Write(ctx context.Context, op accessor.OpWrite, body accessor.BytesReader) (int64, error) {
	defer body.Close()
	req, err := b.newPutBlobRequest(ctx, op.Path, op.Size, body)
	if err != nil {
		return 0, accessor.NewError(accessor.KindOther, "write", op.Path, err)
	}
	resp, err := b.do(req, "write", op.Path)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return 0, parseErrorResponse("write", op.Path, resp)
	}
	return op.Size, nil
}

// Stat fetches object metadata via a HEAD request. The root path is
// short-circuited to a directory with no network I/O — the container
// itself always exists if the backend was configured at all, matching the
// source's own root-path special case.
func (b *Backend) Stat(ctx context.Context, op accessor.OpStat) (accessor.ObjectMetadata, error) {
	if op.Path == "/" || op.Path == "" {
		return accessor.ObjectMetadata{Mode: accessor.ModeDir}, nil
	}

	trailingSlash := strings.HasSuffix(op.Path, "/")

	req, err := b.newHeadBlobRequest(ctx, strings.TrimSuffix(op.Path, "/"))
	if err != nil {
		return accessor.ObjectMetadata{}, accessor.NewError(accessor.KindOther, "stat", op.Path, err)
	}
	resp, err := b.do(req, "stat", op.Path)
	if err != nil {
		return accessor.ObjectMetadata{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// ETag doubles as content-MD5 once its surrounding quotes are
		// stripped (original_source backend.rs's parse_etag/
		// set_content_md5 derive both from the same header value).
		etag := strings.Trim(resp.Header.Get("ETag"), `"`)
		md := accessor.ObjectMetadata{
			Mode:         accessor.ModeFile,
			ETag:         etag,
			ContentMD5:   etag,
			LastModified: parseLastModified(resp.Header.Get("Last-Modified")),
		}
		if n, err := strconv.ParseInt(resp.Header.Get("Content-Length"), 10, 64); err == nil {
			md.ContentLength = n
		}
		if trailingSlash {
			md.Mode = accessor.ModeDir
		}
		return md, nil
	case resp.StatusCode == http.StatusNotFound && trailingSlash:
		// A directory has no blob of its own — its existence is implied
		// by objects listed under it (§5, original_source stat()).
		return accessor.ObjectMetadata{Mode: accessor.ModeDir}, nil
	default:
		return accessor.ObjectMetadata{}, parseErrorResponse("stat", op.Path, resp)
	}
}

// Delete issues a DELETE request. 202 Accepted and 404 Not Found are both
// treated as success — deleting an already-absent object is idempotent
// (§5, original_source delete()).
func (b *Backend) Delete(ctx context.Context, op accessor.OpDelete) error {
	req, err := b.newDeleteBlobRequest(ctx, op.Path)
	if err != nil {
		return accessor.NewError(accessor.KindOther, "delete", op.Path, err)
	}
	resp, err := b.do(req, "delete", op.Path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusAccepted || resp.StatusCode == http.StatusNotFound {
		return nil
	}
	return parseErrorResponse("delete", op.Path, resp)
}

// Presign is pure local computation: it builds a Shared Key signed URL
// without issuing any network request, matching the contract's
// never-retried, no-I/O presign semantics (§4.3.3).
func (b *Backend) Presign(ctx context.Context, op accessor.OpPresign) (accessor.PresignedRequest, error) {
	method := http.MethodGet
	if op.Operation == accessor.PresignWrite {
		method = http.MethodPut
	}

	expires := time.Now().Add(time.Duration(op.Expiry) * time.Second)
	u := b.blobURL(op.Path)

	if b.signer == nil || b.accountName == "" {
		return accessor.PresignedRequest{Method: method, URL: u, Expires: expires}, nil
	}

	sas, err := b.signer.signSAS(method, b.container, strings.TrimPrefix(op.Path, "/"), expires)
	if err != nil {
		return accessor.PresignedRequest{}, accessor.NewError(accessor.KindOther, "presign", op.Path, err)
	}

	return accessor.PresignedRequest{
		Method:  method,
		URL:     u + "?" + sas,
		Expires: expires,
	}, nil
}

func parseLastModified(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := http.ParseTime(v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func networkError(operation, path string, err error) error {
	return accessor.NewError(accessor.KindInterrupted, operation, path, fmt.Errorf("azblob: %w", err))
}
