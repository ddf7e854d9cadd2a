package azblob

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/marmos91/accessor/pkg/accessor"
)

// Azure Blob Storage has no native multipart-upload API (§5). Multipart is
// emulated on top of the Block Blob Put Block / Put Block List primitives:
// each part becomes an uncommitted block, and CompleteMultipart commits
// them in order with a single Put Block List call.

// CreateMultipart mints an upload ID with no network call: Azure has no
// "begin multipart upload" request to issue, so the ID exists only to
// correlate this upload's later WriteMultipart/CompleteMultipart calls.
func (b *Backend) CreateMultipart(ctx context.Context, op accessor.OpCreateMultipart) (string, error) {
	return uuid.NewString(), nil
}

// blockID derives a base64 block ID from an upload ID and a part number.
// Azure scopes uncommitted blocks per blob path, not per upload session, so
// the part number alone is not enough: two concurrent uploads against the
// same path (a retried/abandoned upload followed by a fresh one) would
// otherwise silently overwrite each other's same-numbered blocks, the same
// way the memory backend scopes parts by UploadID in its uploads map. The
// upload ID is hashed down to a fixed-width prefix so that, combined with
// the zero-padded part number, every block ID for a given upload has the
// same encoded length (a Put Block List requirement) while the numeric
// suffix still preserves ascending part order within that upload.
func blockID(uploadID string, partNumber int) string {
	sum := sha256.Sum256([]byte(uploadID))
	prefix := hex.EncodeToString(sum[:4])
	return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s%010d", prefix, partNumber)))
}

func (b *Backend) WriteMultipart(ctx context.Context, op accessor.OpWriteMultipart, body accessor.BytesReader) (accessor.ObjectPart, error) {
	defer body.Close()

	id := blockID(op.UploadID, op.PartNumber)
	req, err := b.newPutBlockRequest(ctx, op.Path, id, op.Size, body)
	if err != nil {
		return accessor.ObjectPart{}, accessor.NewError(accessor.KindOther, "write_multipart", op.Path, err)
	}
	resp, err := b.do(req, "write_multipart", op.Path)
	if err != nil {
		return accessor.ObjectPart{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return accessor.ObjectPart{}, parseErrorResponse("write_multipart", op.Path, resp)
	}

	return accessor.ObjectPart{PartNumber: op.PartNumber, ETag: id}, nil
}

type blockList struct {
	XMLName xml.Name `xml:"BlockList"`
	Latest  []string `xml:"Latest"`
}

// CompleteMultipart commits the uploaded blocks in the order given by
// op.Parts via a single Put Block List request.
func (b *Backend) CompleteMultipart(ctx context.Context, op accessor.OpCompleteMultipart) error {
	list := blockList{}
	for _, part := range op.Parts {
		list.Latest = append(list.Latest, blockID(op.UploadID, part.PartNumber))
	}

	body, err := xml.Marshal(list)
	if err != nil {
		return accessor.NewError(accessor.KindOther, "complete_multipart", op.Path, err)
	}

	req, err := b.newPutBlockListRequest(ctx, op.Path, bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return accessor.NewError(accessor.KindOther, "complete_multipart", op.Path, err)
	}
	resp, err := b.do(req, "complete_multipart", op.Path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return parseErrorResponse("complete_multipart", op.Path, resp)
	}
	return nil
}

// AbortMultipart is a no-op: uncommitted blocks that are never referenced
// by a Put Block List call are garbage-collected by Azure after 7 days
// (§5), so there is nothing for this backend to clean up synchronously.
func (b *Backend) AbortMultipart(ctx context.Context, op accessor.OpAbortMultipart) error {
	return nil
}
