package azblob

import (
	"context"
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/marmos91/accessor/pkg/accessor"
)

// enumerationResults is the XML body Azure's list-blobs API returns.
type enumerationResults struct {
	XMLName    xml.Name `xml:"EnumerationResults"`
	Prefix     string   `xml:"Prefix"`
	Marker     string   `xml:"Marker"`
	NextMarker string   `xml:"NextMarker"`
	Blobs      struct {
		Blob []struct {
			Name       string `xml:"Name"`
			Properties struct {
				ContentLength int64  `xml:"Content-Length"`
				ETag          string `xml:"Etag"`
				LastModified  string `xml:"Last-Modified"`
			} `xml:"Properties"`
		} `xml:"Blob"`
		BlobPrefix []struct {
			Name string `xml:"Name"`
		} `xml:"BlobPrefix"`
	} `xml:"Blobs"`
}

// List issues one list-blobs request per page, following NextMarker until
// Azure returns an empty one (§6). Prefix/delimiter semantics turn
// BlobPrefix entries into synthetic directories, mirroring the flat
// namespace's own directory emulation.
func (b *Backend) List(ctx context.Context, op accessor.OpList) (accessor.DirStream, error) {
	return &dirStream{backend: b, prefix: strings.TrimPrefix(op.Path, "/"), index: -1}, nil
}

type dirStream struct {
	backend *Backend
	prefix  string

	marker    string
	exhausted bool

	entries []accessor.DirEntry
	index   int
	err     error
}

// Next advances within the current page, fetching another page once the
// current one is consumed. It stops for good once Azure returns an empty
// NextMarker or an error occurs.
func (s *dirStream) Next(ctx context.Context) bool {
	if s.err != nil {
		return false
	}
	s.index++
	if s.index < len(s.entries) {
		return true
	}
	for {
		if s.exhausted {
			return false
		}
		if !s.fetchPage(ctx) {
			return false
		}
		s.index = 0
		if s.index < len(s.entries) {
			return true
		}
	}
}

func (s *dirStream) fetchPage(ctx context.Context) bool {
	req, err := s.backend.newListBlobsRequest(ctx, s.prefix, s.marker)
	if err != nil {
		s.err = accessor.NewError(accessor.KindOther, "list", s.prefix, err)
		return false
	}
	resp, err := s.backend.do(req, "list", s.prefix)
	if err != nil {
		s.err = err
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		s.err = parseErrorResponse("list", s.prefix, resp)
		return false
	}

	var parsed enumerationResults
	if err := xml.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		s.err = accessor.NewError(accessor.KindOther, "list", s.prefix, err)
		return false
	}

	s.entries = s.entries[:0]
	for _, p := range parsed.Blobs.BlobPrefix {
		s.entries = append(s.entries, accessor.DirEntry{
			Path:     "/" + p.Name,
			Metadata: accessor.ObjectMetadata{Mode: accessor.ModeDir},
		})
	}
	for _, blob := range parsed.Blobs.Blob {
		s.entries = append(s.entries, accessor.DirEntry{
			Path: "/" + blob.Name,
			Metadata: accessor.ObjectMetadata{
				Mode:          accessor.ModeFile,
				ContentLength: blob.Properties.ContentLength,
				ETag:          strings.Trim(blob.Properties.ETag, `"`),
				LastModified:  parseLastModified(blob.Properties.LastModified),
			},
		})
	}

	s.marker = parsed.NextMarker
	s.exhausted = s.marker == ""
	return true
}

func (s *dirStream) Entry() accessor.DirEntry {
	if s.index < 0 || s.index >= len(s.entries) {
		return accessor.DirEntry{}
	}
	return s.entries[s.index]
}

func (s *dirStream) Err() error { return s.err }

func (s *dirStream) Close() error { return nil }
