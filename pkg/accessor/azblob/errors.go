package azblob

import (
	"encoding/xml"
	"io"
	"net/http"

	"github.com/marmos91/accessor/pkg/accessor"
)

// azureError is the XML error body Azure Blob Storage returns on failure.
type azureError struct {
	XMLName xml.Name `xml:"Error"`
	Code    string   `xml:"Code"`
	Message string   `xml:"Message"`
}

// parseErrorResponse reads resp's body (already known to be a non-success
// status) and builds the accessor.Error carrying the mapped Kind.
func parseErrorResponse(operation, path string, resp *http.Response) error {
	defer resp.Body.Close()

	var ae azureError
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	_ = xml.Unmarshal(body, &ae)

	kind := kindForStatus(resp.StatusCode)
	message := ae.Message
	if message == "" {
		message = string(body)
	}
	if message == "" {
		message = resp.Status
	}

	return accessor.NewError(kind, operation, path, errString(message))
}

// kindForStatus maps an Azure Blob Storage HTTP status code to a Kind.
// 429 and 5xx are treated as transient (Interrupted) so the retry layer
// re-attempts them; everything else maps to its natural kind.
func kindForStatus(status int) accessor.Kind {
	switch {
	case status == http.StatusNotFound:
		return accessor.KindNotFound
	case status == http.StatusForbidden || status == http.StatusUnauthorized:
		return accessor.KindPermissionDenied
	case status == http.StatusConflict || status == http.StatusPreconditionFailed:
		return accessor.KindAlreadyExists
	case status == http.StatusBadRequest:
		return accessor.KindInvalidInput
	case status == http.StatusTooManyRequests || status >= 500:
		return accessor.KindInterrupted
	default:
		return accessor.KindOther
	}
}

// errString is a minimal error wrapper so parseErrorResponse can carry a
// plain message as the Error.Source without pulling in errors.New at every
// call site.
type errString string

func (e errString) Error() string { return string(e) }
