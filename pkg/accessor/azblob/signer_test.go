package azblob

import (
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignerSignsRequestWithAuthorizationHeader(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte("0123456789012345678901234567890123456789012345678901234567890123"))
	signer, err := NewSigner("devstoreaccount1", key)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, "https://devstoreaccount1.blob.core.windows.net/c/a.txt", nil)
	require.NoError(t, err)

	require.NoError(t, signer.Sign(req))
	assert.Contains(t, req.Header.Get("Authorization"), "SharedKey devstoreaccount1:")
	assert.NotEmpty(t, req.Header.Get("x-ms-date"))
}

func TestSignerWithNoCredentialsIsNoOp(t *testing.T) {
	signer, err := NewSigner("", "")
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, "https://example.com/c/a.txt", nil)
	require.NoError(t, err)

	require.NoError(t, signer.Sign(req))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestSignerRejectsInvalidBase64Key(t *testing.T) {
	_, err := NewSigner("devstoreaccount1", "not-valid-base64!!!")
	require.Error(t, err)
}

func TestSignSASProducesPermissionPerMethod(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte("0123456789012345678901234567890123456789012345678901234567890123"))
	signer, err := NewSigner("devstoreaccount1", key)
	require.NoError(t, err)

	query, err := signer.signSAS(http.MethodGet, "c", "a.txt", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Contains(t, query, "sp=r")

	query, err = signer.signSAS(http.MethodPut, "c", "a.txt", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Contains(t, query, "sp=w")
}
