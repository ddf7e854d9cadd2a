package azblob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMapDefaultsRootAndStripsTrailingSlash(t *testing.T) {
	cfg, err := FromMap(map[string]any{
		"container": "mycontainer",
		"endpoint":  "https://account.blob.core.windows.net/",
	})
	require.NoError(t, err)
	assert.Equal(t, "/", cfg.Root)
	assert.Equal(t, "https://account.blob.core.windows.net", cfg.Endpoint)
}

func TestFromMapMissingContainerFails(t *testing.T) {
	_, err := FromMap(map[string]any{
		"endpoint": "https://account.blob.core.windows.net",
	})
	require.Error(t, err)
}

func TestFromMapMissingEndpointFails(t *testing.T) {
	_, err := FromMap(map[string]any{
		"container": "mycontainer",
	})
	require.Error(t, err)
}

func TestConfigGoStringRedactsCredentials(t *testing.T) {
	cfg, err := NewConfig(Config{
		Container:   "mycontainer",
		Endpoint:    "https://account.blob.core.windows.net",
		AccountName: "devstoreaccount1",
		AccountKey:  "supersecretkey",
	})
	require.NoError(t, err)

	s := cfg.GoString()
	assert.NotContains(t, s, "supersecretkey")
	assert.NotContains(t, s, "devstoreaccount1")
	assert.Contains(t, s, "<redacted>")
}
