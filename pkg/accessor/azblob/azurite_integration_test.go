//go:build integration

package azblob_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/marmos91/accessor/pkg/accessor"
	"github.com/marmos91/accessor/pkg/accessor/azblob"
)

// azuriteDevAccountName/azuriteDevAccountKey are Azurite's well-known
// development credentials, the same pair the emulator ships with out of
// the box.
const (
	azuriteDevAccountName = "devstoreaccount1"
	azuriteDevAccountKey  = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="
)

// azuriteHelper manages the Azurite container for azblob integration tests,
// the same start-or-connect-to-external-endpoint pattern the teacher's own
// Localstack helper uses for its S3 suite.
type azuriteHelper struct {
	container testcontainers.Container
	endpoint  string
}

func newAzuriteHelper(t *testing.T) *azuriteHelper {
	t.Helper()
	ctx := context.Background()

	if endpoint := os.Getenv("AZURITE_ENDPOINT"); endpoint != "" {
		return &azuriteHelper{endpoint: endpoint}
	}

	req := testcontainers.ContainerRequest{
		Image:        "mcr.microsoft.com/azure-storage/azurite:3.30.0",
		ExposedPorts: []string{"10000/tcp"},
		Cmd:          []string{"azurite-blob", "--blobHost", "0.0.0.0"},
		WaitingFor:   wait.ForListeningPort("10000/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start azurite container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "10000")
	require.NoError(t, err)

	return &azuriteHelper{
		container: container,
		endpoint:  fmt.Sprintf("http://%s:%s/%s", host, port.Port(), azuriteDevAccountName),
	}
}

func (h *azuriteHelper) cleanup() {
	if h.container != nil {
		_ = h.container.Terminate(context.Background())
	}
}

func newTestContainerName() string {
	return fmt.Sprintf("accessor-test-%d", time.Now().UnixNano())
}

func TestAzuriteBackend_RoundTrip(t *testing.T) {
	helper := newAzuriteHelper(t)
	defer helper.cleanup()

	cfg, err := azblob.NewConfig(azblob.Config{
		Container:   newTestContainerName(),
		Endpoint:    helper.endpoint,
		AccountName: azuriteDevAccountName,
		AccountKey:  azuriteDevAccountKey,
	})
	require.NoError(t, err)

	backend, err := azblob.New("azurite", cfg, nil)
	require.NoError(t, err)

	ctx := context.Background()

	opWrite, err := accessor.NewOpWrite("/greeting.txt", 13)
	require.NoError(t, err)
	n, err := backend.Write(ctx, opWrite, io.NopCloser(strings.NewReader("hello, world!")))
	require.NoError(t, err)
	assert.Equal(t, int64(13), n)

	opStat, err := accessor.NewOpStat("/greeting.txt")
	require.NoError(t, err)
	md, err := backend.Stat(ctx, opStat)
	require.NoError(t, err)
	assert.Equal(t, int64(13), md.ContentLength)

	opRead, err := accessor.NewOpRead("/greeting.txt")
	require.NoError(t, err)
	r, err := backend.Read(ctx, opRead)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	r.Close()
	assert.Equal(t, "hello, world!", string(data))

	opDelete, err := accessor.NewOpDelete("/greeting.txt")
	require.NoError(t, err)
	require.NoError(t, backend.Delete(ctx, opDelete))
}

func TestAzuriteBackend_Multipart(t *testing.T) {
	helper := newAzuriteHelper(t)
	defer helper.cleanup()

	cfg, err := azblob.NewConfig(azblob.Config{
		Container:   newTestContainerName(),
		Endpoint:    helper.endpoint,
		AccountName: azuriteDevAccountName,
		AccountKey:  azuriteDevAccountKey,
	})
	require.NoError(t, err)

	backend, err := azblob.New("azurite", cfg, nil)
	require.NoError(t, err)

	ctx := context.Background()

	opCreate, err := accessor.NewOpCreateMultipart("/big.bin")
	require.NoError(t, err)
	uploadID, err := backend.CreateMultipart(ctx, opCreate)
	require.NoError(t, err)

	opPart1, err := accessor.NewOpWriteMultipart("/big.bin", uploadID, 1, 5)
	require.NoError(t, err)
	part1, err := backend.WriteMultipart(ctx, opPart1, io.NopCloser(strings.NewReader("hello")))
	require.NoError(t, err)

	opPart2, err := accessor.NewOpWriteMultipart("/big.bin", uploadID, 2, 6)
	require.NoError(t, err)
	part2, err := backend.WriteMultipart(ctx, opPart2, io.NopCloser(strings.NewReader(" world")))
	require.NoError(t, err)

	opComplete, err := accessor.NewOpCompleteMultipart("/big.bin", uploadID, []accessor.ObjectPart{part1, part2})
	require.NoError(t, err)
	require.NoError(t, backend.CompleteMultipart(ctx, opComplete))

	opRead, err := accessor.NewOpRead("/big.bin")
	require.NoError(t, err)
	r, err := backend.Read(ctx, opRead)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	r.Close()
	assert.Equal(t, "hello world", string(data))
}
