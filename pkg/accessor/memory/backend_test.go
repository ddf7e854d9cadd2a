package memory

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/accessor/pkg/accessor"
)

func TestWriteThenReadRoundTrip(t *testing.T) {
	b := New("test")
	ctx := context.Background()

	opWrite, err := accessor.NewOpWrite("/a/b.txt", 5)
	require.NoError(t, err)
	n, err := b.Write(ctx, opWrite, io.NopCloser(strings.NewReader("hello")))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	opRead, err := accessor.NewOpRead("/a/b.txt")
	require.NoError(t, err)
	r, err := b.Read(ctx, opRead)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestReadRangeRoundTrip(t *testing.T) {
	b := New("test")
	ctx := context.Background()

	opWrite, _ := accessor.NewOpWrite("/a.txt", 11)
	_, err := b.Write(ctx, opWrite, io.NopCloser(strings.NewReader("hello world")))
	require.NoError(t, err)

	opRead, err := accessor.NewOpReadRange("/a.txt", 6, 5)
	require.NoError(t, err)
	r, err := b.Read(ctx, opRead)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "world", string(data))
}

func TestStatMissingObjectReturnsNotFound(t *testing.T) {
	b := New("test")
	opStat, err := accessor.NewOpStat("/missing.txt")
	require.NoError(t, err)

	_, err = b.Stat(context.Background(), opStat)
	require.Error(t, err)
	assert.Equal(t, accessor.KindNotFound, accessor.KindOf(err))
}

func TestDeleteIsIdempotent(t *testing.T) {
	b := New("test")
	opDelete, err := accessor.NewOpDelete("/a.txt")
	require.NoError(t, err)

	require.NoError(t, b.Delete(context.Background(), opDelete))
	require.NoError(t, b.Delete(context.Background(), opDelete))
}

func TestStatDirectoryWithNoObjectsReturnsNotFound(t *testing.T) {
	b := New("test")
	opStat, err := accessor.NewOpStat("/empty/")
	require.NoError(t, err)

	_, err = b.Stat(context.Background(), opStat)
	require.Error(t, err)
	assert.Equal(t, accessor.KindNotFound, accessor.KindOf(err))
}

func TestListReturnsFilesAndSyntheticDirectories(t *testing.T) {
	b := New("test")
	ctx := context.Background()

	for _, p := range []string{"/a/one.txt", "/a/two.txt", "/a/nested/three.txt", "/top.txt"} {
		op, err := accessor.NewOpWrite(p, 1)
		require.NoError(t, err)
		_, err = b.Write(ctx, op, io.NopCloser(strings.NewReader("x")))
		require.NoError(t, err)
	}

	opList, err := accessor.NewOpList("/a/")
	require.NoError(t, err)
	stream, err := b.List(ctx, opList)
	require.NoError(t, err)
	defer stream.Close()

	var paths []string
	for stream.Next(ctx) {
		paths = append(paths, stream.Entry().Path)
	}
	require.NoError(t, stream.Err())

	assert.ElementsMatch(t, []string{"/a/one.txt", "/a/two.txt", "/a/nested/"}, paths)
}

func TestPresignReturnsMethodPerOperation(t *testing.T) {
	b := New("test")
	ctx := context.Background()

	opRead, err := accessor.NewOpPresign("/a.txt", accessor.PresignRead, 60)
	require.NoError(t, err)
	req, err := b.Presign(ctx, opRead)
	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method)

	opWrite, err := accessor.NewOpPresign("/a.txt", accessor.PresignWrite, 60)
	require.NoError(t, err)
	req, err = b.Presign(ctx, opWrite)
	require.NoError(t, err)
	assert.Equal(t, "PUT", req.Method)
}

func TestMultipartUploadRoundTrip(t *testing.T) {
	b := New("test")
	ctx := context.Background()

	opCreate, err := accessor.NewOpCreateMultipart("/big.bin")
	require.NoError(t, err)
	uploadID, err := b.CreateMultipart(ctx, opCreate)
	require.NoError(t, err)
	require.NotEmpty(t, uploadID)

	opPart1, err := accessor.NewOpWriteMultipart("/big.bin", uploadID, 1, 5)
	require.NoError(t, err)
	part1, err := b.WriteMultipart(ctx, opPart1, io.NopCloser(strings.NewReader("hello")))
	require.NoError(t, err)

	opPart2, err := accessor.NewOpWriteMultipart("/big.bin", uploadID, 2, 6)
	require.NoError(t, err)
	part2, err := b.WriteMultipart(ctx, opPart2, io.NopCloser(strings.NewReader(" world")))
	require.NoError(t, err)

	opComplete, err := accessor.NewOpCompleteMultipart("/big.bin", uploadID, []accessor.ObjectPart{part1, part2})
	require.NoError(t, err)
	require.NoError(t, b.CompleteMultipart(ctx, opComplete))

	opRead, err := accessor.NewOpRead("/big.bin")
	require.NoError(t, err)
	r, err := b.Read(ctx, opRead)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestAbortMultipartDiscardsParts(t *testing.T) {
	b := New("test")
	ctx := context.Background()

	opCreate, err := accessor.NewOpCreateMultipart("/big.bin")
	require.NoError(t, err)
	uploadID, err := b.CreateMultipart(ctx, opCreate)
	require.NoError(t, err)

	opAbort, err := accessor.NewOpAbortMultipart("/big.bin", uploadID)
	require.NoError(t, err)
	require.NoError(t, b.AbortMultipart(ctx, opAbort))

	opStat, err := accessor.NewOpStat("/big.bin")
	require.NoError(t, err)
	_, err = b.Stat(ctx, opStat)
	require.Error(t, err)
	assert.Equal(t, accessor.KindNotFound, accessor.KindOf(err))
}

func TestMetadataAdvertisesCapabilities(t *testing.T) {
	b := New("test")
	md := b.Metadata()
	assert.Equal(t, "memory", md.Scheme)
	assert.True(t, md.Capabilities.Has(accessor.CapRead))
	assert.True(t, md.Capabilities.Has(accessor.CapWrite))
	assert.True(t, md.Capabilities.Has(accessor.CapMultipart))
	assert.False(t, md.Capabilities.Has(accessor.CapBlocking))
}
