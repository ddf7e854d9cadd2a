package index

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/accessor/pkg/accessor"
)

// countingAccessor counts Stat calls reaching the backend, so tests can
// assert whether the index layer served a request from cache.
type countingAccessor struct {
	accessor.Unsupported
	statCalls int
}

func (countingAccessor) Metadata() accessor.AccessorMetadata {
	return accessor.AccessorMetadata{Scheme: "stub", Root: "/", Name: "stub"}
}

func (c *countingAccessor) Stat(ctx context.Context, op accessor.OpStat) (accessor.ObjectMetadata, error) {
	c.statCalls++
	return accessor.ObjectMetadata{ContentLength: 42}, nil
}

func (c *countingAccessor) Create(ctx context.Context, op accessor.OpCreate) error {
	return nil
}

func (c *countingAccessor) Write(ctx context.Context, op accessor.OpWrite, body accessor.BytesReader) (int64, error) {
	return op.Size, nil
}

func (c *countingAccessor) Delete(ctx context.Context, op accessor.OpDelete) error {
	return nil
}

func TestIndexServesRepeatedStatFromCache(t *testing.T) {
	inner := &countingAccessor{}
	wrapped := New(time.Minute).Apply(inner)

	md1, err := wrapped.Stat(context.Background(), accessor.OpStat{Path: "/x"})
	require.NoError(t, err)
	md2, err := wrapped.Stat(context.Background(), accessor.OpStat{Path: "/x"})
	require.NoError(t, err)

	assert.Equal(t, 1, inner.statCalls)
	assert.Equal(t, md1, md2)
}

func TestIndexInvalidatesOnWrite(t *testing.T) {
	inner := &countingAccessor{}
	wrapped := New(time.Minute).Apply(inner)

	_, err := wrapped.Stat(context.Background(), accessor.OpStat{Path: "/x"})
	require.NoError(t, err)
	assert.Equal(t, 1, inner.statCalls)

	_, err = wrapped.Write(context.Background(), accessor.OpWrite{Path: "/x", Size: 5}, nil)
	require.NoError(t, err)

	_, err = wrapped.Stat(context.Background(), accessor.OpStat{Path: "/x"})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.statCalls, "write should invalidate the cached entry")
}

func TestIndexInvalidatesOnDelete(t *testing.T) {
	inner := &countingAccessor{}
	wrapped := New(time.Minute).Apply(inner)

	_, err := wrapped.Stat(context.Background(), accessor.OpStat{Path: "/x"})
	require.NoError(t, err)

	require.NoError(t, wrapped.Delete(context.Background(), accessor.OpDelete{Path: "/x"}))

	_, err = wrapped.Stat(context.Background(), accessor.OpStat{Path: "/x"})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.statCalls)
}

func TestIndexZeroTTLDisablesCaching(t *testing.T) {
	inner := &countingAccessor{}
	wrapped := New(0).Apply(inner)

	_, err := wrapped.Stat(context.Background(), accessor.OpStat{Path: "/x"})
	require.NoError(t, err)
	_, err = wrapped.Stat(context.Background(), accessor.OpStat{Path: "/x"})
	require.NoError(t, err)

	assert.Equal(t, 2, inner.statCalls)
}
