// Package retry implements the retry layer: it decorates an inner accessor
// so that operations classified as retryable (§4.3.3) are re-invoked,
// according to a pluggable backoff.Factory, when they fail with a
// retryable error (kind Interrupted, §4.3.2).
//
// write and write_multipart are passed straight through, never retried: the
// body reader handed to them is a one-shot stream and a second attempt
// would send a truncated payload (§4.3.3). presign and metadata are pure
// local computation and are likewise passed straight through.
package retry

import (
	"context"
	"time"

	"github.com/marmos91/accessor/pkg/accessor"
	"github.com/marmos91/accessor/pkg/accessor/backoff"
)

// Layer builds retry-decorated accessors from a backoff.Factory. OnRetry, if
// set, is called once per extra attempt beyond the first, naming the
// operation being retried — the hook a metrics.Metrics is wired through via
// its RecordRetry method, without this package importing metrics itself.
type Layer struct {
	Factory backoff.Factory
	OnRetry func(operation string)
}

// New returns a retry Layer using factory to produce a fresh backoff policy
// for every retryable call.
func New(factory backoff.Factory) Layer {
	return Layer{Factory: factory}
}

// Apply wraps inner with retry behavior. If inner also implements
// accessor.BlockingAccessor, the returned value does too.
func (l Layer) Apply(inner accessor.Accessor) accessor.Accessor {
	ra := retryAccessor{inner: inner, factory: l.Factory, onRetry: l.OnRetry}
	if blocking, ok := inner.(accessor.BlockingAccessor); ok {
		return retryBlockingAccessor{retryAccessor: ra, innerBlocking: blocking}
	}
	return ra
}

type retryAccessor struct {
	inner   accessor.Accessor
	factory backoff.Factory
	onRetry func(operation string)
}

func (r retryAccessor) Metadata() accessor.AccessorMetadata {
	return r.inner.Metadata()
}

func (r retryAccessor) Create(ctx context.Context, op accessor.OpCreate) error {
	return retryDoErr(ctx, r.factory, "create", r.onRetry, func() error {
		return r.inner.Create(ctx, op)
	})
}

func (r retryAccessor) Read(ctx context.Context, op accessor.OpRead) (accessor.BytesReader, error) {
	return retryDo(ctx, r.factory, "read", r.onRetry, func() (accessor.BytesReader, error) {
		return r.inner.Read(ctx, op)
	})
}

// Write is never retried (§4.3.3).
func (r retryAccessor) Write(ctx context.Context, op accessor.OpWrite, body accessor.BytesReader) (int64, error) {
	return r.inner.Write(ctx, op, body)
}

func (r retryAccessor) Stat(ctx context.Context, op accessor.OpStat) (accessor.ObjectMetadata, error) {
	return retryDo(ctx, r.factory, "stat", r.onRetry, func() (accessor.ObjectMetadata, error) {
		return r.inner.Stat(ctx, op)
	})
}

func (r retryAccessor) Delete(ctx context.Context, op accessor.OpDelete) error {
	return retryDoErr(ctx, r.factory, "delete", r.onRetry, func() error {
		return r.inner.Delete(ctx, op)
	})
}

func (r retryAccessor) List(ctx context.Context, op accessor.OpList) (accessor.DirStream, error) {
	return retryDo(ctx, r.factory, "list", r.onRetry, func() (accessor.DirStream, error) {
		return r.inner.List(ctx, op)
	})
}

// Presign is never retried: pure local computation (§4.3.3).
func (r retryAccessor) Presign(ctx context.Context, op accessor.OpPresign) (accessor.PresignedRequest, error) {
	return r.inner.Presign(ctx, op)
}

func (r retryAccessor) CreateMultipart(ctx context.Context, op accessor.OpCreateMultipart) (string, error) {
	return retryDo(ctx, r.factory, "create_multipart", r.onRetry, func() (string, error) {
		return r.inner.CreateMultipart(ctx, op)
	})
}

// WriteMultipart is never retried, for the same reason as Write (§4.3.3).
func (r retryAccessor) WriteMultipart(ctx context.Context, op accessor.OpWriteMultipart, body accessor.BytesReader) (accessor.ObjectPart, error) {
	return r.inner.WriteMultipart(ctx, op, body)
}

func (r retryAccessor) CompleteMultipart(ctx context.Context, op accessor.OpCompleteMultipart) error {
	return retryDoErr(ctx, r.factory, "complete_multipart", r.onRetry, func() error {
		return r.inner.CompleteMultipart(ctx, op)
	})
}

func (r retryAccessor) AbortMultipart(ctx context.Context, op accessor.OpAbortMultipart) error {
	return retryDoErr(ctx, r.factory, "abort_multipart", r.onRetry, func() error {
		return r.inner.AbortMultipart(ctx, op)
	})
}

// retryDo implements the retry algorithm (§4.3.4) for the async path: clone
// a fresh backoff policy, attempt, and on a retryable error wait at the
// suspension point (ctx.Done or the backoff timer) before looping. A
// cancelled context drops the schedule immediately with no partial state
// (§4.3.5).
func retryDo[T any](ctx context.Context, factory backoff.Factory, operation string, onRetry func(string), fn func() (T, error)) (T, error) {
	policy := factory()
	for {
		v, err := fn()
		if err == nil {
			return v, nil
		}
		if !accessor.IsRetryable(err) {
			return v, err
		}
		d := policy.NextBackOff()
		if d == backoff.Stop {
			return v, err
		}
		if onRetry != nil {
			onRetry(operation)
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-time.After(d):
		}
	}
}

func retryDoErr(ctx context.Context, factory backoff.Factory, operation string, onRetry func(string), fn func() error) error {
	_, err := retryDo(ctx, factory, operation, onRetry, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// retryBlockingAccessor adds the BlockingAccessor surface on top of
// retryAccessor when the inner accessor supports it.
type retryBlockingAccessor struct {
	retryAccessor
	innerBlocking accessor.BlockingAccessor
}

func (r retryBlockingAccessor) CreateBlocking(op accessor.OpCreate) error {
	return retryDoBlockingErr(r.factory, "create", r.onRetry, func() error {
		return r.innerBlocking.CreateBlocking(op)
	})
}

func (r retryBlockingAccessor) ReadBlocking(op accessor.OpRead) (accessor.BlockingBytesReader, error) {
	return retryDoBlocking(r.factory, "read", r.onRetry, func() (accessor.BlockingBytesReader, error) {
		return r.innerBlocking.ReadBlocking(op)
	})
}

// WriteBlocking is never retried, mirroring Write (§4.3.3).
func (r retryBlockingAccessor) WriteBlocking(op accessor.OpWrite, body accessor.BlockingBytesReader) (int64, error) {
	return r.innerBlocking.WriteBlocking(op, body)
}

func (r retryBlockingAccessor) StatBlocking(op accessor.OpStat) (accessor.ObjectMetadata, error) {
	return retryDoBlocking(r.factory, "stat", r.onRetry, func() (accessor.ObjectMetadata, error) {
		return r.innerBlocking.StatBlocking(op)
	})
}

func (r retryBlockingAccessor) DeleteBlocking(op accessor.OpDelete) error {
	return retryDoBlockingErr(r.factory, "delete", r.onRetry, func() error {
		return r.innerBlocking.DeleteBlocking(op)
	})
}

func (r retryBlockingAccessor) ListBlocking(op accessor.OpList) (accessor.BlockingDirStream, error) {
	return retryDoBlocking(r.factory, "list", r.onRetry, func() (accessor.BlockingDirStream, error) {
		return r.innerBlocking.ListBlocking(op)
	})
}

// retryDoBlocking implements the retry algorithm for the synchronous path:
// identical state machine to retryDo, but the wait is a thread sleep rather
// than a cancellable select — blocking operations are not cancellable (§5).
func retryDoBlocking[T any](factory backoff.Factory, operation string, onRetry func(string), fn func() (T, error)) (T, error) {
	policy := factory()
	for {
		v, err := fn()
		if err == nil {
			return v, nil
		}
		if !accessor.IsRetryable(err) {
			return v, err
		}
		d := policy.NextBackOff()
		if d == backoff.Stop {
			return v, err
		}
		if onRetry != nil {
			onRetry(operation)
		}
		time.Sleep(d)
	}
}

func retryDoBlockingErr(factory backoff.Factory, operation string, onRetry func(string), fn func() error) error {
	_, err := retryDoBlocking(factory, operation, onRetry, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}
