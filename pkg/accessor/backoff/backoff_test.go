package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstantFactoryYieldsFixedDelayThenStops(t *testing.T) {
	factory := Constant(time.Millisecond, 3)
	policy := factory()

	for i := 0; i < 3; i++ {
		d := policy.NextBackOff()
		require.NotEqual(t, Stop, d)
		assert.Equal(t, time.Millisecond, d)
	}

	assert.Equal(t, Stop, policy.NextBackOff())
}

func TestConstantFactoryProducesFreshPolicyEachCall(t *testing.T) {
	factory := Constant(time.Millisecond, 1)

	first := factory()
	first.NextBackOff()
	assert.Equal(t, Stop, first.NextBackOff())

	// A fresh policy from the same factory must not be exhausted just
	// because a previous policy was.
	second := factory()
	assert.NotEqual(t, Stop, second.NextBackOff())
}

func TestExponentialFactoryRespectsMaxAttempts(t *testing.T) {
	factory := Exponential(time.Millisecond, 10*time.Millisecond, time.Second, 2)
	policy := factory()

	d1 := policy.NextBackOff()
	require.NotEqual(t, Stop, d1)
	d2 := policy.NextBackOff()
	require.NotEqual(t, Stop, d2)

	assert.Equal(t, Stop, policy.NextBackOff())
}

func TestUnboundedFactoryYieldsPositiveDelays(t *testing.T) {
	factory := Unbounded(0)
	policy := factory()

	d := policy.NextBackOff()
	assert.Greater(t, d, time.Duration(0))
}
