package accessor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilityHas(t *testing.T) {
	c := CapRead | CapList
	assert.True(t, c.Has(CapRead))
	assert.True(t, c.Has(CapList))
	assert.False(t, c.Has(CapWrite))
	assert.True(t, c.Has(CapRead|CapList))
	assert.False(t, c.Has(CapRead|CapWrite))
}

func TestCapabilityString(t *testing.T) {
	assert.Equal(t, "None", Capability(0).String())
	assert.Equal(t, "Read", CapRead.String())
	assert.Equal(t, "Read|Write", (CapRead | CapWrite).String())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "FILE", ModeFile.String())
	assert.Equal(t, "DIR", ModeDir.String())
}

func TestObjectMetadataIsDir(t *testing.T) {
	assert.True(t, ObjectMetadata{Mode: ModeDir}.IsDir())
	assert.False(t, ObjectMetadata{Mode: ModeFile}.IsDir())
}
