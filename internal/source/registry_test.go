package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenUnknownAdapter(t *testing.T) {
	_, err := Open("no-such-adapter")
	assert.Error(t, err)
}

func TestRegisterAndOpenByName(t *testing.T) {
	want := &fakeSource{states: []*State{{}}}
	Register("registry-test", func() (Source, error) { return want, nil })

	got, err := Open("registry-test")
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Contains(t, Names(), "registry-test")
}

func TestRegisterDuplicatePanics(t *testing.T) {
	factory := func() (Source, error) { return nil, ErrNoPlayer }
	Register("registry-dup", factory)
	assert.Panics(t, func() { Register("registry-dup", factory) })
}
