package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probe struct {
	Emitter
	title string
	count int
}

func (p *probe) Title() string { return p.title }
func (p *probe) SetTitle(v string) {
	p.title = v
	p.Notify("Title")
}

func (p *probe) Count() int { return p.count }
func (p *probe) SetCount(v int) {
	p.count = v
	p.Notify("Count")
}

func probeAccessor() *Accessor[probe] {
	a := NewAccessor[probe]()
	Field(a, "Title", (*probe).Title, (*probe).SetTitle)
	Field(a, "Count", (*probe).Count, (*probe).SetCount)
	return a
}

func TestAccessorGetSet(t *testing.T) {
	a := probeAccessor()
	p := &probe{}

	require.NoError(t, a.Set(p, "Title", "song"))
	got, err := a.Get(p, "Title")
	require.NoError(t, err)
	assert.Equal(t, "song", got)

	require.NoError(t, a.Set(p, "Count", 3))
	got, err = a.Get(p, "Count")
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestAccessorUnknownField(t *testing.T) {
	a := probeAccessor()
	p := &probe{}

	_, err := a.Get(p, "Nope")
	assert.ErrorIs(t, err, ErrFieldNotFound)

	err = a.Set(p, "Nope", "x")
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestAccessorSetWrongType(t *testing.T) {
	a := probeAccessor()
	p := &probe{}

	err := a.Set(p, "Count", "not an int")
	assert.Error(t, err)
	assert.Equal(t, 0, p.Count())
}

func TestAccessorSetRaisesNotification(t *testing.T) {
	a := probeAccessor()
	p := &probe{}

	var fields []string
	p.Subscribe(func(field string) { fields = append(fields, field) })

	require.NoError(t, a.Set(p, "Title", "x"))
	assert.Equal(t, []string{"Title"}, fields)
}

func TestAccessorCopyInto(t *testing.T) {
	a := probeAccessor()
	src := &probe{}
	src.SetTitle("original")
	src.SetCount(7)

	dst := &probe{}
	a.CopyInto(dst, src)

	assert.Equal(t, "original", dst.Title())
	assert.Equal(t, 7, dst.Count())
}

func TestAccessorFieldsOrder(t *testing.T) {
	a := probeAccessor()
	assert.Equal(t, []string{"Title", "Count"}, a.Fields())
}

func TestAccessorDuplicateRegistrationPanics(t *testing.T) {
	a := NewAccessor[probe]()
	Field(a, "Title", (*probe).Title, (*probe).SetTitle)
	assert.Panics(t, func() {
		Field(a, "Title", (*probe).Title, (*probe).SetTitle)
	})
}
