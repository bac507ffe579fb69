package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProbeVM(t *testing.T, deps Dependents) (*probe, *ViewModel[probe], *[]string) {
	t.Helper()

	p := &probe{}
	vm, err := New(p, probeAccessor(), Config{
		Bindings: Bindings{
			"TitleText": "Title",
			// Count intentionally unbound.
		},
		Dependents: deps,
	})
	require.NoError(t, err)

	var raised []string
	vm.OnPropertyChanged(func(property string) { raised = append(raised, property) })
	return p, vm, &raised
}

func TestMutationRaisesBoundPropertyThenDependents(t *testing.T) {
	p, _, raised := newProbeVM(t, Dependents{
		"TitleText": {"Header", "Tooltip"},
	})

	p.SetTitle("new song")

	assert.Equal(t, []string{"TitleText", "Header", "Tooltip"}, *raised)
}

func TestUnboundFieldIsIgnored(t *testing.T) {
	p, vm, raised := newProbeVM(t, nil)

	var hooked []string
	vm.SetHook(func(property string) { hooked = append(hooked, property) })

	p.SetCount(42)

	assert.Empty(t, *raised)
	assert.Empty(t, hooked)
}

func TestHookRunsAfterCascade(t *testing.T) {
	p, vm, raised := newProbeVM(t, Dependents{"TitleText": {"Header"}})

	var atHook []string
	vm.SetHook(func(property string) {
		assert.Equal(t, "TitleText", property)
		atHook = append(atHook, *raised...)
	})

	p.SetTitle("x")

	// By the time the hook runs, the whole cascade has been raised.
	assert.Equal(t, []string{"TitleText", "Header"}, atHook)
}

func TestSetPropertyRoundTrip(t *testing.T) {
	_, vm, _ := newProbeVM(t, nil)

	assert.True(t, vm.SetProperty("Title", "hello"))
	assert.Equal(t, "hello", vm.Model().Title())

	// Unknown field and wrong type both report a failed round trip.
	assert.False(t, vm.SetProperty("Nope", "x"))
	assert.False(t, vm.SetProperty("Count", "not an int"))
}

func TestCancelEditRestoresAndCascades(t *testing.T) {
	p, vm, raised := newProbeVM(t, Dependents{"TitleText": {"Header"}})

	p.SetTitle("before")
	*raised = nil

	vm.BeginEdit()
	assert.True(t, vm.SetProperty("Title", "during"))
	assert.Equal(t, "during", p.Title())
	assert.Equal(t, []string{"TitleText", "Header"}, *raised)

	*raised = nil
	vm.CancelEdit()

	assert.Equal(t, "before", p.Title())
	// Restoring replays the same cascade a normal mutation would.
	assert.Equal(t, []string{"TitleText", "Header"}, *raised)
	assert.False(t, vm.Editing())
}

func TestEndEditCommitsWithoutExtraCascade(t *testing.T) {
	p, vm, raised := newProbeVM(t, nil)

	vm.BeginEdit()
	assert.True(t, vm.SetProperty("Title", "kept"))
	*raised = nil

	vm.EndEdit()

	assert.Equal(t, "kept", p.Title())
	assert.Empty(t, *raised)
	assert.False(t, vm.Editing())
}

func TestCancelAndEndWithoutBeginAreNoOps(t *testing.T) {
	p, vm, raised := newProbeVM(t, nil)
	p.SetTitle("steady")
	*raised = nil

	vm.CancelEdit()
	vm.EndEdit()

	assert.Equal(t, "steady", p.Title())
	assert.Empty(t, *raised)
}

func TestBeginEditIsIdempotent(t *testing.T) {
	p, vm, _ := newProbeVM(t, nil)
	p.SetTitle("first")

	vm.BeginEdit()
	assert.True(t, vm.SetProperty("Title", "second"))

	// A second begin must not replace the pending snapshot.
	vm.BeginEdit()
	assert.True(t, vm.SetProperty("Title", "third"))

	vm.CancelEdit()
	assert.Equal(t, "first", p.Title())
}

func TestConstructionErrors(t *testing.T) {
	tests := []struct {
		name     string
		bindings Bindings
	}{
		{
			name:     "unknown field",
			bindings: Bindings{"TitleText": "NoSuchField"},
		},
		{
			name: "duplicate field",
			bindings: Bindings{
				"TitleText": "Title",
				"Heading":   "Title",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&probe{}, probeAccessor(), Config{Bindings: tt.bindings})
			assert.Error(t, err)
		})
	}
}
