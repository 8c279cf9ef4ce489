package capability

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/theorize/internal/script"
	"github.com/roach88/theorize/internal/testutil"
)

func TestMonotonicClockNeverDecreases(t *testing.T) {
	rt := script.New()
	defer rt.Close()

	reg, err := Register(rt, Options{})
	require.NoError(t, err)
	assert.True(t, reg.Clock)

	v, err := rt.Eval("clock.js", `
		var first = Theorem.monotonic();
		var second = Theorem.monotonic();
		typeof first === "number" && second >= first;
	`)
	require.NoError(t, err)
	assert.True(t, v.ToBoolean())
}

func TestMonotonicClockGoSide(t *testing.T) {
	clock := NewMonotonicClock()
	prev := clock.Seconds()
	for i := 0; i < 1000; i++ {
		next := clock.Seconds()
		require.GreaterOrEqual(t, next, prev)
		prev = next
	}
}

func TestClockIsInjectable(t *testing.T) {
	rt := script.New()
	defer rt.Close()

	clock := testutil.NewDeterministicClock(0.25)
	_, err := Register(rt, Options{Clock: clock})
	require.NoError(t, err)

	v, err := rt.Eval("elapsed.js", `var start = Theorem.monotonic(); Theorem.monotonic() - start`)
	require.NoError(t, err)
	assert.Equal(t, 0.25, v.ToFloat())
	assert.Equal(t, int64(2), clock.Readings())
}

func TestIOToggleOmittedWhenDisabled(t *testing.T) {
	rt := script.New()
	defer rt.Close()

	reg, err := Register(rt, Options{IOToggle: false, Streams: []Stream{{Name: "out", Writer: &bytes.Buffer{}}}})
	require.NoError(t, err)
	assert.True(t, reg.IO)
	assert.False(t, reg.IOToggle)

	v, err := rt.Eval("toggle.js", `typeof IO.out.nonblock === "undefined" && typeof IO.out.write === "function"`)
	require.NoError(t, err)
	assert.True(t, v.ToBoolean())
}

func TestRegistrationFailure(t *testing.T) {
	rt := script.New()
	defer rt.Close()

	require.NoError(t, rt.Load("clash.js", []byte(`var Theorem = 7;`)))

	_, err := Register(rt, Options{})
	require.Error(t, err)

	var regErr *RegistrationError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, "Theorem.monotonic", regErr.Capability)
}

func newWriterStream(t *testing.T) (*script.Runtime, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	rt := script.New()
	t.Cleanup(rt.Close)

	_, err := Register(rt, Options{Streams: []Stream{{Name: "out", Writer: out}}})
	require.NoError(t, err)
	return rt, out
}

func TestIOWrite(t *testing.T) {
	rt, out := newWriterStream(t)

	v, err := rt.Eval("write.js", `IO.out.write("ok ", 1, "\n")`)
	require.NoError(t, err)

	assert.Equal(t, "ok 1\n", out.String())
	assert.Equal(t, int64(5), v.ToInteger())
}

func TestIOPuts(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"single", `IO.out.puts("pass")`, "pass\n"},
		{"trailing newline kept once", `IO.out.puts("pass\n")`, "pass\n"},
		{"several", `IO.out.puts("a", "b")`, "a\nb\n"},
		{"array flattened", `IO.out.puts(["a", ["b", 3]])`, "a\nb\n3\n"},
		{"empty array", `IO.out.puts([])`, "\n"},
		{"no arguments", `IO.out.puts()`, "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, out := newWriterStream(t)

			v, err := rt.Eval("puts.js", tt.src)
			require.NoError(t, err)
			assert.Nil(t, v.Export())
			assert.Equal(t, tt.want, out.String())
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestIOWriteFailureRaises(t *testing.T) {
	rt := script.New()
	defer rt.Close()

	_, err := Register(rt, Options{Streams: []Stream{{Name: "out", Writer: failingWriter{}}}})
	require.NoError(t, err)

	v, err := rt.Eval("write.js", `try { IO.out.write("x"); "no error" } catch (e) { e.message }`)
	require.NoError(t, err)
	assert.Contains(t, v.String(), "disk full")
}

func TestIOFilenoWithoutFile(t *testing.T) {
	rt, _ := newWriterStream(t)

	v, err := rt.Eval("fileno.js", `try { IO.out.fileno(); "no error" } catch (e) { e.message }`)
	require.NoError(t, err)
	assert.Contains(t, v.String(), "out has no file descriptor")
}

func TestIOStreamNeedsFileOrWriter(t *testing.T) {
	rt := script.New()
	defer rt.Close()

	_, err := Register(rt, Options{Streams: []Stream{{Name: "nowhere"}}})

	var regErr *RegistrationError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, IOType, regErr.Capability)
}
