//go:build !(rp2040 || rp2350)

package sim

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keymatrix-go/errcode"
	"keymatrix-go/pointer"
	"keymatrix-go/types"
)

const typingTOML = `
name = "typing"
ticks = 60

[firmware]
press_telegram = true

[[press]]
row = 2
col = 3
from = 1
to = 30

[[press]]
row = 4
col = 0
from = 1
to = 60
`

func TestTypingScenario(t *testing.T) {
	s, err := ParseScenario([]byte(typingTOML), ".toml")
	require.NoError(t, err)

	var out strings.Builder
	res, err := Run(s, &out)
	require.NoError(t, err)
	require.NoError(t, res.Fault)

	assert.Equal(t, uint64(2), res.Presses)
	assert.Equal(t, 1, res.Count(KindTelegram), "both keys rise on the same scan")
	assert.Equal(t, "keyboard", res.Mode)
	assert.Equal(t, 1, res.Count(KindConsumer))
	assert.Contains(t, out.String(), "mods=0x00 keys=[0x04]")
	assert.Contains(t, out.String(), "codes=[0x00e2 0x0000 0x0000 0x0000]")
}

func TestReportDetailFormat(t *testing.T) {
	r := &runner{s: &Scenario{}, res: &Result{}}
	tr := &transport{r: r}

	kb := types.KeyboardReport{Modifiers: 0x02, N: 2}
	kb.Keys[0], kb.Keys[1] = types.KeyA, types.KeySpace
	require.NoError(t, tr.WriteKeyboard(&kb))
	require.NoError(t, tr.WriteConsumer(&types.ConsumerReport{
		Codes: [types.ConsumerReportCodes]types.Consumer{types.ConsumerMute, types.ConsumerVolumeUp},
	}))
	require.NoError(t, tr.WriteMouse(&types.MouseReport{Buttons: 0x01, X: -3, Y: 5}))

	require.Len(t, r.res.Events, 3)
	assert.Equal(t, "mods=0x02 keys=[0x04 0x2c]", r.res.Events[0].Detail)
	assert.Equal(t, "codes=[0x00e2 0x00e9 0x0000 0x0000]", r.res.Events[1].Detail)
	assert.Equal(t, "dx=-3 dy=5 buttons=0x01", r.res.Events[2].Detail)
}

func TestStickEncodingRoundTrips(t *testing.T) {
	cases := []struct {
		in     Motion
		wantX  int16
		wantY  int16
		button bool
	}{
		{Motion{X: 400, Y: -20}, 400, -20, false},
		{Motion{X: 32767, Y: 32767, Button: true}, 32767, 32767, true},
		{Motion{X: -32768, Y: -32768}, -32767, -32768, false},
	}
	for _, c := range cases {
		var raw [pointer.SampleSize]byte
		encodeStick(raw[:], c.in)
		got := pointer.DecodeSample(raw)
		assert.Equal(t, c.wantX, got.X, "x for %+v", c.in)
		assert.Equal(t, c.wantY, got.Y, "y for %+v", c.in)
		assert.Equal(t, c.button, got.Button)
	}
}

const pointerYAML = `
ticks: 60
firmware:
  pointer_warmup: 20ms
pointer:
  - {x: 400, from: 25, to: 60}
press:
  - {row: 0, col: 6, from: 32, to: 60}
`

func TestPointerScenarioEntersPointerMode(t *testing.T) {
	s, err := ParseScenario([]byte(pointerYAML), ".yaml")
	require.NoError(t, err)

	res, err := Run(s, nil)
	require.NoError(t, err)
	assert.Equal(t, "pointer", res.Mode)
	assert.GreaterOrEqual(t, res.Count(KindMouse), 2)

	var sawButton bool
	for _, e := range res.Events {
		if e.Kind == KindMouse && strings.Contains(e.Detail, "buttons=0x01") {
			sawButton = true
		}
		if e.Kind == KindKeyboard {
			assert.NotContains(t, e.Detail, "0x2c", "space must not be typed in pointer mode")
		}
	}
	assert.True(t, sawButton, "dual key should press the left button")
}

func TestInjectedFailures(t *testing.T) {
	s, err := ParseScenario([]byte(`
ticks = 40
[[fail]]
tick = 10
report = "mouse"
code = "would_block"
[[fail]]
tick = 20
report = "keyboard"
code = "endpoint stalled"
`), ".toml")
	require.NoError(t, err)

	res, err := Run(s, nil)
	require.NoError(t, err)
	require.Error(t, res.Fault)
	assert.Equal(t, errcode.Transport, errcode.Of(res.Fault))
	assert.Equal(t, 1, res.Count(KindFault))
	assert.Equal(t, uint64(20), res.Events[len(res.Events)-1].Tick)
}

func TestScenarioValidation(t *testing.T) {
	cases := map[string]string{
		"no ticks":     `name = "x"`,
		"off matrix":   "ticks = 5\n[[press]]\nrow = 6\ncol = 0\nfrom = 1\nto = 2\n",
		"empty range":  "ticks = 5\n[[press]]\nrow = 0\ncol = 0\nfrom = 2\nto = 2\n",
		"bad report":   "ticks = 5\n[[fail]]\ntick = 1\nreport = \"led\"\n",
		"bad firmware": "ticks = 5\n[firmware]\npointer_curve = \"cubic\"\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScenario([]byte(src), ".toml")
			assert.Error(t, err)
		})
	}
	_, err := ParseScenario([]byte(`{}`), ".json")
	assert.ErrorContains(t, err, "unsupported scenario format")
}

func TestLoadScenarioNamesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idle.yml")
	require.NoError(t, os.WriteFile(path, []byte("ticks: 5\n"), 0o600))
	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "idle", s.Name)
}

func TestWatchFiresOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.toml")
	require.NoError(t, os.WriteFile(path, []byte("ticks = 1\n"), 0o600))

	var fired atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, func() { fired.Add(1) }) }()

	// give the watcher time to register
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("ticks = 2\n"), 0o600))

	assert.Eventually(t, func() bool { return fired.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}

func TestBundledScenarios(t *testing.T) {
	want := map[string]struct {
		mode  string
		fault bool
	}{
		"typing":  {"keyboard", false},
		"pointer": {"keyboard", false},
		"stall":   {"keyboard", true},
	}
	paths, err := filepath.Glob(filepath.Join("testdata", "*.*"))
	require.NoError(t, err)
	require.Len(t, paths, len(want))

	for _, p := range paths {
		s, err := LoadScenario(p)
		require.NoError(t, err, p)
		w, ok := want[s.Name]
		require.True(t, ok, "unexpected scenario %s", s.Name)

		res, err := Run(s, nil)
		require.NoError(t, err, p)
		assert.Equal(t, w.mode, res.Mode, s.Name)
		assert.Equal(t, w.fault, res.Fault != nil, s.Name)
	}
}
