package hsm_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/sandrogort/state-surf/hsm"
)

const playerYAML = `
name: player
initial: stopped
terminate: SHUTDOWN
states:
  - name: stopped
  - name: playing
    initial: normal
  - name: normal
    parent: playing
  - name: fast
    parent: playing
transitions:
  - source: stopped
    event: PLAY
    target: playing
  - source: playing
    event: STOP
    target: stopped
  - source: normal
    event: RATE
    guard: canFast
    target: fast
  - source: playing
    event: MARK
    action: bookmark
    internal: true
`

func TestLoadDefinitionFromBytes(t *testing.T) {
	t.Parallel()

	def, err := hsm.LoadDefinitionFromBytes([]byte(playerYAML))
	require.NoError(t, err)

	require.Equal(t, "player", def.Name)
	require.Equal(t, hsm.State("stopped"), def.Initial)
	require.Equal(t, hsm.Event("SHUTDOWN"), def.Terminate)
	require.Len(t, def.States, 4)
	require.Len(t, def.Transitions, 4)

	internal := def.Transitions[3]
	require.True(t, internal.Internal)
	require.Equal(t, hsm.ActionID("bookmark"), internal.Action)
	require.Empty(t, internal.Target)
}

func TestLoadDefinitionFromBytesRejectsBadYAML(t *testing.T) {
	t.Parallel()

	_, err := hsm.LoadDefinitionFromBytes([]byte("states: [unclosed"))
	require.Error(t, err)
}

func TestLoadDefinitionFromBytesValidates(t *testing.T) {
	t.Parallel()

	_, err := hsm.LoadDefinitionFromBytes([]byte("name: broken\ninitial: ghost\nstates:\n  - name: real\n"))
	require.ErrorIs(t, err, hsm.ErrInitialStateNotFound)
}

func TestLoadChartFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "player.yaml")
	require.NoError(t, os.WriteFile(path, []byte(playerYAML), 0o600))

	chart, err := hsm.LoadChart(path)
	require.NoError(t, err)
	require.Equal(t, "player", chart.Name())
	require.True(t, chart.HasState("fast"))
}

func TestLoadChartMissingFile(t *testing.T) {
	t.Parallel()

	_, err := hsm.LoadChart(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadDefinitionFromFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"charts/player.yaml": &fstest.MapFile{Data: []byte(playerYAML)},
	}

	def, err := hsm.LoadDefinitionFromFS(fsys, "charts/player.yaml")
	require.NoError(t, err)
	require.Equal(t, "player", def.Name)

	_, err = hsm.LoadDefinitionFromFS(fsys, "charts/absent.yaml")
	require.Error(t, err)
}
