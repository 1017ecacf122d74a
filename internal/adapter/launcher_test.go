package adapter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type startCall struct {
	name string
	args []string
}

func recordingLauncher(command string, args []string, inPath bool) (*Launcher, *[]startCall) {
	var calls []startCall
	l := NewLauncher(command, args, NullLogger())
	l.lookPath = func(file string) (string, error) {
		if inPath {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("not found")
	}
	l.start = func(name string, args ...string) error {
		calls = append(calls, startCall{name: name, args: args})
		return nil
	}
	return l, &calls
}

func TestLauncher_ConfiguredCommand(t *testing.T) {
	l, calls := recordingLauncher("myplayer", []string{"--quiet"}, false)

	require.NoError(t, l.Launch("spotify:track:1"))

	require.Len(t, *calls, 1)
	assert.Equal(t, "myplayer", (*calls)[0].name)
	assert.Equal(t, []string{"--quiet", "spotify:track:1"}, (*calls)[0].args)
}

func TestLauncher_FallsBackToSystemDefault(t *testing.T) {
	l, calls := recordingLauncher("", nil, false)

	require.NoError(t, l.Launch("spotify:track:1"))

	require.NotEmpty(t, *calls)
	last := (*calls)[len(*calls)-1]
	assert.Equal(t, "spotify:track:1", last.args[len(last.args)-1])
}

func TestLauncher_EmptyURI(t *testing.T) {
	l, calls := recordingLauncher("myplayer", nil, true)

	assert.Error(t, l.Launch(""))
	assert.Empty(t, *calls)
}

func TestDefaultOpener(t *testing.T) {
	name, _ := defaultOpener("darwin")
	assert.Equal(t, "open", name)
	name, _ = defaultOpener("linux")
	assert.Equal(t, "xdg-open", name)
	name, args := defaultOpener("windows")
	assert.Equal(t, "cmd", name)
	assert.Equal(t, []string{"/c", "start", ""}, args)
}

func TestLauncher_OpenURLIgnoresConfiguredClient(t *testing.T) {
	l, calls := recordingLauncher("myplayer", nil, true)

	require.NoError(t, l.OpenURL("https://accounts.spotify.com/authorize"))

	require.Len(t, *calls, 1)
	assert.NotEqual(t, "myplayer", (*calls)[0].name)
	assert.Equal(t, "https://accounts.spotify.com/authorize", (*calls)[0].args[len((*calls)[0].args)-1])
}
