package installer

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls   []string
	respond func(cmd string) ([]byte, error)
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	cmd := strings.TrimSpace(name + " " + strings.Join(args, " "))
	f.calls = append(f.calls, cmd)
	return f.respond(cmd)
}

var errExit = errors.New("exit status 1")

func TestForPlatform(t *testing.T) {
	inst, err := ForPlatform("darwin", Options{})
	require.NoError(t, err)
	assert.Equal(t, "homebrew", inst.Name())

	inst, err = ForPlatform("windows", Options{BaseDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "archive", inst.Name())

	_, err = ForPlatform("linux", Options{})
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestHomebrew_AlreadyInstalled(t *testing.T) {
	runner := &fakeRunner{respond: func(string) ([]byte, error) { return []byte("dot - graphviz version 9.0.0"), nil }}
	inst, err := ForPlatform("darwin", Options{Runner: runner})
	require.NoError(t, err)

	err = inst.Install(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyInstalled)
	assert.Equal(t, []string{"dot -V"}, runner.calls)
}

func TestHomebrew_Install(t *testing.T) {
	installed := false
	runner := &fakeRunner{respond: func(cmd string) ([]byte, error) {
		switch cmd {
		case "dot -V":
			if installed {
				return []byte("ok"), nil
			}
			return nil, errExit
		case "brew install graphviz":
			installed = true
		}
		return nil, nil
	}}
	inst, err := ForPlatform("darwin", Options{Runner: runner})
	require.NoError(t, err)

	require.NoError(t, inst.Install(context.Background()))
	assert.Equal(t, []string{"dot -V", "brew --version", "brew install graphviz", "dot -V"}, runner.calls)
}

func TestHomebrew_MissingBrew(t *testing.T) {
	runner := &fakeRunner{respond: func(string) ([]byte, error) { return nil, errExit }}
	inst, err := ForPlatform("darwin", Options{Runner: runner})
	require.NoError(t, err)

	err = inst.Install(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "homebrew")
	assert.NotContains(t, runner.calls, "brew install graphviz")
}

func TestHomebrew_LinkOnConfirm(t *testing.T) {
	linked := false
	runner := &fakeRunner{respond: func(cmd string) ([]byte, error) {
		switch cmd {
		case "dot -V":
			if linked {
				return nil, nil
			}
			return nil, errExit
		case "brew link --overwrite graphviz":
			linked = true
		}
		return nil, nil
	}}

	declined, err := ForPlatform("darwin", Options{Runner: runner})
	require.NoError(t, err)
	assert.Error(t, declined.Install(context.Background()))
	assert.False(t, linked)

	accepted, err := ForPlatform("darwin", Options{Runner: runner, Confirm: func(string) bool { return true }})
	require.NoError(t, err)
	require.NoError(t, accepted.Install(context.Background()))
	assert.True(t, linked)
}

func zipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, body := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestArchive_Install(t *testing.T) {
	payload := zipArchive(t, map[string]string{
		"Graphviz/bin/dot.exe":  "binary",
		"Graphviz/share/README": "graphviz",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	base := t.TempDir()
	runner := &fakeRunner{respond: func(cmd string) ([]byte, error) {
		bin := strings.TrimSuffix(cmd, " -V")
		if bin == "dot" {
			return nil, errExit
		}
		if _, err := os.Stat(bin); err != nil {
			return nil, err
		}
		return []byte("dot - graphviz version 9.0.0"), nil
	}}

	inst, err := ForPlatform("windows", Options{Runner: runner, BaseDir: base, DownloadURL: srv.URL})
	require.NoError(t, err)
	require.NoError(t, inst.Install(context.Background()))

	data, err := os.ReadFile(filepath.Join(base, "Graphviz", "bin", "dot.exe"))
	require.NoError(t, err)
	assert.Equal(t, "binary", string(data))
	assert.NoFileExists(t, filepath.Join(base, "Graphviz.zip"))

	err = inst.Install(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyInstalled)
}

func TestArchive_DownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	runner := &fakeRunner{respond: func(string) ([]byte, error) { return nil, errExit }}
	inst, err := ForPlatform("windows", Options{Runner: runner, BaseDir: t.TempDir(), DownloadURL: srv.URL})
	require.NoError(t, err)

	err = inst.Install(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestExtract_RejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "evil.zip")
	require.NoError(t, os.WriteFile(src, zipArchive(t, map[string]string{"../escape.txt": "x"}), 0o644))

	err := extract(src, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "escape.txt"))
}

func TestOpenLog_Rotates(t *testing.T) {
	dir := t.TempDir()

	first, err := OpenLog(dir)
	require.NoError(t, err)
	_, err = first.WriteString("first run")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenLog(dir)
	require.NoError(t, err)
	require.NoError(t, second.Close())

	old, err := os.ReadFile(filepath.Join(dir, LogFileName+"_old"))
	require.NoError(t, err)
	assert.Equal(t, "first run", string(old))

	current, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Empty(t, current)
}
