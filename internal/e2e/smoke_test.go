package e2e

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	var received atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received.Store(string(body))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()
	require.NoError(t, writeConfigFixture(home, server.URL))

	formPath := filepath.Join(home, "entry.toml")
	_, stderr, err := runCE(t, binaryPath, home, "form", "init", formPath)
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runCE(t, binaryPath, home,
		"form", "set", formPath,
		"--name", "Ada",
		"--current-credits", "20",
		"--plan", "4-2-2-2-2-2",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runCE(t, binaryPath, home, "submit", "--form", formPath)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Saved successfully")

	body, _ := received.Load().(string)
	assert.True(t, strings.HasPrefix(body, "name=Ada&plan=4-2-2-2-2-2&"), body)
	assert.Contains(t, body, "creditAction=remove&creditCount=6")

	form, err := os.ReadFile(formPath)
	require.NoError(t, err)
	assert.NotContains(t, string(form), "Ada")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "ce-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/ce")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build ce binary: %s", string(output))
	return binaryPath
}

func runCE(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "XDG_CONFIG_HOME="+home, "CE_ENDPOINT_URL=")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeConfigFixture(home, endpoint string) error {
	configDir := filepath.Join(home, "ce")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	config := `[endpoint]
url = "` + endpoint + `"
mode = "cors"
timeout = "10s"

[log]
level = "debug"
format = "json"
`

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o644)
}
