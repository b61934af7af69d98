package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHash = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	server := newMediaFireStub(t)

	stdout, stderr, err := runMFI(t, binaryPath, home, server.URL, "archive.zip;4096;"+sampleHash+"\n",
		"import", "--access-token", "fb-token", "--json",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	var report struct {
		ID       string
		Outcomes []struct {
			Kind string
			Link string
		}
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, "success", report.Outcomes[0].Kind)
	assert.Equal(t, "https://www.mediafire.com/file/smoke1/", report.Outcomes[0].Link)

	stdout, stderr, err = runMFI(t, binaryPath, home, server.URL, "", "history")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, report.ID)

	_, err = os.Stat(filepath.Join(home, ".mfimport", "history.toml"))
	require.NoError(t, err)
}

func newMediaFireStub(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/1.5/"), ".php") {
		case "user/get_session_token":
			_, _ = fmt.Fprint(w, `{"response":{"result":"Success","session_token":"static"}}`)
		case "user/renew_session_token":
			_, _ = fmt.Fprint(w, `{"response":{"result":"Success","session_token":"pooled","secret_key":"987654321","time":"1521400000.5"}}`)
		case "upload/instant":
			_, _ = fmt.Fprint(w, `{"response":{"result":"Success","quickkey":"smoke1"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "mfi-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/mfi")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build mfi binary: %s", string(output))
	return binaryPath
}

func runMFI(t *testing.T, binaryPath, home, baseURL, input string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"MFI_APP_ID=42",
		"MFI_API_BASE_URL="+baseURL,
	)
	cmd.Stdin = strings.NewReader(input)

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
