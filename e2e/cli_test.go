package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodluckfit/fitauth/internal/api"
	"github.com/goodluckfit/fitauth/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "fitauth-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/fitauth")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := factory.New(factory.Config{
		TokenSecret: []byte("e2e-test-secret"),
		Logger:      logger,
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		TokenIssuer: app.TokenIssuer,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/auth/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type userResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	Height   float64 `json:"height"`
	Weight   float64 `json:"weight"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Message)
}

func TestCLI_RegisterAndLogin(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register
	output, err := cli.run("register", "--user", "alice", "--pass", "secret1", "--height", "170", "--weight", "65")
	require.NoError(t, err, "output: %s", output)

	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Equal(t, "registration successful", msgResp.Message)

	// Login
	output, err = cli.run("login", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err, "output: %s", output)

	var loginResp loginResponse
	require.NoError(t, json.Unmarshal([]byte(output), &loginResp))
	assert.Equal(t, "alice", loginResp.User.Username)
	assert.Equal(t, "user", loginResp.User.Role)
	assert.Equal(t, 170.0, loginResp.User.Height)
	assert.NotEmpty(t, loginResp.Token)

	// Profile (token should be saved in token file)
	output, err = cli.run("profile")
	require.NoError(t, err, "output: %s", output)

	var user userResponse
	require.NoError(t, json.Unmarshal([]byte(output), &user))
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, loginResp.User.ID, user.ID)
}

func TestCLI_ProfileUpdate(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("register", "--user", "alice", "--pass", "secret1", "--height", "170", "--weight", "65")
	require.NoError(t, err, "output: %s", output)
	output, err = cli.run("login", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err, "output: %s", output)

	// Update weight only; height and username must be left alone
	output, err = cli.run("update", "--weight", "64")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("profile")
	require.NoError(t, err, "output: %s", output)

	var user userResponse
	require.NoError(t, json.Unmarshal([]byte(output), &user))
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, 170.0, user.Height)
	assert.Equal(t, 64.0, user.Weight)
}

func TestCLI_PasswordChange(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("register", "--user", "alice", "--pass", "secret1", "--height", "170", "--weight", "65")
	require.NoError(t, err, "output: %s", output)
	output, err = cli.run("login", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("set-password", "--pass", "secret2")
	require.NoError(t, err, "output: %s", output)

	// Old password rejected
	output, err = cli.run("login", "--user", "alice", "--pass", "secret1")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "incorrect password")

	// New password works
	output, err = cli.run("login", "--user", "alice", "--pass", "secret2")
	require.NoError(t, err, "output: %s", output)
}

func TestCLI_Refresh(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("register", "--user", "alice", "--pass", "secret1", "--height", "170", "--weight", "65")
	require.NoError(t, err, "output: %s", output)
	output, err = cli.run("login", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("refresh")
	require.NoError(t, err, "output: %s", output)

	var tokenResp tokenResponse
	require.NoError(t, json.Unmarshal([]byte(output), &tokenResp))
	assert.NotEmpty(t, tokenResp.Token)

	// Refreshed token is saved and usable
	output, err = cli.run("profile")
	require.NoError(t, err, "output: %s", output)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Profile without auth
	output, err := cli.run("profile")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "authentication required")

	// Login for a user that does not exist
	output, err = cli.run("login", "--user", "nobody", "--pass", "secret1")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")

	// Duplicate registration
	output, err = cli.run("register", "--user", "alice", "--pass", "secret1", "--height", "170", "--weight", "65")
	require.NoError(t, err, "output: %s", output)
	output, err = cli.run("register", "--user", "alice", "--pass", "other1", "--height", "180", "--weight", "80")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "already exists")

	// Stale/garbage token rejected by protected routes
	output, err = cli.runWithToken("garbage", "profile")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "invalid token")
}
