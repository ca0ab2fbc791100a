package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// ErrNotRunning is returned when no live daemon owns the pid file.
var ErrNotRunning = errors.New("daemon is not running")

// RuntimeState is written next to the pid file while the daemon runs.
type RuntimeState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	DataDir   string    `json:"data_dir"`
}

// Process locates the files a daemon process owns inside the data directory.
type Process struct {
	PIDPath   string
	StatePath string
	LogPath   string
}

// ProcessFiles returns the pid, state and log locations for dataDir.
func ProcessFiles(dataDir string) Process {
	pid := filepath.Join(dataDir, "finflexd.pid")
	return Process{
		PIDPath:   pid,
		StatePath: pid + ".json",
		LogPath:   filepath.Join(dataDir, "finflexd.log"),
	}
}

// Claim fails when another live daemon holds the pid file, otherwise
// clears stale files and records st as the current owner.
func (p Process) Claim(st RuntimeState) error {
	if err := p.EnsureFree(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.PIDPath), 0o750); err != nil {
		return fmt.Errorf("create daemon directory: %w", err)
	}
	if err := os.WriteFile(p.PIDPath, []byte(strconv.Itoa(st.PID)+"\n"), 0o600); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	// state is advisory
	_ = os.WriteFile(p.StatePath, append(data, '\n'), 0o600)
	return nil
}

// EnsureFree returns an error if a live process owns the pid file.
func (p Process) EnsureFree() error {
	pid, err := p.PID()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if Alive(pid) {
		return fmt.Errorf("daemon already running (pid %d)", pid)
	}
	p.Release()
	return nil
}

// Release removes the pid and state files.
func (p Process) Release() {
	_ = os.Remove(p.PIDPath)
	_ = os.Remove(p.StatePath)
}

// PID reads the pid file.
func (p Process) PID() (int, error) {
	//nolint:gosec // pid path is derived from the user's data dir
	data, err := os.ReadFile(p.PIDPath)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", p.PIDPath)
	}
	return pid, nil
}

// State reads the runtime state file.
func (p Process) State() (RuntimeState, error) {
	var st RuntimeState
	//nolint:gosec // state path is derived from the user's data dir
	data, err := os.ReadFile(p.StatePath)
	if err != nil {
		return st, err
	}
	err = json.Unmarshal(data, &st)
	return st, err
}

// Stop sends SIGTERM to the owning process and waits up to timeout for it
// to exit. It returns the pid that was stopped.
func (p Process) Stop(timeout time.Duration) (int, error) {
	pid, err := p.PID()
	if err != nil {
		return 0, ErrNotRunning
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return pid, fmt.Errorf("find daemon process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return pid, fmt.Errorf("signal daemon process: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !Alive(pid) {
			p.Release()
			return pid, nil
		}
		time.Sleep(150 * time.Millisecond)
	}
	return pid, fmt.Errorf("daemon (pid %d) did not exit in time", pid)
}

// Alive reports whether a process with pid exists.
func Alive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

// FetchStatus queries a running daemon's /v1/status endpoint.
func FetchStatus(ctx context.Context, addr string) (Status, error) {
	var st Status
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/v1/status", nil)
	if err != nil {
		return st, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return st, fmt.Errorf("unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return st, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return st, fmt.Errorf("malformed response: %w", err)
	}
	return st, nil
}
