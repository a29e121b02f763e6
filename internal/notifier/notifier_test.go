package notifier

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/ownitapp/ownit/internal/constants"
	"github.com/ownitapp/ownit/internal/reminder"
)

// Mock Process
type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int {
	return m.pid
}

func (m *mockProcess) PPid() int {
	return 0
}

func (m *mockProcess) Executable() string {
	return m.executable
}

func TestGetAgentConfigDir(t *testing.T) {
	tempDir := t.TempDir()

	// Mock userConfigDirFunc
	oldUserConfigDirFunc := userConfigDirFunc
	defer func() { userConfigDirFunc = oldUserConfigDirFunc }()
	userConfigDirFunc = func() (string, error) {
		return tempDir, nil
	}

	// Test 1: Default
	expectedDefault := filepath.Join(tempDir, constants.AgentAppIdentifier)
	dir, err := GetAgentConfigDir()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if dir != expectedDefault {
		t.Errorf("expected %s, got %s", expectedDefault, dir)
	}

	// Test 2: Custom setting
	agentConfigDir := filepath.Join(tempDir, constants.AgentAppIdentifier)
	if err := os.MkdirAll(agentConfigDir, 0755); err != nil {
		t.Fatal(err)
	}

	customDir := "/custom/ownit/dir"
	settingsJSON := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
	if err := os.WriteFile(filepath.Join(agentConfigDir, "settings.json"), []byte(settingsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetAgentConfigDir()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestFindAndValidateAgentProcess(t *testing.T) {
	// Mock findProcessFunc
	oldFindProcessFunc := findProcessFunc
	defer func() { findProcessFunc = oldFindProcessFunc }()

	lockfilePath := filepath.Join(t.TempDir(), constants.AgentLockfileName)

	// Test 1: Lockfile missing
	if _, _, err := findAndValidateAgentProcess(lockfilePath); err == nil {
		t.Error("expected error for missing lockfile")
	}

	// Test 2: Malformed lockfile (2-part format)
	if err := os.WriteFile(lockfilePath, []byte("8080|12345"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := findAndValidateAgentProcess(lockfilePath); err == nil {
		t.Error("expected error for malformed lockfile")
	}

	// Test 3: Empty secret
	if err := os.WriteFile(lockfilePath, []byte("8080|12345|"), 0644); err != nil {
		t.Fatal(err)
	}
	_, _, err := findAndValidateAgentProcess(lockfilePath)
	if err == nil {
		t.Error("expected error for empty secret")
	}
	if err != nil && !strings.Contains(err.Error(), "secret") {
		t.Errorf("expected error about empty secret, got: %v", err)
	}

	// Test 4: Invalid port (out of range)
	if err := os.WriteFile(lockfilePath, []byte("99999|12345|testsecret123"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := findAndValidateAgentProcess(lockfilePath); err == nil {
		t.Error("expected error for port out of range")
	}

	// Test 5: Process not running
	if err := os.WriteFile(lockfilePath, []byte("8080|12345|testsecret123"), 0644); err != nil {
		t.Fatal(err)
	}
	findProcessFunc = func(pid int) (ps.Process, error) {
		return nil, nil // Process not found
	}
	if _, _, err := findAndValidateAgentProcess(lockfilePath); err == nil {
		t.Error("expected error for missing process")
	}

	// Test 6: Wrong executable
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "other-app"}, nil
	}
	if _, _, err := findAndValidateAgentProcess(lockfilePath); err == nil {
		t.Error("expected error for wrong executable")
	}

	// Test 7: Success
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: constants.AgentProcessName}, nil
	}
	port, secret, err := findAndValidateAgentProcess(lockfilePath)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if port != "8080" {
		t.Errorf("expected port 8080, got %s", port)
	}
	if secret != "testsecret123" {
		t.Errorf("expected secret testsecret123, got %s", secret)
	}
}

// setupAgent points the notifier at a mock agent server and returns it.
func setupAgent(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	parts := strings.Split(server.URL, ":")
	port := parts[len(parts)-1]

	tempDir := t.TempDir()

	oldUserConfigDirFunc := userConfigDirFunc
	oldFindProcessFunc := findProcessFunc
	t.Cleanup(func() {
		userConfigDirFunc = oldUserConfigDirFunc
		findProcessFunc = oldFindProcessFunc
	})

	userConfigDirFunc = func() (string, error) {
		return tempDir, nil
	}
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: constants.AgentProcessName}, nil
	}

	agentConfigDir := filepath.Join(tempDir, constants.AgentAppIdentifier)
	if err := os.MkdirAll(agentConfigDir, 0755); err != nil {
		t.Fatal(err)
	}
	lockfile := fmt.Sprintf("%s|%d|test-secret", port, os.Getpid())
	if err := os.WriteFile(filepath.Join(agentConfigDir, constants.AgentLockfileName), []byte(lockfile), 0644); err != nil {
		t.Fatal(err)
	}

	return server
}

func TestNotifierEndpoints(t *testing.T) {
	var scheduled []string

	setupAgent(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Ownit-Secret") != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		switch {
		case r.Method == "POST" && r.URL.Path == "/schedule":
			var req scheduleRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			scheduled = append(scheduled, req.ID)
			w.WriteHeader(http.StatusOK)
		case r.Method == "POST" && r.URL.Path == "/cancel":
			var req cancelRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			for i, id := range scheduled {
				if id == req.ID {
					scheduled = append(scheduled[:i], scheduled[i+1:]...)
					break
				}
			}
			w.WriteHeader(http.StatusOK)
		case r.Method == "GET" && r.URL.Path == "/scheduled":
			json.NewEncoder(w).Encode(scheduledResponse{IDs: scheduled})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	n := New()

	granted, err := n.RequestPermission()
	if err != nil {
		t.Fatalf("RequestPermission failed: %v", err)
	}
	if !granted {
		t.Fatalf("Expected permission granted with running agent")
	}

	trigger := reminder.Trigger{
		HabitID: "h1",
		Weekday: time.Monday,
		Hour:    9,
		Minute:  0,
		Title:   "Habit Reminder",
		Body:    "Time to meditate!",
	}
	if err := n.Schedule(trigger); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	ids, err := n.ListScheduled()
	if err != nil {
		t.Fatalf("ListScheduled failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "h1-1" {
		t.Errorf("Expected scheduled [h1-1], got %v", ids)
	}

	if err := n.Cancel("h1-1"); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	ids, err = n.ListScheduled()
	if err != nil {
		t.Fatalf("ListScheduled failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected no scheduled triggers after cancel, got %v", ids)
	}
}

func TestRequestPermission_DeniedWithoutAgent(t *testing.T) {
	tempDir := t.TempDir()

	oldUserConfigDirFunc := userConfigDirFunc
	defer func() { userConfigDirFunc = oldUserConfigDirFunc }()
	userConfigDirFunc = func() (string, error) {
		return tempDir, nil
	}

	granted, err := New().RequestPermission()
	if err != nil {
		t.Fatalf("RequestPermission failed: %v", err)
	}
	if granted {
		t.Errorf("Expected permission denied without a running agent")
	}
}
