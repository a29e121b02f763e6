package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/ownitapp/ownit/internal/constants"
	"github.com/ownitapp/ownit/internal/reminder"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// Notifier talks to the ownit-agent tray process over its localhost webhook.
// The agent owns OS-level notification delivery; this side only schedules and
// cancels triggers. It implements reminder.Port.
type Notifier struct{}

func New() *Notifier {
	return &Notifier{}
}

type scheduleRequest struct {
	ID      string `json:"id"`
	Weekday int    `json:"weekday"`
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

type cancelRequest struct {
	ID string `json:"id"`
}

type scheduledResponse struct {
	IDs []string `json:"ids"`
}

func (n *Notifier) Schedule(trigger reminder.Trigger) error {
	body, err := json.Marshal(scheduleRequest{
		ID:      trigger.ID(),
		Weekday: int(trigger.Weekday),
		Hour:    trigger.Hour,
		Minute:  trigger.Minute,
		Title:   trigger.Title,
		Body:    trigger.Body,
	})
	if err != nil {
		return err
	}
	_, err = n.call("POST", "/schedule", body)
	return err
}

func (n *Notifier) Cancel(id string) error {
	body, err := json.Marshal(cancelRequest{ID: id})
	if err != nil {
		return err
	}
	_, err = n.call("POST", "/cancel", body)
	return err
}

func (n *Notifier) ListScheduled() ([]string, error) {
	data, err := n.call("GET", "/scheduled", nil)
	if err != nil {
		return nil, err
	}

	var resp scheduledResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("malformed response from agent: %w", err)
	}
	return resp.IDs, nil
}

// RequestPermission reports whether notifications can be delivered at all. A
// reachable, validated agent is the grant; any validation failure is a denial
// rather than an error so callers can degrade quietly.
func (n *Notifier) RequestPermission() (bool, error) {
	configDir, err := GetAgentConfigDir()
	if err != nil {
		return false, err
	}

	if _, _, err := findAndValidateAgentProcess(filepath.Join(configDir, constants.AgentLockfileName)); err != nil {
		return false, nil
	}
	return true, nil
}

func (n *Notifier) call(method, path string, body []byte) ([]byte, error) {
	configDir, err := GetAgentConfigDir()
	if err != nil {
		return nil, err
	}

	port, secret, err := findAndValidateAgentProcess(filepath.Join(configDir, constants.AgentLockfileName))
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("http://127.0.0.1:%s%s", port, path)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewBuffer(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Ownit-Secret", secret)

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	data, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("agent request failed with status %d: %s", res.StatusCode, string(data))
	}

	return data, nil
}

// GetAgentConfigDir returns the configuration directory used by the agent.
func GetAgentConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	agentConfigDir := filepath.Join(configDir, constants.AgentAppIdentifier)

	// Check for settings.json to see if a custom lockfile dir is set
	settingsPath := filepath.Join(agentConfigDir, "settings.json")
	if _, err := os.Stat(settingsPath); err == nil {
		data, err := os.ReadFile(settingsPath)
		if err == nil {
			var store struct {
				Settings struct {
					LockfileDir *string `json:"lockfile_dir"`
				} `json:"settings"`
			}
			if err := json.Unmarshal(data, &store); err == nil {
				if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
					return *store.Settings.LockfileDir, nil
				}
			}
		}
	}

	return agentConfigDir, nil
}

func findAndValidateAgentProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("ownit-agent is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := parts[0]
	if strings.TrimSpace(port) == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	// Validate port is a valid number in the valid TCP range (1-65535)
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("ownit-agent process not running")
	}

	if !strings.HasPrefix(process.Executable(), constants.AgentProcessName) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.AgentProcessName, process.Executable())
	}

	return port, secret, nil
}
