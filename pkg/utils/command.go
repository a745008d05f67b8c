package utils

import (
	"fmt"
	"os/exec"

	"github.com/gitport/gitport/pkg/logger"
)

// ExecuteCommand executes a shell command in the given directory
func ExecuteCommand(dir, cmd string) error {
	logger.Debug("Executing command", "dir", dir, "cmd", cmd)

	c := exec.Command("bash", "-c", cmd)
	c.Dir = dir
	output, err := c.CombinedOutput()
	if err != nil {
		return fmt.Errorf("command failed: %s\nOutput: %s", err, output)
	}
	return nil
}

// ExecuteCommandOutput executes a shell command in the given directory and returns its output
func ExecuteCommandOutput(dir, cmd string) (string, error) {
	logger.Debug("Executing command with output", "dir", dir, "cmd", cmd)

	c := exec.Command("bash", "-c", cmd)
	c.Dir = dir
	output, err := c.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("command failed: %s\nOutput: %s", err, output)
	}
	return string(output), nil
}
