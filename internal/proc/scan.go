package proc

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// listProcesses returns a map of lowercased executable name to PID for
// every process on the system, in one external command.
func listProcesses() (map[string]int, error) {
	if runtime.GOOS == "windows" {
		out, err := exec.Command("tasklist", "/FO", "CSV", "/NH").Output()
		if err != nil {
			return nil, err
		}
		return parseTasklistCSV(string(out)), nil
	}

	out, err := exec.Command("ps", "-eo", "comm,pid").Output()
	if err != nil {
		return nil, err
	}
	return parsePSOutput(string(out)), nil
}

// parsePSOutput parses `ps -eo comm,pid` output. The command name may be a
// path on some systems; only the base name matters for matching.
func parsePSOutput(out string) map[string]int {
	result := make(map[string]int)
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		pid, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			continue
		}
		name := strings.ToLower(filepath.Base(strings.Join(fields[:len(fields)-1], " ")))
		result[name] = pid
	}
	return result
}

// parseTasklistCSV parses `tasklist /FO CSV /NH` output: quoted fields,
// image name first, PID second.
func parseTasklistCSV(out string) map[string]int {
	result := make(map[string]int)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\",\"")
		if len(fields) < 2 {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(fields[0], "\""))
		pid, err := strconv.Atoi(strings.Trim(fields[1], "\""))
		if err != nil {
			continue
		}
		result[name] = pid
	}
	return result
}

// pidAlive checks whether a PID still refers to a live process.
func pidAlive(pid int) bool {
	if runtime.GOOS == "windows" {
		out, err := exec.Command("tasklist", "/FI", "PID eq "+strconv.Itoa(pid), "/FO", "CSV", "/NH").Output()
		if err != nil {
			return false
		}
		s := strings.TrimSpace(string(out))
		return s != "" && !strings.Contains(s, "No tasks")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}

// stopPID terminates a process the hub did not spawn: graceful first, then
// a hard kill after the same grace period spawned tools get.
func stopPID(pid int) error {
	if runtime.GOOS == "windows" {
		if err := exec.Command("taskkill", "/PID", strconv.Itoa(pid)).Run(); err == nil {
			time.Sleep(500 * time.Millisecond)
			if !pidAlive(pid) {
				return nil
			}
		}
		return exec.Command("taskkill", "/F", "/PID", strconv.Itoa(pid)).Run()
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return err
	}
	time.Sleep(500 * time.Millisecond)
	if !pidAlive(pid) {
		return nil
	}
	return proc.Kill()
}
