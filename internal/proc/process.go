package proc

import (
	"bytes"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"
)

// stderrCap bounds how much tool stderr is retained. Only the first lines
// matter for early-exit diagnostics; tools are long-running and must not
// grow a buffer forever.
const stderrCap = 64 * 1024

// cappedBuffer keeps the first stderrCap bytes written and drops the rest.
type cappedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if remaining := stderrCap - b.buf.Len(); remaining > 0 {
		if len(p) > remaining {
			b.buf.Write(p[:remaining])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// process tracks one spawned tool.
type process struct {
	cmd     *exec.Cmd
	stderr  *cappedBuffer
	done    chan struct{}
	exitErr error
}

// startProcess launches the command detached from the hub's stdio. Stdin
// and stdout go to the null device; stderr is captured for diagnostics.
func startProcess(cmd *exec.Cmd) (*process, error) {
	p := &process{
		cmd:    cmd,
		stderr: &cappedBuffer{},
		done:   make(chan struct{}),
	}
	cmd.Stderr = p.stderr

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	go func() {
		p.exitErr = cmd.Wait()
		close(p.done)
	}()

	return p, nil
}

// exited reports whether the process has terminated.
func (p *process) exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// pid returns the process ID.
func (p *process) pid() int {
	return p.cmd.Process.Pid
}

// stderrHead returns the first n lines of captured stderr.
func (p *process) stderrHead(n int) string {
	out := strings.TrimSpace(p.stderr.String())
	if out == "" {
		return ""
	}
	lines := strings.Split(out, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

// stop terminates the process: a graceful signal first, then a hard kill if
// it ignores that. Blocks until the process is gone.
func (p *process) stop() {
	if p.exited() {
		return
	}

	_ = p.cmd.Process.Signal(syscall.SIGTERM)

	select {
	case <-p.done:
		return
	case <-time.After(500 * time.Millisecond):
	}

	_ = p.cmd.Process.Kill()

	select {
	case <-p.done:
	case <-time.After(2 * time.Second):
	}
}
