// Package signals turns SIGINT and SIGTERM into context cancellation so a
// running invocation can tear down its inventory and key file before the
// process exits with the conventional 128+signal code.
package signals

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Manager owns the application context and the exit code the process should
// terminate with. All methods are safe for concurrent use.
type Manager struct {
	ctx    context.Context
	cancel context.CancelFunc

	once     sync.Once
	mu       sync.RWMutex
	shutdown bool
	exitCode int
}

var (
	global   *Manager
	initOnce sync.Once
)

// New creates a manager and starts watching for termination signals.
func New() *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{ctx: ctx, cancel: cancel}
	go m.watch()
	return m
}

// GetGlobalManager returns the process-wide manager, created on first use.
func GetGlobalManager() *Manager {
	initOnce.Do(func() {
		global = New()
	})
	return global
}

// Context is canceled when a termination signal arrives or Shutdown is
// called. Pass it to every blocking operation.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// IsShutdown reports whether a shutdown has been initiated.
func (m *Manager) IsShutdown() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.shutdown
}

// ExitCode returns the code the process should exit with: 130 after SIGINT,
// 143 after SIGTERM, 0 otherwise.
func (m *Manager) ExitCode() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.exitCode
}

// Shutdown records the exit code and cancels the context. Only the first
// call takes effect.
func (m *Manager) Shutdown(exitCode int) {
	m.once.Do(func() {
		m.mu.Lock()
		m.shutdown = true
		m.exitCode = exitCode
		m.mu.Unlock()
		m.cancel()
	})
}

func (m *Manager) watch() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	sig := <-ch
	signal.Stop(ch)

	code := 0
	switch sig {
	case os.Interrupt:
		code = 130
	case syscall.SIGTERM:
		code = 143
	}
	m.Shutdown(code)
}
