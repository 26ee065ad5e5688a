package ranger

import (
	"bufio"
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/xy-planning-network/writium/logger"
)

// A Command is what a Console runs for a line of input.
type Command func(ctx context.Context)

// A Console runs Commands read line by line from an operator,
// e.g. on the standard input of a writium process.
type Console struct {
	in io.Reader
	l  logger.Logger

	mu   sync.RWMutex
	cmds map[string]Command
}

// NewConsole constructs a *Console reading from in.
func NewConsole(in io.Reader, l logger.Logger) *Console {
	if l == nil {
		l = logger.Noop{}
	}

	return &Console{in: in, l: l, cmds: make(map[string]Command)}
}

// Handle runs cmd whenever a line reads name.
// Handle replaces any Command already set for name.
func (c *Console) Handle(name string, cmd Command) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cmds[name] = cmd
}

// Commands lists the names of the Commands c runs.
func (c *Console) Commands() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.cmds))
	for name := range c.cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Run reads lines until the input is exhausted or ctx is done,
// running the Command each names.
// Blank lines are ignored and unknown commands are logged.
func (c *Console) Run(ctx context.Context) error {
	s := bufio.NewScanner(c.in)
	for s.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}

		c.mu.RLock()
		cmd, ok := c.cmds[line]
		c.mu.RUnlock()

		if !ok {
			c.l.Warn("unknown console command", &logger.LogContext{
				Data: map[string]any{"command": line, "known": c.Commands()},
			})
			continue
		}

		c.l.Info("running console command", &logger.LogContext{Data: map[string]any{"command": line}})
		cmd(ctx)
	}

	return s.Err()
}
