package vfs

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mwantia/kvfs/cmd"
	"github.com/mwantia/kvfs/data"
)

// CommandManager handles command registration and lookup
type CommandManager struct {
	mu   sync.RWMutex
	cmds map[string]cmd.Command
}

func NewCommandManager() *CommandManager {
	return &CommandManager{
		cmds: make(map[string]cmd.Command),
	}
}

// Register registers a custom command
func (cm *CommandManager) Register(c cmd.Command) error {
	if c == nil {
		return data.Invalid("command cannot be nil")
	}

	name := c.Name()
	if name == "" {
		return data.Invalid("command name cannot be empty")
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	if _, exists := cm.cmds[name]; exists {
		return fmt.Errorf("command already registered: %s: %w", name, data.ErrExist)
	}

	cm.cmds[name] = c
	return nil
}

// Unregister removes a registered command
func (cm *CommandManager) Unregister(name string) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if _, exists := cm.cmds[name]; !exists {
		return data.UnknownCommand(name)
	}

	delete(cm.cmds, name)
	return nil
}

// Get returns a command by name
func (cm *CommandManager) Get(name string) (cmd.Command, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	c, exists := cm.cmds[name]
	if !exists {
		return nil, data.UnknownCommand(name)
	}

	return c, nil
}

// List returns all registered commands ordered by name
func (cm *CommandManager) List() []cmd.Command {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	commands := make([]cmd.Command, 0, len(cm.cmds))
	for _, c := range cm.cmds {
		commands = append(commands, c)
	}

	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name() < commands[j].Name()
	})
	return commands
}
