package play

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCommand is returned for input that matches no command
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUsage is returned when a command's arguments cannot be parsed
	ErrUsage = errors.New("usage")
)

// Command is one action a driver accepts
type Command struct {
	Name        string
	Aliases     []string
	Usage       string // argument synopsis, e.g. "<player> <amount>"
	Description string
	Handler     func(args []string) (Response, error)
}

// Synopsis renders the command for help text
func (c *Command) Synopsis() string {
	s := c.Name
	if c.Usage != "" {
		s += " " + c.Usage
	}
	if len(c.Aliases) > 0 {
		s += " (" + strings.Join(c.Aliases, ", ") + ")"
	}
	return s
}

func usage(synopsis string) error {
	return fmt.Errorf("%w: %s", ErrUsage, synopsis)
}

type commandSet struct {
	byName  map[string]*Command
	ordered []*Command
}

func newCommandSet(cmds ...*Command) *commandSet {
	cs := &commandSet{byName: make(map[string]*Command), ordered: cmds}
	for _, cmd := range cmds {
		cs.byName[cmd.Name] = cmd
		for _, alias := range cmd.Aliases {
			cs.byName[alias] = cmd
		}
	}
	return cs
}

// exec splits a line into a command and its arguments and runs it. A blank
// line does nothing.
func (cs *commandSet) exec(line string) (Response, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Response{}, nil
	}
	cmd, ok := cs.byName[strings.ToLower(fields[0])]
	if !ok {
		return Response{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
	return cmd.Handler(fields[1:])
}
