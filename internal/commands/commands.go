package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Prefix marks a console line as a command rather than a search query.
const Prefix = "/"

// ErrEmptyLine is returned by Submit for a blank line.
var ErrEmptyLine = errors.New("commands: empty line")

// Command is a console command with its own flags and a Run function.
// Run receives the positional arguments left after flag parsing.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func(args []string) error
}

// Registry holds commands by name and routes console lines.
// OnSearch receives every line that is not a command.
type Registry struct {
	cmds     map[string]*Command
	OnSearch func(query string) error
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a command. fs may be nil for commands without flags; it is switched to
// ContinueOnError with output discarded so a bad flag never exits the program.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func(args []string) error) {
	if fs == nil {
		fs = flag.NewFlagSet(name, flag.ContinueOnError)
	}
	fs.Init(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names lists registered commands in alphabetical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Help returns one usage line per command.
func (r *Registry) Help() []string {
	var out []string
	for _, name := range r.Names() {
		c := r.cmds[name]
		line := Prefix + name
		if c.Usage != "" {
			line += " " + c.Usage
		}
		out = append(out, line)
	}
	return out
}

// Parse interprets line as a console line. If it starts with "/", the rest is tokenized
// by spaces and returned with ok true. Otherwise nil, false.
func Parse(line string) (args []string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, Prefix) {
		return nil, false
	}
	rest := strings.TrimSpace(line[len(Prefix):])
	if rest == "" {
		return nil, true
	}
	return strings.Fields(rest), true
}

// Submit routes one console line: commands run through Execute, anything else is a search.
func (r *Registry) Submit(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return ErrEmptyLine
	}
	if args, isCmd := Parse(line); isCmd {
		return r.Execute(args)
	}
	if r.OnSearch == nil {
		return fmt.Errorf("search is not available")
	}
	return r.OnSearch(line)
}

// Execute runs the command in args[0] with args[1:] as flag/positional arguments.
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing command, try %shelp", Prefix)
	}
	name := strings.ToLower(args[0])
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Run(cmd.FlagSet.Args())
}

// OnOff parses the "on"/"off" argument used by toggle commands.
func OnOff(args []string) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("expected on or off")
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", args[0])
}
