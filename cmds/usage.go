package cmds

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stderr)
}

func (p *Executor) WriteUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s [command args...]...\n\n", programName())
	writeCommands(w, p.commands, 1)
}

func programName() string {
	if len(os.Args) == 0 {
		return "djs"
	}
	name := os.Args[0]
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func writeCommands(w io.Writer, commands map[string]*Command, depth int) {
	// aliases share the command value
	seen := make(map[*Command]bool)
	aliases := make(map[string]bool)
	for _, cmd := range commands {
		if cmd == nil {
			continue
		}
		for _, alias := range cmd.Aliases {
			aliases[alias] = true
		}
	}

	names := make([]string, 0, len(commands))
	for name := range commands {
		if aliases[name] {
			continue
		}
		// resetters defined by Var and Switch
		if strings.HasSuffix(name, ".") || strings.HasPrefix(name, "!") {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)

	indent := strings.Repeat("  ", depth)
	for _, name := range names {
		cmd := commands[name]
		if cmd == nil || seen[cmd] {
			continue
		}
		seen[cmd] = true

		line := indent + name
		if args := cmd.argsHint(); args != "" {
			line += " " + args
		}
		if len(cmd.Aliases) > 0 {
			line += " (" + strings.Join(cmd.Aliases, ", ") + ")"
		}
		if cmd.Description != "" {
			line += "\n" + indent + "    " + cmd.Description
		}
		fmt.Fprintln(w, line)

		if len(cmd.Subs) > 0 {
			writeCommands(w, cmd.Subs, depth+1)
		}
	}
}

func (c *Command) argsHint() string {
	if !c.Func.IsValid() {
		return ""
	}
	t := c.Func.Type()
	var parts []string
	for i := range t.NumIn() {
		in := t.In(i)
		if in.Kind() == reflect.Pointer {
			parts = append(parts, "["+in.Elem().Kind().String()+"]")
		} else {
			parts = append(parts, "<"+in.Kind().String()+">")
		}
	}
	return strings.Join(parts, " ")
}
