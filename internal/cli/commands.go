package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/baaaaaaaka/cmdterm/internal/config"
	"github.com/baaaaaaaka/cmdterm/logsink"
	"github.com/baaaaaaaka/cmdterm/message"
	"github.com/baaaaaaaka/cmdterm/terminal"
	"github.com/baaaaaaaka/cmdterm/theme"
)

// demo is the value the demo commands operate on. Preference changes made
// through commands land in cfg and are saved when the terminal closes.
type demo struct {
	cfg    config.Config
	logger *zap.Logger
	count  int
}

type demoArg = terminal.Argument[demo]

func demoCommands() []terminal.Command[demo] {
	return []terminal.Command[demo]{
		{Name: "help", Description: "List the commands or describe one", Call: cmdHelp, Complete: completeCommands},
		{Name: "echo", Description: "Print the arguments", Call: cmdEcho},
		{Name: "clear", Description: "Clear the log", Call: func(a *demoArg) { a.Term.Clear() }},
		{Name: "exit", Description: "Close the terminal", Call: cmdExit},
		{Name: "quit", Description: "Close the terminal", Call: cmdExit},
		{Name: "history", Description: "Show the command history: history [n]", Call: cmdHistory},
		{Name: "theme", Description: "Switch the color theme: theme <name>", Call: cmdTheme, Complete: completeThemes},
		{Name: "level", Description: "Set the log level filter: level <severity>", Call: cmdLevel, Complete: completeLevels},
		{Name: "autowrap", Description: "Wrap long lines: autowrap on|off", Call: cmdAutowrap, Complete: completeOnOff},
		{Name: "autoscroll", Description: "Follow new messages: autoscroll on|off", Call: cmdAutoscroll, Complete: completeOnOff},
		{Name: "log", Description: "Write a log record: log <severity> <text>", Call: cmdLog, Complete: completeLogSeverity},
		{Name: "count", Description: "Count the calls made on the host value", Call: cmdCount},
	}
}

// partial is the token being completed.
func partial(a *demoArg) string {
	return a.CommandLine[len(a.CommandLine)-1]
}

func withPrefix(items []string, prefix string) []string {
	var out []string
	for _, it := range items {
		if strings.HasPrefix(strings.ToLower(it), strings.ToLower(prefix)) {
			out = append(out, it)
		}
	}
	return out
}

func cmdHelp(a *demoArg) {
	cmds := a.Term.Registry().ListCommands()
	if len(a.CommandLine) > 1 {
		for _, c := range cmds {
			if c.Name == a.CommandLine[1] {
				a.Term.AddFormatted("%s - %s", c.Name, c.Description)
				return
			}
		}
		a.Term.AddFormattedErr("help: no command %q", a.CommandLine[1])
		return
	}
	width := 0
	for _, c := range cmds {
		width = max(width, len(c.Name))
	}
	for _, c := range cmds {
		a.Term.AddFormatted("%-*s  %s", width, c.Name, c.Description)
	}
}

func completeCommands(a *demoArg) []string {
	if len(a.CommandLine) != 2 {
		return nil
	}
	var names []string
	for _, c := range a.Term.Registry().ListCommands() {
		names = append(names, c.Name)
	}
	return withPrefix(names, partial(a))
}

func cmdEcho(a *demoArg) {
	a.Term.AddText(strings.Join(a.CommandLine[1:], " "))
}

func cmdExit(a *demoArg) {
	a.Term.SetShouldClose()
}

func cmdHistory(a *demoArg) {
	hist := a.Term.History()
	n := len(hist)
	if len(a.CommandLine) > 1 {
		v, err := strconv.Atoi(a.CommandLine[1])
		if err != nil || v < 0 {
			a.Term.AddFormattedErr("history: %q is not a count", a.CommandLine[1])
			return
		}
		n = min(n, v)
	}
	for i := len(hist) - n; i < len(hist); i++ {
		a.Term.AddFormatted("%5d  %s", i+1, hist[i])
	}
}

func cmdTheme(a *demoArg) {
	if len(a.CommandLine) < 2 {
		a.Term.AddFormatted("theme: %s", a.Term.Theme().Name)
		return
	}
	name := strings.Join(a.CommandLine[1:], " ")
	th, ok := theme.ByName(name)
	if !ok {
		a.Term.AddFormattedErr("theme: unknown theme %q", name)
		return
	}
	a.Term.SetTheme(th)
	a.Value.cfg.Theme = th.Name
	a.Value.logger.Info("theme changed", zap.String("theme", th.Name))
}

func completeThemes(a *demoArg) []string {
	if len(a.CommandLine) != 2 {
		return nil
	}
	var names []string
	for _, th := range theme.List() {
		names = append(names, th.Name)
	}
	sort.Strings(names)
	return withPrefix(names, partial(a))
}

func cmdLevel(a *demoArg) {
	if len(a.CommandLine) != 2 {
		a.Term.AddFormatted("level: %s", a.Term.LevelFilter())
		return
	}
	sev, err := message.ParseSeverity(a.CommandLine[1])
	if err != nil {
		a.Term.AddFormattedErr("level: %v", err)
		return
	}
	a.Term.SetLevelFilter(sev)
	a.Value.cfg.LogLevel = sev.String()
}

func completeLevels(a *demoArg) []string {
	if len(a.CommandLine) != 2 {
		return nil
	}
	return withPrefix(message.FilterNames(), partial(a))
}

func parseOnOff(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, true
	case "off", "false", "no", "0":
		return false, true
	}
	return false, false
}

func completeOnOff(a *demoArg) []string {
	if len(a.CommandLine) != 2 {
		return nil
	}
	return withPrefix([]string{"on", "off"}, partial(a))
}

func cmdAutowrap(a *demoArg) {
	if len(a.CommandLine) != 2 {
		a.Term.AddFormatted("autowrap: %v", a.Term.Autowrap())
		return
	}
	on, ok := parseOnOff(a.CommandLine[1])
	if !ok {
		a.Term.AddFormattedErr("autowrap: expected on or off, got %q", a.CommandLine[1])
		return
	}
	a.Term.SetAutowrap(on)
	a.Value.cfg.SetAutowrap(on)
}

func cmdAutoscroll(a *demoArg) {
	if len(a.CommandLine) != 2 {
		a.Term.AddFormatted("autoscroll: %v", a.Term.Autoscroll())
		return
	}
	on, ok := parseOnOff(a.CommandLine[1])
	if !ok {
		a.Term.AddFormattedErr("autoscroll: expected on or off, got %q", a.CommandLine[1])
		return
	}
	a.Term.SetAutoscroll(on)
	a.Value.cfg.SetAutoscroll(on)
}

// cmdLog goes through the zap logger, so the record shows up once the sink
// is drained before the next frame.
func cmdLog(a *demoArg) {
	if len(a.CommandLine) < 3 {
		a.Term.AddTextErr("usage: log <severity> <text>")
		return
	}
	sev, err := message.ParseSeverity(a.CommandLine[1])
	if err != nil || sev == message.LevelOff {
		a.Term.AddFormattedErr("log: unknown severity %q", a.CommandLine[1])
		return
	}
	a.Value.logger.Log(logsink.Level(sev), strings.Join(a.CommandLine[2:], " "))
}

func completeLogSeverity(a *demoArg) []string {
	if len(a.CommandLine) != 2 {
		return nil
	}
	var names []string
	for _, n := range message.FilterNames() {
		if n != message.LevelOff.String() {
			names = append(names, n)
		}
	}
	return withPrefix(names, partial(a))
}

func cmdCount(a *demoArg) {
	a.Value.count++
	a.Term.AddText(fmt.Sprintf("count = %d", a.Value.count))
}
