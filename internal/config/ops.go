package config

import (
	"fmt"

	"github.com/baaaaaaaka/cmdterm/message"
	"github.com/baaaaaaaka/cmdterm/terminal"
	"github.com/baaaaaaaka/cmdterm/theme"
)

func (c Config) AutoscrollEnabled() bool { return c.Autoscroll == nil || *c.Autoscroll }

func (c Config) AutowrapEnabled() bool { return c.Autowrap == nil || *c.Autowrap }

func (c *Config) SetAutoscroll(on bool) { c.Autoscroll = &on }

func (c *Config) SetAutowrap(on bool) { c.Autowrap = &on }

// Limit is the number of history lines kept on disk.
func (c Config) Limit() int {
	if c.HistoryLimit <= 0 {
		return DefaultHistoryLimit
	}
	return c.HistoryLimit
}

// Validate reports the first preference that names an unknown theme, level
// or popup position.
func (c Config) Validate() error {
	if c.Theme != "" {
		if _, ok := theme.ByName(c.Theme); !ok {
			return fmt.Errorf("unknown theme %q", c.Theme)
		}
	}
	if c.LogLevel != "" {
		if _, err := message.ParseSeverity(c.LogLevel); err != nil {
			return fmt.Errorf("log level: %w", err)
		}
	}
	if c.Autocomplete != "" {
		if _, ok := terminal.ParsePosition(c.Autocomplete); !ok {
			return fmt.Errorf("unknown autocomplete position %q", c.Autocomplete)
		}
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history limit %d is negative", c.HistoryLimit)
	}
	return nil
}
