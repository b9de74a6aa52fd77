package log

import (
	"fmt"
	"strings"
)

// Level is a logging severity. The values line up with slog levels, with
// TRACE and FATAL added below and above.
type Level int

const (
	LevelTrace Level = -8
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
	LevelFatal Level = 12
)

var levelNames = []struct {
	level Level
	name  string
}{
	{LevelTrace, "TRACE"},
	{LevelDebug, "DEBUG"},
	{LevelInfo, "INFO"},
	{LevelWarn, "WARN"},
	{LevelError, "ERROR"},
	{LevelFatal, "FATAL"},
}

// ParseLevel parses a level name, ignoring case.
func ParseLevel(s string) (Level, error) {
	for _, l := range levelNames {
		if strings.EqualFold(l.name, s) {
			return l.level, nil
		}
	}
	return LevelInfo, fmt.Errorf("invalid log level %q", s)
}

func (level Level) String() string {
	for _, l := range levelNames {
		if l.level == level {
			return l.name
		}
	}
	return "UNKNOWN"
}

// Set implements pflag.Value so a Level can be bound to a command flag.
func (level *Level) Set(s string) error {
	l, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*level = l
	return nil
}

func (*Level) Type() string {
	return "level"
}

// Format selects the handler of a logger.
type Format string

const (
	FormatText Format = "text"
	FormatJson Format = "json"
)

func (f Format) String() string {
	return string(f)
}

func (f *Format) Set(s string) error {
	switch Format(strings.ToLower(s)) {
	case FormatText, "":
		*f = FormatText
	case FormatJson:
		*f = FormatJson
	default:
		return fmt.Errorf("unknown log format %q", s)
	}
	return nil
}

func (*Format) Type() string {
	return "format"
}
