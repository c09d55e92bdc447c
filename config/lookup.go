package config

import (
	"strconv"
	"strings"
)

// Lookuper reports the raw value of section.name and whether it is
// present. It is the presence-aware counterpart of
// [github.com/vcstoolkit/statprof.Source], and what [Layered] composes.
type Lookuper interface {
	Lookup(section, name string) (value string, ok bool)
}

// str resolves section.name through l, falling back when absent.
func str(l Lookuper, section, name, fallback string) string {
	if v, ok := l.Lookup(section, name); ok {
		return v
	}

	return fallback
}

// integer resolves section.name through l, falling back when absent or
// unparsable. Strict typing of configuration values is the host's
// concern, not the session's.
func integer(l Lookuper, section, name string, fallback int) int {
	v, ok := l.Lookup(section, name)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}

	return n
}
