package config

// Map is a flat configuration source keyed by "section.name".
type Map map[string]string

// Lookup implements [Lookuper].
func (m Map) Lookup(section, name string) (string, bool) {
	v, ok := m[section+"."+name]

	return v, ok
}

// Str implements [github.com/vcstoolkit/statprof.Source].
func (m Map) Str(section, name, fallback string) string {
	return str(m, section, name, fallback)
}

// Int implements [github.com/vcstoolkit/statprof.Source].
func (m Map) Int(section, name string, fallback int) int {
	return integer(m, section, name, fallback)
}
