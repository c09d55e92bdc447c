package config

// Layered composes configuration sources; the first source with a value
// for section.name wins. This mirrors the system/user/repository config
// cascade of version-control hosts.
type Layered []Lookuper

// Lookup implements [Lookuper].
func (l Layered) Lookup(section, name string) (string, bool) {
	for _, src := range l {
		if v, ok := src.Lookup(section, name); ok {
			return v, true
		}
	}

	return "", false
}

// Str implements [github.com/vcstoolkit/statprof.Source].
func (l Layered) Str(section, name, fallback string) string {
	return str(l, section, name, fallback)
}

// Int implements [github.com/vcstoolkit/statprof.Source].
func (l Layered) Int(section, name string, fallback int) int {
	return integer(l, section, name, fallback)
}
