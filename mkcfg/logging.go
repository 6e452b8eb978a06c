package mkcfg

import "fmt"

// Logging selects the SLF4J binding the application runs with.
type Logging int

const (
	LogNone Logging = iota
	LogSimple
	LogFull
)

var logNames = [...]string{"none", "simple", "full"}

func (l Logging) String() string {
	if l < 0 || int(l) >= len(logNames) {
		return fmt.Sprintf("Logging(%d)", int(l))
	}
	return logNames[l]
}

func (l Logging) MarshalText() ([]byte, error) {
	if l < 0 || int(l) >= len(logNames) {
		return nil, fmt.Errorf("illegal logging %d", int(l))
	}
	return []byte(logNames[l]), nil
}

func (l *Logging) UnmarshalText(text []byte) error {
	for i, n := range logNames {
		if n == string(text) {
			*l = Logging(i)
			return nil
		}
	}
	return fmt.Errorf("illegal logging '%s'", text)
}
