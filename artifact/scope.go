package artifact

import "fmt"

// Scope is the Gradle configuration a dependency is declared in.
type Scope int

const (
	Implementation Scope = iota
	RuntimeOnly
	TestImplementation
)

var scopeNames = [...]string{"implementation", "runtimeOnly", "testImplementation"}

// Maven scopes used in POMs
var mavenScopes = [...]string{"compile", "runtime", "test"}

func (s Scope) String() string {
	if s < 0 || int(s) >= len(scopeNames) {
		return fmt.Sprintf("Scope(%d)", int(s))
	}
	return scopeNames[s]
}

func (s Scope) Maven() string {
	if s < 0 || int(s) >= len(mavenScopes) {
		return ""
	}
	return mavenScopes[s]
}

func ParseScope(s string) (Scope, error) {
	for i, n := range scopeNames {
		if n == s {
			return Scope(i), nil
		}
	}
	return 0, fmt.Errorf("illegal dependency scope '%s'", s)
}

func (s Scope) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(scopeNames) {
		return nil, fmt.Errorf("illegal dependency scope %d", int(s))
	}
	return []byte(scopeNames[s]), nil
}

func (s *Scope) UnmarshalText(text []byte) (err error) {
	*s, err = ParseScope(string(text))
	return err
}

type Dependency struct {
	Scope      Scope `yaml:"scope"`
	Coordinate `yaml:",inline"`
}

func (d Dependency) String() string {
	return fmt.Sprintf("%s(\"%s\")", d.Scope, d.Coordinate)
}
