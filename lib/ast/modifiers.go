package ast

import (
	"strings"
)

// Modifiers is a set over a closed list of modifiers. Anything unknown goes to Other.
type Modifiers uint16

const (
	Public Modifiers = 1 << iota
	Private
	Protected
	Static
	Final
	Abstract
	Synchronized
	Native
	Transient
	Volatile
	Default
	Strictfp
	Other
)

var modifierNames = []struct {
	mod  Modifiers
	name string
}{
	{Public, "public"},
	{Private, "private"},
	{Protected, "protected"},
	{Static, "static"},
	{Final, "final"},
	{Abstract, "abstract"},
	{Synchronized, "synchronized"},
	{Native, "native"},
	{Transient, "transient"},
	{Volatile, "volatile"},
	{Default, "default"},
	{Strictfp, "strictfp"},
	{Other, "other"},
}

func ParseModifiers(names ...string) Modifiers {
	var result Modifiers

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		found := false
		for _, m := range modifierNames {
			if m.name == name && m.mod != Other {
				result |= m.mod
				found = true
				break
			}
		}

		if !found {
			result |= Other
		}
	}

	return result
}

func (m Modifiers) Has(o Modifiers) bool {
	return m&o == o
}

// IsPackagePrivate is true when no visibility modifier is present.
func (m Modifiers) IsPackagePrivate() bool {
	return m&(Public|Private|Protected) == 0
}

func (m Modifiers) Strings() []string {
	var result []string
	for _, n := range modifierNames {
		if m.Has(n.mod) {
			result = append(result, n.name)
		}
	}
	return result
}

func (m Modifiers) String() string {
	return strings.Join(m.Strings(), " ")
}
