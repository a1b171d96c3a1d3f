package languages

import (
	"strings"

	"github.com/hashicorp/go-set/v2"

	"github.com/Lucineia/RepositoryMiner/lib/utils"
)

// LocationTracker follows where a parser is while walking a source file: the stack of types and
// the method being visited, with the variables visible inside it.
type LocationTracker struct {
	path     string
	typeName []string
	method   []methodInfo
}

type methodInfo struct {
	name      string
	params    []string
	variables *set.Set[string]
}

func NewLocationTracker(path string) *LocationTracker {
	return &LocationTracker{
		path:   path,
		method: []methodInfo{{}},
	}
}

func (l *LocationTracker) Path() string {
	return l.path
}

func (l *LocationTracker) IsInsideType() bool {
	return len(l.typeName) > 0
}

// CurrentTypeName is the dotted name of the current type, including the types it is nested in.
func (l *LocationTracker) CurrentTypeName() string {
	return strings.Join(l.typeName, ".")
}

// CurrentSimpleTypeName is the name of the current type, without the outer types.
func (l *LocationTracker) CurrentSimpleTypeName() string {
	if len(l.typeName) == 0 {
		return ""
	}
	return utils.Last(l.typeName)
}

func (l *LocationTracker) IsInsideMethod() bool {
	return utils.Last(l.method).name != ""
}

func (l *LocationTracker) CurrentMethodName() string {
	return utils.Last(l.method).name
}

func (l *LocationTracker) CurrentMethodParams() []string {
	return utils.Last(l.method).params
}

func (l *LocationTracker) EnterType(name string) {
	l.typeName = append(l.typeName, name)
	l.method = append(l.method, methodInfo{})
}

func (l *LocationTracker) ExitType() {
	l.method = utils.RemoveLast(l.method)
	l.typeName = utils.RemoveLast(l.typeName)
}

func (l *LocationTracker) EnterMethod(name string, params []string) {
	l.method = append(l.method, methodInfo{
		name:      name,
		params:    params,
		variables: set.From(params),
	})
}

func (l *LocationTracker) ExitMethod() {
	l.method = utils.RemoveLast(l.method)
}

// DeclareVariable registers a local variable of the current method.
func (l *LocationTracker) DeclareVariable(name string) {
	m := utils.Last(l.method)
	if m.variables != nil {
		m.variables.Insert(name)
	}
}

// IsVariable is true for the parameters and locals declared in the current method.
func (l *LocationTracker) IsVariable(name string) bool {
	m := utils.Last(l.method)
	return m.variables != nil && m.variables.Contains(name)
}
