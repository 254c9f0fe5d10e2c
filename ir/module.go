package ir

import (
	"github.com/gofrs/uuid"
)

// Entrypoint is the function name treated as the module entry.
const Entrypoint = "main"

// Attribute names stamped onto a module after lowering. These follow the
// QIR entry-point attribute convention for statically resourced profiles.
const (
	AttrRequiredQubits  = "requiredQubits"
	AttrRequiredResults = "requiredResults"
)

// Module is one compilation unit: a set of functions plus string attributes
// describing the lowered profile.
type Module struct {
	id         string
	Name       string
	Functions  []*Function
	Attributes map[string]string
}

// NewModule creates an empty module with a unique ID.
func NewModule(name string) *Module {
	id, _ := uuid.NewV4()
	return &Module{
		id:         id.String(),
		Name:       name,
		Attributes: map[string]string{},
	}
}

// ID returns the module's unique identifier.
func (m *Module) ID() string {
	return m.id
}

// AddFunction appends a new empty function to the module and returns it.
func (m *Module) AddFunction(name string) *Function {
	fn := NewFunction(name)
	m.Functions = append(m.Functions, fn)
	return fn
}

// Function returns the named function, or nil if absent.
func (m *Module) Function(name string) *Function {
	for _, fn := range m.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

// EntryFunction returns the module entrypoint: the function named "main" if
// present, otherwise the first function.
func (m *Module) EntryFunction() *Function {
	if fn := m.Function(Entrypoint); fn != nil {
		return fn
	}
	if len(m.Functions) > 0 {
		return m.Functions[0]
	}
	return nil
}

// SetAttribute records a module-level attribute.
func (m *Module) SetAttribute(name, value string) {
	if m.Attributes == nil {
		m.Attributes = map[string]string{}
	}
	m.Attributes[name] = value
}

// Attribute returns a module-level attribute value.
func (m *Module) Attribute(name string) (string, bool) {
	v, ok := m.Attributes[name]
	return v, ok
}

// Validate checks every function in the module.
func (m *Module) Validate() error {
	for _, fn := range m.Functions {
		if err := fn.Validate(); err != nil {
			return err
		}
	}
	return nil
}
