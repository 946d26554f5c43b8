package classes

import (
	"github.com/computegod/classkit/typing"
	"slices"
)

// Environment is the instance registry: class name to ordered instance list,
// plus the equality oracle shared by every law and builder.
//
// Registration order is semantically significant: the solver tries instances
// first to last and the first head match wins. An Environment is mutated only
// through AddInstance during setup; once solving starts it is read-only and
// may be shared by reference across independent Solvers.
type Environment struct {
	instances map[string][]*Instance
	equality  *typing.ObservationalEquality
}

// NewEnvironment builds an empty registry; a nil equality defaults to the
// built-in oracle
func NewEnvironment(equality *typing.ObservationalEquality) *Environment {
	if equality == nil {
		equality = typing.NewObservationalEquality(nil)
	}
	return &Environment{
		instances: make(map[string][]*Instance),
		equality:  equality,
	}
}

func (e *Environment) Equality() *typing.ObservationalEquality {
	return e.equality
}

func (e *Environment) AddInstance(class *TypeClass, instance *Instance) {
	e.instances[class.Name] = append(e.instances[class.Name], instance)
}

// InstancesFor returns the registered instances of class, in registration
// order
func (e *Environment) InstancesFor(class *TypeClass) []*Instance {
	return slices.Clone(e.instances[class.Name])
}
