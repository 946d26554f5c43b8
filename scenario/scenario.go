// Package scenario loads a declarative description of classes, instances and
// constraints from YAML and wires it into a classes.Environment, so the
// solver can be driven without writing Go. Instance builders are Go function
// literals evaluated with yaegi at load time.
package scenario

import (
	"io"
	"os"

	"github.com/computegod/classkit/classes"
	"github.com/computegod/classkit/typing"
	"github.com/computegod/classkit/util"
	"github.com/pkg/errors"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"gopkg.in/yaml.v3"
)

// BuilderFunc is the signature every builder snippet must evaluate to:
// prerequisite dictionaries keyed by hint in, dictionary out
type BuilderFunc = func(map[string]map[string]interface{}) map[string]interface{}

type File struct {
	// Prelude is evaluated before any builder, for imports and shared helpers
	Prelude     string           `yaml:"prelude"`
	Classes     []ClassDecl      `yaml:"classes"`
	Instances   []InstanceDecl   `yaml:"instances"`
	Constraints []ConstraintDecl `yaml:"constraints"`
}

type ClassDecl struct {
	Name      string      `yaml:"name"`
	Parameter string      `yaml:"parameter"`
	Fields    []FieldDecl `yaml:"fields"`
}

type FieldDecl struct {
	Name  string `yaml:"name"`
	Shape string `yaml:"shape"`
	Sort  string `yaml:"sort"`
}

type InstanceDecl struct {
	Class    string        `yaml:"class"`
	Name     string        `yaml:"name"`
	Head     string        `yaml:"head"`
	Builder  string        `yaml:"builder"`
	Requires []RequireDecl `yaml:"requires"`
}

type RequireDecl struct {
	Class  string `yaml:"class"`
	Target string `yaml:"target"`
	Hint   string `yaml:"hint"`
}

type ConstraintDecl struct {
	Class  string `yaml:"class"`
	Target string `yaml:"target"`
	Meta   string `yaml:"meta"`
}

// Scenario is a loaded, ready-to-solve registry plus the constraints the file
// asked for
type Scenario struct {
	Environment *classes.Environment
	Constraints []classes.Constraint
}

func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open scenario %s", path)
	}
	defer func() {
		_ = f.Close()
	}()
	return Load(f)
}

func Load(r io.Reader) (*Scenario, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Wrap(err, "could not decode scenario")
	}
	return build(&file)
}

func build(file *File) (*Scenario, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, errors.Wrap(err, "could not prepare builder interpreter")
	}
	if file.Prelude != "" {
		if _, err := i.Eval(file.Prelude); err != nil {
			return nil, errors.Wrap(err, "could not evaluate scenario prelude")
		}
	}

	byName := make(map[string]*classes.TypeClass, len(file.Classes))
	seen := util.NewEmptySet[string]()
	for _, decl := range file.Classes {
		if seen.Contains(decl.Name) {
			return nil, errors.Errorf("class %q declared twice", decl.Name)
		}
		seen.Add(decl.Name)
		class, err := buildClass(decl)
		if err != nil {
			return nil, err
		}
		byName[decl.Name] = class
	}

	env := classes.NewEnvironment(nil)
	for _, decl := range file.Instances {
		class, ok := byName[decl.Class]
		if !ok {
			return nil, errors.Errorf("instance %q names unknown class %q", decl.Name, decl.Class)
		}
		instance, err := buildInstance(i, decl, byName)
		if err != nil {
			return nil, err
		}
		env.AddInstance(class, instance)
	}

	constraints := make([]classes.Constraint, 0, len(file.Constraints))
	for _, decl := range file.Constraints {
		class, ok := byName[decl.Class]
		if !ok {
			return nil, errors.Errorf("constraint %q names unknown class %q", decl.Meta, decl.Class)
		}
		target, err := typing.ParseTerm(decl.Target)
		if err != nil {
			return nil, errors.Wrapf(err, "bad target in constraint %q", decl.Meta)
		}
		constraints = append(constraints, classes.Constraint{
			Class:  class,
			Target: target,
			Meta:   classes.MetaVar{Name: decl.Meta},
		})
	}

	return &Scenario{Environment: env, Constraints: constraints}, nil
}

func buildClass(decl ClassDecl) (*classes.TypeClass, error) {
	fields := make([]classes.Field, 0, len(decl.Fields))
	for _, f := range decl.Fields {
		sort, err := parseSort(f.Sort)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s of class %s", f.Name, decl.Name)
		}
		field := classes.Field{Name: f.Name, Sort: sort}
		if f.Shape != "" {
			shape, err := typing.ParseTerm(f.Shape)
			if err != nil {
				return nil, errors.Wrapf(err, "bad shape for field %s of class %s", f.Name, decl.Name)
			}
			field.Shape = shape
		}
		fields = append(fields, field)
	}
	return &classes.TypeClass{
		Name:      decl.Name,
		Parameter: typing.NewVar(decl.Parameter),
		Fields:    fields,
	}, nil
}

func buildInstance(i *interp.Interpreter, decl InstanceDecl, byName map[string]*classes.TypeClass) (*classes.Instance, error) {
	head, err := typing.ParseTerm(decl.Head)
	if err != nil {
		return nil, errors.Wrapf(err, "bad head for instance %q", decl.Name)
	}

	v, err := i.Eval(decl.Builder)
	if err != nil {
		return nil, errors.Wrapf(err, "could not evaluate builder of instance %q", decl.Name)
	}
	fn, ok := v.Interface().(BuilderFunc)
	if !ok {
		return nil, errors.Errorf("builder of instance %q is not a %T", decl.Name, BuilderFunc(nil))
	}

	hints := util.NewEmptySet[string]()
	templates := make([]classes.Template, 0, len(decl.Requires))
	for _, req := range decl.Requires {
		class, ok := byName[req.Class]
		if !ok {
			return nil, errors.Errorf("instance %q requires unknown class %q", decl.Name, req.Class)
		}
		target, err := typing.ParseTerm(req.Target)
		if err != nil {
			return nil, errors.Wrapf(err, "bad prerequisite target in instance %q", decl.Name)
		}
		if hints.Contains(req.Hint) {
			// a repeated hint would silently shadow a prerequisite dictionary
			return nil, errors.Errorf("instance %q uses hint %q twice", decl.Name, req.Hint)
		}
		hints.Add(req.Hint)
		templates = append(templates, classes.Template{Class: class, Target: target, Hint: req.Hint})
	}

	return &classes.Instance{
		Name: decl.Name,
		Head: head,
		Build: func(prerequisites map[string]classes.Dictionary, _ *typing.Substitution, _ *typing.ObservationalEquality) (classes.Dictionary, error) {
			raw := make(map[string]map[string]interface{}, len(prerequisites))
			for hint, dictionary := range prerequisites {
				raw[hint] = dictionary
			}
			return fn(raw), nil
		},
		Prerequisites: templates,
	}, nil
}

func parseSort(name string) (typing.Sort, error) {
	switch name {
	case "", "omega":
		return typing.Omega, nil
	case "universe":
		return typing.Universe, nil
	default:
		return 0, errors.Errorf("unknown sort %q", name)
	}
}

// Solve runs a fresh solver over the scenario's constraints
func (s *Scenario) Solve() (map[string]classes.Dictionary, error) {
	return classes.NewSolver(s.Environment).SolveAll(s.Constraints)
}
