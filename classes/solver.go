package classes

import (
	"github.com/computegod/classkit/ckerr"
	"github.com/computegod/classkit/internal/log"
	"github.com/computegod/classkit/util"
	"github.com/hashicorp/go-set/v3"
)

var logger = log.DefaultLogger.With("section", "solve")

type resolutionKey = util.Pair[string, string]

// Solver resolves class constraints into dictionaries.
//
// The memo cache is private to one Solver and lives for its lifetime;
// repeated sub-resolutions of the same (class, target) pair share a single
// dictionary and call its builder exactly once.
type Solver struct {
	env  *Environment
	memo map[resolutionKey]Dictionary
}

func NewSolver(env *Environment) *Solver {
	return &Solver{
		env:  env,
		memo: make(map[resolutionKey]Dictionary),
	}
}

// SolveAll resolves each constraint independently and returns the dictionary
// found for each constraint's metavariable, keyed by metavariable name.
//
// Constraints do not see each other's bindings: every resolution starts from
// a fresh substitution. The first unrecoverable failure aborts the whole
// call; there is no partial result.
func (s *Solver) SolveAll(constraints []Constraint) (map[string]Dictionary, error) {
	solutions := make(map[string]Dictionary, len(constraints))
	for _, constraint := range constraints {
		dictionary, err := s.solveConstraint(constraint, set.New[resolutionKey](0))
		if err != nil {
			return nil, err
		}
		solutions[constraint.Meta.Name] = dictionary
	}
	return solutions, nil
}

// solveConstraint is the recursive resolution step. active holds the keys of
// every resolution in progress on this call chain; finding the current key
// there means an instance hierarchy recursed on an identical (class, target)
// pair without structural progress.
func (s *Solver) solveConstraint(constraint Constraint, active *set.Set[resolutionKey]) (Dictionary, error) {
	key := constraint.Key()
	if cached, ok := s.memo[key]; ok {
		logger.Debug("solve: memo hit", "class", constraint.Class.Name, "target", constraint.Target)
		return cached, nil
	}
	if active.Contains(key) {
		return nil, ckerr.New(ckerr.NewCycleDetected{Class: constraint.Class.Name, Target: constraint.Target})
	}

	for _, instance := range s.env.InstancesFor(constraint.Class) {
		subst, prerequisites, err := instance.Instantiate(constraint)
		if err != nil {
			if ckerr.IsUnification(err) {
				// head does not match this candidate, try the next one
				continue
			}
			return nil, err
		}
		logger.Debug("solve: head matched",
			"class", constraint.Class.Name,
			"instance", instance.Name,
			"target", constraint.Target,
			"prerequisites", len(prerequisites),
		)

		// From here on failures propagate: once a head matches, an
		// unresolvable prerequisite does not fall back to a later candidate.
		childActive := active.Copy()
		childActive.Insert(key)
		prereqSolutions := make(map[string]Dictionary, len(prerequisites))
		for _, prereq := range prerequisites {
			solution, err := s.solveConstraint(prereq.Constraint, childActive)
			if err != nil {
				return nil, err
			}
			prereqSolutions[prereq.Hint] = solution
		}

		dictionary, err := instance.Build(prereqSolutions, subst, s.env.Equality())
		if err != nil {
			return nil, err
		}
		if err := constraint.Class.ValidateDictionary(dictionary, s.env.Equality()); err != nil {
			return nil, err
		}
		s.memo[key] = dictionary
		return dictionary, nil
	}

	return nil, ckerr.New(ckerr.NewNoMatchingInstance{Class: constraint.Class.Name, Target: constraint.Target})
}
