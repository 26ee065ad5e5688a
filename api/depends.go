package api

import (
	"errors"
	"fmt"

	"github.com/xy-planning-network/writium"
)

// CheckDependencies walks the tree rooted at root
// and reports every Dependent whose dependencies are not bound anywhere in the tree.
//
// Dependencies are named by their full path from root, root's own name included.
// The returned error wraps writium.ErrNotExist once per missing dependency.
func CheckDependencies(root Api) error {
	names := make(map[string]struct{})
	var deps []dependency
	walk(root, nil, func(path []string, a Api) {
		names[FullName(path)] = struct{}{}
		if d, ok := a.(Dependent); ok {
			deps = append(deps, dependency{path: path, needs: d.Dependencies()})
		}
	})

	var errs []error
	for _, d := range deps {
		for _, need := range d.needs {
			if _, ok := names[FullName(need)]; !ok {
				errs = append(errs, fmt.Errorf("%w: %s depends on %s", writium.ErrNotExist, FullName(d.path), FullName(need)))
			}
		}
	}

	return errors.Join(errs...)
}

type dependency struct {
	path  []string
	needs [][]string
}

// A Composite is an Api made of other Apis, e.g. a *Namespace.
type Composite interface {
	Api
	Apis() []Api
}

// walk calls fn on a and, if a is a Composite, every Api below it.
func walk(a Api, parent []string, fn func([]string, Api)) {
	path := make([]string, 0, len(parent)+len(a.Name()))
	path = append(path, parent...)
	path = append(path, a.Name()...)
	fn(path, a)

	n, ok := a.(Composite)
	if !ok {
		return
	}

	for _, child := range n.Apis() {
		walk(child, path, fn)
	}
}
