package domain

import (
	"fmt"
	"strings"
)

// ParseSpec turns a command-line dependency argument into a PackageSpec.
//
//	lodash            -> NpmSpec
//	lodash@^4.17.0    -> NpmSpec with a range
//	@types/node@20.x  -> scoped NpmSpec
//	foo@npm:bar@^2    -> AliasSpec for bar under the name foo
//	./pkg, ../pkg     -> DirSpec
//	git+https://...   -> GitSpec
func ParseSpec(arg string) (PackageSpec, error) {
	if arg == "" {
		return nil, &ParseError{Code: CodeInvalidSpec, Name: arg, Err: fmt.Errorf("empty package spec")}
	}

	if strings.HasPrefix(arg, "./") || strings.HasPrefix(arg, "../") || strings.HasPrefix(arg, "/") {
		return DirSpec{Path: arg}, nil
	}
	if strings.HasPrefix(arg, "git+") || strings.HasPrefix(arg, "git://") {
		return GitSpec{URL: arg}, nil
	}

	name, requested := splitNameRequested(arg)
	if err := checkName(name); err != nil {
		return nil, err
	}

	if target, ok := strings.CutPrefix(requested, "npm:"); ok {
		targetName, targetReq := splitNameRequested(target)
		if err := checkName(targetName); err != nil {
			return nil, err
		}
		scope, bare := splitScope(targetName)
		return AliasSpec{
			Name:    name,
			Package: NpmSpec{Scope: scope, Name: bare, Requested: targetReq},
		}, nil
	}

	scope, bare := splitScope(name)
	return NpmSpec{Scope: scope, Name: bare, Requested: requested}, nil
}

// splitNameRequested splits "name@range" on the first "@" past the leading
// scope marker.
func splitNameRequested(arg string) (name, requested string) {
	search := arg
	offset := 0
	if strings.HasPrefix(arg, "@") {
		search = arg[1:]
		offset = 1
	}
	if idx := strings.Index(search, "@"); idx >= 0 {
		return arg[:offset+idx], arg[offset+idx+1:]
	}
	return arg, ""
}

func splitScope(name string) (scope, bare string) {
	if strings.HasPrefix(name, "@") {
		if idx := strings.Index(name, "/"); idx > 0 {
			return name[:idx], name[idx+1:]
		}
	}
	return "", name
}

func checkName(name string) error {
	if name == "" {
		return &ParseError{Code: CodeInvalidSpec, Name: name, Err: fmt.Errorf("empty package name")}
	}
	if strings.HasPrefix(name, "@") && !strings.Contains(name, "/") {
		return &ParseError{Code: CodeInvalidSpec, Name: name, Err: fmt.Errorf("scope %q is missing a package name", name)}
	}
	return nil
}
