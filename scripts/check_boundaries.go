package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const modulePath = "quill"

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

// scope is what a file is allowed to see, derived from where it lives.
type scope struct {
	// service is the import prefix of the owning context service, empty
	// outside contexts/.
	service string
	layer   string
	tree    string
}

// rule reports a reason when importPath is not allowed from s.
type rule func(s scope, importPath string) string

var rules = []rule{
	crossServiceRule,
	contractsRule,
	domainRule,
	applicationRule,
	portsRule,
	platformRule,
}

func main() {
	var violations []violation
	for _, root := range []string{"contexts", "contracts", "internal/platform"} {
		violations = append(violations, collectViolations(root)...)
	}
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File != violations[j].File {
			return violations[i].File < violations[j].File
		}
		if violations[i].Line != violations[j].Line {
			return violations[i].Line < violations[j].Line
		}
		return violations[i].Import < violations[j].Import
	})

	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}

func collectViolations(root string) []violation {
	var violations []violation
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		normalized := filepath.ToSlash(path)
		violations = append(violations, checkFile(path, normalized, scopeOf(normalized))...)
		return nil
	})
	return violations
}

func scopeOf(path string) scope {
	parts := strings.Split(path, "/")
	s := scope{tree: parts[0]}
	if s.tree == "internal" && len(parts) > 1 {
		s.tree = "internal/" + parts[1]
	}
	if s.tree == "contexts" && len(parts) >= 4 {
		s.service = fmt.Sprintf("%s/contexts/%s/%s", modulePath, parts[1], parts[2])
		s.layer = parts[3]
	}
	return s
}

func checkFile(path string, normalized string, s scope) []violation {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return []violation{{File: normalized, Line: 1, Rule: "file must parse"}}
	}

	var violations []violation
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, "\"")
		for _, check := range rules {
			if reason := check(s, importPath); reason != "" {
				violations = append(violations, violation{
					File:   normalized,
					Line:   fset.Position(imp.Pos()).Line,
					Import: importPath,
					Rule:   reason,
				})
			}
		}
	}
	return violations
}

func crossServiceRule(s scope, importPath string) string {
	if s.service == "" || !hasPrefix(importPath, modulePath+"/contexts") {
		return ""
	}
	if hasPrefix(importPath, s.service) {
		return ""
	}
	return "cross-module imports are forbidden"
}

// contracts are shared by every service and the platform, so they stay leaves.
func contractsRule(s scope, importPath string) string {
	if s.tree != "contracts" || isStdlib(importPath) {
		return ""
	}
	return "contracts may only import the standard library"
}

func domainRule(s scope, importPath string) string {
	if s.layer != "domain" {
		return ""
	}
	if strings.Contains(importPath, "/adapters/") {
		return "domain must not import adapters"
	}
	if hasPrefix(importPath, modulePath+"/internal") || hasPrefix(importPath, modulePath+"/cmd") {
		return "domain must not import runtime infrastructure"
	}
	if isStdlib(importPath) || isAllowed(importPath, s.service+"/domain", modulePath+"/contracts") {
		return ""
	}
	return "domain import is outside explicit allowlist"
}

func applicationRule(s scope, importPath string) string {
	if s.layer != "application" {
		return ""
	}
	if strings.Contains(importPath, "/adapters/") {
		return "application must not import adapters"
	}
	if hasPrefix(importPath, modulePath+"/internal") || hasPrefix(importPath, modulePath+"/cmd") {
		return "application must not import runtime infrastructure"
	}
	allowed := []string{
		s.service + "/application",
		s.service + "/domain",
		s.service + "/ports",
		modulePath + "/contracts",
		"golang.org/x/sync",
		"go.uber.org/multierr",
	}
	if isStdlib(importPath) || isAllowed(importPath, allowed...) {
		return ""
	}
	return "application import is outside explicit allowlist"
}

// ports describe what the application needs; they never name an adapter.
func portsRule(s scope, importPath string) string {
	if s.layer != "ports" {
		return ""
	}
	if isStdlib(importPath) || isAllowed(importPath, s.service+"/domain", modulePath+"/contracts") {
		return ""
	}
	return "ports may only import the owning domain and contracts"
}

// Platform code wires services through their module root, transport DTOs and
// domain types, never through a service's use cases or adapters.
func platformRule(s scope, importPath string) string {
	if s.tree != "internal/platform" || !hasPrefix(importPath, modulePath+"/contexts") {
		return ""
	}
	if strings.Contains(importPath, "/application") || strings.Contains(importPath, "/adapters/") {
		return "platform must reach services through their module root"
	}
	return ""
}

func hasPrefix(path string, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isAllowed(importPath string, prefixes ...string) bool {
	for _, p := range prefixes {
		if hasPrefix(importPath, p) {
			return true
		}
	}
	return false
}

func isStdlib(importPath string) bool {
	if hasPrefix(importPath, modulePath) {
		return false
	}
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}
