package architecture_test

import (
	"bufio"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

type violation struct {
	file string
	imp  string
	rule string
}

// productionImports calls fn for every import of every non-test Go file under internal/.
func productionImports(t *testing.T, fn func(rel, modulePath, imp string)) {
	t.Helper()

	start, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	root, err := findModuleRoot(start)
	if err != nil {
		t.Fatalf("find module root: %v", err)
	}
	modulePath, err := readModulePath(filepath.Join(root, "go.mod"))
	if err != nil {
		t.Fatalf("read module path: %v", err)
	}

	internalDir := filepath.Join(root, "internal")
	fset := token.NewFileSet()
	walkErr := filepath.WalkDir(internalDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case ".git", "vendor", "testdata":
				return filepath.SkipDir
			default:
				return nil
			}
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, spec := range f.Imports {
			if spec == nil || spec.Path == nil {
				continue
			}
			imp, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				continue
			}
			fn(rel, modulePath, imp)
		}
		return nil
	})
	if walkErr != nil {
		t.Fatalf("walk internal/: %v", walkErr)
	}
}

func report(t *testing.T, title string, violations []violation) {
	t.Helper()
	if len(violations) == 0 {
		return
	}
	var b strings.Builder
	b.WriteString(title + ":\n")
	for _, v := range violations {
		fmt.Fprintf(&b, "- %s imports %q (disallowed: %q)\n", v.file, v.imp, v.rule)
	}
	t.Fatal(b.String())
}

func TestImportBoundaries(t *testing.T) {
	var violations []violation
	productionImports(t, func(rel, modulePath, imp string) {
		for _, bad := range disallowedImports(modulePath, layerFor(rel)) {
			if strings.HasPrefix(imp, bad) {
				violations = append(violations, violation{file: rel, imp: imp, rule: bad})
				return
			}
		}
	})
	report(t, "import boundary violations", violations)
}

// The tracker is a client of the HTTP surface and never opens the store itself.
func TestStoreDriversOnlyInDataDB(t *testing.T) {
	var violations []violation
	productionImports(t, func(rel, _ string, imp string) {
		if !strings.HasPrefix(imp, "gorm.io/driver/") {
			return
		}
		if strings.HasPrefix(rel, "internal/data/db/") {
			return
		}
		violations = append(violations, violation{file: rel, imp: imp, rule: "gorm.io/driver/"})
	})
	report(t, "store drivers imported outside internal/data/db", violations)
}

func layerFor(rel string) string {
	switch {
	case strings.HasPrefix(rel, "internal/platform/"):
		return "platform"
	case strings.HasPrefix(rel, "internal/domain/"):
		return "domain"
	case strings.HasPrefix(rel, "internal/data/"):
		return "data"
	case strings.HasPrefix(rel, "internal/services/"):
		return "services"
	case strings.HasPrefix(rel, "internal/http/"):
		return "http"
	case strings.HasPrefix(rel, "internal/tracker/"):
		return "tracker"
	case strings.HasPrefix(rel, "internal/importer/"):
		return "importer"
	default:
		return ""
	}
}

func disallowedImports(modulePath string, layer string) []string {
	internal := modulePath + "/internal/"
	switch layer {
	case "platform", "domain":
		return []string{
			internal + "data/",
			internal + "services/",
			internal + "http/",
			internal + "app/",
			internal + "tracker/",
			internal + "importer/",
		}
	case "data":
		return []string{
			internal + "services/",
			internal + "http/",
			internal + "app/",
			internal + "tracker/",
			internal + "importer/",
		}
	case "services", "importer":
		return []string{
			internal + "http/",
			internal + "app/",
			internal + "tracker/",
		}
	case "http":
		return []string{
			internal + "app/",
			internal + "tracker/",
			internal + "importer/",
		}
	case "tracker":
		return []string{
			internal + "data/",
			internal + "services/",
			internal + "http/",
			internal + "app/",
			internal + "importer/",
		}
	default:
		return nil
	}
}

func findModuleRoot(start string) (string, error) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found from %s", start)
		}
		dir = parent
	}
}

func readModulePath(goModPath string) (string, error) {
	f, err := os.Open(goModPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if !strings.HasPrefix(line, "module ") {
			continue
		}
		mp := strings.TrimSpace(strings.TrimPrefix(line, "module "))
		if mp == "" {
			return "", fmt.Errorf("empty module path in %s", goModPath)
		}
		return mp, nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("module path not found in %s", goModPath)
}
