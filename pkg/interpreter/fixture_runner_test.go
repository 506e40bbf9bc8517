package interpreter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"minipl/interpreter-go/pkg/parser"
)

const fixturesRoot = "../../fixtures"

type fixtureManifest struct {
	Description string `yaml:"description"`
	Entry       string `yaml:"entry"`
	Input       string `yaml:"input"`
	Expect      struct {
		Stdout               string   `yaml:"stdout"`
		SyntaxErrors         []string `yaml:"syntaxErrors"`
		Error                string   `yaml:"error"`
		ErrorKind            string   `yaml:"errorKind"`
		TypecheckDiagnostics []string `yaml:"typecheckDiagnostics"`
	} `yaml:"expect"`
}

// testingT captures the subset of testing.T used by fixture helpers.
type testingT interface {
	Helper()
	Fatalf(format string, args ...interface{})
}

func readManifest(t testingT, dir string) fixtureManifest {
	t.Helper()
	manifestPath := filepath.Join(dir, "fixture.yml")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fixtureManifest{}
		}
		t.Fatalf("read manifest %s: %v", manifestPath, err)
	}
	var manifest fixtureManifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&manifest); err != nil {
		t.Fatalf("parse manifest %s: %v", manifestPath, err)
	}
	return manifest
}

// walkFixtures calls fn for every directory below root holding a fixture.
func walkFixtures(t *testing.T, root string, fn func(string)) {
	t.Helper()
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read dir %s: %v", root, err)
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() && entry.Name() == "fixture.yml" {
			fn(root)
		}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			walkFixtures(t, filepath.Join(root, entry.Name()), fn)
		}
	}
}

// runFixture parses, typechecks and evaluates one fixture directory and
// compares every observable outcome with its manifest.
func runFixture(t *testing.T, dir string) {
	t.Helper()
	manifest := readManifest(t, dir)
	entry := manifest.Entry
	if entry == "" {
		entry = "source.mpl"
	}
	source, err := os.ReadFile(filepath.Join(dir, entry))
	if err != nil {
		t.Fatalf("read source: %v", err)
	}

	prog, syntaxErrs := parser.Parse(string(source))
	if len(manifest.Expect.SyntaxErrors) > 0 || len(syntaxErrs) > 0 {
		got := make([]string, len(syntaxErrs))
		for i, e := range syntaxErrs {
			got[i] = e.Error()
		}
		if !equalStrings(got, manifest.Expect.SyntaxErrors) {
			t.Fatalf("syntax errors mismatch:\n got %q\nwant %q", got, manifest.Expect.SyntaxErrors)
		}
		return
	}

	diags := TypecheckProgram(prog)
	gotDiags := make([]string, len(diags))
	for i, d := range diags {
		gotDiags[i] = d.String()
	}
	if !equalStrings(gotDiags, manifest.Expect.TypecheckDiagnostics) {
		t.Fatalf("typecheck diagnostics mismatch:\n got %q\nwant %q", gotDiags, manifest.Expect.TypecheckDiagnostics)
	}

	interp := New()
	var stdout bytes.Buffer
	interp.SetOutput(&stdout)
	interp.SetInput(strings.NewReader(manifest.Input))
	err = interp.EvaluateProgram(prog)

	if got := stdout.String(); got != manifest.Expect.Stdout {
		t.Fatalf("stdout mismatch:\n got %q\nwant %q", got, manifest.Expect.Stdout)
	}
	if manifest.Expect.Error == "" && manifest.Expect.ErrorKind == "" {
		if err != nil {
			t.Fatalf("evaluation error: %v", err)
		}
		return
	}
	var rt *RuntimeError
	if !errors.As(err, &rt) {
		t.Fatalf("expected runtime error, got %v", err)
	}
	if manifest.Expect.ErrorKind != "" && rt.Kind.String() != manifest.Expect.ErrorKind {
		t.Fatalf("expected error kind %s, got %s (%v)", manifest.Expect.ErrorKind, rt.Kind, rt)
	}
	if manifest.Expect.Error != "" && rt.Error() != manifest.Expect.Error {
		t.Fatalf("expected error %q, got %q", manifest.Expect.Error, rt.Error())
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
