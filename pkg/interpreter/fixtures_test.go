package interpreter

import (
	"path/filepath"
	"testing"
)

func TestFixtures(t *testing.T) {
	count := 0
	walkFixtures(t, fixturesRoot, func(dir string) {
		count++
		name, err := filepath.Rel(fixturesRoot, dir)
		if err != nil {
			name = dir
		}
		t.Run(filepath.ToSlash(name), func(t *testing.T) {
			runFixture(t, dir)
		})
	})
	if count == 0 {
		t.Fatalf("no fixtures found under %s", fixturesRoot)
	}
}
