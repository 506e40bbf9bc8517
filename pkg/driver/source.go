package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HomeEnv overrides the cache root used for fetched targets.
const HomeEnv = "MINIPL_HOME"

// LoadSource reads a program file into memory.
func LoadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// ResolveHome returns $MINIPL_HOME when set, otherwise ~/.minipl.
func ResolveHome() (string, error) {
	if env := strings.TrimSpace(os.Getenv(HomeEnv)); env != "" {
		return filepath.Abs(env)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".minipl"), nil
}

// ResolvedTarget holds absolute paths for a runnable target.
type ResolvedTarget struct {
	Name  string
	Main  string
	Input string
}

var ErrTargetNotFetched = errors.New("target not fetched")

// ResolveTarget maps a manifest target to files on disk. Local targets resolve
// against the manifest directory. Git targets resolve inside the cached
// checkout recorded in the lockfile. Input is always local.
func ResolveTarget(manifest *Manifest, target *TargetSpec, lock *Lockfile, fetcher *GitFetcher) (*ResolvedTarget, error) {
	if manifest == nil || target == nil {
		return nil, fmt.Errorf("resolve target: missing manifest or target")
	}
	root := manifest.Dir()
	resolved := &ResolvedTarget{Name: target.Name}

	if target.Git == nil {
		resolved.Main = filepath.Join(root, filepath.FromSlash(target.Main))
	} else {
		locked, ok := lock.Find(target.Name)
		if !ok || fetcher == nil {
			return nil, fmt.Errorf("target %q: %w (run minipl fetch)", target.OriginalName, ErrTargetNotFetched)
		}
		checkout := fetcher.CheckoutDir(target.Name, locked.Commit)
		if _, err := os.Stat(checkout); err != nil {
			return nil, fmt.Errorf("target %q: checkout %s missing: %w (run minipl fetch)", target.OriginalName, checkout, ErrTargetNotFetched)
		}
		resolved.Main = filepath.Join(checkout, filepath.FromSlash(target.Main))
	}

	if target.Input != "" {
		resolved.Input = filepath.Join(root, filepath.FromSlash(target.Input))
	}
	return resolved, nil
}
