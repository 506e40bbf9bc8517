package main

import (
	"fmt"
	"os"
	"path/filepath"

	"minipl/interpreter-go/pkg/driver"
)

// runFetch clones every git target (or only the named ones) and records the
// resolved commits in minipl.lock.
func runFetch(args []string) int {
	manifest, err := loadManifestFrom(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
		return 1
	}

	var targets []*driver.TargetSpec
	if len(args) == 0 {
		for _, name := range manifest.TargetOrder {
			if target := manifest.Targets[name]; target.Git != nil {
				targets = append(targets, target)
			}
		}
	} else {
		for _, name := range args {
			target, ok := manifest.FindTarget(name)
			if !ok {
				fmt.Fprintf(os.Stderr, "unknown target %q\n", name)
				return 1
			}
			if target.Git == nil {
				fmt.Fprintf(os.Stderr, "target %q is not a git target\n", target.OriginalName)
				return 1
			}
			targets = append(targets, target)
		}
	}
	if len(targets) == 0 {
		fmt.Fprintln(os.Stdout, "no git targets to fetch")
		return 0
	}

	fetcher, err := newFetcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	lock, err := loadLockfileForManifest(manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	if lock == nil {
		lock = driver.NewLockfile(manifest.Name, cliToolVersion)
	}

	for _, target := range targets {
		locked, _, err := fetcher.Fetch(target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel("error:"), err)
			return 1
		}
		lock.Put(locked)
		fmt.Fprintf(os.Stdout, "fetched %s at %s\n", target.OriginalName, locked.Commit)
	}

	lock.Tool = cliToolVersion
	lock.Generated = ""
	lockPath := filepath.Join(manifest.Dir(), driver.LockfileName)
	if err := driver.WriteLockfile(lock, lockPath); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", lockPath)
	return 0
}
