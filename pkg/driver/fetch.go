package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitFetcher clones git targets into a cache laid out as
// <cache>/src/<target>/<commit>.
type GitFetcher struct {
	CacheDir string
}

func NewGitFetcher(cacheDir string) *GitFetcher {
	if cacheDir == "" {
		return nil
	}
	return &GitFetcher{CacheDir: cacheDir}
}

// Fetch resolves the target's pin to a commit, materialises a checkout of it
// and returns the lock entry together with the checkout directory.
func (g *GitFetcher) Fetch(target *TargetSpec) (*LockedTarget, string, error) {
	if g == nil {
		return nil, "", errors.New("git fetcher unavailable")
	}
	if target == nil || target.Git == nil {
		return nil, "", fmt.Errorf("fetch: target has no git source")
	}
	url := strings.TrimSpace(target.Git.URL)
	if url == "" {
		return nil, "", fmt.Errorf("target %q: git URL required", target.OriginalName)
	}

	baseDir := g.targetDir(target.Name)
	commit, err := ensureGitCheckout(baseDir, url, target.Git)
	if err != nil {
		return nil, "", fmt.Errorf("target %q: %w", target.OriginalName, err)
	}

	checkoutDir := filepath.Join(baseDir, sanitizePathSegment(commit))
	checksum, err := dirChecksum(checkoutDir)
	if err != nil {
		return nil, "", err
	}

	return &LockedTarget{
		Name:     target.Name,
		Source:   fmt.Sprintf("git+%s", url),
		Commit:   commit,
		Checksum: checksum,
	}, checkoutDir, nil
}

// CheckoutDir is where Fetch places the checkout for a locked commit.
func (g *GitFetcher) CheckoutDir(name, commit string) string {
	return filepath.Join(g.targetDir(name), sanitizePathSegment(commit))
}

func (g *GitFetcher) targetDir(name string) string {
	return filepath.Join(g.CacheDir, "src", sanitizePathSegment(sanitizeSegment(name)))
}

func ensureGitCheckout(baseDir, url string, source *GitSource) (string, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", err
	}

	revision, err := gitRevisionFromSource(source)
	if err != nil {
		return "", err
	}

	if rev := strings.TrimSpace(source.Rev); rev != "" && plumbing.IsHash(rev) {
		existing := filepath.Join(baseDir, sanitizePathSegment(rev))
		if _, err := os.Stat(existing); err == nil {
			return rev, nil
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("git clone %s: %w", url, err)
	}

	hash, err := resolveRevision(repo, revision, source.Branch)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}

	commit := hash.String()
	targetDir := filepath.Join(baseDir, sanitizePathSegment(commit))
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return commit, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{
		Hash:  *hash,
		Force: true,
	}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", fmt.Errorf("git checkout %s: %w", revision, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", err
	}
	return commit, nil
}

// resolveRevision falls back to the remote-tracking ref for branches other
// than the one the clone checked out.
func resolveRevision(repo *git.Repository, revision plumbing.Revision, branch string) (*plumbing.Hash, error) {
	hash, err := repo.ResolveRevision(revision)
	if err == nil || strings.TrimSpace(branch) == "" {
		return hash, err
	}
	return repo.ResolveRevision(plumbing.Revision("refs/remotes/origin/" + strings.TrimSpace(branch)))
}

func gitRevisionFromSource(source *GitSource) (plumbing.Revision, error) {
	if rev := strings.TrimSpace(source.Rev); rev != "" {
		return plumbing.Revision(rev), nil
	}
	if tag := strings.TrimSpace(source.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), nil
	}
	if branch := strings.TrimSpace(source.Branch); branch != "" {
		return plumbing.Revision("refs/heads/" + branch), nil
	}
	return "", fmt.Errorf("git targets require rev, tag, or branch")
}

// dirChecksum hashes file names and contents, skipping git metadata.
func dirChecksum(path string) (string, error) {
	h := sha256.New()
	err := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		h.Write([]byte(filepath.Base(p)))
		h.Write(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "head"
	}
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
