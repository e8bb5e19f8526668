package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
	ggitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	appcfg "git.home.luguber.info/inful/vaultsync/internal/config"
	"git.home.luguber.info/inful/vaultsync/internal/logfields"
	"git.home.luguber.info/inful/vaultsync/internal/retry"
)

// Client handles Git operations for one vault remote.
type Client struct {
	cfg    appcfg.GitConfig
	policy retry.Policy
}

// NewClient creates a client for cfg.
func NewClient(cfg appcfg.GitConfig) *Client {
	if cfg.Branch == "" {
		cfg.Branch = appcfg.DefaultGitBranch
	}
	r := cfg.Retry
	return &Client{cfg: cfg, policy: retry.NewPolicy(r.Backoff, r.Initial, r.Max, r.MaxRetries)}
}

// Sync brings the checkout at dir up to date with the remote branch, cloning
// when dir holds no repository yet. It returns the checked out commit.
func (c *Client) Sync(ctx context.Context, dir string) (plumbing.Hash, error) {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil { // missing => clone
		return c.clone(ctx, dir)
	}
	return c.update(ctx, dir)
}

func (c *Client) clone(ctx context.Context, dir string) (plumbing.Hash, error) {
	slog.Info("Cloning vault", logfields.URL(c.cfg.URL), logfields.Branch(c.cfg.Branch), logfields.Path(dir))

	auth, err := authMethod(c.cfg.Auth)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to setup authentication: %w", err)
	}

	var repository *git.Repository
	err = c.policy.Do(ctx, "clone", isTransient, func() error {
		var cloneErr error
		repository, cloneErr = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
			URL:           c.cfg.URL,
			ReferenceName: plumbing.NewBranchReferenceName(c.cfg.Branch),
			SingleBranch:  true,
			Auth:          auth,
		})
		if cloneErr != nil {
			return classifyError("clone", c.cfg.URL, cloneErr)
		}
		return nil
	})
	if err != nil {
		return plumbing.ZeroHash, err
	}

	head, err := repository.Head()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("head: %w", err)
	}
	slog.Info("Vault cloned", logfields.URL(c.cfg.URL), slog.String("commit", shortHash(head.Hash())))
	return head.Hash(), nil
}

func (c *Client) update(ctx context.Context, dir string) (plumbing.Hash, error) {
	repository, err := git.PlainOpen(dir)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("open repo: %w", err)
	}
	wt, err := repository.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("worktree: %w", err)
	}

	// 1. Fetch remote refs
	err = c.policy.Do(ctx, "fetch", isTransient, func() error {
		if err := c.fetchOrigin(ctx, repository); err != nil {
			return classifyError("fetch", c.cfg.URL, err)
		}
		return nil
	})
	if err != nil {
		return plumbing.ZeroHash, err
	}

	// 2. Checkout/create local branch & obtain refs
	localRef, remoteRef, err := checkoutAndGetRefs(repository, wt, c.cfg.Branch)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	// 3. Fast-forward, refusing diverged history
	ff, err := isAncestor(repository, localRef.Hash(), remoteRef.Hash())
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("ancestor check: %w", err)
	}
	if !ff {
		return plumbing.ZeroHash, &RemoteDivergedError{URL: c.cfg.URL, Branch: c.cfg.Branch}
	}
	if localRef.Hash() == remoteRef.Hash() {
		slog.Info("Vault already up-to-date", logfields.Branch(c.cfg.Branch), slog.String("commit", shortHash(remoteRef.Hash())))
		return remoteRef.Hash(), nil
	}
	if err := wt.Reset(&git.ResetOptions{Commit: remoteRef.Hash(), Mode: git.HardReset}); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("fast-forward reset: %w", err)
	}
	slog.Info("Fast-forwarded vault",
		logfields.Branch(c.cfg.Branch),
		slog.String("from", shortHash(localRef.Hash())),
		slog.String("to", shortHash(remoteRef.Hash())))
	return remoteRef.Hash(), nil
}

// fetchOrigin fetches all branches of origin with the configured authentication.
func (c *Client) fetchOrigin(ctx context.Context, repository *git.Repository) error {
	auth, err := authMethod(c.cfg.Auth)
	if err != nil {
		return err
	}
	fetchOpts := &git.FetchOptions{
		RemoteName: "origin",
		Tags:       git.NoTags,
		RefSpecs:   []ggitcfg.RefSpec{"+refs/heads/*:refs/remotes/origin/*"},
		Auth:       auth,
	}
	if err := repository.FetchContext(ctx, fetchOpts); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("fetch: %w", err)
	}
	return nil
}

// checkoutAndGetRefs ensures the local branch exists and is checked out, returning both local and remote references.
func checkoutAndGetRefs(repository *git.Repository, wt *git.Worktree, branch string) (localRef, remoteRef *plumbing.Reference, err error) {
	localBranchRef := plumbing.NewBranchReferenceName(branch)
	remoteRef, err = repository.Reference(plumbing.NewRemoteReferenceName("origin", branch), true)
	if err != nil {
		return nil, nil, fmt.Errorf("remote ref: %w", err)
	}
	if err := ensureNoLocalChanges(repository, wt, remoteRef.Hash(), branch); err != nil {
		return nil, nil, err
	}
	localRef, lerr := repository.Reference(localBranchRef, true)
	if lerr != nil { // create local branch at the remote commit
		if err = wt.Checkout(&git.CheckoutOptions{Branch: localBranchRef, Hash: remoteRef.Hash(), Create: true}); err != nil {
			return nil, nil, fmt.Errorf("checkout new branch: %w", err)
		}
		localRef, err = repository.Reference(localBranchRef, true)
		if err != nil {
			return nil, nil, fmt.Errorf("local ref: %w", err)
		}
		return localRef, remoteRef, nil
	}
	if err = wt.Checkout(&git.CheckoutOptions{Branch: localBranchRef}); err != nil {
		return nil, nil, fmt.Errorf("checkout existing branch: %w", err)
	}
	return localRef, remoteRef, nil
}

// ensureNoLocalChanges fails with LocalChangesError when the worktree holds
// staged or unstaged edits to tracked files, or untracked files the incoming
// commit would overwrite. Other untracked files are left alone.
func ensureNoLocalChanges(repo *git.Repository, wt *git.Worktree, incoming plumbing.Hash, branch string) error {
	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}

	var (
		tree  *object.Tree
		paths []string
	)
	for path, st := range status {
		switch {
		case st.Staging == git.Unmodified && st.Worktree == git.Unmodified:
			continue
		case st.Staging == git.Untracked && st.Worktree == git.Untracked:
			if tree == nil {
				commit, err := repo.CommitObject(incoming)
				if err != nil {
					return fmt.Errorf("incoming commit: %w", err)
				}
				if tree, err = commit.Tree(); err != nil {
					return fmt.Errorf("incoming tree: %w", err)
				}
			}
			if _, err := tree.File(path); err != nil {
				continue
			}
		}
		paths = append(paths, path)
	}
	if len(paths) == 0 {
		return nil
	}
	sort.Strings(paths)
	return &LocalChangesError{Branch: branch, Paths: paths}
}

// isAncestor reports whether a is reachable from b.
func isAncestor(repo *git.Repository, a, b plumbing.Hash) (bool, error) {
	if a == b {
		return true, nil
	}
	seen := map[plumbing.Hash]struct{}{}
	queue := []plumbing.Hash{b}
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		if h == a {
			return true, nil
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		commit, err := repo.CommitObject(h)
		if err != nil {
			return false, err
		}
		queue = append(queue, commit.ParentHashes...)
	}
	return false, nil
}

func shortHash(h plumbing.Hash) string {
	return h.String()[:8]
}
