package updates

import (
	"context"
	"strings"

	"github.com/google/go-github/github"
	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/hashicorp/go-version"
	"github.com/pkg/errors"
	"github.com/yext/hellod/common"
)

// ReleaseSource looks up the tag of the latest release of a repo
type ReleaseSource interface {
	LatestRelease(ctx context.Context, owner, repo string) (string, error)
}

// GitHubReleases is a ReleaseSource backed by the GitHub API, caching responses on disk.
type GitHubReleases struct {
	client *github.Client
	logger common.Logger
}

// NewGitHubReleases creates a GitHubReleases caching responses under cachePath.
func NewGitHubReleases(cachePath string, logger common.Logger) *GitHubReleases {
	diskCache := diskcache.New(cachePath)
	transport := httpcache.NewTransport(diskCache)
	return &GitHubReleases{
		client: github.NewClient(transport.Client()),
		logger: common.MaskLogger(logger),
	}
}

// LatestRelease returns the tag name of the latest release, or an empty string
// if the lookup was rate limited.
func (g *GitHubReleases) LatestRelease(ctx context.Context, owner, repo string) (string, error) {
	release, _, err := g.client.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		// Log, but don't return rate limit errors
		if _, ok := err.(*github.RateLimitError); ok {
			g.logger.Printf("Rate limit error when requesting latest version %v\n", err)
			return "", nil
		}
		return "", errors.WithStack(err)
	}
	return release.GetTagName(), nil
}

// UpdateAvailable determines if a newer version than currentVersion has been released
func UpdateAvailable(ctx context.Context, source ReleaseSource, owner, repo, currentVersion string, logger common.Logger) (bool, string, error) {
	logger = common.MaskLogger(logger)

	latestVersion, err := source.LatestRelease(ctx, owner, repo)
	if err != nil {
		return false, "", errors.WithStack(err)
	}
	if latestVersion == "" {
		return false, "", nil
	}
	latestVersion = strings.TrimPrefix(latestVersion, "v")

	logger.Printf("Comparing latest release %v, to current version %v\n", latestVersion, currentVersion)
	if _, err := version.NewVersion(currentVersion); err != nil {
		logger.Printf("Current version %q is not a release, assuming a development build: %v\n", currentVersion, err)
	}

	newer, err := IsNewer(currentVersion, latestVersion)
	return newer, latestVersion, errors.WithStack(err)
}

// IsNewer returns true if latest is a greater version than current.
// A current version that cannot be parsed is treated as a development build,
// for which any release is newer.
func IsNewer(current, latest string) (bool, error) {
	lv, err := version.NewVersion(latest)
	if err != nil {
		return false, errors.Wrapf(err, "invalid latest version %q", latest)
	}
	cv, err := version.NewVersion(current)
	if err != nil {
		return true, nil
	}
	return cv.LessThan(lv), nil
}
