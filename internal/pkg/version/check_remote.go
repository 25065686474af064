package version

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver"
	"github.com/go-resty/resty/v2"

	"github.com/dsascode/dsc/internal/pkg/build"
	"github.com/dsascode/dsc/internal/pkg/env"
	"github.com/dsascode/dsc/internal/pkg/log"
)

const (
	EnvVersionCheck = "DSC_VERSION_CHECK"
	releasesUrl     = "https://api.github.com/repos/dsascode/dsc/releases?per_page=20"
	repositoryUrl   = "https://github.com/dsascode/dsc/releases"
)

type checker struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger log.Logger
	client *resty.Client
	envs   *env.Map
}

type release struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Id int `json:"id"`
	} `json:"assets"`
}

func NewGitHubChecker(parentCtx context.Context, logger log.Logger, envs *env.Map) *checker {
	// Timeout for the remote check, the CLI must not wait for GitHub
	ctx, cancel := context.WithTimeout(parentCtx, 3*time.Second)

	client := resty.New()
	client.SetHeader("User-Agent", "dsc/"+build.BuildVersion)

	return &checker{ctx: ctx, cancel: cancel, logger: logger, client: client, envs: envs}
}

func (c *checker) GetRestyClient() *resty.Client {
	return c.client
}

func (c *checker) CheckIfLatest(currentVersion string) error {
	defer c.cancel()

	if value, _ := c.envs.Lookup(EnvVersionCheck); value == "false" {
		return fmt.Errorf(`skipped, disabled by %s ENV`, EnvVersionCheck)
	}

	if currentVersion == build.DevVersionValue {
		return fmt.Errorf(`skipped, found dev build`)
	}

	latestVersion, err := c.getLatestVersion()
	if err != nil {
		return err
	}

	current, err := semver.NewVersion(strings.TrimPrefix(currentVersion, "v"))
	if err != nil {
		return fmt.Errorf(`cannot parse current version "%s": %w`, currentVersion, err)
	}

	latest, err := semver.NewVersion(strings.TrimPrefix(latestVersion, "v"))
	if err != nil {
		return fmt.Errorf(`cannot parse latest version "%s": %w`, latestVersion, err)
	}

	if latest.GreaterThan(current) {
		c.logger.Warn(`*******************************************************`)
		c.logger.Warnf(`WARNING: A new version "%s" is available.`, latestVersion)
		c.logger.Warnf(`You are currently using the version "%s".`, current.String())
		c.logger.Warn(`Please update to get the latest features and bug fixes.`)
		c.logger.Warnf(`Read more: %s`, repositoryUrl)
		c.logger.Warn(`*******************************************************`)
		c.logger.Warn()
	}

	return nil
}

func (c *checker) getLatestVersion() (string, error) {
	releases := make([]release, 0)
	resp, err := c.client.R().SetContext(c.ctx).SetResult(&releases).Get(releasesUrl)
	if err != nil {
		return "", fmt.Errorf(`cannot fetch the latest version: %w`, err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf(`cannot fetch the latest version: HTTP %d`, resp.StatusCode())
	}

	// The latest release with a built asset
	for _, r := range releases {
		if len(r.Assets) > 0 && r.TagName != "" {
			return r.TagName, nil
		}
	}

	return "", fmt.Errorf(`cannot fetch the latest version: no release found`)
}
