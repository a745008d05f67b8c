package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gitport/gitport/pkg/config"
	"github.com/gitport/gitport/pkg/git"
	"github.com/gitport/gitport/pkg/github"
	"github.com/gitport/gitport/pkg/gitlab"
	"github.com/gitport/gitport/pkg/logger"
	"github.com/gitport/gitport/pkg/migration"
	"github.com/spf13/cobra"
)

func NewMigrateCommand(cfg *config.GlobalConfig) *cobra.Command {
	var migrateConfig config.MigrateConfig
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate a list of GitLab repositories to GitHub",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(*cfg, migrateConfig)
		},
	}

	// Migrate command specific flags
	cmd.Flags().StringVar(&migrateConfig.ReposFile, "repos", "", "File listing source repository URLs, one per line")
	cmd.Flags().StringVar(&migrateConfig.OverridesFile, "name-overrides", "", "CSV mapping source URL to destination repository name")
	cmd.Flags().DurationVar(&migrateConfig.Delay, "delay", time.Second, "Fixed delay between merge request migrations")
	_ = cmd.MarkFlagRequired("repos")

	return cmd
}

func runMigration(cfg config.GlobalConfig, migrateConfig config.MigrateConfig) error {
	repos, err := config.ReadRepositoryList(migrateConfig.ReposFile)
	if err != nil {
		return err
	}
	overrides, err := config.ReadNameOverrides(migrateConfig.OverridesFile)
	if err != nil {
		return err
	}

	gitlabClient, err := gitlab.NewClient(cfg.GitLabToken, cfg.GitLabURL)
	if err != nil {
		return fmt.Errorf("failed to create GitLab client: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Interrupts stop the run before the next repository starts.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		logger.Info("Received interrupt signal, stopping before the next repository...")
		cancel()
	}()

	var githubClient *github.Client
	if cfg.GitHubApiToken != "" {
		githubClient = github.NewClientByPAT(cfg.GitHubApiToken)
	} else if cfg.GitHubAppID > 0 && cfg.GitHubAppInstallationID > 0 && cfg.GitHubAppPrivateKey != "" {
		githubClient = github.NewClientByApp(cfg.GitHubAppID, cfg.GitHubAppInstallationID, cfg.GitHubAppPrivateKey)
	} else {
		logger.Fatal("GitHub token or GitHub App settings are required")
	}

	owner := cfg.GitHubOwner
	if owner == "" {
		owner, err = githubClient.CurrentLogin(ctx)
		if err != nil {
			return err
		}
	}

	engine := &migration.Engine{
		Source: gitlabClient,
		Dest:   githubClient,
		Git:    git.NewRunner(),
		Owner:  owner,
		Auth: migration.GitAuth{
			SourceToken:   cfg.GitLabToken,
			SourceBaseURL: cfg.GitLabURL,
			DestToken:     cfg.GitHubGitToken,
		},
		Options: migration.Options{
			WorkingDir: cfg.WorkingDir,
			Delay:      migrateConfig.Delay,
		},
	}

	logger.Info("Migration started...", "repositories", len(repos))
	if err := engine.Run(ctx, repos, overrides); err != nil {
		return fmt.Errorf("migration run interrupted: %w", err)
	}
	logger.Info("Migration completed")
	return nil
}
