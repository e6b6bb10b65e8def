package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/meikuraledutech/postgen"
	"github.com/meikuraledutech/postgen/gemini"
	"github.com/meikuraledutech/postgen/postgres"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var Version = "0.1.0"

var errNoDatabase = errors.New("DATABASE_URL not set")

// app carries the state shared by all commands of one invocation.
type app struct {
	output  string
	debug   bool
	envFile string

	cfg    postgen.AppConfig
	logger *zap.Logger
	pool   *pgxpool.Pool
	store  *postgres.PGStore
	out    io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "postgen",
		Short: "Generate social media posts for an avatar",
		Long: `postgen turns an avatar (name, niche, base style) and a topic into a caption,
hashtags, an image prompt and an image using the Gemini API.

CONFIGURATION:
  Environment variables (a .env file in the working directory is loaded first):
    GEMINI_API_KEY    Provider API key (falls back to the stored setting of the same name)
    GEMINI_BASE_URL   API root (default: https://generativelanguage.googleapis.com/v1beta)
    TEXT_MODEL_ID     Text model (default: gemini-2.0-flash)
    IMAGE_MODEL_ID    Image model (default: imagen-3.0-generate-002)
    MAX_TOKENS        Output token limit for text calls (default: 1024)
    DATABASE_URL      PostgreSQL URL for avatars and settings (optional)

EXAMPLES:
  postgen caption --name Ana --niche fitness "morning routine"
  postgen hashtags --niche fitness --count 15 "morning routine"
  postgen avatar add --name Ana --niche fitness --style "energetic, upbeat"
  postgen post --avatar <id> --image --out post.png "morning routine"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load %s: %w", a.envFile, err)
			}

			logger, err := newLogger(a.debug)
			if err != nil {
				return err
			}
			a.logger = logger
			a.cfg = postgen.LoadConfig()
			a.out = cmd.OutOrStdout()

			if err := validateOutput(a.output); err != nil {
				return err
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVarP(&a.output, "output", "o", "text", "Output format (text|json|yaml)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Verbose logging")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Environment file to load")

	root.AddCommand(
		newVersionCmd(),
		newCaptionCmd(a),
		newHashtagsCmd(a),
		newImagePromptCmd(a),
		newImageCmd(a),
		newPostCmd(a),
		newAvatarCmd(a),
		newSettingsCmd(a),
		newMigrateCmd(a),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "postgen version %s\n", Version)
		},
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// openStore connects to DATABASE_URL once per invocation.
func (a *app) openStore(ctx context.Context) (*postgres.PGStore, error) {
	if a.store != nil {
		return a.store, nil
	}
	if a.cfg.DatabaseURL == "" {
		return nil, errNoDatabase
	}

	pool, err := pgxpool.New(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	a.pool = pool
	a.store = postgres.New(pool)
	a.logger.Debug("database connected")
	return a.store, nil
}

// configProvider layers environment variables over stored settings.
// Stored settings are only consulted when a database is configured.
func (a *app) configProvider(ctx context.Context) postgen.ConfigProvider {
	chain := postgen.ConfigChain{postgen.EnvConfig{}}
	if a.cfg.DatabaseURL == "" {
		return chain
	}

	store, err := a.openStore(ctx)
	if err != nil {
		a.logger.Warn("stored settings unavailable", zap.Error(err))
		return chain
	}
	settings, err := store.LoadSettings(ctx)
	if err != nil {
		a.logger.Warn("stored settings unavailable", zap.Error(err))
		return chain
	}
	return append(chain, settings)
}

func (a *app) client(ctx context.Context) *gemini.Client {
	return gemini.New(a.configProvider(ctx)).
		WithBaseURL(a.cfg.BaseURL).
		WithModels(a.cfg.TextModel, a.cfg.ImageModel)
}

func (a *app) engine(ctx context.Context) (*postgen.Engine, *gemini.Client) {
	c := a.client(ctx)
	return postgen.NewEngine(c).WithMaxTokens(a.cfg.MaxTokens), c
}

func (a *app) close() {
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
		a.store = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
