package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/0x0FACED/go-voronoi/pkg/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the server settings.
type Config struct {
	Addr     string
	Width    int
	Height   int
	Stations int
	Random   bool
	Seed     int64
	LogLevel string
}

var options = []struct {
	name, usage string
	defaultVal  interface{}
}{
	{
		name:       "config",
		usage:      "config is the path of an optional configuration file (toml, yaml or json).",
		defaultVal: "",
	},
	{
		name:       "addr",
		usage:      "addr is the address the HTTP server listens on.",
		defaultVal: ":8080",
	},
	{
		name:       "width",
		usage:      "width is the default width of the generated area.",
		defaultVal: 1000,
	},
	{
		name:       "height",
		usage:      "height is the default height of the generated area.",
		defaultVal: 1000,
	},
	{
		name:       "stations",
		usage:      "stations is the default number of generated stations.",
		defaultVal: 12,
	},
	{
		name:       "random",
		usage:      "random places stations at random instead of on a grid.",
		defaultVal: false,
	},
	{
		name:       "seed",
		usage:      "seed for random stations, 0 picks one from the clock.",
		defaultVal: int64(0),
	},
	{
		name:       "log-level",
		usage:      "log-level of the server log (debug, info, warn, error).",
		defaultVal: "info",
	},
}

func registerFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	for _, o := range options {
		switch d := o.defaultVal.(type) {
		case string:
			fs.String(o.name, d, o.usage)
		case int:
			fs.Int(o.name, d, o.usage)
		case int64:
			fs.Int64(o.name, d, o.usage)
		case bool:
			fs.Bool(o.name, d, o.usage)
		default:
			return errors.Errorf("option %s: unsupported default %T", o.name, d)
		}
	}
	return errors.Wrap(v.BindPFlags(fs), "bind flags")
}

// loadConfig resolves flags, VORONOI_* environment variables and the
// optional config file, in viper's usual precedence.
func loadConfig(v *viper.Viper) (Config, error) {
	v.SetEnvPrefix("VORONOI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	c := Config{
		Addr:     v.GetString("addr"),
		Width:    v.GetInt("width"),
		Height:   v.GetInt("height"),
		Stations: v.GetInt("stations"),
		Random:   v.GetBool("random"),
		Seed:     v.GetInt64("seed"),
		LogLevel: v.GetString("log-level"),
	}
	if c.Width <= 0 || c.Height <= 0 {
		return c, errors.Errorf("invalid area %dx%d", c.Width, c.Height)
	}
	if c.Stations < 1 {
		return c, errors.Errorf("invalid station count %d", c.Stations)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return c, errors.Wrap(err, "log-level")
	}
	return c, nil
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:   "voronoi-app",
		Short: "Serve an interactive Voronoi diagram and Delaunay triangulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
		SilenceUsage: true,
	}
	if err := registerFlags(root.Flags(), v); err != nil {
		panic(err)
	}
	return root
}

func serve(cfg Config) error {
	level, _ := zapcore.ParseLevel(cfg.LogLevel)
	log := logger.New(logger.WithLevel(level), logger.WithWriter(os.Stderr))
	defer log.Sync()
	// net/http и прочие пишут через стандартный log, заворачиваем его в zap
	defer zap.RedirectStdLog(log.Zap())()

	s := newServer(cfg, log)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(log.Zap()),
	}

	log.Info("[app] server started", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "listen")
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
