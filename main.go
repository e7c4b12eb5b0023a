package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/frebib/tautulli-status/collector"
	"github.com/frebib/tautulli-status/config"
	"github.com/frebib/tautulli-status/status"
	"github.com/frebib/tautulli-status/tautulli"
	"github.com/frebib/tautulli-status/version"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const License = `This is free and unencumbered software released into the public domain.

Anyone is free to copy, modify, publish, use, compile, sell, or
distribute this software, either in source code form or as a compiled
binary, for any purpose, commercial or non-commercial, and by any
means.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
OTHER DEALINGS IN THE SOFTWARE.

For more information, please refer to <https://unlicense.org/>
`

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(stdout io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "tautulli-status"
	app.Usage = "Show the streams currently playing on a Plex server, as seen by Tautulli"
	app.Version = version.Version
	app.Writer = stdout
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:   "debug, d",
			Usage:  "Print the raw response and parsed sessions",
			EnvVar: "TAUTULLI_STATUS_DEBUG",
		},
		cli.BoolFlag{
			Name:  "license, l",
			Usage: "Print the license and exit",
		},
		cli.StringFlag{
			Name:   "config, c",
			Usage:  "Path to a YAML config file (default: " + config.DefaultPath() + ")",
			EnvVar: "TAUTULLI_STATUS_CONFIG",
		},
		cli.StringFlag{
			Name:   "host",
			Usage:  "Tautulli host name or address",
			EnvVar: "TAUTULLI_HOST",
		},
		cli.IntFlag{
			Name:   "port",
			Usage:  fmt.Sprintf("Tautulli port (default: %d)", config.DefaultPort),
			EnvVar: "TAUTULLI_PORT",
		},
		cli.StringFlag{
			Name:   "api-key",
			Usage:  "Tautulli API key",
			EnvVar: "TAUTULLI_API_KEY",
		},
		cli.BoolFlag{
			Name:   "https",
			Usage:  "Connect to Tautulli over HTTPS",
			EnvVar: "TAUTULLI_HTTPS",
		},
		cli.BoolFlag{
			Name:   "insecure",
			Usage:  "Skip TLS certificate verification",
			EnvVar: "TAUTULLI_INSECURE",
		},
		cli.StringFlag{
			Name:   "base-path",
			Usage:  "HTTP root Tautulli is served under, e.g. /tautulli",
			EnvVar: "TAUTULLI_BASE_PATH",
		},
		cli.DurationFlag{
			Name:   "timeout",
			Usage:  fmt.Sprintf("Request timeout (default: %s)", config.DefaultTimeout),
			EnvVar: "TAUTULLI_TIMEOUT",
		},
		cli.StringFlag{
			Name:  "textfile",
			Usage: "Also write the sessions as Prometheus metrics to this file",
		},
		cli.IntFlag{
			Name:  "title-width",
			Usage: "Cut titles to this many characters (0 prints them whole)",
		},
	}
	app.Action = func(c *cli.Context) error {
		if c.Bool("license") {
			_, err := fmt.Fprint(stdout, License)
			return err
		}

		cfg, err := configFromContext(c)
		if err != nil {
			return cli.NewExitError(fmt.Sprintf("Invalid configuration: %s", err), 1)
		}

		logger := newLogger(cfg.Debug, stdout)
		err = run(context.Background(), cfg, logger, stdout)
		if tautulli.IsConnectivityError(err) {
			return cli.NewExitError(fmt.Sprintf("Could not get activity from Tautulli at %s: %s", cfg.Tautulli.BaseURL(), err), 1)
		}
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		return nil
	}
	return app
}

// configFromContext layers flags and environment over the config file.
func configFromContext(c *cli.Context) (config.Config, error) {
	path, required := c.String("config"), c.IsSet("config")
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return cfg, err
	}

	if c.IsSet("host") {
		cfg.Tautulli.Host = c.String("host")
	}
	if c.IsSet("port") {
		cfg.Tautulli.Port = c.Int("port")
	}
	if c.IsSet("api-key") {
		cfg.Tautulli.APIKey = c.String("api-key")
	}
	if c.IsSet("https") {
		cfg.Tautulli.HTTPS = c.Bool("https")
	}
	if c.IsSet("insecure") {
		cfg.Tautulli.Insecure = c.Bool("insecure")
	}
	if c.IsSet("base-path") {
		cfg.Tautulli.BasePath = c.String("base-path")
	}
	if c.IsSet("timeout") {
		cfg.Tautulli.Timeout = c.Duration("timeout")
	}
	if c.IsSet("textfile") {
		cfg.TextFile = c.String("textfile")
	}
	if c.IsSet("title-width") {
		cfg.TitleWidth = c.Int("title-width")
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

// newLogger logs warnings to stderr. In debug mode everything goes to
// stdout, interleaved with the table.
func newLogger(debug bool, stdout io.Writer) *log.Entry {
	l := log.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(log.WarnLevel)
	l.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if debug {
		l.SetOutput(stdout)
		l.SetLevel(log.DebugLevel)
	}
	return log.NewEntry(l)
}

func run(ctx context.Context, cfg config.Config, logger *log.Entry, w io.Writer) error {
	client := tautulli.NewTautulliClient(tautulli.NewServer(cfg.Tautulli), logger)

	activity, err := client.GetActivity(ctx)
	if err != nil {
		return err
	}

	if cfg.TextFile != "" {
		if err := collector.WriteTextfile(cfg.TextFile, activity, logger); err != nil {
			return fmt.Errorf("writing metrics to %s: %w", cfg.TextFile, err)
		}
	}

	table := status.NewTable(w)
	if activity.Idle() {
		return table.RenderIdle()
	}
	return table.Render(status.Build(activity.Sessions, cfg.TitleWidth))
}
