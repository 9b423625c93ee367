package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/knadh/koanf/maps"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/kbukum/confload/appenv"
	"github.com/kbukum/confload/config"
	"github.com/kbukum/confload/logger"
	"github.com/kbukum/confload/version"
)

// App builds the confload command tree.
func App() *cli.App {
	return &cli.App{
		Name:    "confload",
		Usage:   "Inspect layered application configuration",
		Version: version.Get().String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (trace, debug, info, warn, error)",
				Value:   "warn",
				EnvVars: []string{"CONFLOAD_LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Init(logger.Config{Level: c.String("log-level"), Format: "console", Output: "stderr"})
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Print the merged configuration of a part",
				ArgsUsage: "PART",
				Flags: append(loaderFlags(),
					&cli.StringSliceFlag{
						Name:  "set",
						Usage: "Override a key (dotted path) with a YAML value, e.g. db.port=5433",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output encoding: yaml or json",
						Value:   "yaml",
					},
				),
				Action: showAction,
			},
			{
				Name:      "files",
				Usage:     "List the files that would be merged for a part",
				ArgsUsage: "PART",
				Flags:     loaderFlags(),
				Action:    filesAction,
			},
			{
				Name:      "env",
				Usage:     "Print an environment variable",
				ArgsUsage: "NAME",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "default", Usage: "Value printed when the variable is not set"},
					&cli.BoolFlag{Name: "required", Usage: "Fail when the variable is not set"},
				},
				Action: envAction,
			},
		},
	}
}

func loaderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Usage:   "Configuration directory",
			Value:   "config",
			EnvVars: []string{"CONFLOAD_DIR"},
		},
		&cli.StringFlag{
			Name:    "format",
			Usage:   "Config file format: yaml or json",
			Value:   "yaml",
			EnvVars: []string{"CONFLOAD_FORMAT"},
		},
		&cli.StringSliceFlag{
			Name:  "common",
			Usage: "Extra common file names loaded after main",
		},
		&cli.BoolFlag{
			Name:  "local",
			Usage: "Include local_* overrides (default: ENABLE_LOCALCONF)",
		},
		&cli.BoolFlag{
			Name:  "no-env",
			Usage: "Skip .env loading and environment bootstrap",
		},
		&cli.StringFlag{
			Name:  "lists",
			Usage: "List merge policy: append or replace",
			Value: "append",
		},
		&cli.StringFlag{
			Name:  "env-overlay",
			Usage: "Merge environment variables with this prefix over the files",
		},
	}
}

func newLoader(c *cli.Context) (*config.Loader, error) {
	format, err := config.ParseFormat(c.String("format"))
	if err != nil {
		return nil, err
	}
	policy, err := config.ParseListPolicy(c.String("lists"))
	if err != nil {
		return nil, err
	}

	opts := []config.LoaderOption{
		config.WithFormat(format),
		config.WithListPolicy(policy),
		config.WithCommonFiles(c.StringSlice("common")...),
	}
	if c.IsSet("local") {
		opts = append(opts, config.WithLocalOverrides(c.Bool("local")))
	}
	if c.Bool("no-env") {
		opts = append(opts, config.WithoutEnvBootstrap())
	}
	if prefix := c.String("env-overlay"); prefix != "" {
		opts = append(opts, config.WithEnvOverlay(prefix))
	}
	return config.New(c.String("dir"), opts...), nil
}

func partArg(c *cli.Context) (string, error) {
	part := c.Args().First()
	if part == "" {
		return "", fmt.Errorf("%s: missing PART argument", c.Command.Name)
	}
	return part, nil
}

func showAction(c *cli.Context) error {
	part, err := partArg(c)
	if err != nil {
		return err
	}
	extra, err := parseOverrides(c.StringSlice("set"))
	if err != nil {
		return err
	}
	loader, err := newLoader(c)
	if err != nil {
		return err
	}

	merged, err := loader.LoadConfig(part, extra)
	if err != nil {
		return err
	}
	return writeMapping(c, merged, c.String("output"))
}

func filesAction(c *cli.Context) error {
	part, err := partArg(c)
	if err != nil {
		return err
	}
	loader, err := newLoader(c)
	if err != nil {
		return err
	}

	files, err := loader.Files(part)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintln(c.App.Writer, f)
	}
	return nil
}

func envAction(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("env: missing NAME argument")
	}
	v, err := appenv.Env(name, c.String("default"), c.Bool("required"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, v)
	return nil
}

// parseOverrides turns key=value pairs into a nested mapping. Values are
// decoded as YAML so numbers, booleans and lists keep their type.
func parseOverrides(pairs []string) (config.Mapping, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	flat := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q, expected key=value", pair)
		}
		var value any = raw
		if raw != "" {
			var decoded any
			if err := yaml.Unmarshal([]byte(raw), &decoded); err == nil {
				value = decoded
			}
		}
		flat[key] = value
	}
	return maps.Unflatten(flat, "."), nil
}

func writeMapping(c *cli.Context, m config.Mapping, output string) error {
	switch strings.ToLower(output) {
	case "json":
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case "yaml", "yml", "":
		enc := yaml.NewEncoder(c.App.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output %q", output)
	}
}
