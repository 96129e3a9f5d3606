// Command swatext builds the _pyswat native extension module.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	swatext "github.com/contriboss/swat-extension-go"
)

func main() {
	app := &cli.App{
		Name:  "swatext",
		Usage: "build the _pyswat extension module wrapping the libswat analytics client",
		Commands: []*cli.Command{
			buildCommand(),
			checkToolsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "run the full extension build pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML build configuration file"},
			&cli.StringFlag{Name: "dest", Aliases: []string{"d"}, Usage: "directory to install the extension module into"},
			&cli.StringFlag{Name: "client-root", Usage: "libswat source dependency root"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "echo build output as it accumulates"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			log, err := newLogger(cfg.Verbose)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck // stderr sync failure is uninteresting
			cfg.Logger = log

			builder := swatext.NewExtensionBuilder(cfg)
			result, err := builder.Build(c.Context)

			if cfg.Verbose || err != nil {
				for _, line := range result.Output {
					fmt.Fprintln(os.Stderr, line)
				}
			}
			for _, diag := range result.Diagnostics {
				log.Warn("build diagnostic", zap.String("detail", diag))
			}
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			fmt.Println(result.ExtensionPath)
			return nil
		},
	}
}

func checkToolsCommand() *cli.Command {
	return &cli.Command{
		Name:  "check-tools",
		Usage: "verify the required toolchains are installed",
		Action: func(c *cli.Context) error {
			cfg := swatext.DefaultConfig()
			cfg.ApplyEnvironment()
			if err := swatext.CheckToolchains(c.Context, cfg); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			fmt.Println("all required toolchains found")
			return nil
		},
	}
}

func loadConfig(c *cli.Context) (*swatext.BuildConfig, error) {
	cfg := swatext.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := swatext.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnvironment()

	if dest := c.String("dest"); dest != "" {
		cfg.DestPath = dest
	}
	if root := c.String("client-root"); root != "" {
		cfg.ClientRoot = root
	}
	if c.Bool("verbose") {
		cfg.Verbose = true
	}

	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
