package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/topasiaedu/nm-zwds-sub004/internal/config"
	"github.com/topasiaedu/nm-zwds-sub004/internal/errors"
	"github.com/topasiaedu/nm-zwds-sub004/internal/observability"
	"github.com/topasiaedu/nm-zwds-sub004/internal/ops"
	"github.com/topasiaedu/nm-zwds-sub004/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config, logger *zap.Logger) *cli.App {
	app := &cli.App{
		Name:    "ziwei",
		Usage:   "Zi Wei Dou Shu chart engine",
		Version: Version,
		Commands: []*cli.Command{
			chartCmd(cfg),
			flowCmd(cfg),
			lunarCmd(),
			serveCmd(cfg, logger),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// birthFlags are the flags shared by every command that casts a chart.
func birthFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Required: true, Usage: "Gregorian birth date, YYYY-MM-DD"},
		&cli.IntFlag{Name: "hour", Required: true, Usage: "Birth hour, 0-23"},
		&cli.IntFlag{Name: "minute", Usage: "Birth minute, 0-59"},
		&cli.StringFlag{Name: "gender", Aliases: []string{"g"}, Required: true, Usage: "male|female"},
		&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Display name"},
		&cli.StringFlag{Name: "leap-policy", Usage: "Leap month reading: split|current|next (defaults to config)"},
		&cli.IntFlag{Name: "horizon", Usage: "Age the Major Limits must reach (defaults to config)"},
	}
}

func birthInput(c *cli.Context) ops.BirthInput {
	return ops.BirthInput{
		Date:         c.String("date"),
		Hour:         c.Int("hour"),
		Minute:       c.Int("minute"),
		Gender:       c.String("gender"),
		Name:         c.String("name"),
		LeapPolicy:   c.String("leap-policy"),
		LimitHorizon: c.Int("horizon"),
	}
}

// chartCmd creates the chart command.
func chartCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "chart",
		Usage: "Compute a full chart",
		Flags: append(birthFlags(),
			&cli.IntFlag{Name: "flow-year", Aliases: []string{"y"}, Usage: "Attach the Annual Flow overlay of this year"},
		),
		Action: func(c *cli.Context) error {
			input := ops.ChartInput{
				BirthInput: birthInput(c),
				FlowYear:   c.Int("flow-year"),
			}

			output, err := ops.Chart(c.Context, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// flowCmd creates the flow command.
func flowCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "flow",
		Usage: "Find the palace ruling a year (Annual Flow)",
		Flags: append(birthFlags(),
			&cli.IntFlag{Name: "year", Aliases: []string{"y"}, Required: true, Usage: "Target year"},
		),
		Action: func(c *cli.Context) error {
			input := ops.FlowInput{
				BirthInput: birthInput(c),
				FlowYear:   c.Int("year"),
			}

			output, err := ops.AnnualFlow(c.Context, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// lunarCmd creates the lunar command.
func lunarCmd() *cli.Command {
	return &cli.Command{
		Name:      "lunar",
		Usage:     "Convert a Gregorian date to the lunar calendar",
		ArgsUsage: "[YYYY-MM-DD]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Gregorian date, YYYY-MM-DD"},
		},
		Action: func(c *cli.Context) error {
			date := c.String("date")
			if c.NArg() > 0 {
				date = c.Args().First()
			}
			if date == "" {
				return outputError(errors.NewInvalidInput("date", "is required"))
			}

			output, err := ops.Lunar(c.Context, ops.LunarInput{Date: date})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(cfg *config.Config, logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the HTTP API and help page",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Address to bind (defaults to config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port to listen on (defaults to config)"},
		},
		Action: func(c *cli.Context) error {
			serveCfg := *cfg
			if c.IsSet("bind") {
				serveCfg.HTTPBind = c.String("bind")
			}
			if c.IsSet("port") {
				serveCfg.HTTPPort = c.Int("port")
			}
			if err := serveCfg.Validate(); err != nil {
				return outputError(err)
			}

			srv, err := web.NewServer(&serveCfg, logger, observability.NewMetrics(), Version)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := web.Run(ctx, srv, logger); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if cErr, ok := errors.As(err); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", cErr.Code, cErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
