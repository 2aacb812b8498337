// Copyright (c) 2017 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package main

import (
	"fmt"
	"io"

	"github.com/codesaur-php/container"
	"github.com/codesaur-php/container/config"
	"github.com/codesaur-php/container/digbridge"
	"github.com/codesaur-php/container/event"
	"github.com/codesaur-php/container/metrics"
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/dig"
	"go.uber.org/multierr"
)

type options struct {
	configFile string
	envFiles   []string
	logger     string
	noColor    bool
	text       string
	metrics    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "containerdemo",
		Short: "Build a service container and resolve its services",
		Long: `containerdemo registers services in a container, either from a YAML
manifest or from its built-in Calculator/Printer/Welcome set, and then
resolves them.

Example:
  containerdemo run
  containerdemo run --text "hi there" --logger nop
  containerdemo run --metrics
  containerdemo list --config container.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Container manifest (YAML)")
	flags.StringSliceVar(&opts.envFiles, "env-file", nil, "Dotenv files consulted for CONTAINER_* overrides")
	flags.StringVar(&opts.logger, "logger", "", "Event logger: console, zap or nop")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(newRunCmd(opts), newListCmd(opts))
	return root
}

// build loads the manifest and applies it to a new container whose events
// go to stderr and to every logger in extra. Without a manifest the
// container also gets a BuildInfo service built by dig.
func build(opts *options, stderr io.Writer, extra ...event.Logger) (*container.Container, error) {
	loader := &config.Loader{EnvFiles: opts.envFiles}

	var paths []string
	if opts.configFile != "" {
		paths = append(paths, opts.configFile)
	}
	cfg, err := loader.Load(paths...)
	if err != nil {
		return nil, err
	}
	if opts.configFile == "" {
		defaultServices(cfg, opts.text)
	}
	if opts.logger != "" {
		cfg.Logger.Kind = opts.logger
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := cfg.Logger.NewLogger(stderr)
	if err != nil {
		return nil, err
	}
	log = event.Tee(append([]event.Logger{log}, extra...)...)
	c := container.New(container.WithRegistry(newRegistry()), container.WithLogger(log))
	if err := config.Apply(c, cfg); err != nil {
		return nil, err
	}
	if opts.configFile == "" {
		dc := dig.New()
		if err := dc.Provide(newBuildInfo); err != nil {
			return nil, err
		}
		if err := c.Set("BuildInfo", digbridge.Factory[*BuildInfo](dc)); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func newRunCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Resolve every service and show what it does",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				reg   *prometheus.Registry
				extra []event.Logger
			)
			if opts.metrics {
				reg = prometheus.NewRegistry()
				ml, err := metrics.NewLogger(reg)
				if err != nil {
					return err
				}
				extra = append(extra, ml)
			}

			c, err := build(opts, cmd.ErrOrStderr(), extra...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := multierr.Append(resolveAll(out, c), c.Close()); err != nil || reg == nil {
				return err
			}
			return writeMetrics(out, reg)
		},
	}
	cmd.Flags().StringVar(&opts.text, "text", "hello", "Text the built-in Printer is set with")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "Print container metrics in Prometheus text format after the run")
	return cmd
}

func resolveAll(w io.Writer, c *container.Container) error {
	label := color.New(color.FgCyan, color.Bold)
	for _, name := range c.Names() {
		inst, err := c.Get(name)
		if err != nil {
			return err
		}
		label.Fprintf(w, "%s: ", name)
		describe(w, inst)
	}
	return nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func describe(w io.Writer, inst interface{}) {
	switch v := inst.(type) {
	case *Calculator:
		fmt.Fprintf(w, "%d + %d = %d\n", 16, 7, v.Sum(16, 7))
	case *Printer:
		v.Print(w)
	case Greeter:
		fmt.Fprintln(w, v.Greet())
	case fmt.Stringer:
		fmt.Fprintln(w, v.String())
	default:
		fmt.Fprintf(w, "%T\n", v)
	}
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the services the manifest registers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := build(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			bold := color.New(color.Bold)
			for _, name := range c.Names() {
				bold.Fprint(out, name)
				if cls, ok := c.Registry().Class(name); ok {
					fmt.Fprintf(out, "\t%v", cls)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
