// Command astroconst looks up astronomical constants and label tables, either
// from the built-in catalog or from a running astroconst-server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/astroconst/catalog"
	"github.com/signalsfoundry/astroconst/internal/logging"
	"github.com/signalsfoundry/astroconst/registry"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	server   string
	timeout  time.Duration
	output   string
	logLevel string

	stderr io.Writer
	src    source
	close  func() error
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr}

	cmd := &cobra.Command{
		Use:           "astroconst",
		Short:         "Astronomical constants and label tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.close != nil {
				return a.close()
			}
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.server, "server", "", "read from an astroconst-server at host:port instead of the built-in catalog")
	flags.DurationVar(&a.timeout, "timeout", 5*time.Second, "deadline for each remote call")
	flags.StringVarP(&a.output, "output", "o", "text", "output format: text, json or yaml")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		a.getCmd(),
		a.labelCmd(),
		a.listCmd(),
		a.tablesCmd(),
		a.versionCmd(),
		a.dumpCmd(),
	)
	return cmd
}

func (a *app) open(ctx context.Context) error {
	switch a.output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", a.output)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	log := logging.New(logging.Config{Level: a.logLevel, Output: a.stderr})
	if a.server == "" {
		src, err := newLocalSource(ctx, log)
		if err != nil {
			return err
		}
		a.src = src
		return nil
	}

	client, closeFn, err := dialRemote(a.server)
	if err != nil {
		return err
	}
	a.src, a.close = client, closeFn
	return nil
}

func (a *app) callContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, _ = logging.EnsureRequestID(ctx)
	return context.WithTimeout(ctx, a.timeout)
}

func (a *app) getCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "get NAMESPACE.NAME",
		Short: "Print the value of a constant",
		Example: `  astroconst get almanac.epsilon_j2000
  astroconst get derived.eps0 --full -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := registry.ParseRef(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.callContext(cmd)
			defer cancel()

			c, err := a.src.Lookup(ctx, ref.Namespace, ref.Name)
			if err != nil {
				return err
			}
			if a.output != "text" {
				return a.encode(cmd.OutOrStdout(), newConstantRecord(c))
			}
			out := cmd.OutOrStdout()
			if !full {
				fmt.Fprintln(out, strings.TrimSpace(formatFloat(c.Value)+" "+c.Unit))
				return nil
			}
			return writeConstant(out, c)
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "print unit, provenance and inputs as well")
	return cmd
}

func (a *app) labelCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "label TABLE INDEX",
		Short:   "Print one entry of a label table",
		Example: "  astroconst label weekday_nl 1",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index %q is not an integer", args[1])
			}
			ctx, cancel := a.callContext(cmd)
			defer cancel()

			label, err := a.src.Label(ctx, args[0], index)
			if err != nil {
				return err
			}
			if a.output != "text" {
				return a.encode(cmd.OutOrStdout(), map[string]any{"table": args[0], "index": index, "label": label})
			}
			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list NAMESPACE",
		Short: "List the constants of a namespace in definition order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd)
			defer cancel()

			names, err := a.src.Names(ctx, args[0])
			if err != nil {
				return err
			}
			return a.writeList(cmd.OutOrStdout(), names)
		},
	}
}

func (a *app) tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the label tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd)
			defer cancel()

			tables, err := a.src.Tables(ctx)
			if err != nil {
				return err
			}
			return a.writeList(cmd.OutOrStdout(), tables)
		},
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the catalog content version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd)
			defer cancel()

			version, err := a.src.Version(ctx)
			if err != nil {
				return err
			}
			if a.output != "text" {
				return a.encode(cmd.OutOrStdout(), map[string]string{"version": version})
			}
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}

func (a *app) dumpCmd() *cobra.Command {
	var namespaces []string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write every constant with its metadata",
		Long: `Dump writes every constant of the selected namespaces, in definition
order, as YAML (the default for this command) or JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd)
			defer cancel()

			version, err := a.src.Version(ctx)
			if err != nil {
				return err
			}
			doc := dumpDocument{Version: version}
			for _, ns := range namespaces {
				names, err := a.src.Names(ctx, ns)
				if err != nil {
					return err
				}
				for _, name := range names {
					c, err := a.src.Lookup(ctx, ns, name)
					if err != nil {
						return err
					}
					doc.Constants = append(doc.Constants, newConstantRecord(c))
				}
			}

			format := a.output
			if format == "text" {
				format = "yaml"
			}
			return encode(cmd.OutOrStdout(), format, doc)
		},
	}
	cmd.Flags().StringSliceVar(&namespaces, "namespace",
		[]string{catalog.NamespaceBase, catalog.NamespaceAlmanac, catalog.NamespaceDerived},
		"namespaces to include")
	return cmd
}

type dumpDocument struct {
	Version   string           `json:"version" yaml:"version"`
	Constants []constantRecord `json:"constants" yaml:"constants"`
}

type constantRecord struct {
	Namespace   string   `json:"namespace" yaml:"namespace"`
	Name        string   `json:"name" yaml:"name"`
	Value       float64  `json:"value" yaml:"value"`
	Unit        string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Uncertainty float64  `json:"uncertainty,omitempty" yaml:"uncertainty,omitempty"`
	Citation    string   `json:"citation,omitempty" yaml:"citation,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Derived     bool     `json:"derived,omitempty" yaml:"derived,omitempty"`
	Inputs      []string `json:"inputs,omitempty" yaml:"inputs,omitempty"`
}

func newConstantRecord(c registry.Constant) constantRecord {
	rec := constantRecord{
		Namespace:   c.Namespace,
		Name:        c.Name,
		Value:       c.Value,
		Unit:        c.Unit,
		Uncertainty: c.Uncertainty,
		Citation:    c.Citation,
		Description: c.Description,
		Derived:     c.Derived,
	}
	for _, in := range c.Inputs {
		rec.Inputs = append(rec.Inputs, in.String())
	}
	return rec
}

func writeConstant(w io.Writer, c registry.Constant) error {
	lines := []string{
		fmt.Sprintf("%s = %s %s", c.Ref(), formatFloat(c.Value), c.Unit),
	}
	if c.Uncertainty != 0 {
		lines = append(lines, "  uncertainty: "+formatFloat(c.Uncertainty))
	}
	if c.Description != "" {
		lines = append(lines, "  description: "+c.Description)
	}
	if c.Citation != "" {
		lines = append(lines, "  citation:    "+c.Citation)
	}
	if c.Derived {
		inputs := make([]string, 0, len(c.Inputs))
		for _, in := range c.Inputs {
			inputs = append(inputs, in.String())
		}
		lines = append(lines, "  derived from: "+strings.Join(inputs, ", "))
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func (a *app) writeList(w io.Writer, items []string) error {
	if a.output != "text" {
		return a.encode(w, items)
	}
	for _, item := range items {
		if _, err := fmt.Fprintln(w, item); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) encode(w io.Writer, v any) error {
	return encode(w, a.output, v)
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// formatFloat prints the shortest decimal that round-trips to v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
