package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chrisuehlinger/htmlkit/component"
	"github.com/chrisuehlinger/htmlkit/config"
)

type queryOptions struct {
	source   string
	selector string
	output   string
}

// match is the printed form of one matched element.
type match struct {
	Tag     string            `yaml:"tag"`
	ID      string            `yaml:"id,omitempty"`
	Classes string            `yaml:"classes,omitempty"`
	Binding string            `yaml:"binding"`
	Value   any               `yaml:"value"`
	Attrs   map[string]string `yaml:"attrs,omitempty"`
}

func newQueryCmd(cfg *config.Config) *cobra.Command {
	opts := &queryOptions{}
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the elements of a page matching a selector with their bound values.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case "text", "yaml":
			default:
				return fmt.Errorf("--output must be text or yaml, got %q", opts.output)
			}
			return runQuery(cmd.Context(), cmd.OutOrStdout(), cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.source, "source", "", "page to query: a path or a file, http(s) or data URL")
	flags.StringVar(&opts.selector, "select", "*", "CSS selector")
	flags.StringVarP(&opts.output, "output", "o", "text", "output format: text or yaml")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}

func runQuery(ctx context.Context, out io.Writer, cfg *config.Config, opts *queryOptions) error {
	loader, err := newLoader(cfg)
	if err != nil {
		return err
	}
	doc, err := loader.LoadDocument(ctx, opts.source)
	if err != nil {
		return err
	}

	var matches []match
	for _, e := range component.GetBySelectorAll(doc, opts.selector) {
		matches = append(matches, match{
			Tag:     e.TagName(),
			ID:      e.ID(),
			Classes: e.Classes(),
			Binding: e.Binding().String(),
			Value:   e.Value(),
			Attrs:   e.Attrs(),
		})
	}

	if opts.output == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(matches); err != nil {
			return fmt.Errorf("encode matches: %w", err)
		}
		return enc.Close()
	}

	for _, m := range matches {
		label := strings.ToLower(m.Tag)
		if m.ID != "" {
			label += "#" + m.ID
		}
		if m.Classes != "" {
			label += "." + strings.Join(strings.Fields(m.Classes), ".")
		}
		if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", label, m.Binding, valueText(m.Value)); err != nil {
			return err
		}
	}
	return nil
}

func valueText(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		return fmt.Sprintf("%q", x)
	}
	return fmt.Sprint(v)
}
