package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/htmlkit/component"
	"github.com/chrisuehlinger/htmlkit/config"
	"github.com/chrisuehlinger/htmlkit/dom"
	"github.com/chrisuehlinger/htmlkit/js"
	"github.com/chrisuehlinger/htmlkit/logging"
	"github.com/chrisuehlinger/htmlkit/network"
	"github.com/chrisuehlinger/htmlkit/render"
)

type buildOptions struct {
	descriptors []string
	base        string
	scripts     []string
	into        string
	selector    string
	pretty      bool
	settle      time.Duration
}

func newBuildCmd(cfg *config.Config) *cobra.Command {
	opts := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a document from descriptor files and scripts and print its HTML.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.descriptors) == 0 && len(opts.scripts) == 0 && opts.base == "" {
				return fmt.Errorf("nothing to build: pass --descriptors, --script or --base")
			}
			return runBuild(cmd.Context(), cmd.OutOrStdout(), cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.descriptors, "descriptors", "d", nil, "YAML descriptor files to build, in order")
	flags.StringVarP(&opts.base, "base", "b", "", "HTML page to build into (default is an empty document)")
	flags.StringSliceVarP(&opts.scripts, "script", "s", nil, "scripts to run after the descriptors are built")
	flags.StringVar(&opts.into, "into", "body", "selector of the element descriptors are appended to")
	flags.StringVar(&opts.selector, "select", "", "print only the elements matching this selector")
	flags.BoolVar(&opts.pretty, "pretty", false, "indent the output (overrides render.pretty)")
	flags.DurationVar(&opts.settle, "settle", time.Second, "how long to wait for pending script timers")
	return cmd
}

func runBuild(ctx context.Context, out io.Writer, cfg *config.Config, opts *buildOptions) error {
	log := logging.L().Named("build")
	loader, err := newLoader(cfg)
	if err != nil {
		return err
	}

	// Command line paths resolve against the working directory, so load
	// them before the base page moves the loader base.
	var descriptors []component.Descriptor
	for _, ref := range opts.descriptors {
		ds, err := loader.LoadDescriptors(ctx, ref)
		if err != nil {
			return err
		}
		descriptors = append(descriptors, ds...)
	}
	var userScripts []*network.Resource
	for _, ref := range opts.scripts {
		res, err := loader.Load(ctx, ref)
		if err != nil {
			return err
		}
		userScripts = append(userScripts, res)
	}

	doc := dom.NewHTMLDocument()
	if opts.base != "" {
		if doc, err = loader.LoadDocument(ctx, opts.base); err != nil {
			return err
		}
	}

	rt := js.NewRuntime(doc)
	if opts.base != "" {
		pageScripts, err := loader.LoadScripts(ctx, doc)
		if err != nil {
			log.Warn("Some page scripts failed to load.", zap.Error(err))
		}
		for _, s := range pageScripts {
			_ = rt.ExecuteScript(s.Content, s.URL)
		}
		_ = rt.RunInlineScripts()
	}

	if len(descriptors) > 0 {
		parent := component.GetBySelector(doc, opts.into)
		if parent == nil {
			return fmt.Errorf("no element matches --into %q", opts.into)
		}
		built := component.Build(doc, parent, descriptors)
		log.Debug("Built elements.", zap.Int("count", len(built)), zap.String("into", opts.into))
	}

	for _, res := range userScripts {
		_ = rt.ExecuteScript(res.String(), res.URL)
	}

	settleCtx, cancel := context.WithTimeout(ctx, opts.settle)
	defer cancel()
	if err := rt.Settle(settleCtx); err != nil {
		log.Warn("Timers still pending after settle timeout.", zap.Duration("settle", opts.settle))
	}
	if errs := rt.Errors(); len(errs) > 0 {
		log.Warn("Scripts reported errors.", zap.Int("count", len(errs)))
	}

	return printDocument(out, doc, opts.selector, render.Options{Pretty: opts.pretty || cfg.Render.Pretty})
}

// printDocument writes the whole document, or each element matching
// selector when one is given.
func printDocument(out io.Writer, doc *dom.Document, selector string, ro render.Options) error {
	if selector == "" {
		if err := render.Write(out, doc.AsNode(), ro); err != nil {
			return err
		}
		if !ro.Pretty {
			_, err := io.WriteString(out, "\n")
			return err
		}
		return nil
	}

	for _, e := range component.GetBySelectorAll(doc, selector) {
		if err := render.Write(out, e.AsNode(), ro); err != nil {
			return err
		}
		if !ro.Pretty {
			if _, err := io.WriteString(out, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}
