package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/agentic-research/uniface/internal/bundle"
	"github.com/agentic-research/uniface/internal/config"
	"github.com/agentic-research/uniface/internal/resource"
)

func newTextCmd() *cobra.Command {
	var (
		locale     string
		overlayDir string
		def        string
		params     map[string]string
		query      bool
	)
	cmd := &cobra.Command{
		Use:   "text [key]",
		Short: "Resolve a resource key for a locale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.LoadEnv()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("locale") {
				locale = env.Locale
			}
			if !cmd.Flags().Changed("overlay-dir") {
				overlayDir = env.OverlayDir
			}

			logger := log.New(cmd.ErrOrStderr(), "", 0)
			r, tag, err := loadResolver(logger, overlayDir, locale)
			if err != nil {
				return err
			}
			logger.Printf("text: locale %s", tag)

			out := cmd.OutOrStdout()
			key := args[0]
			if query {
				results, err := r.Query(key)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, oj.JSON(results, &oj.Options{Sort: true}))
				return nil
			}

			text := r.Text(key)
			if cmd.Flags().Changed("default") {
				text = r.TextDefault(key, def)
			}
			if len(params) > 0 {
				p := make(map[string]any, len(params))
				for k, v := range params {
					p[k] = v
				}
				text = resource.Interpolate(text, p)
			}
			fmt.Fprintln(out, text)
			return nil
		},
	}
	cmd.Flags().StringVarP(&locale, "locale", "l", "en-US", "Preferred locales, Accept-Language form")
	cmd.Flags().StringVar(&overlayDir, "overlay-dir", "", "Directory of locale bundles layered over the embedded ones")
	cmd.Flags().StringVar(&def, "default", "", "Text printed when the key does not resolve to a string")
	cmd.Flags().StringToStringVarP(&params, "param", "p", nil, "Placeholder values, name=value")
	cmd.Flags().BoolVar(&query, "query", false, "Treat key as a JSONPath selector and print matches as JSON")
	return cmd
}

// loadCatalog returns the embedded bundles with the bundles of overlayDir
// layered on top.
func loadCatalog(logger *log.Logger, overlayDir string) (*bundle.Catalog, error) {
	catalog, err := bundle.LoadEmbedded()
	if err != nil {
		return nil, err
	}
	if overlayDir == "" {
		return catalog, nil
	}
	overlay, err := bundle.LoadBilly(osfs.New(overlayDir), ".")
	if errors.Is(err, bundle.ErrNoBundles) {
		logger.Printf("bundle: no bundles in %s", overlayDir)
		return catalog, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load overlay bundles: %w", err)
	}
	catalog.Merge(overlay)
	return catalog, nil
}

// loadResolver builds a resolver from the compiled-in defaults with the
// best matching bundle applied.
func loadResolver(logger *log.Logger, overlayDir, locale string) (*resource.Resolver, language.Tag, error) {
	catalog, err := loadCatalog(logger, overlayDir)
	if err != nil {
		return nil, language.Und, err
	}
	r := resource.NewDefault()
	tag := catalog.Apply(r, locale)
	return r, tag, nil
}
