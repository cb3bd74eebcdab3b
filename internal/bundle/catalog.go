// Package bundle loads locale resource bundles and picks the one that best
// matches a user's language preferences.
//
// A bundle is a file named after its BCP 47 tag (en-US.yaml, zh-CN.json,
// fr-FR.hcl) holding a resource tree. Bundles for the same tag merge in
// lexical file order.
package bundle

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"golang.org/x/text/language"

	"github.com/agentic-research/uniface/internal/resource"
)

// BaseLocale is the locale every catalog falls back to.
const BaseLocale = "en-US"

// ErrNoBundles is returned when a directory holds no loadable bundle.
var ErrNoBundles = errors.New("no bundle files found")

//go:embed locales/*.yaml
var embedded embed.FS

// Catalog holds one resource tree per locale.
type Catalog struct {
	trees map[string]map[string]any
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{trees: map[string]map[string]any{}}
}

// LoadEmbedded loads the bundles compiled into this package.
func LoadEmbedded() (*Catalog, error) {
	c, err := LoadFS(embedded, "locales")
	if err != nil {
		return nil, err
	}
	if !c.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in bundles", BaseLocale)
	}
	return c, nil
}

// LoadFS loads every bundle file directly inside dir.
func LoadFS(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read bundle dir %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && supported(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return load(names, func(name string) ([]byte, error) {
		return fs.ReadFile(fsys, path.Join(dir, name))
	})
}

// LoadBilly loads every bundle file directly inside dir of a billy
// filesystem, such as an osfs overlay directory or an in-memory memfs.
func LoadBilly(bfs billy.Filesystem, dir string) (*Catalog, error) {
	infos, err := bfs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read bundle dir %s: %w", dir, err)
	}
	var names []string
	for _, fi := range infos {
		if !fi.IsDir() && supported(fi.Name()) {
			names = append(names, fi.Name())
		}
	}
	return load(names, func(name string) ([]byte, error) {
		f, err := bfs.Open(bfs.Join(dir, name))
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		return io.ReadAll(f)
	})
}

func load(names []string, read func(string) ([]byte, error)) (*Catalog, error) {
	if len(names) == 0 {
		return nil, ErrNoBundles
	}
	slices.Sort(names)

	c := NewCatalog()
	for _, name := range names {
		data, err := read(name)
		if err != nil {
			return nil, fmt.Errorf("read bundle %s: %w", name, err)
		}
		if err := c.Add(name, data); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add decodes one bundle file and merges it into the catalog. The file
// extension picks the decoder and the stem names the locale.
func (c *Catalog) Add(name string, data []byte) error {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(path.Base(name), ext)
	tag, err := language.Parse(stem)
	if err != nil {
		return fmt.Errorf("bundle %s: parse locale tag %q: %w", name, stem, err)
	}
	tree, err := Decode(name, data)
	if err != nil {
		return fmt.Errorf("bundle %s: %w", name, err)
	}
	c.set(tag.String(), tree)
	return nil
}

// Merge layers every bundle of other onto c, locale by locale.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	for _, locale := range other.Locales() {
		c.set(locale, other.trees[locale])
	}
}

func (c *Catalog) set(locale string, tree map[string]any) {
	merged, _ := resource.Merge(c.trees[locale], tree).(map[string]any)
	if merged == nil {
		merged = map[string]any{}
	}
	c.trees[locale] = merged
}

// HasLocale reports whether a bundle exists for locale.
func (c *Catalog) HasLocale(locale string) bool {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return false
	}
	_, ok := c.trees[tag.String()]
	return ok
}

// Locales returns the catalog's locales in sorted order.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.trees))
	for locale := range c.trees {
		out = append(out, locale)
	}
	slices.Sort(out)
	return out
}

// Tree returns a copy of the bundle for locale.
func (c *Catalog) Tree(locale string) (map[string]any, bool) {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return nil, false
	}
	tree, ok := c.trees[tag.String()]
	if !ok {
		return nil, false
	}
	out, _ := resource.Normalize(tree).(map[string]any)
	return out, true
}

// Match picks the bundle closest to the preferred locales, in order of
// preference. Entries may be plain tags or Accept-Language values. When
// nothing matches, the base locale is used if the catalog has it.
func (c *Catalog) Match(preferred ...string) (language.Tag, map[string]any) {
	locales := c.supported()
	if len(locales) == 0 {
		return language.MustParse(BaseLocale), nil
	}
	tags := make([]language.Tag, len(locales))
	for i, l := range locales {
		tags[i] = language.MustParse(l)
	}

	var want []language.Tag
	for _, p := range preferred {
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		want = append(want, parsed...)
	}

	_, idx, _ := language.NewMatcher(tags).Match(want...)
	tree, _ := c.Tree(locales[idx])
	return tags[idx], tree
}

// Apply overlays the best matching bundle onto r and returns its locale.
func (c *Catalog) Apply(r *resource.Resolver, preferred ...string) language.Tag {
	tag, tree := c.Match(preferred...)
	if tree != nil {
		r.SetResource(tree)
	}
	return tag
}

// supported lists locales with the base locale first, which makes it the
// matcher's fallback.
func (c *Catalog) supported() []string {
	locales := c.Locales()
	base := language.MustParse(BaseLocale).String()
	if i := slices.Index(locales, base); i > 0 {
		locales = append([]string{base}, slices.Delete(locales, i, i+1)...)
	}
	return locales
}
