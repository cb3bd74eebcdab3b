package bundle

import (
	"testing"
	"testing/fstest"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/agentic-research/uniface/internal/resource"
)

func TestLoadEmbedded_HasExpectedLocales(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)
	assert.Equal(t, []string{"en-US", "fr-FR", "zh-CN"}, c.Locales())
	assert.True(t, c.HasLocale("en-US"))
	assert.True(t, c.HasLocale(" zh-CN "))
	assert.False(t, c.HasLocale("de-DE"))
	assert.False(t, c.HasLocale("not a tag"))
}

func TestEmbeddedBaseMatchesCompiledDefaults(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	tree, ok := c.Tree(BaseLocale)
	require.True(t, ok)
	assert.Equal(t, resource.Defaults(), tree, "regenerate internal/resource/defaults.go with uniface bundle gen")
}

func TestEmbeddedLocalesOnlyUseKnownKeys(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)
	base := resource.New(resource.Defaults())

	for _, locale := range c.Locales() {
		tree, _ := c.Tree(locale)
		for _, key := range leafKeys(tree, "") {
			_, ok := base.Get(key)
			assert.True(t, ok, "%s: key %s has no English default", locale, key)
		}
	}
}

func TestMatch(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	cases := []struct {
		name      string
		preferred []string
		want      string
		month     string
	}{
		{"exact", []string{"zh-CN"}, "zh-CN", "一月"},
		{"language only", []string{"fr"}, "fr-FR", "Janvier"},
		{"accept-language", []string{"de-DE,fr-CA;q=0.8"}, "fr-FR", "Janvier"},
		{"no match falls back", []string{"de-DE"}, "en-US", "January"},
		{"invalid entries skipped", []string{"!!", "zh"}, "zh-CN", "一月"},
		{"no preference", nil, "en-US", "January"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tag, tree := c.Match(tc.preferred...)
			assert.Equal(t, tc.want, tag.String())
			r := resource.New(tree)
			assert.Equal(t, tc.month, r.Text("uniface.calendar.months.0"))
		})
	}
}

func TestApply_LayersOntoDefaults(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	r := resource.NewDefault()
	tag := c.Apply(r, "fr-FR")
	assert.Equal(t, language.MustParse("fr-FR"), tag)

	assert.Equal(t, "Fermer", r.Text("uniface.btnClose"))
	assert.Equal(t, "Fév", r.Text("uniface.calendar.monthsAbbr.1"))
	// not in the French bundle
	assert.Equal(t, "Pick up color", r.Text("uniface.colorPicker"))
}

func TestLoadFS_FormatsAndMerging(t *testing.T) {
	fsys := fstest.MapFS{
		"bundles/en-US.yaml": {Data: []byte("uniface:\n  btnClose: Close\n  calendar:\n    months: [January, February]\n")},
		"bundles/en-US.yml":  {Data: []byte("uniface:\n  btnClose: Dismiss\n")},
		"bundles/es.json":    {Data: []byte(`{"uniface": {"btnClose": "Cerrar", "limit": 3}}`)},
		"bundles/README.md":  {Data: []byte("ignored")},
		"bundles/nested/x":   {Data: []byte("ignored")},
	}

	c, err := LoadFS(fsys, "bundles")
	require.NoError(t, err)
	assert.Equal(t, []string{"en-US", "es"}, c.Locales())

	en, ok := c.Tree("en-US")
	require.True(t, ok)
	r := resource.New(en)
	assert.Equal(t, "Dismiss", r.Text("uniface.btnClose"), "later files win")
	assert.Equal(t, "February", r.Text("uniface.calendar.months.1"))

	es, ok := c.Tree("es")
	require.True(t, ok)
	assert.Equal(t, "Cerrar", resource.New(es).Text("uniface.btnClose"))
}

func TestLoadFS_Errors(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{"b/notes.txt": {Data: []byte("x")}}, "b")
	assert.ErrorIs(t, err, ErrNoBundles)

	_, err = LoadFS(fstest.MapFS{"b/not_a_tag!.yaml": {Data: []byte("a: b\n")}}, "b")
	assert.ErrorContains(t, err, "parse locale tag")

	_, err = LoadFS(fstest.MapFS{"b/en.yaml": {Data: []byte("- a\n- b\n")}}, "b")
	assert.Error(t, err)

	_, err = LoadFS(fstest.MapFS{"b/en.json": {Data: []byte(`["a"]`)}}, "b")
	assert.ErrorContains(t, err, "mapping")

	_, err = LoadFS(fstest.MapFS{}, "missing")
	assert.Error(t, err)
}

func TestLoadBilly_HCL(t *testing.T) {
	bfs := memfs.New()
	require.NoError(t, util.WriteFile(bfs, "overlays/fr-FR.hcl", []byte(`
uniface {
  btnClose = "Quitter"
  calendar {
    weekTitleAbbr = ["D", "L", "M", "M", "J", "V", "S"]
  }
  dataTable "paging" {
    size = 20
    ratio = 0.5
    enabled = true
  }
}
`), 0o644))
	require.NoError(t, util.WriteFile(bfs, "overlays/zh-CN.yaml", []byte("uniface:\n  btnClose: 关\n"), 0o644))

	c, err := LoadBilly(bfs, "overlays")
	require.NoError(t, err)
	assert.Equal(t, []string{"fr-FR", "zh-CN"}, c.Locales())

	fr, ok := c.Tree("fr-FR")
	require.True(t, ok)
	r := resource.New(fr)
	assert.Equal(t, "Quitter", r.Text("uniface.btnClose"))
	assert.Equal(t, "L", r.Text("uniface.calendar.weekTitleAbbr.1"))

	size, ok := r.Get("uniface.dataTable.paging.size")
	require.True(t, ok)
	assert.Equal(t, 20, size)
	ratio, _ := r.Get("uniface.dataTable.paging.ratio")
	assert.Equal(t, 0.5, ratio)
	enabled, _ := r.Get("uniface.dataTable.paging.enabled")
	assert.Equal(t, true, enabled)
}

func TestLoadBilly_InvalidHCL(t *testing.T) {
	bfs := memfs.New()
	require.NoError(t, util.WriteFile(bfs, "o/en.hcl", []byte("uniface {"), 0o644))
	_, err := LoadBilly(bfs, "o")
	assert.ErrorContains(t, err, "decode hcl")
}

func TestCatalogMerge(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)

	overlay := NewCatalog()
	require.NoError(t, overlay.Add("fr-FR.yaml", []byte("uniface:\n  btnClose: Quitter\n")))
	require.NoError(t, overlay.Add("de-DE.yaml", []byte("uniface:\n  btnClose: Schließen\n")))
	c.Merge(overlay)

	assert.True(t, c.HasLocale("de-DE"))
	fr, _ := c.Tree("fr-FR")
	r := resource.New(fr)
	assert.Equal(t, "Quitter", r.Text("uniface.btnClose"))
	assert.Equal(t, "Annuler", r.Text("uniface.btnCancel"))
}

func TestMatch_EmptyCatalog(t *testing.T) {
	tag, tree := NewCatalog().Match("fr")
	assert.Equal(t, BaseLocale, tag.String())
	assert.Nil(t, tree)
}

func leafKeys(tree any, prefix string) []string {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}
	m, ok := tree.(map[string]any)
	if !ok {
		return []string{prefix}
	}
	var out []string
	for k, v := range m {
		out = append(out, leafKeys(v, join(k))...)
	}
	return out
}
