// Package narrate turns the keyed events emitted by combat into text. Combat
// never formats strings itself; it hands a Key and arguments to a Narrator,
// which renders them through a per-locale x/text catalog into a Sink.
package narrate

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other locale falls back to.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embeddedLocales embed.FS

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds the messages of every loaded locale.
type Catalog struct {
	builder *catalog.Builder
	locales map[string]map[string]string
}

// LoadCatalog reads every locales/<locale>/*.yaml file from fsys.
//
// Postcondition: Returns a catalog containing BaseLocale, or an error naming
// the offending file.
func LoadCatalog(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("narrate: glob locales: %w", err)
	}
	sort.Strings(paths)

	c := &Catalog{
		builder: catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale))),
		locales: make(map[string]map[string]string),
	}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("narrate: read %s: %w", p, err)
		}
		var f localeFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("narrate: parse %s: %w", p, err)
		}
		if err := c.add(p, f); err != nil {
			return nil, err
		}
	}
	if _, ok := c.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("narrate: base locale %s is not defined", BaseLocale)
	}
	return c, nil
}

// DefaultCatalog loads the embedded locales.
func DefaultCatalog() (*Catalog, error) { return LoadCatalog(embeddedLocales) }

func (c *Catalog) add(p string, f localeFile) error {
	locale := strings.TrimSpace(f.Locale)
	if dir := path.Base(path.Dir(p)); locale != dir {
		return fmt.Errorf("narrate: %s: locale %q must match directory %q", p, locale, dir)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("narrate: %s: %w", p, err)
	}
	msgs, ok := c.locales[locale]
	if !ok {
		msgs = make(map[string]string)
		c.locales[locale] = msgs
	}
	for key, text := range f.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("narrate: %s: blank message key", p)
		}
		if _, dup := msgs[key]; dup {
			return fmt.Errorf("narrate: %s: duplicate key %q", p, key)
		}
		msgs[key] = text
		if err := c.builder.SetString(tag, key, text); err != nil {
			return fmt.Errorf("narrate: %s: key %q: %w", p, key, err)
		}
	}
	return nil
}

// Has reports whether locale defines key.
func (c *Catalog) Has(locale string, key Key) bool {
	_, ok := c.locales[locale][string(key)]
	return ok
}

// Locales returns the loaded locale identifiers, sorted.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.locales))
	for l := range c.locales {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Narrator renders keyed messages for one locale into a Sink.
// It is not safe for concurrent use unless its Sink is.
type Narrator struct {
	cat     *Catalog
	locale  string
	printer *message.Printer
	base    *message.Printer
	sink    Sink
}

// NewNarrator creates a Narrator for locale. An empty locale means BaseLocale.
//
// Precondition: c and sink must be non-nil.
func NewNarrator(c *Catalog, locale string, sink Sink) (*Narrator, error) {
	if locale == "" {
		locale = BaseLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("narrate: locale %q: %w", locale, err)
	}
	return &Narrator{
		cat:     c,
		locale:  locale,
		printer: message.NewPrinter(tag, message.Catalog(c.builder)),
		base:    message.NewPrinter(language.MustParse(BaseLocale), message.Catalog(c.builder)),
		sink:    sink,
	}, nil
}

// Say renders key with args and writes the line to the sink. Keys missing
// from the narrator's locale render from BaseLocale.
func (n *Narrator) Say(key Key, args ...any) {
	p := n.printer
	if !n.cat.Has(n.locale, key) {
		p = n.base
	}
	n.sink.Write(p.Sprintf(string(key), args...))
}
