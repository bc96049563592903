// Package i18n loads the embedded label translations.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-lunarcal/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Catalog is the set of loaded locales.
type Catalog struct {
	bundle    *i18n.Bundle
	languages []string
}

// Load reads every locales/active.<lang>.json file.
func Load() (*Catalog, error) {
	bundle := i18n.NewBundle(language.Chinese)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	c := &Catalog{bundle: bundle}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		c.languages = append(c.languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}
	return c, nil
}

// Languages lists the loaded language codes.
func (c *Catalog) Languages() []string {
	return slices.Clone(c.languages)
}

// Translator returns a translator for lang. Unknown or malformed tags fall
// back to config.DefaultLanguage.
func (c *Catalog) Translator(lang string) *Translator {
	tag, err := language.Parse(lang)
	if err != nil || !slices.Contains(c.languages, baseOf(tag)) {
		slog.Debug(config.MsgLangFallback,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang,
		)
		tag = language.MustParse(config.DefaultLanguage)
	}
	return &Translator{
		lang:      baseOf(tag),
		localizer: i18n.NewLocalizer(c.bundle, tag.String()),
	}
}

func baseOf(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// Translator renders messages in one language.
type Translator struct {
	lang      string
	localizer *i18n.Localizer
}

// Lang is the ISO 639-1 code in use.
func (t *Translator) Lang() string {
	if t == nil {
		return config.DefaultLanguage
	}
	return t.lang
}

// Msg translates key with optional template data. Missing keys render as the key itself.
func (t *Translator) Msg(key string, data map[string]any) string {
	if t == nil || t.localizer == nil {
		return key
	}
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
