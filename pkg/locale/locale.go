// Package locale renders the localized month names used when birthdays are
// shown as "DD Month", and the titles of the exported birthday calendar.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator is immutable after New and safe for concurrent use.
type Translator struct {
	fallback   string
	supported  []language.Tag
	matcher    language.Matcher
	localizers map[string]*i18n.Localizer
}

// New loads every embedded locale file. defaultLang must be one of them.
func New(defaultLang string) (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("locale: read embedded files: %w", err)
	}

	t := &Translator{localizers: make(map[string]*i18n.Localizer)}
	for _, entry := range entries {
		name := entry.Name()
		code := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if code == "" || code == name {
			slog.Debug("Skipping locale file", "file", name)
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("locale: load %s: %w", name, err)
		}
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("locale: bad language code %q: %w", code, err)
		}
		t.supported = append(t.supported, tag)
		t.localizers[code] = i18n.NewLocalizer(bundle, code)
	}

	defaultLang = strings.ToLower(strings.TrimSpace(defaultLang))
	if _, ok := t.localizers[defaultLang]; !ok {
		return nil, fmt.Errorf("locale: default language %q is not available", defaultLang)
	}
	t.fallback = defaultLang

	// The matcher falls back to its first tag, so the default goes first.
	for i, tag := range t.supported {
		if base, _ := tag.Base(); base.String() == defaultLang {
			t.supported[0], t.supported[i] = t.supported[i], t.supported[0]
			break
		}
	}
	t.matcher = language.NewMatcher(t.supported)

	return t, nil
}

// Default returns the fallback language code.
func (t *Translator) Default() string {
	return t.fallback
}

// Resolve picks the best supported language for the given preferences,
// tried in order. Each preference may be a plain code ("ru") or a full
// Accept-Language header value.
func (t *Translator) Resolve(preferences ...string) string {
	for _, pref := range preferences {
		if strings.TrimSpace(pref) == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, confidence := t.matcher.Match(tags...)
		if confidence == language.No {
			continue
		}
		base, _ := t.supported[idx].Base()
		return base.String()
	}
	return t.fallback
}

// MonthName returns the month name in lang, using the genitive case where
// the language has one ("5 января").
func (t *Translator) MonthName(lang string, m time.Month) string {
	msg, err := t.localizer(lang).Localize(&i18n.LocalizeConfig{MessageID: "Month" + m.String()})
	if err != nil {
		slog.Debug("Missing month translation", "lang", lang, "month", m.String(), "error", err)
		return m.String()
	}
	return msg
}

// FormatDayMonth renders d as "DD Month", e.g. "05 January".
func (t *Translator) FormatDayMonth(lang string, d time.Time) string {
	return fmt.Sprintf("%02d %s", d.Day(), t.MonthName(lang, d.Month()))
}

func (t *Translator) localizer(lang string) *i18n.Localizer {
	if loc, ok := t.localizers[lang]; ok {
		return loc
	}
	return t.localizers[t.fallback]
}

// BirthdaySummary titles a calendar event for name's birthday.
func (t *Translator) BirthdaySummary(lang, name string) string {
	msg, err := t.localizer(lang).Localize(&i18n.LocalizeConfig{
		MessageID:    "BirthdaySummary",
		TemplateData: map[string]string{"Name": name},
	})
	if err != nil {
		return name + "'s birthday"
	}
	return msg
}

// CalendarName is the display name of the exported birthday calendar.
func (t *Translator) CalendarName(lang string) string {
	msg, err := t.localizer(lang).Localize(&i18n.LocalizeConfig{MessageID: "BirthdayCalendarName"})
	if err != nil {
		return "Birthdays"
	}
	return msg
}
