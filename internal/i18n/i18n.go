// Package i18n translates admin labels. Keys follow the
// "<Component>.<Entity>" convention, e.g. "TicketExtension.Tickets".
package i18n

import (
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var (
	mu      sync.RWMutex
	cat     = catalog.NewBuilder(catalog.Fallback(language.English))
	printer = message.NewPrinter(language.English, message.Catalog(cat))
)

var dutch = map[string]string{
	"TicketExtension.Tickets":        "Tickets",
	"TicketExtension.Capacity":       "Capaciteit",
	"TicketExtension.OrderMin":       "Minimum aantal tickets per reservering",
	"TicketExtension.OrderMax":       "Maximum aantal tickets per reservering",
	"TicketExtension.SuccessMessage": "Succesbericht",
	"TicketExtension.MailMessage":    "Mailbericht",
	"TicketExtension.Reservations":   "Reserveringen",
	"TicketExtension.GuestList":      "Gastenlijst",
	"TicketExtension.WaitingList":    "Wachtlijst",
	"TicketExtension.ExtraFields":    "Bezoekersvelden",
	"TicketExtension.StartCheckIn":   "Start inchecken",
	"AttendeeField.FirstName":        "Voornaam",
	"AttendeeField.Surname":          "Achternaam",
	"AttendeeField.Email":            "E-mail",
	"UserDateField.MinDate":          "Minimaal vereiste datum",
	"UserDateField.MaxDate":          "Maximaal vereiste datum",
	"UserField.Title":                "Titel",
	"UserField.FieldName":            "Veldnaam",
	"UserField.Required":             "Verplicht",
	"UserField.Editable":             "Bewerkbaar",
}

func init() {
	for key, msg := range dutch {
		_ = cat.SetString(language.Dutch, key, msg)
	}
}

// SetLocale switches the language used by T. Unknown tags fall back to
// English.
func SetLocale(locale string) {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	mu.Lock()
	printer = message.NewPrinter(tag, message.Catalog(cat))
	mu.Unlock()
}

// Register adds or replaces a translation.
func Register(locale, key, msg string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return err
	}
	return cat.SetString(tag, key, msg)
}

// T translates key, returning fallback when no translation exists for the
// current locale.
func T(key, fallback string) string {
	mu.RLock()
	p := printer
	mu.RUnlock()

	if msg := p.Sprintf(key); msg != key {
		return msg
	}
	return fallback
}
