package validate

import (
	"fmt"
	"strings"
	"sync"
)

// MessageProvider provides validation error messages per locale.
type MessageProvider struct {
	mu       sync.RWMutex
	messages map[string]map[string]string // locale -> key -> message
	locale   string
	fallback string
}

// NewMessageProvider creates an empty message provider.
func NewMessageProvider() *MessageProvider {
	return &MessageProvider{
		messages: make(map[string]map[string]string),
		locale:   "en",
		fallback: "en",
	}
}

// DefaultMessages returns a message provider with English and Spanish
// messages, English selected.
func DefaultMessages() *MessageProvider {
	m := NewMessageProvider()
	m.RegisterLocale("en", englishMessages)
	m.RegisterLocale("es", spanishMessages)
	return m
}

// SetLocale sets the current locale.
func (m *MessageProvider) SetLocale(locale string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locale = locale
}

// RegisterLocale registers messages for a locale.
func (m *MessageProvider) RegisterLocale(locale string, messages map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[locale] = messages
}

// AddMessage adds or updates a message for a locale.
func (m *MessageProvider) AddMessage(locale, key, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.messages[locale] == nil {
		m.messages[locale] = make(map[string]string)
	}
	m.messages[locale][key] = message
}

// Get retrieves a message for the current locale, then the fallback.
// Placeholders: {field} for field name, {param} for the tag parameter.
func (m *MessageProvider) Get(key, field, param string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, locale := range []string{m.locale, m.fallback} {
		if msgs, ok := m.messages[locale]; ok {
			if msg, ok := msgs[key]; ok {
				return format(msg, field, param)
			}
		}
	}

	return fmt.Sprintf("%s validation failed for %s", key, field)
}

func format(msg, field, param string) string {
	msg = strings.ReplaceAll(msg, "{field}", field)
	return strings.ReplaceAll(msg, "{param}", param)
}

var englishMessages = map[string]string{
	"required":        "{field} is required",
	"min":             "{field} must be at least {param}",
	"max":             "{field} must be at most {param}",
	"oneof":           "{field} must be one of [{param}]",
	"password":        "{field} must be at least 8 characters with upper, lower, digit and one of !@#$%&",
	"email":           "{field} must be a valid email address",
	"url":             "{field} must be an http:// or https:// URL of at most 255 characters",
	"creditcard":      "{field} must be 13 to 16 digits",
	"filesize":        "{field} must be between 0 and 1048576 bytes",
	"age":             "{field} must be between 18 and 65",
	"date":            "{field} must be a YYYY-MM-DD date between 1900 and 2100",
	"shipping_method": "{field} must be standard or express",
	"rulename":        "{field} must name a known rule",
}

var spanishMessages = map[string]string{
	"required":        "{field} es obligatorio",
	"min":             "{field} debe ser al menos {param}",
	"max":             "{field} debe ser como máximo {param}",
	"oneof":           "{field} debe ser uno de [{param}]",
	"password":        "{field} debe tener al menos 8 caracteres con mayúscula, minúscula, dígito y uno de !@#$%&",
	"email":           "{field} debe ser un correo electrónico válido",
	"url":             "{field} debe ser una URL http:// o https:// de como máximo 255 caracteres",
	"creditcard":      "{field} debe tener entre 13 y 16 dígitos",
	"filesize":        "{field} debe estar entre 0 y 1048576 bytes",
	"age":             "{field} debe estar entre 18 y 65",
	"date":            "{field} debe ser una fecha AAAA-MM-DD entre 1900 y 2100",
	"shipping_method": "{field} debe ser standard o express",
	"rulename":        "{field} debe nombrar una regla conocida",
}
