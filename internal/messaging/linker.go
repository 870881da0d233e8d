// Package messaging builds click-to-chat links for validated contacts.
package messaging

import (
	"strings"

	"github.com/CalKK/campaignmessaging/internal/core"
	"github.com/nyaruka/phonenumbers"
)

// NamePlaceholder is replaced with the contact's name in the template.
const NamePlaceholder = "[name]"

// DefaultBaseURL opens a WhatsApp chat with the number appended.
const DefaultBaseURL = "https://wa.me/"

// DefaultTemplate is the campaign message sent when none is configured.
const DefaultTemplate = "Dear [name],\n\nThe Wait is Finally Over\uFE0F. This rerun represents a vote for courage. A vote for a candidate who ran when it mattered most on the 31st October 2025. \"You know my heart, you have seen my work. Let us build a better Strathmore not just for tomorrow but for generations to come!!\"\n\n#Alvin4president\n\n#the17th"

// LinkedContact is a contact ready to be messaged.
type LinkedContact struct {
	Name      string `json:"name"`
	Telephone string `json:"telephone"`
	Link      string `json:"link"`
	Region    string `json:"region,omitempty"`
}

// Linker renders a personalised message into a chat link.
type Linker struct {
	Template string
	BaseURL  string
}

// NewLinker returns a Linker, falling back to the defaults for empty values.
func NewLinker(template, baseURL string) *Linker {
	if template == "" {
		template = DefaultTemplate
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Linker{Template: template, BaseURL: baseURL}
}

// Message returns the template with the first placeholder replaced by name.
func (l *Linker) Message(name string) string {
	return strings.Replace(l.Template, NamePlaceholder, name, 1)
}

// Link returns the chat link for one contact.
func (l *Linker) Link(c core.Contact) string {
	return l.BaseURL + c.Phone + "?text=" + EncodeURIComponent(l.Message(c.Name))
}

// Generate links every contact, preserving order.
func (l *Linker) Generate(contacts []core.Contact) []LinkedContact {
	out := make([]LinkedContact, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, LinkedContact{
			Name:      c.Name,
			Telephone: c.Phone,
			Link:      l.Link(c),
			Region:    Region(c.Phone),
		})
	}
	return out
}

// Region returns the ISO 3166-1 region for an international digit string,
// or "" when the number does not parse as a known region.
func Region(digits string) string {
	num, err := phonenumbers.Parse("+"+digits, "")
	if err != nil {
		return ""
	}
	region := phonenumbers.GetRegionCodeForNumber(num)
	if region == "ZZ" {
		return ""
	}
	return region
}
