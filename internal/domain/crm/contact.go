// Package crm holds the CRM integration's contact record, looked up by email.
package crm

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

type Contact struct {
	ID             ID     `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	LifecycleStage string `json:"lifecycleStage,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Company        string `json:"company,omitempty"`
}

// DisplayName is the contact name, or the email when the CRM has no name.
func (c *Contact) DisplayName() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	return c.Email
}

// LifecycleLabel turns "salesQualifiedLead" into "Sales Qualified Lead".
func (c *Contact) LifecycleLabel() string {
	if c.LifecycleStage == "" {
		return ""
	}
	var b strings.Builder
	for i, r := range c.LifecycleStage {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return titleCaser.String(strings.TrimSpace(b.String()))
}

// ID accepts both numeric and string identifiers; CRMs disagree on which.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}
