package models

import (
	"strings"
	"time"
)

// Listing holds the details extracted from a single Rightmove listing page.
// Fields the page did not yield are left at their zero value (nil price,
// empty strings, unknown type) and every downstream stage must cope with
// each one being absent independently.
type Listing struct {
	URL       string       `json:"url"`
	RawPrice  string       `json:"raw_price"`
	Price     *int64       `json:"price"`
	Street    string       `json:"street"`
	Postcode  string       `json:"postcode"`
	Type      PropertyType `json:"property_type"`
	ScrapedAt time.Time    `json:"scraped_at"`
}

// PropertyType is either a known type carrying its HM Land Registry
// single-letter code, or an unknown type carrying only the raw label seen
// on the page. An unknown type has an empty Code and can never match a
// sale transaction.
type PropertyType struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Known reports whether the type maps to a Land Registry code.
func (t PropertyType) Known() bool { return t.Code != "" }

func (t PropertyType) String() string {
	if t.Label == "" {
		return "Unknown"
	}
	return t.Label
}

// knownTypes maps the human-readable labels to Land Registry codes.
var knownTypes = []PropertyType{
	{Code: "F", Label: "Flat"},
	{Code: "D", Label: "Detached House"},
	{Code: "S", Label: "Semi-Detached House"},
	{Code: "T", Label: "Terraced House"},
	{Code: "E", Label: "End of Terrace House"},
	{Code: "B", Label: "Bungalow"},
}

// typeKeywords maps substrings of raw listing-page type text to labels.
// Order matters: "semi-detached" must be checked before "detached", and
// "end of terrace" before "terrace".
var typeKeywords = []struct {
	keyword string
	label   string
}{
	{"apartment", "Flat"},
	{"flat", "Flat"},
	{"semi-detached", "Semi-Detached House"},
	{"end of terrace", "End of Terrace House"},
	{"detached", "Detached House"},
	{"terraced", "Terraced House"},
	{"bungalow", "Bungalow"},
}

// PropertyTypeFromLabel resolves an exact human-readable label. Unrecognised
// labels come back as an unknown type carrying the label verbatim.
func PropertyTypeFromLabel(label string) PropertyType {
	for _, t := range knownTypes {
		if strings.EqualFold(t.Label, label) {
			return t
		}
	}
	return PropertyType{Label: label}
}

// PropertyTypeFromCode resolves a Land Registry single-letter code.
func PropertyTypeFromCode(code string) PropertyType {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, t := range knownTypes {
		if t.Code == code {
			return t
		}
	}
	return PropertyType{}
}

// PropertyTypeFromRaw folds free text from a listing page (e.g. "2 bed
// semi-detached house") into a known type by keyword, or an unknown type
// with the title-cased raw text as its display label.
func PropertyTypeFromRaw(raw string) PropertyType {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return PropertyType{}
	}
	for _, k := range typeKeywords {
		if strings.Contains(lowered, k.keyword) {
			return PropertyTypeFromLabel(k.label)
		}
	}
	return PropertyType{Label: titleCase(lowered)}
}

func titleCase(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + f[1:]
	}
	return strings.Join(fields, " ")
}
