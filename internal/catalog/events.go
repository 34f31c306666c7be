// Package catalog holds the static, read-only registries shipped with the
// system: the marketing platform event catalog and the object template
// catalog. Both are process-wide constants with no mutation path.
package catalog

import (
	"regexp"
	"slices"
	"strings"

	"schemaforge/internal/domain"
)

// events is the versioned platform event catalog, in stable display order.
// Qualification rules reference these entries by ID.
var events = []domain.Event{
	{ID: "email_open", Name: "Email Open", Category: domain.CategoryEmail, EventTypeID: "4-666440", Description: "Contact opened a marketing email."},
	{ID: "email_click", Name: "Email Click", Category: domain.CategoryEmail, EventTypeID: "4-666441", Description: "Contact clicked a link in a marketing email."},
	{ID: "email_delivered", Name: "Email Delivered", Category: domain.CategoryEmail, EventTypeID: "4-666442", Description: "A marketing email was delivered to the contact."},
	{ID: "email_bounce", Name: "Email Bounce", Category: domain.CategoryEmail, EventTypeID: "4-666443", Description: "A marketing email to the contact bounced."},
	{ID: "email_unsubscribe", Name: "Email Unsubscribe", Category: domain.CategoryEmail, EventTypeID: "4-666444", Description: "Contact unsubscribed from a marketing email subscription type."},
	{ID: "email_spam_report", Name: "Email Spam Report", Category: domain.CategoryEmail, Description: "Contact reported a marketing email as spam."},

	{ID: "form_submission", Name: "Form Submission", Category: domain.CategoryForm, EventTypeID: "4-1639801", Description: "Contact submitted a form."},
	{ID: "form_view", Name: "Form View", Category: domain.CategoryForm, Description: "A form was rendered for the contact."},
	{ID: "form_interaction", Name: "Form Interaction", Category: domain.CategoryForm, Description: "Contact interacted with a form field without submitting."},

	{ID: "page_view", Name: "Page View", Category: domain.CategoryPage, EventTypeID: "4-1639802", Description: "Contact viewed a tracked page."},
	{ID: "landing_page_view", Name: "Landing Page View", Category: domain.CategoryPage, Description: "Contact viewed a landing page."},
	{ID: "pricing_page_view", Name: "Pricing Page View", Category: domain.CategoryPage, Description: "Contact viewed a rates or pricing page."},
	{ID: "knowledge_article_view", Name: "Knowledge Article View", Category: domain.CategoryPage, Description: "Contact viewed a knowledge base article."},

	{ID: "cta_click", Name: "CTA Click", Category: domain.CategoryCTA, EventTypeID: "4-1639803", Description: "Contact clicked a call-to-action."},
	{ID: "cta_view", Name: "CTA View", Category: domain.CategoryCTA, Description: "A call-to-action was shown to the contact."},

	{ID: "ad_click", Name: "Ad Click", Category: domain.CategoryMarketing, Description: "Contact clicked a paid ad."},
	{ID: "ad_impression", Name: "Ad Impression", Category: domain.CategoryMarketing, Description: "A paid ad was shown to the contact."},
	{ID: "sms_delivered", Name: "SMS Delivered", Category: domain.CategoryMarketing, Description: "An SMS message was delivered to the contact."},
	{ID: "sms_click", Name: "SMS Click", Category: domain.CategoryMarketing, Description: "Contact clicked a link in an SMS message."},
	{ID: "webinar_registration", Name: "Webinar Registration", Category: domain.CategoryMarketing, Description: "Contact registered for a webinar."},
	{ID: "webinar_attendance", Name: "Webinar Attendance", Category: domain.CategoryMarketing, Description: "Contact attended a webinar."},
	{ID: "list_membership_change", Name: "List Membership Change", Category: domain.CategoryMarketing, Description: "Contact entered or exited a static or active list."},
}

// eventsByID indexes the catalog for lookup. Built once; never mutated.
var eventsByID = func() map[string]domain.Event {
	m := make(map[string]domain.Event, len(events))
	for _, e := range events {
		m[e.ID] = e
	}
	return m
}()

// customEventPattern is the portal-scoped custom event naming convention:
// a numeric portal segment prefixed with "pe", an underscore, then a
// lowercase snake_case event name. This exact grammar is part of the wire
// contract with the marketing platform.
var customEventPattern = regexp.MustCompile(`^pe[0-9]+_[a-z0-9_]+$`)

// Events returns the full static event catalog in stable order.
func Events() []domain.Event {
	return slices.Clone(events)
}

// EventsByCategory groups the catalog by category. Every known category is
// present as a key, including categories with no member events, so callers
// must not treat absence of events as absence of the category.
func EventsByCategory() map[domain.EventCategory][]domain.Event {
	m := make(map[domain.EventCategory][]domain.Event, len(domain.EventCategories))
	for _, c := range domain.EventCategories {
		m[c] = []domain.Event{}
	}
	for _, e := range events {
		m[e.Category] = append(m[e.Category], e)
	}
	return m
}

// FindEvent looks up a catalog entry by ID. A missing entry is not an error.
func FindEvent(id string) (domain.Event, bool) {
	e, ok := eventsByID[id]
	return e, ok
}

// ValidCustomEventName reports whether name matches the portal-scoped custom
// event grammar pe<digits>_<name>. Case-sensitive; uppercase anywhere fails.
func ValidCustomEventName(name string) bool {
	return customEventPattern.MatchString(name)
}

// EventDisplayName resolves a human-readable label for an event identifier.
// Catalog entries win; valid custom event IDs get a derived title-cased name
// with the portal prefix dropped; anything else passes through unchanged.
func EventDisplayName(id string) string {
	if e, ok := eventsByID[id]; ok {
		return e.Name
	}
	if !ValidCustomEventName(id) {
		return id
	}
	rest := id[strings.Index(id, "_")+1:]
	parts := strings.Split(rest, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
