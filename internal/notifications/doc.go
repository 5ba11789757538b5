// Package notifications delivers workflow events to humans via ntfy.
//
// Callers publish typed events with a flat string payload; the service owns
// formatting, per-event enablement, and transport. When no ntfy topic is
// configured the returned service is a noop, so call sites never branch on
// whether notifications are on.
package notifications
