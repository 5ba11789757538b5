// Package services provides cross-cutting helpers shared by the tracker and
// CLI: sentinel error markers with classification, and context annotation
// for item and request correlation identifiers used in structured logs.
package services
