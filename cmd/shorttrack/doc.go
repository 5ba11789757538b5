// Package main hosts the shorttrack CLI entrypoint and command graph.
//
// The Cobra-based command tree maps terminal invocations onto tracker
// operations: curation (roll, retain, discard), assignment, production
// (start, upload), review (validate, reject), publication, and the read
// views. It centralizes configuration resolution, acting-user discovery,
// and service wiring so subcommands can focus on user experience.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
