// Package compat resolves which publication content types a source content
// type may be routed to. Routing is same-language only: a source may target
// either edit variant of its own language family, never another family.
// Unknown content types fail closed and resolve to nothing.
package compat

import "shorttrack/internal/shorts"

// CompatibleTargets returns the publication content types a source of the
// given type may be assigned to. The result always has exactly two members
// for a valid source and is empty for an invalid one.
func CompatibleTargets(source shorts.ContentType) []shorts.ContentType {
	if !source.Valid() {
		return nil
	}
	return []shorts.ContentType{
		{Language: source.Language, Edit: shorts.EditSans},
		{Language: source.Language, Edit: shorts.EditAvec},
	}
}

// Compatible reports whether a source content type may be routed to the
// given publication content type.
func Compatible(source, target shorts.ContentType) bool {
	for _, candidate := range CompatibleTargets(source) {
		if candidate == target {
			return true
		}
	}
	return false
}
