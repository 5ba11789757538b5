package shorts

import "strings"

// Language is the language family of a channel's content.
type Language string

const (
	LanguageVA Language = "va"
	LanguageVF Language = "vf"
	LanguageVO Language = "vo"
)

// Edit is the edit state of a channel's content.
type Edit string

const (
	EditSans Edit = "sans_edit"
	EditAvec Edit = "avec_edit"
)

var allLanguages = []Language{LanguageVA, LanguageVF, LanguageVO}

var allEdits = []Edit{EditSans, EditAvec}

// ContentType pairs a language family with an edit state. The six valid
// combinations gate which publication channels a source item may pair with.
type ContentType struct {
	Language Language
	Edit     Edit
}

// AllContentTypes returns the six valid content types in a stable order.
func AllContentTypes() []ContentType {
	types := make([]ContentType, 0, len(allLanguages)*len(allEdits))
	for _, lang := range allLanguages {
		for _, edit := range allEdits {
			types = append(types, ContentType{Language: lang, Edit: edit})
		}
	}
	return types
}

// Valid reports whether both halves of the content type are known values.
func (c ContentType) Valid() bool {
	switch c.Language {
	case LanguageVA, LanguageVF, LanguageVO:
	default:
		return false
	}
	switch c.Edit {
	case EditSans, EditAvec:
	default:
		return false
	}
	return true
}

// String renders the content type in its storage form, e.g. "vf_avec_edit".
func (c ContentType) String() string {
	return string(c.Language) + "_" + string(c.Edit)
}

// ParseContentType converts a storage-form string into a ContentType.
func ParseContentType(value string) (ContentType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	parts := strings.SplitN(normalized, "_", 2)
	if len(parts) != 2 {
		return ContentType{}, false
	}
	ct := ContentType{Language: Language(parts[0]), Edit: Edit(parts[1])}
	if !ct.Valid() {
		return ContentType{}, false
	}
	return ct, true
}
