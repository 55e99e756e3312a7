// Package urlstate translates between the gallery's query string and
// typed filter/search/deep-link state. Both directions are pure; all
// navigation is performed by the caller.
package urlstate

import "net/url"

// Query string keys. All optional, all composable; unrecognized
// parameters pass through encoding untouched.
const (
	TagsKey   = "tags" // repeated, one value per selected tag
	SearchKey = "name" // single value, raw search text
	CardKey   = "card" // single value, slug of the open detail panel
)

// State is the decoded projection of the query string.
type State struct {
	Tags   []string // selected tag identifiers, query-string order
	Search string   // free-text search, empty when absent
	Card   string   // open panel slug, empty when absent
}

// Patch describes a partial update to the encoded state. Nil fields are
// left untouched; a non-nil empty value deletes the key entirely.
type Patch struct {
	Tags   *[]string
	Search *string
	Card   *string
}

// Decode parses a raw query string into State. It never fails: malformed
// input is decoded best-effort and absent keys yield zero values.
func Decode(query string) State {
	values, err := url.ParseQuery(query)
	if err != nil && values == nil {
		return State{}
	}
	return State{
		Tags:   values[TagsKey],
		Search: values.Get(SearchKey),
		Card:   values.Get(CardKey),
	}
}

// Encode applies patch on top of the current query string and returns
// the new one. Parameters outside the three gallery keys are preserved
// as-is; patching one field never drops another.
func Encode(query string, patch Patch) string {
	values, err := url.ParseQuery(query)
	if err != nil && values == nil {
		values = url.Values{}
	}

	if patch.Tags != nil {
		values.Del(TagsKey)
		for _, tag := range *patch.Tags {
			values.Add(TagsKey, tag)
		}
	}
	if patch.Search != nil {
		setOrDelete(values, SearchKey, *patch.Search)
	}
	if patch.Card != nil {
		setOrDelete(values, CardKey, *patch.Card)
	}

	return values.Encode()
}

// setOrDelete removes the key when the value is empty instead of
// leaving an empty-value artifact in the query string.
func setOrDelete(values url.Values, key, value string) {
	if value == "" {
		values.Del(key)
		return
	}
	values.Set(key, value)
}

// Tags returns a Patch field selecting the given tags.
func Tags(tags []string) *[]string { return &tags }

// Str returns a Patch field holding s. Pass "" to delete the key.
func Str(s string) *string { return &s }
