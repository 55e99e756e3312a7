package catalog

// Entry represents a single gallery item shown as a card.
//
// It is NOT tied to the YAML source files or any external format.
// Entries are built once at load time and never mutated afterwards;
// every consumer treats them as read-only.
//
// An Entry is uniquely identified by its Slug.
type Entry struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// Slug is the canonical unique identifier, derived from Title
	// (salted on collision, see Slugify).
	Slug string

	// Title is the unique display key of the entry.
	Title string

	// ─────────────────────────────
	// Descriptive fields
	// ─────────────────────────────

	// Description is the card / panel body text.
	Description string

	// Authors are the entry authors, positionally paired with Websites.
	Authors []string

	// Websites are author links; len(Websites) == len(Authors) always
	// holds for a validated entry.
	Websites []string

	// Source is the external repository URL, empty when the entry has
	// no repository (decks, videos, blogs).
	Source string

	// Tags is the set of tag identifiers attached to the entry.
	// Order is irrelevant for matching.
	Tags []string

	// Video is an optional embed URL.
	Video string

	// PreviewTags is the optional subset of Tags whose services are in
	// preview.
	PreviewTags []string

	// ─────────────────────────────
	// Ordering
	// ─────────────────────────────

	// Position is the insertion index in the source catalog. It defines
	// the "old to new" base ordering.
	Position int
}

// HasTag reports whether the entry carries the given tag identifier.
func (e *Entry) HasTag(id string) bool {
	for _, t := range e.Tags {
		if t == id {
			return true
		}
	}
	return false
}

// HasAllTags reports whether the entry's tag set is a superset of ids.
// An empty ids slice matches every entry.
func (e *Entry) HasAllTags(ids []string) bool {
	for _, id := range ids {
		if !e.HasTag(id) {
			return false
		}
	}
	return true
}
