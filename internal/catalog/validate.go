package catalog

import "fmt"

// Warning flags a non-fatal catalog integrity issue (currently only
// dangling tag references). The entry stays in the catalog.
type Warning struct {
	Slug   string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Slug, w.Reason)
}

// ValidateEntry checks entry-level invariants against the taxonomy.
//
// A mismatch between the author and website counts is a data error: the
// fields are positionally paired and rendering them misaligned would
// attribute links to the wrong author. The caller is expected to skip
// the entry and keep loading the rest of the catalog.
//
// Dangling tag references are returned as warnings; the entry is kept
// and unregistered tags simply render without metadata.
func ValidateEntry(e *Entry, tx *Taxonomy) ([]Warning, error) {
	if e.Title == "" {
		return nil, fmt.Errorf("entry has no title")
	}
	if len(e.Authors) != len(e.Websites) {
		return nil, fmt.Errorf("entry %q: %d authors paired with %d websites",
			e.Title, len(e.Authors), len(e.Websites))
	}

	var warnings []Warning
	for _, id := range e.Tags {
		if _, ok := tx.Lookup(id); !ok {
			warnings = append(warnings, Warning{
				Slug:   e.Slug,
				Reason: fmt.Sprintf("references unregistered tag %q", id),
			})
		}
	}
	return warnings, nil
}
