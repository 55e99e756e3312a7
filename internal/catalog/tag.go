package catalog

// Kind is the facet category a tag belongs to.
type Kind string

const (
	KindContentType Kind = "ContentType"
	KindLanguage    Kind = "Language"
	KindModel       Kind = "Model"
	KindResource    Kind = "ResourceType"
	KindSolution    Kind = "Intelligent-Solution"
	KindDatabase    Kind = "VectorDatabase"
	KindAzure       Kind = "Azure"
)

// Vendor groups Model tags under a common provider (OpenAI, Meta, ...)
// with its own icon pair.
type Vendor struct {
	Label    string
	Icon     string
	DarkIcon string
}

// Tag holds display metadata for one tag identifier.
type Tag struct {
	// ID is the globally unique tag identifier referenced by entries.
	ID string

	// Label is the display string.
	Label string

	// Description is an optional longer explanation.
	Description string

	// Kind is the facet category of the tag.
	Kind Kind

	// Icon / DarkIcon are optional asset paths.
	Icon     string
	DarkIcon string

	// Vendor is set only for Model tags.
	Vendor *Vendor

	// URL is an optional external documentation link.
	URL string
}

// Taxonomy is the static tag table, loaded once at startup.
//
// Lookup distinguishes registered tags from dangling references instead
// of silently defaulting to blank metadata.
type Taxonomy struct {
	tags  map[string]Tag
	order []string
}

// NewTaxonomy builds a taxonomy from tags in display order. A duplicate
// identifier overwrites the earlier definition but keeps its position.
func NewTaxonomy(tags []Tag) *Taxonomy {
	tx := &Taxonomy{
		tags:  make(map[string]Tag, len(tags)),
		order: make([]string, 0, len(tags)),
	}
	for _, t := range tags {
		if _, dup := tx.tags[t.ID]; !dup {
			tx.order = append(tx.order, t.ID)
		}
		tx.tags[t.ID] = t
	}
	return tx
}

// Lookup returns the tag metadata for id. ok is false for identifiers
// not registered in the taxonomy.
func (tx *Taxonomy) Lookup(id string) (Tag, bool) {
	t, ok := tx.tags[id]
	return t, ok
}

// IDs returns tag identifiers in display order.
func (tx *Taxonomy) IDs() []string {
	out := make([]string, len(tx.order))
	copy(out, tx.order)
	return out
}

// ByKind returns the tags of one facet category in display order.
func (tx *Taxonomy) ByKind(k Kind) []Tag {
	var out []Tag
	for _, id := range tx.order {
		if t := tx.tags[id]; t.Kind == k {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of registered tags.
func (tx *Taxonomy) Len() int {
	return len(tx.tags)
}

// DisplayOrder sorts tag identifiers by their taxonomy position.
// Identifiers unknown to the taxonomy sort last, keeping their relative
// order. The input slice is not modified.
func (tx *Taxonomy) DisplayOrder(ids []string) []string {
	pos := make(map[string]int, len(tx.order))
	for i, id := range tx.order {
		pos[id] = i
	}

	out := make([]string, len(ids))
	copy(out, ids)
	// Insertion sort keeps the copy stable for unknown identifiers.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && less(pos, out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func less(pos map[string]int, a, b string) bool {
	pa, oka := pos[a]
	pb, okb := pos[b]
	if !oka {
		return false
	}
	if !okb {
		return true
	}
	return pa < pb
}
