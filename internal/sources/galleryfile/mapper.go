package galleryfile

import (
	"fmt"
	"strings"

	"github.com/showcasehub/gallery/internal/catalog"
	"github.com/showcasehub/gallery/internal/logger"
)

// Mapper converts catalog file config into domain entries and taxonomy.
type Mapper struct {
	logger logger.Logger
}

// NewMapper creates a new mapper instance.
func NewMapper(log logger.Logger) *Mapper {
	return &Mapper{logger: log}
}

// MapTaxonomy converts TagsConfig to a catalog.Taxonomy.
func (m *Mapper) MapTaxonomy(config *TagsConfig) (*catalog.Taxonomy, error) {
	tags := make([]catalog.Tag, 0, len(config.Tags))
	for _, props := range config.Tags {
		if props.ID == "" {
			return nil, fmt.Errorf("tag with empty id (label %q)", props.Label)
		}

		tag := catalog.Tag{
			ID:          props.ID,
			Label:       props.Label,
			Description: props.Description,
			Kind:        catalog.Kind(props.Kind),
			Icon:        props.Icon,
			DarkIcon:    props.DarkIcon,
			URL:         props.URL,
		}
		if props.Vendor != "" {
			vendor, ok := config.Vendors[props.Vendor]
			if !ok {
				return nil, fmt.Errorf("tag %q references unknown vendor %q", props.ID, props.Vendor)
			}
			tag.Vendor = &catalog.Vendor{
				Label:    vendor.Label,
				Icon:     vendor.Icon,
				DarkIcon: vendor.DarkIcon,
			}
		}
		tags = append(tags, tag)
	}

	return catalog.NewTaxonomy(tags), nil
}

// MapEntries converts EntriesConfig to domain entries, in file order.
//
// Entries that fail validation (author/website count mismatch) are
// skipped with a warning so one bad row never takes down the rest of
// the catalog. Dangling tag references are logged and kept.
func (m *Mapper) MapEntries(config *EntriesConfig, tx *catalog.Taxonomy) ([]*catalog.Entry, error) {
	entries := make([]*catalog.Entry, 0, len(config.Entries))
	seenSlugs := make(map[string]bool, len(config.Entries))

	for _, props := range config.Entries {
		entry := &catalog.Entry{
			Title:       props.Title,
			Description: props.Description,
			Authors:     splitDelimited(props.Author),
			Websites:    splitDelimited(props.Website),
			Source:      props.Source,
			Tags:        props.Tags,
			Video:       props.Video,
			PreviewTags: props.PreviewTags,
			Position:    len(entries),
		}

		slug := catalog.Slugify(entry.Title)
		if seenSlugs[slug] {
			// Distinct titles can normalize to the same slug; salt with
			// the source URL so deep links stay unambiguous.
			salted := catalog.SaltedSlug(slug, entry.Source+entry.Title)
			m.logger.Warn("slug collision, salting",
				logger.String("title", entry.Title),
				logger.String("slug", slug),
				logger.String("salted", salted))
			slug = salted
		}
		entry.Slug = slug

		warnings, err := catalog.ValidateEntry(entry, tx)
		if err != nil {
			m.logger.Warn("skipping invalid catalog entry",
				logger.String("title", props.Title),
				logger.Error(err))
			continue
		}
		for _, w := range warnings {
			m.logger.Warn("catalog integrity warning",
				logger.String("detail", w.String()))
		}

		seenSlugs[slug] = true
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no valid entries found in catalog config")
	}

	return entries, nil
}

// splitDelimited splits a comma-delimited multi-value field, trimming
// whitespace. An empty field yields nil so author/website pairing
// compares equal lengths.
func splitDelimited(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
