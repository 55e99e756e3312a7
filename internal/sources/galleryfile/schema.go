package galleryfile

// EntriesConfig is the top-level structure of entries.yaml.
type EntriesConfig struct {
	Entries []EntryProps `yaml:"entries"`
}

// EntryProps contains one gallery entry as authored in the catalog
// file. Author and Website hold delimited multi-values ("A, B") that
// must pair up positionally.
type EntryProps struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	Author      string   `yaml:"author"`
	Website     string   `yaml:"website"`
	Source      string   `yaml:"source,omitempty"`
	Tags        []string `yaml:"tags"`
	Video       string   `yaml:"video,omitempty"`
	PreviewTags []string `yaml:"previewTags,omitempty"`
}

// TagsConfig is the top-level structure of tags.yaml.
type TagsConfig struct {
	Vendors map[string]VendorProps `yaml:"vendors,omitempty"`
	Tags    []TagProps             `yaml:"tags"`
}

// VendorProps groups Model tags under a provider.
type VendorProps struct {
	Label    string `yaml:"label"`
	Icon     string `yaml:"icon,omitempty"`
	DarkIcon string `yaml:"darkIcon,omitempty"`
}

// TagProps contains one taxonomy tag definition.
type TagProps struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Description string `yaml:"description,omitempty"`
	Kind        string `yaml:"kind"`
	Icon        string `yaml:"icon,omitempty"`
	DarkIcon    string `yaml:"darkIcon,omitempty"`
	Vendor      string `yaml:"vendor,omitempty"`
	URL         string `yaml:"url,omitempty"`
}
