package source

// Source descriptor types, one .yml file per source.

type Config struct {
	Name     string `yaml:"-"` // derived from filename (without .yml extension)
	Type     string `yaml:"type"`
	URL      string `yaml:"url"`
	Enabled  bool   `yaml:"enabled"`
	Category string `yaml:"category"` // optional fixed category override
	Charset  string `yaml:"charset"`  // optional, e.g. gbk for legacy notice pages
	Timeout  int    `yaml:"timeout"`  // seconds

	Pagination PaginationConfig `yaml:"pagination"`
	List       ListConfig       `yaml:"list"`
	Detail     DetailConfig     `yaml:"detail"`
}

type PaginationConfig struct {
	Param string `yaml:"param"`
	Pages int    `yaml:"pages"`
}

type ListConfig struct {
	Selector string   `yaml:"selector"`
	BaseURL  string   `yaml:"base_url"`
	Keywords []string `yaml:"keywords"`
	Limit    int      `yaml:"limit"`
}

type DetailConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Selector string `yaml:"selector"`
	Limit    int    `yaml:"limit"`
	DelayMs  int    `yaml:"delay_ms"`
}

// Candidate is a raw harvested record before validation and extraction.
type Candidate struct {
	Title     string
	URL       string
	Summary   string
	StartDate string // YYYY-MM-DD when the source states it structurally
	Deadline  string
}
