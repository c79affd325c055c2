package cfg

type Cfg struct {
	// Input/output paths
	SourcesDir  string
	RulesPath   string
	CatalogPath string

	// Run modes
	DryRun   bool
	CI       bool
	MinItems int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
