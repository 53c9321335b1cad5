package cfg

type Cfg struct {
	// Input / output
	ConfigFile string
	OutputDir  string

	// Generation overrides
	BaseUrl       string
	Pretty        bool
	TrailingSlash bool

	// Preview server
	Serve bool
	Port  string

	// Application metadata
	Debug   bool
	Version string
}
