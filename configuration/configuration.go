package configuration

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
	AccessLog         bool   `usage:"log every request to stdout"`
	EnableCompression bool   `usage:"gzip responses when the client accepts it"`

	InlineFilters                   bool `usage:"compile view filters into a single pass"`
	MultiSelect                     bool `usage:"views allow selecting many rows"`
	PreserveHidden                  bool `usage:"keep selected items that get filtered out"`
	PreserveHiddenOnSelectionChange bool `usage:"keep hidden selected items when the selection changes"`
}
