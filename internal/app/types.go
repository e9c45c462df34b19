package app

type DiffRequest struct {
	Series          string
	ManifestPath    string
	Architecture    string
	PPAs            []string
	LaunchpadUser   string
	LaunchpadToken  string
	OutputPath      string
	DriftReportPath string
}

type DiffResult struct {
	OutputPath  string
	BinaryCount int
	SnapCount   int
}
