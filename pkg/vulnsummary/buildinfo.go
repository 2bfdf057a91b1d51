package vulnsummary

// BuildInfo holds build info such as Git revision, Git SHA-1,
// and build datetime.
type BuildInfo struct {
	Version    string
	Commit     string
	Date       string
	Executable string
}
