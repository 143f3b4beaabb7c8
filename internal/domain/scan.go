package domain

// ScanResult lists what a project walk found. Paths are relative to RootPath
// and use forward slashes.
type ScanResult struct {
	RootPath string   `json:"root_path"`
	Dirs     []string `json:"dirs"`
	Files    []string `json:"files"`
}
