package model

// VersionInfo is the JSON payload a deployed service exposes at its
// version endpoint
type VersionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Tag     string `json:"tag"`
}

// ServiceStatus pairs a service name with the fetched version info.
// Err is set instead of Info when the fetch failed; status reporting is
// read-only and a single unreachable service never aborts the command.
type ServiceStatus struct {
	Service     string
	Environment string
	Info        *VersionInfo
	Err         error
}
