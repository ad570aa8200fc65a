package version

import (
	"runtime"
	"time"
)

// Set at build time with -ldflags "-X"
var (
	Version   = "dev"
	BuildTime = "unknown"
	CommitID  = "unknown"
)

// Info describes the running build
type Info struct {
	Version       string `json:"version"`
	APIVersion    string `json:"apiVersion"`
	GoVersion     string `json:"goVersion"`
	GitCommit     string `json:"gitCommit"`
	BuildTime     string `json:"buildTime"`
	FormattedTime string `json:"formattedTime"`
	OS            string `json:"os"`
	Arch          string `json:"arch"`
}

// Get returns the build information of this binary
func Get() Info {
	return Info{
		Version:       Version,
		APIVersion:    "v1",
		GoVersion:     runtime.Version(),
		GitCommit:     CommitID,
		BuildTime:     BuildTime,
		FormattedTime: formatBuildTime(BuildTime),
		OS:            runtime.GOOS,
		Arch:          runtime.GOARCH,
	}
}

func formatBuildTime(buildTime string) string {
	t, err := time.Parse(time.RFC3339, buildTime)
	if err != nil {
		return buildTime
	}
	return t.Format("Mon Jan 2 15:04:05 2006")
}
