package main

import (
	"runtime/debug"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

// buildInfo identifies the running binary.
type buildInfo struct {
	Version   string
	GoVersion string
	Revision  string
	Modified  bool
}

// readBuildInfo extracts the module version and VCS stamp embedded by the Go
// linker. Fields it cannot find read "unknown".
func readBuildInfo() buildInfo {
	b := buildInfo{Version: "unknown", GoVersion: "unknown", Revision: "unknown"}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	b.GoVersion = info.GoVersion
	if b.Version = info.Main.Version; b.Version == "" || b.Version == "(devel)" {
		b.Version = "dev"
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			b.Revision = s.Value
		case "vcs.modified":
			b.Modified, _ = strconv.ParseBool(s.Value)
		}
	}
	return b
}

// render formats b as a two column table.
func (b buildInfo) render() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("unicorn " + b.Version)
	tw.AppendRow(table.Row{"Go", b.GoVersion})
	tw.AppendRow(table.Row{"Revision", b.Revision})
	if b.Modified {
		tw.AppendRow(table.Row{"Modified", "yes"})
	}
	return tw.Render()
}
