package cmd

import (
	"github.com/dustin/go-humanize"
	"github.com/liveurl/liveurl/config"
	"github.com/liveurl/liveurl/filesystem"
	"github.com/liveurl/liveurl/signer"
	"github.com/liveurl/liveurl/util"
	"github.com/liveurl/liveurl/where"
	"github.com/samber/lo"
)

// resource is a file or directory liveurl keeps on disk.
type resource struct {
	name      string
	about     string
	path      func() string
	clearable bool
}

var resources = []resource{
	{"config", "settings file", config.File, false},
	{"scripts", "signature scripts", where.Scripts, false},
	{"signer", "active signature script", signer.ScriptPath, false},
	{"identities", "share-link to room URL cache", where.Identities, true},
	{"cache", "release and identity caches", where.Cache, true},
	{"logs", "log files", where.Logs, true},
	{"temp", "transient files", where.Temp, true},
}

func resourceNames(clearable bool) []string {
	return lo.FilterMap(resources, func(r resource, _ int) (string, bool) {
		return r.name, !clearable || r.clearable
	})
}

func findResource(name string) (resource, bool) {
	return lo.Find(resources, func(r resource) bool {
		return r.name == name
	})
}

// usage describes what a path holds, like "3 files, 4.1 kB".
func usage(path string) string {
	files, size, err := filesystem.Usage(path)
	switch {
	case err != nil:
		return err.Error()
	case files == 0:
		return "empty"
	default:
		return util.Quantify(files, "file", "files") + ", " + humanize.Bytes(uint64(size))
	}
}
