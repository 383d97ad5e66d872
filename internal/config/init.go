package config

import (
	"fmt"

	"github.com/robottwo/webjump/internal/filesystem"
)

const sampleWebjumps = `# Each entry defines a webjump. url may contain %s, which is replaced by
# the encoded argument. argument is one of required, optional or forbidden.
webjumps:
  - name: osm
    url: http://www.openstreetmap.org/search?query=%s
    description: OpenStreetMap search
  - name: godoc
    url: https://pkg.go.dev/search?q=%s
    alternative: https://pkg.go.dev
    description: Go package search
    completions: [net/http, context, errors]
`

// WriteDefaults writes the default settings to configPath and an example
// webjumps file to webjumpsPath. Existing files are left alone unless force
// is set. It returns the paths it wrote.
func WriteDefaults(fs filesystem.FileSystem, configPath, webjumpsPath string, force bool) ([]string, error) {
	settings, err := DefaultConfig().Marshal()
	if err != nil {
		return nil, err
	}

	written := []string{}
	for _, f := range []struct {
		path    string
		content []byte
	}{
		{configPath, settings},
		{webjumpsPath, []byte(sampleWebjumps)},
	} {
		exists, err := fs.Exists(f.path)
		if err != nil {
			return written, fmt.Errorf("failed to check %s: %w", f.path, err)
		}
		if exists && !force {
			continue
		}
		if err := fs.WriteFile(f.path, f.content); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		written = append(written, f.path)
	}
	return written, nil
}
