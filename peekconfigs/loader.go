package peekconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/choicepeek/cmds"
	"github.com/reusee/choicepeek/configs"
	"github.com/reusee/choicepeek/logs"
	"github.com/reusee/choicepeek/modes"
)

//go:embed schema.cue
var schema string

var configFlags = cmds.Collect[string]("-config", "load a config file, may repeat")

var filenames = []string{
	"choicepeek.cue",
	".choicepeek.cue",
}

// ConfigsLoader reads files given by -config, then files found in the
// working directory, the user config dir and /etc. Earlier files win.
// Only -config files are read in development mode.
func (Module) ConfigsLoader(
	logger logs.Logger,
	mode modes.Mode,
) configs.Loader {
	paths := append([]string(nil), *configFlags...)
	if mode == modes.ModeDevelopment {
		return configs.NewLoader(paths, schema)
	}

	var dirs []string
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, configDir)
	}
	dirs = append(dirs, "/etc")
	paths = append(paths, findConfigs(dirs)...)

	if len(paths) > 0 {
		logger.Info("config file",
			"paths", paths,
		)
	}

	return configs.NewLoader(paths, schema)
}

func findConfigs(dirs []string) (paths []string) {
	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}
