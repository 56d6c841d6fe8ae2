package host

import (
	"github.com/vovakirdan/helix/internal/module"
)

// RegistryLoader creates instances of a module compiled into the binary.
// Its backing file is the module's tuning config, so editing the config
// reloads a fresh instance that reads the new values.
type RegistryLoader struct {
	id         string
	configPath string
	instance   module.Module
}

// NewRegistryLoader returns a loader for the registered module id. A
// configPath of "" disables change detection.
func NewRegistryLoader(id, configPath string) *RegistryLoader {
	return &RegistryLoader{id: id, configPath: configPath}
}

func (l *RegistryLoader) Name() string { return l.id }
func (l *RegistryLoader) Path() string { return l.configPath }

func (l *RegistryLoader) Load() (module.EntryPoints, error) {
	m, err := module.Create(l.id)
	if err != nil {
		return module.EntryPoints{}, err
	}
	l.instance = m
	return module.Bind(m), nil
}

func (l *RegistryLoader) Unload() error {
	l.instance = nil
	return nil
}
