package api

import (
	"github.com/sirupsen/logrus"
	glua "github.com/yuin/gopher-lua"
)

// LogModule exposes the host's structured logger to Lua under the "log"
// global. Messages are tagged with the plugin id so diagnostics from broken
// plugins are attributable.
type LogModule struct {
	logger *logrus.Entry
}

// NewLogModule creates the log capability for a plugin.
func NewLogModule(logger *logrus.Entry) *LogModule {
	return &LogModule{logger: logger}
}

// Name returns the Lua global name.
func (m *LogModule) Name() string {
	return "log"
}

// Register installs the module.
//
// Lua surface:
//
//	log.debug(msg)  log.info(msg)  log.warn(msg)  log.error(msg)
func (m *LogModule) Register(L *glua.LState) error {
	tbl := L.NewTable()

	levels := map[string]func(...any){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	}

	for name, logFn := range levels {
		fn := logFn
		L.SetField(tbl, name, L.NewFunction(func(L *glua.LState) int {
			fn(L.CheckString(1))
			return 0
		}))
	}

	L.SetGlobal(m.Name(), tbl)
	return nil
}
