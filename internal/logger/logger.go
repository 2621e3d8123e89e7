package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var level = zap.NewAtomicLevel()

// Init replaces zap's global logger. Development environments get a human
// readable console encoder, everything else JSON.
func Init(environment string) error {
	var conf zap.Config
	switch environment {
	case "development", "local", "test":
		conf = zap.NewDevelopmentConfig()
	default:
		conf = zap.NewProductionConfig()
	}

	level.SetLevel(conf.Level.Level())
	conf.Level = level

	l, err := conf.Build()
	if err != nil {
		return fmt.Errorf("conf.Build -> %w", err)
	}

	zap.ReplaceGlobals(l)

	return nil
}

// SetLevel changes the level of the global logger at runtime.
func SetLevel(text string) error {
	if text == "" {
		return nil
	}

	lvl, err := zapcore.ParseLevel(text)
	if err != nil {
		return err
	}
	level.SetLevel(lvl)

	return nil
}
