package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInit(t *testing.T) {
	t.Run("json debug", func(t *testing.T) {
		Init("debug", "json")
		if Log.GetLevel() != logrus.DebugLevel {
			t.Errorf("level = %v, want debug", Log.GetLevel())
		}
		if _, ok := Log.Formatter.(*logrus.JSONFormatter); !ok {
			t.Errorf("formatter = %T, want JSONFormatter", Log.Formatter)
		}
	})

	t.Run("bad level falls back to info", func(t *testing.T) {
		Init("loud", "text")
		if Log.GetLevel() != logrus.InfoLevel {
			t.Errorf("level = %v, want info", Log.GetLevel())
		}
		if _, ok := Log.Formatter.(*logrus.TextFormatter); !ok {
			t.Errorf("formatter = %T, want TextFormatter", Log.Formatter)
		}
	})
}
