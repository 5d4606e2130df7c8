package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetup_Level(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	Setup("debug", false)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	Setup("nonsense", true)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	Setup("", false)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
