package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInit_Level(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	Init("test")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	Init("production")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
