package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	c := Load()

	assert.Equal(t, "mongodb://localhost:27017/", c.MongoURI)
	assert.Equal(t, "task_tracker", c.MongoDB)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "debug", c.GinMode)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://db:27017/")
	t.Setenv("MONGO_DB", "tracker_test")
	t.Setenv("PORT", "9090")

	c := Load()

	assert.Equal(t, "mongodb://db:27017/", c.MongoURI)
	assert.Equal(t, "tracker_test", c.MongoDB)
	assert.Equal(t, "9090", c.Port)
}
