package logger

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
)

func TestLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("nonsense", false, &buf)
	assert.Equal(t, hclog.Info, log.GetLevel())

	log.Debug("hidden")
	log.Info("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	NewWithOutput("debug", true, &buf).Named("http").Debug("response", "status", 200)
	assert.Contains(t, buf.String(), `"@module":"film-rental-api.http"`)
	assert.Contains(t, buf.String(), `"status":200`)
}
