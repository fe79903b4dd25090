package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthMonitorCheck(t *testing.T) {
	m := NewHealthMonitor(map[string]HealthCheck{
		"storage": func(context.Context) error { return nil },
		"redis":   func(context.Context) error { return errors.New("down") },
	})

	status := m.Check(context.Background())

	assert.False(t, status.Healthy)
	assert.True(t, status.Services["storage"])
	assert.False(t, status.Services["redis"])
	assert.Equal(t, status, m.Status())
}
