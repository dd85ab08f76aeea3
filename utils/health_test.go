package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunHealthChecks(t *testing.T) {
	status := RunHealthChecks(context.Background(), map[string]Probe{
		"upstream": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("down") },
	})
	assert.True(t, status.Components["upstream"])
	assert.False(t, status.Components["redis"])
	assert.False(t, status.CheckedAt.IsZero())

	snapshot := GetHealthStatus()
	snapshot.Components["upstream"] = false
	assert.True(t, GetHealthStatus().Components["upstream"])
}
