package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStallProfiler_Disabled(t *testing.T) {
	p := NewStallProfiler(DefaultConfig().Profiler, zerolog.Nop())

	assert.False(t, p.Enabled())
	assert.False(t, p.Observe(10))
	assert.ErrorIs(t, p.CaptureProfile("manual"), ErrProfilerDisabled)
}

func TestStallProfiler_CapturesOnStall(t *testing.T) {
	cfg := DefaultConfig().Profiler
	cfg.Dir = filepath.Join(t.TempDir(), "profiles")
	cfg.CaptureSeconds = 0.05
	p := NewStallProfiler(cfg, zerolog.Nop())

	assert.False(t, p.Observe(0.016), "normal frame")
	require.True(t, p.Observe(0.5))
	p.Wait()
	assert.False(t, p.IsProfiling())

	entries, err := os.ReadDir(cfg.Dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, filepath.Ext(e.Name()))
	}
	assert.Contains(t, names, ".prof")
	assert.Contains(t, names, ".trace")

	assert.False(t, p.Observe(0.5), "cooldown blocks a second capture")
	assert.ErrorIs(t, p.CaptureProfile("manual"), ErrCaptureCooldown)
}
