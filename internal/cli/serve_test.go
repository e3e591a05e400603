package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wiverson/life-calendar/internal/config"
	"github.com/wiverson/life-calendar/internal/storage/memory"
)

func TestServeStopsWithContext(t *testing.T) {
	m, kv := modelWithBirthday(t)
	env := &appEnv{dir: t.TempDir(), cfg: config.DefaultConfig(), kv: kv, model: m}
	cmd, out, _ := newTestCmd()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, runServe(ctx, cmd, env, "127.0.0.1:0"))
	assert.Contains(t, out.String(), "http://127.0.0.1:0")
	assert.Contains(t, out.String(), memory.New().Path())
}
