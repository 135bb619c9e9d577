package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/prodhub-io/prodhub/internal/config"
	"github.com/prodhub-io/prodhub/internal/proc"
)

// The CLI reveal path goes HasAPIKey -> GetAPIKey; the TUI only ever sees
// the masked form. Both views must agree on the same stored key.
func TestAPIKeyRoundTrip(t *testing.T) {
	keyring.MockInit()
	t.Setenv("HOME", t.TempDir())

	l := NewLocal(config.NewStore(), proc.NewManager(), nil)
	ctx := context.Background()

	assert.False(t, l.HasAPIKey(ctx))

	const key = "sk-test12345678901234567890"
	require.NoError(t, l.SaveAPIKey(ctx, key))
	assert.True(t, l.HasAPIKey(ctx))

	got, err := l.GetAPIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, key, got)
	assert.Equal(t, "sk-test...7890", l.GetAPIKeyMasked(ctx))

	require.NoError(t, l.DeleteAPIKey(ctx))
	assert.False(t, l.HasAPIKey(ctx))
}
