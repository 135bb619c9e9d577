package keystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

const testKey = "sk-proj-abcdefghijklmnop1234"

func TestSaveLoadDelete(t *testing.T) {
	keyring.MockInit()
	t.Setenv("HOME", t.TempDir())

	assert.False(t, Has())
	_, err := Load()
	assert.Error(t, err)

	require.NoError(t, Save(testKey))
	assert.True(t, Has())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, testKey, got)

	require.NoError(t, Delete())
	assert.False(t, Has())
}

func TestEnvFileFallback(t *testing.T) {
	keyring.MockInit()
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, Save(testKey))

	// Wipe only the keyring entry; the .env mirror must still answer.
	require.NoError(t, keyring.Delete("prodhub", "openai_api_key"))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, testKey, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid key", testKey, false},
		{"empty", "", true},
		{"too short", "sk-short", true},
		{"wrong prefix", "pk-abcdefghijklmnop1234", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "sk-proj...1234", Mask(testKey))
	assert.Equal(t, "••••••••", Mask("sk-short"))
}

func TestMasked(t *testing.T) {
	keyring.MockInit()
	t.Setenv("HOME", t.TempDir())

	assert.Equal(t, "", Masked())
	require.NoError(t, Save(testKey))
	assert.Equal(t, "sk-proj...1234", Masked())
}
