package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("SIFTLINE_TEST_DIR", "/var/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty path", in: "", want: ""},
		{name: "plain path untouched", in: "/tmp/siftline.db", want: "/tmp/siftline.db"},
		{name: "tilde prefix", in: "~/siftline.db", want: filepath.Join(home, "siftline.db")},
		{name: "bare tilde", in: "~", want: home},
		{name: "env var", in: "$SIFTLINE_TEST_DIR/siftline.db", want: "/var/data/siftline.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
