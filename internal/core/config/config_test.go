package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    Config
		wantErr string
	}{
		{
			name: "full config",
			yaml: "api_url: https://api.example.com\ntheme: dark\n",
			want: Config{APIURL: "https://api.example.com", Theme: "dark"},
		},
		{
			name: "empty file keeps defaults",
			yaml: "",
			want: Config{APIURL: DefaultAPIURL},
		},
		{
			name:    "invalid api url",
			yaml:    "api_url: not-a-url\n",
			wantErr: "not a valid absolute URL",
		},
		{
			name:    "unknown theme",
			yaml:    "theme: gruvbox\n",
			wantErr: "must be light or dark",
		},
		{
			name:    "malformed yaml",
			yaml:    "api_url: [unterminated\n",
			wantErr: "parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeConfig(t, tt.yaml))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, got.APIURL)
}
