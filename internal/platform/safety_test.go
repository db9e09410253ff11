package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDevRun(t *testing.T) {
	assert.True(t, IsDevRun(), "test binaries always run in dev mode")
}

func TestResolveDataPath(t *testing.T) {
	tmp := t.TempDir()
	devRoot := filepath.Join(os.TempDir(), DevDirName)

	tests := []struct {
		name      string
		path      string
		forceTemp bool
		want      string
	}{
		{name: "Real Path", path: "/home/user/notes", forceTemp: false, want: "/home/user/notes"},
		{name: "Empty Real Path", path: "", forceTemp: false, want: "."},
		{name: "Sandboxed", path: "/home/user/notes", forceTemp: true, want: filepath.Join(devRoot, "notes")},
		{name: "Sandboxed Default", path: ".", forceTemp: true, want: filepath.Join(devRoot, "default")},
		{name: "Sandboxed Empty", path: "", forceTemp: true, want: filepath.Join(devRoot, "default")},
		{name: "Already In Temp", path: tmp, forceTemp: true, want: tmp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDataPath(tt.path, tt.forceTemp))
		})
	}
}
