package clients

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	require.Equal(t, 2, r.Len())

	e, ok := r.Lookup("CLIENT1KEY")
	require.True(t, ok)
	require.Equal(t, Entry{Name: "Client 1", Domain: "client1.com"}, e)

	_, ok = r.Lookup("client1key")
	require.False(t, ok, "keys are case-sensitive")
}

func TestNewRegistry_CopiesInput(t *testing.T) {
	in := map[string]Entry{"K": {Name: "n", Domain: "d"}}
	r := NewRegistry(in)
	in["K"] = Entry{Name: "mutated", Domain: "x"}
	delete(in, "K")

	e, ok := r.Lookup("K")
	require.True(t, ok)
	require.Equal(t, "n", e.Name)
}

func TestNilRegistry(t *testing.T) {
	var r *Registry
	_, ok := r.Lookup("CLIENT1KEY")
	require.False(t, ok)
	require.Zero(t, r.Len())
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "clients.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadFile(t *testing.T) {
	p := writeFile(t, `clients:
  - key: AcmeKEY
    name: Acme
    domain: acme.example
  - key: OTHER
    name: Other
    domain: other.example
`)
	r, err := LoadFile(p)
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())

	e, ok := r.Lookup("AcmeKEY")
	require.True(t, ok)
	require.Equal(t, "acme.example", e.Domain)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadFile(writeFile(t, "clients: []\n"))
	require.Error(t, err)

	_, err = LoadFile(writeFile(t, "clients:\n  - key: A\n    name: a\n"))
	require.ErrorContains(t, err, "domain")

	_, err = LoadFile(writeFile(t, "clients:\n  - key: A\n    domain: a\n  - key: A\n    domain: b\n"))
	require.ErrorContains(t, err, "duplicate")
}

func TestLoad_DefaultsWithoutPath(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)
	_, ok := r.Lookup("CLIENT2KEY")
	require.True(t, ok)
}
