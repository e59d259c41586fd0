package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadShopProfile_MissingFileUsesDefaults(t *testing.T) {
	profile, err := LoadShopProfile(filepath.Join(t.TempDir(), "shop.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Papus BarberShop", profile.Name)
}

func TestLoadShopProfile_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	content := `name: Corner Cuts
address: 12 Main St
phone: "+1 555 0100"
email: hello@cornercuts.example
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	profile, err := LoadShopProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Corner Cuts", profile.Name)
	assert.Equal(t, "12 Main St", profile.Address)
	assert.Equal(t, "hello@cornercuts.example", profile.Email)
}

func TestLoadShopProfile_PartialFileKeepsDefaultName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("phone: \"+1 555 0100\"\n"), 0600))

	profile, err := LoadShopProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Papus BarberShop", profile.Name)
	assert.Equal(t, "+1 555 0100", profile.Phone)
}

func TestLoadShopProfile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: [unclosed"), 0600))

	_, err := LoadShopProfile(path)
	assert.Error(t, err)
}
