package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ShopProfile carries the business identity rendered into outgoing emails
// and exposed to the frontend. Loaded from an optional YAML file; every
// field has a sensible default for a missing or partial file.
type ShopProfile struct {
	Name    string `yaml:"name" json:"name"`
	Address string `yaml:"address" json:"address"`
	Phone   string `yaml:"phone" json:"phone"`
	Email   string `yaml:"email" json:"email"`
	Website string `yaml:"website" json:"website"`
}

// DefaultShopProfile returns the built-in profile used when no shop.yaml exists.
func DefaultShopProfile() *ShopProfile {
	return &ShopProfile{
		Name:  "Papus BarberShop",
		Email: "contact@papusbarbershop.com",
	}
}

// LoadShopProfile reads the shop profile from path. A missing file is not an
// error; the defaults are returned instead.
func LoadShopProfile(path string) (*ShopProfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from admin-configured data dir
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultShopProfile(), nil
		}
		return nil, fmt.Errorf("reading shop profile %q: %w", path, err)
	}

	profile := DefaultShopProfile()
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("parsing shop profile %q: %w", path, err)
	}
	if profile.Name == "" {
		profile.Name = DefaultShopProfile().Name
	}
	return profile, nil
}
