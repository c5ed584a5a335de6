package storefront

import "time"

const DefaultAPIVersion = "2023-10"

// Config identifies the single store this service propagates to.
type Config struct {
	StoreURL    string        `mapstructure:"store_url"`
	AccessToken string        `mapstructure:"access_token"`
	APIVersion  string        `mapstructure:"api_version"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

func (c Config) configured() bool {
	return c.StoreURL != "" && c.AccessToken != ""
}
