package processor

import "time"

type Config struct {
	BaseURL      string        `mapstructure:"base_url"`
	MerchantCode string        `mapstructure:"merchant_code"`
	PublicKey    string        `mapstructure:"public_key"`
	Language     string        `mapstructure:"language"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

func (c Config) configured() bool {
	return c.BaseURL != "" && c.MerchantCode != "" && c.PublicKey != ""
}
