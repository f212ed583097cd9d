package arguments

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgsServer(t *testing.T) {
	t.Setenv("MIDTRANS_CLIENT_KEY", "SB-Mid-client-x")
	t.Setenv("MIDTRANS_SERVER_KEY", "SB-Mid-server-x")
	t.Setenv("DONATION_COUNTRY_VAT", "11")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("HTTP_URL", "127.0.0.1:9000")

	cfg, err := ParseArgsServer([]string{"-t", "5s"})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.HPServer)
	assert.Equal(t, 5*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, float64(11), cfg.Donation.CountryVAT)
	assert.Equal(t, "Rp", cfg.Donation.Currency)
	assert.Equal(t, 0.5, cfg.Recaptcha.Score)
	assert.False(t, cfg.Recaptcha.Enabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CorsOrigins)

	cfg, err = ParseArgsServer([]string{"-s", "0.0.0.0:1234"})
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:1234", cfg.HPServer)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Midtrans:  MidtransConfig{ClientKey: "c", ServerKey: "s"},
		Recaptcha: RecaptchaConfig{Score: 0.5},
		Donation:  DonationConfig{MinAmount: 5000, MaxAmount: 100000, CountryVAT: 11},
	}
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "no server key", mutate: func(c *Config) { c.Midtrans.ServerKey = "" }, wantErr: true},
		{name: "no client key", mutate: func(c *Config) { c.Midtrans.ClientKey = "" }, wantErr: true},
		{name: "negative vat", mutate: func(c *Config) { c.Donation.CountryVAT = -1 }, wantErr: true},
		{name: "min above max", mutate: func(c *Config) { c.Donation.MinAmount = 200000 }, wantErr: true},
		{name: "no max", mutate: func(c *Config) { c.Donation.MaxAmount = 0 }},
		{name: "score above one", mutate: func(c *Config) { c.Recaptcha.Score = 2 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Equal(t, tt.wantErr, c.Validate() != nil)
		})
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestParseArgsServer_DotEnv(t *testing.T) {
	t.Run("missing file is fine", func(t *testing.T) {
		chdir(t, t.TempDir())
		_, err := ParseArgsServer(nil)
		assert.NoError(t, err)
	})

	t.Run("values are loaded", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DONATION_ITEM_NAME=Tea\n"), 0o600))
		chdir(t, dir)
		t.Setenv("DONATION_ITEM_NAME", "")
		os.Unsetenv("DONATION_ITEM_NAME")

		cfg, err := ParseArgsServer(nil)
		require.NoError(t, err)
		assert.Equal(t, "Tea", cfg.Donation.ItemName)
	})

	t.Run("malformed file is reported", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DONATION_NAME=\"broken\n"), 0o600))
		chdir(t, dir)

		_, err := ParseArgsServer(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Problem with loading of .env file")
	})
}
