package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestViperConfigAccessors(t *testing.T) {
	v := viper.New()
	v.Set("name", "pulseboard")
	v.Set("port", 8080)
	v.Set("ratio", 0.75)
	v.Set("enabled", true)
	v.Set("timeout", "5s")

	c := New(v)

	if got := c.GetString("name"); got != "pulseboard" {
		t.Errorf("GetString = %q", got)
	}
	if got := c.GetInt("port"); got != 8080 {
		t.Errorf("GetInt = %d", got)
	}
	if got := c.GetFloat64("ratio"); got != 0.75 {
		t.Errorf("GetFloat64 = %v", got)
	}
	if !c.GetBool("enabled") {
		t.Error("GetBool = false, want true")
	}
	if got := c.GetDuration("timeout"); got != 5*time.Second {
		t.Errorf("GetDuration = %v", got)
	}
	if !c.IsSet("name") || c.IsSet("missing") {
		t.Error("IsSet mismatch")
	}
}

func TestViperConfigUnmarshal(t *testing.T) {
	v := viper.New()
	v.Set("reply_delay", "100ms")
	v.Set("seed", true)

	var cfg struct {
		ReplyDelay time.Duration `mapstructure:"reply_delay"`
		Seed       bool          `mapstructure:"seed"`
	}
	if err := New(v).Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.ReplyDelay != 100*time.Millisecond || !cfg.Seed {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestViperConfigSub(t *testing.T) {
	v := viper.New()
	v.Set("modules.support.enabled", false)

	c := New(v)

	sub := c.Sub("modules.support")
	if sub.GetBool("enabled") {
		t.Error("sub enabled = true, want false")
	}

	// A missing subtree yields an empty config, not nil.
	empty := c.Sub("modules.nope")
	if empty == nil {
		t.Fatal("Sub returned nil for missing key")
	}
	if empty.IsSet("enabled") {
		t.Error("empty sub should have no keys set")
	}
}

func TestNewNilViper(t *testing.T) {
	c := New(nil)
	if c.Viper() == nil {
		t.Fatal("expected a fresh viper instance")
	}
}
