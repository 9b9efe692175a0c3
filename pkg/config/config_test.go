package config

import "testing"

func TestLoadEmailBackend(t *testing.T) {
	t.Setenv("ORDER_BACKEND", "email")
	t.Setenv("SMTP_USERNAME", "info@hoipa.com")
	t.Setenv("SMTP_PASSWORD", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendEmail {
		t.Fatalf("backend = %q", cfg.Backend)
	}
	if cfg.SMTP.Host != "smtp.office365.com" || cfg.SMTP.Port != 587 {
		t.Fatalf("unexpected smtp defaults: %+v", cfg.SMTP)
	}
	if len(cfg.SMTP.Operators) != 2 {
		t.Fatalf("operators = %v", cfg.SMTP.Operators)
	}
	if cfg.Port != "5000" {
		t.Fatalf("port = %q", cfg.Port)
	}
}

func TestLoadSquareBackend(t *testing.T) {
	t.Setenv("ORDER_BACKEND", "square")
	t.Setenv("SQUARE_ACCESS_TOKEN", "sq0atp-test")
	t.Setenv("SQUARE_LOCATION_ID", "L123")
	t.Setenv("SQUARE_FLOW", "order")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Square.Flow != FlowOrder {
		t.Fatalf("flow = %q", cfg.Square.Flow)
	}
	if cfg.Square.Environment != "sandbox" {
		t.Fatalf("environment = %q", cfg.Square.Environment)
	}
}

func TestLoadFailsFast(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"square without token", map[string]string{
			"ORDER_BACKEND":      "square",
			"SQUARE_LOCATION_ID": "L123",
		}},
		{"square without location", map[string]string{
			"ORDER_BACKEND":       "square",
			"SQUARE_ACCESS_TOKEN": "sq0atp-test",
		}},
		{"email without credentials", map[string]string{
			"ORDER_BACKEND": "email",
		}},
		{"unknown backend", map[string]string{
			"ORDER_BACKEND": "fax",
		}},
		{"bad flow", map[string]string{
			"ORDER_BACKEND":       "square",
			"SQUARE_ACCESS_TOKEN": "sq0atp-test",
			"SQUARE_LOCATION_ID":  "L123",
			"SQUARE_FLOW":         "sideways",
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected load to fail")
			}
		})
	}
}
