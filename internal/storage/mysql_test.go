package storage

import (
	"strings"
	"testing"
)

func TestMySQLOptionsValidate(t *testing.T) {
	good := MySQLOptions{Host: "localhost", Port: 3306, User: "root", Database: "finance_db"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected valid options, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*MySQLOptions)
		want   string
	}{
		{"no host", func(o *MySQLOptions) { o.Host = "" }, "host"},
		{"bad port", func(o *MySQLOptions) { o.Port = 0 }, "port"},
		{"no user", func(o *MySQLOptions) { o.User = "" }, "user"},
		{"injection", func(o *MySQLOptions) { o.Database = "x`; DROP DATABASE y" }, "database name"},
		{"empty db", func(o *MySQLOptions) { o.Database = "" }, "database name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := good
			tc.mutate(&o)
			err := o.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestMySQLOptionsDSN(t *testing.T) {
	o := MySQLOptions{Host: "db.local", Port: 3307, User: "app", Password: "secret", Database: "finance_db"}
	dsn := o.DSN()

	for _, want := range []string{"app:secret@tcp(db.local:3307)/finance_db", "clientFoundRows=true"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn %q missing %q", dsn, want)
		}
	}
	if strings.Contains(dsn, "parseTime") {
		t.Fatalf("dsn %q should leave parseTime off", dsn)
	}
}
