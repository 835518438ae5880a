package db

import "testing"

func TestNormalizeDSN(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"  postgres://u:p@localhost:5432/organizador  ", "postgres://u:p@localhost:5432/organizador"},
		{`"postgresql://u:p@db/organizador"`, "postgresql://u:p@db/organizador"},
		{"host=localhost user=app dbname=organizador", "host=localhost user=app dbname=organizador sslmode=disable"},
		{"host=localhost   user=app\tdbname=organizador sslmode=require", "host=localhost user=app dbname=organizador sslmode=require"},
		{"file:test.db", "file:test.db"},
	}
	for _, c := range cases {
		if got := NormalizeDSN(c.in); got != c.want {
			t.Fatalf("NormalizeDSN(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
