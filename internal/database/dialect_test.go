package database

import "testing"

func TestDialects(t *testing.T) {
	tests := []struct {
		name                 string
		dialect              Dialect
		wantDriver           string
		wantLastInsertId     bool
		wantMigrationsSubdir string
	}{
		{
			name:                 "sqlite",
			dialect:              NewSQLiteDialect(),
			wantDriver:           "sqlite3",
			wantLastInsertId:     true,
			wantMigrationsSubdir: "sqlite",
		},
		{
			name:                 "postgres",
			dialect:              NewPostgresDialect(),
			wantDriver:           "postgres",
			wantLastInsertId:     false,
			wantMigrationsSubdir: "postgres",
		},
		{
			name:                 "mysql",
			dialect:              NewMySQLDialect(),
			wantDriver:           "mysql",
			wantLastInsertId:     true,
			wantMigrationsSubdir: "mysql",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.wantDriver {
				t.Errorf("DriverName() = %v, want %v", got, tt.wantDriver)
			}
			if got := tt.dialect.SupportsLastInsertId(); got != tt.wantLastInsertId {
				t.Errorf("SupportsLastInsertId() = %v, want %v", got, tt.wantLastInsertId)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.wantMigrationsSubdir {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.wantMigrationsSubdir)
			}
		})
	}
}

func TestRewriteQuery(t *testing.T) {
	query := "INSERT INTO households (house_number, address, position) VALUES (?, ?, ?)"

	t.Run("sqlite keeps placeholders", func(t *testing.T) {
		if got := NewSQLiteDialect().RewriteQuery(query); got != query {
			t.Errorf("RewriteQuery() = %v, want unchanged", got)
		}
	})

	t.Run("mysql keeps placeholders", func(t *testing.T) {
		if got := NewMySQLDialect().RewriteQuery(query); got != query {
			t.Errorf("RewriteQuery() = %v, want unchanged", got)
		}
	})

	t.Run("postgres numbers placeholders", func(t *testing.T) {
		want := "INSERT INTO households (house_number, address, position) VALUES ($1, $2, $3)"
		if got := NewPostgresDialect().RewriteQuery(query); got != want {
			t.Errorf("RewriteQuery() = %v, want %v", got, want)
		}
	})
}

func TestMySQLDSNEnablesParseTime(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "bare url",
			url:  "user:pass@tcp(localhost:3306)/registry",
			want: "user:pass@tcp(localhost:3306)/registry?parseTime=true",
		},
		{
			name: "existing query string",
			url:  "user:pass@tcp(localhost:3306)/registry?charset=utf8mb4",
			want: "user:pass@tcp(localhost:3306)/registry?charset=utf8mb4&parseTime=true",
		},
		{
			name: "already set",
			url:  "user:pass@tcp(localhost:3306)/registry?parseTime=false",
			want: "user:pass@tcp(localhost:3306)/registry?parseTime=false",
		},
	}

	d := NewMySQLDialect()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.DSN(DialectConfig{URL: tt.url}); got != tt.want {
				t.Errorf("DSN() = %v, want %v", got, tt.want)
			}
		})
	}
}
