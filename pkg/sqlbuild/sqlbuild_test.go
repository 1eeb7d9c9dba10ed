package sqlbuild

import "testing"

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{-1, ""},
		{1, "?"},
		{3, "?, ?, ?"},
	}
	for _, tt := range tests {
		if got := Placeholders(tt.n); got != tt.want {
			t.Errorf("Placeholders(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRebind(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"no placeholders", "SELECT 1", "SELECT 1"},
		{"single", "SELECT * FROM videos WHERE id = ?", "SELECT * FROM videos WHERE id = $1"},
		{"ordered", "a = ? AND b = ? AND c = ?", "a = $1 AND b = $2 AND c = $3"},
		{
			"not in list",
			"videos.id NOT IN (?, ?, ?)",
			"videos.id NOT IN ($1, $2, $3)",
		},
		{
			"question mark inside literal untouched",
			"SELECT * FROM videos WHERE title = '?' AND id = ?",
			"SELECT * FROM videos WHERE title = '?' AND id = $1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rebind(tt.query); got != tt.want {
				t.Errorf("Rebind = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWhereSQL(t *testing.T) {
	if got := WhereSQL(nil); got != "" {
		t.Errorf("empty clauses: got %q", got)
	}
	got := WhereSQL([]string{"approved = ?", "videos.id NOT IN (?, ?)"})
	want := "WHERE approved = ? AND videos.id NOT IN (?, ?)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
