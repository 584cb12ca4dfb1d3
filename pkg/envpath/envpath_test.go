package envpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitJoinRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		list string
	}{
		{"empty", ""},
		{"single", `C:\Windows`},
		{"two entries", `C:\Windows;C:\Windows\System32`},
		{"empty segment preserved", `C:\a;;C:\b`},
		{"trailing separator preserved", `C:\a;`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.list, Join(Split(tt.list)))
		})
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name string
		list string
		dir  string
		want bool
	}{
		{"exact match", `C:\App\ffmpeg\bin`, `C:\App\ffmpeg\bin`, true},
		{"case-insensitive match", `C:\App\ffmpeg\bin`, `c:\app\FFMPEG\BIN`, true},
		{"middle of list", `C:\a;C:\b;C:\c`, `C:\b`, true},
		{"absent", `C:\a;C:\b`, `C:\c`, false},
		{"no prefix match across boundary", `C:\a\bc;C:\x`, `C:\a\b`, false},
		{"no suffix match across boundary", `C:\x;XC:\a\b`, `C:\a\b`, false},
		{"empty list", ``, `C:\a`, false},
		{"trailing slash is a different entry", `C:\a\b`, `C:\a\b\`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(tt.list, tt.dir))
		})
	}
}

func TestAppend(t *testing.T) {
	tests := []struct {
		name string
		list string
		dir  string
		want string
	}{
		{"to empty list", ``, `C:\App\ffmpeg\bin`, `C:\App\ffmpeg\bin`},
		{"to existing list", `C:\Windows;C:\Windows\System32`, `C:\App\ffmpeg\bin`, `C:\Windows;C:\Windows\System32;C:\App\ffmpeg\bin`},
		{"already present is unchanged", `C:\a;C:\b`, `C:\b`, `C:\a;C:\b`},
		{"already present case-insensitive", `C:\a;C:\B`, `c:\b`, `C:\a;C:\B`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Append(tt.list, tt.dir))
		})
	}
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name string
		list string
		dir  string
		want string
	}{
		{"last entry", `C:\Windows;C:\Windows\System32;C:\App\ffmpeg\bin`, `C:\App\ffmpeg\bin`, `C:\Windows;C:\Windows\System32`},
		{"first entry", `C:\a;C:\b`, `C:\a`, `C:\b`},
		{"middle entry", `C:\a;C:\b;C:\c`, `C:\b`, `C:\a;C:\c`},
		{"only entry leaves empty list", `C:\a`, `C:\a`, ``},
		{"case-insensitive", `C:\Foo;C:\bar`, `c:\foo`, `C:\bar`},
		{"absent is unchanged", `C:\a;C:\b`, `C:\c`, `C:\a;C:\b`},
		{"boundary safety", `C:\a\bc;C:\x`, `C:\a\b`, `C:\a\bc;C:\x`},
		{"first occurrence only", `C:\a;C:\b;C:\a`, `C:\a`, `C:\b;C:\a`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Remove(tt.list, tt.dir))
		})
	}
}

func TestAppendRemoveRoundTrip(t *testing.T) {
	starts := []string{
		``,
		`C:\Windows`,
		`C:\Windows;C:\Windows\System32`,
		`C:\a;;C:\b`,
	}
	const dir = `C:\App\ffmpeg\bin`

	for _, start := range starts {
		assert.Equal(t, start, Remove(Append(start, dir), dir), "starting from %q", start)
	}
}
