package semver

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{input: "1.2.3", want: Version{1, 2, 3}},
		{input: "0.0.0", want: Version{}},
		{input: "10.20.30", want: Version{10, 20, 30}},
		{input: "1.2", wantErr: true},
		{input: "1.2.3.4", wantErr: true},
		{input: "v1.2.3", wantErr: true},
		{input: "1.2.3-beta", wantErr: true},
		{input: "1.a.3", wantErr: true},
		{input: " 1.2.3", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidVersion) {
					t.Fatalf("Parse(%q) error = %v, want ErrInvalidVersion", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIncrement(t *testing.T) {
	tests := []struct {
		from string
		kind ChangeKind
		want string
	}{
		{"1.2.3", Major, "2.0.0"},
		{"1.2.3", Minor, "1.3.0"},
		{"1.2.3", Patch, "1.2.4"},
		{"0.0.0", Patch, "0.0.1"},
		{"0.9.9", Minor, "0.10.0"},
	}

	for _, tt := range tests {
		t.Run(tt.from+"/"+string(tt.kind), func(t *testing.T) {
			got, err := Increment(tt.from, tt.kind)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Increment(%q, %s) = %q, want %q", tt.from, tt.kind, got, tt.want)
			}
		})
	}

	t.Run("malformed version", func(t *testing.T) {
		if _, err := Increment("1.2", Patch); !errors.Is(err, ErrInvalidVersion) {
			t.Fatalf("expected ErrInvalidVersion, got %v", err)
		}
	})

	t.Run("unknown change kind", func(t *testing.T) {
		if _, err := Increment("1.2.3", ChangeKind("huge")); !errors.Is(err, ErrInvalidChangeKind) {
			t.Fatalf("expected ErrInvalidChangeKind, got %v", err)
		}
	})
}

func TestAtLeast(t *testing.T) {
	tests := []struct {
		current, required string
		want              bool
	}{
		{"1.2.3", "1.2.3", true},
		{"1.2.4", "1.2.3", true},
		{"1.3.0", "1.2.9", true},
		{"2.0.0", "1.99.99", true},
		{"1.2.3", "1.2.4", false},
		{"1.2.3", "1.10.0", false},
		{"0.9.0", "1.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.current+">="+tt.required, func(t *testing.T) {
			got := MustParse(tt.current).AtLeast(MustParse(tt.required))
			if got != tt.want {
				t.Errorf("AtLeast = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseChangeKind(t *testing.T) {
	for _, kind := range ChangeKinds() {
		got, err := ParseChangeKind(" " + string(kind) + " ")
		if err != nil || got != kind {
			t.Errorf("ParseChangeKind(%q) = %q, %v", kind, got, err)
		}
	}
	if got, err := ParseChangeKind("MAJOR"); err != nil || got != Major {
		t.Errorf("expected case-insensitive parse, got %q, %v", got, err)
	}
	if _, err := ParseChangeKind("breaking"); !errors.Is(err, ErrInvalidChangeKind) {
		t.Errorf("expected ErrInvalidChangeKind, got %v", err)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"0.0.0", "1.0.0", "3.14.159"} {
		if got := MustParse(s).String(); got != s {
			t.Errorf("round trip %q -> %q", s, got)
		}
	}
}
