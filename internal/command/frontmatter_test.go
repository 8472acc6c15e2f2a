package command

import (
	"strings"
	"testing"
)

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantStatus  FrontmatterStatus
		wantVersion string
		hasVersion  bool
		wantEndLine int
	}{
		{
			name:       "no frontmatter",
			content:    "# Just a heading\n\nSome content",
			wantStatus: FrontmatterAbsent,
		},
		{
			name: "version and tags",
			content: `---
version: 1.2.3
tags: [api, scaffold]
---

# Scaffold`,
			wantStatus:  FrontmatterParsed,
			wantVersion: "1.2.3",
			hasVersion:  true,
			wantEndLine: 4,
		},
		{
			name:        "empty frontmatter still counts",
			content:     "---\n---\n# Title",
			wantStatus:  FrontmatterParsed,
			wantEndLine: 2,
		},
		{
			name:        "numeric version keeps literal text",
			content:     "---\nversion: 1.10\n---\n",
			wantStatus:  FrontmatterParsed,
			wantVersion: "1.10",
			hasVersion:  true,
			wantEndLine: 3,
		},
		{
			name:       "unterminated block",
			content:    "---\nversion: 1.0.0\n# Title",
			wantStatus: FrontmatterMalformed,
		},
		{
			name:        "invalid yaml",
			content:     "---\nversion: [1.0.0\n---\n",
			wantStatus:  FrontmatterMalformed,
			wantEndLine: 3,
		},
		{
			name:        "sequence instead of mapping",
			content:     "---\n- one\n- two\n---\n",
			wantStatus:  FrontmatterMalformed,
			wantEndLine: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm := ParseFrontmatter(tt.content)
			if fm.Status != tt.wantStatus {
				t.Fatalf("status = %s, want %s (reason %q)", fm.Status, tt.wantStatus, fm.Reason)
			}
			if fm.Status == FrontmatterMalformed && fm.Reason == "" {
				t.Errorf("expected a reason for malformed frontmatter")
			}
			if fm.EndLine != tt.wantEndLine {
				t.Errorf("EndLine = %d, want %d", fm.EndLine, tt.wantEndLine)
			}
			v, ok := fm.Version()
			if ok != tt.hasVersion || v != tt.wantVersion {
				t.Errorf("Version() = %q, %v; want %q, %v", v, ok, tt.wantVersion, tt.hasVersion)
			}
		})
	}
}

func TestSetVersion(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "no frontmatter prepends block",
			content: "# Tool\n\nBody\n",
			want:    "---\nversion: 2.0.0\n---\n# Tool\n\nBody\n",
		},
		{
			name:    "replaces existing version",
			content: "---\ndescription: thing\nversion: 1.0.0\n---\n# Tool\n",
			want:    "---\ndescription: thing\nversion: 2.0.0\n---\n# Tool\n",
		},
		{
			name:    "appends missing version before closing delimiter",
			content: "---\ndescription: thing\n---\n# Tool\n",
			want:    "---\ndescription: thing\nversion: 2.0.0\n---\n# Tool\n",
		},
		{
			name:    "nested version keys are left alone",
			content: "---\nrequires:\n  version: 0.1.0\n---\n",
			want:    "---\nrequires:\n  version: 0.1.0\nversion: 2.0.0\n---\n",
		},
		{
			name:    "unterminated block gets a fresh block",
			content: "---\ndescription: thing\n# Tool\n",
			want:    "---\nversion: 2.0.0\n---\n---\ndescription: thing\n# Tool\n",
		},
		{
			name:    "crlf line endings preserved",
			content: "---\r\nversion: 1.0.0\r\n---\r\n",
			want:    "---\r\nversion: 2.0.0\r\n---\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SetVersion(tt.content, "2.0.0")
			if got != tt.want {
				t.Errorf("SetVersion() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestSetVersionRoundTrip(t *testing.T) {
	bodies := []string{
		"# Plain\n",
		"---\nversion: 0.0.1\n---\n# Versioned\n",
		"---\ntags: [a]\n---\nbody",
		"",
	}
	versions := []string{"0.0.0", "1.0.0", "3.14.159", "10.0.2"}

	for _, body := range bodies {
		content := body
		for _, v := range versions {
			content = SetVersion(content, v)
			got, ok := ParseFrontmatter(content).Version()
			if !ok || got != v {
				t.Fatalf("after SetVersion(%q) parsed version = %q, %v\ncontent:\n%s", v, got, ok, content)
			}
			if strings.Count(content, "version: ") != strings.Count(body, "version: ")+boolToInt(!strings.Contains(body, "version: ")) {
				t.Fatalf("version line duplicated:\n%s", content)
			}
		}
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
