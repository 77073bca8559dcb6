package urbandash

import "testing"

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"https://example.com", nil, "https://example.com/"},
		{"https://example.com", []string{"air-quality"}, "https://example.com/air-quality/"},
		{"https://example.com/dash", []string{"about"}, "https://example.com/dash/about/"},
		{"https://example.com", []string{"sitemap.xml"}, "https://example.com/sitemap.xml"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
}
