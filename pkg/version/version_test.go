package version

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsNewer(t *testing.T) {
	testCases := []struct {
		latest, current string
		want            bool
	}{
		{"1.2.0", "1.1.9", true},
		{"1.10.0", "1.9.0", true},
		{"1.2.3", "1.2.3", false},
		{"1.2.3", "1.2.3-dirty", false},
		{"v2.0.0", "1.9.9", true},
		{"1.0.0", "1.0.1", false},
	}

	for _, tc := range testCases {
		t.Run(tc.latest+"_vs_"+tc.current, func(t *testing.T) {
			if got := IsNewer(tc.latest, tc.current); got != tc.want {
				t.Errorf("IsNewer(%q, %q) = %v, want %v", tc.latest, tc.current, got, tc.want)
			}
		})
	}
}

func TestLatestRelease(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name": "v1.4.2"}`))
	}))
	defer srv.Close()

	got, err := latestRelease(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if got != "1.4.2" {
		t.Errorf("latestRelease() = %q, want 1.4.2", got)
	}
}

func TestFormatVersion(t *testing.T) {
	oldVersion, oldCommit, oldBuild := Version, Commit, BuildTime
	defer func() { Version, Commit, BuildTime = oldVersion, oldCommit, oldBuild }()

	Version, Commit, BuildTime = "1.0.0", "abc1234", ""
	if got := FormatVersion(); got != "1.0.0 (commit: abc1234)" {
		t.Errorf("FormatVersion() = %q", got)
	}
	Version, Commit, BuildTime = "", "", ""
	if got := FormatVersion(); got != "0.0.0-dev (development)" {
		t.Errorf("FormatVersion() = %q", got)
	}
}
