package quire

import "testing"

func TestVersion_IsSemver(t *testing.T) {
	if !IsSemver(Version()) {
		t.Fatalf("embedded version must be semver: got %q", Version())
	}
}

func TestVersionTag_PrefixesV(t *testing.T) {
	if got, want := VersionTag(), "v"+Version(); got != want {
		t.Fatalf("version tag: got %q, want %q", got, want)
	}
}

func TestIsSemver(t *testing.T) {
	cases := []struct {
		version string
		want    bool
	}{
		{version: "0.1.0", want: true},
		{version: "1.2.3-alpha.1", want: true},
		{version: "2.0.0+build.7", want: true},
		{version: "v1.2.3", want: false},
		{version: "1.2", want: false},
		{version: "01.2.3", want: false},
	}

	for _, tc := range cases {
		got := IsSemver(tc.version)
		if got != tc.want {
			t.Fatalf("IsSemver(%q): got %v, want %v", tc.version, got, tc.want)
		}
	}
}

func TestBuildInfo_String(t *testing.T) {
	cases := []struct {
		name string
		info BuildInfo
		want string
	}{
		{name: "version only", info: BuildInfo{Version: "0.1.0"}, want: "quire v0.1.0"},
		{
			name: "clean commit",
			info: BuildInfo{Version: "0.1.0", Commit: "3f2a9c1d77e0", GoVersion: "go1.25.7"},
			want: "quire v0.1.0 (3f2a9c1d) go1.25.7",
		},
		{
			name: "dirty short commit",
			info: BuildInfo{Version: "1.0.0", Commit: "abc", Modified: true},
			want: "quire v1.0.0 (abc, dirty)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.info.String(); got != tc.want {
				t.Fatalf("String: got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestReadBuildInfo_UsesEmbeddedVersion(t *testing.T) {
	if got := ReadBuildInfo().Version; got != Version() {
		t.Fatalf("version: got %q, want %q", got, Version())
	}
}
