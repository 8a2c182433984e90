package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSuite(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.epd")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSuite(t *testing.T) {
	path := writeSuite(t, `# standard positions
rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 ;D1 20 ;D2 400

8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1 ;D2 94
`)

	cases, err := loadSuite(path)
	if err != nil {
		t.Fatalf("loadSuite: %v", err)
	}
	if len(cases) != 3 {
		t.Fatalf("got %d cases, want 3", len(cases))
	}

	want := []suiteCase{
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 1, 20},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 2, 400},
		{"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", 2, 94},
	}
	for i, w := range want {
		if cases[i] != w {
			t.Errorf("case %d = %+v, want %+v", i, cases[i], w)
		}
	}
}

func TestLoadSuiteErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no depth fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1\n"},
		{"bad field shape", "8/8/8/8/8/8/8/8 w - - 0 1 ;D1\n"},
		{"bad depth", "8/8/8/8/8/8/8/8 w - - 0 1 ;Dx 20\n"},
		{"bad count", "8/8/8/8/8/8/8/8 w - - 0 1 ;D1 twenty\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := loadSuite(writeSuite(t, tc.content)); err == nil {
				t.Error("loadSuite succeeded on malformed input")
			}
		})
	}
}

func TestRunSuiteVerifies(t *testing.T) {
	path := writeSuite(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 ;D1 20 ;D2 400\n")
	if err := runSuite(path, nil, 2); err != nil {
		t.Errorf("runSuite on correct counts: %v", err)
	}

	bad := writeSuite(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 ;D1 21\n")
	if err := runSuite(bad, nil, 2); err == nil {
		t.Error("runSuite accepted a wrong count")
	}
}
