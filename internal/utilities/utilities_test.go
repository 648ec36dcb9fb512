package utilities

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCreateLogAppends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "audit")
	if err := CreateLog(dir, "FRAMES", "first"); err != nil {
		t.Fatal(err)
	}
	if err := CreateLog(dir, "FRAMES", "second"); err != nil {
		t.Fatal(err)
	}
	name := filepath.Join(dir, "FRAMES_"+time.Now().Format("20060102")+".log")
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[0], " - first") || !strings.HasSuffix(lines[1], " - second") {
		t.Errorf("log = %q", b)
	}
}
