package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{BackgroundImage, SunIcon, MoonIcon} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("png"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := Verify(dir); err != nil {
		t.Errorf("Verify on a complete dir failed: %v", err)
	}
}

func TestVerifyReportsEveryMissingFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, BackgroundImage), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := Verify(dir)
	if err == nil {
		t.Fatal("expected an error for missing icons")
	}
	for _, name := range []string{SunIcon, MoonIcon} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name missing file %s", err, name)
		}
	}
	if strings.Contains(err.Error(), BackgroundImage) {
		t.Errorf("error %q names a file that exists", err)
	}
}

func TestIconPath(t *testing.T) {
	if got := IconPath("assets", true); got != filepath.Join("assets", SunIcon) {
		t.Errorf("day icon = %q", got)
	}
	if got := IconPath("assets", false); got != filepath.Join("assets", MoonIcon) {
		t.Errorf("night icon = %q", got)
	}
}
