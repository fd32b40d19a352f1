package debug

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCaptureFromPixelsFlipsVertically(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "test")

	// 2x2 RGBA: bottom row red, top row blue (GL origin is bottom-left)
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255, // GL row 0 (bottom)
		0, 0, 255, 255, 0, 0, 255, 255, // GL row 1 (top)
	}

	path, err := sc.CaptureFromPixels(pixels, 2, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open capture: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode capture: %v", err)
	}

	// Image row 0 must be the GL top row (blue).
	r, _, b, _ := img.At(0, 0).RGBA()
	if r != 0 || b == 0 {
		t.Errorf("top-left = (%d,_,%d), want blue", r>>8, b>>8)
	}
	r, _, b, _ = img.At(0, 1).RGBA()
	if r == 0 || b != 0 {
		t.Errorf("bottom-left = (%d,_,%d), want red", r>>8, b>>8)
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "test")
	if _, err := sc.CaptureFromPixels(make([]byte, 8), 4, 4); err == nil {
		t.Fatal("expected size mismatch error")
	}
}

func TestCaptureDownscalesWideImages(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "test")
	sc.MaxWidth = 4

	src := image.NewRGBA(image.Rect(0, 0, 8, 4))
	path, err := sc.CaptureFromImage(src)
	if err != nil {
		t.Fatalf("CaptureFromImage: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open capture: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode capture: %v", err)
	}
	if got := img.Bounds().Dx(); got != 4 {
		t.Errorf("width = %d, want 4", got)
	}
	if got := img.Bounds().Dy(); got != 2 {
		t.Errorf("height = %d, want 2", got)
	}
}

func TestGenerateFilename(t *testing.T) {
	sc := NewScreenshotCapture("shots", "anatomy")
	name := sc.GenerateFilename()
	if filepath.Dir(name) != "shots" {
		t.Errorf("dir = %q, want shots", filepath.Dir(name))
	}
	base := filepath.Base(name)
	if !strings.HasPrefix(base, "anatomy_") || !strings.HasSuffix(base, ".png") {
		t.Errorf("unexpected filename %q", base)
	}
}
