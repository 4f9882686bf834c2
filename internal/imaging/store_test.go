package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func createTestJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encoding test JPEG: %v", err)
	}
	return buf.Bytes()
}

func createTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestStoreAndResolve(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.Store(bytes.NewReader(createTestJPEG(t, 100, 100)))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if !strings.HasSuffix(ref, ".jpg") {
		t.Errorf("expected a .jpg reference, got %q", ref)
	}

	data, err := s.Resolve(ref)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding stored image: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("expected 100x100, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestStoreConvertsPNGToJPEG(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.Store(bytes.NewReader(createTestPNG(t, 50, 50)))
	if err != nil {
		t.Fatalf("Store PNG: %v", err)
	}
	data, err := s.Resolve(ref)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding stored image: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected stored format jpeg, got %q", format)
	}
}

func TestStoreDownscalesLargeImages(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.Store(bytes.NewReader(createTestJPEG(t, 2048, 1024)))
	if err != nil {
		t.Fatalf("Store large image: %v", err)
	}
	data, err := s.Resolve(ref)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding stored image: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		t.Errorf("expected max %dpx, got %dx%d", MaxDimension, bounds.Dx(), bounds.Dy())
	}
	if bounds.Dx() != 1024 || bounds.Dy() != 512 {
		t.Errorf("expected aspect ratio preserved (1024x512), got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestStoreRejectsUnsupportedFormat(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Store(strings.NewReader("GIF89a not really an image")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestResolveMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Resolve("nope.jpg")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.Store(bytes.NewReader(createTestJPEG(t, 10, 10)))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := s.Delete(ref); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Resolve(ref); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected image to be gone, got %v", err)
	}
	// Deleting again is not an error.
	if err := s.Delete(ref); err != nil {
		t.Errorf("Delete (second): %v", err)
	}
}

func TestRefsCannotEscapeDirectory(t *testing.T) {
	s := newTestStore(t)

	for _, ref := range []string{"", "../escape.jpg", "a/b.jpg"} {
		if _, err := s.Resolve(ref); err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("expected invalid-reference error for %q, got %v", ref, err)
		}
		if err := s.Delete(ref); err == nil {
			t.Errorf("expected invalid-reference error for delete of %q", ref)
		}
	}
}
