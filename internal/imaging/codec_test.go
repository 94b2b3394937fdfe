package imaging

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEligibleExtensions(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"art.PNG", true},
		{"anim.gif", true},
		{"modern.webp", true},
		{"notes.txt", false},
		{"archive.jpg.zip", false},
		{"noext", false},
	}
	for _, tc := range cases {
		if got := Eligible(tc.name); got != tc.want {
			t.Errorf("Eligible(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestEncodeFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.png")
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	encoded, err := EncodeFile(path)
	if err != nil {
		t.Fatalf("EncodeFile failed: %v", err)
	}
	if encoded.MIME != "image/png" {
		t.Fatalf("unexpected mime: %q", encoded.MIME)
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded.Base64)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded) != string(payload) {
		t.Fatal("round trip mismatch")
	}
}

func TestEncodeFileMissing(t *testing.T) {
	if _, err := EncodeFile(filepath.Join(t.TempDir(), "absent.jpg")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEncodeFileUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("pdf"), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	if _, err := EncodeFile(path); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestDataURL(t *testing.T) {
	enc := EncodedImage{Base64: "aGVsbG8=", MIME: "image/jpeg"}
	url := enc.DataURL()
	if !strings.HasPrefix(url, "data:image/jpeg;base64,") {
		t.Fatalf("unexpected data url prefix: %q", url)
	}
	if !strings.HasSuffix(url, "aGVsbG8=") {
		t.Fatalf("unexpected data url payload: %q", url)
	}
}
