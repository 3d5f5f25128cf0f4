package site

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1024
	jpegQuality   = 82
)

// CopyStaticAssets mirrors srcDir into dstDir. Raster images wider than
// maxImageWidth are downscaled and re-encoded as JPEG on the way through;
// everything else is copied verbatim. A missing srcDir is not an error.
func CopyStaticAssets(srcDir, dstDir string) error {
	if _, err := os.Stat(srcDir); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(dstDir, rel)
		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".jpg", ".jpeg", ".png", ".gif":
			return copyImage(path, dst)
		default:
			return copyFile(path, dst)
		}
	})
}

// copyImage writes src to dst, downscaling when it exceeds maxImageWidth.
// Images that fail to decode are copied verbatim rather than failing the
// build; the file may be fine for browsers even if the decoder balks.
func copyImage(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return copyFile(src, dst)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxImageWidth {
		return copyFile(src, dst)
	}

	newH := h * maxImageWidth / w
	scaled := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("encode %s: %w", src, err)
	}
	// Re-encoded output is always JPEG regardless of the source format.
	dst = strings.TrimSuffix(dst, filepath.Ext(dst)) + ".jpg"
	return os.WriteFile(dst, buf.Bytes(), 0o644)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
