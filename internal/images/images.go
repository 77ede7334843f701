// Package images processes dish photos: validating uploads, normalizing
// the master image, and producing a WebP thumbnail for the swipe deck.
package images

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	MasterMaxSize = 1600
	ThumbnailSize = 256
	JPEGQuality   = 82
	WebPQuality   = 70

	DefaultUploadDir       = "/tmp/swipebite/uploads/dishes"
	DefaultMaxUploadSizeMB = 10
)

// Processed holds both renditions of an uploaded dish photo.
type Processed struct {
	Hash      string
	Master    []byte // JPEG, at most MasterMaxSize on the long edge
	Thumbnail []byte // WebP, ThumbnailSize square-ish
	Width     int
	Height    int
}

// Store writes processed photos under a content-hash directory and hands
// back URL paths for the dish record.
type Store struct {
	uploadDir    string
	maxSizeBytes int64
}

func NewStore(uploadDir string, maxUploadSizeMB int) *Store {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	if maxUploadSizeMB <= 0 {
		maxUploadSizeMB = DefaultMaxUploadSizeMB
	}
	return &Store{
		uploadDir:    uploadDir,
		maxSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Process validates and decodes an upload, then renders the master JPEG
// and the WebP thumbnail.
func (s *Store) Process(content []byte, contentType string) (*Processed, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("empty upload")
	}
	if int64(len(content)) > s.maxSizeBytes {
		return nil, fmt.Errorf("file too large (max %dMB)", s.maxSizeBytes/(1024*1024))
	}

	detected := http.DetectContentType(content)
	if !allowedImageMIME(detected) {
		return nil, fmt.Errorf("unsupported image type %s", detected)
	}
	if provided := normalizeContentType(contentType); strings.HasPrefix(provided, "image/") &&
		!allowedImageMIME(provided) {
		return nil, fmt.Errorf("unsupported image type %s", provided)
	}

	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	master := resizeToFit(decoded, MasterMaxSize, MasterMaxSize)
	masterJPEG, err := encodeJPEG(master, JPEGQuality)
	if err != nil {
		return nil, err
	}

	thumb := resizeToFit(decoded, ThumbnailSize, ThumbnailSize)
	thumbWebP, err := encodeWebP(thumb, WebPQuality)
	if err != nil {
		return nil, err
	}

	bounds := master.Bounds()
	return &Processed{
		Hash:      hashContent(masterJPEG),
		Master:    masterJPEG,
		Thumbnail: thumbWebP,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}, nil
}

// Save writes both renditions to disk and returns their URL paths.
func (s *Store) Save(p *Processed) (imageURL, thumbnailURL string, err error) {
	masterRel := filepath.ToSlash(filepath.Join(p.Hash, "master.jpg"))
	thumbRel := filepath.ToSlash(filepath.Join(p.Hash, "thumb.webp"))

	if err := writeFile(filepath.Join(s.uploadDir, masterRel), p.Master); err != nil {
		return "", "", err
	}
	if err := writeFile(filepath.Join(s.uploadDir, thumbRel), p.Thumbnail); err != nil {
		_ = os.Remove(filepath.Join(s.uploadDir, masterRel))
		return "", "", err
	}
	return "/media/dishes/" + masterRel, "/media/dishes/" + thumbRel, nil
}

// ResolvePath maps a URL path produced by Save back to the file on disk,
// rejecting anything that escapes the upload directory.
func (s *Store) ResolvePath(urlPath string) (string, error) {
	rel := strings.TrimPrefix(urlPath, "/media/dishes/")
	if rel == urlPath || rel == "" || strings.Contains(rel, "..") {
		return "", fmt.Errorf("invalid media path %q", urlPath)
	}
	full := filepath.Join(s.uploadDir, filepath.FromSlash(rel))
	if _, err := os.Stat(full); err != nil {
		return "", err
	}
	return full, nil
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 || (w <= maxWidth && h <= maxHeight) {
		return src
	}

	scale := float64(maxWidth) / float64(w)
	if sh := float64(maxHeight) / float64(h); sh < scale {
		scale = sh
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func allowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func hashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
