package batch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Source represents a discovered image file.
type Source struct {
	// Path is the file path inside the filesystem.
	Path string
	// RelPath is the path relative to the input directory, with forward slashes.
	RelPath string
	// Format is the source format (png, jpeg, gif, bmp, tiff, webp).
	Format string
	// Size is the file size in bytes.
	Size int64
}

// imageExtensions lists recognized image file extensions.
var imageExtensions = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
	".webp": "webp",
}

// IsImage reports whether path has a recognized image extension.
func IsImage(path string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Scan walks root and returns all image sources in walk order.
func Scan(fs afero.Fs, root string) ([]Source, error) {
	var sources []Source

	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// Skip hidden directories.
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		format, ok := imageExtensions[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		sources = append(sources, Source{
			Path:    path,
			RelPath: filepath.ToSlash(relPath),
			Format:  format,
			Size:    info.Size(),
		})

		return nil
	})

	return sources, err
}

// OutputPath maps a source to its .xnb path below outDir, keeping the
// relative directory layout.
func OutputPath(outDir string, src Source) string {
	rel := filepath.FromSlash(src.RelPath)
	return filepath.Join(outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".xnb")
}
