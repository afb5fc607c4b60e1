package helper

import (
	"path/filepath"
	"strings"
)

const MaxImageSize = 5 << 20

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ImageContentType returns the content type for an accepted image file name.
func ImageContentType(filename string) (string, bool) {
	ct, ok := allowedImageTypes[strings.ToLower(filepath.Ext(filename))]
	return ct, ok
}

func ImageURL(publicURL, id string) string {
	return strings.TrimSuffix(publicURL, "/") + "/api/images/" + id
}
