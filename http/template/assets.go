package template

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// AssetURI encloses the filesystem static assets are served from and the path they are served under,
// so when called executing a template, emits a valid URI for the asset.
//
// Fingerprinted copies of an asset are preferred:
// for assetPath "css/site.css", a file matching "css/site-*.css" is used if one exists.
// It returns "asset" as the name of the function for convenient passing to a template.FuncMap.
func AssetURI(filesys fs.FS, base string) (string, func(string) string) {
	base = "/" + strings.Trim(base, "/")
	return "asset", func(assetPath string) string {
		assetPath = strings.TrimPrefix(assetPath, "/")
		if filesys == nil {
			return path.Join(base, assetPath)
		}

		ext := path.Ext(assetPath)
		glob := fmt.Sprintf("%s-*%s", strings.TrimSuffix(assetPath, ext), ext)
		matches, err := fs.Glob(filesys, glob)
		if errors.Is(err, path.ErrBadPattern) || len(matches) == 0 {
			return path.Join(base, assetPath)
		}

		return path.Join(base, matches[len(matches)-1])
	}
}
