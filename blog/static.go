package blog

import (
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/xy-planning-network/writium/api"
)

const octetStream = "application/octet-stream"

// mediaTypes are preferred over the system mime table for the files a blog mostly serves.
var mediaTypes = map[string]string{
	".css":  "text/css",
	".gif":  "image/gif",
	".htm":  "text/html",
	".html": "text/html",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".js":   "application/javascript",
	".png":  "image/png",
	".svg":  "image/svg+xml",
}

// mediaType guesses the media type of name by its extension.
func mediaType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if mt, ok := mediaTypes[ext]; ok {
		return mt
	}

	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}

	return octetStream
}

// serveFile responds with the regular file name in fsys.
// Directories, missing files and names that are not valid fs paths are ErrFileNotFound.
func serveFile(fsys fs.FS, name string) (*api.Response, error) {
	if !fs.ValidPath(name) || name == "." {
		return nil, ErrFileNotFound
	}

	info, err := fs.Stat(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrFileNotFound
	}

	if err != nil {
		return nil, err
	}

	if !info.Mode().IsRegular() {
		return nil, ErrFileNotFound
	}

	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}

	return api.NewResponse(http.StatusOK).WithBody(mediaType(name), b), nil
}

// Static serves the files of a directory under "/static".
type Static struct {
	files fs.FS
}

// NewStatic constructs a *Static serving files.
func NewStatic(files fs.FS) *Static {
	return &Static{files: files}
}

// Name implements api.Api.
func (s *Static) Name() []string { return []string{"static"} }

// Get responds with the file named by the rest of the path.
func (s *Static) Get(req *api.Request) (*api.Response, error) {
	return serveFile(s.files, strings.Join(req.Path(), "/"))
}
