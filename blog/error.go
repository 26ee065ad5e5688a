package blog

import (
	"net/http"

	"github.com/xy-planning-network/writium/api"
)

var (
	ErrArticleNotFound = api.NewError(http.StatusNotFound, "article not found")
	ErrBadQuery        = api.NewError(http.StatusBadRequest, "bad query")
	ErrFileNotFound    = api.NewError(http.StatusNotFound, "file not found")
	ErrPageNotFound    = api.NewError(http.StatusNotFound, "page not found")
)
