package blog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/xy-planning-network/writium"
)

const (
	// DefaultAuthor is the author of an article whose metadata names none.
	DefaultAuthor = "Anonymous"

	// DefaultTitle is the title of an article whose metadata names none.
	DefaultTitle = "Untitled"

	// PubDateLayout is the layout of the pub-date in metadata.json.
	PubDateLayout = "2006-01-02"

	contentFile  = "content.md"
	metadataFile = "metadata.json"
)

// Metadata describes an article.
type Metadata struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pubDate"`
	Title   string    `json:"title"`
}

// metadataJSON is the shape of metadata.json.
type metadataJSON struct {
	Author  string `json:"author"`
	PubDate string `json:"pub-date"`
	Title   string `json:"title"`
}

// An Order sorts digests by publication date.
type Order string

const (
	Newest Order = "newest"
	Oldest Order = "oldest"
)

func (o Order) String() string { return string(o) }

func (o Order) Valid() error {
	switch o {
	case Newest, Oldest:
		return nil
	default:
		return fmt.Errorf("%w: %s is not an Order", writium.ErrNotValid, o)
	}
}

// isArticleID reports whether id can name an article directory.
func isArticleID(id string) bool {
	return id != "" && !strings.HasPrefix(id, ".") && !strings.Contains(id, "/") && fs.ValidPath(id)
}

// readMetadata loads the Metadata of the article id from fsys.
//
// An article without content.md does not exist.
// Fields missing from metadata.json, or metadata.json itself, fall back to
// DefaultAuthor, DefaultTitle and the modification time of content.md.
func readMetadata(fsys fs.FS, id string) (Metadata, error) {
	if !isArticleID(id) {
		return Metadata{}, fmt.Errorf("%w: article %q", writium.ErrNotExist, id)
	}

	info, err := fs.Stat(fsys, path.Join(id, contentFile))
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: article %q: %s", writium.ErrNotExist, id, err)
	}

	if info.IsDir() {
		return Metadata{}, fmt.Errorf("%w: article %q has no content", writium.ErrNotExist, id)
	}

	var raw metadataJSON
	b, err := fs.ReadFile(fsys, path.Join(id, metadataFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Metadata{}, fmt.Errorf("%w: article %q: %s", writium.ErrUnexpected, id, err)
	default:
		if err := json.Unmarshal(b, &raw); err != nil {
			return Metadata{}, fmt.Errorf("%w: article %q: %s", writium.ErrBadFormat, id, err)
		}
	}

	meta := Metadata{
		ID:      id,
		Author:  raw.Author,
		PubDate: info.ModTime(),
		Title:   raw.Title,
	}

	if meta.Author == "" {
		meta.Author = DefaultAuthor
	}

	if meta.Title == "" {
		meta.Title = DefaultTitle
	}

	if raw.PubDate != "" {
		if t, err := time.Parse(PubDateLayout, raw.PubDate); err == nil {
			meta.PubDate = t
		}
	}

	return meta, nil
}

// sortDigests orders digests by publication date, breaking ties by ID.
func sortDigests(digests []Metadata, order Order) {
	sort.Slice(digests, func(i, j int) bool {
		a, b := digests[i], digests[j]
		if a.PubDate.Equal(b.PubDate) {
			return a.ID < b.ID
		}

		if order == Oldest {
			return a.PubDate.Before(b.PubDate)
		}

		return a.PubDate.After(b.PubDate)
	})
}
