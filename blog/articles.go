package blog

import (
	"bytes"
	"errors"
	"fmt"
	html "html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/xy-planning-network/writium"
	"github.com/xy-planning-network/writium/api"
	"github.com/xy-planning-network/writium/cache"
	"github.com/xy-planning-network/writium/http/req"
	"github.com/xy-planning-network/writium/http/template"
	"github.com/xy-planning-network/writium/logger"
)

const (
	// LatestHeader names the article a request for the latest article was answered with.
	LatestHeader = "X-Writium-Latest"

	htmlType = "text/html; charset=utf-8"
	latest   = "latest"

	baseTmpl  = "base.tmpl"
	errorTmpl = "error.tmpl"
	indexTmpl = "index.tmpl"
	postTmpl  = "post.tmpl"
)

// A Page is a rendered article.
type Page struct {
	ID   string
	HTML []byte
}

// IndexPage is the data index.tmpl renders.
type IndexPage struct {
	Page    int        `json:"page"`
	Digests []Metadata `json:"digests"`
	HasPrev bool       `json:"hasPrev"`
	Prev    int        `json:"prev"`
	HasNext bool       `json:"hasNext"`
	Next    int        `json:"next"`
}

// PostPage is the data post.tmpl renders.
type PostPage struct {
	Meta    Metadata
	Content html.HTML
}

// ErrorPage is the data error.tmpl renders.
type ErrorPage struct {
	Status int
	Msg    string
}

type digestQuery struct {
	Page  int   `schema:"page" validate:"gte=0"`
	Order Order `schema:"order" validate:"omitempty,enum"`
}

// Articles serves the articles found in a post directory under "/articles":
//
//	GET /articles?page=N&order=newest  the digest index, JSON if the request accepts it
//	GET /articles/<id>/                the rendered article
//	GET /articles/<id>/<file>          a file next to the article, e.g. an image
//	GET /articles/latest               the most recently published article
//
// Articles must be bound directly to the root of the Api tree.
type Articles struct {
	posts   fs.FS
	perPage int

	logger logger.Logger
	md     goldmark.Markdown
	parser *req.Parser
	pages  *cache.Cache[Page, *Articles]

	errPage *html.Template
	index   *html.Template
	post    *html.Template
}

// NewArticles constructs *Articles serving the article directories in posts.
//
// p must provide the functions the templates call: "asset" and "formatDate".
// NewArticles returns writium.ErrBadConfig if the templates cannot be parsed.
func NewArticles(posts fs.FS, p template.Parser, opts ...ArticlesOptFn) (*Articles, error) {
	cfg := &articlesConfig{
		capacity: DefaultCapacity,
		logger:   logger.Noop{},
		perPage:  DefaultDigestsPerPage,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	a := &Articles{
		posts:   posts,
		perPage: cfg.perPage,
		logger:  cfg.logger,
		md:      goldmark.New(goldmark.WithExtensions(extension.GFM)),
		parser:  req.NewParser(),
	}

	var err error
	for _, t := range []struct {
		dst  **html.Template
		file string
	}{
		{&a.errPage, errorTmpl},
		{&a.index, indexTmpl},
		{&a.post, postTmpl},
	} {
		*t.dst, err = p.Parse(baseTmpl, t.file)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %s", writium.ErrBadConfig, t.file, err)
		}
	}

	cacheOpts := []cache.Option{cache.WithLogger(cfg.logger)}
	if cfg.store != nil {
		cacheOpts = append(cacheOpts, cache.WithStore[Page](cfg.store))
	}

	a.pages, err = cache.New[Page, *Articles](cfg.capacity, generatePage, disposePage, a, cacheOpts...)
	if err != nil {
		return nil, err
	}

	return a, nil
}

// generatePage renders the article id for the cache.
func generatePage(a *Articles, id string) (Page, bool) {
	p, err := a.render(id)
	if errors.Is(err, writium.ErrNotExist) {
		return Page{}, false
	}

	if err != nil {
		a.logger.Error("failed rendering article", &logger.LogContext{
			Data:  map[string]any{"article": id},
			Error: err,
		})
		return Page{}, false
	}

	return p, true
}

// disposePage reports an evicted page.
// Handles already given out keep serving the HTML.
func disposePage(a *Articles, id string, p *Page) {
	a.logger.Debug("article evicted", &logger.LogContext{
		Data: map[string]any{"article": id, "bytes": len(p.HTML)},
	})
}

// Cache returns the cache of rendered pages.
func (a *Articles) Cache() *cache.Cache[Page, *Articles] { return a.pages }

// Name implements api.Api.
func (a *Articles) Name() []string { return []string{"articles"} }

// Get implements api.Getter.
func (a *Articles) Get(r *api.Request) (*api.Response, error) {
	segs := r.Path()
	switch {
	case len(segs) == 0, len(segs) == 1 && segs[0] == "":
		return a.getIndex(r)

	case len(segs) == 1 && segs[0] == latest:
		return a.getLatest()

	case len(segs) == 1:
		// Relative links in an article resolve against its directory.
		loc := a.location(segs[0])
		return api.NewResponse(http.StatusFound).WithHeader("Location", loc), nil

	case len(segs) == 2 && segs[1] == "":
		return a.getArticle(r, segs[0])

	default:
		if !isArticleID(segs[0]) {
			return nil, ErrFileNotFound
		}

		return serveFile(a.posts, strings.Join(segs, "/"))
	}
}

// Postroute implements api.Postrouter, rendering error.tmpl for anything not found.
func (a *Articles) Postroute(res *api.Response, err error) (*api.Response, error) {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Status() != http.StatusNotFound {
		return res, err
	}

	b, rerr := execute(a.errPage, ErrorPage{Status: apiErr.Status(), Msg: apiErr.Description()})
	if rerr != nil {
		a.logger.Error("failed rendering error page", &logger.LogContext{Error: rerr})
		return res, err
	}

	return api.NewResponse(apiErr.Status()).WithBody(htmlType, b), nil
}

// Digests lists the Metadata of every article in order.
// Directories that are not well-formed articles are skipped.
func (a *Articles) Digests(order Order) ([]Metadata, error) {
	entries, err := fs.ReadDir(a.posts, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: reading posts: %s", writium.ErrUnexpected, err)
	}

	digests := make([]Metadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := readMetadata(a.posts, entry.Name())
		if err != nil {
			a.logger.Debug("skipping article", &logger.LogContext{Error: err})
			continue
		}

		digests = append(digests, meta)
	}

	sortDigests(digests, order)
	return digests, nil
}

func (a *Articles) getArticle(r *api.Request, id string) (*api.Response, error) {
	if !isArticleID(id) {
		return nil, ErrArticleNotFound
	}

	h, ok := a.pages.GetContext(r.Context(), id)
	if !ok {
		return nil, ErrArticleNotFound
	}

	return api.NewResponse(http.StatusOK).WithBody(htmlType, h.Load().HTML), nil
}

func (a *Articles) getIndex(r *api.Request) (*api.Response, error) {
	var q digestQuery
	if err := a.parser.ParseQueryParams(r.Query(), &q); err != nil {
		a.logger.Debug("bad index query", &logger.LogContext{Error: err})
		return nil, ErrBadQuery
	}

	if q.Order == "" {
		q.Order = Newest
	}

	digests, err := a.Digests(q.Order)
	if err != nil {
		return nil, err
	}

	// Compare page numbers, not offsets, so a huge page cannot overflow.
	if q.Page > 0 && q.Page > (len(digests)-1)/a.perPage {
		return nil, ErrPageNotFound
	}

	start := q.Page * a.perPage

	end := start + a.perPage
	if end > len(digests) {
		end = len(digests)
	}

	page := IndexPage{
		Page:    q.Page,
		Digests: digests[start:end],
		HasPrev: q.Page > 0,
		Prev:    q.Page - 1,
		HasNext: end < len(digests),
		Next:    q.Page + 1,
	}

	if strings.Contains(r.Header().Get("Accept"), "application/json") {
		return api.NewResponse(http.StatusOK).WithJSON(page)
	}

	b, err := execute(a.index, page)
	if err != nil {
		return nil, err
	}

	return api.NewResponse(http.StatusOK).WithBody(htmlType, b), nil
}

// getLatest asks for the newest article to be served in its place.
func (a *Articles) getLatest() (*api.Response, error) {
	digests, err := a.Digests(Newest)
	if err != nil {
		return nil, err
	}

	if len(digests) == 0 {
		return nil, ErrArticleNotFound
	}

	id := digests[0].ID
	call, err := api.NewRequest(http.MethodGet, a.location(id))
	if err != nil {
		return nil, err
	}

	return api.NewResponse(http.StatusOK).WithCallback(call, func(res *api.Response, err error) (*api.Response, error) {
		if err != nil || res == nil {
			return res, err
		}

		return res.WithHeader(LatestHeader, id), nil
	}), nil
}

// location is where the article id is served.
func (a *Articles) location(id string) string {
	return api.FullName(a.Name()) + "/" + url.PathEscape(id) + "/"
}

// render converts content.md of the article id to HTML and lays it out with post.tmpl.
func (a *Articles) render(id string) (Page, error) {
	meta, err := readMetadata(a.posts, id)
	if err != nil {
		return Page{}, err
	}

	src, err := fs.ReadFile(a.posts, path.Join(id, contentFile))
	if err != nil {
		return Page{}, fmt.Errorf("%w: article %q: %s", writium.ErrUnexpected, id, err)
	}

	var content bytes.Buffer
	if err := a.md.Convert(src, &content); err != nil {
		return Page{}, fmt.Errorf("%w: article %q: %s", writium.ErrBadFormat, id, err)
	}

	b, err := execute(a.post, PostPage{Meta: meta, Content: html.HTML(content.String())})
	if err != nil {
		return Page{}, err
	}

	return Page{ID: id, HTML: b}, nil
}

func execute(t *html.Template, data any) ([]byte, error) {
	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		return nil, fmt.Errorf("%w: executing %s: %s", writium.ErrUnexpected, t.Name(), err)
	}

	return b.Bytes(), nil
}
