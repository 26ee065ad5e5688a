package blog_test

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/writium/api"
	"github.com/xy-planning-network/writium/blog"
	"github.com/xy-planning-network/writium/http/template"
)

var bareDate = time.Date(2023, time.May, 6, 7, 8, 9, 0, time.UTC)

// newPosts lays out three articles, newest first: second, hello, bare.
// broken and empty are not articles.
func newPosts() fstest.MapFS {
	return fstest.MapFS{
		"hello/content.md":     {Data: []byte("# Hello\n\nSome *text*.\n")},
		"hello/metadata.json":  {Data: []byte(`{"title": "Hello", "author": "Akari", "pub-date": "2024-01-02"}`)},
		"hello/pic.png":        {Data: []byte("png")},
		"second/content.md":    {Data: []byte("Second post.\n")},
		"second/metadata.json": {Data: []byte(`{"title": "Second", "pub-date": "2024-02-03"}`)},
		"bare/content.md":      {Data: []byte("No metadata.\n"), ModTime: bareDate},
		"broken/content.md":    {Data: []byte("Broken.\n")},
		"broken/metadata.json": {Data: []byte("{")},
		"empty/notes.txt":      {Data: []byte("notes")},
		"readme.txt":           {Data: []byte("readme")},
	}
}

func newParser(fsys fstest.MapFS, fns bool) *template.Parse {
	opts := []template.ParserOptFn{template.WithFS(fsys)}
	if fns {
		opts = append(opts,
			template.WithFn(template.FormatDate(blog.PubDateLayout)),
			template.WithFn(template.AssetURI(nil, "static")),
		)
	}

	return template.NewParser(opts...)
}

func newArticles(t *testing.T, posts fstest.MapFS, opts ...blog.ArticlesOptFn) *blog.Articles {
	t.Helper()

	a, err := blog.NewArticles(posts, newParser(fstest.MapFS{}, true), opts...)
	require.Nil(t, err)

	return a
}

func serve(t *testing.T, root api.Api, method, target string, headers ...string) (*api.Response, error) {
	t.Helper()

	req, err := api.NewRequest(method, target)
	require.Nil(t, err)

	for i := 0; i+1 < len(headers); i += 2 {
		req.WithHeader(headers[i], headers[i+1])
	}

	return api.Serve(root, req)
}
