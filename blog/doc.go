/*
Package blog serves a directory of markdown articles through writium Apis.

Every directory under the post directory is an article:

	posts/
		hello-world/
			content.md
			metadata.json
			diagram.png

metadata.json is optional and holds the title, author and pub-date (YYYY-MM-DD) of the article.

[Articles] renders the digest index and article pages, memoizing rendered pages in a [cache.Cache].
[Static] serves assets, and [Admin] inspects and purges the article cache.

	articles, err := blog.NewArticles(os.DirFS(postDir), parser)
	if err != nil {
		return err
	}

	root := api.NewNamespace(nil).Bind(
		articles,
		blog.NewStatic(os.DirFS(staticDir)),
		blog.NewAdmin(articles.Cache()),
	)
*/
package blog
