/*
Package template parses HTML templates from a filesystem layered over a set of bundled defaults.

The bundled templates render a blog:
"base.tmpl" lays out a page, calling the "title" and "content" templates
that "index.tmpl", "post.tmpl" and "error.tmpl" each define.
Any of them can be replaced by placing a file of the same name in the filesystem set with WithFS.
*/
package template
