package template

import (
	html "html/template"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/xy-planning-network/writium"
)

// DateLayout is the layout FormatDate uses for an empty layout.
const DateLayout = "January 2, 2006"

// AddFn includes the named function in the Parse function map.
func (p *Parse) AddFn(name string, fn any) {
	if p.fns == nil {
		p.fns = make(html.FuncMap)
	}
	p.fns[name] = fn
}

// Env encloses some string representing an environment.
// It returns "env" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning the enclosed value when called.
func Env(e writium.Environment) (string, func() string) {
	return "env", func() string { return e.String() }
}

// FormatDate returns "formatDate" as the name of the function for convenient passing to a template.FuncMap
// and returns a function formatting a time.Time with layout, or DateLayout if layout is empty.
func FormatDate(layout string) (string, func(time.Time) string) {
	if layout == "" {
		layout = DateLayout
	}

	return "formatDate", func(t time.Time) string { return t.Format(layout) }
}

// Nonce returns "nonce" as the name of the function for convenient passing to a template.FuncMap
// and returns a function generating a uuid.
func Nonce() (string, func() string) {
	return "nonce", func() string { return uuid.NewString() }
}

// RootUrl encloses the *url.URL representing the base URL of the web app.
// It returns "rootUrl" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning its *url.URL.String().
// If u is nil, that function will always return an empty string.
func RootUrl(u *url.URL) (string, func() string) {
	if u == nil {
		return "rootUrl", func() string { return "" }
	}

	s := u.String()
	return "rootUrl", func() string { return s }
}
