// Package testutil provides HTML fixture builders for pipocas.tv pages used
// across parser, client and provider tests.
package testutil

import (
	"fmt"
	"strings"
)

// LoginPage renders a login page embedding the given CSRF token. An empty
// token renders the page without the meta tag.
func LoginPage(token string) string {
	meta := ""
	if token != "" {
		meta = fmt.Sprintf(`<meta name="csrf-token" content="%s">`, token)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head>%s<title>pipocas.tv - login</title></head>
<body>
<form method="post" action="/login">
<input type="text" name="username"/>
<input type="password" name="password"/>
</form>
<div class="signup">Cria uma conta</div>
</body></html>`, meta)
}

// LoggedInPage renders a minimal page for an authenticated session (no
// signup prompt).
func LoggedInPage() string {
	return `<!DOCTYPE html>
<html><head><title>pipocas.tv</title></head>
<body><div class="user-menu">A minha conta</div></body></html>`
}

// SearchResultsPage renders a results listing linking to the given detail
// paths (e.g. "/legendas/info/12345").
func SearchResultsPage(detailPaths ...string) string {
	var rows strings.Builder
	for _, p := range detailPaths {
		fmt.Fprintf(&rows,
			`<tr><td><a class="text-dark no-decoration" href="%s">result</a></td></tr>`+"\n", p)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><title>pipocas.tv - legendas</title></head>
<body><table>%s</table></body></html>`, rows.String())
}

// DetailPageOptions controls the fields rendered by DetailPage.
type DetailPageOptions struct {
	Release   string
	SubID     string // empty omits the download link
	Hits      int
	Uploader  string // empty omits the colored uploader span
	Rating    string // e.g. "4/5"; empty omits the rating header
	LoggedOut bool   // render the signup prompt
}

// DetailPage renders a /legendas/info/<id> page.
func DetailPage(opts DetailPageOptions) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html><html><head><title>pipocas.tv</title></head><body>`)
	fmt.Fprintf(&b, `<h3 class="title">Legenda <span class="font-normal">%s</span></h3>`, opts.Release)

	if opts.SubID != "" {
		fmt.Fprintf(&b, `<a href="/legendas/download/%s" class="btn">Download</a>`, opts.SubID)
	}

	fmt.Fprintf(&b, `<span class="hits hits-pd"><div>%d</div></span>`, opts.Hits)

	if opts.Uploader != "" {
		fmt.Fprintf(&b, `<span style="color: #B40404">%s</span>`, opts.Uploader)
	}

	if opts.Rating != "" {
		fmt.Fprintf(&b, `<h2 class="mt-3 text-center">%s</h2>`, opts.Rating)
	}

	if opts.LoggedOut {
		b.WriteString(`<div class="signup">Cria uma conta</div>`)
	}

	b.WriteString(`</body></html>`)
	return b.String()
}
