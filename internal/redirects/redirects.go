// Package redirects compiles the site's redirect table into the Cloudflare
// Pages `_redirects` format and serves it from the preview server.
package redirects

import (
	"fmt"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultCode is used when an entry leaves Code unset.
const DefaultCode = http.StatusMovedPermanently

// Path is where the compiled table is published in the built site.
const Path = "/_redirects"

// Entry maps an old path to a new one.
type Entry struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
	Code int    `yaml:"code,omitempty" json:"code,omitempty"`
}

// StatusCode returns the entry's code, or DefaultCode when unset.
func (e Entry) StatusCode() int {
	if e.Code == 0 {
		return DefaultCode
	}
	return e.Code
}

// Validate checks that both paths are site-absolute and the code is a
// redirect status.
func (e Entry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.From, validation.Required, validation.By(sitePath)),
		validation.Field(&e.To, validation.Required),
		validation.Field(&e.Code, validation.When(e.Code != 0, validation.Min(300), validation.Max(399))),
	)
}

func sitePath(value any) error {
	s, _ := value.(string)
	if !strings.HasPrefix(s, "/") {
		return validation.NewError("validation_site_path", "must start with /")
	}
	return nil
}

// Compile renders one rule per line, twice per entry: once for the path as
// written and once with a trailing slash. Input order is preserved and
// duplicates are passed through.
func Compile(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		code := e.StatusCode()
		fmt.Fprintf(&b, "%s %s %d\n", e.From, e.To, code)
		fmt.Fprintf(&b, "%s/ %s %d\n", e.From, e.To, code)
	}
	return b.String()
}

// Table returns middleware answering requests for redirected paths, with
// and without a trailing slash. The first matching entry wins; everything
// else falls through to next.
func Table(entries []Entry) func(http.Handler) http.Handler {
	rules := make(map[string]Entry, len(entries)*2)
	for _, e := range entries {
		for _, from := range []string{e.From, e.From + "/"} {
			if _, exists := rules[from]; !exists {
				rules[from] = e
			}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if e, ok := rules[r.URL.Path]; ok {
				http.Redirect(w, r, e.To, e.StatusCode())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
