package middleware

import (
	"net/http"
	"strings"
)

// MethodOverrideField es el hidden input que agregan los forms de edit/delete.
const MethodOverrideField = "_method"

var overridable = map[string]struct{}{
	http.MethodPut:    {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

// MethodOverride: los forms HTML solo mandan GET/POST, así que un POST con
// _method=PATCH|PUT|DELETE (o header X-HTTP-Method-Override) se enruta con ese verbo.
// Tiene que ir antes del router para que chi matchee el método nuevo.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		m := strings.TrimSpace(r.Header.Get("X-HTTP-Method-Override"))
		if m == "" && isForm(r) {
			// PostFormValue deja r.PostForm cargado; el handler no vuelve a leer el body.
			m = r.PostFormValue(MethodOverrideField)
		}

		m = strings.ToUpper(strings.TrimSpace(m))
		if _, ok := overridable[m]; ok {
			r.Method = m
		}

		next.ServeHTTP(w, r)
	})
}

func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}
