package middleware

import "net/http"

// MethodOverride lets HTML forms reach the PUT/DELETE routes through a
// hidden "_method" field on a POST. It has to wrap the engine rather than
// run as a gin middleware, because the router has already matched the route
// by the time gin middleware runs.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch r.PostFormValue("_method") {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}
