package transport

import (
	"net/http"
	"strconv"
	"strings"

	"marketplace-be/internal/auth"
	"marketplace-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

// actorFrom returns the authenticated actor. Routes behind RequireActor or
// RequireKind always have one.
func actorFrom(r *http.Request) (auth.Actor, error) {
	actor, ok := utils.GetActorFromContext(r.Context())
	if !ok {
		return auth.Actor{}, errUnauthenticated
	}
	return actor, nil
}

func idParam(r *http.Request, name string) (uint, error) {
	id, err := utils.ToUint(chi.URLParam(r, name))
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// queryInt reads an integer query parameter; absent or malformed values
// yield 0 so pagination falls back to its defaults.
func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(name)))
	if err != nil {
		return 0
	}
	return n
}

func queryUint(r *http.Request, name string) (*uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := utils.ToUint(raw)
	if err != nil || id == 0 {
		return nil, errInvalidID
	}
	return &id, nil
}
