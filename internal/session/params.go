package session

import (
	"net/url"
	"strconv"

	"shotwall/internal/repository"
)

// Query parameter names and values of the shareable URL contract. The
// filter parameters keep the wire names the frontend has always used.
const (
	ParamShot     = "shot"
	ParamModal    = "modal"
	ParamStatus   = "estado"
	ParamCategory = "categoria"
	ParamBoard    = "tablero"
	ParamSearch   = "q"

	StatusValueApproved = "aprobados"
	StatusValuePending  = "pendientes"
	BoardValueAll       = "todos"
)

// FilterFromURL derives a FeedFilter from the persisted query string. An
// unknown estado falls back to the public wall. A board narrows the page by
// membership and never by author: boards mostly hold other users' shots.
func FilterFromURL(params url.Values) FeedFilter {
	filter := FeedFilter{Scope: repository.ScopePublic}

	if params.Get(ParamStatus) == StatusValuePending {
		filter.Scope = repository.ScopeModeration
	}

	if raw := params.Get(ParamCategory); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			filter.CategoryID = id
		}
	}

	if raw := params.Get(ParamBoard); raw != "" && raw != BoardValueAll {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			filter.BoardID = id
		}
	}

	filter.Search = params.Get(ParamSearch)

	return filter
}
