package httpx

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes registers one page's endpoints behind its guard and metrics
type Routes struct {
	router  *mux.Router
	guard   *Guard
	metrics *Metrics
	page    string
}

func NewRoutes(router *mux.Router, guard *Guard, metrics *Metrics, page string) *Routes {
	return &Routes{router: router, guard: guard, metrics: metrics, page: page}
}

// Handle registers fn for method on path
func (rt *Routes) Handle(method, path string, fn http.HandlerFunc) {
	h := rt.guard.RequirePage(rt.page, fn)
	if rt.metrics != nil {
		h = rt.metrics.Wrap(path, h)
	}
	rt.router.HandleFunc(path, h).Methods(method)
}
