package resp

import (
	"net/http"

	"github.com/xy-planning-network/writium/api"
)

// HandlerFunc adapts an *http.Request into the result of serving it through root.
//
// The *http.Request is converted with convert,
// and conversion failures are written as errors, same as routing failures.
func HandlerFunc(d *Responder, root api.Api, convert func(*http.Request) (*api.Request, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := convert(r)
		if err != nil {
			d.Err(w, r, api.NewError(http.StatusBadRequest, "bad request"))
			return
		}

		res, err := api.Serve(root, req)
		d.Write(w, r, res, err)
	}
}
