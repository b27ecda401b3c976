package tracker

import (
	"encoding/json"
	"net/http"
)

func jsonDecode(req *http.Request, v any) error {
	return json.NewDecoder(req.Body).Decode(v)
}
