package handler

import "net/http"

type rawResponse struct {
	status      int
	contentType string
	body        []byte
}

func (r rawResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	if r.contentType != "" {
		w.Header().Set("Content-Type", r.contentType)
	}
	w.WriteHeader(r.status)
	if len(r.body) == 0 {
		return nil
	}
	_, err := w.Write(r.body)
	return err
}

// Text responds 200 with a plain-text body.
func Text(s string) Response {
	return rawResponse{status: http.StatusOK, contentType: "text/plain; charset=utf-8", body: []byte(s)}
}

// Raw responds 200 with body written verbatim.
func Raw(contentType string, body []byte) Response {
	return rawResponse{status: http.StatusOK, contentType: contentType, body: body}
}

// Empty responds with status and no body.
func Empty(status int) Response {
	return rawResponse{status: status}
}
