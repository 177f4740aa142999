package middleware

import "net/http"

// ResponseRecorder wraps ResponseWriter, captures the status code and
// lets middlewares run a hook just before the first write.
type ResponseRecorder struct {
	http.ResponseWriter
	status      int
	wrote       bool
	beforeWrite func(http.ResponseWriter)
}

func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	return &ResponseRecorder{ResponseWriter: w, status: http.StatusOK}
}

// SetBeforeWrite registers fn to run once, right before headers are
// flushed. Used to persist cookies decided late in the request.
func (rw *ResponseRecorder) SetBeforeWrite(fn func(http.ResponseWriter)) {
	rw.beforeWrite = fn
}

func (rw *ResponseRecorder) WriteHeader(statusCode int) {
	if !rw.wrote {
		rw.wrote = true
		if rw.beforeWrite != nil {
			rw.beforeWrite(rw.ResponseWriter)
		}
	}
	rw.status = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *ResponseRecorder) Write(b []byte) (int, error) {
	if !rw.wrote {
		rw.wrote = true
		if rw.beforeWrite != nil {
			rw.beforeWrite(rw.ResponseWriter)
		}
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *ResponseRecorder) Status() int { return rw.status }
