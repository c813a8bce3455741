package gateway

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Novip1906/join/internal/contextkeys"
	"github.com/Novip1906/join/pkg/logging"
)

const (
	errInvalidBodyMessage   = "request body is not valid JSON"
	errInvalidTaskIdMessage = "task id must be a number"
)

func (g *Gateway) writeError(w http.ResponseWriter, r *http.Request, err error) {
	_, outbound := runtime.MarshalerForRequest(g.mux, r)
	runtime.HTTPError(r.Context(), g.mux, outbound, w, r, err)
}

func (g *Gateway) writeJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	_, outbound := runtime.MarshalerForRequest(g.mux, r)

	buf, err := outbound.Marshal(v)
	if err != nil {
		contextkeys.GetLogger(r.Context()).Error("marshal response", logging.Err(err))
		g.writeError(w, r, status.Error(codes.Internal, "internal error"))
		return
	}

	w.Header().Set("Content-Type", outbound.ContentType(v))
	w.WriteHeader(code)
	_, _ = w.Write(buf)
}

// decode reads the JSON body into v. An empty body leaves v untouched.
func (g *Gateway) decode(r *http.Request, v any) error {
	inbound, _ := runtime.MarshalerForRequest(g.mux, r)

	err := inbound.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		contextkeys.GetLogger(r.Context()).Debug("invalid request body", logging.Err(err))
		return status.Error(codes.InvalidArgument, errInvalidBodyMessage)
	}
	return nil
}

func taskIdParam(pathParams map[string]string) (int64, error) {
	id, err := strconv.ParseInt(pathParams["id"], 10, 64)
	if err != nil {
		return 0, status.Error(codes.InvalidArgument, errInvalidTaskIdMessage)
	}
	return id, nil
}
