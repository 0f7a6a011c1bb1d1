package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"slices"

	"github.com/matzehuels/depsolve/pkg/buildinfo"
	"github.com/matzehuels/depsolve/pkg/dag/transform"
	"github.com/matzehuels/depsolve/pkg/errors"
	"github.com/matzehuels/depsolve/pkg/feed"
	"github.com/matzehuels/depsolve/pkg/render/nodelink"
	"github.com/matzehuels/depsolve/pkg/resolver"
	"github.com/matzehuels/depsolve/pkg/universe"
)

// Package is one entry of the install set.
type Package struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

// ResolveResponse is the body of a successful POST /v1/resolve.
type ResolveResponse struct {
	Packages []Package  `json:"packages"`
	Waves    [][]string `json:"waves"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps [ErrorBody].
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// handleResolve resolves the JSON request in the body. With ?format=dot
// the install graph is returned as Graphviz source instead, transitively
// reduced when ?reduce=true is also given.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.opts.ResolveTimeout)
	defer cancel()

	req, err := universe.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes), universe.FormatJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Behavior == "" {
		req.Behavior = s.opts.Behavior
	}

	var gathered []resolver.Candidate
	if len(req.Feeds) > 0 {
		if gathered, err = s.gather(ctx, req); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	res, err := universe.Solve(ctx, s.opts.Resolver, req, gathered)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "dot" {
		if r.URL.Query().Get("reduce") == "true" {
			transform.TransitiveReduction(res.Graph)
		}
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(nodelink.ToDOT(res.Graph, nodelink.Options{Ranges: true, Waves: true})))
		return
	}

	resp := ResolveResponse{Packages: make([]Package, 0, len(res.Packages)), Waves: res.Waves}
	for _, id := range res.Packages {
		resp.Packages = append(resp.Packages, Package{ID: id.ID, Version: id.Version.String()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) gather(ctx context.Context, req *universe.Request) ([]resolver.Candidate, error) {
	sources, err := feed.NewHTTPSources(req.Feeds, s.opts.Feed)
	if err != nil {
		return nil, err
	}
	return feed.NewWalker(s.opts.Walker, sources...).GatherCandidates(ctx, s.opts.Feed, slices.Concat(req.Required, req.Targets)...)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)

	switch {
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, context.Canceled):
		code, msg = errors.ErrCodeTimeout, "resolution did not finish in time"
	case status == http.StatusInternalServerError:
		s.opts.Logger.Error("resolve failed", "err", err, "request_id", RequestID(r.Context()))
		code, msg = errors.ErrCodeInternal, "internal error"
	case code == "":
		code = errors.ErrCodeInvalidInput
	}

	writeJSON(w, status, ErrorResponse{Error: ErrorBody{Code: string(code), Message: msg}})
}

func statusFor(err error) int {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return http.StatusGatewayTimeout
	}
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeMissingPackage,
		errors.ErrCodeUnsatisfiable,
		errors.ErrCodeCircularDependency,
		errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidPackage,
		errors.ErrCodeInvalidVersion,
		errors.ErrCodeInvalidRange,
		errors.ErrCodeInvalidBehavior,
		errors.ErrCodePackageNotFound:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout, errors.ErrCodeRateLimited:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
