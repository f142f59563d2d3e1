package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	errorsmod "cosmossdk.io/errors"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"snakegame/docs"
	"snakegame/x/snake/types"
)

// maxTxBodySize bounds the body of a transaction submission.
const maxTxBodySize = 64 << 10

// RegisterAPIRoutes mounts the game routes on router, both at the root and
// behind the /api prefix so proxied access works.
func (app *App) RegisterAPIRoutes(router *mux.Router, gatherer prometheus.Gatherer) {
	app.registerSnakeRoutes(router)
	app.registerSnakeRoutes(router.PathPrefix("/api").Subrouter())

	docs.RegisterOpenAPIService(Name, router)

	if gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
}

// NewRouter returns a router serving the game routes and metrics.
func (app *App) NewRouter(gatherer prometheus.Gatherer) *mux.Router {
	router := mux.NewRouter()
	app.RegisterAPIRoutes(router, gatherer)
	return router
}

func (app *App) registerSnakeRoutes(router *mux.Router) {
	r := router.PathPrefix("/" + types.ModuleName).Subrouter()

	r.HandleFunc("/leaderboard", app.queryHandler(func(ctx context.Context, qs types.QueryServer, _ map[string]string) (any, error) {
		return qs.Leaderboard(ctx, &types.QueryLeaderboardRequest{})
	})).Methods(http.MethodGet)

	r.HandleFunc("/players/{owner}", app.queryHandler(func(ctx context.Context, qs types.QueryServer, vars map[string]string) (any, error) {
		return qs.Player(ctx, &types.QueryPlayerRequest{Owner: vars["owner"]})
	})).Methods(http.MethodGet)

	r.HandleFunc("/players/{owner}/address", app.queryHandler(func(ctx context.Context, qs types.QueryServer, vars map[string]string) (any, error) {
		return qs.PlayerAddress(ctx, &types.QueryPlayerAddressRequest{Owner: vars["owner"]})
	})).Methods(http.MethodGet)

	r.HandleFunc("/players/{owner}/rank", app.queryHandler(func(ctx context.Context, qs types.QueryServer, vars map[string]string) (any, error) {
		return qs.Rank(ctx, &types.QueryRankRequest{Owner: vars["owner"]})
	})).Methods(http.MethodGet)

	r.HandleFunc("/accounts/{address}/sequence", func(w http.ResponseWriter, req *http.Request) {
		address := mux.Vars(req)["address"]
		seq, err := app.Sequence(req.Context(), address)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, SequenceResponse{Address: address, Sequence: seq})
	}).Methods(http.MethodGet)

	r.HandleFunc("/genesis", func(w http.ResponseWriter, req *http.Request) {
		bz, err := app.ExportGenesis(req.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(bz)
	}).Methods(http.MethodGet)

	r.HandleFunc("/txs", app.handleTx).Methods(http.MethodPost)
}

type queryFunc func(ctx context.Context, qs types.QueryServer, vars map[string]string) (any, error)

func (app *App) queryHandler(fn queryFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		var res any
		err := app.Query(r.Context(), func(ctx context.Context, qs types.QueryServer) error {
			var err error
			res, err = fn(ctx, qs, vars)
			return err
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (app *App) handleTx(w http.ResponseWriter, r *http.Request) {
	bz, err := io.ReadAll(io.LimitReader(r.Body, maxTxBodySize+1))
	if err != nil {
		writeError(w, errorsmod.Wrap(types.ErrInvalidRequest, err.Error()))
		return
	}
	if len(bz) > maxTxBodySize {
		writeError(w, errorsmod.Wrap(types.ErrInvalidRequest, "transaction too large"))
		return
	}
	var tx Tx
	if err := json.Unmarshal(bz, &tx); err != nil {
		writeError(w, errorsmod.Wrap(types.ErrInvalidRequest, err.Error()))
		return
	}
	res, err := app.Deliver(r.Context(), tx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, code int, obj any) {
	bz, err := json.Marshal(obj)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(bz)
}

// writeError mirrors the grpc-gateway error payload.
func writeError(w http.ResponseWriter, err error) {
	code, httpCode, msg := errorCodes(err)
	writeJSON(w, httpCode, map[string]any{
		"code":    int32(code),
		"message": msg,
		"details": []any{},
	})
}

// errorCodes maps module errors and query status errors to a gRPC code, an
// HTTP status and a message.
func errorCodes(err error) (codes.Code, int, string) {
	switch {
	case errorsmod.IsOf(err, types.ErrNotFound):
		return codes.NotFound, http.StatusNotFound, err.Error()
	case errorsmod.IsOf(err, types.ErrAlreadyExists):
		return codes.AlreadyExists, http.StatusConflict, err.Error()
	case errorsmod.IsOf(err, types.ErrUnauthorized):
		return codes.PermissionDenied, http.StatusForbidden, err.Error()
	case errorsmod.IsOf(err, types.ErrCapacityExceeded, types.ErrSerializationOverflow, types.ErrInvalidRequest):
		return codes.InvalidArgument, http.StatusBadRequest, err.Error()
	}

	st, ok := status.FromError(err)
	if !ok {
		return codes.Internal, http.StatusInternalServerError, err.Error()
	}
	switch st.Code() {
	case codes.NotFound:
		return st.Code(), http.StatusNotFound, st.Message()
	case codes.InvalidArgument:
		return st.Code(), http.StatusBadRequest, st.Message()
	default:
		return st.Code(), http.StatusInternalServerError, st.Message()
	}
}
