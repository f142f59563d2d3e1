package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/core/appmodule"
	"cosmossdk.io/depinject"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	"cosmossdk.io/store/rootmulti"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus"

	"snakegame/x/snake/keeper"
	snakemodule "snakegame/x/snake/module"
	"snakegame/x/snake/types"
)

const (
	// Name is the name of the application.
	Name = "snake"
	// AccountAddressPrefix is the prefix for accounts addresses.
	AccountAddressPrefix = "snake"
	// ChainCoinType is the coin type of the chain.
	ChainCoinType = 118
	// DefaultChainID is used when no chain id is configured.
	DefaultChainID = "snake-local-1"
)

// App owns the committed state of the game and applies signed transactions
// to it one at a time.
type App struct {
	logger  log.Logger
	chainID string
	metrics *Metrics

	// mu serializes deliveries. Queries share it for reading.
	mu       sync.RWMutex
	db       dbm.DB
	cms      storetypes.CommitMultiStore
	storeKey *storetypes.KVStoreKey
	accKey   *storetypes.KVStoreKey

	accounts    accountKeeper
	SnakeKeeper keeper.Keeper
	module      snakemodule.AppModule
	msgServer   types.MsgServer
	queryServer types.QueryServer
}

// TxResult is returned for every successfully delivered transaction.
type TxResult struct {
	Height   int64            `json:"height"`
	Type     string           `json:"type"`
	Response any              `json:"response"`
	Events   sdk.StringEvents `json:"events"`
}

// New opens the application state in db and loads its latest version.
func New(logger log.Logger, db dbm.DB, chainID string, reg prometheus.Registerer) (*App, error) {
	if chainID == "" {
		chainID = DefaultChainID
	}
	app := &App{
		logger:   logger.With("module", "app"),
		chainID:  chainID,
		metrics:  NewMetrics(reg),
		db:       db,
		storeKey: storetypes.NewKVStoreKey(types.StoreKey),
		accKey:   storetypes.NewKVStoreKey(AccountsStoreKey),
	}

	accounts, err := newAccountKeeper(runtime.NewKVStoreService(app.accKey))
	if err != nil {
		return nil, fmt.Errorf("build account store: %w", err)
	}
	app.accounts = accounts

	var modules map[string]appmodule.AppModule
	if err := depinject.Inject(
		depinject.Configs(
			depinject.Supply(
				runtime.NewKVStoreService(app.storeKey),
				addresscodec.NewBech32Codec(AccountAddressPrefix),
			),
			depinject.ProvideInModule(types.ModuleName, snakemodule.ProvideModule),
		),
		&app.SnakeKeeper,
		&modules,
	); err != nil {
		return nil, fmt.Errorf("wire %s module: %w", types.ModuleName, err)
	}
	m, ok := modules[types.ModuleName].(snakemodule.AppModule)
	if !ok {
		return nil, fmt.Errorf("unexpected %s module type %T", types.ModuleName, modules[types.ModuleName])
	}
	app.module = m
	app.msgServer = keeper.NewMsgServerImpl(app.SnakeKeeper)
	app.queryServer = keeper.NewQueryServerImpl(app.SnakeKeeper)

	app.cms = store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	app.cms.MountStoreWithDB(app.storeKey, storetypes.StoreTypeIAVL, nil)
	app.cms.MountStoreWithDB(app.accKey, storetypes.StoreTypeIAVL, nil)
	if err := app.cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("load latest version: %w", err)
	}

	height := app.cms.LastCommitID().Version
	app.metrics.Height.Set(float64(height))
	if lb, err := app.leaderboard(); err == nil {
		app.metrics.LeaderboardSize.Set(float64(len(lb.Entries)))
	}
	app.logger.Info("state loaded", "height", height, "chain_id", chainID)

	return app, nil
}

// Logger returns the application logger.
func (app *App) Logger() log.Logger { return app.logger }

// Metrics returns the application metrics.
func (app *App) Metrics() *Metrics { return app.metrics }

// ChainID returns the chain id transactions must be signed for.
func (app *App) ChainID() string { return app.chainID }

// LastHeight returns the latest committed version.
func (app *App) LastHeight() int64 {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cms.LastCommitID().Version
}

// Close releases the underlying database.
func (app *App) Close() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.db.Close()
}

// Deliver verifies tx and applies its message. The signer's account sequence
// must match tx.Sequence and is advanced together with the state change. Both
// are committed only when the handler succeeds; on error nothing is written.
func (app *App) Deliver(ctx context.Context, tx Tx) (*TxResult, error) {
	msgType := "unknown"
	if tx.Msg != nil {
		msgType = tx.Msg.Type()
	}
	start := time.Now()

	res, err := app.deliver(ctx, tx)

	app.metrics.TxLatency.WithLabelValues(msgType).Observe(time.Since(start).Seconds())
	app.metrics.TxsTotal.WithLabelValues(msgType, resultLabel(err)).Inc()
	if err != nil {
		app.logger.Debug("tx rejected", "msg", msgType, "err", err)
		return nil, err
	}
	return res, nil
}

func (app *App) deliver(ctx context.Context, tx Tx) (*TxResult, error) {
	if tx.Msg == nil {
		return nil, errorsmod.Wrap(types.ErrInvalidRequest, "empty message")
	}
	if err := tx.Msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := tx.VerifySignature(app.chainID); err != nil {
		return nil, err
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	height := app.cms.LastCommitID().Version + 1
	cache := app.cms.CacheMultiStore()
	header := cmtproto.Header{ChainID: app.chainID, Height: height, Time: time.Now().UTC()}
	sdkCtx := sdk.NewContext(cache, header, false, app.logger).WithContext(ctx)

	if err := app.accounts.consumeSequence(sdkCtx, sdk.AccAddress(tx.PubKey), tx.Sequence); err != nil {
		return nil, err
	}

	res, err := app.route(sdkCtx, tx.Msg)
	if err != nil {
		return nil, err
	}

	cache.Write()
	commit := app.cms.Commit()
	app.metrics.Height.Set(float64(commit.Version))
	if lb, ok := leaderboardOf(res); ok {
		app.metrics.LeaderboardSize.Set(float64(len(lb.Entries)))
	}

	return &TxResult{
		Height:   commit.Version,
		Type:     tx.Msg.Type(),
		Response: res,
		Events:   sdk.StringifyEvents(sdkCtx.EventManager().ABCIEvents()),
	}, nil
}

func (app *App) route(ctx context.Context, msg types.Msg) (any, error) {
	switch msg := msg.(type) {
	case *types.MsgInitializePlayer:
		return app.msgServer.InitializePlayer(ctx, msg)
	case *types.MsgSubmitScore:
		return app.msgServer.SubmitScore(ctx, msg)
	case *types.MsgInitializeLeaderboard:
		return app.msgServer.InitializeLeaderboard(ctx, msg)
	case *types.MsgUpdateLeaderboard:
		return app.msgServer.UpdateLeaderboard(ctx, msg)
	default:
		return nil, errorsmod.Wrapf(types.ErrInvalidRequest, "unrecognized %s message type: %T", types.ModuleName, msg)
	}
}

func leaderboardOf(res any) (types.Leaderboard, bool) {
	switch res := res.(type) {
	case *types.MsgInitializeLeaderboardResponse:
		return res.Leaderboard, true
	case *types.MsgUpdateLeaderboardResponse:
		return res.Leaderboard, true
	}
	return types.Leaderboard{}, false
}

// Query runs fn against the latest committed state.
func (app *App) Query(ctx context.Context, fn func(ctx context.Context, qs types.QueryServer) error) error {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return fn(app.queryContext(ctx), app.queryServer)
}

func (app *App) queryContext(ctx context.Context) sdk.Context {
	header := cmtproto.Header{ChainID: app.chainID, Height: app.cms.LastCommitID().Version}
	return sdk.NewContext(app.cms.CacheMultiStore(), header, false, app.logger).WithContext(ctx)
}

// Sequence returns the sequence the next transaction signed by address must
// carry.
func (app *App) Sequence(ctx context.Context, address string) (uint64, error) {
	addr, err := sdk.AccAddressFromBech32(address)
	if err != nil {
		return 0, errorsmod.Wrapf(types.ErrInvalidRequest, "invalid address: %s", err)
	}
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.accounts.GetSequence(app.queryContext(ctx), addr)
}

func (app *App) leaderboard() (types.Leaderboard, error) {
	return app.SnakeKeeper.GetLeaderboard(app.queryContext(context.Background()))
}

// InitChain loads a genesis document into an empty store and commits it as
// the first version.
func (app *App) InitChain(ctx context.Context, genesis json.RawMessage) error {
	if err := app.module.ValidateGenesis(nil, nil, genesis); err != nil {
		return errorsmod.Wrap(err, "invalid genesis")
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	if latest := rootmulti.GetLatestVersion(app.db); latest > 0 {
		return errorsmod.Wrapf(types.ErrAlreadyExists, "state already initialized at height %d", latest)
	}

	cache := app.cms.CacheMultiStore()
	sdkCtx := sdk.NewContext(cache, cmtproto.Header{ChainID: app.chainID}, false, app.logger).WithContext(ctx)
	if err := app.module.InitGenesisJSON(sdkCtx, genesis); err != nil {
		return err
	}
	cache.Write()
	commit := app.cms.Commit()
	app.metrics.Height.Set(float64(commit.Version))
	if lb, err := app.SnakeKeeper.GetLeaderboard(app.queryContext(ctx)); err == nil {
		app.metrics.LeaderboardSize.Set(float64(len(lb.Entries)))
	}
	app.logger.Info("genesis loaded", "height", commit.Version)
	return nil
}

// ExportGenesis returns the latest committed state as a genesis document.
func (app *App) ExportGenesis(ctx context.Context) (json.RawMessage, error) {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.module.ExportGenesisJSON(app.queryContext(ctx))
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errorsmod.IsOf(err, types.ErrAlreadyExists):
		return "already_exists"
	case errorsmod.IsOf(err, types.ErrNotFound):
		return "not_found"
	case errorsmod.IsOf(err, types.ErrUnauthorized):
		return "unauthorized"
	case errorsmod.IsOf(err, types.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errorsmod.IsOf(err, types.ErrSerializationOverflow):
		return "serialization_overflow"
	case errorsmod.IsOf(err, types.ErrInvalidRequest):
		return "invalid_request"
	default:
		return "internal"
	}
}
