package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"snakegame/app"
	"snakegame/x/snake/types"
)

// Client submits transactions and runs queries, either against the local
// database or against a running node.
type Client interface {
	Broadcast(ctx context.Context, tx app.Tx) (json.RawMessage, error)
	Sequence(ctx context.Context, address string) (uint64, error)
	Player(ctx context.Context, owner string) (json.RawMessage, error)
	PlayerAddress(ctx context.Context, owner string) (json.RawMessage, error)
	Leaderboard(ctx context.Context) (json.RawMessage, error)
	Rank(ctx context.Context, owner string) (json.RawMessage, error)
	Close() error
}

// newClient returns an HTTP client when --node is set and a local client otherwise.
func newClient(cmd *cobra.Command) (Client, error) {
	cfg := GetConfig(cmd)
	if cfg.Node != "" {
		return newHTTPClient(cfg.Node), nil
	}
	a, err := openApp(cmd, nil)
	if err != nil {
		return nil, err
	}
	return &localClient{app: a}, nil
}

type localClient struct {
	app *app.App
}

func (c *localClient) Broadcast(ctx context.Context, tx app.Tx) (json.RawMessage, error) {
	res, err := c.app.Deliver(ctx, tx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(res)
}

func (c *localClient) Sequence(ctx context.Context, address string) (uint64, error) {
	return c.app.Sequence(ctx, address)
}

func (c *localClient) query(ctx context.Context, fn func(ctx context.Context, qs types.QueryServer) (any, error)) (json.RawMessage, error) {
	var res any
	err := c.app.Query(ctx, func(ctx context.Context, qs types.QueryServer) error {
		var err error
		res, err = fn(ctx, qs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(res)
}

func (c *localClient) Player(ctx context.Context, owner string) (json.RawMessage, error) {
	return c.query(ctx, func(ctx context.Context, qs types.QueryServer) (any, error) {
		return qs.Player(ctx, &types.QueryPlayerRequest{Owner: owner})
	})
}

func (c *localClient) PlayerAddress(ctx context.Context, owner string) (json.RawMessage, error) {
	return c.query(ctx, func(ctx context.Context, qs types.QueryServer) (any, error) {
		return qs.PlayerAddress(ctx, &types.QueryPlayerAddressRequest{Owner: owner})
	})
}

func (c *localClient) Leaderboard(ctx context.Context) (json.RawMessage, error) {
	return c.query(ctx, func(ctx context.Context, qs types.QueryServer) (any, error) {
		return qs.Leaderboard(ctx, &types.QueryLeaderboardRequest{})
	})
}

func (c *localClient) Rank(ctx context.Context, owner string) (json.RawMessage, error) {
	return c.query(ctx, func(ctx context.Context, qs types.QueryServer) (any, error) {
		return qs.Rank(ctx, &types.QueryRankRequest{Owner: owner})
	})
}

func (c *localClient) Close() error { return c.app.Close() }

type httpClient struct {
	base string
	http *http.Client
}

func newHTTPClient(node string) *httpClient {
	if !strings.Contains(node, "://") {
		node = "http://" + node
	}
	return &httpClient{
		base: strings.TrimRight(node, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *httpClient) do(req *http.Request) (json.RawMessage, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	bz, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(bz, &payload) == nil && payload.Message != "" {
			return nil, fmt.Errorf("%s: %s", res.Status, payload.Message)
		}
		return nil, fmt.Errorf("%s: %s", res.Status, strings.TrimSpace(string(bz)))
	}
	return bz, nil
}

func (c *httpClient) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *httpClient) Broadcast(ctx context.Context, tx app.Tx) (json.RawMessage, error) {
	bz, err := json.Marshal(tx)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/"+types.ModuleName+"/txs", bytes.NewReader(bz))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *httpClient) Sequence(ctx context.Context, address string) (uint64, error) {
	bz, err := c.get(ctx, "/"+types.ModuleName+"/accounts/"+url.PathEscape(address)+"/sequence")
	if err != nil {
		return 0, err
	}
	var res app.SequenceResponse
	if err := json.Unmarshal(bz, &res); err != nil {
		return 0, fmt.Errorf("decode sequence: %w", err)
	}
	return res.Sequence, nil
}

func (c *httpClient) Player(ctx context.Context, owner string) (json.RawMessage, error) {
	return c.get(ctx, "/"+types.ModuleName+"/players/"+url.PathEscape(owner))
}

func (c *httpClient) PlayerAddress(ctx context.Context, owner string) (json.RawMessage, error) {
	return c.get(ctx, "/"+types.ModuleName+"/players/"+url.PathEscape(owner)+"/address")
}

func (c *httpClient) Leaderboard(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/"+types.ModuleName+"/leaderboard")
}

func (c *httpClient) Rank(ctx context.Context, owner string) (json.RawMessage, error) {
	return c.get(ctx, "/"+types.ModuleName+"/players/"+url.PathEscape(owner)+"/rank")
}

func (c *httpClient) Close() error { return nil }
