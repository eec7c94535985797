package remote

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// Catalog is the answer to a full recipe fetch. ShoppingList and
// Suggestions are the backend's comma-joined lists.
type Catalog struct {
	Recipes      []types.Recipe
	ShoppingList string
	Suggestions  string
}

// Client performs the backend reads the caller waits on.
type Client struct {
	transport Transport
	tokens    TokenStore
	log       *zap.Logger
}

// NewClient creates a read client. tokens may be nil, in which case a
// returned token is not kept.
func NewClient(t Transport, tokens TokenStore, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{transport: t, tokens: tokens, log: log}
}

// FetchRecipes loads the whole collection along with the stored shopping
// state.
func (c *Client) FetchRecipes(ctx context.Context) (*Catalog, error) {
	env, err := c.get(ctx, url.Values{"path": {PathRecipes}})
	if err != nil {
		return nil, fmt.Errorf("fetch recipes: %w", err)
	}
	if env.Token != "" && c.tokens != nil {
		if err := c.tokens.SetToken(env.Token); err != nil {
			c.log.Warn("save token", zap.Error(err))
		}
	}
	return &Catalog{
		Recipes:      nonNil(env.Recipes),
		ShoppingList: env.ShoppingList,
		Suggestions:  env.ShoppingSuggestions,
	}, nil
}

// SearchRecipes asks the backend for the recipes matching q. The caller
// normalizes q.
func (c *Client) SearchRecipes(ctx context.Context, q string) ([]types.Recipe, error) {
	env, err := c.get(ctx, url.Values{"path": {PathRecipes}, "q": {q}})
	if err != nil {
		return nil, fmt.Errorf("search recipes %q: %w", q, err)
	}
	return nonNil(env.Recipes), nil
}

// CreateRecipe asks the backend for a new recipe and returns its id.
func (c *Client) CreateRecipe(ctx context.Context) (string, error) {
	env, err := c.get(ctx, url.Values{"path": {PathRecipeCreate}})
	if err != nil {
		return "", fmt.Errorf("create recipe: %w", err)
	}
	if env.ID == "" {
		return "", fmt.Errorf("create recipe: %w: no id in response", types.ErrApplicationError)
	}
	return env.ID, nil
}

func (c *Client) get(ctx context.Context, q url.Values) (*Envelope, error) {
	env, err := c.transport.Get(ctx, q)
	if err != nil {
		if !errors.Is(err, types.ErrNetworkFailure) {
			err = fmt.Errorf("%w: %v", types.ErrNetworkFailure, err)
		}
		return nil, err
	}
	if env.Error != "" {
		return nil, fmt.Errorf("%w: %s", types.ErrApplicationError, env.Error)
	}
	if env.Message != "" {
		c.log.Debug("backend message", zap.String("path", q.Get("path")), zap.String("message", env.Message))
	}
	return env, nil
}

func nonNil(recipes []types.Recipe) []types.Recipe {
	if recipes == nil {
		return []types.Recipe{}
	}
	return recipes
}
