package saleor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront-gateway/internal/app/model"
	"storefront-gateway/pkg/logger"
)

const defaultTimeout = 30 * time.Second

// Client represents a Saleor GraphQL API client
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new Saleor client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if config.Channel == "" {
		config.Channel = DefaultChannel
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Channel returns the catalog channel this client queries.
func (c *Client) Channel() string {
	return c.config.Channel
}

// TokenCreate signs in and returns the user with a fresh token pair.
func (c *Client) TokenCreate(ctx context.Context, email, password string) (*AuthResult, error) {
	var data tokenCreateData
	err := c.do(ctx, "", tokenCreateMutation, map[string]interface{}{
		"email":    email,
		"password": password,
	}, &data)
	if err != nil {
		return nil, err
	}

	payload := data.TokenCreate
	if len(payload.Errors) > 0 || payload.User == nil || payload.Token == "" {
		return nil, ErrInvalidCredentials
	}

	return &AuthResult{
		User:         payload.User,
		Token:        payload.Token,
		RefreshToken: payload.RefreshToken,
	}, nil
}

// TokenRefresh rotates the access token. The refresh token itself is not
// rotated by the backend and stays valid.
func (c *Client) TokenRefresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	var data tokenRefreshData
	err := c.do(ctx, "", tokenRefreshMutation, map[string]interface{}{
		"refreshToken": refreshToken,
	}, &data)
	if err != nil {
		return nil, err
	}

	payload := data.TokenRefresh
	if len(payload.Errors) > 0 || payload.User == nil || payload.Token == "" {
		return nil, ErrRefreshFailed
	}

	return &AuthResult{User: payload.User, Token: payload.Token}, nil
}

// AccountRegister creates an account. The caller signs in separately.
func (c *Client) AccountRegister(ctx context.Context, input RegisterInput) error {
	if input.Channel == "" {
		input.Channel = c.config.Channel
	}

	var data accountRegisterData
	err := c.do(ctx, "", accountRegisterMutation, map[string]interface{}{
		"input": input,
	}, &data)
	if err != nil {
		return err
	}

	if len(data.AccountRegister.Errors) > 0 {
		return AccountErrors(data.AccountRegister.Errors)
	}
	return nil
}

// AccountUpdate changes the profile names of the token's account.
func (c *Client) AccountUpdate(ctx context.Context, token, firstName, lastName string) (*model.User, error) {
	var data accountUpdateData
	err := c.do(ctx, token, accountUpdateMutation, map[string]interface{}{
		"input": map[string]interface{}{
			"firstName": firstName,
			"lastName":  lastName,
		},
	}, &data)
	if err != nil {
		return nil, err
	}

	if len(data.AccountUpdate.Errors) > 0 {
		return nil, AccountErrors(data.AccountUpdate.Errors)
	}
	if data.AccountUpdate.User == nil {
		return nil, ErrUnauthorized
	}
	return data.AccountUpdate.User, nil
}

// PasswordChange replaces the account password.
func (c *Client) PasswordChange(ctx context.Context, token, oldPassword, newPassword string) error {
	var data passwordChangeData
	err := c.do(ctx, token, passwordChangeMutation, map[string]interface{}{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	}, &data)
	if err != nil {
		return err
	}

	if len(data.PasswordChange.Errors) > 0 {
		return AccountErrors(data.PasswordChange.Errors)
	}
	return nil
}

// Me fetches the profile behind the token.
func (c *Client) Me(ctx context.Context, token string) (*model.User, error) {
	var data meData
	if err := c.do(ctx, token, meQuery, nil, &data); err != nil {
		return nil, err
	}
	if data.Me == nil {
		return nil, ErrUnauthorized
	}
	return data.Me, nil
}

// Products lists catalog products for the configured channel.
func (c *Client) Products(ctx context.Context, first int) ([]model.Product, error) {
	var data productsData
	err := c.do(ctx, "", productsQuery, map[string]interface{}{
		"first":   first,
		"channel": c.config.Channel,
	}, &data)
	if err != nil {
		return nil, err
	}
	return data.Products.toModels(), nil
}

// ProductBySlug fetches one product with description and variants.
func (c *Client) ProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var data productBySlugData
	err := c.do(ctx, "", productBySlugQuery, map[string]interface{}{
		"slug":    slug,
		"channel": c.config.Channel,
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, ErrNotFound
	}
	product := data.Product.toModel()
	return &product, nil
}

// Categories lists catalog categories.
func (c *Client) Categories(ctx context.Context, first int) ([]model.Category, error) {
	var data categoriesData
	err := c.do(ctx, "", categoriesQuery, map[string]interface{}{
		"first": first,
	}, &data)
	if err != nil {
		return nil, err
	}

	categories := make([]model.Category, 0, len(data.Categories.Edges))
	for _, edge := range data.Categories.Edges {
		categories = append(categories, edge.Node.toModel())
	}
	return categories, nil
}

// CategoryBySlug fetches one category together with its products.
func (c *Client) CategoryBySlug(ctx context.Context, slug string, first int) (*CategoryDetail, error) {
	var data categoryBySlugData
	err := c.do(ctx, "", categoryBySlugQuery, map[string]interface{}{
		"slug":    slug,
		"first":   first,
		"channel": c.config.Channel,
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.Category == nil {
		return nil, ErrNotFound
	}

	return &CategoryDetail{
		Category: data.Category.categoryNode.toModel(),
		Products: data.Category.Products.toModels(),
	}, nil
}

// SearchProducts runs a full-text product search on the channel.
func (c *Client) SearchProducts(ctx context.Context, query string, first int) ([]model.Product, error) {
	var data productsData
	err := c.do(ctx, "", searchProductsQuery, map[string]interface{}{
		"query":   query,
		"first":   first,
		"channel": c.config.Channel,
	}, &data)
	if err != nil {
		return nil, err
	}
	return data.Products.toModels(), nil
}

// do performs one GraphQL request. A non-empty token is sent as a JWT
// bearer header. The data envelope is decoded into out.
func (c *Client) do(ctx context.Context, token, query string, variables map[string]interface{}, out interface{}) error {
	reqBody, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Warn("Saleor API returned non-OK status", map[string]interface{}{
			"status": resp.StatusCode,
		})
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
		}
		return fmt.Errorf("%w: status %d", ErrGraphQL, resp.StatusCode)
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		return fmt.Errorf("%w: %s", ErrGraphQL, envelope.Errors[0].Message)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to unmarshal data: %w", err)
	}
	return nil
}
