package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Blackspirits/pipocas/internal/apperrors"
	"github.com/Blackspirits/pipocas/internal/config"
	"github.com/Blackspirits/pipocas/internal/metrics"
	"github.com/Blackspirits/pipocas/internal/parser"
)

// Login performs the CSRF-token form login: GET the login page, extract the
// token from it, POST the credentials, and verify the session took.
func (c *client) Login(ctx context.Context) error {
	err := c.login(ctx)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.StatusError).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues(metrics.StatusSuccess).Inc()
	return nil
}

func (c *client) login(ctx context.Context) error {
	logger := config.GetLogger()
	logger.Debug().Str("url", c.loginURL()).Msg("Requesting login page")

	page, err := c.fetchPage(ctx, c.loginURL())
	if err != nil {
		return fmt.Errorf("failed to fetch login page: %w", err)
	}

	token := c.loginParser.ExtractCSRFToken(page)
	if token == "" {
		return apperrors.NewServiceUnavailableError("unable to find CSRF token on login page")
	}

	form := url.Values{
		"username": {c.username},
		"password": {c.password},
		"_token":   {token},
	}

	logger.Debug().Msg("Posting login form")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loginURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create login request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post login form: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login returned status %d", resp.StatusCode)
	}

	body, err := parser.ReadPage(resp.Body)
	if err != nil {
		return fmt.Errorf("read login response: %w", err)
	}

	if c.loginParser.IsLoggedOut(body) {
		return apperrors.NewAuthenticationError("login rejected, check credentials")
	}

	logger.Info().Msg("Login successful")
	return nil
}
