package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"

	authDto "farmstay/internal/domains/auth/model/dto"
)

// Recover restores the stored session and confirms it with the API.
//
// A missing, malformed or expired blob is wiped without calling the API. Otherwise
// GET /v1/auth/session is tried recoverAttempts times, recoverDelay apart, all within
// recoverTimeout. A 401 or 403 answer, or running out of attempts or time, wipes the store.
func (c *Client) Recover(ctx context.Context) (authDto.SessionResponse, error) {
	session, err := loadSession(c.store)
	if err == nil && !session.Valid(c.now()) {
		err = ErrNoSession
	}

	if err != nil {
		c.wipe()

		return authDto.SessionResponse{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.recoverTimeout)
	defer cancel()

	attempt := 0
	operation := func() (authDto.SessionResponse, error) {
		attempt++

		res, err := c.session(ctx, session.AccessToken)
		if err == nil {
			return res, nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Rejected() {
			return res, backoff.Permanent(err)
		}

		log.Debug().Err(err).Int("attempt", attempt).Msg("session check failed")

		return res, err
	}

	res, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(c.recoverDelay)),
		backoff.WithMaxTries(c.recoverAttempts),
		backoff.WithMaxElapsedTime(c.recoverTimeout),
	)
	if err != nil {
		c.wipe()

		return authDto.SessionResponse{}, fmt.Errorf("%w: %w", ErrNoSession, err)
	}

	return res, nil
}

func (c *Client) wipe() {
	if err := c.store.Clear(); err != nil {
		log.Error().Err(err).Msg("failed to wipe session store")
	}
}
