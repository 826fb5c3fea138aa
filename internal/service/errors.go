package service

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// ErrUnauthorized covers bad credentials, invalid or expired tokens, and
// wrong old passwords.
var ErrUnauthorized = errors.New("unauthorized")
