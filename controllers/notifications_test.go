package controllers

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/clinio/clinic-server/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNotifyEventLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	n := new(mockNotifier)
	n.On("Create", mock.Anything, mock.Anything, int64(9)).Return(nil, errors.New("db unavailable"))

	notifyEvent(context.Background(), n, services.NotificationDetails{Type: "payment", Title: "t", Message: "m"}, 9)

	n.AssertExpectations(t)
	assert.Contains(t, buf.String(), "db unavailable")
	assert.Contains(t, buf.String(), "Could not record domain event notification")
}

func TestNotifyEventQuietOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	n := new(mockNotifier)
	n.On("Create", mock.Anything, mock.Anything, int64(9)).Return(nil, nil)

	notifyEvent(context.Background(), n, services.NotificationDetails{Type: "payment", Title: "t", Message: "m"}, 9)

	assert.Empty(t, buf.String())
}
