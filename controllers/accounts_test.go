package controllers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clinio/clinic-server/models/userdata"
	"github.com/clinio/clinic-server/repos"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAccountStore struct{ mock.Mock }

func (m *mockAccountStore) AddAccount(ctx context.Context, account userdata.Account) (int64, error) {
	args := m.Called(ctx, account)
	return int64(args.Int(0)), args.Error(1)
}

func (m *mockAccountStore) AccountProfile(ctx context.Context, id int64) (*userdata.Account, error) {
	args := m.Called(ctx, id)
	if a, _ := args.Get(0).(*userdata.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func newAccountApp(store accountStore) *fiber.App {
	app := fiber.New()
	h := &accountHandlers{store: store}

	app.Post("/accounts/create", h.createAccount)

	return app
}

const createAccountBody = `{"name":"Pat","email":"pat@example.com","password":"correct horse","role":"patient"}`

func TestCreateAccountReturnsId(t *testing.T) {
	store := new(mockAccountStore)
	app := newAccountApp(store)

	store.On("AddAccount", mock.Anything, mock.MatchedBy(func(a userdata.Account) bool {
		return a.Email == "pat@example.com" && a.Role == userdata.RolePatient && a.Password != "correct horse"
	})).Return(5, nil)

	req := httptest.NewRequest(fiber.MethodPost, "/accounts/create", strings.NewReader(createAccountBody))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(5), body["id"])
}

func TestCreateAccountDuplicateEmailConflicts(t *testing.T) {
	store := new(mockAccountStore)
	app := newAccountApp(store)

	store.On("AddAccount", mock.Anything, mock.Anything).Return(0, repos.ErrDuplicateEmail)

	req := httptest.NewRequest(fiber.MethodPost, "/accounts/create", strings.NewReader(createAccountBody))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
