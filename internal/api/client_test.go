package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/arunkumar231105/digital-wallet-client/internal/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, s session.Session) (*Client, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	if s.Authenticated() {
		require.NoError(t, store.Set(s))
	}
	return New(srv.URL, store), store
}

func TestClientInjectsBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Transaction{})
	}, session.Session{Token: "tok-abc"})

	_, err := client.ListTransactions(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestClientOmitsBearerWhenLoggedOut(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(TokenResponse{AccessToken: "t"})
	}, session.Session{})

	_, err := client.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestClientDecodesErrorDetail(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorBody{Detail: "Insufficient funds"})
	}, session.Session{Token: "tok"})

	_, err := client.Withdraw(context.Background(), decimal.NewFromInt(10))
	apiErr, ok := AsError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "Insufficient funds", apiErr.Detail)
	require.Equal(t, "Insufficient funds", apiErr.Error())
}

func TestClientHandlesMissingDetail(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, session.Session{Token: "tok"})

	_, err := client.ListTransactions(context.Background())
	apiErr, ok := AsError(err)
	require.True(t, ok)
	require.Empty(t, apiErr.Detail)
	require.Equal(t, "wallet api: status 502", apiErr.Error())
}

func TestAuthRejectedClassification(t *testing.T) {
	unauthorized := &Error{Status: http.StatusUnauthorized}
	require.True(t, unauthorized.AuthRejected(false))
	require.True(t, unauthorized.AuthRejected(true))

	// A 403 on a user-scoped call is a business rule (frozen account), not
	// a credential problem; on an admin-scoped call it means the session
	// lacks the role.
	forbidden := &Error{Status: http.StatusForbidden}
	require.False(t, forbidden.AuthRejected(false))
	require.True(t, forbidden.AuthRejected(true))

	badRequest := &Error{Status: http.StatusBadRequest}
	require.False(t, badRequest.AuthRejected(false))
	require.False(t, badRequest.AuthRejected(true))
}

func TestClientPreservesTransactionOrder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Transaction{
			{ID: 9, Type: TxWithdraw},
			{ID: 3, Type: TxDeposit},
			{ID: 7, Type: TxDeposit},
		})
	}, session.Session{Token: "tok"})

	txs, err := client.ListTransactions(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int64{9, 3, 7}, []int64{txs[0].ID, txs[1].ID, txs[2].ID})
}

func TestFreezeUsesUserEmailKey(t *testing.T) {
	var body map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(Message{Message: "User frozen"})
	}, session.Session{Token: "tok", IsAdmin: true})

	require.NoError(t, client.FreezeUser(context.Background(), "x@y.z"))
	require.Equal(t, "x@y.z", body["user_email"])
}

func TestUserTransactionsEscapesEmail(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("email")
		json.NewEncoder(w).Encode([]Transaction{})
	}, session.Session{Token: "tok", IsAdmin: true})

	_, err := client.UserTransactions(context.Background(), "a+b@example.com")
	require.NoError(t, err)
	require.Equal(t, "a+b@example.com", gotQuery)
}
