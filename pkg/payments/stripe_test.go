package payments

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamestorehq/gamestore/pkg/httpclient"
)

// recordingTransport intercepts the outgoing call and returns a canned
// response, so no network is touched.
type recordingTransport struct {
	lastReq  *http.Request
	lastBody string
	status   int
	body     string
	err      error
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.lastReq = req
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		rt.lastBody = string(raw)
	}
	if rt.err != nil {
		return nil, rt.err
	}
	return &http.Response{
		StatusCode: rt.status,
		Body:       io.NopCloser(strings.NewReader(rt.body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func install(t *testing.T, rt *recordingTransport) {
	t.Helper()
	httpclient.DefaultClient.Transport = rt
	t.Cleanup(httpclient.ResetTransport)
}

func TestCreateCheckoutSession(t *testing.T) {
	rt := &recordingTransport{
		status: http.StatusOK,
		body:   `{"id":"cs_test_123","url":"https://checkout.example.com/pay/cs_test_123"}`,
	}
	install(t, rt)

	gw := NewStripeGateway("sk_test_abc")
	session, err := gw.CreateCheckoutSession(context.Background(), SessionRequest{
		Item:       CheckoutItem{Name: "Chess", ImageURL: "https://img.example.com/chess.png", UnitAmount: 2000},
		SuccessURL: "http://localhost:8080/success/7",
		CancelURL:  "http://localhost:8080/cancel",
	})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_123", session.ID)
	assert.Equal(t, "https://checkout.example.com/pay/cs_test_123", session.URL)

	require.NotNil(t, rt.lastReq)
	assert.Equal(t, http.MethodPost, rt.lastReq.Method)
	assert.Equal(t, "/v1/checkout/sessions", rt.lastReq.URL.Path)
	assert.Equal(t, "Bearer sk_test_abc", rt.lastReq.Header.Get("Authorization"))
	assert.Equal(t, "application/x-www-form-urlencoded", rt.lastReq.Header.Get("Content-Type"))

	assert.Contains(t, rt.lastBody, "mode=payment")
	assert.Contains(t, rt.lastBody, "unit_amount%5D=2000")
	assert.Contains(t, rt.lastBody, "quantity%5D=1")
	assert.Contains(t, rt.lastBody, "success_url=http%3A%2F%2Flocalhost%3A8080%2Fsuccess%2F7")
}

func TestCreateCheckoutSessionAPIError(t *testing.T) {
	rt := &recordingTransport{
		status: http.StatusUnauthorized,
		body:   `{"error":{"message":"Invalid API Key provided"}}`,
	}
	install(t, rt)

	gw := NewStripeGateway("sk_bad")
	session, err := gw.CreateCheckoutSession(context.Background(), SessionRequest{
		Item: CheckoutItem{Name: "Chess", UnitAmount: 2000},
	})
	assert.Nil(t, session)

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusUnauthorized, gwErr.StatusCode)
	assert.Contains(t, gwErr.Message, "Invalid API Key")
}

func TestCreateCheckoutSessionNetworkError(t *testing.T) {
	rt := &recordingTransport{err: io.ErrUnexpectedEOF}
	install(t, rt)

	gw := NewStripeGateway("sk_test_abc")
	_, err := gw.CreateCheckoutSession(context.Background(), SessionRequest{
		Item: CheckoutItem{Name: "Chess", UnitAmount: 500},
	})

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Zero(t, gwErr.StatusCode)
}
