package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weblarek/larek/internal/errors"
	"github.com/weblarek/larek/internal/logging"
	"github.com/weblarek/larek/internal/shop"
	"github.com/weblarek/larek/internal/shopserver"
)

func newStub(t *testing.T) (*shopserver.Server, *ShopAPI) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stub := shopserver.New(shopserver.DefaultProducts())
	ts := httptest.NewServer(stub.Router())
	t.Cleanup(ts.Close)

	client, err := NewClient(ts.URL)
	require.NoError(t, err)
	return stub, NewShopAPI(client, "https://cdn.example.com/content/")
}

func TestNewClient_Invalid(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)

	_, err = NewClient("http://[::1")
	assert.Error(t, err)
}

func TestShopAPI_ProductList(t *testing.T) {
	_, api := newStub(t)

	list, err := api.ProductList(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, list.Items)
	assert.Equal(t, len(list.Items), list.Total)

	first := list.Items[0]
	assert.Equal(t, "https://cdn.example.com/content/5_Dots.svg", first.Image)
	assert.True(t, first.Price.Decimal.Equal(decimal.NewFromInt(750)))

	priceless := 0
	for _, p := range list.Items {
		if !p.ForSale() {
			priceless++
		}
	}
	assert.Equal(t, 1, priceless)
}

func TestShopAPI_CreateOrder(t *testing.T) {
	stub, api := newStub(t)
	products := shopserver.DefaultProducts()

	resp, err := api.CreateOrder(context.Background(), shop.OrderRequest{
		Payment: shop.PaymentOnline,
		Email:   "a@b.c",
		Phone:   "+7",
		Address: "Street 1",
		Total:   products[0].Price.Decimal.Add(products[1].Price.Decimal),
		Items:   []string{products[0].ID, products[1].ID},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(2200)))
	assert.Len(t, stub.Orders(), 1)
}

func TestShopAPI_CreateOrderRejected(t *testing.T) {
	_, api := newStub(t)
	products := shopserver.DefaultProducts()

	_, err := api.CreateOrder(context.Background(), shop.OrderRequest{
		Payment: shop.PaymentOffline,
		Email:   "a@b.c",
		Phone:   "+7",
		Address: "Street 1",
		Total:   decimal.NewFromInt(1),
		Items:   []string{products[0].ID},
	})
	require.Error(t, err)

	var terr *errors.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, http.StatusBadRequest, terr.StatusCode)
	assert.Equal(t, shopserver.MsgWrongTotal, terr.ServerMessage)
	assert.Equal(t, shopserver.MsgWrongTotal, errors.UserMessage(err, "fallback"))
	assert.False(t, errors.IsRetryable(err))
	assert.True(t, errors.Is(err, errors.ErrBadStatus))
}

func TestClient_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	client, err := NewClient(url)
	require.NoError(t, err)

	err = client.GetJSON(context.Background(), PathProducts, &shop.ProductList{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrRequestFailed))
	assert.False(t, errors.IsUserFacing(err))
}

func TestClient_DecodeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL)
	require.NoError(t, err)

	err = client.GetJSON(context.Background(), PathProducts, &shop.ProductList{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDecode))
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"total":0,"items":[]}`))
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL, WithRetry(RetryConfig{MaxRetries: 2, Delay: time.Millisecond}))
	require.NoError(t, err)

	var list shop.ProductList
	require.NoError(t, client.GetJSON(context.Background(), PathProducts, &list))
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryPost(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL, WithRetry(RetryConfig{MaxRetries: 3, Delay: time.Millisecond}))
	require.NoError(t, err)

	err = client.PostJSON(context.Background(), PathOrder, shop.OrderRequest{}, nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_BasePath(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	client, err := NewClient(ts.URL + "/api/weblarek/")
	require.NoError(t, err)
	require.NoError(t, client.GetJSON(context.Background(), PathProducts, &shop.ProductList{}))
	assert.Equal(t, "/api/weblarek/product/", gotPath)
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		cdn, image, want string
	}{
		{"https://cdn/x", "/a.svg", "https://cdn/x/a.svg"},
		{"https://cdn/x/", "a.svg", "https://cdn/x/a.svg"},
		{"https://cdn/x", "https://other/a.svg", "https://other/a.svg"},
		{"", "/a.svg", "/a.svg"},
		{"https://cdn/x", "", ""},
	}
	for _, tt := range tests {
		api := NewShopAPI(nil, tt.cdn)
		assert.Equal(t, tt.want, api.imageURL(tt.image), "cdn=%q image=%q", tt.cdn, tt.image)
	}
}

func TestClient_TimeoutCopiesHTTPClient(t *testing.T) {
	hc := &http.Client{Timeout: time.Minute}

	for _, opts := range [][]Option{
		{WithHTTPClient(hc), WithTimeout(2 * time.Second)},
		{WithTimeout(2 * time.Second), WithHTTPClient(hc)},
	} {
		client, err := NewClient("http://127.0.0.1:8787", opts...)
		require.NoError(t, err)
		assert.Equal(t, 2*time.Second, client.httpClient.Timeout)
		assert.NotSame(t, hc, client.httpClient)
	}
	assert.Equal(t, time.Minute, hc.Timeout, "caller's client must not change")

	client, err := NewClient("http://127.0.0.1:8787", WithHTTPClient(hc))
	require.NoError(t, err)
	assert.Same(t, hc, client.httpClient)
}

func TestClient_LogsFailuresBySeverity(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{"rejected", http.StatusBadRequest, logging.LevelWarn},
		{"server error", http.StatusBadGateway, logging.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":"nope"}`))
			}))
			defer ts.Close()

			var buf bytes.Buffer
			client, err := NewClient(ts.URL, WithLogger(logging.NewLoggerWithWriter(&buf, logging.LevelWarn)))
			require.NoError(t, err)

			require.Error(t, client.PostJSON(context.Background(), PathOrder, shop.OrderRequest{}, nil))

			var entry map[string]any
			require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), buf.String())
			assert.Equal(t, "request failed", entry["msg"])
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, PathOrder, entry["path"])
		})
	}
}
