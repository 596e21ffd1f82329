package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name       string
	configured bool
	resp       *Response
	err        error
	calls      int
}

func (s *stubProvider) Name() string       { return s.name }
func (s *stubProvider) IsConfigured() bool { return s.configured }
func (s *stubProvider) Chat(ctx context.Context, req *Request) (*Response, error) {
	s.calls++
	return s.resp, s.err
}

func TestGateway_SkipsUnconfigured(t *testing.T) {
	dead := &stubProvider{name: "a"}
	live := &stubProvider{name: "b", configured: true, resp: &Response{Content: "hi"}}

	gw := NewGateway(dead, live)
	resp, err := gw.Chat(context.Background(), &Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Content)
	assert.Zero(t, dead.calls)
	assert.Equal(t, 1, live.calls)
}

func TestGateway_FallsBackOnError(t *testing.T) {
	failing := &stubProvider{name: "a", configured: true, err: errors.New("rate limited")}
	backup := &stubProvider{name: "b", configured: true, resp: &Response{Content: "ok"}}

	gw := NewGateway(failing, backup)
	resp, err := gw.Chat(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, 1, failing.calls)
}

func TestGateway_NotConfigured(t *testing.T) {
	gw := NewGateway(&stubProvider{name: "a"})
	_, err := gw.Chat(context.Background(), &Request{})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	assert.False(t, gw.IsConfigured())
}

func TestGateway_ReturnsLastError(t *testing.T) {
	boom := errors.New("boom")
	gw := NewGateway(&stubProvider{name: "a", configured: true, err: boom})
	_, err := gw.Chat(context.Background(), &Request{})
	assert.ErrorIs(t, err, boom)
}

func TestSanitizeCategory(t *testing.T) {
	assert.Equal(t, "Food & Dining", sanitizeCategory(` "food & dining" `))
	assert.Equal(t, "Transport", sanitizeCategory("Transport."))
	assert.Equal(t, "Other", sanitizeCategory("Something Else"))
}

func TestExtractJSON(t *testing.T) {
	fenced := "Here you go:\n```json\n[\"Transport\",\"Other\"]\n```\nDone."
	assert.Equal(t, `["Transport","Other"]`, extractJSON(fenced))

	bare := `prefix {"a":1} suffix`
	assert.Equal(t, `{"a":1}`, extractJSON(bare))
}

func TestSplitDataURL(t *testing.T) {
	mt, data, ok := splitDataURL("data:image/png;base64,aGVsbG8=")
	require.True(t, ok)
	assert.Equal(t, "image/png", mt)
	assert.Equal(t, "aGVsbG8=", data)

	_, _, ok = splitDataURL("https://example.com/x.png")
	assert.False(t, ok)
}
