package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebhookPath(t *testing.T) {
	p := WebhookPath("123:abc")
	assert.True(t, strings.HasPrefix(p, "/webhook/"))
	assert.Len(t, strings.TrimPrefix(p, "/webhook/"), 16)
	assert.Equal(t, p, WebhookPath("123:abc"))
	assert.NotEqual(t, p, WebhookPath("123:abd"))
	assert.NotContains(t, p, "123:abc")
}
