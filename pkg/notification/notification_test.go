package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpclient "github.com/Akibsaiyad14/clothsbillingandinventory/pkg/http"
	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/testkit"
)

type slackOnly struct {
	text string
}

func (n *slackOnly) Via() []string { return []string{"slack"} }
func (n *slackOnly) ToSlack() SlackData {
	return SlackData{
		WebhookURL: "https://hooks.slack.example/T000/B000",
		Text:       n.text,
	}
}

func TestSend_SlackChannel(t *testing.T) {
	mt := testkit.NewMockTransport(&testkit.Scenario{
		Name:           "slack low stock alert",
		IsMockRequired: true,
		NetUtilMockStep: []testkit.MockStep{{
			Method:     "httprequest",
			IsMock:     true,
			MatchURL:   "https://hooks.slack.example/",
			ReturnData: testkit.MockReturnData{StatusCode: 200},
		}},
	})
	httpclient.DefaultClient.Transport = mt
	defer httpclient.ResetTransport()

	errs := Send("", &slackOnly{text: "3 items low on stock"})
	require.Empty(t, errs)

	for _, err := range mt.AssertAllCalled() {
		assert.NoError(t, err)
	}
}

func TestSend_UnknownChannel(t *testing.T) {
	errs := Send("x@example.com", &badChannel{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "unknown channel")
}

type badChannel struct{}

func (n *badChannel) Via() []string { return []string{"pager"} }

func TestSend_SlackWithoutWebhook(t *testing.T) {
	SetSlackWebhook("")
	errs := Send("", &noURLSlack{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "webhook URL not configured")
}

type noURLSlack struct{}

func (n *noURLSlack) Via() []string { return []string{"slack"} }
func (n *noURLSlack) ToSlack() SlackData { return SlackData{Text: "no url"} }
