package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Amr-9/vanityjobs/pkg/jobs"
)

// PushoverEndpoint is the Pushover message API.
const PushoverEndpoint = "https://api.pushover.net/1/messages.json"

var ErrPushoverCredentials = errors.New("pushover token and user key are required")

// Pushover sends notifications to a Pushover user or group.
type Pushover struct {
	Token    string
	User     string
	Endpoint string
	Client   *http.Client
}

// NewPushover returns a Pushover notifier using the public API endpoint.
func NewPushover(token, user string) (*Pushover, error) {
	if token == "" || user == "" {
		return nil, ErrPushoverCredentials
	}
	return &Pushover{Token: token, User: user, Endpoint: PushoverEndpoint, Client: &http.Client{}}, nil
}

// Notify implements jobs.Notifier.
func (p *Pushover) Notify(ctx context.Context, requesterID string, kind jobs.Kind, text string) error {
	form := url.Values{}
	form.Set("token", p.Token)
	form.Set("user", p.User)
	form.Set("title", title(requesterID, kind))
	form.Set("message", text)
	if kind == jobs.KindSuccess {
		form.Set("priority", "1")
	}

	endpoint := p.Endpoint
	if endpoint == "" {
		endpoint = PushoverEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("pushover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("received non-OK response from Pushover: %s", resp.Status)
	}
	return nil
}

func title(requesterID string, kind jobs.Kind) string {
	switch kind {
	case jobs.KindStart:
		return "Vanity search started (" + requesterID + ")"
	case jobs.KindProgress:
		return "Vanity search progress (" + requesterID + ")"
	case jobs.KindSuccess:
		return "Vanity address found! (" + requesterID + ")"
	case jobs.KindCancelled:
		return "Vanity search stopped (" + requesterID + ")"
	default:
		return "Vanity search failed (" + requesterID + ")"
	}
}
