package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type HelpdeskConfigRequest struct {
	APIKey string `json:"apiKey"`
	Domain string `json:"domain"`
}

type CRMConfigRequest struct {
	Token string `json:"token"`
}

func (c *Client) Register(ctx context.Context, body RegisterRequest) Result {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: "/register", Body: body})
}

func (c *Client) Login(ctx context.Context, body LoginRequest) Result {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: "/login", Body: body})
}

// GetSession is the authenticated "who am I" check.
func (c *Client) GetSession(ctx context.Context) Result {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: "/user"})
}

func (c *Client) SaveHelpdeskConfig(ctx context.Context, body HelpdeskConfigRequest) Result {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: "/" + c.paths.Helpdesk + "/config", Body: body})
}

func (c *Client) SaveCRMConfig(ctx context.Context, body CRMConfigRequest) Result {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: "/" + c.paths.CRM + "/config", Body: body})
}

func (c *Client) ListTickets(ctx context.Context) Result {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: "/" + c.paths.Helpdesk + "/tickets"})
}

func (c *Client) GetTicket(ctx context.Context, ticketID int64) Result {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: c.ticketPath(ticketID)})
}

func (c *Client) GetTicketConversations(ctx context.Context, ticketID int64) Result {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: c.ticketPath(ticketID) + "/conversations"})
}

func (c *Client) GetContact(ctx context.Context, requesterID int64) Result {
	path := "/" + c.paths.Helpdesk + "/contacts/" + strconv.FormatInt(requesterID, 10)
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path})
}

// GetCRMContactByEmail looks a CRM contact up by email; the email is query-escaped.
func (c *Client) GetCRMContactByEmail(ctx context.Context, email string) Result {
	return c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/" + c.paths.CRM + "/contact",
		Query:  url.Values{"email": []string{email}},
	})
}

func (c *Client) GetWebhookLogs(ctx context.Context) Result {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: "/webhook/logs"})
}

func (c *Client) ticketPath(ticketID int64) string {
	return "/" + c.paths.Helpdesk + "/tickets/" + strconv.FormatInt(ticketID, 10)
}
