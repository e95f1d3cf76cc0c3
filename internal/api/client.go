package api

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ometa/lovemonster-cli-go/internal/core"
)

// ErrAssociationWithoutUser is returned when an association filter is
// passed to ListLoves without a user to apply it to.
var ErrAssociationWithoutUser = errors.New("association filter requires a filter user")

// Client is the façade over the Love Monster REST API. It builds
// authenticated request URLs, holds the single-session auth state, and
// exposes the three domain operations: listing loves, creating a love, and
// authenticating with cookies.
//
// N.B. A Client holds mutable session state (cookie, authenticated user)
// and is not safe for concurrent use by goroutines issuing mutating calls
// simultaneously; serialize Authenticate against in-flight requests or
// accept last-writer-wins.
type Client struct {
	parser    *ResponseParser
	transport Transport
	host      string
	clientID  string
	verbose   bool

	cookie            string
	authenticatedUser *User
}

// NewClient creates a client from config. A nil transport defaults to the
// live HTTP transport.
func NewClient(cfg core.Config, transport Transport, verbose bool) *Client {
	if transport == nil {
		transport = NewHTTPTransport(verbose)
	}
	parser := NewResponseParserWithCache(!cfg.DisableUserCache, cfg.ProfileImageURLFormat)
	return &Client{
		parser:    parser,
		transport: transport,
		host:      cfg.Host,
		clientID:  cfg.ClientID,
		verbose:   verbose,
		cookie:    cfg.Cookie,
	}
}

// log writes a message to stderr if verbose mode is enabled.
func (c *Client) log(msg string) {
	core.Eprint(fmt.Sprintf("[client] %s", msg), c.verbose)
}

// RootURL returns the site root. The web login flow loads this URL and
// watches for it to resolve, which signals that auth cookies are set.
func (c *Client) RootURL() string {
	return fmt.Sprintf("%s://%s/", core.APIScheme, c.host)
}

// buildURL builds the full request URL for path. Every request carries the
// clientId query parameter, always.
func (c *Client) buildURL(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("clientId", c.clientID)

	u := url.URL{
		Scheme:   core.APIScheme,
		Host:     c.host,
		Path:     path,
		RawQuery: params.Encode(),
	}
	return u.String()
}

// requestHeaders returns the headers applied to every request: the fixed
// content negotiation pair plus the session cookie once present.
func (c *Client) requestHeaders() map[string]string {
	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	if c.cookie != "" {
		headers["Cookie"] = c.cookie
	}
	return headers
}

// ListLoves retrieves a page of loves asynchronously. filterUser restricts
// the listing to loves involving that user; association further restricts
// to loves they sent (AssociationLover) or received (AssociationLovee).
//
// Passing an association without a filter user is a contract violation and
// fails synchronously, before any network call is made. Otherwise exactly
// one handler callback fires when the request completes.
func (c *Client) ListLoves(handler LoveListHandler, page int, filterUser *User, association Association) error {
	if association != "" && filterUser == nil {
		return ErrAssociationWithoutUser
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if filterUser != nil {
		params.Set("user_id", filterUser.Username)
		switch association {
		case AssociationLovee:
			params.Set("filter", "to")
		case AssociationLover:
			params.Set("filter", "from")
		}
	}

	urlStr := c.buildURL(core.APIBasePath+"/loves", params)
	c.log(fmt.Sprintf("method=ListLoves url=%s", urlStr))

	d := dispatcher{op: "ListLoves", expected: PayloadObject, log: c.log}
	headers := c.requestHeaders()

	go func() {
		result := d.dispatch(c.transport.Get(urlStr, headers))
		switch result.Outcome {
		case OutcomeSuccess:
			loves := c.parser.ParseLoveList(result.Payload.Object)
			if handler.OnSuccess != nil {
				handler.OnSuccess(loves, totalPages(result.Payload.Object))
			}
		case OutcomeFailure:
			if handler.OnFail != nil {
				handler.OnFail(result.Messages)
			}
		case OutcomeAuthenticationFailure:
			if handler.OnAuthenticationFailure != nil {
				handler.OnAuthenticationFailure()
			}
		}
	}()

	return nil
}

// MakeLove sends a love asynchronously. On success the handler receives
// the caller's love value back, not a server echo.
func (c *Client) MakeLove(love Love, handler LoveHandler) {
	form := url.Values{}
	form.Set("reason", love.Reason)
	form.Set("message", love.Message)
	form.Set("to", love.Lovee.Username)
	form.Set("from", love.Lover.Username)
	form.Set("private_message", strconv.FormatBool(love.IsPrivate))

	urlStr := c.buildURL(core.APIBasePath+"/loves", nil)
	c.log(fmt.Sprintf("method=MakeLove url=%s", urlStr))

	d := dispatcher{op: "MakeLove", expected: PayloadObject, log: c.log}
	headers := c.requestHeaders()

	go func() {
		result := d.dispatch(c.transport.Post(urlStr, headers, form))
		switch result.Outcome {
		case OutcomeSuccess:
			if handler.OnSuccess != nil {
				handler.OnSuccess(love)
			}
		case OutcomeFailure:
			if handler.OnFail != nil {
				handler.OnFail(result.Messages)
			}
		case OutcomeAuthenticationFailure:
			if handler.OnAuthenticationFailure != nil {
				handler.OnAuthenticationFailure()
			}
		}
	}()
}

// Authenticate stores cookie as the session cookie for all subsequent
// requests and verifies it against the account endpoint. On success the
// parsed account becomes the authenticated user; any prior authenticated
// user is dropped either way.
func (c *Client) Authenticate(cookie string, handler AuthenticationHandler) {
	c.cookie = cookie
	c.authenticatedUser = nil

	urlStr := c.buildURL(core.APIBasePath+"/account", nil)
	c.log(fmt.Sprintf("method=Authenticate url=%s", urlStr))

	d := dispatcher{op: "Authenticate", expected: PayloadObject, log: c.log}
	headers := c.requestHeaders()

	go func() {
		result := d.dispatch(c.transport.Get(urlStr, headers))
		switch result.Outcome {
		case OutcomeSuccess:
			user := c.parser.ParseUser(result.Payload.Object)
			if user == nil {
				if handler.OnFail != nil {
					handler.OnFail([]string{"could not parse account response"})
				}
				return
			}
			c.authenticatedUser = user
			if handler.OnSuccess != nil {
				handler.OnSuccess(user)
			}
		case OutcomeFailure:
			if handler.OnFail != nil {
				handler.OnFail(result.Messages)
			}
		case OutcomeAuthenticationFailure:
			if handler.OnAuthenticationFailure != nil {
				handler.OnAuthenticationFailure()
			}
		}
	}()
}

// AuthenticatedUser returns the current session user, or nil before a
// successful Authenticate call.
func (c *Client) AuthenticatedUser() *User {
	return c.authenticatedUser
}

// totalPages reads meta.total_pages from a response envelope, defaulting
// to 0 when absent at any nesting level.
func totalPages(envelope map[string]interface{}) int {
	meta, ok := envelope["meta"].(map[string]interface{})
	if !ok {
		return 0
	}
	pages, ok := meta["total_pages"].(float64)
	if !ok {
		return 0
	}
	return int(pages)
}
