// Package fakebackend is an in-memory stand-in for the support backend, used
// by tests to drive the real gateway over HTTP.
package fakebackend

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"supportdesk/internal/domain/crm"
	"supportdesk/internal/domain/helpdesk"
	"supportdesk/internal/domain/user"
	"supportdesk/internal/domain/webhook"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type account struct {
	user     user.User
	password string
}

// Backend holds the fake's state. Exported fields may be set before Start;
// afterwards use the methods, which lock.
type Backend struct {
	mu sync.Mutex

	accounts map[string]*account
	tokens   map[string]string // token -> email

	Tickets       []helpdesk.Ticket
	Contacts      map[int64]helpdesk.Contact
	CRMContacts   map[string]crm.Contact
	Conversations map[int64][]helpdesk.Conversation
	WebhookLogs   []webhook.LogEntry

	// LoginMessage is returned with successful logins.
	LoginMessage string
	// Failures forces a status code (with {"message": ...}) for an exact path.
	Failures map[string]Failure

	holds map[string]chan struct{}
	calls []string
}

type Failure struct {
	Status  int
	Message string
}

func New() *Backend {
	return &Backend{
		accounts:      make(map[string]*account),
		tokens:        make(map[string]string),
		Contacts:      make(map[int64]helpdesk.Contact),
		CRMContacts:   make(map[string]crm.Contact),
		Conversations: make(map[int64][]helpdesk.Conversation),
		LoginMessage:  "Login successful",
		Failures:      make(map[string]Failure),
		holds:         make(map[string]chan struct{}),
	}
}

// Start serves the backend under /api and returns that base URL.
func (b *Backend) Start(t testing.TB) string {
	t.Helper()
	srv := httptest.NewServer(b.Router())
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

// AddUser registers an account and returns a valid token for it.
func (b *Backend) AddUser(u user.User, password string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accounts[u.Email] = &account{user: u, password: password}
	return b.issueTokenLocked(u.Email)
}

// User returns the stored account for email.
func (b *Backend) User(email string) (user.User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[email]
	if !ok {
		return user.User{}, false
	}
	return acc.user, true
}

// RevokeAll invalidates every issued token.
func (b *Backend) RevokeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = make(map[string]string)
}

// Fail makes requests to path answer with status and message.
func (b *Backend) Fail(path string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Failures[path] = Failure{Status: status, Message: message}
}

// Hold blocks requests to path until the returned release func is called.
func (b *Backend) Hold(path string) (release func()) {
	ch := make(chan struct{})
	b.mu.Lock()
	b.holds[path] = ch
	b.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.holds, path)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Calls returns every "METHOD path?query" received so far.
func (b *Backend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

// CallCount counts received requests whose path starts with prefix.
func (b *Backend) CallCount(prefix string) int {
	n := 0
	for _, c := range b.Calls() {
		parts := strings.SplitN(c, " ", 2)
		if len(parts) == 2 && strings.HasPrefix(parts[1], prefix) {
			n++
		}
	}
	return n
}

func (b *Backend) Router() *gin.Engine {
	r := gin.New()
	r.Use(b.record, b.hold, b.fail)

	api := r.Group("/api")
	api.POST("/register", b.register)
	api.POST("/login", b.login)

	authed := api.Group("", b.requireAuth)
	authed.GET("/user", b.me)
	authed.POST("/freshdesk/config", b.saveHelpdesk)
	authed.POST("/hubspot/config", b.saveCRM)
	authed.GET("/freshdesk/tickets", b.listTickets)
	authed.GET("/freshdesk/tickets/:id", b.getTicket)
	authed.GET("/freshdesk/tickets/:id/conversations", b.listConversations)
	authed.GET("/freshdesk/contacts/:id", b.getContact)
	authed.GET("/hubspot/contact", b.getCRMContact)
	authed.GET("/webhook/logs", b.listWebhookLogs)

	return r
}

func (b *Backend) record(c *gin.Context) {
	entry := c.Request.Method + " " + c.Request.URL.Path
	if c.Request.URL.RawQuery != "" {
		entry += "?" + c.Request.URL.RawQuery
	}
	b.mu.Lock()
	b.calls = append(b.calls, entry)
	b.mu.Unlock()
	c.Next()
}

func (b *Backend) hold(c *gin.Context) {
	b.mu.Lock()
	ch, ok := b.holds[c.Request.URL.Path]
	b.mu.Unlock()
	if ok {
		select {
		case <-ch:
		case <-c.Request.Context().Done():
			c.Abort()
			return
		}
	}
	c.Next()
}

func (b *Backend) fail(c *gin.Context) {
	b.mu.Lock()
	f, ok := b.Failures[c.Request.URL.Path]
	b.mu.Unlock()
	if ok {
		c.AbortWithStatusJSON(f.Status, gin.H{"message": f.Message})
		return
	}
	c.Next()
}

func (b *Backend) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	b.mu.Lock()
	email, ok := b.tokens[token]
	b.mu.Unlock()
	if !found || !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.Set("email", email)
	c.Next()
}

func (b *Backend) issueTokenLocked(email string) string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	token := hex.EncodeToString(buf)
	b.tokens[token] = email
	return token
}

func (b *Backend) register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.accounts[req.Email]; exists {
		c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
		return
	}
	u := user.User{ID: strconv.Itoa(len(b.accounts) + 1), Name: req.Name, Email: req.Email}
	b.accounts[req.Email] = &account{user: u, password: req.Password}
	c.JSON(http.StatusCreated, gin.H{
		"token":   b.issueTokenLocked(req.Email),
		"user":    u,
		"message": "User registered successfully",
	})
}

func (b *Backend) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[req.Email]
	if !ok || acc.password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":   b.issueTokenLocked(req.Email),
		"user":    acc.user,
		"message": b.LoginMessage,
	})
}

func (b *Backend) me(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[c.GetString("email")]
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": acc.user, "message": "success"})
}

func (b *Backend) saveHelpdesk(c *gin.Context) {
	var req struct {
		APIKey string `json:"apiKey"`
		Domain string `json:"domain"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.APIKey == "" || req.Domain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "apiKey and domain are required"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.accounts[c.GetString("email")]
	acc.user.HelpdeskAPIKey = req.APIKey
	acc.user.HelpdeskDomain = req.Domain
	c.JSON(http.StatusOK, gin.H{"message": "Freshdesk configuration saved"})
}

func (b *Backend) saveCRM(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := b.accounts[c.GetString("email")]
	acc.user.CRMToken = req.Token
	c.JSON(http.StatusOK, gin.H{"message": "HubSpot configuration saved"})
}

func (b *Backend) listTickets(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	tickets := b.Tickets
	if tickets == nil {
		tickets = []helpdesk.Ticket{}
	}
	c.JSON(http.StatusOK, tickets)
}

func (b *Backend) getTicket(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range b.Tickets {
		if t.ID == id {
			c.JSON(http.StatusOK, t)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Ticket not found"})
}

func (b *Backend) listConversations(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	convs := b.Conversations[id]
	if convs == nil {
		convs = []helpdesk.Conversation{}
	}
	c.JSON(http.StatusOK, convs)
}

func (b *Backend) getContact(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	contact, ok := b.Contacts[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Contact not found"})
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (b *Backend) getCRMContact(c *gin.Context) {
	email := c.Query("email")
	b.mu.Lock()
	defer b.mu.Unlock()
	contact, ok := b.CRMContacts[email]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "No HubSpot contact found for " + email})
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (b *Backend) listWebhookLogs(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	logs := b.WebhookLogs
	if logs == nil {
		logs = []webhook.LogEntry{}
	}
	c.JSON(http.StatusOK, logs)
}

// SetTickets replaces the ticket list.
func (b *Backend) SetTickets(tickets []helpdesk.Ticket) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Tickets = tickets
}
