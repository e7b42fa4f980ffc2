package main

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-teller/teller"
	"go-teller/tokens"
)

type server struct {
	teller *teller.Teller
	tokens *tokens.Manager
	log    *zap.Logger
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type AmountRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	TargetAccountID string          `json:"targetAccountId,omitempty"`
}

type ProfileRequest struct {
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
}

type CreateAccountRequest struct {
	Name           string          `json:"name"`
	Username       string          `json:"username"`
	Password       string          `json:"password"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

type UpdateAccountRequest struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

func (s *server) routes(r *gin.Engine) {
	r.POST("/api/login", s.login)
	r.POST("/api/signup", s.signup)

	authed := r.Group("/api", s.requireToken)
	authed.POST("/logout", s.logout)
	authed.GET("/me", s.me)
	authed.PUT("/me", s.updateProfile)
	authed.GET("/me/transactions", s.transactions)
	authed.POST("/deposits", s.deposit)
	authed.POST("/withdrawals", s.withdraw)
	authed.GET("/accounts", s.listAccounts)
	authed.POST("/accounts", s.createAccount)
	authed.PUT("/accounts/:accountId", s.updateAccount)
	authed.DELETE("/accounts/:accountId", s.deleteAccount)
}

// requireToken validates the bearer token issued at login. The core
// holds one session, so the token doubles as the session handle.
func (s *server) requireToken(c *gin.Context) {
	value := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if _, err := s.tokens.Validate(value); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
		return
	}
	c.Next()
}

func (s *server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
		return
	}

	account, err := s.teller.Login(req.Identifier, req.Secret)
	if err != nil {
		s.fail(c, err)
		return
	}
	token := s.tokens.Issue(account.ID)
	c.JSON(http.StatusOK, gin.H{"token": token.Value, "account": account})
}

var nameRegex = regexp.MustCompile(`^[a-zA-Z\s]+$`)

func (s *server) signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
		return
	}

	var errs []string
	if req.Name == "" {
		errs = append(errs, "Name cannot be empty")
	}
	if req.Name != "" && !nameRegex.MatchString(req.Name) {
		errs = append(errs, "Name must contain only letters and spaces")
	}
	if req.Password == "" {
		errs = append(errs, "Password cannot be empty")
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	account, err := s.teller.Signup(req.Name, req.Username, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	token := s.tokens.Issue(account.ID)
	c.JSON(http.StatusCreated, gin.H{"token": token.Value, "account": account})
}

func (s *server) logout(c *gin.Context) {
	s.teller.Logout()
	s.tokens.Revoke()
	c.Status(http.StatusNoContent)
}

func (s *server) me(c *gin.Context) {
	account, err := s.teller.CurrentAccount()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (s *server) updateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
		return
	}
	if err := s.teller.UpdateOwnProfile(req.Name, req.AccountNumber); err != nil {
		s.fail(c, err)
		return
	}
	account, err := s.teller.CurrentAccount()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (s *server) transactions(c *gin.Context) {
	txs, err := s.teller.Transactions()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

func (s *server) deposit(c *gin.Context) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
		return
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Amount must be positive"}})
		return
	}
	if err := s.teller.Deposit(req.Amount, req.TargetAccountID); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (s *server) withdraw(c *gin.Context) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
		return
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Amount must be positive"}})
		return
	}
	if err := s.teller.Withdraw(req.Amount, req.TargetAccountID); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (s *server) listAccounts(c *gin.Context) {
	accounts, err := s.teller.Accounts()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

func (s *server) createAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
		return
	}

	var errs []string
	if req.Name == "" {
		errs = append(errs, "Name cannot be empty")
	}
	if req.Name != "" && !nameRegex.MatchString(req.Name) {
		errs = append(errs, "Name must contain only letters and spaces")
	}
	if req.InitialBalance.IsNegative() {
		errs = append(errs, "Initial balance cannot be negative")
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	account, err := s.teller.CreateAccount(req.Name, req.Username, req.Password, req.InitialBalance)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (s *server) updateAccount(c *gin.Context) {
	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"Invalid request body"}})
		return
	}
	if err := s.teller.UpdateAccount(c.Param("accountId"), req.Name, req.Balance); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *server) deleteAccount(c *gin.Context) {
	if err := s.teller.DeleteAccount(c.Param("accountId")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// fail maps a domain error to an HTTP status and renders it the way the
// front-end expects: a single inline message.
func (s *server) fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, teller.ErrAuthFailed), errors.Is(err, teller.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, teller.ErrPolicyViolation):
		return http.StatusForbidden
	case errors.Is(err, teller.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, teller.ErrDuplicateIdentifier), errors.Is(err, teller.ErrInsufficientFunds):
		return http.StatusConflict
	case errors.Is(err, teller.ErrInvalidAmount), errors.Is(err, teller.ErrInvalidIdentifier), errors.Is(err, teller.ErrInvalidSecret):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
