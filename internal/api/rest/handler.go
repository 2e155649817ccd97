package rest

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/objectledger/custodian/internal/domain"
	"github.com/objectledger/custodian/internal/journal"
	"github.com/objectledger/custodian/internal/marketplace"
	"github.com/objectledger/custodian/internal/purchase"
	"github.com/objectledger/custodian/internal/registry"
	"github.com/objectledger/custodian/internal/transfer"
	"github.com/objectledger/custodian/internal/wallet"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// CreateWallet binds a new custodial wallet to a caller-owned object
	// POST /api/v1/wallets
	CreateWallet(c *gin.Context)

	// GetWallet retrieves wallet metadata
	// GET /api/v1/wallets/:id
	GetWallet(c *gin.Context)

	// GetBalances enumerates a wallet's token balances
	// GET /api/v1/wallets/:id/balances
	GetBalances(c *gin.Context)

	// Deposit credits a wallet from the caller's funds
	// POST /api/v1/wallets/:id/deposits
	Deposit(c *gin.Context)

	// Withdraw debits a wallet to a destination address
	// POST /api/v1/wallets/:id/withdrawals
	Withdraw(c *gin.Context)

	// MergeFunds consolidates the caller's fund objects of one token type
	// POST /api/v1/funds/merge
	MergeFunds(c *gin.Context)

	// CreateTransfer schedules a future transfer
	// POST /api/v1/transfers
	CreateTransfer(c *gin.Context)

	// GetTransfer retrieves one scheduled transfer
	// GET /api/v1/transfers/:id
	GetTransfer(c *gin.Context)

	// ExecuteTransfer settles a due transfer
	// POST /api/v1/transfers/:id/execute
	ExecuteTransfer(c *gin.Context)

	// CancelTransfer voids a pending transfer (creator only)
	// POST /api/v1/transfers/:id/cancel
	CancelTransfer(c *gin.Context)

	// ExecuteDue batch-executes a set of due transfers
	// POST /api/v1/transfers/execute-due
	ExecuteDue(c *gin.Context)

	// ListObjectTransfers lists transfers recorded against an object
	// GET /api/v1/objects/:id/transfers
	ListObjectTransfers(c *gin.Context)

	// GetObject retrieves a tradable object
	// GET /api/v1/objects/:id
	GetObject(c *gin.Context)

	// ListObject puts an object up for sale
	// POST /api/v1/objects/:id/list
	ListObject(c *gin.Context)

	// DelistObject takes an object off the market
	// POST /api/v1/objects/:id/delist
	DelistObject(c *gin.Context)

	// Purchase buys a listed object
	// POST /api/v1/purchases
	Purchase(c *gin.Context)

	// GetMarketplaceInfo retrieves marketplace metadata
	// GET /api/v1/marketplace
	GetMarketplaceInfo(c *gin.Context)

	// GetMarketplaceStats retrieves listing counters
	// GET /api/v1/marketplace/stats
	GetMarketplaceStats(c *gin.Context)

	// GetSupportedTokens lists the marketplace's supported token types
	// GET /api/v1/marketplace/tokens
	GetSupportedTokens(c *gin.Context)

	// GetSubmission retrieves one journal record by submission id
	// GET /api/v1/submissions/:id
	GetSubmission(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	wallets     *wallet.Manager
	transfers   *transfer.Engine
	purchases   *purchase.Orchestrator
	marketplace *marketplace.Service
	tokens      registry.TokenResolver
	journal     journal.Store
}

// NewHandler creates a new REST API handler
func NewHandler(wallets *wallet.Manager, transfers *transfer.Engine, purchases *purchase.Orchestrator, market *marketplace.Service, tokens registry.TokenResolver, journalStore journal.Store) Handler {
	return &handler{
		wallets:     wallets,
		transfers:   transfers,
		purchases:   purchases,
		marketplace: market,
		tokens:      tokens,
		journal:     journalStore,
	}
}

func (h *handler) CreateWallet(c *gin.Context) {
	var req CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	walletID, err := h.wallets.CreateWallet(c.Request.Context(), domain.Address(req.Caller), domain.ObjectID(req.ObjectID))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"wallet_id": walletID})
}

func (h *handler) GetWallet(c *gin.Context) {
	walletID := domain.ObjectID(c.Param("id"))
	if !domain.IsValidObjectID(walletID) {
		respondBadRequest(c, "Invalid wallet id")
		return
	}

	w, err := h.wallets.GetWallet(c.Request.Context(), walletID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, WalletResponse{
		ID:        string(w.ID),
		ObjectID:  string(w.ObjectID),
		Owner:     string(w.Owner),
		CreatedAt: w.CreatedAt,
	})
}

func (h *handler) GetBalances(c *gin.Context) {
	walletID := domain.ObjectID(c.Param("id"))
	if !domain.IsValidObjectID(walletID) {
		respondBadRequest(c, "Invalid wallet id")
		return
	}

	balances, err := h.wallets.Balances(c.Request.Context(), walletID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	entries := make([]BalanceEntry, 0, len(balances))
	for key, amount := range balances {
		tokenType, err := domain.ParseTokenType(key)
		if err != nil {
			continue
		}
		info := h.tokens.Resolve(c.Request.Context(), tokenType)
		entries = append(entries, BalanceEntry{
			TokenType: key,
			Symbol:    info.Symbol,
			Amount:    amount,
			Display:   h.tokens.FormatAmount(c.Request.Context(), tokenType, amount),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].TokenType < entries[j].TokenType
	})

	c.JSON(http.StatusOK, gin.H{"wallet_id": walletID, "balances": entries})
}

func (h *handler) Deposit(c *gin.Context) {
	walletID := domain.ObjectID(c.Param("id"))
	if !domain.IsValidObjectID(walletID) {
		respondBadRequest(c, "Invalid wallet id")
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	tokenType, err := req.Validate()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.wallets.Deposit(c.Request.Context(), domain.Address(req.Caller), walletID, tokenType, req.Amount)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"digest": result.Digest, "stale": result.Stale})
}

func (h *handler) Withdraw(c *gin.Context) {
	walletID := domain.ObjectID(c.Param("id"))
	if !domain.IsValidObjectID(walletID) {
		respondBadRequest(c, "Invalid wallet id")
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	tokenType, err := req.Validate()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	digest, err := h.wallets.Withdraw(c.Request.Context(), domain.Address(req.Caller), walletID, tokenType, req.Amount, domain.Address(req.To))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, DigestResponse{Digest: digest})
}

func (h *handler) MergeFunds(c *gin.Context) {
	var req MergeFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	tokenType, err := req.Validate()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	digest, err := h.wallets.MergeFunds(c.Request.Context(), domain.Address(req.Caller), tokenType)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"digest": digest, "merged": digest != ""})
}

func (h *handler) CreateTransfer(c *gin.Context) {
	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	tokenType, executeAt, err := req.Validate()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.transfers.Create(c.Request.Context(), domain.Address(req.Caller),
		domain.ObjectID(req.WalletID), domain.ObjectID(req.ObjectID), domain.Address(req.To), tokenType, req.Amount, executeAt)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transfer_id": result.TransferID, "digest": result.Digest})
}

func (h *handler) GetTransfer(c *gin.Context) {
	transferID := domain.ObjectID(c.Param("id"))
	if !domain.IsValidObjectID(transferID) {
		respondBadRequest(c, "Invalid transfer id")
		return
	}

	t, err := h.transfers.Get(c.Request.Context(), transferID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransferResponseFrom(t))
}

func (h *handler) ExecuteTransfer(c *gin.Context) {
	transferID := domain.ObjectID(c.Param("id"))
	if !domain.IsValidObjectID(transferID) {
		respondBadRequest(c, "Invalid transfer id")
		return
	}

	var req CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	digest, err := h.transfers.Execute(c.Request.Context(), domain.Address(req.Caller), transferID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, DigestResponse{Digest: digest})
}

func (h *handler) CancelTransfer(c *gin.Context) {
	transferID := domain.ObjectID(c.Param("id"))
	if !domain.IsValidObjectID(transferID) {
		respondBadRequest(c, "Invalid transfer id")
		return
	}

	var req CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	digest, err := h.transfers.Cancel(c.Request.Context(), domain.Address(req.Caller), transferID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, DigestResponse{Digest: digest})
}

func (h *handler) ExecuteDue(c *gin.Context) {
	var req ExecuteDueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	ids := make([]domain.ObjectID, 0, len(req.TransferIDs))
	for _, id := range req.TransferIDs {
		ids = append(ids, domain.ObjectID(id))
	}

	result, err := h.transfers.ExecuteDue(c.Request.Context(), domain.Address(req.Caller), ids)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *handler) ListObjectTransfers(c *gin.Context) {
	objectID := domain.ObjectID(c.Param("id"))
	if !domain.IsValidObjectID(objectID) {
		respondBadRequest(c, "Invalid object id")
		return
	}

	transfers, err := h.transfers.ListForObject(c.Request.Context(), objectID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	responses := make([]TransferResponse, 0, len(transfers))
	for i := range transfers {
		responses = append(responses, TransferResponseFrom(&transfers[i]))
	}

	c.JSON(http.StatusOK, gin.H{"object_id": objectID, "transfers": responses})
}

func (h *handler) GetObject(c *gin.Context) {
	objectID := domain.ObjectID(c.Param("id"))
	if !domain.IsValidObjectID(objectID) {
		respondBadRequest(c, "Invalid object id")
		return
	}

	obj, err := h.marketplace.GetTradingObject(c.Request.Context(), objectID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	resp := ObjectResponse{
		ID:        string(obj.ID),
		Owner:     string(obj.Owner),
		Price:     obj.Price,
		IsForSale: obj.IsForSale,
		WalletID:  string(obj.WalletID),
	}
	if !obj.TokenType.IsZero() {
		resp.TokenType = obj.TokenType.String()
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) ListObject(c *gin.Context) {
	objectID := domain.ObjectID(c.Param("id"))
	if !domain.IsValidObjectID(objectID) {
		respondBadRequest(c, "Invalid object id")
		return
	}

	var req ListObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	tokenType, err := req.Validate()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	digest, err := h.marketplace.ListObject(c.Request.Context(), domain.Address(req.Caller), objectID, req.Price, tokenType)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, DigestResponse{Digest: digest})
}

func (h *handler) DelistObject(c *gin.Context) {
	objectID := domain.ObjectID(c.Param("id"))
	if !domain.IsValidObjectID(objectID) {
		respondBadRequest(c, "Invalid object id")
		return
	}

	var req CallerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	digest, err := h.marketplace.DelistObject(c.Request.Context(), domain.Address(req.Caller), objectID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, DigestResponse{Digest: digest})
}

func (h *handler) Purchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	tokenType, err := req.Validate()
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	outcome, err := h.purchases.Purchase(c.Request.Context(), domain.Address(req.Buyer), domain.ObjectID(req.ObjectID), tokenType)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

func (h *handler) GetMarketplaceInfo(c *gin.Context) {
	info, err := h.marketplace.GetInfo(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *handler) GetMarketplaceStats(c *gin.Context) {
	stats, err := h.marketplace.GetStats(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *handler) GetSupportedTokens(c *gin.Context) {
	tokens, err := h.marketplace.SupportedTokenTypes(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	infos := make([]registry.TokenInfo, 0, len(tokens))
	for _, t := range tokens {
		infos = append(infos, h.tokens.Resolve(c.Request.Context(), t))
	}

	c.JSON(http.StatusOK, gin.H{"tokens": infos})
}

func (h *handler) GetSubmission(c *gin.Context) {
	if h.journal == nil {
		respondNotFound(c, "Submission journal not configured")
		return
	}

	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Submission id is required")
		return
	}

	record, err := h.journal.GetSubmission(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
