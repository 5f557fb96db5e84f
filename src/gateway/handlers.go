package gateway

import (
	"net/http"
	"strconv"

	"github.com/cenkalti/backoff/v4"
	"github.com/gin-gonic/gin"

	"github.com/sealstudios/presale/src/gateway/request"
	"github.com/sealstudios/presale/src/gateway/response"
	"github.com/sealstudios/presale/src/presale"
	"github.com/sealstudios/presale/src/tier"
	"github.com/sealstudios/presale/src/utils/model"
	"github.com/sealstudios/presale/src/utils/task"
	"github.com/sealstudios/presale/src/utils/tool"
)

func (self *Server) abort(c *gin.Context, err error) {
	status := mapStatus(err)
	switch {
	case status == http.StatusInternalServerError:
		self.monitor.GetReport().Gateway.Errors.InternalErrors.Inc()
		self.Log.WithError(err).Error("Request failed")
	case status == http.StatusBadRequest:
		self.monitor.GetReport().Gateway.Errors.BadRequests.Inc()
	}
	c.AbortWithStatusJSON(status, response.Error{Error: err.Error()})
}

func (self *Server) badRequest(c *gin.Context, err error) {
	self.monitor.GetReport().Gateway.Errors.BadRequests.Inc()
	c.AbortWithStatusJSON(http.StatusBadRequest, response.Error{Error: err.Error()})
}

func (self *Server) onCreateSale(c *gin.Context) {
	var in request.CreateSale
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}

	sale := &model.Sale{
		ID:            in.ID,
		Authority:     in.Authority,
		Treasury:      in.Treasury,
		TokenMint:     in.TokenMint,
		TokenPool:     in.TokenPool,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		MinPurchase:   in.MinPurchase,
		MaxPurchase:   in.MaxPurchase,
		TotalRaiseCap: in.TotalRaiseCap,
		PresaleSupply: in.PresaleSupply,
		PricePerToken: in.PricePerToken,
		WhitelistRoot: in.WhitelistRoot,
	}

	err = self.ledger.InitializeSale(c.Request.Context(), sale)
	if err != nil {
		self.abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func (self *Server) onGetSale(c *gin.Context) {
	id := c.Param("id")

	if cached, ok := self.saleCache.Get(id); ok {
		c.JSON(http.StatusOK, cached.(*model.Sale))
		return
	}

	sale, err := self.ledger.GetSale(c.Request.Context(), id)
	if err != nil {
		self.abort(c, err)
		return
	}

	self.saleCache.SetDefault(id, sale)
	c.JSON(http.StatusOK, sale)
}

func (self *Server) onContribute(c *gin.Context) {
	var in request.Contribute
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}

	if len(in.Metadata) > 0 {
		if !tool.IsJSON(in.Metadata) {
			self.badRequest(c, ErrInvalidMetadata)
			return
		}
		in.Metadata = tool.MinifyJSON(in.Metadata)
	}

	if self.limiter != nil {
		self.limiter.Take()
	}
	self.monitor.GetReport().Gateway.State.ContributionsSubmitted.Inc()

	saleId := c.Param("id")

	var contribution *model.Contribution
	err = task.NewRetry().
		WithContext(c.Request.Context()).
		WithMaxElapsedTime(self.Config.Gateway.CommitRetryMaxElapsedTime).
		WithMaxInterval(self.Config.Gateway.CommitRetryMaxInterval).
		WithOnError(func(err error) {
			self.Log.WithError(err).Warn("Retrying contribution commit")
		}).
		Run(func() (err error) {
			contribution, err = self.ledger.AcceptContribution(c.Request.Context(), &presale.ContributionRequest{
				SaleID:      saleId,
				Contributor: in.Contributor,
				Amount:      in.Amount,
				Proof:       in.Proof,
				Metadata:    in.Metadata,
			})
			if err != nil && !isRetryable(err) {
				return backoff.Permanent(err)
			}
			return
		})
	if err != nil {
		self.abort(c, err)
		return
	}

	// Invalidate the cached snapshot, totals just changed
	self.saleCache.Delete(saleId)

	c.JSON(http.StatusCreated, contribution)
}

func (self *Server) onListContributions(c *gin.Context) {
	limit := 100
	if raw, ok := c.GetQuery("limit"); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			self.badRequest(c, ErrInvalidLimit)
			return
		}
		limit = parsed
	}

	contributions, err := self.ledger.ListContributions(
		c.Request.Context(), c.Param("id"), c.Query("contributor"), limit)
	if err != nil {
		self.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Contributions{Contributions: contributions})
}

func (self *Server) onFinalize(c *gin.Context) {
	var in request.Finalize
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}

	id := c.Param("id")
	err = self.ledger.Finalize(c.Request.Context(), id, in.Authority)
	if err != nil {
		self.abort(c, err)
		return
	}

	self.saleCache.Delete(id)
	c.Status(http.StatusOK)
}

func (self *Server) onUpdateWhitelist(c *gin.Context) {
	var in request.UpdateWhitelist
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}

	id := c.Param("id")
	err = self.ledger.UpdateWhitelist(c.Request.Context(), id, in.Authority, in.Root)
	if err != nil {
		self.abort(c, err)
		return
	}

	self.saleCache.Delete(id)
	c.Status(http.StatusOK)
}

func (self *Server) onGetParticipant(c *gin.Context) {
	saleId := c.Param("id")
	address := c.Param("address")

	participant, err := self.ledger.GetParticipant(c.Request.Context(), saleId, address)
	if err != nil {
		self.abort(c, err)
		return
	}

	contributions, err := self.ledger.ListContributions(c.Request.Context(), saleId, address, 0)
	if err != nil {
		self.abort(c, err)
		return
	}

	rewardTier, err := self.registry.LookupTier(c.Request.Context(), uint64(len(contributions)))
	if err == tier.ErrNotInitialized {
		rewardTier = tier.None
	} else if err != nil {
		self.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Participant{
		SaleID:              participant.SaleID,
		Address:             participant.Address,
		TotalContributed:    participant.TotalContributed,
		TotalTokensReceived: participant.TotalTokensReceived,
		ContributionCount:   len(contributions),
		Tier:                rewardTier.String(),
	})
}

func (self *Server) onLookupTier(c *gin.Context) {
	count, err := strconv.ParseUint(c.Param("count"), 10, 64)
	if err != nil {
		self.badRequest(c, err)
		return
	}

	rewardTier, err := self.registry.LookupTier(c.Request.Context(), count)
	if err != nil {
		self.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, response.TierLookup{Count: count, Tier: rewardTier.String()})
}

func (self *Server) onUpdateThresholds(c *gin.Context) {
	var in request.UpdateThresholds
	err := c.ShouldBindJSON(&in)
	if err != nil {
		self.badRequest(c, err)
		return
	}

	err = self.registry.UpdateThresholds(c.Request.Context(), in.Authority,
		in.BronzeThreshold, in.SilverThreshold, in.GoldThreshold)
	if err != nil {
		self.abort(c, err)
		return
	}

	c.Status(http.StatusOK)
}
