// Package api exposes an exchange over HTTP.
package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/etnz/gbce"
	"github.com/etnz/gbce/listing"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const basePath = "/api/v1"

var errMissingPrice = errors.New("price query param required")

// Handler serves the exchange API.
type Handler struct {
	router   *gin.Engine
	exchange *gbce.Exchange
	log      logrus.FieldLogger
}

// NewHandler returns a Handler serving e.
func NewHandler(e *gbce.Exchange, log logrus.FieldLogger) *Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	h := &Handler{
		router:   router,
		exchange: e,
		log:      log,
	}
	router.Use(h.logRequests())
	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	v1 := h.router.Group(basePath)
	{
		securities := v1.Group("/securities")
		{
			securities.GET("", h.listSecurities)
			securities.POST("", h.addSecurity)
			securities.GET("/:symbol", h.getSecurity)
			securities.GET("/:symbol/dividend-yield", h.getDividendYield)
			securities.GET("/:symbol/pe-ratio", h.getPriceEarningsRatio)
			securities.GET("/:symbol/vwsp", h.getVolumeWeightedPrice)
		}

		trades := v1.Group("/trades")
		{
			trades.POST("", h.makeTrade)
			trades.GET("", h.listTrades)
		}

		v1.GET("/index", h.getAllShareIndex)
	}
}

// securityView is the JSON representation of a listed security.
type securityView struct {
	Symbol        string   `json:"symbol"`
	Type          string   `json:"type"`
	LastDividend  float64  `json:"lastDividend"`
	FixedDividend float64  `json:"fixedDividend,omitempty"`
	ParValue      float64  `json:"parValue"`
	Price         *float64 `json:"price"` // null until the first trade.
}

func newSecurityView(s *gbce.Security) securityView {
	v := securityView{
		Symbol:        s.Symbol(),
		Type:          s.Kind().String(),
		LastDividend:  s.LastDividend(),
		FixedDividend: s.FixedDividend(),
		ParValue:      s.ParValue(),
	}
	if s.Traded() {
		p := s.Price()
		v.Price = &p
	}
	return v
}

type tradePayload struct {
	Symbol    string  `json:"symbol" binding:"required"`
	Quantity  int     `json:"quantity"`
	Direction string  `json:"direction" binding:"required"`
	Price     float64 `json:"price"`
}

func (h *Handler) listSecurities(c *gin.Context) {
	views := make([]securityView, 0, h.exchange.Len())
	for s := range h.exchange.Securities() {
		views = append(views, newSecurityView(s))
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) addSecurity(c *gin.Context) {
	var payload listing.Entry
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	s, err := payload.Security()
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	if err := h.exchange.AddSecurity(s); err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	c.JSON(http.StatusCreated, newSecurityView(s))
}

func (h *Handler) getSecurity(c *gin.Context) {
	s, err := h.exchange.Security(c.Param("symbol"))
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	c.JSON(http.StatusOK, newSecurityView(s))
}

func (h *Handler) getDividendYield(c *gin.Context) {
	price, err := parsePriceQuery(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	symbol := gbce.CanonicalSymbol(c.Param("symbol"))
	dy, err := h.exchange.DividendYield(symbol, price)
	if err == nil {
		err = finite("dividend yield", dy)
	}
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "price": price, "dividendYield": dy})
}

func (h *Handler) getPriceEarningsRatio(c *gin.Context) {
	price, err := parsePriceQuery(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	symbol := gbce.CanonicalSymbol(c.Param("symbol"))
	pe, err := h.exchange.PriceEarningsRatio(symbol, price)
	if err == nil {
		err = finite("P/E ratio", pe)
	}
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "price": price, "peRatio": pe})
}

func (h *Handler) getVolumeWeightedPrice(c *gin.Context) {
	symbol := gbce.CanonicalSymbol(c.Param("symbol"))
	vwsp, err := h.exchange.VolumeWeightedPrice(symbol)
	if err == nil {
		err = finite("VWSP", vwsp)
	}
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "window": h.exchange.Window().String(), "vwsp": vwsp})
}

func (h *Handler) makeTrade(c *gin.Context) {
	var payload tradePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	direction, err := gbce.ParseDirection(payload.Direction)
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	t, err := h.exchange.MakeTrade(payload.Symbol, payload.Quantity, direction, payload.Price)
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) listTrades(c *gin.Context) {
	filter := gbce.AcceptAll
	if symbol := c.Query("symbol"); symbol != "" {
		if _, err := h.exchange.Security(symbol); err != nil {
			writeError(c, statusOf(err), err)
			return
		}
		filter = gbce.BySymbol(symbol)
	}
	trades := h.exchange.Trades(filter)
	if trades == nil {
		trades = []gbce.Trade{}
	}
	c.JSON(http.StatusOK, trades)
}

func (h *Handler) getAllShareIndex(c *gin.Context) {
	index, err := h.exchange.AllShareIndex()
	if err == nil {
		err = finite("all share index", index)
	}
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"index": index})
}

// logRequests logs every request once it has been served.
func (h *Handler) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Info("request served")
	}
}

func parsePriceQuery(c *gin.Context) (float64, error) {
	value := c.Query("price")
	if value == "" {
		return 0, errMissingPrice
	}
	price, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: invalid price %q", gbce.ErrInvalidArgument, value)
	}
	return price, nil
}

// finite reports an indicator that JSON cannot represent.
func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s is %v", gbce.ErrDomain, name, v)
	}
	return nil
}

// statusOf maps exchange errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, gbce.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, gbce.ErrNotFound), errors.Is(err, gbce.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, gbce.ErrAlreadyExists), errors.Is(err, gbce.ErrStaleData):
		return http.StatusConflict
	case errors.Is(err, gbce.ErrDomain):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, status int, err error) {
	if err == nil {
		status = http.StatusInternalServerError
		err = errors.New("unknown error")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
