package transport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ticketanywhere/ticketanywhere/internal/service"
)

type TicketHandler struct {
	ticketService  service.TicketService
	receiptService service.ReceiptService
}

func NewTicketHandler(ticketService service.TicketService, receiptService service.ReceiptService) *TicketHandler {
	return &TicketHandler{
		ticketService:  ticketService,
		receiptService: receiptService,
	}
}

func (h *TicketHandler) Purchase(c *gin.Context) {
	var req service.PurchaseTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.ticketService.Purchase(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

func (h *TicketHandler) GetUserTickets(c *gin.Context) {
	tickets, err := h.ticketService.GetUserTickets(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) GetEventTickets(c *gin.Context) {
	tickets, err := h.ticketService.GetEventTickets(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// GetRecentReceipts serves the admin feed filled by the receipt worker.
func (h *TicketHandler) GetRecentReceipts(c *gin.Context) {
	count, _ := strconv.Atoi(c.DefaultQuery("count", "50"))

	receipts, err := h.receiptService.Recent(c.Request.Context(), count)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipts)
}
