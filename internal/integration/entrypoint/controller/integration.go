package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerly/backend/internal/application/usecase/integrity"
	"github.com/ledgerly/backend/internal/application/usecase/invoicing"
	"github.com/ledgerly/backend/internal/integration/entrypoint/dto"
)

// IntegrationController receives events pushed by external systems.
type IntegrationController struct {
	ingestUseCase *invoicing.IngestInvoiceEventUseCase
}

// NewIntegrationController creates a new integration controller instance.
func NewIntegrationController(ingestUseCase *invoicing.IngestInvoiceEventUseCase) *IntegrationController {
	return &IntegrationController{ingestUseCase: ingestUseCase}
}

// QuoteForgeEvent handles POST /integrations/quoteforge/events requests.
// A redelivered event answers 200 with duplicate set; a new one answers 201.
func (c *IntegrationController) QuoteForgeEvent(ctx *gin.Context) {
	var req dto.InvoiceEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindingError(ctx, err)
		return
	}
	event, err := req.ToEvent()
	if err != nil {
		respondBindingError(ctx, err)
		return
	}

	output, err := c.ingestUseCase.Execute(ctx.Request.Context(), event)
	if err != nil {
		respondError(ctx, err)
		return
	}

	status := http.StatusCreated
	if output.Duplicate || output.Updated {
		status = http.StatusOK
	}
	ctx.JSON(status, dto.ToInvoiceEventResponse(output))
}

// IntegrityController exposes the ledger audit.
type IntegrityController struct {
	verifyUseCase *integrity.VerifyIntegrityUseCase
}

// NewIntegrityController creates a new integrity controller instance.
func NewIntegrityController(verifyUseCase *integrity.VerifyIntegrityUseCase) *IntegrityController {
	return &IntegrityController{verifyUseCase: verifyUseCase}
}

// Verify handles GET /integrity requests.
func (c *IntegrityController) Verify(ctx *gin.Context) {
	output, err := c.verifyUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToIntegrityResponse(output))
}
