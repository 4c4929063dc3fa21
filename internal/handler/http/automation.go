package http

import (
	"log/slog"
	"net/http"

	"github.com/medirep/sfa-backend-go/internal/handler/http/response"
	"github.com/medirep/sfa-backend-go/internal/service/automation"
)

// AutomationHandler exposes manual triggers for the nightly jobs so an
// admin can rerun a sweep that failed.
type AutomationHandler interface {
	TriggerSweep(w http.ResponseWriter, r *http.Request)
	TriggerLeaveYearReset(w http.ResponseWriter, r *http.Request)
}

type AutomationHandlerImpl struct {
	automationService automation.AutomationService
}

// TriggerSweep implements AutomationHandler.
func (h *AutomationHandlerImpl) TriggerSweep(w http.ResponseWriter, r *http.Request) {
	result, err := h.automationService.SweepYesterday(r.Context())
	if err != nil {
		slog.Error("Manual sweep error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sweep completed", result)
}

// TriggerLeaveYearReset implements AutomationHandler.
func (h *AutomationHandlerImpl) TriggerLeaveYearReset(w http.ResponseWriter, r *http.Request) {
	if err := h.automationService.ResetLeaveYear(r.Context()); err != nil {
		slog.Error("Manual leave year reset error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave year reset", nil)
}

func NewAutomationHandler(automationService automation.AutomationService) AutomationHandler {
	return &AutomationHandlerImpl{
		automationService: automationService,
	}
}
