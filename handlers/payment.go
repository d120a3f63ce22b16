package handlers

import (
	"net/http"

	"vmake/models"
	"vmake/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// minTransactionIDLength is the simulated verification rule: anything longer
// than 5 characters passes.
const minTransactionIDLength = 6

// VerifyPaymentRequest carries the user-entered UPI transaction identifier.
type VerifyPaymentRequest struct {
	TransactionID string `json:"transactionId"`
}

// VerifyPaymentHandler performs the simulated payment check. There is no
// gateway behind it; only the transaction id length is inspected.
func (h *ProjectHandler) VerifyPaymentHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid transaction ID", err.Error())
		return
	}
	logger.Info("Payment verification requested", zap.String("transactionId", req.TransactionID))

	if len(req.TransactionID) < minTransactionIDLength {
		logger.Warn("Invalid transaction ID provided", zap.String("transactionId", req.TransactionID))
		utils.JSONError(c, http.StatusBadRequest, "Invalid transaction ID", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment verified successfully",
	})
}

// UpdateProjectStatusHandler writes the service choice, transaction id, and
// status back onto the stored row.
func (h *ProjectHandler) UpdateProjectStatusHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var upd models.StatusUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update project status", err.Error())
		return
	}
	logger.Info("Updating project status",
		zap.String("projectName", upd.ProjectName),
		zap.String("newStatus", upd.Status),
	)

	if err := h.Repo.UpdateStatus(c.Request.Context(), upd); err != nil {
		logger.Error("Error updating project status", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update project status", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project status updated successfully",
	})
}
