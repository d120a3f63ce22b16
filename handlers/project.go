package handlers

import (
	"net/http"

	"vmake/models"
	ai "vmake/services/intelligence"
	"vmake/services/sheets"
	"vmake/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProjectHandler composes the AI gateway and the sheet-backed store. Both are
// injected so tests can substitute fakes.
type ProjectHandler struct {
	AI   ai.Service
	Repo sheets.Repo
}

func NewProjectHandler(aiSvc ai.Service, repo sheets.Repo) *ProjectHandler {
	return &ProjectHandler{AI: aiSvc, Repo: repo}
}

// StoreProjectRequest is a full submission plus the AI results to persist.
type StoreProjectRequest struct {
	models.ProjectSubmission
	PartsList *models.PartsList       `json:"partsList"`
	Analysis  *models.ProjectAnalysis `json:"analysis"`
}

// ProcessProjectHandler generates a parts list and feasibility analysis for
// the submitted project.
func (h *ProjectHandler) ProcessProjectHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var sub models.ProjectSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to process project", err.Error())
		return
	}
	logger.Info("Processing project request received", zap.String("projectName", sub.ProjectName))

	if h.AI == nil {
		utils.JSONError(c, http.StatusInternalServerError, "Gemini API key not configured", "")
		return
	}

	ctx := c.Request.Context()

	partsList, err := h.AI.GeneratePartsList(ctx, sub.Description)
	if err != nil {
		logger.Error("Error generating parts list", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to generate parts list", err.Error())
		return
	}
	logger.Info("Parts list generated successfully")

	analysis, err := h.AI.AnalyzeProject(ctx, sub)
	if err != nil {
		logger.Error("Error analyzing project", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to analyze project", err.Error())
		return
	}
	logger.Info("Project analysis completed")

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"partsList": partsList,
		"analysis":  analysis,
	})
}

// StoreProjectHandler appends the submission and its results to the sheet and
// returns the generated submission identifier.
func (h *ProjectHandler) StoreProjectHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req StoreProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to store project", err.Error())
		return
	}
	logger.Info("Storing project data", zap.String("projectName", req.ProjectName))

	results := &models.ProjectResults{
		SubmissionID: uuid.New().String(),
		PartsList:    req.PartsList,
		Analysis:     req.Analysis,
	}

	result, err := h.Repo.Append(c.Request.Context(), req.ProjectSubmission, results)
	if err != nil {
		logger.Error("Error storing project", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to store project", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
