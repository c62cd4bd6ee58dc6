package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vigilnet/internal/repository"
)

type CodewordHandler interface {
	GetCodewords(c *gin.Context)
}

type codewordHandler struct {
	codewordRepo repository.CodewordRepository
	logger       *zap.Logger
}

func NewCodewordHandler(codewordRepo repository.CodewordRepository, logger *zap.Logger) CodewordHandler {
	return &codewordHandler{codewordRepo: codewordRepo, logger: logger}
}

// GetCodewords handles GET /api/codewords
func (h *codewordHandler) GetCodewords(c *gin.Context) {
	codewords, err := h.codewordRepo.GetActiveCodewords()
	if err != nil {
		h.logger.Error("Failed to get codewords", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve codewords"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": codewords})
}
