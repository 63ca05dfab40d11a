package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/synergy-dev/synergy/db"
	"github.com/synergy-dev/synergy/internal/services"
	"github.com/synergy-dev/synergy/internal/types"
	"github.com/synergy-dev/synergy/internal/utils"
)

type CreateCommentRequest struct {
	Message string `json:"message" binding:"required"`
}

func CreateComment(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateCommentRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request"})
		return
	}

	comment, err := services.NewCommentService(db.DB).Append(projectID, currentUser.ID, body.Message)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := types.NewCommentResponse(comment)
	response.AuthorName = currentUser.Name

	ctx.JSON(http.StatusCreated, response)
}

func ListProjectComments(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	comments, err := services.NewCommentService(db.DB).ListForProject(projectID, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.CommentResponse, 0, len(comments))

	for i := range comments {
		response = append(response, types.NewCommentResponse(&comments[i]))
	}

	ctx.JSON(http.StatusOK, response)
}
