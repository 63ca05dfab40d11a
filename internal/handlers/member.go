package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/synergy-dev/synergy/db"
	"github.com/synergy-dev/synergy/internal/services"
	"github.com/synergy-dev/synergy/internal/utils"
)

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AddMember invites a registered user to the project by email. Inviting an
// existing member succeeds without effect.
func AddMember(ctx *gin.Context) {
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

	var body AddMemberRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request"})
		return
	}

	if err := services.NewMembershipService(db.DB).InviteByEmail(projectID, userID, body.Email); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member added successfully"})
}
