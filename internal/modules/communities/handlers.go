package communities

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sporthub-id/sporthub-backend/internal/identity"
)

// =============================================================================
// CommunityHandler
// =============================================================================

type CommunityHandler struct {
	communityService *CommunityService
}

func NewCommunityHandler(communityService *CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

func (h *CommunityHandler) ListCommunities(c *fiber.Ctx) error {
	communities, err := h.communityService.List()
	if err != nil {
		slog.Error("list communities failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch communities"})
	}
	return c.JSON(fiber.Map{"communities": communities})
}

func (h *CommunityHandler) GetCommunity(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid community ID"})
	}

	community, err := h.communityService.Get(id)
	if err != nil {
		if errors.Is(err, ErrCommunityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch community"})
	}
	return c.JSON(fiber.Map{"community": community})
}

func (h *CommunityHandler) CreateCommunity(c *fiber.Ctx) error {
	var req CreateCommunityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	community, err := h.communityService.Create(&req)
	if err != nil {
		if errors.Is(err, ErrCommunityName) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("create community failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to create community"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"community": community})
}

func (h *CommunityHandler) UpdateCommunity(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid community ID"})
	}

	var req UpdateCommunityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	community, err := h.communityService.Update(id, &req)
	if err != nil {
		if errors.Is(err, ErrCommunityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrCommunityName) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("update community failed", "error", err, "community_id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to update community"})
	}
	return c.JSON(fiber.Map{"community": community})
}

func (h *CommunityHandler) DeleteCommunity(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid community ID"})
	}

	if err := h.communityService.Delete(id); err != nil {
		slog.Error("delete community failed", "error", err, "community_id", id)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to delete community"})
	}
	return c.JSON(fiber.Map{"message": "Community deleted successfully"})
}

// =============================================================================
// MembershipHandler
// =============================================================================

type MembershipHandler struct {
	membershipService *MembershipService
}

func NewMembershipHandler(membershipService *MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

func (h *MembershipHandler) Join(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	communityID, err := uuid.Parse(c.Params("communityId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid community ID"})
	}

	membership, err := h.membershipService.Join(communityID, userID)
	if err != nil {
		if errors.Is(err, ErrAlreadyMember) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("join community failed", "error", err, "community_id", communityID, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to join community"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"membership": membership,
		"message":    "Joined community successfully",
	})
}

func (h *MembershipHandler) Leave(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	membershipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid membership ID"})
	}

	if err := h.membershipService.Leave(membershipID, userID); err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrNotMembershipOwner) {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("leave community failed", "error", err, "membership_id", membershipID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to leave community"})
	}
	return c.JSON(fiber.Map{"message": "Left community successfully"})
}

func (h *MembershipHandler) Check(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	communityID, err := uuid.Parse(c.Params("communityId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid community ID"})
	}

	isMember, err := h.membershipService.IsMember(communityID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to check membership"})
	}
	return c.JSON(fiber.Map{"isMember": isMember})
}

func (h *MembershipHandler) Count(c *fiber.Ctx) error {
	communityID, err := uuid.Parse(c.Params("communityId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid community ID"})
	}

	count, err := h.membershipService.CountByCommunity(communityID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to count members"})
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *MembershipHandler) MyCommunities(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	memberships, err := h.membershipService.FindByUser(userID)
	if err != nil {
		slog.Error("list my communities failed", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch memberships"})
	}
	return c.JSON(fiber.Map{"memberships": memberships})
}

func (h *MembershipHandler) ListAll(c *fiber.Ctx) error {
	memberships, err := h.membershipService.FindAll()
	if err != nil {
		slog.Error("list memberships failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch memberships"})
	}
	return c.JSON(fiber.Map{"memberships": memberships})
}

func (h *MembershipHandler) ListByCommunity(c *fiber.Ctx) error {
	communityID, err := uuid.Parse(c.Params("communityId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid community ID"})
	}

	memberships, err := h.membershipService.FindByCommunity(communityID)
	if err != nil {
		slog.Error("list community members failed", "error", err, "community_id", communityID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to fetch memberships"})
	}
	return c.JSON(fiber.Map{"memberships": memberships})
}

func (h *MembershipHandler) UpdateRole(c *fiber.Ctx) error {
	membershipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid membership ID"})
	}

	var req UpdateMembershipRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	membership, err := h.membershipService.UpdateRole(membershipID, req.Role)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		if errors.Is(err, ErrInvalidMemberRole) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("update membership role failed", "error", err, "membership_id", membershipID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to update membership"})
	}
	return c.JSON(fiber.Map{"membership": membership})
}

func (h *MembershipHandler) Delete(c *fiber.Ctx) error {
	membershipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: true, Message: "Invalid membership ID"})
	}

	if err := h.membershipService.Delete(membershipID); err != nil {
		slog.Error("delete membership failed", "error", err, "membership_id", membershipID)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: true, Message: "Failed to delete membership"})
	}
	return c.JSON(fiber.Map{"message": "Membership deleted successfully"})
}
