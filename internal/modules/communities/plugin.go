package communities

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sporthub-id/sporthub-backend/internal/config"
	"github.com/sporthub-id/sporthub-backend/internal/middleware"
	"gorm.io/gorm"
)

type CommunitiesModule struct {
	db  *gorm.DB
	cfg *config.Config
}

func New(db *gorm.DB, cfg *config.Config) *CommunitiesModule {
	return &CommunitiesModule{db: db, cfg: cfg}
}

func (m *CommunitiesModule) ID() string { return "communities" }

func (m *CommunitiesModule) Models() []interface{} {
	return []interface{}{
		&Community{},
		&Membership{},
	}
}

func (m *CommunitiesModule) RegisterRoutes(router fiber.Router) {
	communityService := NewCommunityService(m.db)
	membershipService := NewMembershipService(m.db)

	communityHandler := NewCommunityHandler(communityService)
	membershipHandler := NewMembershipHandler(membershipService)

	protected := middleware.JWTProtected(m.cfg)
	admin := middleware.AdminRequired(m.db, m.cfg)

	// Communities: public reads, admin writes
	router.Get("/communities", communityHandler.ListCommunities)
	router.Get("/communities/:id", communityHandler.GetCommunity)
	router.Post("/communities", protected, admin, communityHandler.CreateCommunity)
	router.Put("/communities/:id", protected, admin, communityHandler.UpdateCommunity)
	router.Delete("/communities/:id", protected, admin, communityHandler.DeleteCommunity)

	// Memberships
	memberships := router.Group("/community-memberships")
	memberships.Get("/my-communities", protected, membershipHandler.MyCommunities)
	memberships.Post("/:communityId/join", protected, membershipHandler.Join)
	memberships.Get("/:communityId/check", protected, membershipHandler.Check)
	memberships.Get("/:communityId/count", membershipHandler.Count)
	memberships.Post("/:id/leave", protected, membershipHandler.Leave)

	// Membership admin
	memberships.Get("/", protected, admin, membershipHandler.ListAll)
	memberships.Get("/community/:communityId", protected, admin, membershipHandler.ListByCommunity)
	memberships.Patch("/:id/role", protected, admin, membershipHandler.UpdateRole)
	memberships.Delete("/:id", protected, admin, membershipHandler.Delete)
}
