package routes

import (
	"github.com/legalmind/backend/internal/db"
	"github.com/legalmind/backend/internal/server/middleware"
	"github.com/legalmind/backend/pkg/apperr"
)

// CanViewGraph enforces the visibility rule on a single graph: visible iff
// public, or requested by its creator, or by an admin. Anonymous
// requesters get 401 on private graphs, everyone else 403.
func CanViewGraph(user *middleware.AppUser, g db.KnowledgeGraph) error {
	if g.IsPublic {
		return nil
	}
	if user == nil {
		return apperr.Unauthorized("Not authorized to access this route")
	}
	if middleware.IsCreator(user, g.CreatorID) || middleware.IsAdmin(user) {
		return nil
	}
	return apperr.Forbidden("Not authorized to access this graph")
}

// CanModifyGraph gates update and delete: creator or admin only. A public
// graph is readable by anyone but still only writable by its owner.
func CanModifyGraph(user *middleware.AppUser, g db.KnowledgeGraph) error {
	if user == nil {
		return apperr.Unauthorized("Not authorized to access this route")
	}
	if middleware.IsCreator(user, g.CreatorID) || middleware.IsAdmin(user) {
		return nil
	}
	return apperr.Forbidden("Not authorized to modify this graph")
}

// CanAccessCase gates every case operation: cases are never public, so
// only the creator or an admin may touch them.
func CanAccessCase(user *middleware.AppUser, c db.Case) error {
	if user == nil {
		return apperr.Unauthorized("Not authorized to access this route")
	}
	if middleware.IsCreator(user, c.CreatorID) || middleware.IsAdmin(user) {
		return nil
	}
	return apperr.Forbidden("Not authorized to access this case")
}
