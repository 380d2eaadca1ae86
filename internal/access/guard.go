// Package access decides who may see or change a row. Every check takes the
// requester explicitly; an anonymous caller is ANONYMOUS.
package access

import (
	"strconv"

	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/exceptions"
)

// ANONYMOUS never owns anything.
const ANONYMOUS int64 = 0

func Visible(recipe data.RecipeDTO, requester int64) bool {
	return recipe.Shared || Owns(recipe.Owner, requester)
}

func Owns(owner int64, requester int64) bool {
	return requester != ANONYMOUS && owner == requester
}

// CheckVisible returns a NotFoundError for a recipe the requester cannot see.
func CheckVisible(recipe data.RecipeDTO, requester int64) error {
	if !Visible(recipe, requester) {
		return exceptions.NotFound("recipe", strconv.FormatInt(recipe.Id, 10))
	}
	return nil
}

// CheckOwner returns a NotFoundError naming resource when requester is not owner.
func CheckOwner(resource string, id int64, owner int64, requester int64) error {
	if !Owns(owner, requester) {
		return exceptions.NotFound(resource, strconv.FormatInt(id, 10))
	}
	return nil
}
