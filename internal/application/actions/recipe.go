package actions

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/posadmin/backoffice/internal/application/schema"
	"github.com/posadmin/backoffice/internal/infrastructure/session"
	"github.com/posadmin/backoffice/internal/infrastructure/upstream"
)

// Recipes wraps the standard recipe operations. Update reconciles the
// variant list against a fresh copy of the remote recipe: submitted
// variants without an id are created, and remote variants missing from the
// submission are reported as removed. The merge is optimistic; the remote
// API owns consistency between the read and the write.
type Recipes struct {
	*Resource[schema.RecipePayload, Recipe]
	client *upstream.Client
	logger *zap.Logger
}

// NewRecipes builds the recipe operations.
func NewRecipes(client *upstream.Client, logger *zap.Logger) *Recipes {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recipes{
		Resource: NewResource[schema.RecipePayload, Recipe](client, logger, "/recipes", "Recipe", "/recipes"),
		client:   client,
		logger:   logger,
	}
}

// recipeUpdateBody is the reconciled update payload: the form fields plus
// the ids of variants the user removed since the form was opened.
type recipeUpdateBody struct {
	schema.RecipePayload
	RemovedVariants []string `json:"removedVariants,omitempty"`
}

// Update fetches the current remote recipe, diffs its variants against the
// submitted list and puts the reconciled payload.
func (r *Recipes) Update(ctx context.Context, sc session.Context, id string, payload schema.RecipePayload) Outcome[Recipe] {
	if err := schema.Validate(payload); err != nil {
		return FailureFrom[Recipe](err)
	}
	if !sc.Authenticated() {
		return Failure[Recipe](MsgSomethingWrong, errMissingTenant)
	}

	current, err := r.Get(ctx, sc, id)
	if err != nil {
		r.logger.Warn("Recipe lookup failed", zap.String("id", id), zap.Error(err))
		return FailureFrom[Recipe](err)
	}

	submitted := make(map[string]bool, len(payload.Variants))
	for _, v := range payload.Variants {
		if v.ID != "" {
			submitted[v.ID] = true
		}
	}
	var removed []string
	for _, v := range current.Variants {
		if !submitted[v.ID] {
			removed = append(removed, v.ID)
		}
	}

	body := recipeUpdateBody{RecipePayload: payload, RemovedVariants: removed}
	updated, err := upstream.Put[Recipe](ctx, r.client, sc.AuthToken, fmt.Sprintf("/recipes/%s", id), body)
	if err != nil {
		r.logger.Warn("Recipe update failed", zap.String("id", id), zap.Error(err))
		return FailureFrom[Recipe](err)
	}

	return Success(updated, "Recipe updated successfully").WithNavigation("/recipes")
}
