package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/tastebase/tastebase/internal/cache"
	"github.com/tastebase/tastebase/internal/media"
	"github.com/tastebase/tastebase/internal/metrics"
	"github.com/tastebase/tastebase/internal/model"
	"github.com/tastebase/tastebase/internal/repository"
)

// RecipeService handles recipe business logic, including the ownership
// policy applied to every mutating path.
type RecipeService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	media   *media.Uploader
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(repo *repository.Repository, cacheClient *cache.Cache, uploader *media.Uploader, recorder metrics.Recorder, logger *slog.Logger) *RecipeService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RecipeService{
		repo:    repo,
		cache:   cacheClient,
		media:   uploader,
		metrics: recorder,
		logger:  logger,
	}
}

// ImageUpload carries an optional image file attached to a recipe mutation.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// CreateRecipeInput defines input for creating a recipe.
type CreateRecipeInput struct {
	OwnerID       string
	Title         string
	Ingredients   []string
	Description   string
	Instructions  string
	IsAIGenerated bool
	Image         *ImageUpload
}

// CreateRecipe creates a new recipe owned by the caller.
func (s *RecipeService) CreateRecipe(ctx context.Context, input CreateRecipeInput) (*model.Recipe, error) {
	if err := validateRecipeFields(input.Title, input.Ingredients, input.Instructions); err != nil {
		return nil, err
	}

	id := ulid.Make().String()

	imageURL := ""
	if input.Image != nil {
		url, err := s.uploadRecipeImage(ctx, id, input.Image)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	now := time.Now().UTC()
	recipe := &model.Recipe{
		ID:            id,
		CreatedBy:     input.OwnerID,
		Title:         input.Title,
		Ingredients:   input.Ingredients,
		Description:   input.Description,
		Instructions:  input.Instructions,
		ImageURL:      imageURL,
		IsAIGenerated: input.IsAIGenerated,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateRecipe(ctx, recipe); err != nil {
		return nil, err
	}

	s.metrics.IncRecipeCreated()
	return recipe, nil
}

// GetRecipeDetail returns a recipe with its comments expanded.
// Serves from cache when possible; cache failures fall through to the store.
func (s *RecipeService) GetRecipeDetail(ctx context.Context, id string) (*model.RecipeDetail, error) {
	if negative, err := s.cache.IsNegativelyCached(ctx, id); err == nil && negative {
		s.metrics.IncRecipeCacheHit()
		return nil, ErrRecipeNotFound
	}

	if detail, err := s.cache.GetRecipeDetail(ctx, id); err == nil {
		s.metrics.IncRecipeCacheHit()
		return detail, nil
	}
	s.metrics.IncRecipeCacheMiss()

	detail, err := s.repo.GetRecipeDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			if cacheErr := s.cache.SetNegativeCache(ctx, id); cacheErr != nil {
				s.logger.Warn("failed to set negative cache", "recipe_id", id, "error", cacheErr)
			}
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if cacheErr := s.cache.SetRecipeDetail(ctx, detail); cacheErr != nil {
		s.logger.Warn("failed to cache recipe", "recipe_id", id, "error", cacheErr)
	}

	return detail, nil
}

// ListRecipes returns all recipes, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]*model.Recipe, error) {
	return s.repo.ListRecipes(ctx)
}

// ListMyRecipes returns the caller's recipes, newest first.
func (s *RecipeService) ListMyRecipes(ctx context.Context, callerID string) ([]*model.Recipe, error) {
	return s.repo.ListRecipesByOwner(ctx, callerID)
}

// UpdateRecipeInput defines input for updating a recipe.
type UpdateRecipeInput struct {
	ID            string
	Title         string
	Ingredients   []string
	Description   string
	Instructions  string
	IsAIGenerated bool
	Image         *ImageUpload
}

// UpdateRecipe updates a recipe after verifying the caller owns it.
// The owner field is always fetched fresh from the store, never trusted
// from client input.
func (s *RecipeService) UpdateRecipe(ctx context.Context, callerID string, input UpdateRecipeInput) (*model.Recipe, error) {
	if err := validateRecipeFields(input.Title, input.Ingredients, input.Instructions); err != nil {
		return nil, err
	}

	recipe, err := s.fetchOwned(ctx, callerID, input.ID)
	if err != nil {
		return nil, err
	}

	oldImageURL := recipe.ImageURL
	imageURL := recipe.ImageURL
	if input.Image != nil {
		url, err := s.uploadRecipeImage(ctx, recipe.ID, input.Image)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	recipe.Title = input.Title
	recipe.Ingredients = input.Ingredients
	recipe.Description = input.Description
	recipe.Instructions = input.Instructions
	recipe.ImageURL = imageURL
	recipe.IsAIGenerated = input.IsAIGenerated
	recipe.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateRecipe(ctx, recipe); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	s.invalidate(ctx, recipe.ID)
	if oldImageURL != "" && oldImageURL != imageURL {
		s.removeImage(ctx, oldImageURL)
	}
	s.metrics.IncRecipeUpdated()
	return recipe, nil
}

// DeleteRecipe deletes a recipe after verifying the caller owns it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, callerID, id string) error {
	recipe, err := s.fetchOwned(ctx, callerID, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteRecipe(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	s.invalidate(ctx, id)
	if recipe.ImageURL != "" {
		s.removeImage(ctx, recipe.ImageURL)
	}
	s.metrics.IncRecipeDeleted()
	return nil
}

// SaveRecipe bookmarks a recipe for the caller. Idempotent.
func (s *RecipeService) SaveRecipe(ctx context.Context, callerID, recipeID string) error {
	if _, err := s.repo.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	saved := &model.SavedRecipe{
		ID:        uuid.NewString(),
		UserID:    callerID,
		RecipeID:  recipeID,
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.SaveRecipe(ctx, saved)
}

// ListSavedRecipes returns the caller's saved recipes, newest save first.
func (s *RecipeService) ListSavedRecipes(ctx context.Context, callerID string) ([]*model.SavedRecipe, error) {
	return s.repo.ListSavedRecipes(ctx, callerID)
}

// CreateComment appends a comment to a recipe.
func (s *RecipeService) CreateComment(ctx context.Context, callerID, recipeID, content string) (*model.Comment, error) {
	if err := requireFields(
		[]string{"recipe_id", "content"},
		[]string{recipeID, content},
	); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		ID:        uuid.NewString(),
		UserID:    callerID,
		RecipeID:  recipeID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	// The cached detail embeds comments, so it is stale now.
	s.invalidate(ctx, recipeID)
	return comment, nil
}

// ReportRecipe files a report against a recipe.
func (s *RecipeService) ReportRecipe(ctx context.Context, callerID, recipeID, reason string) error {
	if err := requireFields(
		[]string{"recipe_id", "reason"},
		[]string{recipeID, reason},
	); err != nil {
		return err
	}

	if _, err := s.repo.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	report := &model.Report{
		ID:         uuid.NewString(),
		UserID:     callerID,
		RecipeID:   recipeID,
		Reason:     reason,
		ReportedAt: time.Now().UTC(),
	}
	return s.repo.CreateReport(ctx, report)
}

// fetchOwned loads a recipe and applies the ownership policy.
// Existence is checked before ownership so a missing id is NotFound,
// not Forbidden.
func (s *RecipeService) fetchOwned(ctx context.Context, callerID, id string) (*model.Recipe, error) {
	recipe, err := s.repo.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecipeNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if err := CheckOwnership(recipe, callerID); err != nil {
		s.metrics.IncOwnershipDenied()
		s.logger.Warn("ownership check failed",
			"recipe_id", recipe.ID,
			"owner_id", recipe.CreatedBy,
			"caller_id", callerID,
		)
		return nil, err
	}

	return recipe, nil
}

// CheckOwnership is the ownership policy: the caller may mutate a recipe
// only if it is the recorded owner.
func CheckOwnership(recipe *model.Recipe, callerID string) error {
	if !recipe.IsOwnedBy(callerID) {
		return ErrNotOwner
	}
	return nil
}

// validateRecipeFields checks the required recipe fields.
// Description and image are optional.
func validateRecipeFields(title string, ingredients []string, instructions string) error {
	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if len(ingredients) == 0 {
		missing = append(missing, "ingredients")
	}
	if instructions == "" {
		missing = append(missing, "instructions")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// uploadRecipeImage stores a recipe image and returns its public URL.
func (s *RecipeService) uploadRecipeImage(ctx context.Context, recipeID string, img *ImageUpload) (string, error) {
	ext := path.Ext(img.Filename)
	objectName := "recipes/" + recipeID + ext

	url, err := s.media.Upload(ctx, objectName, img.Reader, img.Size, img.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload recipe image: %w", err)
	}
	return url, nil
}

// removeImage deletes a replaced or orphaned image object.
// Failures are logged, never surfaced: the store is authoritative and a
// stranded object is recoverable by hand.
func (s *RecipeService) removeImage(ctx context.Context, url string) {
	name, ok := s.media.ObjectName(url)
	if !ok {
		return
	}
	if err := s.media.Remove(ctx, name); err != nil {
		s.logger.Warn("failed to remove replaced image", "object", name, "error", err)
	}
}

// invalidate drops the cached detail for a recipe.
// Cache failures are logged, never surfaced: the store is authoritative.
func (s *RecipeService) invalidate(ctx context.Context, id string) {
	if err := s.cache.InvalidateRecipe(ctx, id); err != nil {
		s.logger.Warn("failed to invalidate recipe cache", "recipe_id", id, "error", err)
	}
}
