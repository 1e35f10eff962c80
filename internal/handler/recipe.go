package handler

import (
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tastebase/tastebase/internal/auth"
	"github.com/tastebase/tastebase/internal/handler/dto"
	"github.com/tastebase/tastebase/internal/service"
)

// RecipeHandler handles recipe CRUD, bookmarks and comments.
type RecipeHandler struct {
	recipes       *service.RecipeService
	logger        *slog.Logger
	maxUploadSize int64
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(recipes *service.RecipeService, logger *slog.Logger, maxUploadSize int64) *RecipeHandler {
	return &RecipeHandler{
		recipes:       recipes,
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

// Create handles POST /api/create_recipe.
// Accepts multipart form data with an optional image file.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, img, err := h.parseRecipeForm(w, r)
	if err != nil {
		writeMultipartError(w, err)
		return
	}
	if img != nil {
		defer img.file.Close()
	}

	recipe, err := h.recipes.CreateRecipe(r.Context(), service.CreateRecipeInput{
		OwnerID:       auth.UserIDFromContext(r.Context()),
		Title:         form.title,
		Ingredients:   form.ingredients,
		Description:   form.description,
		Instructions:  form.instructions,
		IsAIGenerated: form.isAIGenerated,
		Image:         img.upload(),
	})
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.FromRecipe(recipe))
}

// Get handles GET /api/get_recipe/{id}.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.recipes.GetRecipeDetail(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FromRecipeDetail(detail))
}

// GetAll handles GET /api/get_all_recipe.
func (h *RecipeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipes.ListRecipes(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FromRecipes(recipes))
}

// GetMine handles GET /api/get_my_recipe.
func (h *RecipeHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	callerID := auth.UserIDFromContext(r.Context())

	recipes, err := h.recipes.ListMyRecipes(r.Context(), callerID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FromRecipes(recipes))
}

// Save handles POST /api/save_recipe. Saving twice is a no-op.
func (h *RecipeHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", codeBadRequest)
		return
	}
	if req.RecipeID == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: recipe_id", codeBadRequest)
		return
	}

	callerID := auth.UserIDFromContext(r.Context())
	if err := h.recipes.SaveRecipe(r.Context(), callerID, req.RecipeID); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.MessageResponse{Message: "Recipe saved"})
}

// GetSaved handles GET /api/get_save_recipe.
func (h *RecipeHandler) GetSaved(w http.ResponseWriter, r *http.Request) {
	callerID := auth.UserIDFromContext(r.Context())

	saved, err := h.recipes.ListSavedRecipes(r.Context(), callerID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FromSavedRecipes(saved))
}

// Update handles PUT /api/update_recipe.
// Multipart like Create, with a recipe_id field. Owner only.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	form, img, err := h.parseRecipeForm(w, r)
	if err != nil {
		writeMultipartError(w, err)
		return
	}
	if img != nil {
		defer img.file.Close()
	}

	if form.recipeID == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: recipe_id", codeBadRequest)
		return
	}

	callerID := auth.UserIDFromContext(r.Context())
	recipe, err := h.recipes.UpdateRecipe(r.Context(), callerID, service.UpdateRecipeInput{
		ID:            form.recipeID,
		Title:         form.title,
		Ingredients:   form.ingredients,
		Description:   form.description,
		Instructions:  form.instructions,
		IsAIGenerated: form.isAIGenerated,
		Image:         img.upload(),
	})
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FromRecipe(recipe))
}

// Delete handles POST /api/delete_recipe. Owner only.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", codeBadRequest)
		return
	}
	if req.RecipeID == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: recipe_id", codeBadRequest)
		return
	}

	callerID := auth.UserIDFromContext(r.Context())
	if err := h.recipes.DeleteRecipe(r.Context(), callerID, req.RecipeID); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Recipe deleted"})
}

// CreateComment handles POST /api/create_comment.
func (h *RecipeHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", codeBadRequest)
		return
	}

	callerID := auth.UserIDFromContext(r.Context())
	comment, err := h.recipes.CreateComment(r.Context(), callerID, req.RecipeID, req.Content)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.FromComment(comment))
}

// Report handles POST /api/report_recipe.
func (h *RecipeHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req dto.ReportRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", codeBadRequest)
		return
	}

	callerID := auth.UserIDFromContext(r.Context())
	if err := h.recipes.ReportRecipe(r.Context(), callerID, req.RecipeID, req.Reason); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.MessageResponse{Message: "Recipe reported"})
}

// recipeForm holds the parsed multipart fields of a recipe mutation.
type recipeForm struct {
	recipeID      string
	title         string
	description   string
	instructions  string
	ingredients   []string
	isAIGenerated bool
}

// formImage pairs the multipart file with its metadata so the handler
// can close it after the service has consumed it.
type formImage struct {
	file   multipart.File
	header *multipart.FileHeader
}

func (f *formImage) upload() *service.ImageUpload {
	if f == nil {
		return nil
	}
	return service.NewImageUpload(
		f.header.Filename,
		f.header.Header.Get("Content-Type"),
		f.header.Size,
		f.file,
	)
}

// parseRecipeForm parses the multipart body shared by Create and Update.
// The body is capped at the configured upload limit before any of it is
// read. The image file is optional; a missing file is not an error.
func (h *RecipeHandler) parseRecipeForm(w http.ResponseWriter, r *http.Request) (*recipeForm, *formImage, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		return nil, nil, err
	}

	form := &recipeForm{
		recipeID:      r.FormValue("recipe_id"),
		title:         strings.TrimSpace(r.FormValue("title")),
		description:   strings.TrimSpace(r.FormValue("description")),
		instructions:  strings.TrimSpace(r.FormValue("instructions")),
		ingredients:   parseIngredients(r.FormValue("ingredients")),
		isAIGenerated: false,
	}
	if v := r.FormValue("is_ai_generated"); v != "" {
		form.isAIGenerated, _ = strconv.ParseBool(v)
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return form, nil, nil
		}
		return nil, nil, err
	}

	return form, &formImage{file: file, header: header}, nil
}

// parseIngredients accepts either a JSON array or a comma-separated list.
func parseIngredients(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			return trimNonEmpty(items)
		}
	}

	return trimNonEmpty(strings.Split(raw, ","))
}

func trimNonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
