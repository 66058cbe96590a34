package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
	"nutriplan/internal/shopping"

	"go.uber.org/zap"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"sys":    metrics.GetSysHealth(s.dataPath),
	})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	prof, err := s.profiles.Get(r.Context(), userID(r.Context()))
	if err != nil {
		s.log.Error("failed to load profile", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if prof == nil {
		respondError(w, http.StatusNotFound, "profile not found")
		return
	}
	respondJSON(w, http.StatusOK, prof)
}

func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	var prof profile.Profile
	if err := json.NewDecoder(r.Body).Decode(&prof); err != nil {
		respondError(w, http.StatusBadRequest, "invalid profile payload")
		return
	}
	// The token decides whose profile this is, not the payload.
	prof.UserID = userID(r.Context())

	if prof.NutritionTargets.TargetCalories < 0 {
		respondError(w, http.StatusBadRequest, "target calories must not be negative")
		return
	}

	if err := s.profiles.Upsert(r.Context(), prof); err != nil {
		s.log.Error("failed to save profile", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}
	respondJSON(w, http.StatusOK, prof)
}

// generateResponse reports the save outcome separately from generation: a
// failed save still returns the computed plan.
type generateResponse struct {
	Plan      *planner.WeekPlan `json:"plan"`
	PlanID    int64             `json:"plan_id,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	Saved     bool              `json:"saved"`
	SaveError string            `json:"save_error,omitempty"`
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := userID(ctx)

	prof, err := s.profiles.Get(ctx, uid)
	if err != nil {
		s.log.Error("failed to load profile", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if prof == nil {
		respondError(w, http.StatusBadRequest, "profile not set; create one before generating")
		return
	}

	corpus := s.workingCorpus(ctx)

	start := time.Now()
	plan, err := planner.GenerateWeeklyMealPlan(*prof, corpus, start)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.metrics != nil {
		poolSize := len(corpus.Breakfast) + len(corpus.Lunch) + len(corpus.Snack) + len(corpus.Dinner)
		if err := s.metrics.Record(ctx, metrics.GenerationMetric{
			UserID:        uid,
			DurationMS:    time.Since(start).Milliseconds(),
			PoolSize:      poolSize,
			FilledSlots:   filledSlots(plan),
			TotalCalories: totalCalories(plan),
		}); err != nil {
			s.log.Warn("failed to record generation metric", zap.Error(err))
		}
	}

	resp := generateResponse{Plan: plan, CreatedAt: start.UTC()}
	if id, err := s.plans.Save(ctx, uid, plan); err != nil {
		s.log.Error("failed to persist generated plan", zap.Error(err))
		resp.SaveError = "plan generated but could not be saved"
	} else {
		resp.Saved = true
		resp.PlanID = id
	}

	if s.cache != nil {
		if err := s.cache.Save(uid, plan); err != nil {
			s.log.Warn("failed to cache generated plan", zap.Error(err))
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

func filledSlots(plan *planner.WeekPlan) int {
	n := 0
	for i := range plan.Days {
		for _, slot := range planner.MealSlots {
			if plan.Days[i].Slot(slot) != nil {
				n++
			}
		}
	}
	return n
}

func totalCalories(plan *planner.WeekPlan) int {
	n := 0
	for i := range plan.Days {
		n += plan.Days[i].TotalCalories
	}
	return n
}

// latestPlan loads the user's newest plan, falling back to the file cache
// when the database fails. The returned id is zero for cached plans.
func (s *Server) latestPlan(r *http.Request) (*planner.WeekPlan, int64, string) {
	uid := userID(r.Context())

	stored, err := s.plans.Latest(r.Context(), uid)
	if err == nil && stored != nil {
		return &stored.Plan, stored.ID, "database"
	}
	if err != nil {
		s.log.Warn("failed to load latest plan, trying cache", zap.Error(err))
	}

	if s.cache != nil {
		if plan, cacheErr := s.cache.Load(uid); cacheErr == nil {
			return plan, 0, "cache"
		}
	}
	return nil, 0, ""
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	plan, id, source := s.latestPlan(r)
	if plan == nil {
		respondError(w, http.StatusNotFound, "no plan generated yet")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"plan":    plan,
		"plan_id": id,
		"source":  source,
	})
}

type swapRequest struct {
	DayIndex int    `json:"day_index"`
	Slot     string `json:"slot"`
	RecipeID string `json:"recipe_id"`
	Servings int    `json:"servings,omitempty"`
}

func (s *Server) handleSwapMeal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := userID(ctx)

	var req swapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid swap payload")
		return
	}

	slot := planner.MealSlot(req.Slot)
	if _, ok := map[planner.MealSlot]bool{
		planner.SlotBreakfast: true, planner.SlotLunch: true,
		planner.SlotSnack: true, planner.SlotDinner: true,
	}[slot]; !ok {
		respondError(w, http.StatusBadRequest, "unknown meal slot")
		return
	}

	stored, err := s.plans.Latest(ctx, uid)
	if err != nil || stored == nil {
		respondError(w, http.StatusNotFound, "no saved plan to swap in")
		return
	}
	if req.DayIndex < 0 || req.DayIndex >= len(stored.Plan.Days) {
		respondError(w, http.StatusBadRequest, "day index out of range")
		return
	}

	rec := s.workingCorpus(ctx).Find(req.RecipeID)
	if rec == nil {
		respondError(w, http.StatusNotFound, "recipe not found")
		return
	}

	prof, err := s.profiles.Get(ctx, uid)
	if err != nil || prof == nil {
		respondError(w, http.StatusBadRequest, "profile not set")
		return
	}

	candidates := planner.FilterRecipes([]recipe.Recipe{*rec}, *prof)
	if len(candidates) == 0 {
		respondError(w, http.StatusConflict, "recipe conflicts with the profile's constraints")
		return
	}

	servings := req.Servings
	if servings < 1 {
		servings = prof.EffectiveServings()
	}

	// Rebuild the week rather than mutating the stored copy.
	days := make([]planner.DayPlan, len(stored.Plan.Days))
	copy(days, stored.Plan.Days)
	planner.SwapMeal(&days[req.DayIndex], slot, candidates[0], servings)
	updated := &planner.WeekPlan{Days: days}

	id, err := s.plans.Save(ctx, uid, updated)
	if err != nil {
		s.log.Error("failed to persist swapped plan", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to save the updated plan")
		return
	}
	if s.cache != nil {
		if err := s.cache.Save(uid, updated); err != nil {
			s.log.Warn("failed to cache swapped plan", zap.Error(err))
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{"plan": updated, "plan_id": id})
}

func (s *Server) handleShoppingList(w http.ResponseWriter, r *http.Request) {
	plan, planID, _ := s.latestPlan(r)
	if plan == nil {
		respondError(w, http.StatusNotFound, "no plan generated yet")
		return
	}

	list := shopping.GenerateShoppingList(plan)

	if s.shopLists != nil && planID != 0 {
		if _, err := s.shopLists.Save(r.Context(), userID(r.Context()), planID, list); err != nil {
			s.log.Warn("failed to persist shopping list", zap.Error(err))
		}
	}

	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleCostEstimate(w http.ResponseWriter, r *http.Request) {
	plan, _, _ := s.latestPlan(r)
	if plan == nil {
		respondError(w, http.StatusNotFound, "no plan generated yet")
		return
	}

	tier := r.URL.Query().Get("tier")
	if tier == "" {
		tier = shopping.TierMedium
	}

	servings := 1
	if raw := r.URL.Query().Get("servings"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "servings must be a positive integer")
			return
		}
		servings = parsed
	} else if prof, err := s.profiles.Get(r.Context(), userID(r.Context())); err == nil && prof != nil {
		servings = prof.EffectiveServings()
	}

	list := shopping.GenerateShoppingList(plan)
	respondJSON(w, http.StatusOK, shopping.EstimateCost(list, tier, servings))
}

type importRequest struct {
	URL      string `json:"url"`
	MealType string `json:"meal_type,omitempty"`
}

func (s *Server) handleImportRecipe(w http.ResponseWriter, r *http.Request) {
	if s.importer == nil {
		respondError(w, http.StatusServiceUnavailable, "recipe import is not configured")
		return
	}

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		respondError(w, http.StatusBadRequest, "invalid import payload")
		return
	}

	mealType := recipe.Dinner
	if req.MealType != "" {
		mt := recipe.MealType(req.MealType)
		switch mt {
		case recipe.Breakfast, recipe.Lunch, recipe.Snack, recipe.Dinner:
			mealType = mt
		default:
			respondError(w, http.StatusBadRequest, "unknown meal type")
			return
		}
	}

	rec, err := s.importer.ImportURL(r.Context(), req.URL, mealType)
	if err != nil {
		s.log.Error("recipe import failed", zap.String("url", req.URL), zap.Error(err))
		respondError(w, http.StatusBadGateway, "failed to import recipe from URL")
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}
