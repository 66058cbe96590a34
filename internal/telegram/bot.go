package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"nutriplan/internal/config"
	"nutriplan/internal/importer"
	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
	"nutriplan/internal/shopping"
	"nutriplan/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API around the plan generator and recipe importer.
type Bot struct {
	api          *tgbotapi.BotAPI
	cfg          *config.Config
	profiles     *profile.Repository
	recipes      *recipe.Repository
	plans        *planner.PlanRepository
	cache        *storage.PlanCache
	metricsStore *metrics.Store
	importer     *importer.Importer
	corpus       *recipe.Corpus
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(
	cfg *config.Config,
	profiles *profile.Repository,
	recipes *recipe.Repository,
	plans *planner.PlanRepository,
	cache *storage.PlanCache,
	metricsStore *metrics.Store,
	imp *importer.Importer,
	corpus *recipe.Corpus,
) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          bot,
		cfg:          cfg,
		profiles:     profiles,
		recipes:      recipes,
		plans:        plans,
		cache:        cache,
		metricsStore: metricsStore,
		importer:     imp,
		corpus:       corpus,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}

	if !isAllowed {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	switch {
	case msg.Text == "/metrics":
		b.handleMetricsRequest(msg)
	case msg.Text == "/current":
		b.handleCurrentPlanRequest(msg)
	case strings.HasPrefix(msg.Text, "http://") || strings.HasPrefix(msg.Text, "https://"):
		b.handleImportRequest(msg)
	default:
		b.handleGenerateRequest(msg)
	}
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "⛔ *Access Denied*: Admin only."))
		return
	}
	b.handleMetricsCommand(msg.Chat.ID)
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var sb strings.Builder
	sb.WriteString("📊 *Generation Metrics (last 7 days)*\n\n")

	if b.metricsStore != nil {
		usage, err := b.metricsStore.GetDailyUsage(ctx, 7)
		switch {
		case err != nil:
			sb.WriteString(fmt.Sprintf("_error loading usage: %v_\n", err))
		case len(usage) == 0:
			sb.WriteString("_no generations recorded_\n")
		default:
			for _, day := range usage {
				sb.WriteString(fmt.Sprintf("`%s` — %d plans, avg %.0f ms, %d slots\n",
					day.Date, day.Generations, day.AvgDurationMS, day.FilledSlots))
			}
		}
	}

	sys := metrics.GetSysHealth(filepath.Dir(b.cfg.DatabasePath))
	sb.WriteString(fmt.Sprintf("\n🖥️ *System*\nMem: %d MB · Goroutines: %d · Data: %s\n",
		sys.AllocMB, sys.Goroutines, sys.DataDiskSize))

	reply := tgbotapi.NewMessage(chatID, sb.String())
	reply.ParseMode = "Markdown"
	b.api.Send(reply)
}

func (b *Bot) handleImportRequest(msg *tgbotapi.Message) {
	if b.importer == nil {
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "Recipe import is not configured on this bot."))
		return
	}

	statusText := "✂️ *Importing recipe...* \n(Fetching the page and extracting details)"
	replyMsg := tgbotapi.NewMessage(msg.Chat.ID, statusText)
	replyMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(replyMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	rec, err := b.importer.ImportURL(ctx, msg.Text, recipe.Dinner)
	var finalText string
	if err != nil {
		log.Printf("Error importing recipe: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText = fmt.Sprintf("❌ *Error importing recipe:*\n```\n%v\n```", safeErr)
	} else {
		finalText = fmt.Sprintf("✅ *Recipe Saved!*\n\n*%s*\n%d kcal · %d ingredients\nIt is now part of your dinner pool.", rec.Name, int(rec.Calories), len(rec.Ingredients))
	}
	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) handleGenerateRequest(msg *tgbotapi.Message) {
	statusText := "🧑‍🍳 *Thinking...* \n(Filtering recipes and assembling your week)"
	replyMsg := tgbotapi.NewMessage(msg.Chat.ID, statusText)
	replyMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(replyMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	userID := fmt.Sprintf("%d", msg.From.ID)

	prof, err := b.profiles.Get(ctx, userID)
	if err == nil && prof == nil {
		edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID,
			"🙋 No profile found for you yet. Set one up through the API before asking for a plan.")
		b.api.Send(edit)
		return
	}
	if err != nil {
		b.sendError(msg.Chat.ID, sentMsg.MessageID, "Error loading profile", err)
		return
	}

	corpus := b.corpus
	if stored, listErr := b.recipes.ListAll(ctx); listErr == nil {
		corpus = corpus.Merge(stored)
	}

	start := time.Now()
	plan, err := planner.GenerateWeeklyMealPlan(*prof, corpus, start)
	if err != nil {
		b.sendError(msg.Chat.ID, sentMsg.MessageID, "Error generating plan", err)
		return
	}

	if b.metricsStore != nil {
		totalCalories := 0
		for i := range plan.Days {
			totalCalories += plan.Days[i].TotalCalories
		}
		_ = b.metricsStore.Record(ctx, metrics.GenerationMetric{
			UserID:     userID,
			DurationMS: time.Since(start).Milliseconds(),
			PoolSize: len(corpus.Breakfast) + len(corpus.Lunch) +
				len(corpus.Snack) + len(corpus.Dinner),
			FilledSlots:   countFilledSlots(plan),
			TotalCalories: totalCalories,
		})
	}

	if _, err := b.plans.Save(ctx, userID, plan); err != nil {
		log.Printf("Warning: failed to save meal plan for user %s: %v", userID, err)
	}
	if b.cache != nil {
		if err := b.cache.Save(userID, plan); err != nil {
			log.Printf("Warning: failed to cache meal plan for user %s: %v", userID, err)
		}
	}

	b.sendPlanMessages(msg.Chat.ID, sentMsg.MessageID, plan)
}

// handleCurrentPlanRequest shows the latest saved plan, falling back to the
// file cache when the database is unavailable.
func (b *Bot) handleCurrentPlanRequest(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	userID := fmt.Sprintf("%d", msg.From.ID)

	var plan *planner.WeekPlan
	stored, err := b.plans.Latest(ctx, userID)
	switch {
	case err == nil && stored != nil:
		plan = &stored.Plan
	case b.cache != nil:
		if err != nil {
			log.Printf("Warning: plan lookup failed for user %s, trying cache: %v", userID, err)
		}
		if cached, cacheErr := b.cache.Load(userID); cacheErr == nil {
			plan = cached
		}
	}

	if plan == nil {
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "🗓️ No plan yet. Send me any message to generate one."))
		return
	}
	b.sendPlanMessages(msg.Chat.ID, 0, plan)
}

func (b *Bot) sendPlanMessages(chatID int64, editMessageID int, plan *planner.WeekPlan) {
	planText := formatPlanMarkdown(plan)
	listText := formatShoppingListMarkdown(shopping.GenerateShoppingList(plan))

	if editMessageID != 0 {
		edit := tgbotapi.NewEditMessageText(chatID, editMessageID, planText)
		edit.ParseMode = "Markdown"
		b.api.Send(edit)
	} else {
		planMsg := tgbotapi.NewMessage(chatID, planText)
		planMsg.ParseMode = "Markdown"
		b.api.Send(planMsg)
	}

	listMsg := tgbotapi.NewMessage(chatID, listText)
	listMsg.ParseMode = "Markdown"
	b.api.Send(listMsg)
}

func (b *Bot) sendError(chatID int64, messageID int, title string, err error) {
	log.Printf("%s: %v", title, err)
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	edit := tgbotapi.NewEditMessageText(chatID, messageID, fmt.Sprintf("❌ *%s:*\n```\n%v\n```", title, safeErr))
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func countFilledSlots(plan *planner.WeekPlan) int {
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

func formatPlanMarkdown(plan *planner.WeekPlan) string {
	var pb strings.Builder
	pb.WriteString("📅 *Weekly Meal Plan*\n\n")

	for _, day := range plan.Days {
		pb.WriteString(fmt.Sprintf("*%s* (%s) — %d kcal\n", day.Weekday, day.Date, day.TotalCalories))
		for _, slot := range planner.MealSlots {
			meal := day.Slot(slot)
			if meal == nil {
				continue
			}
			pb.WriteString(fmt.Sprintf("• _%s_: %s (%d kcal)\n", slot, meal.Name, meal.Calories))
			for _, warning := range meal.Warnings {
				pb.WriteString(fmt.Sprintf("  ⚠️ %s\n", warning.Message))
			}
		}
		pb.WriteString("\n")
	}

	return pb.String()
}

func formatShoppingListMarkdown(list shopping.ShoppingList) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")

	categories := append([]string{}, categoryOrderForDisplay...)
	for _, category := range categories {
		items := list.ByCategory[category]
		if len(items) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("*%s*\n", strings.ToUpper(category[:1])+category[1:]))
		for _, item := range items {
			sb.WriteString(fmt.Sprintf("• %s\n", item.Display))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// categoryOrderForDisplay mirrors the aggregator's category order, with the
// catch-all last.
var categoryOrderForDisplay = []string{"vegetables", "fruits", "proteins", "dairy", "grains", "spices", "oils", shopping.CategoryOthers}
