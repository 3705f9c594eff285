package telegram

import (
	"context"
	"time"

	tele "gopkg.in/telebot.v3"

	"vineyard-assistant/internal/constant"
	"vineyard-assistant/internal/pkg/logger"
	"vineyard-assistant/pkg/assistant"
	"vineyard-assistant/pkg/chunker"
)

// chunkDelay paces delivery of successive answer parts to respect the
// transport throughput limit.
const chunkDelay = 300 * time.Millisecond

// Bot is the Telegram transport: it parses commands, forwards free-text
// questions to the assistant and delivers chunked answers.
type Bot struct {
	bot       *tele.Bot
	assistant *assistant.Assistant
	log       logger.ILogger
	chunkMax  int

	menu            *tele.ReplyMarkup
	btnAboutCompany tele.Btn
	btnClearHistory tele.Btn
	btnAboutBot     tele.Btn
	btnExit         tele.Btn
}

func NewBot(token string, asst *assistant.Assistant, log logger.ILogger, chunkMax int) (*Bot, error) {
	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		bot:       b,
		assistant: asst,
		log:       log,
		chunkMax:  chunkMax,
	}
	bot.setupMenu()
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupMenu() {
	b.menu = &tele.ReplyMarkup{}
	b.btnAboutCompany = b.menu.Data("🏢 О компании", "about_company")
	b.btnClearHistory = b.menu.Data("🧹 Очистить историю", "clear_history")
	b.btnAboutBot = b.menu.Data("ℹ️ О боте", "about")
	b.btnExit = b.menu.Data("❌ Завершить диалог", "exit")

	b.menu.Inline(
		b.menu.Row(b.btnAboutCompany, b.btnClearHistory),
		b.menu.Row(b.btnAboutBot, b.btnExit),
	)
}

func (b *Bot) setupHandlers() {
	b.bot.Handle("/start", b.cmdStart)
	b.bot.Handle("/menu", b.cmdMenu)
	b.bot.Handle("/clear", b.cmdClear)
	b.bot.Handle("/exit", b.cmdExit)
	b.bot.Handle(tele.OnText, b.handleMessage)

	b.bot.Handle(&b.btnAboutCompany, func(c tele.Context) error {
		defer respond(c)
		return c.Send(constant.MsgAboutCompany)
	})
	b.bot.Handle(&b.btnClearHistory, func(c tele.Context) error {
		defer respond(c)
		return b.cmdClear(c)
	})
	b.bot.Handle(&b.btnAboutBot, func(c tele.Context) error {
		defer respond(c)
		return c.Send(constant.MsgAboutBot)
	})
	b.bot.Handle(&b.btnExit, func(c tele.Context) error {
		defer respond(c)
		return b.cmdExit(c)
	})
}

// Start registers the command list and begins long polling. Blocks until
// Stop is called.
func (b *Bot) Start() error {
	err := b.bot.SetCommands([]tele.Command{
		{Text: "start", Description: "Начать диалог"},
		{Text: "menu", Description: "Открыть дополнительное меню"},
		{Text: "clear", Description: "Очистить историю диалога"},
		{Text: "exit", Description: "Завершить диалог"},
	})
	if err != nil {
		return err
	}

	b.log.Info("Telegram", "Bot started", nil)
	b.bot.Start()
	return nil
}

func (b *Bot) Stop() {
	b.bot.Stop()
	b.log.Info("Telegram", "Bot stopped", nil)
}

// --- Command handlers ---

func (b *Bot) cmdStart(c tele.Context) error {
	b.log.Info("Telegram", "User started conversation", map[string]interface{}{
		"user_id": c.Sender().ID,
	})
	return c.Send(constant.MsgWelcome)
}

func (b *Bot) cmdMenu(c tele.Context) error {
	return c.Send(constant.MsgMenu, b.menu)
}

func (b *Bot) cmdClear(c tele.Context) error {
	b.assistant.ClearSession(c.Sender().ID)
	return c.Send(constant.MsgHistoryCleared)
}

func (b *Bot) cmdExit(c tele.Context) error {
	b.assistant.ClearSession(c.Sender().ID)
	b.log.Info("Telegram", "User ended conversation", map[string]interface{}{
		"user_id": c.Sender().ID,
	})
	return c.Send(constant.MsgFarewell)
}

// handleMessage forwards a free-text question to the assistant and sends
// the answer back in transport-safe parts.
func (b *Bot) handleMessage(c tele.Context) error {
	userID := c.Sender().ID

	// Show the typing indicator while the query is in flight
	if err := c.Notify(tele.Typing); err != nil {
		b.log.Warn("Telegram", "Failed to send typing action", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}

	answer, err := b.assistant.ProcessQuery(context.Background(), userID, c.Text())
	if err != nil {
		return c.Send(assistant.AdvisoryMessage(err))
	}

	return b.sendLong(c, answer)
}

// sendLong delivers a long answer as separate messages with a fixed
// small delay between parts.
func (b *Bot) sendLong(c tele.Context, text string) error {
	parts := chunker.Split(text, b.chunkMax)
	for i, part := range parts {
		if i > 0 {
			time.Sleep(chunkDelay)
		}
		if err := c.Send(part); err != nil {
			return err
		}
	}
	return nil
}

// respond acknowledges a callback so the client stops the spinner.
func respond(c tele.Context) {
	_ = c.Respond()
}
